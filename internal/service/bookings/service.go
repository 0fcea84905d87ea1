package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
)

// Разрешенные переходы статусов: целевой статус -> допустимые текущие.
// Отмена идет отдельным путем через Cancel.
var statusTransitions = map[domain.BookingStatus][]domain.BookingStatus{
	domain.StatusConfirmed: {domain.StatusPending},
	domain.StatusCompleted: {domain.StatusConfirmed},
	domain.StatusNoShow:    {domain.StatusConfirmed},
}

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	cache       SlotCache
	metrics     Metrics
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	cache SlotCache,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		cache:       cache,
		metrics:     metrics,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s", id)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return models.FromDomainBooking(booking), nil
}

// GetBusinessBookings получает бронирования бизнеса с фильтрацией по сотруднику, периоду и статусу
//
// Примеры использования:
// - Все активные бронирования: GetBusinessBookings(ctx, &GetBusinessBookingsRequest{BusinessID: "..."})
// - Бронирования сотрудника: указать ProviderID
// - Бронирования за период: From и To
// - Включая отмененные: IncludeCancelled = true
func (s *Service) GetBusinessBookings(ctx context.Context, req *models.GetBusinessBookingsRequest) (*models.BookingListResponse, error) {
	// Логируем запрос с деталями фильтрации
	logMsg := fmt.Sprintf("GetBusinessBookings: fetching bookings for business=%s", req.BusinessID)
	if req.ProviderID != nil {
		logMsg += fmt.Sprintf(", provider=%s", *req.ProviderID)
	}
	if req.From != nil || req.To != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", deref(req.From), deref(req.To))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeCancelled {
		logMsg += ", includeCancelled=true"
	}
	s.logger.Info("%s", logMsg)

	if req.BusinessID == "" {
		return nil, fmt.Errorf("%w: businessId is required", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetBusinessBookings: invalid filter for business=%s: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.GetByBusinessWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetBusinessBookings: repository error for business=%s: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: GetBusinessBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBusinessBookings: successfully fetched %d bookings for business=%s", len(bookings), req.BusinessID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование. Отменить можно только pending/confirmed.
// Освободившееся время сразу становится доступным: кеш слотов даты сбрасывается.
func (s *Service) Cancel(ctx context.Context, bookingID string, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%s", bookingID)

	reason := strings.TrimSpace(req.CancellationReason)
	if len(reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellation reason is too long", ErrInvalidInput)
	}

	booking, err := s.getBooking(ctx, "Cancel", bookingID)
	if err != nil {
		return nil, err
	}

	// Проверяем, можно ли отменить бронирование
	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%s cannot be cancelled, status=%s", bookingID, booking.Status)
		s.metrics.IncBookingAttempt("cancel", "invalid")
		return nil, ErrCannotCancel
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, reason); err != nil {
		if errors.Is(err, bookingRepo.ErrCannotModify) {
			s.logger.Warn("Cancel: booking id=%s changed status concurrently", bookingID)
			s.metrics.IncBookingAttempt("cancel", "invalid")
			return nil, ErrCannotCancel
		}
		s.logger.Error("Cancel: repository error for booking id=%s: %v", bookingID, err)
		s.metrics.IncBookingAttempt("cancel", "error")
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.metrics.IncBookingAttempt("cancel", "cancelled")

	if err := s.cache.Invalidate(ctx, booking.BusinessID, booking.Date); err != nil {
		s.logger.Warn("Cancel: failed to invalidate slot cache for business=%s date=%s: %v",
			booking.BusinessID, booking.Date, err)
	}

	// Перечитываем, чтобы вернуть cancelled_at из БД
	cancelled, err := s.getBooking(ctx, "Cancel", bookingID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%s", bookingID)
	return models.FromDomainBooking(cancelled), nil
}

// UpdateStatus меняет статус бронирования (подтверждение, завершение, неявка)
func (s *Service) UpdateStatus(ctx context.Context, bookingID string, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%s to status=%s", bookingID, req.Status)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%s", req.Status, bookingID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	allowedFrom, ok := statusTransitions[newStatus]
	if !ok {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus, allowedFrom); err != nil {
		if errors.Is(err, bookingRepo.ErrCannotModify) {
			// Различаем отсутствующее бронирование и недопустимый переход
			if _, getErr := s.getBooking(ctx, "UpdateStatus", bookingID); getErr != nil {
				return nil, getErr
			}
			s.logger.Warn("UpdateStatus: transition to %s not allowed for booking id=%s", newStatus, bookingID)
			return nil, ErrInvalidStatusTransition
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	updated, err := s.getBooking(ctx, "UpdateStatus", bookingID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%s to status=%s", bookingID, newStatus)
	return models.FromDomainBooking(updated), nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, op, id string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
