package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingStorage "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	catalog       CatalogService
	bookingRepo   BookingRepository
	timeBlockRepo TimeBlockRepository
	engine        AvailabilityEngine
	txManager     TransactionManager
	cache         SlotCache
	metrics       Metrics
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalog CatalogService,
	bookingRepo BookingRepository,
	timeBlockRepo TimeBlockRepository,
	engine AvailabilityEngine,
	txManager TransactionManager,
	cache SlotCache,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalog:       catalog,
		bookingRepo:   bookingRepo,
		timeBlockRepo: timeBlockRepo,
		engine:        engine,
		txManager:     txManager,
		cache:         cache,
		metrics:       metrics,
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка слота и запись выполняются в одной сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: business=%s, provider=%s, service=%s, date=%s, time=%s",
		req.BusinessID, req.ProviderID, req.ServiceID, req.Date, req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.metrics.IncBookingAttempt("create", "invalid")
		return nil, err
	}

	// 2. Загружаем бизнес, услугу и сотрудника
	snapshot, err := uc.catalog.Load(ctx, req.BusinessID, req.ServiceID, req.ProviderID)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrBusinessNotFound):
			return nil, ErrBusinessNotFound
		case errors.Is(err, catalog.ErrServiceNotFound):
			return nil, ErrServiceNotFound
		case errors.Is(err, catalog.ErrProviderNotFound):
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("CreateBooking: failed to load catalog: %v", err)
		return nil, fmt.Errorf("%w: failed to load catalog: %v", ErrInternal, err)
	}

	var result *domain.Booking

	// 3. Повторная проверка слота и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Бронирования сотрудника на дату с блокировкой (FOR UPDATE)
		bookings, err := uc.bookingRepo.GetByProviderAndDate(txCtx, req.ProviderID, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		blocks, err := uc.timeBlockRepo.GetByBusinessAndPeriod(txCtx, req.BusinessID, req.Date, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get time blocks: %v", err)
			return fmt.Errorf("%w: failed to get time blocks: %w", ErrInternal, err)
		}

		// 3.2. Слот должен совпадать со свободным слотом сетки
		validation := uc.engine.ValidateBookingTime(
			snapshot.Business, snapshot.Service, snapshot.Provider, req.Date, req.StartTime, bookings, blocks)
		if !validation.Valid {
			uc.logger.Warn("CreateBooking: slot %s %s rejected: %s", req.Date, req.StartTime, validation.Reason)
			return &SlotUnavailableError{Reason: validation.Reason}
		}

		endTime, err := req.StartTime.AddMinutes(snapshot.Service.DurationMinutes)
		if err != nil {
			return fmt.Errorf("%w: failed to calculate end time: %v", ErrInternal, err)
		}

		// 3.3. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			BusinessID: req.BusinessID,
			ProviderID: req.ProviderID,
			ServiceID:  req.ServiceID,
			Customer:   req.Customer,
			Date:       req.Date,
			StartTime:  req.StartTime,
			EndTime:    endTime,
			Status:     domain.StatusConfirmed,
			Notes:      req.Notes,
		})
		if err != nil {
			if errors.Is(err, bookingStorage.ErrSlotNotAvailable) {
				uc.logger.Warn("CreateBooking: slot %s %s taken concurrently", req.Date, req.StartTime)
				return &SlotUnavailableError{Reason: domain.ReasonAlreadyBooked}
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrSlotNotAvailable):
			uc.metrics.IncBookingAttempt("create", "rejected")
			return nil, err
		case errors.Is(err, txmanager.ErrSerializationFailure):
			// Конкурентная запись на пересекающееся время так и не уступила после повторов
			uc.logger.Warn("CreateBooking: serialization conflict on %s %s: %v", req.Date, req.StartTime, err)
			uc.metrics.IncBookingAttempt("create", "rejected")
			return nil, &SlotUnavailableError{Reason: domain.ReasonAlreadyBooked}
		case errors.Is(err, ErrInternal):
			uc.metrics.IncBookingAttempt("create", "error")
			return nil, err
		default:
			uc.logger.Error("CreateBooking: transaction failed: %v", err)
			uc.metrics.IncBookingAttempt("create", "error")
			return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
	}

	uc.metrics.IncBookingAttempt("create", "created")
	uc.logger.Info("CreateBooking: successfully created booking id=%s", result.ID)

	// 4. Обновляем закешированные списки слотов бизнеса на эту дату
	booked := *result
	patch := func(list []domain.TimeSlot, durationMinutes int) []domain.TimeSlot {
		return uc.engine.UpdateAvailabilityAfterBooking(list, booked, domain.Service{DurationMinutes: durationMinutes})
	}
	if err := uc.cache.ApplyBooking(ctx, booked, patch); err != nil {
		uc.logger.Warn("CreateBooking: failed to update slot cache: %v", err)
	}

	return &Response{
		ID:              result.ID,
		BusinessID:      result.BusinessID,
		ProviderID:      result.ProviderID,
		ServiceID:       result.ServiceID,
		Customer:        result.Customer,
		Date:            result.Date,
		StartTime:       result.StartTime,
		EndTime:         result.EndTime,
		DurationMinutes: snapshot.Service.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     snapshot.Service.Name,
		ServicePrice:    snapshot.Service.Price,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
