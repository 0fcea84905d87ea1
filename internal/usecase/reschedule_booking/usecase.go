package reschedule_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingStorage "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

// UseCase use case для переноса бронирования на другое время
type UseCase struct {
	bookingRepo   BookingRepository
	timeBlockRepo TimeBlockRepository
	catalog       CatalogService
	engine        AvailabilityEngine
	txManager     TransactionManager
	cache         SlotCache
	metrics       Metrics
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	timeBlockRepo TimeBlockRepository,
	catalog CatalogService,
	engine AvailabilityEngine,
	txManager TransactionManager,
	cache SlotCache,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		timeBlockRepo: timeBlockRepo,
		catalog:       catalog,
		engine:        engine,
		txManager:     txManager,
		cache:         cache,
		metrics:       metrics,
		logger:        logger,
	}
}

// Execute выполняет перенос бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: booking=%s, date=%s, time=%s", req.BookingID, req.Date, req.StartTime)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		uc.metrics.IncBookingAttempt("reschedule", "invalid")
		return nil, err
	}

	// 1. Читаем бронирование вне транзакции, чтобы загрузить каталог до блокировок
	current, err := uc.getBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	snapshot, err := uc.catalog.Load(ctx, current.BusinessID, current.ServiceID, current.ProviderID)
	if err != nil {
		if errors.Is(err, catalog.ErrBusinessNotFound) || errors.Is(err, catalog.ErrServiceNotFound) ||
			errors.Is(err, catalog.ErrProviderNotFound) {
			uc.logger.Warn("RescheduleBooking: catalog entry for booking id=%s not found: %v", req.BookingID, err)
			return nil, ErrCatalogNotFound
		}
		uc.logger.Error("RescheduleBooking: failed to load catalog: %v", err)
		return nil, fmt.Errorf("%w: failed to load catalog: %v", ErrInternal, err)
	}

	var previous, updated domain.Booking

	// 2. Проверка и перенос в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Повторное чтение с блокировкой строки
		booking, err := uc.getBooking(txCtx, req.BookingID)
		if err != nil {
			return err
		}
		if !booking.CanBeRescheduled() {
			uc.logger.Warn("RescheduleBooking: booking id=%s has status %s", booking.ID, booking.Status)
			return ErrCannotReschedule
		}

		bookings, err := uc.bookingRepo.GetByProviderAndDate(txCtx, booking.ProviderID, req.Date)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		blocks, err := uc.timeBlockRepo.GetByBusinessAndPeriod(txCtx, booking.BusinessID, req.Date, req.Date)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to get time blocks: %v", err)
			return fmt.Errorf("%w: failed to get time blocks: %w", ErrInternal, err)
		}

		validation := uc.engine.ValidateBookingTime(
			snapshot.Business, snapshot.Service, snapshot.Provider,
			req.Date, req.StartTime, excludeBooking(bookings, booking.ID), blocks)
		if !validation.Valid {
			uc.logger.Warn("RescheduleBooking: slot %s %s rejected: %s", req.Date, req.StartTime, validation.Reason)
			return &SlotUnavailableError{Reason: validation.Reason}
		}

		endTime, err := req.StartTime.AddMinutes(snapshot.Service.DurationMinutes)
		if err != nil {
			return fmt.Errorf("%w: failed to calculate end time: %v", ErrInternal, err)
		}

		if err := uc.bookingRepo.Reschedule(txCtx, booking.ID, req.Date, req.StartTime, endTime); err != nil {
			switch {
			case errors.Is(err, bookingStorage.ErrSlotNotAvailable):
				return &SlotUnavailableError{Reason: domain.ReasonAlreadyBooked}
			case errors.Is(err, bookingStorage.ErrCannotModify):
				return ErrCannotReschedule
			}
			uc.logger.Error("RescheduleBooking: failed to reschedule booking id=%s: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to reschedule booking: %w", ErrInternal, err)
		}

		previous = *booking
		updated = *booking
		updated.Date = req.Date
		updated.StartTime = req.StartTime
		updated.EndTime = endTime
		return nil
	})

	if err != nil {
		return nil, uc.mapTxError(err)
	}

	uc.metrics.IncBookingAttempt("reschedule", "rescheduled")
	uc.logger.Info("RescheduleBooking: booking id=%s moved from %s %s to %s %s",
		updated.ID, previous.Date, previous.StartTime, updated.Date, updated.StartTime)

	// 3. Сбрасываем кеш старой и новой даты
	if err := uc.cache.Invalidate(ctx, updated.BusinessID, previous.Date, updated.Date); err != nil {
		uc.logger.Warn("RescheduleBooking: failed to invalidate slot cache: %v", err)
	}

	return &Response{
		ID:                updated.ID,
		BusinessID:        updated.BusinessID,
		ProviderID:        updated.ProviderID,
		ServiceID:         updated.ServiceID,
		Date:              updated.Date,
		StartTime:         updated.StartTime,
		EndTime:           updated.EndTime,
		Status:            string(updated.Status),
		PreviousDate:      previous.Date,
		PreviousStartTime: previous.StartTime,
	}, nil
}

func (uc *UseCase) getBooking(ctx context.Context, id string) (*domain.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingStorage.ErrBookingNotFound) {
			uc.logger.Warn("RescheduleBooking: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("RescheduleBooking: failed to get booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
	}
	return booking, nil
}

func (uc *UseCase) mapTxError(err error) error {
	switch {
	case errors.Is(err, ErrSlotNotAvailable):
		uc.metrics.IncBookingAttempt("reschedule", "rejected")
		return err
	case errors.Is(err, txmanager.ErrSerializationFailure):
		uc.metrics.IncBookingAttempt("reschedule", "rejected")
		return &SlotUnavailableError{Reason: domain.ReasonAlreadyBooked}
	case errors.Is(err, ErrBookingNotFound), errors.Is(err, ErrCannotReschedule):
		uc.metrics.IncBookingAttempt("reschedule", "invalid")
		return err
	case errors.Is(err, ErrInternal):
		uc.metrics.IncBookingAttempt("reschedule", "error")
		return err
	default:
		uc.logger.Error("RescheduleBooking: transaction failed: %v", err)
		uc.metrics.IncBookingAttempt("reschedule", "error")
		return fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}
}
