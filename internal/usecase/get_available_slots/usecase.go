package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/cache/slots"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog"
)

// UseCase use case для получения слотов сотрудника на дату
type UseCase struct {
	catalog       CatalogService
	bookingRepo   BookingRepository
	timeBlockRepo TimeBlockRepository
	engine        AvailabilityEngine
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
	cache SlotCache,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalog:       catalog,
		bookingRepo:   bookingRepo,
		timeBlockRepo: timeBlockRepo,
		engine:        engine,
		cache:         cache,
		metrics:       metrics,
		logger:        logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: business=%s, provider=%s, service=%s, date=%s",
		req.BusinessID, req.ProviderID, req.ServiceID, req.Date)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Загружаем каталог
	snapshot, err := uc.catalog.Load(ctx, req.BusinessID, req.ServiceID, req.ProviderID)
	if err != nil {
		return nil, mapCatalogError(err)
	}

	response := &Response{
		BusinessID:      req.BusinessID,
		ProviderID:      req.ProviderID,
		ServiceID:       req.ServiceID,
		Date:            req.Date,
		DurationMinutes: snapshot.Service.DurationMinutes,
	}

	// 3. Результат для сегодняшнего дня зависит от текущего времени, поэтому кешируются только будущие даты
	key := slots.Key{
		BusinessID: req.BusinessID,
		ProviderID: req.ProviderID,
		ServiceID:  req.ServiceID,
		Date:       req.Date,
	}
	cacheable := req.Date > uc.engine.Today()

	var generation int64
	if cacheable {
		cached, ok, err := uc.cache.Get(ctx, key)
		if err != nil {
			uc.logger.Warn("GetAvailableSlots: cache read failed: %v", err)
		}
		if ok {
			uc.metrics.IncSlotCalculation("cache")
			response.Slots = filter(cached, req.OnlyAvailable)
			return response, nil
		}

		// Поколение читается до бронирований: коммит между чтением и Put отменит запись
		generation, err = uc.cache.Generation(ctx, req.BusinessID, req.Date)
		if err != nil {
			uc.logger.Warn("GetAvailableSlots: cache generation read failed: %v", err)
			cacheable = false
		}
	}

	// 4. Загружаем бронирования и блокировки на дату
	bookings, err := uc.bookingRepo.GetByProviderAndDate(ctx, req.ProviderID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	blocks, err := uc.timeBlockRepo.GetByBusinessAndPeriod(ctx, req.BusinessID, req.Date, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get time blocks: %v", err)
		return nil, fmt.Errorf("%w: failed to get time blocks: %v", ErrInternal, err)
	}

	// 5. Расчет
	calculated := uc.engine.CalculateAvailableTimeSlots(
		snapshot.Business, snapshot.Service, snapshot.Provider, req.Date, bookings, blocks)
	uc.metrics.IncSlotCalculation("engine")

	if cacheable {
		if err := uc.cache.Put(ctx, key, generation, snapshot.Service.DurationMinutes, calculated); err != nil {
			uc.logger.Warn("GetAvailableSlots: cache write failed: %v", err)
		}
	}

	response.Slots = filter(calculated, req.OnlyAvailable)

	uc.logger.Info("GetAvailableSlots: %d slots for provider=%s on %s", len(response.Slots), req.ProviderID, req.Date)

	return response, nil
}

func filter(list []domain.TimeSlot, onlyAvailable bool) []domain.TimeSlot {
	if onlyAvailable {
		return domain.FilterAvailable(list)
	}
	return list
}

func mapCatalogError(err error) error {
	switch {
	case errors.Is(err, catalog.ErrBusinessNotFound):
		return ErrBusinessNotFound
	case errors.Is(err, catalog.ErrServiceNotFound):
		return ErrServiceNotFound
	case errors.Is(err, catalog.ErrProviderNotFound):
		return ErrProviderNotFound
	default:
		return fmt.Errorf("%w: failed to load catalog: %v", ErrInternal, err)
	}
}
