package get_next_available_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog"
)

// UseCase use case поиска ближайшего свободного слота
type UseCase struct {
	catalog       CatalogService
	bookingRepo   BookingRepository
	timeBlockRepo TimeBlockRepository
	engine        AvailabilityEngine
	metrics       Metrics
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalog CatalogService,
	bookingRepo BookingRepository,
	timeBlockRepo TimeBlockRepository,
	engine AvailabilityEngine,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalog:       catalog,
		bookingRepo:   bookingRepo,
		timeBlockRepo: timeBlockRepo,
		engine:        engine,
		metrics:       metrics,
		logger:        logger,
	}
}

// Execute выполняет use case
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetNextAvailableSlot: business=%s, provider=%s, service=%s, startDate=%q",
		req.BusinessID, req.ProviderID, req.ServiceID, req.StartDate)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetNextAvailableSlot: validation failed: %v", err)
		return nil, err
	}

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
		return nil, fmt.Errorf("%w: failed to load catalog: %v", ErrInternal, err)
	}

	startDate := req.StartDate
	if startDate == "" {
		startDate = uc.engine.Today()
	}
	endDate := searchPeriodEnd(startDate, uc.engine.Config().SearchDays)

	// Бронирования и блокировки загружаются одним запросом на весь горизонт
	bookings, err := uc.bookingRepo.GetByProviderAndPeriod(ctx, req.ProviderID, startDate, endDate)
	if err != nil {
		uc.logger.Error("GetNextAvailableSlot: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	blocks, err := uc.timeBlockRepo.GetByBusinessAndPeriod(ctx, req.BusinessID, startDate, endDate)
	if err != nil {
		uc.logger.Error("GetNextAvailableSlot: failed to get time blocks: %v", err)
		return nil, fmt.Errorf("%w: failed to get time blocks: %v", ErrInternal, err)
	}

	next := uc.engine.GetNextAvailableSlot(
		snapshot.Business, snapshot.Service, snapshot.Provider, bookings, blocks, startDate)
	uc.metrics.IncSlotCalculation("engine")

	if next == nil {
		uc.logger.Info("GetNextAvailableSlot: no free slots for provider=%s in %s..%s", req.ProviderID, startDate, endDate)
		return &Response{Found: false}, nil
	}

	uc.logger.Info("GetNextAvailableSlot: provider=%s next slot %s %s", req.ProviderID, next.Date, next.Time)

	return &Response{
		Found: true,
		Date:  next.Date,
		Time:  next.Time,
	}, nil
}
