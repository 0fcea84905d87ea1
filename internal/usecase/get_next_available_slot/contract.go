package get_next_available_slot

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog"
)

// CatalogService интерфейс сервиса каталога
type CatalogService interface {
	Load(ctx context.Context, businessID, serviceID, providerID string) (*catalog.Snapshot, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByProviderAndPeriod(ctx context.Context, providerID, from, to string) ([]domain.Booking, error)
}

// TimeBlockRepository интерфейс репозитория блокировок времени
type TimeBlockRepository interface {
	GetByBusinessAndPeriod(ctx context.Context, businessID, from, to string) ([]domain.TimeBlock, error)
}

// AvailabilityEngine интерфейс движка доступности
type AvailabilityEngine interface {
	GetNextAvailableSlot(
		business domain.Business,
		service domain.Service,
		provider domain.Provider,
		bookings []domain.Booking,
		blocks []domain.TimeBlock,
		startDate string,
	) *domain.NextSlot
	Config() availability.Config
	Today() string
}

// Metrics интерфейс метрик расчета слотов
type Metrics interface {
	IncSlotCalculation(source string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
