package get_available_slots

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/cache/slots"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog"
)

// CatalogService интерфейс сервиса каталога (бизнес, услуга, сотрудник)
type CatalogService interface {
	Load(ctx context.Context, businessID, serviceID, providerID string) (*catalog.Snapshot, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetByProviderAndDate получает активные бронирования сотрудника на дату
	GetByProviderAndDate(ctx context.Context, providerID, date string) ([]domain.Booking, error)
}

// TimeBlockRepository интерфейс репозитория блокировок времени
type TimeBlockRepository interface {
	GetByBusinessAndPeriod(ctx context.Context, businessID, from, to string) ([]domain.TimeBlock, error)
}

// AvailabilityEngine интерфейс движка доступности
type AvailabilityEngine interface {
	CalculateAvailableTimeSlots(
		business domain.Business,
		service domain.Service,
		provider domain.Provider,
		date string,
		bookings []domain.Booking,
		blocks []domain.TimeBlock,
	) []domain.TimeSlot
	Today() string
}

// SlotCache интерфейс кеша рассчитанных слотов
type SlotCache interface {
	Get(ctx context.Context, key slots.Key) ([]domain.TimeSlot, bool, error)
	Generation(ctx context.Context, businessID, date string) (int64, error)
	Put(ctx context.Context, key slots.Key, generation int64, durationMinutes int, slots []domain.TimeSlot) error
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
