package reschedule_booking

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByProviderAndDate(ctx context.Context, providerID, date string) ([]domain.Booking, error)
	Reschedule(ctx context.Context, id, date string, start, end types.TimeString) error
}

// TimeBlockRepository интерфейс репозитория блокировок времени
type TimeBlockRepository interface {
	GetByBusinessAndPeriod(ctx context.Context, businessID, from, to string) ([]domain.TimeBlock, error)
}

// CatalogService интерфейс сервиса каталога
type CatalogService interface {
	Load(ctx context.Context, businessID, serviceID, providerID string) (*catalog.Snapshot, error)
}

// AvailabilityEngine интерфейс движка доступности
type AvailabilityEngine interface {
	ValidateBookingTime(
		business domain.Business,
		service domain.Service,
		provider domain.Provider,
		date string,
		startTime types.TimeString,
		bookings []domain.Booking,
		blocks []domain.TimeBlock,
	) domain.ValidationResult
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// SlotCache интерфейс кеша рассчитанных слотов
type SlotCache interface {
	Invalidate(ctx context.Context, businessID string, dates ...string) error
}

// Metrics интерфейс метрик бронирования
type Metrics interface {
	IncBookingAttempt(operation, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
