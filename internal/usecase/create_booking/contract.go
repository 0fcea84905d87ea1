package create_booking

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/cache/slots"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// CatalogService интерфейс сервиса каталога
type CatalogService interface {
	Load(ctx context.Context, businessID, serviceID, providerID string) (*catalog.Snapshot, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByProviderAndDate(ctx context.Context, providerID, date string) ([]domain.Booking, error)
}

// TimeBlockRepository интерфейс репозитория блокировок времени
type TimeBlockRepository interface {
	GetByBusinessAndPeriod(ctx context.Context, businessID, from, to string) ([]domain.TimeBlock, error)
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
	UpdateAvailabilityAfterBooking(slots []domain.TimeSlot, booking domain.Booking, service domain.Service) []domain.TimeSlot
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// SlotCache интерфейс кеша рассчитанных слотов
type SlotCache interface {
	ApplyBooking(ctx context.Context, booking domain.Booking, patch slots.PatchFunc) error
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
