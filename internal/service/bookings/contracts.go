package bookings

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByBusinessWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id string, reason string) error
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus, from []domain.BookingStatus) error
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
