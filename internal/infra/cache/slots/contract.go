package slots

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Metrics счетчики операций кеша
type Metrics interface {
	IncCacheOperation(operation, result string)
}

// PatchFunc пересчитывает закешированный список слотов после нового бронирования.
// durationMinutes длительность услуги, для которой построен список.
type PatchFunc func(slots []domain.TimeSlot, durationMinutes int) []domain.TimeSlot

// Store общий интерфейс Redis-кеша и no-op реализации
type Store interface {
	Get(ctx context.Context, key Key) ([]domain.TimeSlot, bool, error)
	Generation(ctx context.Context, businessID, date string) (int64, error)
	Put(ctx context.Context, key Key, generation int64, durationMinutes int, slots []domain.TimeSlot) error
	ApplyBooking(ctx context.Context, booking domain.Booking, patch PatchFunc) error
	Invalidate(ctx context.Context, businessID string, dates ...string) error
}

// Key адрес списка слотов: хеш на (бизнес, дата), поле на (сотрудник, услуга)
type Key struct {
	BusinessID string
	ProviderID string
	ServiceID  string
	Date       string
}
