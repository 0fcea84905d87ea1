package timeblocks

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// TimeBlockRepository интерфейс репозитория блокировок времени
type TimeBlockRepository interface {
	Create(ctx context.Context, block *domain.TimeBlock) (*domain.TimeBlock, error)
	GetByID(ctx context.Context, businessID, id string) (*domain.TimeBlock, error)
	Delete(ctx context.Context, businessID, id string) error
	GetByBusinessAndPeriod(ctx context.Context, businessID, from, to string) ([]domain.TimeBlock, error)
}

// ProviderCatalog интерфейс проверки сотрудника бизнеса
type ProviderCatalog interface {
	GetProvider(ctx context.Context, businessID, providerID string) (*domain.Provider, error)
}

// SlotCache интерфейс кеша рассчитанных слотов
type SlotCache interface {
	Invalidate(ctx context.Context, businessID string, dates ...string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
