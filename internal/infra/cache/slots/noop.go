package slots

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Noop используется, когда Redis выключен в конфигурации: всегда промах
type Noop struct{}

func (Noop) Get(context.Context, Key) ([]domain.TimeSlot, bool, error) {
	return nil, false, nil
}

func (Noop) Generation(context.Context, string, string) (int64, error) {
	return 0, nil
}

func (Noop) Put(context.Context, Key, int64, int, []domain.TimeSlot) error {
	return nil
}

func (Noop) ApplyBooking(context.Context, domain.Booking, PatchFunc) error {
	return nil
}

func (Noop) Invalidate(context.Context, string, ...string) error {
	return nil
}

var (
	_ Store = (*Cache)(nil)
	_ Store = Noop{}
)
