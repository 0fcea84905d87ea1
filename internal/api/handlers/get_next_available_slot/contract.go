package get_next_available_slot

import (
	"context"

	getNextAvailableSlot "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_next_available_slot"
)

type GetNextAvailableSlotUseCase interface {
	Execute(ctx context.Context, req *getNextAvailableSlot.Request) (*getNextAvailableSlot.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
