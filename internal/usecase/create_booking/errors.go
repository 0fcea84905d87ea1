package create_booking

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("create_booking: business not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrProviderNotFound возвращается, когда сотрудник не найден
	ErrProviderNotFound = errors.New("create_booking: provider not found")

	// ErrSlotNotAvailable возвращается, когда выбранное время недоступно
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// SlotUnavailableError отказ в записи с причиной из движка доступности ("Already booked", "Past time", ...)
type SlotUnavailableError struct {
	Reason string
}

func (e *SlotUnavailableError) Error() string {
	return ErrSlotNotAvailable.Error() + ": " + e.Reason
}

func (e *SlotUnavailableError) Unwrap() error {
	return ErrSlotNotAvailable
}
