package reschedule_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrCannotReschedule возвращается, когда бронирование в текущем статусе нельзя перенести
	ErrCannotReschedule = errors.New("reschedule_booking: booking cannot be rescheduled in its current status")

	// ErrCatalogNotFound возвращается, когда бизнес, услуга или сотрудник бронирования больше не существуют
	ErrCatalogNotFound = errors.New("reschedule_booking: business, service or provider not found")

	// ErrSlotNotAvailable возвращается, когда новое время недоступно
	ErrSlotNotAvailable = errors.New("reschedule_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)

// SlotUnavailableError отказ в переносе с причиной из движка доступности
type SlotUnavailableError struct {
	Reason string
}

func (e *SlotUnavailableError) Error() string {
	return ErrSlotNotAvailable.Error() + ": " + e.Reason
}

func (e *SlotUnavailableError) Unwrap() error {
	return ErrSlotNotAvailable
}
