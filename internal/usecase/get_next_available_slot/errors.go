package get_next_available_slot

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("get_next_available_slot: business not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("get_next_available_slot: service not found")

	// ErrProviderNotFound возвращается, когда сотрудник не найден
	ErrProviderNotFound = errors.New("get_next_available_slot: provider not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_next_available_slot: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_next_available_slot: internal error")
)
