package catalog

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("catalog: business not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена или принадлежит другому бизнесу
	ErrServiceNotFound = errors.New("catalog: service not found")

	// ErrProviderNotFound возвращается, когда сотрудник не найден или принадлежит другому бизнесу
	ErrProviderNotFound = errors.New("catalog: provider not found")

	// ErrInternal возвращается при недоступности BusinessService
	ErrInternal = errors.New("catalog: internal error")
)
