package reschedule_booking

import "github.com/m04kA/SMC-AppointmentService/pkg/types"

// Request модель запроса на перенос бронирования
type Request struct {
	BookingID string
	Date      string           // Новая дата (YYYY-MM-DD)
	StartTime types.TimeString // Новое время начала
}

// Response результат переноса
type Response struct {
	ID                string
	BusinessID        string
	ProviderID        string
	ServiceID         string
	Date              string
	StartTime         types.TimeString
	EndTime           types.TimeString
	Status            string
	PreviousDate      string
	PreviousStartTime types.TimeString
}
