package reschedule_booking

import (
	rescheduleBooking "github.com/m04kA/SMC-AppointmentService/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	Date      string `json:"date"`      // "2026-03-03"
	StartTime string `json:"startTime"` // "11:00"
}

// RescheduleBookingResponse HTTP response model
type RescheduleBookingResponse struct {
	ID                string `json:"id"`
	BusinessID        string `json:"businessId"`
	ProviderID        string `json:"providerId"`
	ServiceID         string `json:"serviceId"`
	Date              string `json:"date"`
	StartTime         string `json:"startTime"`
	EndTime           string `json:"endTime"`
	Status            string `json:"status"`
	PreviousDate      string `json:"previousDate"`
	PreviousStartTime string `json:"previousStartTime"`
}

// SlotConflictResponse ответ 409 с причиной из движка доступности
type SlotConflictResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleBookingRequest) ToUseCaseRequest(bookingID string) *rescheduleBooking.Request {
	return &rescheduleBooking.Request{
		BookingID: bookingID,
		Date:      r.Date,
		StartTime: types.TimeString(r.StartTime),
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *RescheduleBookingResponse {
	return &RescheduleBookingResponse{
		ID:                resp.ID,
		BusinessID:        resp.BusinessID,
		ProviderID:        resp.ProviderID,
		ServiceID:         resp.ServiceID,
		Date:              resp.Date,
		StartTime:         resp.StartTime.String(),
		EndTime:           resp.EndTime.String(),
		Status:            resp.Status,
		PreviousDate:      resp.PreviousDate,
		PreviousStartTime: resp.PreviousStartTime.String(),
	}
}
