package create_booking

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	createBooking "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// CustomerRequest контакты клиента
type CustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	BusinessID string          `json:"businessId"`
	ProviderID string          `json:"providerId"`
	ServiceID  string          `json:"serviceId"`
	Customer   CustomerRequest `json:"customer"`
	Date       string          `json:"date"`      // "2026-03-02"
	StartTime  string          `json:"startTime"` // "10:00"
	Notes      *string         `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              string          `json:"id"`
	BusinessID      string          `json:"businessId"`
	ProviderID      string          `json:"providerId"`
	ServiceID       string          `json:"serviceId"`
	Customer        CustomerRequest `json:"customer"`
	Date            string          `json:"date"`
	StartTime       string          `json:"startTime"`
	EndTime         string          `json:"endTime"`
	DurationMinutes int             `json:"durationMinutes"`
	Status          string          `json:"status"`
	ServiceName     string          `json:"serviceName"`
	ServicePrice    *float64        `json:"servicePrice,omitempty"`
	Notes           *string         `json:"notes,omitempty"`
	CreatedAt       string          `json:"createdAt"`
	UpdatedAt       string          `json:"updatedAt"`
}

// SlotConflictResponse ответ 409 с причиной из движка доступности
type SlotConflictResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Формат даты и времени проверяет use case.
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	return &createBooking.Request{
		BusinessID: r.BusinessID,
		ProviderID: r.ProviderID,
		ServiceID:  r.ServiceID,
		Customer: domain.Customer{
			Name:  r.Customer.Name,
			Email: r.Customer.Email,
			Phone: r.Customer.Phone,
		},
		Date:      r.Date,
		StartTime: types.TimeString(r.StartTime),
		Notes:     r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:         resp.ID,
		BusinessID: resp.BusinessID,
		ProviderID: resp.ProviderID,
		ServiceID:  resp.ServiceID,
		Customer: CustomerRequest{
			Name:  resp.Customer.Name,
			Email: resp.Customer.Email,
			Phone: resp.Customer.Phone,
		},
		Date:            resp.Date,
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		ServicePrice:    resp.ServicePrice,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
