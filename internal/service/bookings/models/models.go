package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidDate возвращается при некорректной дате фильтра
	ErrInvalidDate = errors.New("invalid date")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// GetBusinessBookingsRequest запрос на получение бронирований бизнеса
type GetBusinessBookingsRequest struct {
	BusinessID       string  `json:"businessId"`
	ProviderID       *string `json:"providerId,omitempty"`       // Фильтр по сотруднику (опционально)
	From             *string `json:"from,omitempty"`             // Начало периода YYYY-MM-DD (опционально)
	To               *string `json:"to,omitempty"`               // Конец периода YYYY-MM-DD (опционально)
	Status           *string `json:"status,omitempty"`           // Фильтр по статусу (опционально)
	IncludeCancelled bool    `json:"includeCancelled,omitempty"` // Включить отмененные бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetBusinessBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		BusinessID:       r.BusinessID,
		ProviderID:       r.ProviderID,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.From != nil {
		from, err := time.Parse(domain.DateFormat, *r.From)
		if err != nil {
			return filter, ErrInvalidDate
		}
		filter.StartDate = &from
	}

	if r.To != nil {
		to, err := time.Parse(domain.DateFormat, *r.To)
		if err != nil {
			return filter, ErrInvalidDate
		}
		filter.EndDate = &to
	}

	if filter.StartDate != nil && filter.EndDate != nil {
		if filter.EndDate.Before(*filter.StartDate) {
			return filter, ErrInvalidDate
		}
		if filter.EndDate.Sub(*filter.StartDate) > domain.MaxBookingPeriodDays*24*time.Hour {
			return filter, ErrInvalidDate
		}
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// CustomerResponse контакты клиента
type CustomerResponse struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID         string           `json:"id"`
	BusinessID string           `json:"businessId"`
	ProviderID string           `json:"providerId"`
	ServiceID  string           `json:"serviceId"`
	Customer   CustomerResponse `json:"customer"`
	Date       string           `json:"date"`      // "2026-03-02"
	StartTime  string           `json:"startTime"` // "10:00"
	EndTime    string           `json:"endTime"`   // "10:45"
	Status     string           `json:"status"`
	Notes      *string          `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:         b.ID,
		BusinessID: b.BusinessID,
		ProviderID: b.ProviderID,
		ServiceID:  b.ServiceID,
		Customer: CustomerResponse{
			Name:  b.Customer.Name,
			Email: b.Customer.Email,
			Phone: b.Customer.Phone,
		},
		Date:               b.Date,
		StartTime:          b.StartTime.String(),
		EndTime:            b.EndTime.String(),
		Status:             string(b.Status),
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
