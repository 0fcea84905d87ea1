package get_available_slots

import (
	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
)

// TimeSlotResponse HTTP модель слота
type TimeSlotResponse struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	BusinessID      string             `json:"businessId"`
	ProviderID      string             `json:"providerId"`
	ServiceID       string             `json:"serviceId"`
	Date            string             `json:"date"`
	DurationMinutes int                `json:"durationMinutes"`
	Slots           []TimeSlotResponse `json:"slots"`
}

// ToUseCaseRequest формирует запрос use case из параметров пути и query
func ToUseCaseRequest(businessID, providerID, serviceID, date string, onlyAvailable bool) *getAvailableSlots.Request {
	return &getAvailableSlots.Request{
		BusinessID:    businessID,
		ProviderID:    providerID,
		ServiceID:     serviceID,
		Date:          date,
		OnlyAvailable: onlyAvailable,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]TimeSlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, TimeSlotResponse{
			Time:      s.Time.String(),
			Available: s.Available,
			Reason:    s.Reason,
		})
	}

	return &AvailableSlotsResponse{
		BusinessID:      resp.BusinessID,
		ProviderID:      resp.ProviderID,
		ServiceID:       resp.ServiceID,
		Date:            resp.Date,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}
