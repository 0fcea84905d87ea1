package get_next_available_slot

import (
	getNextAvailableSlot "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_next_available_slot"
)

// NextSlotResponse HTTP response model. При found=false дата и время не передаются.
type NextSlotResponse struct {
	Found bool   `json:"found"`
	Date  string `json:"date,omitempty"`
	Time  string `json:"time,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getNextAvailableSlot.Response) *NextSlotResponse {
	if !resp.Found {
		return &NextSlotResponse{Found: false}
	}
	return &NextSlotResponse{
		Found: true,
		Date:  resp.Date,
		Time:  resp.Time.String(),
	}
}
