package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// CreateTimeBlockRequest запрос на создание блокировки
type CreateTimeBlockRequest struct {
	ProviderID *string `json:"providerId,omitempty"` // nil = блокировка на весь бизнес
	Date       string  `json:"date"`
	StartTime  string  `json:"startTime"`
	EndTime    string  `json:"endTime"`
	Reason     string  `json:"reason"`
}

// ListTimeBlocksRequest запрос списка блокировок за период
type ListTimeBlocksRequest struct {
	BusinessID string
	From       string
	To         string
}

// TimeBlockResponse ответ с данными блокировки
type TimeBlockResponse struct {
	ID         string    `json:"id"`
	BusinessID string    `json:"businessId"`
	ProviderID *string   `json:"providerId,omitempty"`
	Date       string    `json:"date"`
	StartTime  string    `json:"startTime"`
	EndTime    string    `json:"endTime"`
	Reason     string    `json:"reason"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TimeBlockListResponse ответ со списком блокировок
type TimeBlockListResponse struct {
	TimeBlocks []TimeBlockResponse `json:"timeBlocks"`
}

// FromDomainTimeBlock конвертирует domain модель в DTO
func FromDomainTimeBlock(b *domain.TimeBlock) *TimeBlockResponse {
	if b == nil {
		return nil
	}

	resp := &TimeBlockResponse{
		ID:         b.ID,
		BusinessID: b.BusinessID,
		Date:       b.Date,
		StartTime:  b.StartTime.String(),
		EndTime:    b.EndTime.String(),
		Reason:     b.Reason,
		CreatedAt:  b.CreatedAt,
	}
	if !b.IsBusinessWide() {
		resp.ProviderID = b.ProviderID
	}

	return resp
}

// FromDomainTimeBlockList конвертирует список блокировок в DTO
func FromDomainTimeBlockList(blocks []domain.TimeBlock) *TimeBlockListResponse {
	resp := &TimeBlockListResponse{
		TimeBlocks: make([]TimeBlockResponse, 0, len(blocks)),
	}
	for i := range blocks {
		resp.TimeBlocks = append(resp.TimeBlocks, *FromDomainTimeBlock(&blocks[i]))
	}
	return resp
}
