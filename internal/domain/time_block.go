package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// TimeBlock разовая недоступность: на весь бизнес (ProviderID == nil) или на одного сотрудника
type TimeBlock struct {
	ID         string
	BusinessID string
	ProviderID *string
	Date       string // YYYY-MM-DD
	StartTime  types.TimeString
	EndTime    types.TimeString
	Reason     string
	CreatedAt  time.Time
}

// IsBusinessWide возвращает true, если блокировка действует на весь бизнес
func (b *TimeBlock) IsBusinessWide() bool {
	return b.ProviderID == nil || *b.ProviderID == ""
}

// AppliesTo возвращает true, если блокировка действует на сотрудника providerID бизнеса businessID
func (b *TimeBlock) AppliesTo(businessID, providerID string) bool {
	if b.IsBusinessWide() {
		return b.BusinessID == businessID
	}
	return *b.ProviderID == providerID
}
