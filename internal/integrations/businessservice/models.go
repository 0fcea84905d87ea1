package businessservice

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// DaySchedule расписание на день из BusinessService
type DaySchedule struct {
	IsOpen     bool    `json:"isOpen"`
	OpenTime   *string `json:"openTime,omitempty"`
	CloseTime  *string `json:"closeTime,omitempty"`
	BreakStart *string `json:"breakStart,omitempty"`
	BreakEnd   *string `json:"breakEnd,omitempty"`
}

// BusinessHours недельное расписание
type BusinessHours struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// Business модель бизнеса из BusinessService
type Business struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Slug          string        `json:"slug"`
	BusinessHours BusinessHours `json:"businessHours"`
}

// Service модель услуги из BusinessService
type Service struct {
	ID              string   `json:"id"`
	BusinessID      string   `json:"businessId"`
	Name            string   `json:"name"`
	DurationMinutes int      `json:"durationMinutes"`
	Price           *float64 `json:"price,omitempty"`
}

// WorkingHours рабочие часы сотрудника
type WorkingHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Provider модель сотрудника из BusinessService
type Provider struct {
	ID           string       `json:"id"`
	BusinessID   string       `json:"businessId"`
	Name         string       `json:"name"`
	WorkingDays  []string     `json:"workingDays"`
	WorkingHours WorkingHours `json:"workingHours"`
}

// ErrorResponse модель ошибки от BusinessService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ToDomain конвертирует ответ в доменную модель
func (b *Business) ToDomain() domain.Business {
	return domain.Business{
		ID:   b.ID,
		Name: b.Name,
		Slug: b.Slug,
		BusinessHours: domain.BusinessHours{
			Monday:    b.BusinessHours.Monday.toDomain(),
			Tuesday:   b.BusinessHours.Tuesday.toDomain(),
			Wednesday: b.BusinessHours.Wednesday.toDomain(),
			Thursday:  b.BusinessHours.Thursday.toDomain(),
			Friday:    b.BusinessHours.Friday.toDomain(),
			Saturday:  b.BusinessHours.Saturday.toDomain(),
			Sunday:    b.BusinessHours.Sunday.toDomain(),
		},
	}
}

// ToDomain конвертирует ответ в доменную модель
func (s *Service) ToDomain() domain.Service {
	return domain.Service{
		ID:              s.ID,
		BusinessID:      s.BusinessID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
	}
}

// ToDomain конвертирует ответ в доменную модель
func (p *Provider) ToDomain() domain.Provider {
	return domain.Provider{
		ID:          p.ID,
		BusinessID:  p.BusinessID,
		Name:        p.Name,
		WorkingDays: p.WorkingDays,
		WorkingHours: domain.WorkingHours{
			Start: types.TimeString(p.WorkingHours.Start),
			End:   types.TimeString(p.WorkingHours.End),
		},
	}
}

func (d DaySchedule) toDomain() domain.DaySchedule {
	return domain.DaySchedule{
		IsOpen:     d.IsOpen,
		OpenTime:   toTimeString(d.OpenTime),
		CloseTime:  toTimeString(d.CloseTime),
		BreakStart: toTimeString(d.BreakStart),
		BreakEnd:   toTimeString(d.BreakEnd),
	}
}

func toTimeString(s *string) *types.TimeString {
	if s == nil || *s == "" {
		return nil
	}
	ts := types.TimeString(*s)
	return &ts
}
