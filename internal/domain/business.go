package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// DaySchedule расписание работы бизнеса на один день недели
type DaySchedule struct {
	IsOpen     bool
	OpenTime   *types.TimeString
	CloseTime  *types.TimeString
	BreakStart *types.TimeString
	BreakEnd   *types.TimeString
}

// HasHours возвращает true, если день открыт и заданы время открытия и закрытия
func (d DaySchedule) HasHours() bool {
	return d.IsOpen && d.OpenTime != nil && d.CloseTime != nil
}

// HasBreak возвращает true, если задан перерыв
func (d DaySchedule) HasBreak() bool {
	return d.BreakStart != nil && d.BreakEnd != nil
}

// BusinessHours недельное расписание бизнеса
type BusinessHours struct {
	Monday    DaySchedule
	Tuesday   DaySchedule
	Wednesday DaySchedule
	Thursday  DaySchedule
	Friday    DaySchedule
	Saturday  DaySchedule
	Sunday    DaySchedule
}

// ForWeekday возвращает расписание на указанный день недели
func (h BusinessHours) ForWeekday(weekday time.Weekday) DaySchedule {
	switch weekday {
	case time.Monday:
		return h.Monday
	case time.Tuesday:
		return h.Tuesday
	case time.Wednesday:
		return h.Wednesday
	case time.Thursday:
		return h.Thursday
	case time.Friday:
		return h.Friday
	case time.Saturday:
		return h.Saturday
	case time.Sunday:
		return h.Sunday
	default:
		return DaySchedule{IsOpen: false}
	}
}

// Business бизнес (тенант), принимающий записи
type Business struct {
	ID            string
	Name          string
	Slug          string
	BusinessHours BusinessHours
}

// Service услуга бизнеса
type Service struct {
	ID              string
	BusinessID      string
	Name            string
	DurationMinutes int
	Price           *float64
}

// WorkingHours рабочее время сотрудника
type WorkingHours struct {
	Start types.TimeString
	End   types.TimeString
}

// Provider сотрудник (мастер), к которому записываются клиенты
type Provider struct {
	ID           string
	BusinessID   string
	Name         string
	WorkingDays  []string // "monday".."sunday"
	WorkingHours WorkingHours
}

// WorksOn возвращает true, если сотрудник работает в указанный день недели
func (p Provider) WorksOn(weekday time.Weekday) bool {
	name := WeekdayName(weekday)
	for _, day := range p.WorkingDays {
		if day == name {
			return true
		}
	}
	return false
}
