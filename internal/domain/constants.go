package domain

import "time"

// Параметры движка доступности по умолчанию
const (
	DefaultSlotStepMinutes = 15 // Шаг сетки слотов
	DefaultBufferMinutes   = 5  // Зазор вокруг существующих бронирований
	DefaultSearchDays      = 30 // Горизонт поиска ближайшего свободного слота
)

// Причины недоступности слота
const (
	ReasonLunchBreak     = "Lunch break"
	ReasonAlreadyBooked  = "Already booked"
	ReasonPastTime       = "Past time"
	ReasonRecentlyBooked = "Recently booked"
	ReasonSlotNotFound   = "Time slot not found"
)

// Business validation constants
const (
	MinServiceDurationMinutes   = 5
	MaxServiceDurationMinutes   = 480 // 8 hours
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxBlockReasonLength        = 255
	MaxBookingPeriodDays        = 92
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Названия дней недели, индекс совпадает с time.Weekday
var weekdayNames = [...]string{
	time.Sunday:    "sunday",
	time.Monday:    "monday",
	time.Tuesday:   "tuesday",
	time.Wednesday: "wednesday",
	time.Thursday:  "thursday",
	time.Friday:    "friday",
	time.Saturday:  "saturday",
}

// WeekdayName возвращает название дня недели в нижнем регистре ("monday")
func WeekdayName(d time.Weekday) string {
	if d < time.Sunday || d > time.Saturday {
		return ""
	}
	return weekdayNames[d]
}

// IsWeekdayName проверяет, что строка является названием дня недели
func IsWeekdayName(name string) bool {
	for _, n := range weekdayNames {
		if n == name {
			return true
		}
	}
	return false
}
