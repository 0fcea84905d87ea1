package availability

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// dayContext всё, что нужно для оценки кандидатов одного дня
type dayContext struct {
	date     time.Time
	window   interval
	duration int
	lunch    *interval
	blocks   []blockedInterval
	bookings []interval
}

// effectiveWindow пересекает часы работы бизнеса на день и рабочие часы сотрудника
func effectiveWindow(day domain.DaySchedule, provider domain.Provider) (interval, bool) {
	if !day.HasHours() {
		return interval{}, false
	}
	business, ok := parseInterval(*day.OpenTime, *day.CloseTime)
	if !ok {
		return interval{}, false
	}
	personal, ok := parseInterval(provider.WorkingHours.Start, provider.WorkingHours.End)
	if !ok {
		return interval{}, false
	}

	return interval{
		start: max(business.start, personal.start),
		end:   min(business.end, personal.end),
	}, true
}

// lunchBreak возвращает перерыв дня, если он задан корректно
func lunchBreak(day domain.DaySchedule) *interval {
	if !day.HasBreak() {
		return nil
	}
	br, ok := parseInterval(*day.BreakStart, *day.BreakEnd)
	if !ok {
		return nil
	}
	return &br
}

// collectBlocks отбирает блокировки на дату, действующие для сотрудника
func collectBlocks(blocks []domain.TimeBlock, businessID, providerID, date string) []blockedInterval {
	result := make([]blockedInterval, 0, len(blocks))
	for i := range blocks {
		block := &blocks[i]
		if block.Date != date || !block.AppliesTo(businessID, providerID) {
			continue
		}
		iv, ok := parseInterval(block.StartTime, block.EndTime)
		if !ok {
			continue
		}
		result = append(result, blockedInterval{interval: iv, reason: block.Reason})
	}
	return result
}

// collectBookings отбирает активные бронирования сотрудника на дату, уже расширенные на буфер
func collectBookings(bookings []domain.Booking, providerID, date string, buffer int) []interval {
	result := make([]interval, 0, len(bookings))
	for i := range bookings {
		booking := &bookings[i]
		if booking.ProviderID != providerID || booking.Date != date || !booking.BlocksAvailability() {
			continue
		}
		iv, ok := parseInterval(booking.StartTime, booking.EndTime)
		if !ok {
			continue
		}
		result = append(result, iv.expand(buffer))
	}
	return result
}

// evaluate возвращает причину недоступности кандидата или пустую строку.
// Порядок проверок: перерыв, блокировки, бронирования, прошедшее время.
func (d *dayContext) evaluate(candidate interval, now time.Time, loc *time.Location) string {
	if d.lunch != nil && candidate.overlaps(*d.lunch) {
		return domain.ReasonLunchBreak
	}

	for _, block := range d.blocks {
		if candidate.overlaps(block.interval) {
			return block.reason
		}
	}

	for _, booking := range d.bookings {
		if candidate.overlaps(booking) {
			return domain.ReasonAlreadyBooked
		}
	}

	y, m, day := d.date.Date()
	startAt := time.Date(y, m, day, candidate.start/60, candidate.start%60, 0, 0, loc)
	if !startAt.After(now) {
		return domain.ReasonPastTime
	}

	return ""
}
