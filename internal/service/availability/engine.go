package availability

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Engine вычисляет доступные для записи слоты.
// Не хранит изменяемого состояния, безопасен для конкурентного использования.
type Engine struct {
	cfg   Config
	clock TimeProvider
}

// NewEngine создает движок доступности. Незаданные параметры заменяются значениями по умолчанию.
func NewEngine(cfg Config, clock TimeProvider) *Engine {
	if clock == nil {
		clock = &RealTimeProvider{}
	}
	return &Engine{
		cfg:   cfg.withDefaults(),
		clock: clock,
	}
}

// Config возвращает действующую конфигурацию движка
func (e *Engine) Config() Config {
	return e.cfg
}

// Today возвращает сегодняшнюю дату в часовом поясе бизнеса (YYYY-MM-DD)
func (e *Engine) Today() string {
	return e.clock.Now().In(e.cfg.Location).Format(domain.DateFormat)
}

// CalculateAvailableTimeSlots возвращает все кандидаты дня в хронологическом порядке.
// Закрытый день, выходной сотрудника или некорректная дата дают пустой список.
func (e *Engine) CalculateAvailableTimeSlots(
	business domain.Business,
	service domain.Service,
	provider domain.Provider,
	date string,
	bookings []domain.Booking,
	blocks []domain.TimeBlock,
) []domain.TimeSlot {
	slots := make([]domain.TimeSlot, 0)

	day, ok := e.buildDay(business, service, provider, date, bookings, blocks)
	if !ok {
		return slots
	}

	now := e.clock.Now()
	for start := day.window.start; start+day.duration <= day.window.end; start += e.cfg.SlotStepMinutes {
		candidate := interval{start: start, end: start + day.duration}
		slotTime, err := types.FromMinutes(start)
		if err != nil {
			break
		}

		reason := day.evaluate(candidate, now, e.cfg.Location)
		slots = append(slots, domain.TimeSlot{
			Time:      slotTime,
			Available: reason == "",
			Reason:    reason,
		})
	}

	return slots
}

// ValidateBookingTime проверяет, что startTime совпадает со свободным слотом сетки.
// Должен вызываться повторно непосредственно перед сохранением бронирования.
func (e *Engine) ValidateBookingTime(
	business domain.Business,
	service domain.Service,
	provider domain.Provider,
	date string,
	startTime types.TimeString,
	bookings []domain.Booking,
	blocks []domain.TimeBlock,
) domain.ValidationResult {
	normalized, err := types.NewTimeStringFromString(startTime.String())
	if err != nil {
		return domain.ValidationResult{Valid: false, Reason: domain.ReasonSlotNotFound}
	}

	for _, slot := range e.CalculateAvailableTimeSlots(business, service, provider, date, bookings, blocks) {
		if slot.Time == normalized {
			return domain.ValidationResult{Valid: slot.Available, Reason: slot.Reason}
		}
	}

	return domain.ValidationResult{Valid: false, Reason: domain.ReasonSlotNotFound}
}

// GetNextAvailableSlot ищет первый свободный слот начиная с startDate (пусто = сегодня)
// на горизонте SearchDays дней. Возвращает nil, если свободных слотов нет.
func (e *Engine) GetNextAvailableSlot(
	business domain.Business,
	service domain.Service,
	provider domain.Provider,
	bookings []domain.Booking,
	blocks []domain.TimeBlock,
	startDate string,
) *domain.NextSlot {
	if startDate == "" {
		startDate = e.Today()
	}
	start, err := time.ParseInLocation(domain.DateFormat, startDate, e.cfg.Location)
	if err != nil {
		return nil
	}

	for i := 0; i < e.cfg.SearchDays; i++ {
		date := start.AddDate(0, 0, i).Format(domain.DateFormat)
		for _, slot := range e.CalculateAvailableTimeSlots(business, service, provider, date, bookings, blocks) {
			if slot.Available {
				return &domain.NextSlot{Date: date, Time: slot.Time}
			}
		}
	}

	return nil
}

// UpdateAvailabilityAfterBooking помечает слоты, пересекающиеся с новым бронированием (с буфером),
// как "Recently booked". Исходный список не изменяется.
func (e *Engine) UpdateAvailabilityAfterBooking(
	slots []domain.TimeSlot,
	booking domain.Booking,
	service domain.Service,
) []domain.TimeSlot {
	result := make([]domain.TimeSlot, len(slots))
	copy(result, slots)

	booked, ok := bookingInterval(booking, service)
	if !ok {
		return result
	}
	booked = booked.expand(e.cfg.BufferMinutes)

	for i, slot := range result {
		start, err := slot.Time.Minutes()
		if err != nil {
			continue
		}
		if (interval{start: start, end: start + service.DurationMinutes}).overlaps(booked) {
			result[i].Available = false
			result[i].Reason = domain.ReasonRecentlyBooked
		}
	}

	return result
}

// buildDay готовит данные дня. ok == false означает, что кандидатов нет.
func (e *Engine) buildDay(
	business domain.Business,
	service domain.Service,
	provider domain.Provider,
	date string,
	bookings []domain.Booking,
	blocks []domain.TimeBlock,
) (*dayContext, bool) {
	if service.DurationMinutes <= 0 {
		return nil, false
	}

	parsed, err := time.ParseInLocation(domain.DateFormat, date, e.cfg.Location)
	if err != nil {
		return nil, false
	}

	schedule := business.BusinessHours.ForWeekday(parsed.Weekday())
	if !schedule.HasHours() || !provider.WorksOn(parsed.Weekday()) {
		return nil, false
	}

	window, ok := effectiveWindow(schedule, provider)
	if !ok {
		return nil, false
	}

	return &dayContext{
		date:     parsed,
		window:   window,
		duration: service.DurationMinutes,
		lunch:    lunchBreak(schedule),
		blocks:   collectBlocks(blocks, business.ID, provider.ID, date),
		bookings: collectBookings(bookings, provider.ID, date, e.cfg.BufferMinutes),
	}, true
}

// bookingInterval интервал бронирования; если конец не задан, он вычисляется по длительности услуги
func bookingInterval(booking domain.Booking, service domain.Service) (interval, bool) {
	if iv, ok := parseInterval(booking.StartTime, booking.EndTime); ok {
		return iv, true
	}
	start, err := booking.StartTime.Minutes()
	if err != nil {
		return interval{}, false
	}
	return interval{start: start, end: start + service.DurationMinutes}, true
}
