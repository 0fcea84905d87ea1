package availability

import "github.com/m04kA/SMC-AppointmentService/pkg/types"

// interval полуоткрытый интервал [start, end) в минутах от полуночи
type interval struct {
	start int
	end   int
}

// overlaps проверяет пересечение полуоткрытых интервалов.
// Интервалы, которые только граничат (10:00-10:45 и 10:45-11:00), не пересекаются.
func (i interval) overlaps(other interval) bool {
	return i.start < other.end && i.end > other.start
}

// expand расширяет интервал на margin минут в обе стороны
func (i interval) expand(margin int) interval {
	return interval{start: i.start - margin, end: i.end + margin}
}

// parseInterval разбирает пару HH:MM. ok == false, если одно из значений некорректно.
func parseInterval(start, end types.TimeString) (interval, bool) {
	s, err := start.Minutes()
	if err != nil {
		return interval{}, false
	}
	e, err := end.Minutes()
	if err != nil {
		return interval{}, false
	}
	return interval{start: s, end: e}, true
}

// blockedInterval интервал блокировки с причиной
type blockedInterval struct {
	interval
	reason string
}
