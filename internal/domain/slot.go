package domain

import "github.com/m04kA/SMC-AppointmentService/pkg/types"

// TimeSlot кандидат на запись; Reason заполнен только для недоступных слотов
type TimeSlot struct {
	Time      types.TimeString
	Available bool
	Reason    string
}

// ValidationResult результат проверки конкретного времени записи
type ValidationResult struct {
	Valid  bool
	Reason string
}

// NextSlot ближайший свободный слот
type NextSlot struct {
	Date string
	Time types.TimeString
}

// FilterAvailable возвращает только доступные слоты
func FilterAvailable(slots []TimeSlot) []TimeSlot {
	result := make([]TimeSlot, 0, len(slots))
	for _, s := range slots {
		if s.Available {
			result = append(result, s)
		}
	}
	return result
}
