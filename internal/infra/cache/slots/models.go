package slots

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// entry значение поля хеша
type entry struct {
	DurationMinutes int          `json:"durationMinutes"`
	Slots           []cachedSlot `json:"slots"`
}

type cachedSlot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

func toCached(slots []domain.TimeSlot) []cachedSlot {
	result := make([]cachedSlot, len(slots))
	for i, s := range slots {
		result[i] = cachedSlot{Time: s.Time.String(), Available: s.Available, Reason: s.Reason}
	}
	return result
}

func fromCached(slots []cachedSlot) []domain.TimeSlot {
	result := make([]domain.TimeSlot, len(slots))
	for i, s := range slots {
		result[i] = domain.TimeSlot{Time: types.TimeString(s.Time), Available: s.Available, Reason: s.Reason}
	}
	return result
}
