package get_next_available_slot

import "github.com/m04kA/SMC-AppointmentService/pkg/types"

// Request модель запроса ближайшего свободного слота
type Request struct {
	BusinessID string
	ProviderID string
	ServiceID  string
	StartDate  string // YYYY-MM-DD, пусто = сегодня
}

// Response ближайший свободный слот. Found == false, если на горизонте поиска свободных слотов нет.
type Response struct {
	Found bool
	Date  string
	Time  types.TimeString
}
