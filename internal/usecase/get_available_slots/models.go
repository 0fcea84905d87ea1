package get_available_slots

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

// Request модель запроса на получение слотов
type Request struct {
	BusinessID    string // ID бизнеса
	ProviderID    string // ID сотрудника
	ServiceID     string // ID услуги
	Date          string // Дата (YYYY-MM-DD)
	OnlyAvailable bool   // Вернуть только свободные слоты
}

// Response модель ответа со списком слотов
type Response struct {
	BusinessID      string
	ProviderID      string
	ServiceID       string
	Date            string
	DurationMinutes int               // Длительность услуги
	Slots           []domain.TimeSlot // Слоты в хронологическом порядке
}
