package create_booking

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	BusinessID string           // ID бизнеса
	ProviderID string           // ID сотрудника
	ServiceID  string           // ID услуги
	Customer   domain.Customer  // Контакты клиента
	Date       string           // Дата (YYYY-MM-DD)
	StartTime  types.TimeString // Время начала (например, "10:00")
	Notes      *string          // Заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              string
	BusinessID      string
	ProviderID      string
	ServiceID       string
	Customer        domain.Customer
	Date            string
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Status          string

	// Денормализованные данные услуги
	ServiceName  string
	ServicePrice *float64
	Notes        *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
