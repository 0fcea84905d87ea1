package availability

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Config параметры движка доступности
type Config struct {
	SlotStepMinutes int            // Шаг сетки кандидатов
	BufferMinutes   int            // Зазор вокруг существующих бронирований; 0 без зазора, отрицательное значение = по умолчанию
	SearchDays      int            // Сколько дней просматривает GetNextAvailableSlot
	Location        *time.Location // Часовой пояс бизнеса
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() Config {
	return Config{
		SlotStepMinutes: domain.DefaultSlotStepMinutes,
		BufferMinutes:   domain.DefaultBufferMinutes,
		SearchDays:      domain.DefaultSearchDays,
		Location:        time.Local,
	}
}

// withDefaults подставляет значения по умолчанию вместо незаданных полей.
// Нулевой буфер допустим и сохраняется как есть.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.SlotStepMinutes <= 0 {
		c.SlotStepMinutes = def.SlotStepMinutes
	}
	if c.BufferMinutes < 0 {
		c.BufferMinutes = def.BufferMinutes
	}
	if c.SearchDays <= 0 {
		c.SearchDays = def.SearchDays
	}
	if c.Location == nil {
		c.Location = def.Location
	}
	return c
}
