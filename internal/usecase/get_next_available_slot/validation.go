package get_next_available_slot

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

func validateRequest(req *Request) error {
	if req.BusinessID == "" {
		return fmt.Errorf("%w: businessId is required", ErrInvalidInput)
	}
	if req.ProviderID == "" {
		return fmt.Errorf("%w: providerId is required", ErrInvalidInput)
	}
	if req.ServiceID == "" {
		return fmt.Errorf("%w: serviceId is required", ErrInvalidInput)
	}
	if req.StartDate != "" {
		if _, err := time.Parse(domain.DateFormat, req.StartDate); err != nil {
			return fmt.Errorf("%w: startDate must be YYYY-MM-DD", ErrInvalidInput)
		}
	}
	return nil
}

// searchPeriodEnd возвращает последний день горизонта поиска
func searchPeriodEnd(startDate string, searchDays int) string {
	start, _ := time.Parse(domain.DateFormat, startDate)
	return start.AddDate(0, 0, searchDays-1).Format(domain.DateFormat)
}
