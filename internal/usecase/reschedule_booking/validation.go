package reschedule_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

func validateRequest(req *Request) error {
	if req.BookingID == "" {
		return fmt.Errorf("%w: bookingId is required", ErrInvalidInput)
	}

	if _, err := time.Parse(domain.DateFormat, req.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	normalized, err := types.NewTimeStringFromString(req.StartTime.String())
	if err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	req.StartTime = normalized

	return nil
}

// excludeBooking убирает переносимое бронирование из списка, чтобы оно не мешало само себе
func excludeBooking(bookings []domain.Booking, id string) []domain.Booking {
	result := make([]domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.ID != id {
			result = append(result, b)
		}
	}
	return result
}
