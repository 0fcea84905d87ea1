package timeblocks

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/timeblocks/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// buildTimeBlock валидирует запрос и собирает domain модель
func buildTimeBlock(businessID string, req *models.CreateTimeBlockRequest) (*domain.TimeBlock, error) {
	if businessID == "" {
		return nil, fmt.Errorf("%w: businessId is required", ErrInvalidInput)
	}

	if _, err := time.Parse(domain.DateFormat, req.Date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	start, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	end, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}

	if !start.IsBefore(end) {
		return nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}
	if len(reason) > domain.MaxBlockReasonLength {
		return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxBlockReasonLength)
	}

	block := &domain.TimeBlock{
		BusinessID: businessID,
		Date:       req.Date,
		StartTime:  start,
		EndTime:    end,
		Reason:     reason,
	}
	if req.ProviderID != nil && *req.ProviderID != "" {
		block.ProviderID = req.ProviderID
	}

	return block, nil
}

// validatePeriod проверяет диапазон дат списка
func validatePeriod(from, to string) error {
	fromDate, err := time.Parse(domain.DateFormat, from)
	if err != nil {
		return fmt.Errorf("%w: from must be YYYY-MM-DD", ErrInvalidInput)
	}
	toDate, err := time.Parse(domain.DateFormat, to)
	if err != nil {
		return fmt.Errorf("%w: to must be YYYY-MM-DD", ErrInvalidInput)
	}
	if toDate.Before(fromDate) {
		return fmt.Errorf("%w: to must not be before from", ErrInvalidInput)
	}
	if toDate.Sub(fromDate) > domain.MaxBookingPeriodDays*24*time.Hour {
		return fmt.Errorf("%w: period must be at most %d days", ErrInvalidInput, domain.MaxBookingPeriodDays)
	}
	return nil
}
