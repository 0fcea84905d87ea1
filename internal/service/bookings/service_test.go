package bookings

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

type fakeRepo struct {
	bookings  map[string]*domain.Booking
	filter    domain.BookingsFilter
	listErr   error
	cancelErr error
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeRepo) GetByBusinessWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	f.filter = filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	var result []*domain.Booking
	for _, b := range f.bookings {
		if b.BusinessID == filter.BusinessID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (f *fakeRepo) Cancel(_ context.Context, id string, reason string) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	b := f.bookings[id]
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	b.Status = domain.StatusCancelled
	b.CancellationReason = &reason
	b.CancelledAt = &now
	return nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id string, status domain.BookingStatus, from []domain.BookingStatus) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrCannotModify
	}
	for _, st := range from {
		if b.Status == st {
			b.Status = status
			return nil
		}
	}
	return bookingRepo.ErrCannotModify
}

type fakeCache struct {
	invalidated []string
}

func (f *fakeCache) Invalidate(_ context.Context, businessID string, dates ...string) error {
	for _, d := range dates {
		f.invalidated = append(f.invalidated, businessID+"/"+d)
	}
	return nil
}

type noopMetrics struct{}

func (noopMetrics) IncBookingAttempt(string, string) {}

func newService(repo *fakeRepo) (*Service, *fakeCache) {
	cache := &fakeCache{}
	return NewService(repo, cache, noopMetrics{}, logger.NewNop()), cache
}

func seed() *fakeRepo {
	return &fakeRepo{bookings: map[string]*domain.Booking{
		"b-1": {ID: "b-1", BusinessID: "biz-1", ProviderID: "p-1", Date: "2026-03-02", StartTime: "10:00", EndTime: "10:45",
			Status: domain.StatusConfirmed, Customer: domain.Customer{Name: "Ivan", Phone: "+7900"}},
		"b-2": {ID: "b-2", BusinessID: "biz-1", ProviderID: "p-2", Date: "2026-03-02", StartTime: "11:00", EndTime: "11:45",
			Status: domain.StatusCompleted},
	}}
}

func TestGetByID(t *testing.T) {
	svc, _ := newService(seed())

	resp, err := svc.GetByID(context.Background(), "b-1")
	require.NoError(t, err)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "10:45", resp.EndTime)
	assert.Equal(t, "Ivan", resp.Customer.Name)

	_, err = svc.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel(t *testing.T) {
	svc, cache := newService(seed())

	resp, err := svc.Cancel(context.Background(), "b-1", &models.CancelBookingRequest{CancellationReason: " sick "})

	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, ptr.Ptr("sick"), resp.CancellationReason)
	assert.NotNil(t, resp.CancelledAt)
	assert.Equal(t, []string{"biz-1/2026-03-02"}, cache.invalidated)
}

func TestCancel_Errors(t *testing.T) {
	t.Run("completed booking", func(t *testing.T) {
		svc, cache := newService(seed())
		_, err := svc.Cancel(context.Background(), "b-2", &models.CancelBookingRequest{})
		assert.ErrorIs(t, err, ErrCannotCancel)
		assert.Empty(t, cache.invalidated)
	})

	t.Run("not found", func(t *testing.T) {
		svc, _ := newService(seed())
		_, err := svc.Cancel(context.Background(), "missing", &models.CancelBookingRequest{})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("reason too long", func(t *testing.T) {
		svc, _ := newService(seed())
		_, err := svc.Cancel(context.Background(), "b-1", &models.CancelBookingRequest{
			CancellationReason: strings.Repeat("x", domain.MaxCancellationReasonLength+1),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("status changed concurrently", func(t *testing.T) {
		repo := seed()
		repo.cancelErr = bookingRepo.ErrCannotModify
		svc, _ := newService(repo)
		_, err := svc.Cancel(context.Background(), "b-1", &models.CancelBookingRequest{})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})
}

func TestGetBusinessBookings(t *testing.T) {
	repo := seed()
	svc, _ := newService(repo)

	resp, err := svc.GetBusinessBookings(context.Background(), &models.GetBusinessBookingsRequest{
		BusinessID: "biz-1",
		ProviderID: ptr.Ptr("p-1"),
		From:       ptr.Ptr("2026-03-01"),
		To:         ptr.Ptr("2026-03-31"),
		Status:     ptr.Ptr("confirmed"),
	})

	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)
	assert.Equal(t, "biz-1", repo.filter.BusinessID)
	assert.Equal(t, ptr.Ptr("p-1"), repo.filter.ProviderID)
	require.NotNil(t, repo.filter.Status)
	assert.Equal(t, domain.StatusConfirmed, *repo.filter.Status)
	assert.Equal(t, time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), *repo.filter.EndDate)
}

func TestGetBusinessBookings_InvalidFilter(t *testing.T) {
	tests := []struct {
		name string
		req  models.GetBusinessBookingsRequest
	}{
		{name: "no business", req: models.GetBusinessBookingsRequest{}},
		{name: "bad status", req: models.GetBusinessBookingsRequest{BusinessID: "biz-1", Status: ptr.Ptr("done")}},
		{name: "bad date", req: models.GetBusinessBookingsRequest{BusinessID: "biz-1", From: ptr.Ptr("03/01/2026")}},
		{name: "reversed period", req: models.GetBusinessBookingsRequest{BusinessID: "biz-1", From: ptr.Ptr("2026-03-10"), To: ptr.Ptr("2026-03-01")}},
		{name: "period too long", req: models.GetBusinessBookingsRequest{BusinessID: "biz-1", From: ptr.Ptr("2026-01-01"), To: ptr.Ptr("2026-12-31")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService(seed())
			req := tt.req
			_, err := svc.GetBusinessBookings(context.Background(), &req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestGetBusinessBookings_RepositoryError(t *testing.T) {
	repo := seed()
	repo.listErr = errors.New("db down")
	svc, _ := newService(repo)

	_, err := svc.GetBusinessBookings(context.Background(), &models.GetBusinessBookingsRequest{BusinessID: "biz-1"})

	assert.ErrorIs(t, err, ErrInternal)
}

func TestUpdateStatus(t *testing.T) {
	svc, _ := newService(seed())

	resp, err := svc.UpdateStatus(context.Background(), "b-1", &models.UpdateStatusRequest{Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)

	_, err = svc.UpdateStatus(context.Background(), "b-2", &models.UpdateStatusRequest{Status: "no_show"})
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)

	_, err = svc.UpdateStatus(context.Background(), "b-1", &models.UpdateStatusRequest{Status: "cancelled"})
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)

	_, err = svc.UpdateStatus(context.Background(), "missing", &models.UpdateStatusRequest{Status: "completed"})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = svc.UpdateStatus(context.Background(), "b-1", &models.UpdateStatusRequest{Status: "unknown"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
