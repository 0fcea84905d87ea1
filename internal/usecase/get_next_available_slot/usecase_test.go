package get_next_available_slot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeCatalog struct {
	snapshot *catalog.Snapshot
	err      error
}

func (f *fakeCatalog) Load(context.Context, string, string, string) (*catalog.Snapshot, error) {
	return f.snapshot, f.err
}

type fakeBookingRepo struct {
	bookings []domain.Booking
	err      error
	from, to string
}

func (f *fakeBookingRepo) GetByProviderAndPeriod(_ context.Context, _, from, to string) ([]domain.Booking, error) {
	f.from, f.to = from, to
	return f.bookings, f.err
}

type fakeTimeBlockRepo struct {
	blocks []domain.TimeBlock
	err    error
}

func (f *fakeTimeBlockRepo) GetByBusinessAndPeriod(context.Context, string, string, string) ([]domain.TimeBlock, error) {
	return f.blocks, f.err
}

type fakeMetrics struct{}

func (fakeMetrics) IncSlotCalculation(string) {}

func tsPtr(s string) *types.TimeString {
	t := types.TimeString(s)
	return &t
}

func snapshot(workingDays ...string) *catalog.Snapshot {
	return &catalog.Snapshot{
		Business: domain.Business{
			ID: "biz-1",
			BusinessHours: domain.BusinessHours{
				Monday: domain.DaySchedule{IsOpen: true, OpenTime: tsPtr("09:00"), CloseTime: tsPtr("18:00")},
			},
		},
		Service: domain.Service{ID: "svc-1", BusinessID: "biz-1", DurationMinutes: 60},
		Provider: domain.Provider{
			ID:           "p-1",
			BusinessID:   "biz-1",
			WorkingDays:  workingDays,
			WorkingHours: domain.WorkingHours{Start: "09:00", End: "17:00"},
		},
	}
}

// понедельник 2026-03-02, 16:30: все слоты сегодня уже в прошлом
var mondayEvening = time.Date(2026, 3, 2, 16, 30, 0, 0, time.UTC)

func newUseCase(cat *fakeCatalog, bookings *fakeBookingRepo, blocks *fakeTimeBlockRepo) *UseCase {
	engine := availability.NewEngine(availability.Config{BufferMinutes: domain.DefaultBufferMinutes, Location: time.UTC}, fixedClock{now: mondayEvening})
	return NewUseCase(cat, bookings, blocks, engine, fakeMetrics{}, logger.NewNop())
}

func TestExecute_SkipsToNextWorkingDay(t *testing.T) {
	bookings := &fakeBookingRepo{bookings: []domain.Booking{{
		ID: "b-1", ProviderID: "p-1", Date: "2026-03-09",
		StartTime: "09:00", EndTime: "10:00", Status: domain.StatusConfirmed,
	}}}
	uc := newUseCase(&fakeCatalog{snapshot: snapshot("monday")}, bookings, &fakeTimeBlockRepo{})

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: "biz-1", ProviderID: "p-1", ServiceID: "svc-1"})

	require.NoError(t, err)
	assert.True(t, resp.Found)
	assert.Equal(t, "2026-03-09", resp.Date)
	assert.Equal(t, types.TimeString("10:15"), resp.Time)
	assert.Equal(t, "2026-03-02", bookings.from)
	assert.Equal(t, "2026-03-31", bookings.to)
}

func TestExecute_ExplicitStartDate(t *testing.T) {
	uc := newUseCase(&fakeCatalog{snapshot: snapshot("monday")}, &fakeBookingRepo{}, &fakeTimeBlockRepo{})

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: "biz-1", ProviderID: "p-1", ServiceID: "svc-1", StartDate: "2026-03-16"})

	require.NoError(t, err)
	assert.Equal(t, "2026-03-16", resp.Date)
	assert.Equal(t, types.TimeString("09:00"), resp.Time)
}

func TestExecute_NotFound(t *testing.T) {
	// сотрудник работает только по воскресеньям, а бизнес по воскресеньям закрыт
	uc := newUseCase(&fakeCatalog{snapshot: snapshot("sunday")}, &fakeBookingRepo{}, &fakeTimeBlockRepo{})

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: "biz-1", ProviderID: "p-1", ServiceID: "svc-1"})

	require.NoError(t, err)
	assert.False(t, resp.Found)
	assert.Empty(t, resp.Date)
}

func TestExecute_Errors(t *testing.T) {
	t.Run("invalid start date", func(t *testing.T) {
		uc := newUseCase(&fakeCatalog{snapshot: snapshot("monday")}, &fakeBookingRepo{}, &fakeTimeBlockRepo{})
		_, err := uc.Execute(context.Background(), &Request{BusinessID: "biz-1", ProviderID: "p-1", ServiceID: "svc-1", StartDate: "tomorrow"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("provider not found", func(t *testing.T) {
		uc := newUseCase(&fakeCatalog{err: catalog.ErrProviderNotFound}, &fakeBookingRepo{}, &fakeTimeBlockRepo{})
		_, err := uc.Execute(context.Background(), &Request{BusinessID: "biz-1", ProviderID: "p-1", ServiceID: "svc-1"})
		assert.ErrorIs(t, err, ErrProviderNotFound)
	})

	t.Run("blocks repository failure", func(t *testing.T) {
		uc := newUseCase(&fakeCatalog{snapshot: snapshot("monday")}, &fakeBookingRepo{}, &fakeTimeBlockRepo{err: errors.New("db down")})
		_, err := uc.Execute(context.Background(), &Request{BusinessID: "biz-1", ProviderID: "p-1", ServiceID: "svc-1"})
		assert.ErrorIs(t, err, ErrInternal)
	})
}
