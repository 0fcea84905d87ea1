package booking

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

func newRepo(t *testing.T) (*Repository, *sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), db, mock
}

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows(bookingColumns)
}

func addBookingRow(rows *sqlmock.Rows, id, start, end string, status domain.BookingStatus) *sqlmock.Rows {
	created := time.Date(2026, 2, 20, 10, 0, 0, 0, time.UTC)
	return rows.AddRow(
		id, "biz-1", "p-1", "svc-1",
		"Ivan", "ivan@example.com", nil,
		time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		start+":00", end+":00",
		string(status),
		nil, nil, nil,
		created, created,
	)
}

func TestCreate(t *testing.T) {
	repo, _, mock := newRepo(t)
	created := time.Date(2026, 2, 25, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings (id,business_id,provider_id,service_id,customer_name,customer_email,customer_phone,booking_date,start_time,end_time,status,notes) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12) RETURNING created_at, updated_at")).
		WithArgs(sqlmock.AnyArg(), "biz-1", "p-1", "svc-1", "Ivan", "ivan@example.com", "", "2026-03-02", "10:00", "10:45", "confirmed", nil).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(created, created))

	booking, err := repo.Create(context.Background(), &domain.Booking{
		BusinessID: "biz-1",
		ProviderID: "p-1",
		ServiceID:  "svc-1",
		Customer:   domain.Customer{Name: "Ivan", Email: "ivan@example.com"},
		Date:       "2026-03-02",
		StartTime:  "10:00",
		EndTime:    "10:45",
		Status:     domain.StatusConfirmed,
	})

	require.NoError(t, err)
	assert.Len(t, booking.ID, 36)
	assert.Equal(t, created, booking.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_UniqueViolation(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "bookings_active_slot_uniq"})

	_, err := repo.Create(context.Background(), &domain.Booking{ID: "b-1", Date: "2026-03-02", StartTime: "10:00", EndTime: "10:45"})

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestGetByID(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, business_id, provider_id, service_id, customer_name, customer_email, customer_phone, booking_date, start_time, end_time, status, notes, cancellation_reason, cancelled_at, created_at, updated_at FROM bookings WHERE id = $1")).
		WithArgs("b-1").
		WillReturnRows(addBookingRow(bookingRows(), "b-1", "10:00", "10:45", domain.StatusConfirmed))

	booking, err := repo.GetByID(context.Background(), "b-1")

	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", booking.Date)
	assert.Equal(t, types.TimeString("10:00"), booking.StartTime)
	assert.Equal(t, types.TimeString("10:45"), booking.EndTime)
	assert.Equal(t, domain.StatusConfirmed, booking.Status)
	assert.Equal(t, "ivan@example.com", booking.Customer.Email)
	assert.Empty(t, booking.Customer.Phone)
	assert.Nil(t, booking.Notes)
	assert.Nil(t, booking.CancelledAt)
}

func TestGetByID_NotFound(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE id = $1")).
		WithArgs("missing").
		WillReturnRows(bookingRows())

	_, err := repo.GetByID(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetByProviderAndDate_LocksInsideTransaction(t *testing.T) {
	repo, db, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE booking_date = $1 AND provider_id = $2 AND status <> $3 ORDER BY start_time ASC FOR UPDATE")).
		WithArgs("2026-03-02", "p-1", "cancelled").
		WillReturnRows(addBookingRow(addBookingRow(bookingRows(), "b-1", "10:00", "10:45", domain.StatusConfirmed), "b-2", "12:00", "12:30", domain.StatusPending))

	tx, err := db.Begin()
	require.NoError(t, err)

	bookings, err := repo.GetByProviderAndDate(dbmetrics.WithTx(context.Background(), tx), "p-1", "2026-03-02")

	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, "b-2", bookings[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByProviderAndDate_NoLockOutsideTransaction(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(`ORDER BY start_time ASC$`).
		WithArgs("2026-03-02", "p-1", "cancelled").
		WillReturnRows(bookingRows())

	bookings, err := repo.GetByProviderAndDate(context.Background(), "p-1", "2026-03-02")

	require.NoError(t, err)
	assert.NotNil(t, bookings)
	assert.Empty(t, bookings)
}

func TestGetByProviderAndPeriod(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE provider_id = $1 AND booking_date >= $2 AND booking_date <= $3 AND status <> $4 ORDER BY booking_date ASC, start_time ASC")).
		WithArgs("p-1", "2026-03-02", "2026-03-31", "cancelled").
		WillReturnRows(addBookingRow(bookingRows(), "b-1", "10:00", "10:45", domain.StatusConfirmed))

	bookings, err := repo.GetByProviderAndPeriod(context.Background(), "p-1", "2026-03-02", "2026-03-31")

	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}

func TestGetByBusinessWithFilter(t *testing.T) {
	repo, _, mock := newRepo(t)
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE business_id = $1 AND provider_id = $2 AND booking_date >= $3 AND booking_date <= $4 AND status <> $5 ORDER BY booking_date ASC, start_time ASC")).
		WithArgs("biz-1", "p-1", "2026-03-01", "2026-03-07", "cancelled").
		WillReturnRows(addBookingRow(bookingRows(), "b-1", "10:00", "10:45", domain.StatusConfirmed))

	bookings, err := repo.GetByBusinessWithFilter(context.Background(), domain.BookingsFilter{
		BusinessID: "biz-1",
		ProviderID: ptr.Ptr("p-1"),
		StartDate:  &from,
		EndDate:    &to,
	})

	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "b-1", bookings[0].ID)
}

func TestGetByBusinessWithFilter_StatusOverridesCancelledFilter(t *testing.T) {
	repo, _, mock := newRepo(t)
	status := domain.StatusCancelled

	mock.ExpectQuery(regexp.QuoteMeta("WHERE business_id = $1 AND status = $2 ORDER BY")).
		WithArgs("biz-1", "cancelled").
		WillReturnRows(bookingRows())

	_, err := repo.GetByBusinessWithFilter(context.Background(), domain.BookingsFilter{BusinessID: "biz-1", Status: &status})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancel(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status = $1, cancellation_reason = $2, cancelled_at = NOW(), updated_at = NOW() WHERE id = $3 AND status IN ($4,$5)")).
		WithArgs("cancelled", "client asked", "b-1", "pending", "confirmed").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Cancel(context.Background(), "b-1", "client asked"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancel_NotModifiable(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings")).WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Cancel(context.Background(), "b-1", ""), ErrCannotModify)
}

func TestReschedule(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET booking_date = $1, start_time = $2, end_time = $3, updated_at = NOW() WHERE id = $4 AND status IN ($5,$6)")).
		WithArgs("2026-03-09", "11:00", "11:45", "b-1", "pending", "confirmed").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Reschedule(context.Background(), "b-1", "2026-03-09", "11:00", "11:45"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReschedule_UniqueViolation(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings")).WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Reschedule(context.Background(), "b-1", "2026-03-09", "11:00", "11:45")

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestUpdateStatus(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2 AND status IN ($3)")).
		WithArgs("completed", "b-1", "confirmed").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), "b-1", domain.StatusCompleted, []domain.BookingStatus{domain.StatusConfirmed})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_NotModifiable(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings")).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), "b-1", domain.StatusCompleted, []domain.BookingStatus{domain.StatusConfirmed})

	assert.ErrorIs(t, err, ErrCannotModify)
}
