package reschedule_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	rescheduleBooking "github.com/m04kA/SMC-AppointmentService/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type stubUseCase struct {
	gotReq *rescheduleBooking.Request
	resp   *rescheduleBooking.Response
	err    error
}

func (s *stubUseCase) Execute(_ context.Context, req *rescheduleBooking.Request) (*rescheduleBooking.Response, error) {
	s.gotReq = req
	return s.resp, s.err
}

func patch(uc RescheduleBookingUseCase, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/bookings/{bookingId}/reschedule", NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodPatch)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/bookings/bk-1/reschedule", strings.NewReader(body)))
	return rec
}

func TestHandle_Rescheduled(t *testing.T) {
	uc := &stubUseCase{resp: &rescheduleBooking.Response{
		ID:                "bk-1",
		Date:              "2026-03-03",
		StartTime:         "11:00",
		EndTime:           "11:30",
		Status:            "confirmed",
		PreviousDate:      "2026-03-02",
		PreviousStartTime: "10:00",
	}}

	rec := patch(uc, `{"date": "2026-03-03", "startTime": "11:00"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, &rescheduleBooking.Request{BookingID: "bk-1", Date: "2026-03-03", StartTime: types.TimeString("11:00")}, uc.gotReq)
	assert.Contains(t, rec.Body.String(), `"previousStartTime":"10:00"`)
}

func TestHandle_Conflict(t *testing.T) {
	uc := &stubUseCase{err: &rescheduleBooking.SlotUnavailableError{Reason: domain.ReasonLunchBreak}}

	rec := patch(uc, `{"date": "2026-03-03", "startTime": "13:00"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), `"reason":"Lunch break"`)
}

func TestHandle_Errors(t *testing.T) {
	body := `{"date": "2026-03-03", "startTime": "11:00"}`

	assert.Equal(t, http.StatusNotFound, patch(&stubUseCase{err: rescheduleBooking.ErrBookingNotFound}, body).Code)
	assert.Equal(t, http.StatusConflict, patch(&stubUseCase{err: rescheduleBooking.ErrCannotReschedule}, body).Code)
	assert.Equal(t, http.StatusBadRequest, patch(&stubUseCase{err: rescheduleBooking.ErrInvalidInput}, body).Code)
	assert.Equal(t, http.StatusBadRequest, patch(&stubUseCase{}, "").Code)
}
