package get_available_slots

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type stubUseCase struct {
	gotReq *getAvailableSlots.Request
	resp   *getAvailableSlots.Response
	err    error
}

func (s *stubUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	s.gotReq = req
	return s.resp, s.err
}

func serve(uc GetAvailableSlotsUseCase, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/businesses/{businessId}/providers/{providerId}/available-slots",
		NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_Success(t *testing.T) {
	uc := &stubUseCase{resp: &getAvailableSlots.Response{
		BusinessID:      "b-1",
		ProviderID:      "p-1",
		ServiceID:       "s-1",
		Date:            "2026-03-02",
		DurationMinutes: 30,
		Slots: []domain.TimeSlot{
			{Time: "09:00", Available: false, Reason: domain.ReasonAlreadyBooked},
			{Time: "09:15", Available: true},
		},
	}}

	rec := serve(uc, "/api/v1/businesses/b-1/providers/p-1/available-slots?serviceId=s-1&date=2026-03-02&onlyAvailable=true")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, &getAvailableSlots.Request{
		BusinessID: "b-1", ProviderID: "p-1", ServiceID: "s-1", Date: "2026-03-02", OnlyAvailable: true,
	}, uc.gotReq)
	assert.JSONEq(t, `{
		"businessId": "b-1", "providerId": "p-1", "serviceId": "s-1", "date": "2026-03-02", "durationMinutes": 30,
		"slots": [
			{"time": "09:00", "available": false, "reason": "Already booked"},
			{"time": "09:15", "available": true}
		]
	}`, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		err        error
		wantStatus int
	}{
		{name: "missing service", target: "?date=2026-03-02", wantStatus: http.StatusBadRequest},
		{name: "missing date", target: "?serviceId=s-1", wantStatus: http.StatusBadRequest},
		{name: "invalid input", target: "?serviceId=s-1&date=02.03.2026",
			err: fmt.Errorf("%w: bad date", getAvailableSlots.ErrInvalidInput), wantStatus: http.StatusBadRequest},
		{name: "provider not found", target: "?serviceId=s-1&date=2026-03-02",
			err: getAvailableSlots.ErrProviderNotFound, wantStatus: http.StatusNotFound},
		{name: "internal", target: "?serviceId=s-1&date=2026-03-02",
			err: fmt.Errorf("%w: db down", getAvailableSlots.ErrInternal), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &stubUseCase{err: tt.err}
			rec := serve(uc, "/api/v1/businesses/b-1/providers/p-1/available-slots"+tt.target)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
