package get_next_available_slot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	getNextAvailableSlot "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_next_available_slot"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type stubUseCase struct {
	gotReq *getNextAvailableSlot.Request
	resp   *getNextAvailableSlot.Response
	err    error
}

func (s *stubUseCase) Execute(_ context.Context, req *getNextAvailableSlot.Request) (*getNextAvailableSlot.Response, error) {
	s.gotReq = req
	return s.resp, s.err
}

func serve(uc GetNextAvailableSlotUseCase, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/businesses/{businessId}/providers/{providerId}/next-available-slot",
		NewHandler(uc, logger.NewNop()).Handle)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_Found(t *testing.T) {
	uc := &stubUseCase{resp: &getNextAvailableSlot.Response{Found: true, Date: "2026-03-09", Time: "10:15"}}

	rec := serve(uc, "/businesses/b-1/providers/p-1/next-available-slot?serviceId=s-1&startDate=2026-03-09")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2026-03-09", uc.gotReq.StartDate)
	assert.JSONEq(t, `{"found": true, "date": "2026-03-09", "time": "10:15"}`, rec.Body.String())
}

func TestHandle_NotFound(t *testing.T) {
	uc := &stubUseCase{resp: &getNextAvailableSlot.Response{Found: false}}

	rec := serve(uc, "/businesses/b-1/providers/p-1/next-available-slot?serviceId=s-1")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, uc.gotReq.StartDate)
	assert.JSONEq(t, `{"found": false}`, rec.Body.String())
}

func TestHandle_MissingService(t *testing.T) {
	rec := serve(&stubUseCase{}, "/businesses/b-1/providers/p-1/next-available-slot")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_ServiceNotFound(t *testing.T) {
	rec := serve(&stubUseCase{err: getNextAvailableSlot.ErrServiceNotFound},
		"/businesses/b-1/providers/p-1/next-available-slot?serviceId=s-404")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
