package get_next_available_slot

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	getNextAvailableSlot "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_next_available_slot"
)

const (
	msgMissingServiceID = "ID услуги обязателен"
	msgInvalidStartDate = "некорректная дата начала поиска, ожидается YYYY-MM-DD"
	msgBusinessNotFound = "бизнес не найден"
	msgServiceNotFound  = "услуга не найдена"
	msgProviderNotFound = "сотрудник не найден"
)

type Handler struct {
	useCase GetNextAvailableSlotUseCase
	logger  Logger
}

func NewHandler(useCase GetNextAvailableSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/providers/{providerId}/next-available-slot
// Query params: serviceId (required), startDate (optional, YYYY-MM-DD, по умолчанию сегодня)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	businessID := vars["businessId"]
	providerID := vars["providerId"]

	serviceID := r.URL.Query().Get("serviceId")
	if serviceID == "" {
		h.logger.Warn("GET /businesses/{id}/providers/{id}/next-available-slot - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getNextAvailableSlot.Request{
		BusinessID: businessID,
		ProviderID: providerID,
		ServiceID:  serviceID,
		StartDate:  r.URL.Query().Get("startDate"),
	})
	if err != nil {
		switch {
		case errors.Is(err, getNextAvailableSlot.ErrInvalidInput):
			h.logger.Warn("GET /businesses/{id}/providers/{id}/next-available-slot - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStartDate)

		case errors.Is(err, getNextAvailableSlot.ErrBusinessNotFound):
			h.logger.Warn("GET /businesses/{id}/providers/{id}/next-available-slot - Business not found: business_id=%s", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, getNextAvailableSlot.ErrServiceNotFound):
			h.logger.Warn("GET /businesses/{id}/providers/{id}/next-available-slot - Service not found: service_id=%s", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getNextAvailableSlot.ErrProviderNotFound):
			h.logger.Warn("GET /businesses/{id}/providers/{id}/next-available-slot - Provider not found: provider_id=%s", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		default:
			h.logger.Error("GET /businesses/{id}/providers/{id}/next-available-slot - Failed to find slot: business_id=%s, provider_id=%s, error=%v",
				businessID, providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/providers/{id}/next-available-slot - Search finished: provider_id=%s, found=%t, date=%s, time=%s",
		providerID, result.Found, result.Date, result.Time)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
