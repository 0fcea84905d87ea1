package create_time_block

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/timeblocks"
	"github.com/m04kA/SMC-AppointmentService/internal/service/timeblocks/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректная блокировка: дата YYYY-MM-DD, время HH:MM, начало раньше конца"
	msgProviderNotFound   = "сотрудник не найден"
)

type Handler struct {
	service TimeBlockService
	logger  Logger
}

func NewHandler(service TimeBlockService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/businesses/{businessId}/time-blocks
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID := mux.Vars(r)["businessId"]

	var req models.CreateTimeBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /businesses/{id}/time-blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	block, err := h.service.Create(r.Context(), businessID, &req)
	if err != nil {
		switch {
		case errors.Is(err, timeblocks.ErrInvalidInput):
			h.logger.Warn("POST /businesses/{id}/time-blocks - Invalid input: business_id=%s, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, timeblocks.ErrProviderNotFound):
			h.logger.Warn("POST /businesses/{id}/time-blocks - Provider not found: business_id=%s", businessID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		default:
			h.logger.Error("POST /businesses/{id}/time-blocks - Failed to create time block: business_id=%s, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /businesses/{id}/time-blocks - Time block created successfully: business_id=%s, block_id=%s, date=%s",
		businessID, block.ID, block.Date)
	handlers.RespondJSON(w, http.StatusCreated, block)
}
