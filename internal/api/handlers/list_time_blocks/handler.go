package list_time_blocks

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/timeblocks"
	"github.com/m04kA/SMC-AppointmentService/internal/service/timeblocks/models"
)

const (
	msgMissingPeriod = "параметры from и to обязательны"
	msgInvalidPeriod = "некорректный период, ожидаются даты YYYY-MM-DD и from не позже to"
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

// Handle GET /api/v1/businesses/{businessId}/time-blocks?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID := mux.Vars(r)["businessId"]

	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		h.logger.Warn("GET /businesses/{id}/time-blocks - Missing period: business_id=%s", businessID)
		handlers.RespondBadRequest(w, msgMissingPeriod)
		return
	}

	result, err := h.service.List(r.Context(), &models.ListTimeBlocksRequest{
		BusinessID: businessID,
		From:       from,
		To:         to,
	})
	if err != nil {
		switch {
		case errors.Is(err, timeblocks.ErrInvalidInput):
			h.logger.Warn("GET /businesses/{id}/time-blocks - Invalid period: business_id=%s, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /businesses/{id}/time-blocks - Failed to list time blocks: business_id=%s, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/time-blocks - Time blocks retrieved successfully: business_id=%s, count=%d",
		businessID, len(result.TimeBlocks))
	handlers.RespondJSON(w, http.StatusOK, result)
}
