package adaptor

import (
	"net/http"

	"event-logistics/internal/usecase"
	"event-logistics/pkg/utils"

	"go.uber.org/zap"
)

type ParticipantHandler struct {
	service usecase.ParticipantService
	log     *zap.Logger
}

func NewParticipantHandler(service usecase.ParticipantService, log *zap.Logger) *ParticipantHandler {
	return &ParticipantHandler{
		service: service,
		log:     log.With(zap.String("handler", "participant")),
	}
}

// ListByEvent handles GET /api/participants?event_id=
func (h *ParticipantHandler) ListByEvent(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	eventID := r.URL.Query().Get("event_id")
	if eventID == "" {
		utils.ResponseBadRequest(w, "event_id is required", nil)
		return
	}

	participants, err := h.service.ListByEvent(r.Context(), tenantID, eventID)
	if err != nil {
		handleServiceError(w, h.log, err, "list participants")
		return
	}

	utils.ResponseSuccess(w, "success", participants)
}
