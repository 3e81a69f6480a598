package adaptor

import (
	"net/http"

	"event-logistics/internal/usecase"
	"event-logistics/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AccommodationHandler struct {
	service usecase.AccommodationService
	log     *zap.Logger
}

func NewAccommodationHandler(service usecase.AccommodationService, log *zap.Logger) *AccommodationHandler {
	return &AccommodationHandler{
		service: service,
		log:     log.With(zap.String("handler", "accommodation")),
	}
}

// ListVendors handles GET /api/accommodation/vendors
func (h *AccommodationHandler) ListVendors(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	vendors, err := h.service.ListVendors(r.Context(), tenantID)
	if err != nil {
		handleServiceError(w, h.log, err, "list vendors")
		return
	}

	utils.ResponseSuccess(w, "success", vendors)
}

// ListRooms handles GET /api/accommodation/rooms?guesthouse_id=
func (h *AccommodationHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	rooms, err := h.service.ListRooms(r.Context(), tenantID, r.URL.Query().Get("guesthouse_id"))
	if err != nil {
		handleServiceError(w, h.log, err, "list rooms")
		return
	}

	utils.ResponseSuccess(w, "success", rooms)
}

// RoomOccupants handles GET /api/accommodation/rooms/{id}/occupants
func (h *AccommodationHandler) RoomOccupants(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	roomID := chi.URLParam(r, "id")
	if roomID == "" {
		utils.ResponseBadRequest(w, "Room ID is required", nil)
		return
	}

	occupants, err := h.service.RoomOccupants(r.Context(), tenantID, roomID)
	if err != nil {
		handleServiceError(w, h.log, err, "get room occupants")
		return
	}

	utils.ResponseSuccess(w, "success", occupants)
}
