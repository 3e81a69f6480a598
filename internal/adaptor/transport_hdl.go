package adaptor

import (
	"encoding/json"
	"net/http"

	"event-logistics/internal/dto/request"
	"event-logistics/internal/usecase"
	"event-logistics/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TransportHandler struct {
	service usecase.TransportService
	log     *zap.Logger
}

func NewTransportHandler(service usecase.TransportService, log *zap.Logger) *TransportHandler {
	return &TransportHandler{
		service: service,
		log:     log.With(zap.String("handler", "transport")),
	}
}

// List handles GET /api/transport/bookings
func (h *TransportHandler) List(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	req := &request.ListBookingsRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), 10),
		},
		Status:      query.Get("status"),
		BookingType: query.Get("booking_type"),
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	bookings, err := h.service.List(r.Context(), tenantID, req)
	if err != nil {
		handleServiceError(w, h.log, err, "list transport bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// Get handles GET /api/transport/bookings/{id}
func (h *TransportHandler) Get(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	booking, err := h.service.Get(r.Context(), tenantID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get transport booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// NextStatuses handles GET /api/transport/bookings/{id}/next-statuses
func (h *TransportHandler) NextStatuses(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	next, err := h.service.NextStatuses(r.Context(), tenantID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get next statuses")
		return
	}

	utils.ResponseSuccess(w, "success", next)
}

// Create handles POST /api/transport/bookings
func (h *TransportHandler) Create(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	var req request.CreateTransportBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.Create(r.Context(), tenantID, utils.GetActorFromContext(r.Context()), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create transport booking")
		return
	}

	utils.ResponseCreated(w, "success", booking)
}

// SuggestPooling handles POST /api/transport/bookings/suggest-pooling
func (h *TransportHandler) SuggestPooling(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	var req request.SuggestPoolingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	suggestion, err := h.service.SuggestPooling(r.Context(), tenantID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "suggest pooling")
		return
	}

	utils.ResponseSuccess(w, "success", suggestion)
}

// CheckPackages handles POST /api/transport/bookings/check-packages
func (h *TransportHandler) CheckPackages(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	var req request.CheckPackagesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	packages, err := h.service.CheckPackages(r.Context(), tenantID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "check welcome packages")
		return
	}

	utils.ResponseSuccess(w, "success", packages)
}

// UpdateStatus handles POST /api/transport/bookings/{id}/status
func (h *TransportHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	var req request.UpdateBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.UpdateStatus(r.Context(), tenantID, utils.GetActorFromContext(r.Context()), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update booking status")
		return
	}

	utils.ResponseSuccess(w, "Status updated", booking)
}

// Delete handles DELETE /api/transport/bookings/{id}
func (h *TransportHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), tenantID, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete transport booking")
		return
	}

	utils.ResponseSuccess(w, "Booking deleted", nil)
}
