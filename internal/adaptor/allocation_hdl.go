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

type AllocationHandler struct {
	service usecase.AllocationService
	log     *zap.Logger
}

func NewAllocationHandler(service usecase.AllocationService, log *zap.Logger) *AllocationHandler {
	return &AllocationHandler{
		service: service,
		log:     log.With(zap.String("handler", "allocation")),
	}
}

// decodeAllocation reads and shape-checks an allocation body. It answers the
// request itself on failure.
func decodeAllocation(w http.ResponseWriter, r *http.Request) (*request.AllocationRequest, bool) {
	var req request.AllocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return nil, false
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return nil, false
	}
	return &req, true
}

// Validate handles POST /api/accommodation/allocations/validate
func (h *AllocationHandler) Validate(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	req, ok := decodeAllocation(w, r)
	if !ok {
		return
	}

	report, err := h.service.Validate(r.Context(), tenantID, req)
	if err != nil {
		handleServiceError(w, h.log, err, "validate allocation")
		return
	}

	utils.ResponseSuccess(w, "success", report)
}

// Create handles POST /api/accommodation/allocations
func (h *AllocationHandler) Create(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	req, ok := decodeAllocation(w, r)
	if !ok {
		return
	}

	allocations, err := h.service.Create(r.Context(), tenantID, req)
	if err != nil {
		handleServiceError(w, h.log, err, "create allocation")
		return
	}

	utils.ResponseCreated(w, "success", allocations)
}

// CreateVendor handles POST /api/accommodation/vendor-allocations
func (h *AllocationHandler) CreateVendor(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	var req request.VendorAllocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	general := req.AsAllocation()
	allocations, err := h.service.Create(r.Context(), tenantID, &general)
	if err != nil {
		handleServiceError(w, h.log, err, "create vendor allocation")
		return
	}

	utils.ResponseCreated(w, "success", allocations)
}

// List handles GET /api/accommodation/allocations?event_id=
func (h *AllocationHandler) List(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	eventID := r.URL.Query().Get("event_id")
	if eventID == "" {
		utils.ResponseBadRequest(w, "event_id is required", nil)
		return
	}

	allocations, err := h.service.List(r.Context(), tenantID, eventID)
	if err != nil {
		handleServiceError(w, h.log, err, "list allocations")
		return
	}

	utils.ResponseSuccess(w, "success", allocations)
}

// Summary handles GET /api/accommodation/summary?event_id=
func (h *AllocationHandler) Summary(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	eventID := r.URL.Query().Get("event_id")
	if eventID == "" {
		utils.ResponseBadRequest(w, "event_id is required", nil)
		return
	}

	summary, err := h.service.Summary(r.Context(), tenantID, eventID)
	if err != nil {
		handleServiceError(w, h.log, err, "summarize allocations")
		return
	}

	utils.ResponseSuccess(w, "success", summary)
}

// CheckIn handles PATCH /api/accommodation/allocations/{id}/check-in
func (h *AllocationHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	allocationID := chi.URLParam(r, "id")
	if allocationID == "" {
		utils.ResponseBadRequest(w, "Allocation ID is required", nil)
		return
	}

	allocation, err := h.service.CheckIn(r.Context(), tenantID, allocationID)
	if err != nil {
		handleServiceError(w, h.log, err, "check in allocation")
		return
	}

	utils.ResponseSuccess(w, "Checked in", allocation)
}

// BulkCheckIn handles POST /api/accommodation/allocations/check-in
func (h *AllocationHandler) BulkCheckIn(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	var req request.BulkCheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.service.BulkCheckIn(r.Context(), tenantID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "bulk check in")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// Delete handles DELETE /api/accommodation/allocations/{id}
func (h *AllocationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	allocationID := chi.URLParam(r, "id")
	if allocationID == "" {
		utils.ResponseBadRequest(w, "Allocation ID is required", nil)
		return
	}

	if err := h.service.Delete(r.Context(), tenantID, allocationID); err != nil {
		handleServiceError(w, h.log, err, "delete allocation")
		return
	}

	utils.ResponseSuccess(w, "Allocation cancelled", nil)
}
