package adaptor

import (
	"errors"
	"net/http"

	"event-logistics/internal/engine/allocation"
	"event-logistics/internal/engine/transport"
	"event-logistics/internal/usecase"
	"event-logistics/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Participant   *ParticipantHandler
	Accommodation *AccommodationHandler
	Allocation    *AllocationHandler
	Transport     *TransportHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Participant:   NewParticipantHandler(service.Participant, log),
		Accommodation: NewAccommodationHandler(service.Accommodation, log),
		Allocation:    NewAllocationHandler(service.Allocation, log),
		Transport:     NewTransportHandler(service.Transport, log),
	}
}

// tenantFrom reads the tenant set by the tenant middleware and answers 400
// itself when it is missing.
func tenantFrom(w http.ResponseWriter, r *http.Request) (string, bool) {
	tenantID, ok := utils.GetTenantFromContext(r.Context())
	if !ok {
		utils.ResponseBadRequest(w, "Tenant is required", nil)
		return "", false
	}
	return tenantID, true
}

// handleServiceError maps service errors onto HTTP responses
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var allocErrs *allocation.ValidationErrors
	var bookingErrs *transport.ValidationErrors

	switch {
	case errors.As(err, &allocErrs):
		log.Warn(operation+" rejected",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, "Validation failed", allocErrs.Errors)

	case errors.As(err, &bookingErrs):
		log.Warn(operation+" rejected",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, "Validation failed", bookingErrs.Errors)

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrInvalidInput):
		log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, transport.ErrInvalidTransition),
		errors.Is(err, transport.ErrCannotDeleteConfirmed),
		errors.Is(err, allocation.ErrAllocationState):
		log.Warn(operation+" failed - invalid state",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrCapacityExceeded):
		log.Warn(operation+" failed - capacity exceeded",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, err.Error(), []map[string]string{{"kind": "CAPACITY_EXCEEDED"}})

	case errors.Is(err, usecase.ErrConcurrentUpdate):
		log.Warn(operation+" failed - concurrent update",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, err.Error(), []map[string]string{{"kind": "CONCURRENT_UPDATE"}})

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
