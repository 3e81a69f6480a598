package wire

import (
	"event-logistics/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireParticipant(r chi.Router, participantHandler *adaptor.ParticipantHandler) {
	// GET /api/participants?event_id= - Participants of one event
	r.Get("/api/participants", participantHandler.ListByEvent)
}
