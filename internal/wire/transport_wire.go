package wire

import (
	"event-logistics/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireTransport(r chi.Router, transportHandler *adaptor.TransportHandler) {
	r.Route("/api/transport/bookings", func(r chi.Router) {
		r.Get("/", transportHandler.List)
		r.Post("/", transportHandler.Create)

		// Advisory only, never merges
		r.Post("/suggest-pooling", transportHandler.SuggestPooling)
		r.Post("/check-packages", transportHandler.CheckPackages)

		r.Get("/{id}", transportHandler.Get)
		r.Get("/{id}/next-statuses", transportHandler.NextStatuses)
		r.Post("/{id}/status", transportHandler.UpdateStatus)
		r.Delete("/{id}", transportHandler.Delete)
	})
}
