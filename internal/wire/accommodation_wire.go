package wire

import (
	"event-logistics/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAccommodation(
	r chi.Router,
	accommodationHandler *adaptor.AccommodationHandler,
	allocationHandler *adaptor.AllocationHandler,
) {
	r.Route("/api/accommodation", func(r chi.Router) {
		// Inventory
		r.Get("/vendors", accommodationHandler.ListVendors)
		r.Get("/rooms", accommodationHandler.ListRooms)
		r.Get("/rooms/{id}/occupants", accommodationHandler.RoomOccupants)

		// Vendor shortcut, type is forced to vendor
		r.Post("/vendor-allocations", allocationHandler.CreateVendor)
		r.Get("/summary", allocationHandler.Summary)

		r.Route("/allocations", func(r chi.Router) {
			r.Get("/", allocationHandler.List)
			r.Post("/", allocationHandler.Create)

			// Dry run; nothing is written
			r.Post("/validate", allocationHandler.Validate)
			r.Post("/check-in", allocationHandler.BulkCheckIn)

			r.Patch("/{id}/check-in", allocationHandler.CheckIn)
			r.Delete("/{id}", allocationHandler.Delete)
		})
	})
}
