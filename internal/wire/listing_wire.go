package wire

import (
	"rental-booking/internal/adaptor"
	"rental-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireListing(r chi.Router, handler *adaptor.Handler, admin *middleware.AdminGate) {
	r.Route("/api/listings", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/", handler.Listing.GetListings)
		r.Get("/{id}", handler.Listing.GetListing)
		r.Post("/{id}/check-availability", handler.Listing.CheckAvailability)

		// ==================== ADMIN ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(admin.Middleware)

			r.Post("/", handler.Listing.CreateListing)
			// Exposes guest contact details
			r.Get("/{id}/bookings", handler.Booking.GetListingBookings)
		})
	})
}
