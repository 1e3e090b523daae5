package wire

import (
	"rental-booking/internal/adaptor"
	"rental-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, admin *middleware.AdminGate, limiter *middleware.RateLimiter) {
	r.Route("/api/bookings", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.With(limiter.Middleware).Post("/", bookingHandler.CreateBooking)

		// ==================== ADMIN ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(admin.Middleware)

			r.Get("/", bookingHandler.GetBookings)
			r.Get("/{id}", bookingHandler.GetBookingByID)
		})
	})
}
