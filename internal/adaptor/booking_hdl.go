package adaptor

import (
	"net/http"

	"rental-booking/internal/dto/request"
	"rental-booking/internal/usecase"
	"rental-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBookingRequest
	if !decodeBody(w, r, &req) {
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create booking")
		return
	}

	utils.ResponseCreated(w, booking)
}

// ==================== ADMIN METHODS ====================

// GetBookings handles GET /api/bookings (admin)
func (h *BookingHandler) GetBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.GetBookings(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "get bookings")
		return
	}

	utils.ResponseSuccess(w, bookings)
}

// GetBookingByID handles GET /api/bookings/{id} (admin)
func (h *BookingHandler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	booking, err := h.service.GetBookingByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, err, "get booking by ID")
		return
	}

	utils.ResponseSuccess(w, booking)
}

// GetListingBookings handles GET /api/listings/{id}/bookings (admin)
func (h *BookingHandler) GetListingBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.GetListingBookings(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, err, "get listing bookings")
		return
	}

	utils.ResponseSuccess(w, bookings)
}
