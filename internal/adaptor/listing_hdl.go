package adaptor

import (
	"net/http"

	"rental-booking/internal/dto/request"
	"rental-booking/internal/usecase"
	"rental-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ListingHandler struct {
	service usecase.ListingService
	log     *zap.Logger
}

func NewListingHandler(service usecase.ListingService, log *zap.Logger) *ListingHandler {
	return &ListingHandler{
		service: service,
		log:     log.With(zap.String("handler", "listing")),
	}
}

// GetListings handles GET /api/listings
func (h *ListingHandler) GetListings(w http.ResponseWriter, r *http.Request) {
	listings, err := h.service.GetAll(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "get listings")
		return
	}

	utils.ResponseSuccess(w, listings)
}

// GetListing handles GET /api/listings/{id}
func (h *ListingHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	listing, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, err, "get listing")
		return
	}

	utils.ResponseSuccess(w, listing)
}

// CreateListing handles POST /api/listings (admin)
func (h *ListingHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	var req request.CreateListingRequest
	if !decodeBody(w, r, &req) {
		return
	}

	listing, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create listing")
		return
	}

	utils.ResponseCreated(w, listing)
}

// CheckAvailability handles POST /api/listings/{id}/check-availability
func (h *ListingHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	var req request.CheckAvailabilityRequest
	if !decodeBody(w, r, &req) {
		return
	}

	availability, err := h.service.CheckAvailability(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "check availability")
		return
	}

	utils.ResponseSuccess(w, availability)
}
