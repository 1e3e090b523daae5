package response

import (
	"time"

	"rental-booking/internal/data/entity"
)

type ListingResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Location    string    `json:"location"`
	Price       int64     `json:"price"`
	Rating      string    `json:"rating"`
	Category    string    `json:"category"`
	Image       string    `json:"image"`
	Description string    `json:"description"`
	Latitude    string    `json:"latitude"`
	Longitude   string    `json:"longitude"`
	CreatedAt   time.Time `json:"createdAt"`
}

type AvailabilityResponse struct {
	Available bool `json:"available"`
}

// ListingToResponse renders decimals with the column precision: two places
// for rating and seven for coordinates.
func ListingToResponse(listing *entity.Listing) ListingResponse {
	return ListingResponse{
		ID:          listing.ID.String(),
		Title:       listing.Title,
		Location:    listing.Location,
		Price:       listing.Price,
		Rating:      listing.Rating.StringFixed(2),
		Category:    string(listing.Category),
		Image:       listing.Image,
		Description: listing.Description,
		Latitude:    listing.Latitude.StringFixed(7),
		Longitude:   listing.Longitude.StringFixed(7),
		CreatedAt:   listing.CreatedAt,
	}
}

func ListingsToResponse(listings []*entity.Listing) []ListingResponse {
	out := make([]ListingResponse, 0, len(listings))
	for _, listing := range listings {
		out = append(out, ListingToResponse(listing))
	}
	return out
}
