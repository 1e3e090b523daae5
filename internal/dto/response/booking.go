package response

import (
	"time"

	"rental-booking/internal/data/entity"
)

type BookingResponse struct {
	ID         string    `json:"id"`
	ListingID  string    `json:"listingId"`
	GuestName  string    `json:"guestName"`
	GuestEmail string    `json:"guestEmail"`
	GuestPhone string    `json:"guestPhone"`
	CheckIn    time.Time `json:"checkIn"`
	CheckOut   time.Time `json:"checkOut"`
	Guests     int       `json:"guests"`
	TotalPrice int64     `json:"totalPrice"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:         booking.ID.String(),
		ListingID:  booking.ListingID.String(),
		GuestName:  booking.GuestName,
		GuestEmail: booking.GuestEmail,
		GuestPhone: booking.GuestPhone,
		CheckIn:    booking.CheckIn,
		CheckOut:   booking.CheckOut,
		Guests:     booking.Guests,
		TotalPrice: booking.TotalPrice,
		Status:     string(booking.Status),
		CreatedAt:  booking.CreatedAt,
	}
}

func BookingsToResponse(bookings []*entity.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		out = append(out, BookingToResponse(booking))
	}
	return out
}
