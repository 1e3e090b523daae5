package request

import "rental-booking/pkg/apperror"

// CreateBookingRequest is the raw booking body. Dates and guests are left
// untyped so the validation layer can coerce them and report every bad field
// at once. Any totalPrice sent by the caller is dropped on decode.
type CreateBookingRequest struct {
	ListingID  string `json:"listingId" validate:"required"`
	GuestName  string `json:"guestName" validate:"required,max=200"`
	GuestEmail string `json:"guestEmail" validate:"required,max=320"`
	GuestPhone string `json:"guestPhone" validate:"required,max=50"`
	CheckIn    any    `json:"checkIn"`
	CheckOut   any    `json:"checkOut"`
	Guests     any    `json:"guests"`

	// TypeErrors holds body fields whose JSON type did not fit.
	TypeErrors []apperror.FieldError `json:"-" validate:"-"`
}

func (r *CreateBookingRequest) SetTypeErrors(fields []apperror.FieldError) {
	r.TypeErrors = fields
}

type CheckAvailabilityRequest struct {
	CheckIn  any `json:"checkIn"`
	CheckOut any `json:"checkOut"`
}
