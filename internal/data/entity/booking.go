package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type Booking struct {
	Base
	ListingID  uuid.UUID     `db:"listing_id"`
	GuestName  string        `db:"guest_name"`
	GuestEmail string        `db:"guest_email"`
	GuestPhone string        `db:"guest_phone"`
	CheckIn    time.Time     `db:"check_in"`
	CheckOut   time.Time     `db:"check_out"`
	Guests     int           `db:"guests"`
	TotalPrice int64         `db:"total_price"`
	Status     BookingStatus `db:"status"`
}

// Stay returns the occupied interval [CheckIn, CheckOut).
func (b *Booking) Stay() DateRange {
	return DateRange{Start: b.CheckIn, End: b.CheckOut}
}

// Blocks reports whether the booking occupies its dates. Cancelled bookings
// release them.
func (b *Booking) Blocks() bool {
	return b.Status != BookingStatusCancelled
}
