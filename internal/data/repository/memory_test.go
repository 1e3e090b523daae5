package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"rental-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testListing() *entity.Listing {
	return &entity.Listing{
		Base:        entity.Base{ID: uuid.New(), CreatedAt: time.Now().UTC()},
		Title:       "Plum Condo Park Rangsit",
		Location:    "Klong Nueng, Pathum Thani",
		Price:       8500,
		Rating:      decimal.RequireFromString("4.80"),
		Category:    entity.CategoryCondo,
		Image:       "/images/condo-exterior.png",
		Description: "Modern student living",
		Latitude:    decimal.RequireFromString("13.9612000"),
		Longitude:   decimal.RequireFromString("100.6015000"),
	}
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func testBooking(listingID uuid.UUID, checkIn, checkOut string) *entity.Booking {
	in, _ := time.Parse(time.DateOnly, checkIn)
	out, _ := time.Parse(time.DateOnly, checkOut)
	return &entity.Booking{
		Base:       entity.Base{ID: uuid.New(), CreatedAt: time.Now().UTC()},
		ListingID:  listingID,
		GuestName:  "Guest",
		GuestEmail: "guest@example.com",
		GuestPhone: "+66812345678",
		CheckIn:    in,
		CheckOut:   out,
		Guests:     1,
		TotalPrice: 8500,
		Status:     entity.BookingStatusPending,
	}
}

func TestMemoryBookingRepository_RejectsOverlapAtInsert(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(zap.NewNop())
	listing := testListing()
	require.NoError(t, repo.Listing.Create(ctx, listing))

	require.NoError(t, repo.Booking.Create(ctx, testBooking(listing.ID, "2024-03-01", "2024-03-10")))

	err := repo.Booking.Create(ctx, testBooking(listing.ID, "2024-03-09", "2024-03-15"))
	assert.ErrorIs(t, err, ErrBookingOverlap)

	assert.NoError(t, repo.Booking.Create(ctx, testBooking(listing.ID, "2024-03-10", "2024-03-15")),
		"check-out day is free for the next check-in")

	other := testListing()
	require.NoError(t, repo.Listing.Create(ctx, other))
	assert.NoError(t, repo.Booking.Create(ctx, testBooking(other.ID, "2024-03-01", "2024-03-10")),
		"overlap is per listing")
}

func TestMemoryBookingRepository_CancelledDoesNotBlock(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(zap.NewNop())
	listing := testListing()
	require.NoError(t, repo.Listing.Create(ctx, listing))

	cancelled := testBooking(listing.ID, "2024-03-01", "2024-03-10")
	cancelled.Status = entity.BookingStatusCancelled
	require.NoError(t, repo.Booking.Create(ctx, cancelled))

	exists, err := repo.Booking.OverlapsExist(ctx, listing.ID, cancelled.CheckIn, cancelled.CheckOut)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, repo.Booking.Create(ctx, testBooking(listing.ID, "2024-03-01", "2024-03-10")))
}

func TestMemoryRepository_WithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(zap.NewNop())
	listing := testListing()
	require.NoError(t, repo.Listing.Create(ctx, listing))

	boom := errors.New("boom")
	err := repo.WithTx(ctx, func(tx *Repository) error {
		require.NoError(t, tx.Booking.Create(ctx, testBooking(listing.ID, "2024-03-01", "2024-03-10")))
		require.NoError(t, tx.Listing.Create(ctx, testListing()))
		return boom
	})
	require.ErrorIs(t, err, boom)

	bookings, err := repo.Booking.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, bookings)

	listings, err := repo.Listing.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, listings, 1)
}

func TestMemoryRepository_WithTxRollsBackOnPanic(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(zap.NewNop())
	listing := testListing()
	require.NoError(t, repo.Listing.Create(ctx, listing))

	assert.PanicsWithValue(t, "boom", func() {
		_ = repo.WithTx(ctx, func(tx *Repository) error {
			require.NoError(t, tx.Booking.Create(ctx, testBooking(listing.ID, "2024-03-01", "2024-03-10")))
			panic("boom")
		})
	})

	bookings, err := repo.Booking.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, bookings)

	// The transaction lock was released and the dates are free again.
	require.NoError(t, repo.WithTx(ctx, func(tx *Repository) error {
		return tx.Booking.Create(ctx, testBooking(listing.ID, "2024-03-01", "2024-03-10"))
	}))
}

func TestMemoryRepository_WithTxCommits(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(zap.NewNop())
	listing := testListing()
	require.NoError(t, repo.Listing.Create(ctx, listing))

	booking := testBooking(listing.ID, "2024-03-01", "2024-03-10")
	require.NoError(t, repo.WithTx(ctx, func(tx *Repository) error {
		return tx.Booking.Create(ctx, booking)
	}))

	found, err := repo.Booking.FindByID(ctx, booking.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, booking.ListingID, found.ListingID)

	byListing, err := repo.Booking.FindByListingID(ctx, listing.ID)
	require.NoError(t, err)
	assert.Len(t, byListing, 1)
}

func TestMemoryListingRepository_FindByIDMissing(t *testing.T) {
	repo := NewMemoryRepository(zap.NewNop())
	listing, err := repo.Listing.FindByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, listing)
}

func TestMemoryListingRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(zap.NewNop())
	listing := testListing()
	require.NoError(t, repo.Listing.Create(ctx, listing))

	found, err := repo.Listing.FindByID(ctx, listing.ID)
	require.NoError(t, err)
	found.Price = 1

	again, err := repo.Listing.FindByID(ctx, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(8500), again.Price)
}
