package usecase

import (
	"context"
	"testing"

	"rental-booking/internal/data/entity"
	"rental-booking/internal/data/repository"
	"rental-booking/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAvailabilityChecker_NoBookingsIsAvailable(t *testing.T) {
	repo := newMemoryRepo()
	listing := seedListing(t, repo, 12000)
	checker := NewAvailabilityChecker(repo, zap.NewNop())

	available, err := checker.IsAvailable(context.Background(), listing.ID.String(), date("2024-03-01"), date("2024-03-10"))
	require.NoError(t, err)
	assert.True(t, available)
}

func TestAvailabilityChecker_HalfOpenOverlap(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	listing := seedListing(t, repo, 12000)
	require.NoError(t, repo.Booking.Create(ctx, &entity.Booking{
		Base:      entity.Base{ID: uuid.New()},
		ListingID: listing.ID,
		CheckIn:   date("2024-03-01"),
		CheckOut:  date("2024-03-10"),
		Guests:    1,
		Status:    entity.BookingStatusPending,
	}))
	checker := NewAvailabilityChecker(repo, zap.NewNop())

	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		want     bool
	}{
		{"back to back", "2024-03-10", "2024-03-15", true},
		{"one day overlap", "2024-03-09", "2024-03-15", false},
		{"ends on check-in day", "2024-02-25", "2024-03-01", true},
		{"inside", "2024-03-02", "2024-03-04", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			available, err := checker.IsAvailable(ctx, listing.ID.String(), date(tt.checkIn), date(tt.checkOut))
			require.NoError(t, err)
			assert.Equal(t, tt.want, available)
		})
	}
}

func TestAvailabilityChecker_UnknownListing(t *testing.T) {
	checker := NewAvailabilityChecker(newMemoryRepo(), zap.NewNop())

	for _, id := range []string{uuid.NewString(), "not-a-uuid"} {
		_, err := checker.IsAvailable(context.Background(), id, date("2024-03-01"), date("2024-03-10"))
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err), "id %q", id)
	}
}

func TestAvailabilityChecker_StorageFailure(t *testing.T) {
	memory := newMemoryRepo()
	listing := seedListing(t, memory, 12000)
	repo := &repository.Repository{
		Listing: memory.Listing,
		Booking: failingBookingRepository{BookingRepository: memory.Booking, failOverlaps: true},
	}
	checker := NewAvailabilityChecker(repo, zap.NewNop())

	_, err := checker.IsAvailable(context.Background(), listing.ID.String(), date("2024-03-01"), date("2024-03-10"))
	assert.Equal(t, apperror.KindStorage, apperror.KindOf(err))
	assert.ErrorIs(t, err, errStore)
}
