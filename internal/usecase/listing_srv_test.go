package usecase

import (
	"context"
	"testing"

	"rental-booking/internal/data/repository"
	"rental-booking/internal/dto/request"
	"rental-booking/pkg/apperror"
	"rental-booking/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newListingService(repo *repository.Repository) ListingService {
	return NewListingService(repo, NewAvailabilityChecker(repo, zap.NewNop()), zap.NewNop())
}

func TestListingService_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	svc := newListingService(newMemoryRepo())

	created, err := svc.Create(ctx, validListingRequest())
	require.NoError(t, err)
	assert.Equal(t, "0.00", created.Rating)
	assert.Equal(t, "100.6015000", created.Longitude)

	found, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, found.Title)

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestListingService_CreateInvalid(t *testing.T) {
	repo := newMemoryRepo()
	svc := newListingService(repo)

	req := validListingRequest()
	req.Price = 0
	_, err := svc.Create(context.Background(), req)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	all, err := repo.Listing.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestListingService_GetByIDNotFound(t *testing.T) {
	svc := newListingService(newMemoryRepo())

	for _, id := range []string{uuid.NewString(), "42"} {
		_, err := svc.GetByID(context.Background(), id)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	}
}

func TestListingService_StorageFailure(t *testing.T) {
	repo := &repository.Repository{Listing: failingListingRepository{}}
	svc := newListingService(repo)

	_, err := svc.GetAll(context.Background())
	assert.Equal(t, apperror.KindStorage, apperror.KindOf(err))

	_, err = svc.GetByID(context.Background(), uuid.NewString())
	assert.Equal(t, apperror.KindStorage, apperror.KindOf(err))
}

func TestListingService_CheckAvailability(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	listing := seedListing(t, repo, 12000)
	svc := newListingService(repo)

	_, err := NewBookingService(repo, events.Noop{}, "TH", zap.NewNop()).
		CreateBooking(ctx, bookingRequest(listing.ID, "2024-03-01", "2024-03-10"))
	require.NoError(t, err)

	resp, err := svc.CheckAvailability(ctx, listing.ID.String(), &request.CheckAvailabilityRequest{
		CheckIn: "2024-03-10", CheckOut: "2024-03-15",
	})
	require.NoError(t, err)
	assert.True(t, resp.Available)

	resp, err = svc.CheckAvailability(ctx, listing.ID.String(), &request.CheckAvailabilityRequest{
		CheckIn: "2024-03-09", CheckOut: "2024-03-15",
	})
	require.NoError(t, err)
	assert.False(t, resp.Available)

	_, err = svc.CheckAvailability(ctx, listing.ID.String(), &request.CheckAvailabilityRequest{
		CheckIn: "2024-03-15", CheckOut: "2024-03-15",
	})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = svc.CheckAvailability(ctx, uuid.NewString(), &request.CheckAvailabilityRequest{
		CheckIn: "2024-03-10", CheckOut: "2024-03-15",
	})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
