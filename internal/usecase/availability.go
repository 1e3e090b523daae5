package usecase

import (
	"context"
	"time"

	"rental-booking/internal/data/entity"
	"rental-booking/internal/data/repository"
	"rental-booking/pkg/apperror"

	"go.uber.org/zap"
)

// AvailabilityChecker answers whether a listing is free for a stay.
type AvailabilityChecker interface {
	// IsAvailable reports whether no live booking of listingID overlaps
	// [checkIn, checkOut). An unknown listing is a NotFound error.
	IsAvailable(ctx context.Context, listingID string, checkIn, checkOut time.Time) (bool, error)
}

type availabilityChecker struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAvailabilityChecker(repo *repository.Repository, log *zap.Logger) AvailabilityChecker {
	return &availabilityChecker{
		repo: repo,
		log:  log.With(zap.String("service", "availability")),
	}
}

func (c *availabilityChecker) IsAvailable(ctx context.Context, listingID string, checkIn, checkOut time.Time) (bool, error) {
	listing, err := resolveListing(ctx, c.repo.Listing, listingID)
	if err != nil {
		return false, err
	}
	return rangeFree(ctx, c.repo.Booking, listing, entity.DateRange{Start: checkIn, End: checkOut})
}

// resolveListing looks a listing up by its raw id. Ids that are not UUIDs
// cannot name a listing and are reported as NotFound.
func resolveListing(ctx context.Context, listings repository.ListingRepository, listingID string) (*entity.Listing, error) {
	id, ok := parseListingID(listingID)
	if !ok {
		return nil, apperror.NotFound("listing", listingID)
	}

	listing, err := listings.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Storage("find listing", err)
	}
	if listing == nil {
		return nil, apperror.NotFound("listing", listingID)
	}
	return listing, nil
}

// rangeFree asks the store whether stay is free for an already resolved
// listing. An empty range occupies nothing and is always free.
func rangeFree(ctx context.Context, bookings repository.BookingRepository, listing *entity.Listing, stay entity.DateRange) (bool, error) {
	if !stay.Valid() {
		return true, nil
	}

	taken, err := bookings.OverlapsExist(ctx, listing.ID, stay.Start, stay.End)
	if err != nil {
		return false, apperror.Storage("check availability", err)
	}
	return !taken, nil
}
