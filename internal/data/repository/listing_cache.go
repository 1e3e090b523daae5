package repository

import (
	"context"
	"time"

	"rental-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/karlseguin/ccache/v3"
	"go.uber.org/zap"
)

// CachedListingRepository serves FindByID from an in-process cache. Listings
// are never updated or deleted, so entries only expire by TTL.
type CachedListingRepository struct {
	ListingRepository

	cache *ccache.Cache[*entity.Listing]
	ttl   time.Duration
	log   *zap.Logger
}

func NewCachedListingRepository(next ListingRepository, maxSize int64, ttl time.Duration, log *zap.Logger) *CachedListingRepository {
	return &CachedListingRepository{
		ListingRepository: next,
		cache:             ccache.New(ccache.Configure[*entity.Listing]().MaxSize(maxSize)),
		ttl:               ttl,
		log:               log.With(zap.String("repository", "listing_cache")),
	}
}

func (r *CachedListingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	if err := r.ListingRepository.Create(ctx, listing); err != nil {
		return err
	}
	r.set(listing)
	return nil
}

func (r *CachedListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error) {
	if item := r.cache.Get(id.String()); item != nil && !item.Expired() {
		cached := *item.Value()
		return &cached, nil
	}

	listing, err := r.ListingRepository.FindByID(ctx, id)
	if err != nil || listing == nil {
		return listing, err
	}

	r.log.Debug("Listing cache miss", zap.String("listing_id", id.String()))
	r.set(listing)
	return listing, nil
}

// Stop releases the cache's background worker.
func (r *CachedListingRepository) Stop() {
	r.cache.Stop()
}

func (r *CachedListingRepository) set(listing *entity.Listing) {
	stored := *listing
	r.cache.Set(listing.ID.String(), &stored, r.ttl)
}
