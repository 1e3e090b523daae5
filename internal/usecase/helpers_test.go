package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"rental-booking/internal/data/entity"
	"rental-booking/internal/data/repository"
	"rental-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errStore = errors.New("connection reset")

func seedListing(t *testing.T, repo *repository.Repository, price int64) *entity.Listing {
	t.Helper()
	listing := &entity.Listing{
		Base:        entity.Base{ID: uuid.New(), CreatedAt: time.Now().UTC()},
		Title:       "Kave Town Space",
		Location:    "Chiang Rak, Near TU/RSU",
		Price:       price,
		Rating:      decimal.RequireFromString("4.90"),
		Category:    entity.CategoryLuxury,
		Image:       "/images/condo-interior.png",
		Description: "High-end student lifestyle",
		Latitude:    decimal.RequireFromString("13.9680000"),
		Longitude:   decimal.RequireFromString("100.6050000"),
	}
	require.NoError(t, repo.Listing.Create(context.Background(), listing))
	return listing
}

func bookingRequest(listingID uuid.UUID, checkIn, checkOut string) *request.CreateBookingRequest {
	return &request.CreateBookingRequest{
		ListingID:  listingID.String(),
		GuestName:  "Guest",
		GuestEmail: "guest@example.com",
		GuestPhone: "+66 81 234 5678",
		CheckIn:    checkIn,
		CheckOut:   checkOut,
	}
}

func date(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

// recordingPublisher captures published events.
type recordingPublisher struct {
	mu     sync.Mutex
	keys   []string
	events []any
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, key string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	p.events = append(p.events, payload)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

// blindBookingRepository never reports overlaps, leaving the insert-time
// guard as the only protection.
type blindBookingRepository struct {
	repository.BookingRepository
}

func (blindBookingRepository) OverlapsExist(context.Context, uuid.UUID, time.Time, time.Time) (bool, error) {
	return false, nil
}

type failingBookingRepository struct {
	repository.BookingRepository
	failOverlaps bool
	failCreate   bool
}

func (r failingBookingRepository) OverlapsExist(ctx context.Context, id uuid.UUID, in, out time.Time) (bool, error) {
	if r.failOverlaps {
		return false, errStore
	}
	return r.BookingRepository.OverlapsExist(ctx, id, in, out)
}

func (r failingBookingRepository) Create(ctx context.Context, b *entity.Booking) error {
	if r.failCreate {
		return errStore
	}
	return r.BookingRepository.Create(ctx, b)
}

type failingListingRepository struct {
	repository.ListingRepository
}

func (failingListingRepository) FindByID(context.Context, uuid.UUID) (*entity.Listing, error) {
	return nil, errStore
}

func (failingListingRepository) FindAll(context.Context) ([]*entity.Listing, error) {
	return nil, errStore
}

func newMemoryRepo() *repository.Repository {
	return repository.NewMemoryRepository(zap.NewNop())
}
