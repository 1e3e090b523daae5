package repository

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"rental-booking/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// memoryStore keeps records in process. Transactions are serialised by txMu;
// individual reads and writes are guarded by mu so non-transactional callers
// stay safe as well.
type memoryStore struct {
	txMu sync.Mutex

	mu       sync.RWMutex
	listings []*entity.Listing
	bookings []*entity.Booking
}

// NewMemoryRepository returns repositories backed by process memory. Booking
// inserts re-check overlaps under the store lock, which gives the same
// guarantee as the Postgres exclusion constraint.
func NewMemoryRepository(log *zap.Logger) *Repository {
	store := &memoryStore{}
	return &Repository{
		Listing: &memoryListingRepository{store: store},
		Booking: &memoryBookingRepository{store: store, log: log.With(zap.String("repository", "booking"))},
		tx:      &memoryTransactor{store: store, log: log},
	}
}

// undoLog records how to revert writes made inside a transaction.
type undoLog struct {
	steps []func()
}

func (u *undoLog) push(step func()) {
	if u != nil {
		u.steps = append(u.steps, step)
	}
}

func (u *undoLog) rollback() {
	for i := len(u.steps) - 1; i >= 0; i-- {
		u.steps[i]()
	}
}

type memoryTransactor struct {
	store *memoryStore
	log   *zap.Logger
}

func (t *memoryTransactor) WithTx(ctx context.Context, fn TxFunc) error {
	t.store.txMu.Lock()
	defer t.store.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	undo := &undoLog{}
	scoped := &Repository{
		Listing: &memoryListingRepository{store: t.store, undo: undo},
		Booking: &memoryBookingRepository{store: t.store, undo: undo, log: t.log.With(zap.String("repository", "booking"))},
	}

	committed := false
	defer func() {
		if !committed {
			t.store.mu.Lock()
			undo.rollback()
			t.store.mu.Unlock()
		}
	}()

	if err := fn(scoped); err != nil {
		return err
	}
	committed = true
	return nil
}

type memoryListingRepository struct {
	store *memoryStore
	undo  *undoLog
}

func (r *memoryListingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.listings {
		if existing.ID == listing.ID {
			return fmt.Errorf("create listing %s: duplicate id", listing.ID)
		}
	}

	stored := *listing
	r.store.listings = append(r.store.listings, &stored)
	r.undo.push(func() {
		r.store.listings = slices.DeleteFunc(r.store.listings, func(l *entity.Listing) bool {
			return l.ID == stored.ID
		})
	})
	return nil
}

func (r *memoryListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, listing := range r.store.listings {
		if listing.ID == id {
			found := *listing
			return &found, nil
		}
	}
	return nil, nil
}

func (r *memoryListingRepository) FindAll(ctx context.Context) ([]*entity.Listing, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	listings := make([]*entity.Listing, 0, len(r.store.listings))
	for _, listing := range r.store.listings {
		found := *listing
		listings = append(listings, &found)
	}
	return listings, nil
}

type memoryBookingRepository struct {
	store *memoryStore
	undo  *undoLog
	log   *zap.Logger
}

func (r *memoryBookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if booking.Blocks() {
		stay := booking.Stay()
		for _, existing := range r.store.bookings {
			if existing.ListingID == booking.ListingID && existing.Blocks() && existing.Stay().Overlaps(stay) {
				r.log.Warn("Booking rejected by overlap check",
					zap.String("listing_id", booking.ListingID.String()),
					zap.String("existing_booking_id", existing.ID.String()),
				)
				return ErrBookingOverlap
			}
		}
	}

	stored := *booking
	r.store.bookings = append(r.store.bookings, &stored)
	r.undo.push(func() {
		r.store.bookings = slices.DeleteFunc(r.store.bookings, func(b *entity.Booking) bool {
			return b.ID == stored.ID
		})
	})
	return nil
}

func (r *memoryBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, booking := range r.store.bookings {
		if booking.ID == id {
			found := *booking
			return &found, nil
		}
	}
	return nil, nil
}

func (r *memoryBookingRepository) FindAll(ctx context.Context) ([]*entity.Booking, error) {
	bookings := r.filter(func(*entity.Booking) bool { return true })
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
	return bookings, nil
}

func (r *memoryBookingRepository) FindByListingID(ctx context.Context, listingID uuid.UUID) ([]*entity.Booking, error) {
	bookings := r.filter(func(b *entity.Booking) bool { return b.ListingID == listingID })
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].CheckIn.Before(bookings[j].CheckIn)
	})
	return bookings, nil
}

func (r *memoryBookingRepository) OverlapsExist(ctx context.Context, listingID uuid.UUID, checkIn, checkOut time.Time) (bool, error) {
	requested := entity.DateRange{Start: checkIn, End: checkOut}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, booking := range r.store.bookings {
		if booking.ListingID == listingID && booking.Blocks() && booking.Stay().Overlaps(requested) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryBookingRepository) filter(keep func(*entity.Booking) bool) []*entity.Booking {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	bookings := make([]*entity.Booking, 0)
	for _, booking := range r.store.bookings {
		if keep(booking) {
			found := *booking
			bookings = append(bookings, &found)
		}
	}
	return bookings
}
