package repository

import (
	"context"
	"errors"
	"fmt"

	"rental-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ErrBookingOverlap is returned by BookingRepository.Create when the store
// already holds a live booking of the same listing that overlaps the new one.
var ErrBookingOverlap = errors.New("booking overlaps an existing booking")

// TxFunc receives repositories bound to one transaction.
type TxFunc func(tx *Repository) error

// Transactor runs fn atomically: its writes are committed when fn returns nil
// and discarded otherwise.
type Transactor interface {
	WithTx(ctx context.Context, fn TxFunc) error
}

type Repository struct {
	Listing ListingRepository
	Booking BookingRepository

	tx Transactor
}

// WithTx runs fn inside a transaction. Calling it on a repository that is
// already transaction-bound joins the running transaction.
func (r *Repository) WithTx(ctx context.Context, fn TxFunc) error {
	if r.tx == nil {
		return fn(r)
	}
	return r.tx.WithTx(ctx, fn)
}

// NewRepository returns Postgres-backed repositories.
func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Listing: NewListingRepository(db, log),
		Booking: NewBookingRepository(db, log),
		tx:      &pgTransactor{db: db, log: log.With(zap.String("repository", "tx"))},
	}
}

type pgTransactor struct {
	db  database.PgxIface
	log *zap.Logger
}

func (t *pgTransactor) WithTx(ctx context.Context, fn TxFunc) (err error) {
	// Read committed is enough: the bookings_no_overlap exclusion constraint
	// rejects the loser of a race at insert time.
	tx, err := t.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		t.log.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if err == nil {
			return
		}
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			t.log.Error("Failed to rollback transaction", zap.Error(rbErr))
		}
	}()

	scoped := &Repository{
		Listing: NewListingRepository(tx, t.log),
		Booking: NewBookingRepository(tx, t.log),
	}
	if err = fn(scoped); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		t.log.Error("Failed to commit transaction", zap.Error(err))
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
