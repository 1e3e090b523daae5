package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rental-booking/internal/data/entity"
	"rental-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type BookingRepository interface {
	// Create inserts booking, returning ErrBookingOverlap when a live booking
	// of the same listing overlaps it.
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindAll(ctx context.Context) ([]*entity.Booking, error)
	FindByListingID(ctx context.Context, listingID uuid.UUID) ([]*entity.Booking, error)

	// OverlapsExist reports whether any live booking of listingID occupies an
	// instant of [checkIn, checkOut).
	OverlapsExist(ctx context.Context, listingID uuid.UUID, checkIn, checkOut time.Time) (bool, error)
}

const bookingSelect = `
	SELECT id, listing_id, guest_name, guest_email, guest_phone, check_in, check_out,
	       guests, total_price, status, created_at
	FROM bookings
`

type bookingRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewBookingRepository(db database.DBTX, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, listing_id, guest_name, guest_email, guest_phone,
		                      check_in, check_out, guests, total_price, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.ListingID,
		booking.GuestName,
		booking.GuestEmail,
		booking.GuestPhone,
		booking.CheckIn,
		booking.CheckOut,
		booking.Guests,
		booking.TotalPrice,
		string(booking.Status),
		booking.CreatedAt,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ExclusionViolation {
		r.log.Warn("Booking rejected by overlap constraint",
			zap.String("listing_id", booking.ListingID.String()),
			zap.Time("check_in", booking.CheckIn),
			zap.Time("check_out", booking.CheckOut),
		)
		return ErrBookingOverlap
	}
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("listing_id", booking.ListingID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.ID, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	booking, err := scanBooking(r.db.QueryRow(ctx, bookingSelect+` WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id, err)
	}

	return booking, nil
}

func (r *bookingRepository) FindAll(ctx context.Context) ([]*entity.Booking, error) {
	bookings, err := r.queryBookings(ctx, bookingSelect+` ORDER BY created_at DESC, id`)
	if err != nil {
		r.log.Error("Failed to find all bookings", zap.Error(err))
		return nil, fmt.Errorf("find all bookings: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepository) FindByListingID(ctx context.Context, listingID uuid.UUID) ([]*entity.Booking, error) {
	bookings, err := r.queryBookings(ctx, bookingSelect+` WHERE listing_id = $1 ORDER BY check_in, id`, listingID)
	if err != nil {
		r.log.Error("Failed to find bookings by listing ID",
			zap.Error(err),
			zap.String("listing_id", listingID.String()),
		)
		return nil, fmt.Errorf("find bookings by listing ID %s: %w", listingID, err)
	}
	return bookings, nil
}

func (r *bookingRepository) OverlapsExist(ctx context.Context, listingID uuid.UUID, checkIn, checkOut time.Time) (bool, error) {
	// Same predicate as bookings_no_overlap so the gist index serves it.
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM bookings
			WHERE listing_id = $1
			  AND status <> 'cancelled'
			  AND tstzrange(check_in, check_out, '[)') && tstzrange($2, $3, '[)')
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, listingID, checkIn, checkOut).Scan(&exists); err != nil {
		r.log.Error("Failed to check overlapping bookings",
			zap.Error(err),
			zap.String("listing_id", listingID.String()),
		)
		return false, fmt.Errorf("check overlapping bookings for listing %s: %w", listingID, err)
	}

	return exists, nil
}

func (r *bookingRepository) queryBookings(ctx context.Context, query string, args ...any) ([]*entity.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]*entity.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.ListingID,
		&booking.GuestName,
		&booking.GuestEmail,
		&booking.GuestPhone,
		&booking.CheckIn,
		&booking.CheckOut,
		&booking.Guests,
		&booking.TotalPrice,
		&booking.Status,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}
