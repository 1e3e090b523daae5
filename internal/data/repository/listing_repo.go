package repository

import (
	"context"
	"errors"
	"fmt"

	"rental-booking/internal/data/entity"
	"rental-booking/pkg/database"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) error
	// FindByID returns (nil, nil) when no listing has the given id.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error)
	FindAll(ctx context.Context) ([]*entity.Listing, error)
}

const listingTable = "listings"

var (
	qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	listingColumns = []string{
		"id", "title", "location", "price", "rating", "category",
		"image", "description", "latitude", "longitude", "created_at",
	}
)

type listingRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewListingRepository(db database.DBTX, log *zap.Logger) ListingRepository {
	return &listingRepository{
		db:  db,
		log: log.With(zap.String("repository", "listing")),
	}
}

func (r *listingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	query, args, err := qb.Insert(listingTable).
		Columns(listingColumns...).
		Values(
			listing.ID,
			listing.Title,
			listing.Location,
			listing.Price,
			listing.Rating.String(),
			string(listing.Category),
			listing.Image,
			listing.Description,
			listing.Latitude.String(),
			listing.Longitude.String(),
			listing.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert listing query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		r.log.Error("Failed to create listing",
			zap.Error(err),
			zap.String("listing_id", listing.ID.String()),
			zap.String("title", listing.Title),
		)
		return fmt.Errorf("create listing %s: %w", listing.ID, err)
	}

	return nil
}

func (r *listingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error) {
	// uuid.UUID is an array, which sq.Eq would expand into an IN list
	query, args, err := qb.Select(listingColumns...).
		From(listingTable).
		Where(sq.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find listing query: %w", err)
	}

	listing, err := scanListing(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find listing by ID",
			zap.Error(err),
			zap.String("listing_id", id.String()),
		)
		return nil, fmt.Errorf("find listing by ID %s: %w", id, err)
	}

	return listing, nil
}

func (r *listingRepository) FindAll(ctx context.Context) ([]*entity.Listing, error) {
	query, args, err := qb.Select(listingColumns...).
		From(listingTable).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find listings query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find all listings", zap.Error(err))
		return nil, fmt.Errorf("find all listings: %w", err)
	}
	defer rows.Close()

	listings := make([]*entity.Listing, 0)
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			r.log.Error("Failed to scan listing row", zap.Error(err))
			return nil, fmt.Errorf("scan listing row: %w", err)
		}
		listings = append(listings, listing)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate listing rows: %w", err)
	}

	return listings, nil
}

func scanListing(row pgx.Row) (*entity.Listing, error) {
	var listing entity.Listing
	err := row.Scan(
		&listing.ID,
		&listing.Title,
		&listing.Location,
		&listing.Price,
		&listing.Rating,
		&listing.Category,
		&listing.Image,
		&listing.Description,
		&listing.Latitude,
		&listing.Longitude,
		&listing.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &listing, nil
}
