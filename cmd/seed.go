package cmd

import (
	"context"
	"fmt"
	"time"

	"rental-booking/internal/data/entity"
	"rental-booking/internal/data/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type seedListing struct {
	title       string
	location    string
	price       int64
	rating      string
	category    entity.Category
	image       string
	description string
	latitude    string
	longitude   string
}

var seedListings = []seedListing{
	{
		title:       "Plum Condo Park Rangsit",
		location:    "Klong Nueng, Pathum Thani",
		price:       8500,
		rating:      "4.80",
		category:    entity.CategoryCondo,
		image:       "/images/condo-exterior.png",
		description: "Modern student living just 500m from Rangsit University. Features a resort-style pool, fitness center, and 24/7 security. Perfect for medical and engineering students seeking peace and quiet.",
		latitude:    "13.9612000",
		longitude:   "100.6015000",
	},
	{
		title:       "Kave Town Space",
		location:    "Chiang Rak, Near TU/RSU",
		price:       12000,
		rating:      "4.90",
		category:    entity.CategoryLuxury,
		image:       "/images/condo-interior.png",
		description: "High-end student lifestyle. Walk to class. Fully furnished with smart home automation, high-speed fiber internet included, and access to the sky lounge.",
		latitude:    "13.9680000",
		longitude:   "100.6050000",
	},
	{
		title:       "Dcondo Campus Resort",
		location:    "Rangsit-Pathum Thani",
		price:       9500,
		rating:      "4.70",
		category:    entity.CategoryResort,
		image:       "/images/condo-pool.png",
		description: "Resort-style living for students. Large central pool, study pods, and lush gardens. Shuttle bus service to Rangsit University every 15 minutes.",
		latitude:    "13.9720000",
		longitude:   "100.5980000",
	},
	{
		title:       "The Sky Loft RSU",
		location:    "Lak Hok, Rangsit",
		price:       15000,
		rating:      "4.95",
		category:    entity.CategoryLoft,
		image:       "/images/co-working.png",
		description: "Exclusive duplex lofts for design and art students. Double-height ceilings, industrial aesthetic, and private creative studio space in the common area.",
		latitude:    "13.9630000",
		longitude:   "100.5890000",
	},
	{
		title:       "Attitude Bu Condo",
		location:    "Phahonyothin Rd",
		price:       11000,
		rating:      "4.85",
		category:    entity.CategoryCreative,
		image:       "/images/condo-exterior.png",
		description: "Vibrant community for creative minds. Colorful interiors, rooftop garden, and close proximity to Future Park Rangsit for weekends.",
		latitude:    "13.9800000",
		longitude:   "100.6100000",
	},
	{
		title:       "Common TU",
		location:    "Klong Luang",
		price:       13500,
		rating:      "4.88",
		category:    entity.CategoryLuxury,
		image:       "/images/condo-interior.png",
		description: "Premium high-rise living with skyline views. Infinity pool, 24-hour reading room, and direct access to lifestyle malls.",
		latitude:    "13.9900000",
		longitude:   "100.6000000",
	},
	{
		title:       "Be Condo Phaholyothin",
		location:    "Near Rangsit University",
		price:       7500,
		rating:      "4.60",
		category:    entity.CategoryBudget,
		image:       "/images/condo-interior.png",
		description: "Affordable comfort without compromising style. Clean modern design, fitness center, and very close to the university entrance.",
		latitude:    "13.9660000",
		longitude:   "100.5920000",
	},
	{
		title:       "Urban Cube Dorm",
		location:    "Muang Ake",
		price:       6000,
		rating:      "4.50",
		category:    entity.CategoryDorm,
		image:       "/images/co-working.png",
		description: "Stylish boutique dormitory in the heart of Muang Ake. Surrounded by cafes and street food. Social atmosphere with shared kitchen and gaming room.",
		latitude:    "13.9640000",
		longitude:   "100.5860000",
	},
}

// Seed inserts the demo listings when the store has none. It returns the
// number of listings created.
func Seed(ctx context.Context, repo *repository.Repository, logger *zap.Logger) (int, error) {
	existing, err := repo.Listing.FindAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("count listings: %w", err)
	}
	if len(existing) > 0 {
		logger.Info("Listings already seeded", zap.Int("count", len(existing)))
		return 0, nil
	}

	err = repo.WithTx(ctx, func(tx *repository.Repository) error {
		base := time.Now().UTC()
		for i, s := range seedListings {
			listing := &entity.Listing{
				Base: entity.Base{
					ID:        uuid.New(),
					CreatedAt: base.Add(time.Duration(i) * time.Millisecond),
				},
				Title:       s.title,
				Location:    s.location,
				Price:       s.price,
				Rating:      decimal.RequireFromString(s.rating),
				Category:    s.category,
				Image:       s.image,
				Description: s.description,
				Latitude:    decimal.RequireFromString(s.latitude),
				Longitude:   decimal.RequireFromString(s.longitude),
			}
			if err := tx.Listing.Create(ctx, listing); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("seed listings: %w", err)
	}

	logger.Info("Seeded listings", zap.Int("count", len(seedListings)))
	return len(seedListings), nil
}
