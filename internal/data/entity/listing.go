package entity

import (
	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryCondo    Category = "CONDO"
	CategoryLuxury   Category = "LUXURY"
	CategoryResort   Category = "RESORT"
	CategoryLoft     Category = "LOFT"
	CategoryCreative Category = "CREATIVE"
	CategoryBudget   Category = "BUDGET"
	CategoryDorm     Category = "DORM"
)

// Categories lists every accepted listing category.
var Categories = []Category{
	CategoryCondo,
	CategoryLuxury,
	CategoryResort,
	CategoryLoft,
	CategoryCreative,
	CategoryBudget,
	CategoryDorm,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Listing is a rentable property. Price is the monthly rent in the smallest
// currency unit; rating and coordinates are fixed-point decimals.
type Listing struct {
	Base
	Title       string          `db:"title"`
	Location    string          `db:"location"`
	Price       int64           `db:"price"`
	Rating      decimal.Decimal `db:"rating"`
	Category    Category        `db:"category"`
	Image       string          `db:"image"`
	Description string          `db:"description"`
	Latitude    decimal.Decimal `db:"latitude"`
	Longitude   decimal.Decimal `db:"longitude"`
}
