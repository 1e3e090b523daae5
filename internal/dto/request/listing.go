package request

import (
	"rental-booking/pkg/apperror"

	"github.com/shopspring/decimal"
)

type CreateListingRequest struct {
	Title       string           `json:"title" validate:"required,max=200"`
	Location    string           `json:"location" validate:"required,max=200"`
	Price       int64            `json:"price" validate:"required,gt=0"`
	Rating      *decimal.Decimal `json:"rating,omitempty"`
	Category    string           `json:"category" validate:"required,oneof=CONDO LUXURY RESORT LOFT CREATIVE BUDGET DORM"`
	Image       string           `json:"image" validate:"required"`
	Description string           `json:"description" validate:"required"`
	Latitude    *decimal.Decimal `json:"latitude"`
	Longitude   *decimal.Decimal `json:"longitude"`

	TypeErrors []apperror.FieldError `json:"-" validate:"-"`
}

func (r *CreateListingRequest) SetTypeErrors(fields []apperror.FieldError) {
	r.TypeErrors = fields
}
