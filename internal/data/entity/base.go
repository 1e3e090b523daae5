package entity

import (
	"time"

	"github.com/google/uuid"
)

// Base is shared by records that are never updated in place.
type Base struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}
