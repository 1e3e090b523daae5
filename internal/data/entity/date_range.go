package entity

import "time"

// DateRange is a half-open interval [Start, End): the End instant itself is
// not occupied, so a stay may begin exactly when another one ends.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (r DateRange) Valid() bool {
	return r.End.After(r.Start)
}

// Overlaps reports whether the two intervals share at least one instant.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}
