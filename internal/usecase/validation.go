package usecase

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"rental-booking/internal/data/entity"
	"rental-booking/internal/dto/request"
	"rental-booking/pkg/apperror"
	"rental-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NewBooking is a booking request that passed validation. Nothing in it came
// from the caller's notion of price.
type NewBooking struct {
	ListingID  string
	GuestName  string
	GuestEmail string
	GuestPhone string
	Stay       entity.DateRange
	Guests     int
}

const (
	msgRequired     = "This field is required"
	msgInvalidDate  = "Invalid date"
	msgDateOrder    = "Check-out date must be after check-in date"
	msgGuestsNumber = "Must be a whole number"
	msgGuestsMin    = "At least 1 guest is required"
)

// Dates outside [minDate, maxDate) are rejected. Both bounds fit a Postgres
// timestamptz and a Unix millisecond count.
var (
	minDate = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)
	maxDate = time.Date(10000, time.January, 1, 0, 0, 0, 0, time.UTC)
)

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateOnly,
}

// ValidateBooking checks and normalises a raw booking request. Every
// violation is reported in a single Validation error.
func ValidateBooking(req *request.CreateBookingRequest, phoneRegion string) (*NewBooking, error) {
	trimmed := *req
	trimmed.ListingID = strings.TrimSpace(req.ListingID)
	trimmed.GuestName = strings.TrimSpace(req.GuestName)
	trimmed.GuestEmail = strings.TrimSpace(req.GuestEmail)
	trimmed.GuestPhone = strings.TrimSpace(req.GuestPhone)

	fields := utils.ValidateStruct(trimmed)

	stay, dateErrs := parseStay(req.CheckIn, req.CheckOut)
	fields = append(fields, dateErrs...)

	guests, msg := parseGuests(req.Guests)
	if msg != "" {
		fields = append(fields, apperror.FieldError{Field: "guests", Message: msg})
	}

	fields = withTypeErrors(req.TypeErrors, fields)
	if len(fields) > 0 {
		return nil, apperror.Validation(fields)
	}

	return &NewBooking{
		ListingID:  trimmed.ListingID,
		GuestName:  trimmed.GuestName,
		GuestEmail: trimmed.GuestEmail,
		GuestPhone: utils.NormalizePhone(trimmed.GuestPhone, phoneRegion),
		Stay:       stay,
		Guests:     guests,
	}, nil
}

// ValidateDateRange coerces a check-in/check-out pair into a non-empty range.
func ValidateDateRange(checkIn, checkOut any) (entity.DateRange, error) {
	stay, fields := parseStay(checkIn, checkOut)
	if len(fields) > 0 {
		return entity.DateRange{}, apperror.Validation(fields)
	}
	return stay, nil
}

// ValidateListing checks a listing body and fills defaults. The returned
// listing has no ID or CreatedAt yet.
func ValidateListing(req *request.CreateListingRequest) (*entity.Listing, error) {
	trimmed := *req
	trimmed.Title = strings.TrimSpace(req.Title)
	trimmed.Location = strings.TrimSpace(req.Location)
	trimmed.Image = strings.TrimSpace(req.Image)
	trimmed.Description = strings.TrimSpace(req.Description)
	trimmed.Category = strings.ToUpper(strings.TrimSpace(req.Category))

	fields := utils.ValidateStruct(trimmed)

	rating := decimal.Zero
	if req.Rating != nil {
		rating = req.Rating.Round(2)
		if rating.IsNegative() || rating.GreaterThan(decimal.NewFromInt(5)) {
			fields = append(fields, apperror.FieldError{Field: "rating", Message: "Must be between 0 and 5"})
		}
	}

	latitude, msg := coordinate(req.Latitude, 90)
	if msg != "" {
		fields = append(fields, apperror.FieldError{Field: "latitude", Message: msg})
	}
	longitude, msg := coordinate(req.Longitude, 180)
	if msg != "" {
		fields = append(fields, apperror.FieldError{Field: "longitude", Message: msg})
	}

	fields = withTypeErrors(req.TypeErrors, fields)
	if len(fields) > 0 {
		return nil, apperror.Validation(fields)
	}

	return &entity.Listing{
		Title:       trimmed.Title,
		Location:    trimmed.Location,
		Price:       trimmed.Price,
		Rating:      rating,
		Category:    entity.Category(trimmed.Category),
		Image:       trimmed.Image,
		Description: trimmed.Description,
		Latitude:    latitude,
		Longitude:   longitude,
	}, nil
}

// withTypeErrors puts decode-time type errors first. A mistyped field was
// left zero, so any other message for it is dropped.
func withTypeErrors(typeErrs, fields []apperror.FieldError) []apperror.FieldError {
	if len(typeErrs) == 0 {
		return fields
	}
	mistyped := make(map[string]bool, len(typeErrs))
	merged := append([]apperror.FieldError(nil), typeErrs...)
	for _, f := range typeErrs {
		mistyped[f.Field] = true
	}
	for _, f := range fields {
		if !mistyped[f.Field] {
			merged = append(merged, f)
		}
	}
	return merged
}

func coordinate(value *decimal.Decimal, limit int64) (decimal.Decimal, string) {
	if value == nil {
		return decimal.Zero, msgRequired
	}
	rounded := value.Round(7)
	if rounded.Abs().GreaterThan(decimal.NewFromInt(limit)) {
		return decimal.Zero, "Must be between -" + strconv.FormatInt(limit, 10) + " and " + strconv.FormatInt(limit, 10)
	}
	return rounded, ""
}

func parseStay(checkIn, checkOut any) (entity.DateRange, []apperror.FieldError) {
	var fields []apperror.FieldError

	start, msg := parseDate(checkIn)
	if msg != "" {
		fields = append(fields, apperror.FieldError{Field: "checkIn", Message: msg})
	}
	end, msg := parseDate(checkOut)
	if msg != "" {
		fields = append(fields, apperror.FieldError{Field: "checkOut", Message: msg})
	}

	stay := entity.DateRange{Start: start, End: end}
	if len(fields) == 0 && !stay.Valid() {
		fields = append(fields, apperror.FieldError{Field: "checkOut", Message: msgDateOrder})
	}
	return stay, fields
}

// parseDate accepts ISO-8601 strings (dates without a zone are UTC) and JSON
// numbers holding Unix epoch milliseconds.
func parseDate(value any) (time.Time, string) {
	t, msg := decodeDate(value)
	if msg != "" {
		return time.Time{}, msg
	}
	if t.Before(minDate) || !t.Before(maxDate) {
		return time.Time{}, msgInvalidDate
	}
	return t, ""
}

func decodeDate(value any) (time.Time, string) {
	switch v := value.(type) {
	case nil:
		return time.Time{}, msgRequired
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return time.Time{}, msgRequired
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC(), ""
			}
		}
		return time.Time{}, msgInvalidDate
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
			return time.Time{}, msgInvalidDate
		}
		// Range check before the conversion; int64(v) is undefined out of range.
		if v < float64(minDate.UnixMilli()) || v >= float64(maxDate.UnixMilli()) {
			return time.Time{}, msgInvalidDate
		}
		return time.UnixMilli(int64(v)).UTC(), ""
	case json.Number:
		ms, err := v.Int64()
		if err != nil {
			return time.Time{}, msgInvalidDate
		}
		return time.UnixMilli(ms).UTC(), ""
	default:
		return time.Time{}, msgInvalidDate
	}
}

// parseGuests defaults an absent value to one guest.
func parseGuests(value any) (int, string) {
	var n float64
	switch v := value.(type) {
	case nil:
		return 1, ""
	case float64:
		n = v
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, msgGuestsNumber
		}
		n = f
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 1, ""
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, msgGuestsNumber
		}
		n = f
	default:
		return 0, msgGuestsNumber
	}

	if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) {
		return 0, msgGuestsNumber
	}
	if n < 1 {
		return 0, msgGuestsMin
	}
	if n > math.MaxInt32 {
		return 0, "Too many guests"
	}
	return int(n), ""
}

func parseListingID(id string) (uuid.UUID, bool) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	return parsed, err == nil
}
