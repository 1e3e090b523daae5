package usecase

import (
	"encoding/json"
	"testing"
	"time"

	"rental-booking/internal/dto/request"
	"rental-booking/pkg/apperror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBookingRequest() *request.CreateBookingRequest {
	return &request.CreateBookingRequest{
		ListingID:  "0b6f5f0e-7d8c-4b8e-9a53-2f1a0c7e9d11",
		GuestName:  "Somchai",
		GuestEmail: "somchai@example.com",
		GuestPhone: "081 234 5678",
		CheckIn:    "2024-03-01",
		CheckOut:   "2024-03-10",
	}
}

func fieldMessages(t *testing.T, err error) map[string]string {
	t.Helper()
	appErr := apperror.As(err)
	require.Equal(t, apperror.KindValidation, appErr.Kind, "expected validation error, got %v", err)
	return appErr.FieldMap()
}

func TestValidateBooking_Valid(t *testing.T) {
	b, err := ValidateBooking(validBookingRequest(), "TH")
	require.NoError(t, err)

	assert.Equal(t, 1, b.Guests, "guests defaults to one")
	assert.Equal(t, "+66812345678", b.GuestPhone)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), b.Stay.Start)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), b.Stay.End)
}

func TestValidateBooking_AggregatesEveryViolation(t *testing.T) {
	req := &request.CreateBookingRequest{
		GuestName: "   ",
		CheckIn:   "not a date",
		Guests:    0.0,
	}

	_, err := ValidateBooking(req, "TH")
	fields := fieldMessages(t, err)

	for _, field := range []string{"listingId", "guestName", "guestEmail", "guestPhone", "checkIn", "checkOut", "guests"} {
		assert.Contains(t, fields, field)
	}
	assert.Equal(t, msgInvalidDate, fields["checkIn"])
	assert.Equal(t, msgRequired, fields["checkOut"])
	assert.Equal(t, msgGuestsMin, fields["guests"])
}

func TestValidateBooking_DateOrderAttributedToCheckOut(t *testing.T) {
	for _, tc := range []struct {
		name     string
		checkIn  string
		checkOut string
	}{
		{"same day", "2024-03-01", "2024-03-01"},
		{"reversed", "2024-03-10", "2024-03-01"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			req := validBookingRequest()
			req.CheckIn, req.CheckOut = tc.checkIn, tc.checkOut

			_, err := ValidateBooking(req, "TH")
			fields := fieldMessages(t, err)
			assert.Equal(t, map[string]string{"checkOut": msgDateOrder}, fields)
		})
	}
}

func TestValidateBooking_DateRepresentations(t *testing.T) {
	want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	for _, in := range []any{
		"2024-03-01",
		"2024-03-01T00:00:00Z",
		"2024-03-01T07:00:00+07:00",
		"2024-03-01T00:00:00.000Z",
		"2024-03-01T00:00:00",
		float64(want.UnixMilli()),
		json.Number("1709251200000"),
	} {
		got, msg := parseDate(in)
		assert.Empty(t, msg, "input %v", in)
		assert.True(t, want.Equal(got), "input %v parsed as %v", in, got)
	}

	for _, in := range []any{"", "03/01/2024", true, 1.5, map[string]any{}} {
		_, msg := parseDate(in)
		assert.NotEmpty(t, msg, "input %v", in)
	}
}

func TestValidateBooking_DateOutOfRange(t *testing.T) {
	for _, in := range []any{
		float64(-1e20),
		float64(1e20),
		float64(maxDate.UnixMilli()),
		float64(minDate.UnixMilli() - 1),
		json.Number("9223372036854775807"),
		json.Number("-9223372036854775808"),
		"0001-01-01",
		"1899-12-31T23:59:59Z",
	} {
		_, msg := parseDate(in)
		assert.Equal(t, msgInvalidDate, msg, "input %v", in)
	}

	req := validBookingRequest()
	req.CheckIn = float64(-1e20)
	req.CheckOut = float64(1.7e12)
	_, err := ValidateBooking(req, "TH")
	assert.Equal(t, map[string]string{"checkIn": msgInvalidDate}, fieldMessages(t, err))

	got, msg := parseDate(float64(minDate.UnixMilli()))
	assert.Empty(t, msg)
	assert.True(t, minDate.Equal(got))
}

func TestValidateBooking_Guests(t *testing.T) {
	tests := []struct {
		in   any
		want int
		msg  string
	}{
		{nil, 1, ""},
		{float64(3), 3, ""},
		{"2", 2, ""},
		{json.Number("4"), 4, ""},
		{float64(0), 0, msgGuestsMin},
		{float64(-1), 0, msgGuestsMin},
		{2.5, 0, msgGuestsNumber},
		{"two", 0, msgGuestsNumber},
		{true, 0, msgGuestsNumber},
	}
	for _, tt := range tests {
		got, msg := parseGuests(tt.in)
		assert.Equal(t, tt.want, got, "input %v", tt.in)
		assert.Equal(t, tt.msg, msg, "input %v", tt.in)
	}
}

func TestValidateBooking_IgnoresTotalPrice(t *testing.T) {
	body := `{"listingId":"0b6f5f0e-7d8c-4b8e-9a53-2f1a0c7e9d11","guestName":"A","guestEmail":"a@b.c",
		"guestPhone":"x","checkIn":"2024-03-01","checkOut":"2024-03-02","guests":2,"totalPrice":1}`

	var req request.CreateBookingRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	b, err := ValidateBooking(&req, "TH")
	require.NoError(t, err)
	assert.Equal(t, 2, b.Guests)
	assert.Equal(t, "x", b.GuestPhone, "unparseable phones are kept as text")
}

func TestValidateBooking_TypeErrorsMergedWithViolations(t *testing.T) {
	req := validBookingRequest()
	req.ListingID = ""
	req.GuestName = ""
	req.CheckOut = "2024-02-01"
	req.TypeErrors = []apperror.FieldError{{Field: "listingId", Message: "Must be a string"}}

	_, err := ValidateBooking(req, "TH")
	assert.Equal(t, map[string]string{
		"listingId": "Must be a string",
		"guestName": "This field is required",
		"checkOut":  msgDateOrder,
	}, fieldMessages(t, err))
}

func TestValidateDateRange(t *testing.T) {
	stay, err := ValidateDateRange("2024-03-10", "2024-03-15")
	require.NoError(t, err)
	assert.True(t, stay.Valid())

	_, err = ValidateDateRange("2024-03-10", "2024-03-10")
	assert.Equal(t, map[string]string{"checkOut": msgDateOrder}, fieldMessages(t, err))

	_, err = ValidateDateRange(nil, nil)
	fields := fieldMessages(t, err)
	assert.Len(t, fields, 2)
}

func validListingRequest() *request.CreateListingRequest {
	lat := decimal.RequireFromString("13.9612")
	lon := decimal.RequireFromString("100.6015")
	return &request.CreateListingRequest{
		Title:       "Plum Condo Park Rangsit",
		Location:    "Klong Nueng, Pathum Thani",
		Price:       8500,
		Category:    "condo",
		Image:       "/images/condo-exterior.png",
		Description: "Modern student living",
		Latitude:    &lat,
		Longitude:   &lon,
	}
}

func TestValidateListing(t *testing.T) {
	listing, err := ValidateListing(validListingRequest())
	require.NoError(t, err)
	assert.Equal(t, "0.00", listing.Rating.StringFixed(2))
	assert.Equal(t, "CONDO", string(listing.Category))
	assert.Equal(t, "13.9612000", listing.Latitude.StringFixed(7))
}

func TestValidateListing_Violations(t *testing.T) {
	rating := decimal.RequireFromString("5.5")
	lat := decimal.RequireFromString("91")
	req := validListingRequest()
	req.Title = ""
	req.Price = -1
	req.Category = "CASTLE"
	req.Rating = &rating
	req.Latitude = &lat
	req.Longitude = nil

	_, err := ValidateListing(req)
	fields := fieldMessages(t, err)

	for _, field := range []string{"title", "price", "category", "rating", "latitude", "longitude"} {
		assert.Contains(t, fields, field)
	}
	assert.NotContains(t, fields, "location")
}
