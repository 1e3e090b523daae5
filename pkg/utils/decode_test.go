package utils

import (
	"testing"

	"rental-booking/pkg/apperror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type decodeTarget struct {
	Name    string           `json:"name"`
	Count   int64            `json:"count"`
	Rating  *decimal.Decimal `json:"rating"`
	Extra   any              `json:"extra"`
	Skipped string           `json:"-"`
}

func TestDecodeJSONFields(t *testing.T) {
	var dst decodeTarget
	fields, err := DecodeJSONFields([]byte(`{"name":"Loft","COUNT":3,"rating":"4.5","extra":[1],"Skipped":"x","unknown":1}`), &dst)
	require.NoError(t, err)
	assert.Empty(t, fields)
	assert.Equal(t, "Loft", dst.Name)
	assert.Equal(t, int64(3), dst.Count, "keys match case-insensitively")
	require.NotNil(t, dst.Rating)
	assert.Equal(t, "4.5", dst.Rating.String())
	assert.Equal(t, []any{float64(1)}, dst.Extra)
	assert.Empty(t, dst.Skipped)
}

func TestDecodeJSONFields_ReportsEveryMistypedField(t *testing.T) {
	var dst decodeTarget
	fields, err := DecodeJSONFields([]byte(`{"name":5,"count":"3","rating":"high","extra":"kept"}`), &dst)
	require.NoError(t, err)

	assert.Equal(t, []apperror.FieldError{
		{Field: "name", Message: "Must be a string"},
		{Field: "count", Message: "Must be a whole number"},
		{Field: "rating", Message: "Must be a number"},
	}, fields)
	assert.Empty(t, dst.Name)
	assert.Zero(t, dst.Count)
	assert.Nil(t, dst.Rating)
	assert.Equal(t, "kept", dst.Extra)
}

func TestDecodeJSONFields_NotAnObject(t *testing.T) {
	for _, body := range []string{``, `{"name":`, `[1,2]`, `"text"`} {
		var dst decodeTarget
		_, err := DecodeJSONFields([]byte(body), &dst)
		assert.Error(t, err, "body %q", body)
	}

	_, err := DecodeJSONFields([]byte(`{}`), decodeTarget{})
	assert.Error(t, err, "target must be a pointer")
}
