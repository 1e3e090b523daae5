package utils

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"rental-booking/pkg/apperror"

	"github.com/shopspring/decimal"
)

var decimalType = reflect.TypeOf(decimal.Decimal{})

// DecodeJSONFields decodes a JSON object into the struct dst points to, one
// field at a time. A value that does not fit its field is reported as a
// FieldError and the field stays zero; the rest of the body still decodes.
// A body that is not a JSON object is an error.
func DecodeJSONFields(body []byte, dst any) ([]apperror.FieldError, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}

	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("decode target must be a struct pointer, got %T", dst)
	}
	v = v.Elem()
	typ := v.Type()

	var fields []apperror.FieldError
	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)
		name := jsonFieldName(sf)
		if name == "" {
			continue
		}
		value, ok := lookupKey(raw, name)
		if !ok {
			continue
		}

		target := reflect.New(sf.Type)
		if err := json.Unmarshal(value, target.Interface()); err != nil {
			fields = append(fields, apperror.FieldError{Field: name, Message: typeMessage(sf.Type)})
			continue
		}
		v.Field(i).Set(target.Elem())
	}
	return fields, nil
}

func jsonFieldName(sf reflect.StructField) string {
	if !sf.IsExported() {
		return ""
	}
	name := strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return sf.Name
	}
	return name
}

// lookupKey matches keys the way encoding/json does: exact first, then
// case-insensitive.
func lookupKey(raw map[string]json.RawMessage, name string) (json.RawMessage, bool) {
	if value, ok := raw[name]; ok {
		return value, true
	}
	for key, value := range raw {
		if strings.EqualFold(key, name) {
			return value, true
		}
	}
	return nil, false
}

func typeMessage(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == decimalType {
		return "Must be a number"
	}
	switch t.Kind() {
	case reflect.String:
		return "Must be a string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "Must be a whole number"
	case reflect.Float32, reflect.Float64:
		return "Must be a number"
	case reflect.Bool:
		return "Must be true or false"
	default:
		return "Invalid value"
	}
}
