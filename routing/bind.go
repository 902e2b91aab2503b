package routing

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	uuidType = reflect.TypeOf(uuid.UUID{})
	timeType = reflect.TypeOf(time.Time{})
)

// Bind populates a struct from the variables bound for the current request.
//
// v must be a non-nil pointer to a struct. Each exported field is looked up
// by its "route" tag, or by its lowercased name when untagged; a tag of "-"
// skips the field. Absent variables leave the field at its zero value, so
// optional template variables and missing query parameters bind cleanly.
//
// A variable already converted by its constraint binds its typed value
// directly; untyped variables (unconstrained path segments and query
// parameters) are parsed from the raw text. Supported field types are
// string, the integer and float kinds, bool, uuid.UUID and time.Time.
//
//	var in struct {
//		ID   int64  `route:"id"`
//		Tag  string `route:"tag"`
//		Page int    // from the query string
//	}
//	if err := routing.Bind(req, &in); err != nil { ... }
func Bind(r *http.Request, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: target must be a non-nil struct pointer, got %T", ErrBind, v)
	}

	params := ParamsFrom(r)
	if len(params) == 0 {
		return nil
	}

	sv := rv.Elem()
	st := sv.Type()

	for i := 0; i < st.NumField(); i++ {
		field := st.Field(i)
		if !field.IsExported() {
			continue
		}

		name := field.Tag.Get("route")
		if name == "-" {
			continue
		}
		if name == "" {
			name = strings.ToLower(field.Name)
		}

		val, ok := params[name]
		if !ok {
			continue
		}

		if err := assignValue(sv.Field(i), val); err != nil {
			return fmt.Errorf("%w: field %s: %v", ErrBind, field.Name, err)
		}
	}

	return nil
}

// assignValue stores a bound variable into a struct field, using the typed
// representation when a constraint already converted it and parsing the raw
// text otherwise.
func assignValue(field reflect.Value, val Value) error {
	switch field.Type() {
	case uuidType:
		u, ok := val.UUID()
		if !ok {
			parsed, err := uuid.Parse(val.String())
			if err != nil {
				return err
			}
			u = parsed
		}
		field.Set(reflect.ValueOf(u))
		return nil

	case timeType:
		ts, ok := val.Time()
		if !ok {
			parsed, err := time.Parse(time.RFC3339, val.String())
			if err != nil {
				return err
			}
			ts = parsed
		}
		field.Set(reflect.ValueOf(ts))
		return nil
	}

	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, ok := val.Int()
		if !ok {
			parsed, err := strconv.ParseInt(val.String(), 10, 64)
			if err != nil {
				return err
			}
			i = parsed
		}
		if field.OverflowInt(i) {
			return fmt.Errorf("value %d overflows %s", i, field.Type())
		}
		field.SetInt(i)

	case reflect.Float32, reflect.Float64:
		f, ok := val.Float()
		if !ok {
			parsed, err := strconv.ParseFloat(val.String(), 64)
			if err != nil {
				return err
			}
			f = parsed
		}
		field.SetFloat(f)

	case reflect.Bool:
		b, ok := val.Bool()
		if !ok {
			parsed, err := strconv.ParseBool(val.String())
			if err != nil {
				return err
			}
			b = parsed
		}
		field.SetBool(b)

	case reflect.String:
		field.SetString(val.String())

	default:
		return fmt.Errorf("unsupported field type %s", field.Type())
	}

	return nil
}

// WriteJSON encodes v as JSON to w under the given status code. Once the
// header is written an encoding failure can no longer be reported to the
// client; the error is returned for the handler to log.
func WriteJSON(w http.ResponseWriter, code int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(v)
}
