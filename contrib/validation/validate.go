package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"

	"github.com/jinzhu/now"
)

// ErrInvalid is matched by every error returned by Validate
var ErrInvalid = errors.New("invalid value")

// Validate checks values, decoded json for instance, against the fields of the
// model: required fields must be present and not null, present values must fit
// the field type. Unknown keys are ignored.
func (m *Model) Validate(values map[string]interface{}) error {
	var errs []error
	for _, f := range m.Fields {
		value, ok := values[f.Name]
		if !ok || value == nil {
			if f.Required {
				errs = append(errs, fmt.Errorf("%w: field %q is required", ErrInvalid, f.Name))
			}
			continue
		}

		if err := f.check(value); err != nil {
			errs = append(errs, fmt.Errorf("%w: field %q: %v", ErrInvalid, f.Name, err))
		}
	}
	return errors.Join(errs...)
}

func (f *Field) check(value interface{}) error {
	rv := reflect.ValueOf(value)
	switch f.Type {
	case anyType:
		return nil
	case timeType:
		if rv.Type() == timeType {
			return nil
		}
		if s, ok := value.(string); ok {
			if _, err := now.Parse(s); err != nil {
				return fmt.Errorf("%q is not a time", s)
			}
			return nil
		}
	case bytesType:
		if rv.Type() == bytesType || rv.Kind() == reflect.String {
			return nil
		}
	case objType:
		if rv.Kind() == reflect.Map || rv.Kind() == reflect.Struct || rv.Kind() == reflect.Ptr {
			return nil
		}
	case listType:
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			return nil
		}
	default:
		switch f.Type.Kind() {
		case reflect.Int64:
			if isInteger(value) {
				return nil
			}
		case reflect.Float64:
			if isNumber(rv) {
				return nil
			}
			if n, ok := value.(json.Number); ok {
				if _, err := n.Float64(); err == nil {
					return nil
				}
			}
		case reflect.Bool:
			if rv.Kind() == reflect.Bool {
				return nil
			}
		case reflect.String:
			if s, ok := value.(string); ok {
				if f.MaxLength > 0 && len([]rune(s)) > f.MaxLength {
					return fmt.Errorf("longer than %d characters", f.MaxLength)
				}
				return nil
			}
		}
	}
	return fmt.Errorf("expected %v, got %T", f.Type, value)
}

func isInteger(value interface{}) bool {
	if n, ok := value.(json.Number); ok {
		_, err := n.Int64()
		return err == nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	case reflect.Float32, reflect.Float64:
		// json numbers decode as float64
		f := rv.Float()
		return f == math.Trunc(f) && !math.IsInf(f, 0)
	}
	return false
}

func isNumber(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
