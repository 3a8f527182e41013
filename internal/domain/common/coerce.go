// internal/domain/common/coerce.go
package common

import (
	"time"
)

// AsTime coerces a store-native timestamp value into time.Time.
// Firestore hands timestamps back as time.Time already; RFC3339 strings are
// accepted for documents written by other tooling. ok is false otherwise.
func AsTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	case string:
		parsed, err := time.Parse(time.RFC3339, t)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	default:
		return time.Time{}, false
	}
}

// AsTimePtr is AsTime returning nil when the value is absent or unreadable.
func AsTimePtr(v any) *time.Time {
	t, ok := AsTime(v)
	if !ok {
		return nil
	}
	return &t
}

// AsString returns v as string ("" when not a string).
func AsString(v any) string {
	s, _ := v.(string)
	return s
}

// AsFloat64 coerces numeric store values (Firestore stores int64 or float64).
func AsFloat64(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int64:
		return float64(n)
	case int:
		return float64(n)
	default:
		return 0
	}
}

// AsInt64 coerces integer store values.
func AsInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}

// AsStringSlice coerces []string / []any-of-string store values.
func AsStringSlice(v any) []string {
	switch xs := v.(type) {
	case []string:
		out := make([]string, len(xs))
		copy(out, xs)
		return out
	case []any:
		out := make([]string, 0, len(xs))
		for _, x := range xs {
			if s, ok := x.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
