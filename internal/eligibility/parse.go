package eligibility

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// ParseLastDonation normalizes the shapes a last-donation date arrives in
// from stores and tokens: time values, ISO strings, protobuf or
// Firestore-style timestamps, and {"seconds": n} maps. Anything it cannot
// read, including zero times, yields nil (treated as never donated).
func ParseLastDonation(v any) *time.Time {
	switch val := v.(type) {
	case nil:
		return nil
	case time.Time:
		return nonZero(val)
	case *time.Time:
		if val == nil {
			return nil
		}
		return nonZero(*val)
	case string:
		return parseString(val)
	case *timestamppb.Timestamp:
		if val == nil || !val.IsValid() {
			return nil
		}
		return nonZero(val.AsTime())
	case interface{ AsTime() time.Time }:
		return nonZero(val.AsTime())
	case map[string]any:
		return parseSecondsMap(val)
	default:
		return nil
	}
}

func parseString(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return nonZero(t)
		}
	}
	return nil
}

func parseSecondsMap(m map[string]any) *time.Time {
	seconds, ok := number(m["seconds"])
	if !ok {
		if seconds, ok = number(m["_seconds"]); !ok {
			return nil
		}
	}
	nanos, _ := number(m["nanoseconds"])
	if n, ok := number(m["_nanoseconds"]); ok {
		nanos = n
	}
	return nonZero(time.Unix(int64(seconds), int64(nanos)).UTC())
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func nonZero(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
