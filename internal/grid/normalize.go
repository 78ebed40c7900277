package grid

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Role selects which canonical form Normalize produces. The change detector
// compares under RoleCompare; the reconciler stages under RoleStorage. Using
// one normalizer for both guarantees they never disagree about what
// "changed" means.
type Role int

const (
	RoleCompare Role = iota
	RoleStorage
)

// dateLayouts are tried in order when parsing date cells.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"01/02/2006",
	"2006/01/02",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// Normalize canonicalizes a raw cell value for the given column kind and role.
//
// Blank, absent, and nil inputs become nil for numeric and date columns in
// both roles. For text columns they compare as "" but store as nil, so
// blanking a cell clears the field.
//
// Numeric strings parse permissively; values that are exact integers become
// int64, never float64, so 5 and 5.0 are the same value. Unparseable numerics
// become nil.
//
// Date values of any parseable layout become an ISO YYYY-MM-DD string.
// Unparseable date strings pass through verbatim rather than being dropped.
func Normalize(v any, kind ColumnKind, role Role) any {
	switch kind {
	case KindNumeric:
		return normalizeNumeric(v)
	case KindDate:
		return normalizeDate(v)
	default:
		return normalizeText(v, role)
	}
}

func normalizeNumeric(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case bool:
		if t {
			return int64(1)
		}
		return int64(0)
	case int:
		return int64(t)
	case int32:
		return int64(t)
	case int64:
		return t
	case float32:
		return floatValue(float64(t))
	case float64:
		return floatValue(t)
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		return floatValue(f)
	default:
		return nil
	}
}

// floatValue collapses exact integers to int64 so comparison and storage
// never see a spurious 5 vs 5.0 difference.
func floatValue(f float64) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	if f == math.Trunc(f) && f >= math.MinInt64 && f <= math.MaxInt64 {
		return int64(f)
	}
	return f
}

func normalizeDate(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case time.Time:
		return t.Format("2006-01-02")
	case *time.Time:
		if t == nil {
			return nil
		}
		return t.Format("2006-01-02")
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil
		}
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed.Format("2006-01-02")
			}
		}
		// Lossy fallback: keep the operator's input instead of silently
		// dropping it.
		return s
	default:
		return fmt.Sprintf("%v", t)
	}
}

func normalizeText(v any, role Role) any {
	switch t := v.(type) {
	case nil:
		if role == RoleCompare {
			return ""
		}
		return nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" && role == RoleStorage {
			return nil
		}
		return s
	default:
		return fmt.Sprintf("%v", t)
	}
}
