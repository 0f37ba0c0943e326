package listing

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"ledger-admin/internal/domain"
)

// sortRows orders rows by the given fields, then by idField ascending so that
// equal keys keep a stable, documented order. The sentinel is not special.
func sortRows(rows []domain.Row, order domain.Sort, idField string) {
	slices.SortStableFunc(rows, func(a, b domain.Row) int {
		for _, f := range order {
			c := compareValues(a[f.Field], b[f.Field])
			if f.Desc {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return compareValues(a[idField], b[idField])
	})
}

// compareValues orders nil first, numbers numerically, times chronologically
// and everything else by its byte-wise string form.
func compareValues(a, b interface{}) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}
	if x, ok := toFloat(a); ok {
		if y, ok := toFloat(b); ok {
			return cmp.Compare(x, y)
		}
	}
	if x, ok := a.(time.Time); ok {
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	}
	return strings.Compare(domain.FormatValue(a), domain.FormatValue(b))
}

func toFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}
