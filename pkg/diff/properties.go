package diff

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/go-cmp/cmp"
)

const floatEpsilon = 1e-9

// scalarEqual implements spec.md §4.8's scalar comparison rule: value
// equality with date normalization, epsilon-bounded float equality,
// and structural equality otherwise.
func scalarEqual(field string, a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if as, aok := a.(string); aok {
		if bs, bok := b.(string); bok {
			if da, ok1 := normalizeDate(as); ok1 {
				if db, ok2 := normalizeDate(bs); ok2 {
					return da == db
				}
			}
			return as == bs
		}
	}
	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			return math.Abs(af-bf) < floatEpsilon
		}
	}
	return cmp.Equal(a, b)
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	default:
		return 0, false
	}
}

// normalizeDate parses a loosely zero-padded ISO-8601 date
// (YYYY-M-D or YYYY-MM-DD) into its canonical zero-padded form, so
// "2026-2-9" compares equal to "2026-02-09".
func normalizeDate(s string) (string, bool) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return "", false
	}
	y, err := strconv.Atoi(parts[0])
	if err != nil || len(parts[0]) != 4 {
		return "", false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 1 || m > 12 {
		return "", false
	}
	d, err := strconv.Atoi(parts[2])
	if err != nil || d < 1 || d > 31 {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d), true
}
