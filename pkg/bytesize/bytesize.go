// Package bytesize renders byte counts as human-readable strings using
// binary (1024-based) units.
package bytesize

import (
	"fmt"
	"math"
)

var units = [...]string{"B", "KB", "MB", "GB", "TB", "PB", "EB", "ZB", "YB"}

// Format renders n with one fractional digit and a binary unit, e.g.
// "1.0 KB" or "1023.0 MB". Zero renders as "0.0 B".
func Format(n uint64) string {
	return FormatFloat(float64(n))
}

// FormatFloat is Format for byte counts beyond the uint64 range. The unit is
// picked by the floored base-1024 logarithm of the count, so a value just
// below a unit boundary keeps the lower unit (1047552 bytes is "1023.0 KB",
// not "1.0 MB"). There is no unit beyond YB: larger counts stay in YB with a
// mantissa above 1024.
func FormatFloat(n float64) string {
	if n <= 0 {
		return "0.0 B"
	}
	// math.Log2 is exact on powers of two, so exact multiples of 1024 never
	// land on the wrong side of a unit boundary.
	exp := int(math.Floor(math.Log2(n) / 10))
	if exp < 0 {
		exp = 0
	}
	if exp > len(units)-1 {
		exp = len(units) - 1
	}
	return fmt.Sprintf("%.1f %s", n/math.Pow(1024, float64(exp)), units[exp])
}
