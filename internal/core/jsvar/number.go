// If you are AI: This file formats numbers the way a script engine prints them.

package jsvar

import (
	"math"
	"strconv"
	"strings"
)

// FormatNumber returns the script engine's default text form of f:
// integers print without a fraction, -0 prints as 0, and magnitudes outside
// [1e-6, 1e21) use exponent notation such as 1e+21 or 1.5e-7.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	sign := ""
	if f < 0 {
		sign = "-"
		f = -f
	}

	// Shortest round-trip digits, e.g. "1.2345e+02"
	s := strconv.FormatFloat(f, 'e', -1, 64)
	mant, expPart, _ := strings.Cut(s, "e")
	digits := strings.Replace(mant, ".", "", 1)
	exp, _ := strconv.Atoi(expPart)

	k := len(digits)
	n := exp + 1

	var out string
	switch {
	case k <= n && n <= 21:
		out = digits + strings.Repeat("0", n-k)
	case 0 < n && n <= 21:
		out = digits[:n] + "." + digits[n:]
	case -6 < n && n <= 0:
		out = "0." + strings.Repeat("0", -n) + digits
	default:
		e := n - 1
		expSign := "+"
		if e < 0 {
			expSign = "-"
			e = -e
		}
		head := digits[:1]
		if k > 1 {
			head += "." + digits[1:]
		}
		out = head + "e" + expSign + strconv.Itoa(e)
	}
	return sign + out
}
