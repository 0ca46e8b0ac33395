package util

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// FormatLabel turns a directory or column name into a title:
// "rodada_1" -> "Rodada 1", "cpu_3" -> "CPU 3".
func FormatLabel(name string) string {
	s := title(strings.Replace(name, "_", " ", -1))
	return strings.Replace(s, "Cpu", "CPU", -1)
}

// title upper-cases the first letter of every alphabetic run and
// lower-cases the rest: "tcp_1g" becomes "Tcp_1G".
func title(w string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range w {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}

// Round2 rounds to two decimals.
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// FormatFloat prints a float the shortest way that reads back to the
// same value, always with a fractional part or exponent: 3 -> "3.0",
// 0.5 -> "0.5", 1e16 -> "1e+16".
func FormatFloat(f float64) string {
	abs := math.Abs(f)
	if math.IsNaN(f) {
		return "nan"
	}
	if math.IsInf(f, 0) {
		if f > 0 {
			return "inf"
		}
		return "-inf"
	}
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// ParseDecimal parses a float accepting a decimal comma.
func ParseDecimal(s string) (float64, error) {
	return strconv.ParseFloat(strings.Replace(strings.TrimSpace(s), ",", ".", -1), 64)
}
