package utility

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatQuantity renders a numeric attribute for display with its unit,
// e.g. FormatQuantity(140000, "kg", 1) => "140,000 kg".
func FormatQuantity(value float64, unit string, precision int) string {
	s := GroupDigits(strconv.FormatFloat(value, 'f', precision, 64))
	if unit == "" {
		return s
	}
	return s + " " + unit
}

// GroupDigits inserts thousands separators into a plain decimal string.
func GroupDigits(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
		if len(intPart) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(intPart); i += 3 {
		b.WriteString(intPart[i : i+3])
		if i+3 < len(intPart) {
			b.WriteByte(',')
		}
	}
	b.WriteString(frac)
	return b.String()
}

// Percent formats a 0-1 ratio as a whole percentage.
func Percent(ratio float64) string {
	return fmt.Sprintf("%.0f%%", ratio*100)
}
