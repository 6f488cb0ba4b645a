// Package formatting parses and formats human-readable byte sizes used in configuration and logs.
package formatting

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

var units = []string{"B", "KB", "MB", "GB", "TB", "PB", "EB", "ZB", "YB"}

// FormatBytes converts a byte count to a human-readable string using base-1024 units.
// Negative precision values are clamped to zero.
func FormatBytes(n int64, precision int) string {
	if n <= 0 {
		return "0 B"
	}
	precision = max(precision, 0)

	i := min(int(math.Floor(math.Log(float64(n))/math.Log(1024))), len(units)-1)
	size := float64(n) / math.Pow(1024, float64(i))

	return strconv.FormatFloat(size, 'f', precision, 64) + " " + units[i]
}

// ParseBytes parses a size such as "50MB", "1.5 GB", or "2048" into a byte count.
// Units are base-1024 and case-insensitive; a bare number is bytes.
func ParseBytes(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty byte size string")
	}

	split := strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '.'
	})

	number, unit := s, ""
	if split >= 0 {
		number, unit = s[:split], strings.TrimSpace(s[split:])
	}

	value, err := strconv.ParseFloat(number, 64)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("invalid byte size: %q", s)
	}

	if unit == "" {
		return int64(value), nil
	}

	idx := slices.Index(units, strings.ToUpper(unit))
	if idx == -1 {
		return 0, fmt.Errorf("unknown byte size unit: %q", unit)
	}

	return int64(value * math.Pow(1024, float64(idx))), nil
}
