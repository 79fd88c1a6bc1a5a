package output

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatCount formats a count with thousands separators ("1,234,567").
// Fractions are kept ("1,000.5"); NaN and infinities are written as Go formats them.
func FormatCount(n float64) string {
	s := strconv.FormatFloat(n, 'f', -1, 64)
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return s
	}

	decimals := 0
	if _, frac, ok := strings.Cut(s, "."); ok {
		decimals = len(frac)
	}
	return FormatGrouped(n, decimals)
}

// FormatGrouped formats f with the given number of decimals and thousands separators.
func FormatGrouped(f float64, decimals int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return printer.Sprintf(fmt.Sprintf("%%.%df", decimals), f)
}

// Megabytes converts a byte count to decimal megabytes.
func Megabytes(bytes float64) float64 {
	return bytes / 1e6
}
