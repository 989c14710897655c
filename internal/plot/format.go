package plot

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatValue renders an axis or tracepoint value with precision adapted to
// its magnitude, so small losses and large step counts both stay readable.
func FormatValue(v float64) string {
	if v == 0 {
		return "0"
	}
	abs := math.Abs(v)
	switch {
	case abs < 0.001:
		return fmt.Sprintf("%.1e", v)
	case abs < 0.1:
		return formatFloat(v, 4)
	case abs < 10:
		return formatFloat(v, 2)
	case abs >= 1e6:
		return formatFloat(v/1e6, 1) + "M"
	case abs >= 1e3:
		return formatFloat(v/1e3, 1) + "k"
	default:
		return formatFloat(v, 1)
	}
}

// formatFloat formats a float with the given decimal places, trimming
// trailing zeros after the decimal point.
func formatFloat(v float64, decimals int) string {
	formatted := strconv.FormatFloat(v, 'f', decimals, 64)

	if decimals > 0 && strings.Contains(formatted, ".") {
		formatted = strings.TrimRight(formatted, "0")
		formatted = strings.TrimRight(formatted, ".")
	}

	if formatted == "" {
		formatted = "0"
	}
	return formatted
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
