package schema

import (
	"fmt"
	"math"
	"strconv"
)

// Round2 rounds v to two decimal places, matching the reported
// removed-percentage contract round(100*x, 2).
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatThreshold renders a grid level without trailing zero noise,
// e.g. 0.65 -> "0.65", 1 -> "1".
func FormatThreshold(level float64) string {
	return strconv.FormatFloat(level, 'g', -1, 64)
}

// ParseCutoff converts the raw cutoff string into a validated value in
// [0,1]. Non-numeric or out-of-range input yields InvalidCutoffError.
func ParseCutoff(raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &InvalidCutoffError{Value: raw, Reason: "not a number"}
	}
	if math.IsNaN(v) || v < 0 || v > 1 {
		return 0, &InvalidCutoffError{Value: raw, Reason: fmt.Sprintf("%v is outside [0,1]", v)}
	}
	return v, nil
}
