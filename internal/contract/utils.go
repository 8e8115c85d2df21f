package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// Missingness label constants.
const (
	SevereValue   = "Severe"   // Severe missingness
	HighValue     = "High"     // High missingness
	ModerateValue = "Moderate" // Moderate missingness
	LowValue      = "Low"      // Low missingness
)

// Color variables for console output.
var (
	SevereColor   = color.New(color.FgRed, color.Bold)     // severeColor flags sites that are mostly absent.
	HighColor     = color.New(color.FgMagenta, color.Bold) // highColor flags sites over the common QC line.
	ModerateColor = color.New(color.FgYellow)              // moderateColor represents standard caution, not bold.
	LowColor      = color.New(color.FgCyan)                // lowColor represents well-genotyped data.
)

// GetPlainLabel returns a plain text label indicating the severity of a
// missingness fraction. This is the core logic used for CSV, JSON, and
// table printing.
func GetPlainLabel(missingFrac float64) string {
	switch {
	case missingFrac >= 0.75:
		return SevereValue
	case missingFrac >= 0.5:
		return HighValue
	case missingFrac >= 0.25:
		return ModerateValue
	default:
		return LowValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the
// appropriate color.
func GetColorLabel(missingFrac float64) string {
	text := GetPlainLabel(missingFrac)

	switch text {
	case SevereValue:
		return SevereColor.Sprint(text)
	case HighValue:
		return HighColor.Sprint(text)
	case ModerateValue:
		return ModerateColor.Sprint(text)
	default: // "Low"
		return LowColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. An empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// FormatFrac renders a fraction with the configured precision. Used for
// missingness fractions in tables and serialized output.
func FormatFrac(v float64, precision int) string {
	return strconv.FormatFloat(v, 'f', precision, 64)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetRunsDBFilePath returns the path to the SQLite DB file for run storage.
func GetRunsDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".snpfiltr_runs.db"
	}
	return filepath.Join(homeDir, ".snpfiltr_runs.db")
}

// TruncateID truncates a long identifier to a maximum width with ellipsis
// prefix. Requires maxWidth > 3 so both the "..." prefix and at least one
// character of content fit.
func TruncateID(id string, maxWidth int) string {
	runes := []rune(id)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return id
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// SetColorEnabled toggles global color output for console tables.
func SetColorEnabled(enabled bool) {
	color.NoColor = !enabled
}
