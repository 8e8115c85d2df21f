package contract

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{
			name:     "fully genotyped",
			input:    0.0,
			expected: LowValue,
		},
		{
			name:     "just before moderate",
			input:    0.24,
			expected: LowValue,
		},
		{
			name:     "exactly moderate",
			input:    0.25,
			expected: ModerateValue,
		},
		{
			name:     "just before high",
			input:    0.49,
			expected: ModerateValue,
		},
		{
			name:     "exactly high",
			input:    0.5,
			expected: HighValue,
		},
		{
			name:     "just before severe",
			input:    0.74,
			expected: HighValue,
		},
		{
			name:     "exactly severe",
			input:    0.75,
			expected: SevereValue,
		},
		{
			name:     "fully missing",
			input:    1.0,
			expected: SevereValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetPlainLabel(tt.input))
		})
	}
}

func TestGetColorLabel(t *testing.T) {
	tests := []struct {
		name  string
		frac  float64
		label string
	}{
		{"low", 0.1, LowValue},
		{"moderate", 0.3, ModerateValue},
		{"high", 0.6, HighValue},
		{"severe", 0.9, SevereValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetColorLabel(tt.frac)
			// Should contain the plain label
			assert.Contains(t, result, tt.label)
		})
	}
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path returns stdout", func(t *testing.T) {
		file, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, file)
	})

	t.Run("valid path creates file", func(t *testing.T) {
		tempFile := filepath.Join(t.TempDir(), "test_output.txt")

		file, err := SelectOutputFile(tempFile)
		require.NoError(t, err)
		assert.NotNil(t, file)
		_ = file.Close()

		// Verify file was created
		_, err = os.Stat(tempFile)
		assert.NoError(t, err)
	})
}

func TestFormatFrac(t *testing.T) {
	assert.Equal(t, "0.50", FormatFrac(0.5, 2))
	assert.Equal(t, "0.333", FormatFrac(1.0/3.0, 3))
	assert.Equal(t, "1.0", FormatFrac(1, 1))
}

func TestGetRunsDBFilePath(t *testing.T) {
	path := GetRunsDBFilePath()

	// Should not be empty
	assert.NotEmpty(t, path)

	// Should contain the database name
	assert.Contains(t, path, ".snpfiltr_runs.db")

	// Should be in home directory
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, homeDir), "path %s should start with home dir %s", path, homeDir)
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
		wantErr  bool
	}{
		{"yes", true, false},
		{"YES", true, false},
		{"true", true, false},
		{"1", true, false},
		{"no", false, false},
		{"False", false, false},
		{"0", false, false},
		{"maybe", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestConsoleReporter(t *testing.T) {
	t.Run("emoji prefix when enabled", func(t *testing.T) {
		var out, errOut bytes.Buffer
		rep := &ConsoleReporter{UseEmojis: true, Out: &out, ErrOut: &errOut}

		rep.Infof("🧬", "kept %d sites", 12)
		rep.Warnf("⚠️", "no SNPs are fully genotyped")

		assert.Equal(t, "🧬 kept 12 sites\n", out.String())
		assert.Equal(t, "⚠️ no SNPs are fully genotyped\n", errOut.String())
	})

	t.Run("plain text when disabled", func(t *testing.T) {
		var out, errOut bytes.Buffer
		rep := &ConsoleReporter{UseEmojis: false, Out: &out, ErrOut: &errOut}

		rep.Infof("🧬", "kept %d sites", 12)
		rep.Warnf("⚠️", "degenerate input")

		assert.Equal(t, "kept 12 sites\n", out.String())
		assert.Equal(t, "degenerate input\n", errOut.String())
	})
}
