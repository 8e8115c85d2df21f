package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cran/SNPfiltR/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validRawInput returns a baseline input that passes validation.
func validRawInput() *ConfigRawInput {
	return &ConfigRawInput{
		VCFPathStr:   "data.vcf",
		Output:       "text",
		Precision:    DefaultPrecision,
		PlotFormat:   "png",
		StoreBackend: "sqlite",
		RunsLimit:    DefaultRunsLimit,
		Emoji:        "yes",
		Color:        "yes",
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	input := validRawInput()

	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, "data.vcf", cfg.VCFPath)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, schema.PNGPlot, cfg.PlotFormat)
	assert.Equal(t, schema.SQLiteBackend, cfg.StoreBackend)
	assert.Equal(t, DefaultPlotDir, cfg.PlotDir)
	assert.False(t, cfg.CutoffSet)
	assert.True(t, cfg.UseEmojis)
	assert.True(t, cfg.UseColors)
}

func TestProcessAndValidateCutoff(t *testing.T) {
	tests := []struct {
		name      string
		cutoff    string
		wantSet   bool
		wantValue float64
		wantErr   bool
	}{
		{"unset", "", false, 0, false},
		{"valid midpoint", "0.85", true, 0.85, false},
		{"valid zero", "0", true, 0, false},
		{"valid one", "1", true, 1, false},
		{"negative", "-0.1", false, 0, true},
		{"over one", "1.5", false, 0, true},
		{"non numeric", "strict", false, 0, true},
		{"not a number", "NaN", false, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			input := validRawInput()
			input.CutoffStr = tt.cutoff

			err := ProcessAndValidate(cfg, input)
			if tt.wantErr {
				var invalid *schema.InvalidCutoffError
				assert.ErrorAs(t, err, &invalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSet, cfg.CutoffSet)
			if tt.wantSet {
				assert.Equal(t, tt.wantValue, cfg.Cutoff)
			}
		})
	}
}

func TestProcessAndValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ConfigRawInput)
	}{
		{"bad output", func(in *ConfigRawInput) { in.Output = "yaml" }},
		{"bad plot format", func(in *ConfigRawInput) { in.PlotFormat = "bmp" }},
		{"bad backend", func(in *ConfigRawInput) { in.StoreBackend = "oracle" }},
		{"precision too low", func(in *ConfigRawInput) { in.Precision = 0 }},
		{"precision too high", func(in *ConfigRawInput) { in.Precision = MaxPrecision + 1 }},
		{"limit zero", func(in *ConfigRawInput) { in.RunsLimit = 0 }},
		{"limit too high", func(in *ConfigRawInput) { in.RunsLimit = MaxRunsLimit + 1 }},
		{"bad emoji flag", func(in *ConfigRawInput) { in.Emoji = "maybe" }},
		{"bad color flag", func(in *ConfigRawInput) { in.Color = "2" }},
		{"mysql without connect", func(in *ConfigRawInput) { in.StoreBackend = "mysql" }},
		{"postgres without connect", func(in *ConfigRawInput) { in.StoreBackend = "postgresql" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			input := validRawInput()
			tt.mutate(input)
			assert.Error(t, ProcessAndValidate(cfg, input))
		})
	}
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		connStr string
		wantErr bool
	}{
		{"sqlite ignores connect", schema.SQLiteBackend, "", false},
		{"none ignores connect", schema.NoneBackend, "", false},
		{"mysql valid", schema.MySQLBackend, "user:pass@tcp(localhost:3306)/snpfiltr", false},
		{"mysql missing tcp", schema.MySQLBackend, "user:pass@localhost/snpfiltr", true},
		{"mysql missing db", schema.MySQLBackend, "user:pass@tcp(localhost:3306)", true},
		{"postgres valid", schema.PostgreSQLBackend, "host=localhost dbname=snpfiltr", false},
		{"postgres missing host", schema.PostgreSQLBackend, "dbname=snpfiltr", true},
		{"postgres missing dbname", schema.PostgreSQLBackend, "host=localhost", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRequireVCFPath(t *testing.T) {
	t.Run("missing path", func(t *testing.T) {
		assert.Error(t, RequireVCFPath(&Config{}))
	})

	t.Run("nonexistent file", func(t *testing.T) {
		cfg := &Config{VCFPath: filepath.Join(t.TempDir(), "nope.vcf")}
		assert.Error(t, RequireVCFPath(cfg))
	})

	t.Run("directory rejected", func(t *testing.T) {
		cfg := &Config{VCFPath: t.TempDir()}
		assert.Error(t, RequireVCFPath(cfg))
	})

	t.Run("readable file accepted", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ok.vcf")
		require.NoError(t, os.WriteFile(path, []byte("##fileformat=VCFv4.2\n"), 0o644))
		assert.NoError(t, RequireVCFPath(&Config{VCFPath: path}))
	})
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{VCFPath: "a.vcf", Cutoff: 0.9, CutoffSet: true}
	clone := cfg.Clone()
	clone.Cutoff = 0.5
	assert.Equal(t, 0.9, cfg.Cutoff)
	assert.Equal(t, "a.vcf", clone.VCFPath)
}
