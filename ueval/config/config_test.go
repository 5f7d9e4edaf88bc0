package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ueval.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultLoopIterationLimit, cfg.Evaluator.LoopIterationLimit)
	assert.True(t, cfg.Evaluator.TrackReturns)
	assert.Equal(t, ColorAuto, cfg.Output.Color)
	assert.False(t, cfg.Output.Trace)
	assert.Equal(t, zerolog.DebugLevel, cfg.TraceLevel())
	assert.NoError(t, Validate(cfg))
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
evaluator:
  loop_iteration_limit: 16
  track_returns: false
output:
  color: never
  trace: true
  trace_level: info
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 16, cfg.Evaluator.LoopIterationLimit)
	assert.False(t, cfg.Evaluator.TrackReturns)
	assert.Equal(t, ColorNever, cfg.Output.Color)
	assert.True(t, cfg.Output.Trace)
	assert.Equal(t, zerolog.InfoLevel, cfg.TraceLevel())
}

func TestMissingSettingsKeepDefaults(t *testing.T) {
	cfg, err := Parse([]byte("output:\n  trace: true\n"))
	require.NoError(t, err)

	assert.Equal(t, DefaultLoopIterationLimit, cfg.Evaluator.LoopIterationLimit)
	assert.True(t, cfg.Evaluator.TrackReturns)
	assert.Equal(t, ColorAuto, cfg.Output.Color)
	assert.True(t, cfg.Output.Trace)
}

func TestEmptyFile(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read configuration file")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadConfigMalformed(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "evaluator: [1, 2"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse configuration")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(cfg *Config)
		fields []string
	}{
		{
			name:   "valid",
			modify: func(cfg *Config) {},
		},
		{
			name:   "negative loop limit",
			modify: func(cfg *Config) { cfg.Evaluator.LoopIterationLimit = -1 },
			fields: []string{"evaluator.loop_iteration_limit"},
		},
		{
			name:   "loop limit too large",
			modify: func(cfg *Config) { cfg.Evaluator.LoopIterationLimit = MaxLoopIterationLimit + 1 },
			fields: []string{"evaluator.loop_iteration_limit"},
		},
		{
			name:   "unknown color",
			modify: func(cfg *Config) { cfg.Output.Color = "sometimes" },
			fields: []string{"output.color"},
		},
		{
			name: "several errors",
			modify: func(cfg *Config) {
				cfg.Output.Color = "rainbow"
				cfg.Output.TraceLevel = "loud"
			},
			fields: []string{"output.color", "output.trace_level"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := Validate(cfg)
			if len(tt.fields) == 0 {
				assert.NoError(t, err)
				return
			}

			var validationErr ValidationError
			require.ErrorAs(t, err, &validationErr)

			fields := make([]string, 0, len(validationErr.Errors))
			for _, fieldErr := range validationErr.Errors {
				fields = append(fields, fieldErr.Field)
			}
			assert.Equal(t, tt.fields, fields)
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	single := ValidationError{Errors: []FieldError{{Field: "output.color", Message: "bad"}}}
	assert.Equal(t, "output.color: bad", single.Error())

	multiple := ValidationError{Errors: []FieldError{
		{Field: "a", Message: "first"},
		{Field: "b", Message: "second"},
	}}
	assert.Equal(t, "2 errors:\n  - a: first\n  - b: second\n", multiple.Error())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("UEVAL_LOOP_ITERATION_LIMIT", "3")
	t.Setenv("UEVAL_TRACK_RETURNS", "false")
	t.Setenv("UEVAL_COLOR", "always")
	t.Setenv("UEVAL_TRACE", "true")
	t.Setenv("UEVAL_TRACE_LEVEL", "warn")

	cfg, err := LoadConfigWithEnvOverrides(writeConfig(t, "evaluator:\n  loop_iteration_limit: 20\n"))
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Evaluator.LoopIterationLimit)
	assert.False(t, cfg.Evaluator.TrackReturns)
	assert.Equal(t, ColorAlways, cfg.Output.Color)
	assert.True(t, cfg.Output.Trace)
	assert.Equal(t, zerolog.WarnLevel, cfg.TraceLevel())
}

func TestEnvOverridesWithoutFile(t *testing.T) {
	t.Setenv("UEVAL_TRACE", "not a bool")

	cfg, err := LoadConfigWithEnvOverrides("")
	require.NoError(t, err)
	assert.False(t, cfg.Output.Trace)
}

func TestInvalidEnvOverride(t *testing.T) {
	t.Setenv("UEVAL_COLOR", "purple")

	_, err := LoadConfigWithEnvOverrides("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output.color")
}
