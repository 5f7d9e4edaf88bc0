package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Loops are never walked more often than this.
const MaxLoopIterationLimit = 1024

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "evaluator.loop_iteration_limit").
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects every field error of a configuration.
type ValidationError struct {
	Errors []FieldError
}

func (e ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate returns a ValidationError listing every invalid setting, or nil.
func Validate(cfg *Config) error {
	var errs []FieldError

	if limit := cfg.Evaluator.LoopIterationLimit; limit < 1 || limit > MaxLoopIterationLimit {
		errs = append(errs, FieldError{
			Field:   "evaluator.loop_iteration_limit",
			Message: fmt.Sprintf("must be between 1 and %d, got %d", MaxLoopIterationLimit, limit),
		})
	}

	switch cfg.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		errs = append(errs, FieldError{
			Field:   "output.color",
			Message: fmt.Sprintf("must be one of auto, always or never, got %q", cfg.Output.Color),
		})
	}

	if _, err := zerolog.ParseLevel(cfg.Output.TraceLevel); err != nil || cfg.Output.TraceLevel == "" {
		errs = append(errs, FieldError{
			Field:   "output.trace_level",
			Message: fmt.Sprintf("unknown level %q", cfg.Output.TraceLevel),
		})
	}

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

// TraceLevel returns the parsed trace level, Validate guarantees that it parses.
func (self *Config) TraceLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(self.Output.TraceLevel)
	if err != nil {
		return zerolog.DebugLevel
	}
	return level
}
