package config

import "github.com/smarthome-go/ueval/ueval/evaluator"

const (
	DefaultLoopIterationLimit = evaluator.DefaultLoopIterationLimit
	DefaultTrackReturns       = true
	DefaultColor              = ColorAuto
	DefaultTraceLevel         = "debug"
)

// Default returns a configuration with every setting at its default.
func Default() *Config {
	cfg := &Config{
		Evaluator: EvaluatorConfig{
			TrackReturns: DefaultTrackReturns,
		},
	}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills in every setting which was left empty.
// Booleans cannot be told apart from an explicit `false` and are left untouched.
func ApplyDefaults(cfg *Config) {
	if cfg.Evaluator.LoopIterationLimit == 0 {
		cfg.Evaluator.LoopIterationLimit = DefaultLoopIterationLimit
	}
	if cfg.Output.Color == "" {
		cfg.Output.Color = DefaultColor
	}
	if cfg.Output.TraceLevel == "" {
		cfg.Output.TraceLevel = DefaultTraceLevel
	}
}
