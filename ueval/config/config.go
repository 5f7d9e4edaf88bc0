// Package config holds the settings of an analysis run.
// Settings are read from a YAML file, completed with defaults and validated before use.
package config

type Config struct {
	Evaluator EvaluatorConfig `yaml:"evaluator"`
	Output    OutputConfig    `yaml:"output"`
}

type EvaluatorConfig struct {
	// How often a loop body is walked before still changing bindings are widened to an unknown value.
	LoopIterationLimit int `yaml:"loop_iteration_limit"`
	// Whether the values returned by each method are collected.
	TrackReturns bool `yaml:"track_returns"`
}

type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

type OutputConfig struct {
	Color ColorMode `yaml:"color"`
	// Enables the evaluator trace on stderr.
	Trace bool `yaml:"trace"`
	// Minimum level of trace messages, parsed by zerolog.
	TraceLevel string `yaml:"trace_level"`
}
