// Package ueval ties the front end, the evaluator and the optimizer together.
package ueval

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/smarthome-go/ueval/ueval/config"
	"github.com/smarthome-go/ueval/ueval/diagnostic"
	"github.com/smarthome-go/ueval/ueval/errors"
	"github.com/smarthome-go/ueval/ueval/evaluator"
	"github.com/smarthome-go/ueval/ueval/optimizer"
	"github.com/smarthome-go/ueval/ueval/parser"
	"github.com/smarthome-go/ueval/ueval/state"
	"github.com/smarthome-go/ueval/ueval/uast"
	"github.com/smarthome-go/ueval/ueval/values"
)

type InputProgram struct {
	ProgramText string
	Filename    string
}

// MethodResult holds the outcome of analyzing one method.
type MethodResult struct {
	Method *uast.Method
	// The bindings when the method body was left.
	// If every path returned, the state is unreachable but still holds the last bindings.
	State state.State
	// Nil if the method never returns a value or return tracking is disabled.
	ReturnValue values.Value
	// Set if the evaluator gave up on this method.
	Failed bool
}

type Result struct {
	File    *uast.File
	Methods []MethodResult

	evaluator *evaluator.TreeEvaluator
}

// ValueOf returns the value the evaluator computed for `expression`.
func (self Result) ValueOf(expression uast.Expression) (values.Value, bool) {
	if self.evaluator == nil {
		return nil, false
	}
	return self.evaluator.ValueOf(expression)
}

func (self Result) Method(name string) (MethodResult, bool) {
	for _, result := range self.Methods {
		if result.Method.Name() == name {
			return result, true
		}
	}
	return MethodResult{}, false
}

// Analyze parses the program and evaluates every method in it.
// If the program contains syntax or reference errors, nothing is evaluated and the errors are returned.
// Otherwise, methods the evaluator gave up on are reported first, followed by the optimizer diagnostics.
// A nil `cfg` selects the default configuration.
func Analyze(
	program InputProgram,
	cfg *config.Config,
	logger zerolog.Logger,
) (Result, []diagnostic.Diagnostic, []errors.Error) {
	file, softErrors, hardError := parser.Parse(program.ProgramText, program.Filename)
	if hardError != nil {
		return Result{}, nil, append(softErrors, *hardError)
	}
	if len(softErrors) > 0 {
		return Result{File: file}, nil, softErrors
	}

	result, diagnostics := analyzeFile(file, cfg, logger)
	return result, diagnostics, nil
}

func analyzeFile(file *uast.File, cfg *config.Config, logger zerolog.Logger) (Result, []diagnostic.Diagnostic) {
	if cfg == nil {
		cfg = config.Default()
	}

	eval := evaluator.NewTreeEvaluator(
		evaluator.WithLogger(logger),
		evaluator.WithLoopIterationLimit(cfg.Evaluator.LoopIterationLimit),
		evaluator.WithReturnTracking(cfg.Evaluator.TrackReturns),
	)

	result := Result{
		File:      file,
		Methods:   make([]MethodResult, 0, len(file.Methods)),
		evaluator: eval,
	}
	internal := make([]diagnostic.Diagnostic, 0)

	for _, method := range file.Methods {
		methodResult, err := analyzeMethod(eval, method)
		if err != nil {
			logger.Error().Str("method", method.Name()).Err(err).Msg("Evaluator gave up")
			internal = append(internal, diagnostic.Diagnostic{
				Level:   diagnostic.DiagnosticLevelError,
				Message: "internal evaluator error",
				Notes:   []string{err.Error()},
				Span:    method.Range,
			})
		}
		result.Methods = append(result.Methods, methodResult)
	}

	diagnostics := append(internal, optimizer.NewOptimizer(eval).Optimize(file)...)
	return result, diagnostics
}

func analyzeMethod(eval *evaluator.TreeEvaluator, method *uast.Method) (result MethodResult, err error) {
	st := state.NewMapState()
	result = MethodResult{Method: method, State: st}

	defer func() {
		if recovered := recover(); recovered != nil {
			result.Failed = true
			err = fmt.Errorf("analysis of method `%s` failed: %v", method.Name(), recovered)
		}
	}()

	eval.Analyze(method, st)

	if returned, found := eval.ReturnValue(method); found {
		result.ReturnValue = returned
	}

	return result, nil
}
