package evaluator

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/smarthome-go/ueval/ueval/errors"
	"github.com/smarthome-go/ueval/ueval/state"
	"github.com/smarthome-go/ueval/ueval/uast"
	"github.com/smarthome-go/ueval/ueval/values"
)

const DefaultLoopIterationLimit = 8

// Evaluator computes value abstractions of expressions without executing them.
type Evaluator interface {
	// Walks the method body and leaves the resulting bindings in `st`.
	Analyze(method *uast.Method, st state.State)
	// Returns the value of `expression` under `st`.
	// Assignments inside the expression update `st`.
	Evaluate(expression uast.Expression, st state.State) values.Value
}

type cacheEntry struct {
	value      values.Value
	generation uint
}

// TreeEvaluator walks the syntax tree directly.
// It is not safe for concurrent use; use one evaluator per goroutine.
type TreeEvaluator struct {
	logger             zerolog.Logger
	loopIterationLimit int
	trackReturns       bool

	cache         map[uast.Expression]cacheEntry
	generation    uint
	returns       map[*uast.Method]values.Value
	currentMethod *uast.Method
	failures      []errors.Error
	failed        map[uast.Expression]struct{}
}

type Option func(*TreeEvaluator)

func WithLogger(logger zerolog.Logger) Option {
	return func(self *TreeEvaluator) { self.logger = logger }
}

// WithLoopIterationLimit sets how often a loop body is walked before changing bindings are widened.
func WithLoopIterationLimit(limit int) Option {
	return func(self *TreeEvaluator) {
		if limit > 0 {
			self.loopIterationLimit = limit
		}
	}
}

func WithReturnTracking(enabled bool) Option {
	return func(self *TreeEvaluator) { self.trackReturns = enabled }
}

func NewTreeEvaluator(options ...Option) *TreeEvaluator {
	evaluator := &TreeEvaluator{
		logger:             zerolog.Nop(),
		loopIterationLimit: DefaultLoopIterationLimit,
		trackReturns:       true,
		cache:              make(map[uast.Expression]cacheEntry),
		returns:            make(map[*uast.Method]values.Value),
		failures:           make([]errors.Error, 0),
		failed:             make(map[uast.Expression]struct{}),
	}

	for _, option := range options {
		option(evaluator)
	}

	return evaluator
}

func (self *TreeEvaluator) Analyze(method *uast.Method, st state.State) {
	self.generation++
	self.currentMethod = method
	delete(self.returns, method)

	self.logger.Debug().Str("method", method.Name()).Msg("Analyzing method")

	if method.Body != nil {
		self.statement(method.Body, st)
	}

	if st.Reachable() {
		self.logger.Debug().Str("method", method.Name()).Str("state", st.String()).Msg("Finished method")
	} else {
		self.logger.Debug().Str("method", method.Name()).Msg("Finished method, end is unreachable")
	}

	self.currentMethod = nil
}

func (self *TreeEvaluator) Evaluate(expression uast.Expression, st state.State) values.Value {
	self.generation++
	return self.evaluate(expression, st)
}

// ValueOf returns the value computed for `expression` during the last analysis which visited it.
// If the expression was visited several times, for instance in a loop, this is the merge of all visits.
func (self *TreeEvaluator) ValueOf(expression uast.Expression) (values.Value, bool) {
	entry, found := self.cache[expression]
	return entry.value, found
}

// ReturnValue returns the merge of all values returned by the method.
func (self *TreeEvaluator) ReturnValue(method *uast.Method) (values.Value, bool) {
	value, found := self.returns[method]
	return value, found
}

// Failures returns the arithmetic failures encountered so far, at most one per expression.
func (self *TreeEvaluator) Failures() []errors.Error {
	return self.failures
}

//
// Evaluator helper functions
//

func (self *TreeEvaluator) record(expression uast.Expression, value values.Value) {
	entry, found := self.cache[expression]
	if found && entry.generation == self.generation {
		value = values.Merge(entry.value, value)
	}
	self.cache[expression] = cacheEntry{value: value, generation: self.generation}
}

func (self *TreeEvaluator) fail(expression uast.Expression, err error) {
	self.logger.Warn().
		Str("method", self.methodName()).
		Str("expr", expression.String()).
		Err(err).
		Msg("Arithmetic failure")

	if _, found := self.failed[expression]; found {
		return
	}
	self.failed[expression] = struct{}{}

	self.failures = append(self.failures, *errors.NewError(
		expression.Span(),
		fmt.Sprintf("Cannot evaluate `%s`: %s", expression, err),
		errors.ArithmeticError,
	))
}

func (self *TreeEvaluator) methodName() string {
	if self.currentMethod == nil {
		return ""
	}
	return self.currentMethod.Name()
}

// Converts a value assigned to a variable of type `typ`.
// Byte and short narrowing of int constants is left to `values.NewVariableValue`.
func convertForAssignment(value values.Value, typ uast.Type) values.Value {
	constant, isConstant := value.Constant()
	if !isConstant || !typ.IsPrimitive() || hasType(constant, typ) {
		return value
	}

	if typ.Kind == uast.ByteTypeKind || typ.Kind == uast.ShortTypeKind {
		if intConstant, isInt := constant.(values.IntConstant); isInt && intConstant.Type() == values.IntNumeric {
			return value
		}
	}

	return values.Cast(value, typ)
}

func hasType(constant values.Constant, typ uast.Type) bool {
	switch constant := constant.(type) {
	case values.IntConstant:
		expected, isNumeric := values.NumericTypeOf(typ)
		return isNumeric && constant.Type() == expected
	case values.LongConstant:
		return typ.Kind == uast.LongTypeKind
	case values.FloatConstant:
		expected, isNumeric := values.NumericTypeOf(typ)
		return isNumeric && constant.Type() == expected
	case values.NaNConstant:
		expected, isNumeric := values.NumericTypeOf(typ)
		return isNumeric && constant.Type() == expected
	case values.CharConstant:
		return typ.Kind == uast.CharTypeKind
	case values.BooleanConstant:
		return typ.Kind == uast.BooleanTypeKind
	default:
		return false
	}
}
