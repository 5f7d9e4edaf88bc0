package optimizer

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/smarthome-go/ueval/ueval/diagnostic"
	"github.com/smarthome-go/ueval/ueval/errors"
	"github.com/smarthome-go/ueval/ueval/uast"
	"github.com/smarthome-go/ueval/ueval/values"
)

// Results is what the optimizer needs from an evaluator which has already analyzed the file.
type Results interface {
	ValueOf(expression uast.Expression) (values.Value, bool)
	Failures() []errors.Error
}

//
// Optimizer helper functions.
//

func (o *Optimizer) error(message string, notes []string, span errors.Span) {
	o.diagnostics = append(o.diagnostics, diagnostic.Diagnostic{
		Level:   diagnostic.DiagnosticLevelError,
		Message: message,
		Notes:   notes,
		Span:    span,
	})
}

func (o *Optimizer) warn(message string, notes []string, span errors.Span) {
	o.diagnostics = append(o.diagnostics, diagnostic.Diagnostic{
		Level:   diagnostic.DiagnosticLevelWarning,
		Message: message,
		Notes:   notes,
		Span:    span,
	})
}

func (o *Optimizer) hint(message string, notes []string, span errors.Span) {
	o.diagnostics = append(o.diagnostics, diagnostic.Diagnostic{
		Level:   diagnostic.DiagnosticLevelHint,
		Message: message,
		Notes:   notes,
		Span:    span,
	})
}

//
// END helper.
//

type Optimizer struct {
	diagnostics []diagnostic.Diagnostic
	results     Results
}

func NewOptimizer(results Results) *Optimizer {
	return &Optimizer{
		diagnostics: []diagnostic.Diagnostic{},
		results:     results,
	}
}

// Optimize reports what the evaluator found out about the file.
// Diagnostics are ordered by their position in the source.
func (o *Optimizer) Optimize(file *uast.File) []diagnostic.Diagnostic {
	for _, method := range file.Methods {
		o.Method(method)
	}
	o.arithmeticFailures()

	slices.SortStableFunc(o.diagnostics, func(a, b diagnostic.Diagnostic) int {
		return int(a.Span.Start.Index) - int(b.Span.Start.Index)
	})

	return o.diagnostics
}

func (o *Optimizer) Method(method *uast.Method) {
	if method.Body != nil {
		o.block(method.Body)
	}
}

func (o *Optimizer) arithmeticFailures() {
	for _, failure := range o.results.Failures() {
		if failure.Kind != errors.ArithmeticError {
			continue
		}
		o.error("Division by zero", []string{failure.Message}, failure.Span)
	}
}

//
// Statements
//

// Returns whether the block always diverges.
func (o *Optimizer) block(node *uast.Block) bool {
	var unreachableSpan *errors.Span

	for _, statement := range node.Statements {
		// If a previous statement diverges, warn that this statement is unreachable.
		if unreachableSpan != nil {
			o.warn(
				"Unreachable statement",
				nil,
				statement.Span(),
			)
			o.hint(
				"Any code following this statement is unreachable",
				nil,
				*unreachableSpan,
			)
			break
		}

		if o.statement(statement) {
			span := statement.Span()
			unreachableSpan = &span
		}
	}

	return unreachableSpan != nil
}

// Returns whether the statement always diverges.
func (o *Optimizer) statement(node uast.Statement) bool {
	switch node := node.(type) {
	case *uast.Block:
		return o.block(node)
	case *uast.DeclarationStatement:
		if node.Initializer != nil {
			o.expression(node.Initializer)
		}
		return false
	case *uast.ExpressionStatement:
		o.expression(node.Expression)
		return false
	case *uast.IfStatement:
		return o.ifStatement(node)
	case *uast.WhileStatement:
		truth := o.condition(node.Condition)
		if truth != values.TristateFalse {
			o.statement(node.Body)
		}
		return false
	case *uast.ReturnStatement:
		if node.Value != nil {
			o.expression(node.Value)
		}
		return true
	default:
		panic("A new statement was added without updating this code")
	}
}

func (o *Optimizer) ifStatement(node *uast.IfStatement) bool {
	truth := o.condition(node.Condition)

	thenDiverges := false
	if truth != values.TristateFalse {
		thenDiverges = o.statement(node.Then)
	}

	elseDiverges := false
	if node.Else != nil && truth != values.TristateTrue {
		elseDiverges = o.statement(node.Else)
	}

	switch truth {
	case values.TristateTrue:
		return thenDiverges
	case values.TristateFalse:
		return elseDiverges
	default:
		return thenDiverges && elseDiverges
	}
}

// Literal conditions such as `while (true)` are intentional and not reported.
func (o *Optimizer) condition(node uast.Expression) values.Tristate {
	value, found := o.results.ValueOf(node)
	if !found {
		return values.Unknown
	}

	truth := values.ToTristate(value)
	if truth.IsKnown() && !node.Kind().IsLiteral() {
		o.warn(
			fmt.Sprintf("Condition is always %s", truth),
			[]string{fmt.Sprintf("`%s` evaluates to `%s`", node, value)},
			node.Span(),
		)
	} else {
		o.expression(node)
	}

	return truth
}

//
// Expressions
//

func (o *Optimizer) expression(node uast.Expression) {
	if o.foldable(node) {
		value, _ := o.results.ValueOf(node)
		constant, _ := value.Constant()
		o.hint(
			fmt.Sprintf("Expression can be folded to `%s`", constant),
			nil,
			node.Span(),
		)
		return
	}

	switch node := node.(type) {
	case *uast.ConditionalExpression:
		truth := o.condition(node.Condition)
		if truth != values.TristateFalse {
			o.expression(node.Then)
		}
		if truth != values.TristateTrue {
			o.expression(node.Else)
		}
	default:
		for _, child := range uast.Children(node) {
			o.expression(child)
		}
	}
}

// Whether the expression computes a constant which is not already spelled out as a literal.
// Expressions with side effects cannot be replaced by their value.
func (o *Optimizer) foldable(node uast.Expression) bool {
	if isTrivial(node) || hasSideEffects(node) {
		return false
	}

	value, found := o.results.ValueOf(node)
	if !found {
		return false
	}

	_, isConstant := value.Constant()
	return isConstant
}

func isTrivial(node uast.Expression) bool {
	switch node := node.(type) {
	case *uast.ReferenceExpression:
		return true
	case *uast.GroupedExpression:
		return isTrivial(node.Inner)
	case *uast.PrefixExpression:
		return (node.Operator == uast.MinusPrefixOperator || node.Operator == uast.PlusPrefixOperator) &&
			node.Operand.Kind().IsLiteral()
	case *uast.CastExpression:
		return node.Operand.Kind().IsLiteral()
	default:
		return node.Kind().IsLiteral()
	}
}

func hasSideEffects(node uast.Expression) bool {
	sideEffects := false

	uast.InspectExpression(node, func(expression uast.Expression) bool {
		switch expression := expression.(type) {
		case *uast.AssignExpression, *uast.PostfixExpression, *uast.CallExpression:
			sideEffects = true
		case *uast.PrefixExpression:
			if expression.Operator == uast.IncrementPrefixOperator || expression.Operator == uast.DecrementPrefixOperator {
				sideEffects = true
			}
		}
		return !sideEffects
	})

	return sideEffects
}
