package evaluator

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smarthome-go/ueval/ueval/errors"
	"github.com/smarthome-go/ueval/ueval/state"
	"github.com/smarthome-go/ueval/ueval/uast"
	"github.com/smarthome-go/ueval/ueval/values"
)

//
// Tree construction helpers
//

func newVariable(name string, kind uast.TypeKind) *uast.Variable {
	return uast.NewVariable(uast.NewSpannedIdent(name, errors.Span{}), uast.NewPrimitiveType(kind), uast.LocalVariableOrigin)
}

func num(value int64) uast.Expression {
	return &uast.IntLiteralExpression{Value: value}
}

func boolean(value bool) uast.Expression {
	return &uast.BoolLiteralExpression{Value: value}
}

func ref(variable *uast.Variable) *uast.ReferenceExpression {
	return &uast.ReferenceExpression{Ident: variable.Ident, Variable: variable}
}

func infix(lhs uast.Expression, operator uast.InfixOperator, rhs uast.Expression) uast.Expression {
	return &uast.InfixExpression{Lhs: lhs, Operator: operator, Rhs: rhs}
}

func cast(kind uast.TypeKind, operand uast.Expression) uast.Expression {
	return &uast.CastExpression{Type: uast.NewPrimitiveType(kind), Operand: operand}
}

func assign(variable *uast.Variable, operator uast.AssignOperator, rhs uast.Expression) uast.Expression {
	return &uast.AssignExpression{Target: ref(variable), Operator: operator, Rhs: rhs}
}

func decl(variable *uast.Variable, initializer uast.Expression) uast.Statement {
	if initializer == nil {
		return &uast.DeclarationStatement{Variable: variable}
	}
	return &uast.DeclarationStatement{Variable: variable, Initializer: initializer}
}

func stmt(expression uast.Expression) uast.Statement {
	return &uast.ExpressionStatement{Expression: expression}
}

func block(statements ...uast.Statement) *uast.Block {
	return &uast.Block{Statements: statements}
}

func method(body *uast.Block) *uast.Method {
	return &uast.Method{
		Ident:      uast.NewSpannedIdent("test", errors.Span{}),
		ReturnType: uast.NewPrimitiveType(uast.IntTypeKind),
		Body:       body,
	}
}

func lookup(t *testing.T, st state.State, variable *uast.Variable) values.Value {
	t.Helper()
	value, found := st.Lookup(variable)
	require.True(t, found, "variable `%s` is not bound", variable.Name())
	return value
}

func assertConstant(t *testing.T, expected values.Value, actual values.Value) {
	t.Helper()
	constant, ok := actual.Constant()
	require.True(t, ok, "%s is not constant", actual)
	assert.True(t, expected.Equal(constant), "expected %s, got %s", expected, constant)
}

// Returns the unwrapped members of a phi.
func phiMembers(t *testing.T, value values.Value) values.Value {
	t.Helper()
	phi, ok := value.(*values.PhiValue)
	require.True(t, ok, "%s is not a phi", value)

	members := make([]values.Value, 0, phi.Len())
	for _, member := range phi.Values() {
		members = append(members, values.Unwrap(member))
	}
	return values.NewPhiValue(members...)
}

//
// Expressions
//

func TestEvaluateConstants(t *testing.T) {
	evaluator := NewTreeEvaluator()
	st := state.NewMapState()

	assertConstant(t, values.Int(7), evaluator.Evaluate(infix(num(3), uast.PlusInfixOperator, num(4)), st))
	assertConstant(t, values.Long(3), evaluator.Evaluate(&uast.IntLiteralExpression{Value: 3, IsLong: true}, st))
	assertConstant(t, values.String("x5"), evaluator.Evaluate(
		infix(&uast.StringLiteralExpression{Value: "x"}, uast.PlusInfixOperator, num(5)), st,
	))
	assert.True(t, values.IsUndetermined(evaluator.Evaluate(
		infix(num(5), uast.PlusInfixOperator, &uast.StringLiteralExpression{Value: "x"}), st,
	)))
	assertConstant(t, values.NewFloatConstant(0.5, values.FloatNumeric), evaluator.Evaluate(
		&uast.FloatLiteralExpression{Value: 0.5, IsFloat: true}, st,
	))
}

func TestEvaluateByteArithmetic(t *testing.T) {
	evaluator := NewTreeEvaluator()
	st := state.NewMapState()
	b := newVariable("b", uast.ByteTypeKind)

	sum := infix(cast(uast.ByteTypeKind, num(10)), uast.PlusInfixOperator, cast(uast.ByteTypeKind, num(20)))
	assertConstant(t, values.Int(30), evaluator.Evaluate(sum, st))

	evaluator.Analyze(method(block(decl(b, sum))), st)
	bound := lookup(t, st, b)
	assert.Equal(t, values.VariableValueKind, bound.Kind())
	assertConstant(t, values.NewIntConstant(30, values.ByteNumeric), bound)
}

func TestUnboundReferenceIsUndetermined(t *testing.T) {
	x := newVariable("x", uast.IntTypeKind)
	value := NewTreeEvaluator().Evaluate(infix(ref(x), uast.PlusInfixOperator, num(1)), state.NewMapState())
	assert.True(t, values.IsUndetermined(value))
}

func TestUnresolvedReferencePanics(t *testing.T) {
	node := &uast.ReferenceExpression{Ident: uast.NewSpannedIdent("x", errors.Span{})}
	assert.Panics(t, func() { NewTreeEvaluator().Evaluate(node, state.NewMapState()) })
}

func TestDivisionByZeroIsReported(t *testing.T) {
	evaluator := NewTreeEvaluator()
	division := infix(num(1), uast.DivideInfixOperator, num(0))

	value := evaluator.Evaluate(division, state.NewMapState())
	assert.True(t, values.IsUndetermined(value))

	require.Len(t, evaluator.Failures(), 1)
	assert.Equal(t, errors.ArithmeticError, evaluator.Failures()[0].Kind)

	// The same expression is reported once.
	evaluator.Evaluate(division, state.NewMapState())
	assert.Len(t, evaluator.Failures(), 1)
}

func TestDependenciesOfReads(t *testing.T) {
	evaluator := NewTreeEvaluator()
	st := state.NewMapState()
	x := newVariable("x", uast.IntTypeKind)

	evaluator.Analyze(method(block(decl(x, num(2)))), st)
	binding := lookup(t, st, x)

	value := evaluator.Evaluate(infix(ref(x), uast.MultiplyInfixOperator, num(3)), st)
	assertConstant(t, values.Int(6), value)
	assert.True(t, value.Dependencies().Contains(binding.(*values.VariableValue)))
}

//
// Assignments
//

func TestAssignments(t *testing.T) {
	evaluator := NewTreeEvaluator()
	st := state.NewMapState()
	b := newVariable("b", uast.ByteTypeKind)
	i := newVariable("i", uast.IntTypeKind)
	j := newVariable("j", uast.IntTypeKind)
	k := newVariable("k", uast.IntTypeKind)
	l := newVariable("l", uast.LongTypeKind)
	d := newVariable("d", uast.DoubleTypeKind)

	evaluator.Analyze(method(block(
		decl(b, num(120)),
		stmt(assign(b, uast.PlusAssignOperatorKind, num(10))),
		decl(i, num(1)),
		decl(j, &uast.PostfixExpression{Operand: ref(i), Operator: uast.IncrementPostfixOperator}),
		decl(k, &uast.PrefixExpression{Operator: uast.DecrementPrefixOperator, Operand: ref(j)}),
		decl(l, num(5)),
		decl(d, num(1)),
		stmt(assign(d, uast.DivideAssignOperatorKind, num(2))),
	)), st)

	assertConstant(t, values.NewIntConstant(-126, values.ByteNumeric), lookup(t, st, b))
	assertConstant(t, values.Int(2), lookup(t, st, i))
	assertConstant(t, values.Int(0), lookup(t, st, j))
	assertConstant(t, values.Int(0), lookup(t, st, k))
	assertConstant(t, values.Long(5), lookup(t, st, l))
	assertConstant(t, values.Double(0.5), lookup(t, st, d))
}

//
// Control flow
//

func TestBranchesAreMerged(t *testing.T) {
	var logs bytes.Buffer
	evaluator := NewTreeEvaluator(WithLogger(zerolog.New(&logs).Level(zerolog.DebugLevel)))
	st := state.NewMapState()
	p := newVariable("p", uast.BooleanTypeKind)
	x := newVariable("x", uast.IntTypeKind)

	evaluator.Analyze(method(block(
		decl(x, nil),
		&uast.IfStatement{
			Condition: ref(p),
			Then:      stmt(assign(x, uast.StdAssignOperatorKind, num(5))),
			Else:      stmt(assign(x, uast.StdAssignOperatorKind, num(7))),
		},
	)), st)

	assert.True(t, values.NewPhiValue(values.Int(5), values.Int(7)).Equal(phiMembers(t, lookup(t, st, x))))
	assert.Contains(t, logs.String(), "Merging binding")
}

func TestConstantConditionsArePruned(t *testing.T) {
	evaluator := NewTreeEvaluator()
	st := state.NewMapState()
	x := newVariable("x", uast.IntTypeKind)
	pruned := assign(x, uast.StdAssignOperatorKind, num(2))

	evaluator.Analyze(method(block(
		decl(x, num(0)),
		&uast.IfStatement{
			Condition: infix(num(1), uast.LessThanInfixOperator, num(2)),
			Then:      stmt(assign(x, uast.StdAssignOperatorKind, num(1))),
			Else:      stmt(pruned),
		},
	)), st)

	assertConstant(t, values.Int(1), lookup(t, st, x))
	_, visited := evaluator.ValueOf(pruned)
	assert.False(t, visited)
}

func TestReturnValues(t *testing.T) {
	evaluator := NewTreeEvaluator()
	st := state.NewMapState()
	p := newVariable("p", uast.BooleanTypeKind)
	x := newVariable("x", uast.IntTypeKind)
	unreachable := assign(x, uast.StdAssignOperatorKind, num(3))

	m := method(block(
		decl(x, num(1)),
		&uast.IfStatement{Condition: ref(p), Then: &uast.ReturnStatement{Value: ref(x)}},
		&uast.ReturnStatement{Value: num(2)},
		stmt(unreachable),
	))
	evaluator.Analyze(m, st)

	returned, found := evaluator.ReturnValue(m)
	require.True(t, found)
	assert.True(t, values.NewPhiValue(values.Int(1), values.Int(2)).Equal(phiMembers(t, returned)))
	assert.False(t, st.Reachable())

	_, visited := evaluator.ValueOf(unreachable)
	assert.False(t, visited)

	_, found = NewTreeEvaluator(WithReturnTracking(false)).ReturnValue(m)
	assert.False(t, found)
}

func TestLoopsTerminate(t *testing.T) {
	evaluator := NewTreeEvaluator(WithLoopIterationLimit(3))
	st := state.NewMapState()
	i := newVariable("i", uast.IntTypeKind)
	condition := infix(ref(i), uast.LessThanInfixOperator, num(10))

	evaluator.Analyze(method(block(
		decl(i, num(0)),
		&uast.WhileStatement{
			Condition: condition,
			Body:      block(stmt(assign(i, uast.StdAssignOperatorKind, infix(ref(i), uast.PlusInfixOperator, num(1))))),
		},
	)), st)

	assert.True(t, st.Reachable())
	assert.True(t, values.IsUndetermined(values.Unwrap(lookup(t, st, i))))

	// The condition was true on the first visit and unknown afterwards.
	value, visited := evaluator.ValueOf(condition)
	require.True(t, visited)
	assert.Equal(t, values.Unknown, values.ToTristate(value))
}

func TestLoopWithConstantCondition(t *testing.T) {
	evaluator := NewTreeEvaluator()
	x := newVariable("x", uast.IntTypeKind)

	never := state.NewMapState()
	evaluator.Analyze(method(block(
		decl(x, num(0)),
		&uast.WhileStatement{Condition: boolean(false), Body: stmt(assign(x, uast.StdAssignOperatorKind, num(1)))},
	)), never)
	assertConstant(t, values.Int(0), lookup(t, never, x))

	forever := state.NewMapState()
	m := method(block(
		&uast.WhileStatement{Condition: boolean(true), Body: &uast.ReturnStatement{Value: num(1)}},
	))
	evaluator.Analyze(m, forever)
	assert.False(t, forever.Reachable())

	returned, _ := evaluator.ReturnValue(m)
	assertConstant(t, values.Int(1), returned)
}

func TestShortCircuit(t *testing.T) {
	evaluator := NewTreeEvaluator()
	p := newVariable("p", uast.BooleanTypeKind)
	x := newVariable("x", uast.IntTypeKind)
	assignment := func() uast.Expression {
		return infix(assign(x, uast.StdAssignOperatorKind, num(5)), uast.GreaterThanInfixOperator, num(0))
	}

	skipped := assignment()
	st := state.NewMapState()
	evaluator.Analyze(method(block(
		decl(x, num(0)),
		stmt(infix(boolean(false), uast.LogicalAndInfixOperator, skipped)),
	)), st)
	assertConstant(t, values.Int(0), lookup(t, st, x))
	_, visited := evaluator.ValueOf(skipped)
	assert.False(t, visited)

	st = state.NewMapState()
	evaluator.Analyze(method(block(
		decl(x, num(0)),
		stmt(infix(ref(p), uast.LogicalOrInfixOperator, assignment())),
	)), st)
	assert.True(t, values.NewPhiValue(values.Int(0), values.Int(5)).Equal(phiMembers(t, lookup(t, st, x))))

	value := evaluator.Evaluate(infix(ref(p), uast.LogicalOrInfixOperator, boolean(true)), state.NewMapState())
	assertConstant(t, values.True, value)
}

func TestConditionalExpression(t *testing.T) {
	evaluator := NewTreeEvaluator()
	p := newVariable("p", uast.BooleanTypeKind)

	value := evaluator.Evaluate(&uast.ConditionalExpression{Condition: ref(p), Then: num(1), Else: num(2)}, state.NewMapState())
	assert.True(t, values.NewPhiValue(values.Int(1), values.Int(2)).Equal(value))

	value = evaluator.Evaluate(&uast.ConditionalExpression{Condition: boolean(true), Then: num(1), Else: num(2)}, state.NewMapState())
	assertConstant(t, values.Int(1), value)
}
