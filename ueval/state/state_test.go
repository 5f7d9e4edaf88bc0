package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smarthome-go/ueval/ueval/errors"
	"github.com/smarthome-go/ueval/ueval/uast"
	"github.com/smarthome-go/ueval/ueval/values"
)

func intVariable(name string, index uint) *uast.Variable {
	return uast.NewVariable(
		uast.NewSpannedIdent(name, errors.Span{Start: errors.Location{Index: index}}),
		uast.NewPrimitiveType(uast.IntTypeKind),
		uast.LocalVariableOrigin,
	)
}

func bind(st State, variable *uast.Variable, value values.Value) {
	st.Bind(variable, values.NewVariableValue(variable, value, values.DependencySet{}))
}

func TestForkIsIndependent(t *testing.T) {
	x := intVariable("x", 0)
	st := NewMapState()
	bind(st, x, values.Int(1))

	fork := st.Fork()
	bind(fork, x, values.Int(2))

	value, found := st.Lookup(x)
	require.True(t, found)
	constant, _ := value.Constant()
	assert.True(t, values.Int(1).Equal(constant))
}

func TestJoinMergesBranches(t *testing.T) {
	x := intVariable("x", 0)
	y := intVariable("y", 1)

	st := NewMapState()
	bind(st, y, values.Int(0))

	thenBranch := st.Fork()
	bind(thenBranch, x, values.Int(5))
	bind(st, x, values.Int(7))

	st.Join(thenBranch)

	value, found := st.Lookup(x)
	require.True(t, found)
	assert.Equal(t, values.PhiValueKind, value.Kind())

	// Unchanged bindings stay as they are.
	value, _ = st.Lookup(y)
	assert.Equal(t, values.VariableValueKind, value.Kind())
}

func TestJoinOneSidedBindingIsUndetermined(t *testing.T) {
	x := intVariable("x", 0)
	y := intVariable("y", 1)
	st := NewMapState()
	bind(st, y, values.Int(4))

	branch := st.Fork()
	bind(branch, x, values.Int(1))
	st.Join(branch)

	value, found := st.Lookup(x)
	require.True(t, found)
	assert.True(t, values.IsUndetermined(value), "expected undetermined, got %s", value)

	// Bindings present on every path are merged as usual.
	value, _ = st.Lookup(y)
	constant, ok := value.Constant()
	require.True(t, ok)
	assert.True(t, values.Int(4).Equal(constant))

	// Bound on this path only.
	z := intVariable("z", 2)
	other := st.Fork()
	bind(st, z, values.Int(9))
	st.Join(other)

	value, found = st.Lookup(z)
	require.True(t, found)
	assert.True(t, values.IsUndetermined(value))
}

func TestJoinIgnoresUnreachableStates(t *testing.T) {
	x := intVariable("x", 0)
	st := NewMapState()
	bind(st, x, values.Int(1))

	returned := st.Fork()
	bind(returned, x, values.Int(2))
	returned.MarkUnreachable()

	st.Join(returned)
	value, _ := st.Lookup(x)
	constant, _ := value.Constant()
	assert.True(t, values.Int(1).Equal(constant))
	assert.True(t, st.Reachable())

	// If this path is finished as well, the other one takes over.
	st.MarkUnreachable()
	other := NewMapState()
	bind(other, x, values.Int(3))
	st.Join(other)
	assert.True(t, st.Reachable())
	value, _ = st.Lookup(x)
	constant, _ = value.Constant()
	assert.True(t, values.Int(3).Equal(constant))

	// Nothing reachable at all.
	st.MarkUnreachable()
	returned.MarkUnreachable()
	st.Join(returned)
	assert.False(t, st.Reachable())
}

func TestEqualAndString(t *testing.T) {
	b := intVariable("b", 1)
	a := intVariable("a", 0)

	first := NewMapState()
	bind(first, b, values.Int(2))
	bind(first, a, values.Int(1))

	second := first.Fork()
	assert.True(t, first.Equal(second))

	bind(second, a, values.Int(3))
	assert.False(t, first.Equal(second))

	assert.Equal(t, []*uast.Variable{a, b}, first.Variables())
	assert.Equal(t, "a = (var a = 1)\nb = (var b = 2)", first.String())

	first.MarkUnreachable()
	assert.Equal(t, "<unreachable>", first.String())
}
