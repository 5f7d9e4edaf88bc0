package values

import (
	"fmt"

	"github.com/smarthome-go/ueval/ueval/uast"
)

// VariableValue is the value bound to a variable at some point of the program.
// It is a `Dependency`: values computed from the binding remember it.
type VariableValue struct {
	variable     *uast.Variable
	value        Value
	dependencies DependencySet
	hash         uint64
}

// NewVariableValue binds `value` to `variable`.
// Int constants assigned to byte or short variables are narrowed to the declared width.
// Dependencies on other bindings of the same variable are dropped.
func NewVariableValue(variable *uast.Variable, value Value, dependencies DependencySet) *VariableValue {
	if variable == nil {
		panic("Cannot bind a value to a nil variable")
	}

	switch variable.Type.Kind {
	case uast.ByteTypeKind, uast.ShortTypeKind:
		constant, isConstant := value.Constant()
		intConstant, isInt := constant.(IntConstant)
		if isConstant && isInt && intConstant.typ == IntNumeric {
			typ, _ := NumericTypeOf(variable.Type)
			narrowed := NewIntConstant(intConstant.value, typ)
			return NewVariableValue(variable, coerceConstant(value, narrowed), dependencies)
		}
	}

	withoutSelf := dependencies.withoutVariable(variable)

	switch inner := value.(type) {
	case *VariableValue:
		if inner.variable == variable && inner.dependencies.Equal(withoutSelf) {
			return inner
		}
		value = inner.copy(inner.dependencies.withoutVariable(variable))
	case *DependentValue:
		value = inner.copy(inner.dependencies.withoutVariable(variable))
	}

	return &VariableValue{
		variable:     variable,
		value:        value,
		dependencies: withoutSelf,
		hash: combineHashes(
			hashStrings(VariableValueKind, variable.Name(), variable.Ident.Span().Filename),
			uint64(variable.Ident.Span().Start.Index),
			value.Hash(),
			withoutSelf.Hash(),
		),
	}
}

func (self *VariableValue) Variable() *uast.Variable    { return self.variable }
func (self *VariableValue) Wrapped() Value              { return self.value }
func (_ *VariableValue) Kind() ValueKind                { return VariableValueKind }
func (self *VariableValue) Dependencies() DependencySet { return self.dependencies }
func (self *VariableValue) Constant() (Constant, bool)  { return self.value.Constant() }
func (self *VariableValue) Hash() uint64                { return self.hash }
func (_ *VariableValue) isDependency()                  {}
func (self *VariableValue) String() string {
	inner := self.value.String()
	if !self.dependencies.IsEmpty() {
		inner = fmt.Sprintf("%s (depending on: %s)", inner, self.dependencies)
	}
	return fmt.Sprintf("(var %s = %s)", self.variable.Name(), inner)
}

func (self *VariableValue) Equal(other Value) bool {
	otherVariable, ok := other.(*VariableValue)
	if !ok {
		return false
	}
	if otherVariable == self {
		return true
	}
	return otherVariable.hash == self.hash &&
		otherVariable.variable == self.variable &&
		otherVariable.value.Equal(self.value) &&
		otherVariable.dependencies.Equal(self.dependencies)
}

func (self *VariableValue) copy(dependencies DependencySet) Value {
	if dependencies.Equal(self.dependencies) {
		return self
	}
	return NewVariableValue(self.variable, self.value, dependencies)
}

func (self *VariableValue) merge(other Value) Value {
	if other.Equal(self) || other.Equal(self.value) {
		return self
	}

	switch other := other.(type) {
	case *VariableValue:
		if other.variable != self.variable || !other.value.Equal(self.value) {
			return NewPhiValue(self, other)
		}
		return NewVariableValue(self.variable, self.value, self.dependencies.Union(other.dependencies))
	case *DependentValue:
		if !other.value.Equal(self.value) {
			return NewPhiValue(self, other)
		}
		return NewVariableValue(self.variable, self.value, self.dependencies.Union(other.dependencies))
	default:
		return NewPhiValue(self, other)
	}
}

// Two different bindings of a reference variable may or may not hold the same object.
func (self *VariableValue) identityEquals(other Value) Value {
	if self.Equal(other) || self.variable.Type.IsPrimitive() {
		return ValueEquals(self, other)
	}
	return Undetermined
}
