package values

import "fmt"

// DependentValue is a value which was derived under the bindings in its dependency set.
type DependentValue struct {
	value        Value
	dependencies DependencySet
	hash         uint64
}

// NewDependentValue returns `value` itself if there are no dependencies.
func NewDependentValue(value Value, dependencies DependencySet) Value {
	if dependencies.IsEmpty() {
		return value
	}
	return newDependentValue(value, dependencies)
}

func newDependentValue(value Value, dependencies DependencySet) *DependentValue {
	return &DependentValue{
		value:        value,
		dependencies: dependencies,
		hash:         combineHashes(hashTag(DependentValueKind), value.Hash(), dependencies.Hash()),
	}
}

func (self *DependentValue) Wrapped() Value              { return self.value }
func (_ *DependentValue) Kind() ValueKind                { return DependentValueKind }
func (self *DependentValue) Dependencies() DependencySet { return self.dependencies }
func (self *DependentValue) Constant() (Constant, bool)  { return self.value.Constant() }
func (self *DependentValue) Hash() uint64                { return self.hash }
func (self *DependentValue) Equal(other Value) bool {
	otherDependent, ok := other.(*DependentValue)
	if !ok {
		return false
	}
	if otherDependent == self {
		return true
	}
	return otherDependent.hash == self.hash &&
		otherDependent.value.Equal(self.value) &&
		otherDependent.dependencies.Equal(self.dependencies)
}

func (self *DependentValue) String() string {
	if self.dependencies.IsEmpty() {
		return self.value.String()
	}
	return fmt.Sprintf("%s (depending on: %s)", self.value, self.dependencies)
}

func (self *DependentValue) copy(dependencies DependencySet) Value {
	if dependencies.Equal(self.dependencies) {
		return self
	}
	return NewDependentValue(self.value, dependencies)
}

func (self *DependentValue) merge(other Value) Value {
	if other.Equal(self) || other.Equal(self.value) {
		return self
	}

	switch other := other.(type) {
	case *VariableValue:
		return other.merge(self)
	case *DependentValue:
		dependencies := self.dependencies.Union(other.dependencies)
		if self.value.Equal(other.value) {
			return NewDependentValue(self.value, dependencies)
		}
		return NewDependentValue(Merge(self.value, other.value), dependencies)
	default:
		return NewDependentValue(Merge(self.value, other), self.dependencies)
	}
}

//
// Unwrapping
//

// Unwrap strips every dependent or variable layer and returns the innermost value.
func Unwrap(value Value) Value {
	for {
		switch wrapper := value.(type) {
		case *DependentValue:
			value = wrapper.value
		case *VariableValue:
			value = wrapper.value
		default:
			return value
		}
	}
}

// Dependencies a value computed from `value` inherits: its own dependencies and, for a binding, the binding itself.
func inheritedDependencies(value Value) DependencySet {
	switch wrapper := value.(type) {
	case *DependentValue:
		return wrapper.dependencies
	case *VariableValue:
		return wrapper.dependencies.With(wrapper)
	default:
		return DependencySet{}
	}
}

func isWrapper(value Value) bool {
	switch value.(type) {
	case *DependentValue, *VariableValue:
		return true
	default:
		return false
	}
}

// Replaces the innermost constant of `value`, keeping every wrapper around it.
func coerceConstant(value Value, constant Constant) Value {
	switch wrapper := value.(type) {
	case *DependentValue:
		if current, ok := wrapper.Constant(); ok && current.Equal(constant) {
			return wrapper
		}
		return NewDependentValue(coerceConstant(wrapper.value, constant), wrapper.dependencies)
	case *VariableValue:
		if current, ok := wrapper.Constant(); ok && current.Equal(constant) {
			return wrapper
		}
		return NewVariableValue(wrapper.variable, coerceConstant(wrapper.value, constant), wrapper.dependencies)
	default:
		return constant
	}
}

// Applies an operation to the unwrapped operands and carries their dependencies over to a constant result.
func withDependencies(result Value, operands ...Value) Value {
	if _, isConstant := result.Constant(); !isConstant {
		return result
	}

	var dependencies DependencySet
	for _, operand := range operands {
		dependencies = dependencies.Union(inheritedDependencies(operand))
	}
	return NewDependentValue(result, dependencies)
}
