package values

// Merge joins two values reaching the same point on different control-flow paths.
// The result stands for "either of them". Merging is symmetric in content and `Merge(x, x)` is `x`.
// `Undetermined` absorbs everything, including bindings and dependencies.
func Merge(left Value, right Value) Value {
	if IsUndetermined(left) || IsUndetermined(right) {
		return Undetermined
	}

	switch receiver := left.(type) {
	case *VariableValue:
		return receiver.merge(right)
	case *DependentValue:
		return receiver.merge(right)
	}

	if left.Equal(right) {
		return left
	}

	switch other := right.(type) {
	case *VariableValue:
		return other.merge(left)
	case *DependentValue:
		return other.merge(left)
	}

	return NewPhiValue(left, right)
}
