package values

//
// Ordering
//

// Greater compares numbers, chars and strings. A NaN operand always yields `False`.
func Greater(left Value, right Value) Value {
	if isWrapper(left) || isWrapper(right) {
		return withDependencies(Greater(Unwrap(left), Unwrap(right)), left, right)
	}

	if IsNaN(left) || IsNaN(right) {
		return False
	}

	switch receiver := left.(type) {
	case CharConstant:
		if other, isChar := right.(CharConstant); isChar {
			return Boolean(receiver.value > other.value)
		}
		return Undetermined
	case StringConstant:
		if other, isString := right.(StringConstant); isString {
			return Boolean(receiver.value > other.value)
		}
		return Undetermined
	}

	comparison, ok := compareNumbers(left, right)
	if !ok {
		return Undetermined
	}
	return Boolean(comparison > 0)
}

func Less(left Value, right Value) Value {
	return Greater(right, left)
}

func GreaterOrEquals(left Value, right Value) Value {
	return Or(Greater(left, right), ValueEquals(left, right))
}

func LessOrEquals(left Value, right Value) Value {
	return Or(Less(left, right), ValueEquals(left, right))
}

// Compares two numeric constants after promotion.
// Chars are not numbers here, they only take part in value equality.
func compareNumbers(left Value, right Value) (int, bool) {
	leftType, leftIsNumeric := numericTypeOf(left)
	rightType, rightIsNumeric := numericTypeOf(right)
	if !leftIsNumeric || !rightIsNumeric {
		return 0, false
	}

	switch typ := leftType.Merge(rightType); typ {
	case IntNumeric, LongNumeric:
		return compareOrdered(toInt64(left), toInt64(right)), true
	default:
		return compareOrdered(toFloat(left, typ), toFloat(right, typ)), true
	}
}

func compareOrdered[T int64 | float64](left T, right T) int {
	switch {
	case left < right:
		return -1
	case left > right:
		return 1
	default:
		return 0
	}
}

//
// Equality
//

// ValueEquals is the `==` of the analyzed language on values.
// Numbers and chars of different kinds are compared after promotion, so `3 == 3L` holds.
func ValueEquals(left Value, right Value) Value {
	if isWrapper(left) || isWrapper(right) {
		return withDependencies(ValueEquals(Unwrap(left), Unwrap(right)), left, right)
	}

	if IsNaN(left) || IsNaN(right) {
		return False
	}

	leftConstant, leftIsConstant := left.(Constant)
	rightConstant, rightIsConstant := right.(Constant)
	if !leftIsConstant || !rightIsConstant {
		return Undetermined
	}

	leftNumber, leftIsNumber := asNumber(leftConstant)
	rightNumber, rightIsNumber := asNumber(rightConstant)
	if leftIsNumber && rightIsNumber {
		comparison, _ := compareNumbers(leftNumber, rightNumber)
		return Boolean(comparison == 0)
	}

	return Boolean(leftConstant.Equal(rightConstant))
}

func ValueNotEquals(left Value, right Value) Value {
	return Not(ValueEquals(left, right))
}

// IdentityEquals is the reference comparison of the analyzed language.
// Two distinct bindings of a reference-typed variable compare as `Undetermined`.
func IdentityEquals(left Value, right Value) Value {
	if binding, isBinding := left.(*VariableValue); isBinding {
		return binding.identityEquals(right)
	}
	if binding, isBinding := right.(*VariableValue); isBinding {
		return binding.identityEquals(left)
	}
	return ValueEquals(left, right)
}

func IdentityNotEquals(left Value, right Value) Value {
	return Not(IdentityEquals(left, right))
}

// Chars take part in numeric equality as ints.
func asNumber(constant Constant) (Value, bool) {
	if char, isChar := constant.(CharConstant); isChar {
		return Int(int32(char.value)), true
	}
	_, isNumeric := numericTypeOf(constant)
	return constant, isNumeric
}

//
// Logic
//

func Not(value Value) Value {
	if isWrapper(value) {
		return withDependencies(Not(Unwrap(value)), value)
	}

	if boolean, isBoolean := value.(BooleanConstant); isBoolean {
		return Boolean(!boolean.value)
	}
	return Undetermined
}

// And is the short-circuit conjunction on values: a `false` operand decides the result on either side.
func And(left Value, right Value) Value {
	if isWrapper(left) || isWrapper(right) {
		return withDependencies(And(Unwrap(left), Unwrap(right)), left, right)
	}

	switch {
	case left.Equal(False):
		return False
	case left.Equal(True):
		if _, isBoolean := right.(BooleanConstant); isBoolean {
			return right
		}
		return Undetermined
	case right.Equal(False):
		return False
	default:
		return Undetermined
	}
}

// Or is the short-circuit disjunction on values: a `true` operand decides the result on either side.
func Or(left Value, right Value) Value {
	if isWrapper(left) || isWrapper(right) {
		return withDependencies(Or(Unwrap(left), Unwrap(right)), left, right)
	}

	switch {
	case left.Equal(True):
		return True
	case left.Equal(False):
		if _, isBoolean := right.(BooleanConstant); isBoolean {
			return right
		}
		return Undetermined
	case right.Equal(True):
		return True
	default:
		return Undetermined
	}
}

func Xor(left Value, right Value) Value {
	if isWrapper(left) || isWrapper(right) {
		return withDependencies(Xor(Unwrap(left), Unwrap(right)), left, right)
	}

	leftBoolean, leftIsBoolean := left.(BooleanConstant)
	rightBoolean, rightIsBoolean := right.(BooleanConstant)
	if !leftIsBoolean || !rightIsBoolean {
		return Undetermined
	}
	return Boolean(leftBoolean.value != rightBoolean.value)
}
