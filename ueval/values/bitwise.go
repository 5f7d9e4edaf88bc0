package values

type bitwiseOperator uint8

const (
	andBitwiseOperator bitwiseOperator = iota
	orBitwiseOperator
	xorBitwiseOperator
)

// BitAnd is `&`. On booleans, it is the logical conjunction.
func BitAnd(left Value, right Value) Value {
	return bitwise(andBitwiseOperator, left, right)
}

// BitOr is `|`. On booleans, it is the logical disjunction.
func BitOr(left Value, right Value) Value {
	return bitwise(orBitwiseOperator, left, right)
}

// BitXor is `^`. On booleans, it is the logical exclusive or.
func BitXor(left Value, right Value) Value {
	return bitwise(xorBitwiseOperator, left, right)
}

func bitwise(operator bitwiseOperator, left Value, right Value) Value {
	if isWrapper(left) || isWrapper(right) {
		return withDependencies(bitwise(operator, Unwrap(left), Unwrap(right)), left, right)
	}

	_, leftIsBoolean := left.(BooleanConstant)
	_, rightIsBoolean := right.(BooleanConstant)
	if leftIsBoolean || rightIsBoolean {
		switch operator {
		case andBitwiseOperator:
			return And(left, right)
		case orBitwiseOperator:
			return Or(left, right)
		default:
			return Xor(left, right)
		}
	}

	leftType, leftIsIntegral := integralTypeOf(left)
	rightType, rightIsIntegral := integralTypeOf(right)
	if !leftIsIntegral || !rightIsIntegral {
		return Undetermined
	}

	if leftType.Merge(rightType) == LongNumeric {
		lhs, rhs := toInt64(left), toInt64(right)
		switch operator {
		case andBitwiseOperator:
			return Long(lhs & rhs)
		case orBitwiseOperator:
			return Long(lhs | rhs)
		default:
			return Long(lhs ^ rhs)
		}
	}

	lhs, rhs := toInt32(left), toInt32(right)
	switch operator {
	case andBitwiseOperator:
		return Int(lhs & rhs)
	case orBitwiseOperator:
		return Int(lhs | rhs)
	default:
		return Int(lhs ^ rhs)
	}
}

// Chars count as int-sized integrals.
func integralTypeOf(value Value) (NumericType, bool) {
	switch constant := value.(type) {
	case IntConstant:
		return constant.typ, true
	case CharConstant:
		return IntNumeric, true
	case LongConstant:
		return LongNumeric, true
	default:
		return 0, false
	}
}

//
// Shifts
//

type shiftOperator uint8

const (
	leftShiftOperator shiftOperator = iota
	rightShiftOperator
	unsignedRightShiftOperator
)

// Shl is `<<`. The result has the promoted type of the left operand, the distance is masked.
func Shl(left Value, right Value) Value {
	return shift(leftShiftOperator, left, right)
}

// Shr is the sign-extending `>>`.
func Shr(left Value, right Value) Value {
	return shift(rightShiftOperator, left, right)
}

// Ushr is the zero-extending `>>>`.
func Ushr(left Value, right Value) Value {
	return shift(unsignedRightShiftOperator, left, right)
}

func shift(operator shiftOperator, left Value, right Value) Value {
	if isWrapper(left) || isWrapper(right) {
		return withDependencies(shift(operator, Unwrap(left), Unwrap(right)), left, right)
	}

	leftType, leftIsIntegral := integralTypeOf(left)
	_, rightIsIntegral := integralTypeOf(right)
	if !leftIsIntegral || !rightIsIntegral {
		return Undetermined
	}
	distance := toInt64(right)

	if leftType == LongNumeric {
		value, n := toInt64(left), uint64(distance&63)
		switch operator {
		case leftShiftOperator:
			return Long(value << n)
		case rightShiftOperator:
			return Long(value >> n)
		default:
			return Long(int64(uint64(value) >> n))
		}
	}

	value, n := toInt32(left), uint32(distance&31)
	switch operator {
	case leftShiftOperator:
		return Int(value << n)
	case rightShiftOperator:
		return Int(value >> n)
	default:
		return Int(int32(uint32(value) >> n))
	}
}
