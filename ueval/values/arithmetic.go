package values

import (
	"errors"
	"math"
)

// ErrDivisionByZero is returned when an integral value is divided by the constant zero.
// The accompanying value is always `Undetermined`.
var ErrDivisionByZero = errors.New("division by zero")

type arithmeticOperator uint8

const (
	addOperator arithmeticOperator = iota
	subtractOperator
	multiplyOperator
	divideOperator
	moduloOperator
)

//
// Additive operators
//

func Plus(left Value, right Value) Value {
	if isWrapper(left) || isWrapper(right) {
		return withDependencies(Plus(Unwrap(left), Unwrap(right)), left, right)
	}

	switch receiver := left.(type) {
	case StringConstant:
		if constant, isConstant := right.(Constant); isConstant {
			return String(receiver.value + constant.AsString())
		}
		return Undetermined
	case CharConstant:
		if other, isInt := right.(IntConstant); isInt {
			return Char(uint16(int32(receiver.value) + other.value))
		}
		return Undetermined
	}

	result, _ := numericArithmetic(addOperator, left, right)
	return result
}

func Minus(left Value, right Value) Value {
	if isWrapper(left) || isWrapper(right) {
		return withDependencies(Minus(Unwrap(left), Unwrap(right)), left, right)
	}

	if receiver, isChar := left.(CharConstant); isChar {
		switch other := right.(type) {
		case IntConstant:
			return Char(uint16(int32(receiver.value) - other.value))
		case CharConstant:
			return Int(int32(receiver.value) - int32(other.value))
		default:
			return Undetermined
		}
	}

	result, _ := numericArithmetic(subtractOperator, left, right)
	return result
}

//
// Multiplicative operators
//

func Times(left Value, right Value) Value {
	if isWrapper(left) || isWrapper(right) {
		return withDependencies(Times(Unwrap(left), Unwrap(right)), left, right)
	}

	result, _ := numericArithmetic(multiplyOperator, left, right)
	return result
}

// Div returns `ErrDivisionByZero` if both operands are integral and the divisor is zero.
func Div(left Value, right Value) (Value, error) {
	if isWrapper(left) || isWrapper(right) {
		result, err := Div(Unwrap(left), Unwrap(right))
		return withDependencies(result, left, right), err
	}
	return numericArithmetic(divideOperator, left, right)
}

// Mod returns `ErrDivisionByZero` if both operands are integral and the divisor is zero.
func Mod(left Value, right Value) (Value, error) {
	if isWrapper(left) || isWrapper(right) {
		result, err := Mod(Unwrap(left), Unwrap(right))
		return withDependencies(result, left, right), err
	}
	return numericArithmetic(moduloOperator, left, right)
}

// Performs binary arithmetic on two numeric constants, anything else yields `Undetermined`.
// Both operands are promoted to the merged numeric type first.
func numericArithmetic(operator arithmeticOperator, left Value, right Value) (Value, error) {
	leftType, leftIsNumeric := numericTypeOf(left)
	rightType, rightIsNumeric := numericTypeOf(right)
	if !leftIsNumeric || !rightIsNumeric {
		return Undetermined, nil
	}

	switch typ := leftType.Merge(rightType); typ {
	case IntNumeric:
		lhs, rhs := toInt32(left), toInt32(right)
		switch operator {
		case addOperator:
			return Int(lhs + rhs), nil
		case subtractOperator:
			return Int(lhs - rhs), nil
		case multiplyOperator:
			return Int(lhs * rhs), nil
		case divideOperator:
			if rhs == 0 {
				return Undetermined, ErrDivisionByZero
			}
			return Int(lhs / rhs), nil
		case moduloOperator:
			if rhs == 0 {
				return Undetermined, ErrDivisionByZero
			}
			return Int(lhs % rhs), nil
		}
	case LongNumeric:
		lhs, rhs := toInt64(left), toInt64(right)
		switch operator {
		case addOperator:
			return Long(lhs + rhs), nil
		case subtractOperator:
			return Long(lhs - rhs), nil
		case multiplyOperator:
			return Long(lhs * rhs), nil
		case divideOperator:
			if rhs == 0 {
				return Undetermined, ErrDivisionByZero
			}
			return Long(lhs / rhs), nil
		case moduloOperator:
			if rhs == 0 {
				return Undetermined, ErrDivisionByZero
			}
			return Long(lhs % rhs), nil
		}
	case FloatNumeric, DoubleNumeric:
		lhs, rhs := toFloat(left, typ), toFloat(right, typ)
		switch operator {
		case addOperator:
			return NewFloatConstant(lhs+rhs, typ), nil
		case subtractOperator:
			return NewFloatConstant(lhs-rhs, typ), nil
		case multiplyOperator:
			return NewFloatConstant(lhs*rhs, typ), nil
		case divideOperator:
			return NewFloatConstant(lhs/rhs, typ), nil
		case moduloOperator:
			return NewFloatConstant(math.Mod(lhs, rhs), typ), nil
		}
	}

	panic("A new arithmeticOperator or NumericType was added without updating this code")
}

//
// Unary operators
//

// Negate performs unary minus. Byte, short and char operands are promoted to int.
func Negate(value Value) Value {
	if isWrapper(value) {
		return withDependencies(Negate(Unwrap(value)), value)
	}

	switch constant := value.(type) {
	case IntConstant:
		return Int(-constant.value)
	case CharConstant:
		return Int(-int32(constant.value))
	case LongConstant:
		return Long(-constant.value)
	case FloatConstant:
		return NewFloatConstant(-constant.value, constant.typ)
	case NaNConstant:
		return constant
	default:
		return Undetermined
	}
}

// UnaryPlus only promotes its operand.
func UnaryPlus(value Value) Value {
	if isWrapper(value) {
		return withDependencies(UnaryPlus(Unwrap(value)), value)
	}

	switch constant := value.(type) {
	case IntConstant:
		return Int(constant.value)
	case CharConstant:
		return Int(int32(constant.value))
	case LongConstant, FloatConstant, NaNConstant:
		return constant
	default:
		return Undetermined
	}
}

func BitNot(value Value) Value {
	if isWrapper(value) {
		return withDependencies(BitNot(Unwrap(value)), value)
	}

	switch constant := value.(type) {
	case IntConstant:
		return Int(^constant.value)
	case CharConstant:
		return Int(^int32(constant.value))
	case LongConstant:
		return Long(^constant.value)
	default:
		return Undetermined
	}
}

// Inc increments a numeric or char constant, keeping its type.
func Inc(value Value) Value {
	return step(value, 1)
}

// Dec decrements a numeric or char constant, keeping its type.
func Dec(value Value) Value {
	return step(value, -1)
}

func step(value Value, delta int32) Value {
	if isWrapper(value) {
		return withDependencies(step(Unwrap(value), delta), value)
	}

	switch constant := value.(type) {
	case IntConstant:
		return NewIntConstant(constant.value+delta, constant.typ)
	case CharConstant:
		return Char(uint16(int32(constant.value) + delta))
	case LongConstant:
		return Long(constant.value + int64(delta))
	case FloatConstant:
		return NewFloatConstant(constant.value+float64(delta), constant.typ)
	case NaNConstant:
		return constant
	default:
		return Undetermined
	}
}
