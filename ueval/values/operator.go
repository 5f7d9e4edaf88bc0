package values

import (
	"github.com/smarthome-go/ueval/ueval/uast"
)

// Binary applies an infix operator to two values.
// The error is `ErrDivisionByZero` if an integral division or modulo has the constant zero as its divisor.
func Binary(operator uast.InfixOperator, left Value, right Value) (Value, error) {
	switch operator {
	case uast.PlusInfixOperator:
		return Plus(left, right), nil
	case uast.MinusInfixOperator:
		return Minus(left, right), nil
	case uast.MultiplyInfixOperator:
		return Times(left, right), nil
	case uast.DivideInfixOperator:
		return Div(left, right)
	case uast.ModuloInfixOperator:
		return Mod(left, right)
	case uast.ShiftLeftInfixOperator:
		return Shl(left, right), nil
	case uast.ShiftRightInfixOperator:
		return Shr(left, right), nil
	case uast.UnsignedShiftRightInfixOperator:
		return Ushr(left, right), nil
	case uast.BitOrInfixOperator:
		return BitOr(left, right), nil
	case uast.BitAndInfixOperator:
		return BitAnd(left, right), nil
	case uast.BitXorInfixOperator:
		return BitXor(left, right), nil
	case uast.LogicalOrInfixOperator:
		return Or(left, right), nil
	case uast.LogicalAndInfixOperator:
		return And(left, right), nil
	case uast.EqualInfixOperator:
		return IdentityEquals(left, right), nil
	case uast.NotEqualInfixOperator:
		return IdentityNotEquals(left, right), nil
	case uast.LessThanInfixOperator:
		return Less(left, right), nil
	case uast.LessThanEqualInfixOperator:
		return LessOrEquals(left, right), nil
	case uast.GreaterThanInfixOperator:
		return Greater(left, right), nil
	case uast.GreaterThanEqualInfixOperator:
		return GreaterOrEquals(left, right), nil
	default:
		panic("A new InfixOperator was added without updating this code")
	}
}

// Unary applies a prefix operator to a value.
// For `++` and `--`, this is the new value of the operand.
func Unary(operator uast.PrefixOperator, value Value) Value {
	switch operator {
	case uast.MinusPrefixOperator:
		return Negate(value)
	case uast.PlusPrefixOperator:
		return UnaryPlus(value)
	case uast.NegatePrefixOperator:
		return Not(value)
	case uast.BitNotPrefixOperator:
		return BitNot(value)
	case uast.IncrementPrefixOperator:
		return Inc(value)
	case uast.DecrementPrefixOperator:
		return Dec(value)
	default:
		panic("A new PrefixOperator was added without updating this code")
	}
}
