package values

import (
	"fmt"

	"github.com/smarthome-go/ueval/ueval/uast"
)

// NumericType is the width tag of a numeric constant.
type NumericType uint8

const (
	ByteNumeric NumericType = iota
	ShortNumeric
	IntNumeric
	LongNumeric
	FloatNumeric
	DoubleNumeric
)

func (self NumericType) String() string {
	switch self {
	case ByteNumeric:
		return "byte"
	case ShortNumeric:
		return "short"
	case IntNumeric:
		return "int"
	case LongNumeric:
		return "long"
	case FloatNumeric:
		return "float"
	case DoubleNumeric:
		return "double"
	default:
		panic("A new NumericType was added without updating this code")
	}
}

// The cast prefix used when displaying constants of this width.
func (self NumericType) Prefix() string {
	switch self {
	case ByteNumeric, ShortNumeric, LongNumeric, FloatNumeric:
		return fmt.Sprintf("(%s)", self)
	default:
		return ""
	}
}

// Merge returns the type of a binary arithmetic operation on two operands of the given types.
// Byte and short never survive a merge.
func (self NumericType) Merge(other NumericType) NumericType {
	if self == DoubleNumeric || other == DoubleNumeric {
		return DoubleNumeric
	}
	if self == FloatNumeric || other == FloatNumeric {
		return FloatNumeric
	}
	if self == LongNumeric || other == LongNumeric {
		return LongNumeric
	}
	return IntNumeric
}

func NumericTypeOf(typ uast.Type) (NumericType, bool) {
	switch typ.Kind {
	case uast.ByteTypeKind:
		return ByteNumeric, true
	case uast.ShortTypeKind:
		return ShortNumeric, true
	case uast.IntTypeKind:
		return IntNumeric, true
	case uast.LongTypeKind:
		return LongNumeric, true
	case uast.FloatTypeKind:
		return FloatNumeric, true
	case uast.DoubleTypeKind:
		return DoubleNumeric, true
	default:
		return 0, false
	}
}
