package values

import (
	"github.com/smarthome-go/ueval/ueval/uast"
)

// Cast converts a constant to the given type using the conversion rules of the analyzed language:
// integral narrowing truncates, floating to integral conversion saturates and maps NaN to zero.
func Cast(value Value, typ uast.Type) Value {
	if isWrapper(value) {
		return withDependencies(Cast(Unwrap(value), typ), value)
	}

	switch typ.Kind {
	case uast.BooleanTypeKind:
		if _, isBoolean := value.(BooleanConstant); isBoolean {
			return value
		}
		return Undetermined
	case uast.ReferenceTypeKind:
		switch value.(type) {
		case NullConstant:
			return value
		case StringConstant:
			if typ.SimpleName() == "String" {
				return value
			}
		case EnumEntryConstant, ClassConstant:
			return value
		}
		return Undetermined
	case uast.VoidTypeKind:
		return Undetermined
	}

	if !isNumericOrChar(value) {
		return Undetermined
	}

	switch typ.Kind {
	case uast.ByteTypeKind:
		return NewIntConstant(castToInt32(value), ByteNumeric)
	case uast.ShortTypeKind:
		return NewIntConstant(castToInt32(value), ShortNumeric)
	case uast.IntTypeKind:
		return Int(castToInt32(value))
	case uast.CharTypeKind:
		return Char(uint16(castToInt32(value)))
	case uast.LongTypeKind:
		switch constant := value.(type) {
		case FloatConstant, NaNConstant:
			return Long(floatToInt64(toFloat(constant, DoubleNumeric)))
		default:
			return Long(toInt64(constant))
		}
	case uast.FloatTypeKind:
		return NewFloatConstant(toFloat(value, FloatNumeric), FloatNumeric)
	case uast.DoubleTypeKind:
		return NewFloatConstant(toFloat(value, DoubleNumeric), DoubleNumeric)
	}

	panic("A new TypeKind was added without updating this code")
}

func isNumericOrChar(value Value) bool {
	if _, isChar := value.(CharConstant); isChar {
		return true
	}
	_, isNumeric := numericTypeOf(value)
	return isNumeric
}

// Floating values are converted to int first, integral values are truncated.
func castToInt32(value Value) int32 {
	switch constant := value.(type) {
	case FloatConstant, NaNConstant:
		return floatToInt32(toFloat(constant, DoubleNumeric))
	default:
		return toInt32(constant)
	}
}
