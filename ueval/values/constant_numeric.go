package values

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

//
// Int constant
//

// IntConstant holds byte, short and int constants.
// The payload is always stored int-sized, the type only matters for display and assignment.
type IntConstant struct {
	value int32
	typ   NumericType
}

func NewIntConstant(value int32, typ NumericType) IntConstant {
	switch typ {
	case ByteNumeric:
		value = int32(int8(value))
	case ShortNumeric:
		value = int32(int16(value))
	case IntNumeric:
	default:
		panic(fmt.Sprintf("Incorrect IntConstant type: %s", typ))
	}
	return IntConstant{value: value, typ: typ}
}

func Int(value int32) IntConstant { return NewIntConstant(value, IntNumeric) }

func (self IntConstant) Value() int32               { return self.value }
func (self IntConstant) Type() NumericType          { return self.typ }
func (_ IntConstant) Kind() ValueKind               { return IntValueKind }
func (_ IntConstant) Dependencies() DependencySet   { return DependencySet{} }
func (self IntConstant) Constant() (Constant, bool) { return self, true }
func (self IntConstant) AsString() string           { return fmt.Sprint(self.value) }
func (self IntConstant) String() string             { return self.typ.Prefix() + self.AsString() }
func (_ IntConstant) isConstant()                   {}
func (self IntConstant) Hash() uint64 {
	return combineHashes(hashUint64(IntValueKind, uint64(uint32(self.value))), uint64(self.typ))
}
func (self IntConstant) Equal(other Value) bool {
	otherInt, ok := other.(IntConstant)
	return ok && otherInt.value == self.value && otherInt.typ == self.typ
}

//
// Long constant
//

type LongConstant struct {
	value int64
}

func Long(value int64) LongConstant { return LongConstant{value: value} }

func (self LongConstant) Value() int64               { return self.value }
func (_ LongConstant) Type() NumericType             { return LongNumeric }
func (_ LongConstant) Kind() ValueKind               { return LongValueKind }
func (_ LongConstant) Dependencies() DependencySet   { return DependencySet{} }
func (self LongConstant) Constant() (Constant, bool) { return self, true }
func (self LongConstant) AsString() string           { return fmt.Sprint(self.value) }
func (self LongConstant) String() string             { return LongNumeric.Prefix() + self.AsString() }
func (_ LongConstant) isConstant()                   {}
func (self LongConstant) Hash() uint64               { return hashUint64(LongValueKind, uint64(self.value)) }
func (self LongConstant) Equal(other Value) bool {
	otherLong, ok := other.(LongConstant)
	return ok && otherLong.value == self.value
}

//
// Float constant
//

// FloatConstant holds float and double constants, never NaN.
// Float payloads are rounded to single precision on construction.
type FloatConstant struct {
	value float64
	typ   NumericType
}

// NewFloatConstant returns a `NaNConstant` if the value is NaN.
func NewFloatConstant(value float64, typ NumericType) Constant {
	switch typ {
	case FloatNumeric, DoubleNumeric:
	default:
		panic(fmt.Sprintf("Incorrect FloatConstant type: %s", typ))
	}

	if math.IsNaN(value) {
		return NewNaNConstant(typ)
	}

	if typ == FloatNumeric {
		value = float64(float32(value))
	}

	return FloatConstant{value: value, typ: typ}
}

func Double(value float64) Constant { return NewFloatConstant(value, DoubleNumeric) }

func (self FloatConstant) Value() float64             { return self.value }
func (self FloatConstant) Type() NumericType          { return self.typ }
func (_ FloatConstant) Kind() ValueKind               { return FloatValueKind }
func (_ FloatConstant) Dependencies() DependencySet   { return DependencySet{} }
func (self FloatConstant) Constant() (Constant, bool) { return self, true }
func (self FloatConstant) AsString() string           { return formatFloat(self.value, self.typ) }
func (self FloatConstant) String() string             { return self.typ.Prefix() + self.AsString() }
func (_ FloatConstant) isConstant()                   {}
func (self FloatConstant) Hash() uint64               { return hashFloat(FloatValueKind, self.typ, self.value) }
func (self FloatConstant) Equal(other Value) bool {
	otherFloat, ok := other.(FloatConstant)
	return ok &&
		otherFloat.typ == self.typ &&
		math.Float64bits(otherFloat.value) == math.Float64bits(self.value)
}

func formatFloat(value float64, typ NumericType) string {
	switch {
	case math.IsInf(value, 1):
		return "Infinity"
	case math.IsInf(value, -1):
		return "-Infinity"
	}

	bitSize := 64
	if typ == FloatNumeric {
		bitSize = 32
	}

	display := strconv.FormatFloat(value, 'g', -1, bitSize)
	if !strings.ContainsAny(display, ".e") {
		display += ".0"
	}
	return display
}

//
// NaN constant
//

// NaNConstant is the only representation of a floating NaN.
// Every ordering comparison and value-equality involving it is false.
type NaNConstant struct {
	typ NumericType
}

var (
	FloatNaN  = NaNConstant{typ: FloatNumeric}
	DoubleNaN = NaNConstant{typ: DoubleNumeric}
)

func NewNaNConstant(typ NumericType) NaNConstant {
	switch typ {
	case FloatNumeric:
		return FloatNaN
	case DoubleNumeric:
		return DoubleNaN
	default:
		panic(fmt.Sprintf("NaN exists only for float / double, but not for %s", typ))
	}
}

func (_ NaNConstant) Value() float64                { return math.NaN() }
func (self NaNConstant) Type() NumericType          { return self.typ }
func (_ NaNConstant) Kind() ValueKind               { return NaNValueKind }
func (_ NaNConstant) Dependencies() DependencySet   { return DependencySet{} }
func (self NaNConstant) Constant() (Constant, bool) { return self, true }
func (_ NaNConstant) AsString() string              { return "NaN" }
func (self NaNConstant) String() string             { return self.typ.Prefix() + "NaN" }
func (_ NaNConstant) isConstant()                   {}
func (self NaNConstant) Hash() uint64               { return hashUint64(NaNValueKind, uint64(self.typ)) }
func (self NaNConstant) Equal(other Value) bool {
	otherNaN, ok := other.(NaNConstant)
	return ok && otherNaN.typ == self.typ
}

func IsNaN(value Value) bool {
	return value.Kind() == NaNValueKind
}

//
// Numeric helpers
//

// numericTypeOf reports the width of numeric constants, chars and other kinds are not numeric.
func numericTypeOf(value Value) (NumericType, bool) {
	switch constant := value.(type) {
	case IntConstant:
		return constant.typ, true
	case LongConstant:
		return LongNumeric, true
	case FloatConstant:
		return constant.typ, true
	case NaNConstant:
		return constant.typ, true
	default:
		return 0, false
	}
}

func toInt32(value Value) int32 {
	switch constant := value.(type) {
	case IntConstant:
		return constant.value
	case LongConstant:
		return int32(constant.value)
	case CharConstant:
		return int32(constant.value)
	}
	panic(fmt.Sprintf("Unreachable: %s is not an int-sized constant", value))
}

func toInt64(value Value) int64 {
	switch constant := value.(type) {
	case IntConstant:
		return int64(constant.value)
	case LongConstant:
		return constant.value
	case CharConstant:
		return int64(constant.value)
	}
	panic(fmt.Sprintf("Unreachable: %s is not an integral constant", value))
}

// toFloat converts a numeric constant to a floating payload of the given width.
// Float conversions round once, straight from the source value.
func toFloat(value Value, typ NumericType) float64 {
	switch constant := value.(type) {
	case IntConstant:
		if typ == FloatNumeric {
			return float64(float32(constant.value))
		}
		return float64(constant.value)
	case LongConstant:
		if typ == FloatNumeric {
			return float64(float32(constant.value))
		}
		return float64(constant.value)
	case CharConstant:
		return float64(constant.value)
	case FloatConstant:
		return constant.value
	case NaNConstant:
		return math.NaN()
	}
	panic(fmt.Sprintf("Unreachable: %s is not a numeric constant", value))
}

// Saturating conversions as performed by the JVM: NaN becomes zero.
func floatToInt32(value float64) int32 {
	switch {
	case math.IsNaN(value):
		return 0
	case value >= math.MaxInt32:
		return math.MaxInt32
	case value <= math.MinInt32:
		return math.MinInt32
	default:
		return int32(value)
	}
}

func floatToInt64(value float64) int64 {
	switch {
	case math.IsNaN(value):
		return 0
	case value >= math.MaxInt64:
		return math.MaxInt64
	case value <= math.MinInt64:
		return math.MinInt64
	default:
		return int64(value)
	}
}
