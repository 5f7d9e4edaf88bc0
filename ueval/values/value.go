package values

type ValueKind uint8

const (
	IntValueKind ValueKind = iota
	LongValueKind
	FloatValueKind
	NaNValueKind
	CharValueKind
	BooleanValueKind
	StringValueKind
	EnumEntryValueKind
	ClassValueKind
	NullValueKind
	DependentValueKind
	VariableValueKind
	PhiValueKind
	UndeterminedValueKind
)

func (self ValueKind) String() string {
	switch self {
	case IntValueKind:
		return "int"
	case LongValueKind:
		return "long"
	case FloatValueKind:
		return "float"
	case NaNValueKind:
		return "nan"
	case CharValueKind:
		return "char"
	case BooleanValueKind:
		return "boolean"
	case StringValueKind:
		return "string"
	case EnumEntryValueKind:
		return "enum-entry"
	case ClassValueKind:
		return "class"
	case NullValueKind:
		return "null"
	case DependentValueKind:
		return "dependent"
	case VariableValueKind:
		return "variable"
	case PhiValueKind:
		return "phi"
	case UndeterminedValueKind:
		return "undetermined"
	default:
		panic("A new ValueKind was introduced without updating this code")
	}
}

// Value is the result of evaluating an expression without executing it.
// Values are immutable: every operation returns a new value.
type Value interface {
	Kind() ValueKind
	// Structural equality. This is not the `==` of the analyzed language, see `ValueEquals` for that.
	Equal(other Value) bool
	// Consistent with `Equal`.
	Hash() uint64
	// The bindings this value was derived from, empty for plain constants.
	Dependencies() DependencySet
	// The exact constant this value stands for, if there is one.
	Constant() (Constant, bool)
	// Debug form using literal syntax of the analyzed language.
	String() string
}

// Constant is a value which is known exactly at analysis time.
type Constant interface {
	Value
	// Textual form used by string concatenation.
	AsString() string
	isConstant()
}

//
// Undetermined
//

// The top of the lattice: the value could be anything.
type UndeterminedValue struct{}

var Undetermined Value = UndeterminedValue{}

func (_ UndeterminedValue) Kind() ValueKind             { return UndeterminedValueKind }
func (_ UndeterminedValue) Hash() uint64                { return hashTag(UndeterminedValueKind) }
func (_ UndeterminedValue) Dependencies() DependencySet { return DependencySet{} }
func (_ UndeterminedValue) Constant() (Constant, bool)  { return nil, false }
func (_ UndeterminedValue) String() string              { return "Undetermined" }
func (_ UndeterminedValue) Equal(other Value) bool {
	return other != nil && other.Kind() == UndeterminedValueKind
}

func IsUndetermined(value Value) bool {
	return value.Kind() == UndeterminedValueKind
}
