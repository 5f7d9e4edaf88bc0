package values

// Tristate is the truth of a condition as far as it is known.
type Tristate uint8

const (
	Unknown Tristate = iota
	TristateTrue
	TristateFalse
)

func (self Tristate) String() string {
	switch self {
	case Unknown:
		return "unknown"
	case TristateTrue:
		return "true"
	case TristateFalse:
		return "false"
	default:
		panic("A new Tristate was added without updating this code")
	}
}

func (self Tristate) IsKnown() bool { return self != Unknown }

// ToTristate looks through dependencies and bindings.
// A phi is known only if all of its members agree.
func ToTristate(value Value) Tristate {
	switch inner := Unwrap(value).(type) {
	case BooleanConstant:
		if inner.value {
			return TristateTrue
		}
		return TristateFalse
	case *PhiValue:
		result := ToTristate(inner.values[0])
		for _, member := range inner.values[1:] {
			if ToTristate(member) != result {
				return Unknown
			}
		}
		return result
	default:
		return Unknown
	}
}
