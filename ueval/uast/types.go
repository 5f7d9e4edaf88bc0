package uast

type TypeKind uint8

const (
	ByteTypeKind TypeKind = iota
	ShortTypeKind
	IntTypeKind
	LongTypeKind
	FloatTypeKind
	DoubleTypeKind
	CharTypeKind
	BooleanTypeKind
	VoidTypeKind
	ReferenceTypeKind
)

func (self TypeKind) String() string {
	switch self {
	case ByteTypeKind:
		return "byte"
	case ShortTypeKind:
		return "short"
	case IntTypeKind:
		return "int"
	case LongTypeKind:
		return "long"
	case FloatTypeKind:
		return "float"
	case DoubleTypeKind:
		return "double"
	case CharTypeKind:
		return "char"
	case BooleanTypeKind:
		return "boolean"
	case VoidTypeKind:
		return "void"
	case ReferenceTypeKind:
		return "reference"
	default:
		panic("A new TypeKind was added without updating this code")
	}
}

// Type is the declared type of a variable, a method result or a cast target.
// It is comparable, two types are the same iff they are `==`.
type Type struct {
	Kind TypeKind
	// Qualified name, only set for reference types.
	Name string
}

func NewPrimitiveType(kind TypeKind) Type {
	if kind == ReferenceTypeKind {
		panic("Reference types require a name: use `NewReferenceType` instead")
	}
	return Type{Kind: kind}
}

func NewReferenceType(qualifiedName string) Type {
	return Type{Kind: ReferenceTypeKind, Name: qualifiedName}
}

// Whether values of this type are compared by value rather than by identity.
func (self Type) IsPrimitive() bool {
	switch self.Kind {
	case ByteTypeKind, ShortTypeKind, IntTypeKind, LongTypeKind,
		FloatTypeKind, DoubleTypeKind, CharTypeKind, BooleanTypeKind:
		return true
	default:
		return false
	}
}

// The last segment of the qualified name for reference types, the keyword otherwise.
func (self Type) SimpleName() string {
	if self.Kind != ReferenceTypeKind {
		return self.Kind.String()
	}
	for idx := len(self.Name) - 1; idx >= 0; idx-- {
		if self.Name[idx] == '.' {
			return self.Name[idx+1:]
		}
	}
	return self.Name
}

func (self Type) String() string {
	if self.Kind == ReferenceTypeKind {
		return self.Name
	}
	return self.Kind.String()
}
