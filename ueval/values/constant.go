package values

import (
	"fmt"

	"github.com/smarthome-go/ueval/ueval/uast"
)

//
// Char constant
//

type CharConstant struct {
	value uint16
}

func Char(value uint16) CharConstant { return CharConstant{value: value} }

func (self CharConstant) Value() uint16              { return self.value }
func (_ CharConstant) Kind() ValueKind               { return CharValueKind }
func (_ CharConstant) Dependencies() DependencySet   { return DependencySet{} }
func (self CharConstant) Constant() (Constant, bool) { return self, true }
func (self CharConstant) AsString() string           { return string(rune(self.value)) }
func (self CharConstant) String() string             { return fmt.Sprintf("'%s'", self.AsString()) }
func (_ CharConstant) isConstant()                   {}
func (self CharConstant) Hash() uint64               { return hashUint64(CharValueKind, uint64(self.value)) }
func (self CharConstant) Equal(other Value) bool {
	otherChar, ok := other.(CharConstant)
	return ok && otherChar.value == self.value
}

//
// Boolean constant
//

type BooleanConstant struct {
	value bool
}

var (
	True  = BooleanConstant{value: true}
	False = BooleanConstant{value: false}
)

func Boolean(value bool) BooleanConstant {
	if value {
		return True
	}
	return False
}

func (self BooleanConstant) Value() bool                { return self.value }
func (_ BooleanConstant) Kind() ValueKind               { return BooleanValueKind }
func (_ BooleanConstant) Dependencies() DependencySet   { return DependencySet{} }
func (self BooleanConstant) Constant() (Constant, bool) { return self, true }
func (self BooleanConstant) AsString() string           { return fmt.Sprint(self.value) }
func (self BooleanConstant) String() string             { return self.AsString() }
func (_ BooleanConstant) isConstant()                   {}
func (self BooleanConstant) Hash() uint64 {
	if self.value {
		return hashUint64(BooleanValueKind, 1)
	}
	return hashUint64(BooleanValueKind, 0)
}
func (self BooleanConstant) Equal(other Value) bool {
	otherBool, ok := other.(BooleanConstant)
	return ok && otherBool.value == self.value
}

//
// String constant
//

type StringConstant struct {
	value string
}

func String(value string) StringConstant { return StringConstant{value: value} }

func (self StringConstant) Value() string              { return self.value }
func (_ StringConstant) Kind() ValueKind               { return StringValueKind }
func (_ StringConstant) Dependencies() DependencySet   { return DependencySet{} }
func (self StringConstant) Constant() (Constant, bool) { return self, true }
func (self StringConstant) AsString() string           { return self.value }
func (self StringConstant) String() string             { return fmt.Sprintf("%q", self.value) }
func (_ StringConstant) isConstant()                   {}
func (self StringConstant) Hash() uint64               { return hashStrings(StringValueKind, self.value) }
func (self StringConstant) Equal(other Value) bool {
	otherString, ok := other.(StringConstant)
	return ok && otherString.value == self.value
}

//
// Enum entry constant
//

// EnumEntryConstant is compared by name: the member name and the qualified name of the declaring enum.
// Two distinct `*uast.EnumEntry` nodes describing the same member are equal.
type EnumEntryConstant struct {
	entry *uast.EnumEntry
}

func NewEnumEntryConstant(entry *uast.EnumEntry) EnumEntryConstant {
	if entry == nil {
		panic("Cannot create an enum entry constant without an entry")
	}
	return EnumEntryConstant{entry: entry}
}

func (self EnumEntryConstant) Entry() *uast.EnumEntry     { return self.entry }
func (_ EnumEntryConstant) Kind() ValueKind               { return EnumEntryValueKind }
func (_ EnumEntryConstant) Dependencies() DependencySet   { return DependencySet{} }
func (self EnumEntryConstant) Constant() (Constant, bool) { return self, true }
func (self EnumEntryConstant) AsString() string           { return self.entry.Name() }
func (self EnumEntryConstant) String() string {
	return fmt.Sprintf("%s (enum entry)", self.entry.Name())
}
func (_ EnumEntryConstant) isConstant() {}
func (self EnumEntryConstant) Hash() uint64 {
	return hashStrings(EnumEntryValueKind, self.entry.Name(), self.entry.DeclaringTypeName())
}
func (self EnumEntryConstant) Equal(other Value) bool {
	otherEntry, ok := other.(EnumEntryConstant)
	return ok &&
		otherEntry.entry.Name() == self.entry.Name() &&
		otherEntry.entry.DeclaringTypeName() == self.entry.DeclaringTypeName()
}

//
// Class literal constant
//

type ClassConstant struct {
	typ uast.Type
}

func NewClassConstant(typ uast.Type) ClassConstant { return ClassConstant{typ: typ} }

func (self ClassConstant) Type() uast.Type            { return self.typ }
func (_ ClassConstant) Kind() ValueKind               { return ClassValueKind }
func (_ ClassConstant) Dependencies() DependencySet   { return DependencySet{} }
func (self ClassConstant) Constant() (Constant, bool) { return self, true }
func (self ClassConstant) AsString() string           { return "class " + self.typ.String() }
func (self ClassConstant) String() string             { return self.typ.SimpleName() + ".class" }
func (_ ClassConstant) isConstant()                   {}
func (self ClassConstant) Hash() uint64 {
	return hashStrings(ClassValueKind, self.typ.Kind.String(), self.typ.Name)
}
func (self ClassConstant) Equal(other Value) bool {
	otherClass, ok := other.(ClassConstant)
	return ok && otherClass.typ == self.typ
}

//
// Null constant
//

type NullConstant struct{}

var Null Constant = NullConstant{}

func (_ NullConstant) Kind() ValueKind               { return NullValueKind }
func (_ NullConstant) Dependencies() DependencySet   { return DependencySet{} }
func (self NullConstant) Constant() (Constant, bool) { return self, true }
func (_ NullConstant) AsString() string              { return "null" }
func (_ NullConstant) String() string                { return "null" }
func (_ NullConstant) isConstant()                   {}
func (_ NullConstant) Hash() uint64                  { return hashTag(NullValueKind) }
func (_ NullConstant) Equal(other Value) bool {
	_, ok := other.(NullConstant)
	return ok
}
