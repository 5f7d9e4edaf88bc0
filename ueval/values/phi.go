package values

import (
	"strings"
)

// Phis with more members than this degrade to `Undetermined`, which bounds loop iteration.
const PhiLimit = 4

// PhiValue is one of several known values, it is unknown which one.
type PhiValue struct {
	values       []Value
	dependencies DependencySet
	hash         uint64
}

// NewPhiValue flattens nested phis and removes duplicates.
// A single remaining member is returned as-is.
// If any member is (a binding of) `Undetermined`, so is the phi.
func NewPhiValue(values ...Value) Value {
	if len(values) == 0 {
		panic("A phi value requires at least one member")
	}

	members := make([]Value, 0, len(values))
	add := func(value Value) {
		for _, member := range members {
			if member.Hash() == value.Hash() && member.Equal(value) {
				return
			}
		}
		members = append(members, value)
	}

	for _, value := range values {
		if phi, isPhi := value.(*PhiValue); isPhi {
			for _, member := range phi.values {
				add(member)
			}
			continue
		}
		add(value)
	}

	if len(members) == 1 {
		return members[0]
	}

	hashes := make([]uint64, 0, len(members))
	var dependencies DependencySet
	for _, member := range members {
		if IsUndetermined(Unwrap(member)) {
			return Undetermined
		}
		hashes = append(hashes, member.Hash())
		dependencies = dependencies.Union(member.Dependencies())
	}

	if len(members) > PhiLimit {
		return Undetermined
	}

	return &PhiValue{
		values:       members,
		dependencies: dependencies,
		hash:         unorderedHash(PhiValueKind, hashes...),
	}
}

// Returns a copy of the members.
func (self *PhiValue) Values() []Value {
	values := make([]Value, len(self.values))
	copy(values, self.values)
	return values
}

func (self *PhiValue) Len() int                    { return len(self.values) }
func (_ *PhiValue) Kind() ValueKind                { return PhiValueKind }
func (self *PhiValue) Dependencies() DependencySet { return self.dependencies }
func (_ *PhiValue) Constant() (Constant, bool)     { return nil, false }
func (self *PhiValue) Hash() uint64                { return self.hash }

func (self *PhiValue) Contains(value Value) bool {
	for _, member := range self.values {
		if member.Equal(value) {
			return true
		}
	}
	return false
}

// Order independent.
func (self *PhiValue) Equal(other Value) bool {
	otherPhi, ok := other.(*PhiValue)
	if !ok || otherPhi.hash != self.hash || len(otherPhi.values) != len(self.values) {
		return false
	}
	for _, member := range self.values {
		if !otherPhi.Contains(member) {
			return false
		}
	}
	return true
}

func (self *PhiValue) String() string {
	members := make([]string, 0, len(self.values))
	for _, member := range self.values {
		members = append(members, member.String())
	}
	return "Phi(" + strings.Join(members, ", ") + ")"
}
