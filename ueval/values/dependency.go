package values

import (
	"strings"

	"github.com/smarthome-go/ueval/ueval/uast"
)

// Dependency is something the correctness of a value relies on.
// Currently, only variable bindings (`*VariableValue`) are dependencies.
type Dependency interface {
	Value
	isDependency()
}

// DependencySet is an immutable, unordered set of dependencies.
// The zero value is the empty set.
type DependencySet struct {
	items []Dependency
}

func NewDependencySet(dependencies ...Dependency) DependencySet {
	return DependencySet{}.With(dependencies...)
}

func (self DependencySet) Len() int      { return len(self.items) }
func (self DependencySet) IsEmpty() bool { return len(self.items) == 0 }

func (self DependencySet) Contains(dependency Dependency) bool {
	hash := dependency.Hash()
	for _, item := range self.items {
		if item.Hash() == hash && item.Equal(dependency) {
			return true
		}
	}
	return false
}

// With returns a set containing the dependencies of this set and the given ones.
func (self DependencySet) With(dependencies ...Dependency) DependencySet {
	result := self
	for _, dependency := range dependencies {
		if dependency == nil || result.Contains(dependency) {
			continue
		}
		items := make([]Dependency, len(result.items), len(result.items)+1)
		copy(items, result.items)
		result = DependencySet{items: append(items, dependency)}
	}
	return result
}

func (self DependencySet) Union(other DependencySet) DependencySet {
	if self.IsEmpty() {
		return other
	}
	return self.With(other.items...)
}

func (self DependencySet) Filter(keep func(Dependency) bool) DependencySet {
	items := make([]Dependency, 0, len(self.items))
	for _, item := range self.items {
		if keep(item) {
			items = append(items, item)
		}
	}
	if len(items) == len(self.items) {
		return self
	}
	return DependencySet{items: items}
}

// Drops every binding of the given variable.
func (self DependencySet) withoutVariable(variable *uast.Variable) DependencySet {
	return self.Filter(func(dependency Dependency) bool {
		binding, isVariable := dependency.(*VariableValue)
		return !isVariable || binding.variable != variable
	})
}

// Order independent.
func (self DependencySet) Equal(other DependencySet) bool {
	if len(self.items) != len(other.items) {
		return false
	}
	for _, item := range self.items {
		if !other.Contains(item) {
			return false
		}
	}
	return true
}

func (self DependencySet) Hash() uint64 {
	hashes := make([]uint64, 0, len(self.items))
	for _, item := range self.items {
		hashes = append(hashes, item.Hash())
	}
	return unorderedHash(DependentValueKind, hashes...)
}

func (self DependencySet) String() string {
	items := make([]string, 0, len(self.items))
	for _, item := range self.items {
		items = append(items, item.String())
	}
	return strings.Join(items, ", ")
}
