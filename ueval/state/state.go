package state

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/smarthome-go/ueval/ueval/uast"
	"github.com/smarthome-go/ueval/ueval/values"
)

// State maps variables to their current values while a method body is walked.
// A state is owned by a single evaluation and must not be shared between goroutines.
type State interface {
	// Returns the value currently bound to the variable.
	Lookup(variable *uast.Variable) (values.Value, bool)
	Bind(variable *uast.Variable, value values.Value)
	// Returns an independent copy used to walk one control-flow path.
	Fork() State
	// Merges the given states into this one at a control-flow join.
	// Unreachable states are ignored.
	Join(others ...State)
	// Marks the current path as finished, for instance after a `return`.
	MarkUnreachable()
	Reachable() bool
	// Returns the bound variables in a stable order.
	Variables() []*uast.Variable
	Equal(other State) bool
	String() string
}

// MapState is the default `State` implementation.
type MapState struct {
	bindings    map[*uast.Variable]values.Value
	unreachable bool
}

func NewMapState() *MapState {
	return &MapState{
		bindings: make(map[*uast.Variable]values.Value),
	}
}

func (self *MapState) Lookup(variable *uast.Variable) (values.Value, bool) {
	value, found := self.bindings[variable]
	return value, found
}

func (self *MapState) Bind(variable *uast.Variable, value values.Value) {
	if value == nil {
		panic(fmt.Sprintf("Cannot bind nil to variable `%s`", variable.Name()))
	}
	self.bindings[variable] = value
}

func (self *MapState) Fork() State {
	return &MapState{
		bindings:    maps.Clone(self.bindings),
		unreachable: self.unreachable,
	}
}

func (self *MapState) MarkUnreachable() { self.unreachable = true }
func (self *MapState) Reachable() bool  { return !self.unreachable }

func (self *MapState) Join(others ...State) {
	reachable := make([]State, 0, len(others)+1)
	if self.Reachable() {
		reachable = append(reachable, self)
	}
	for _, other := range others {
		if other.Reachable() {
			reachable = append(reachable, other)
		}
	}

	switch len(reachable) {
	case 0:
		self.unreachable = true
		return
	case 1:
		if reachable[0] == State(self) {
			return
		}
	}

	joined := make(map[*uast.Variable]values.Value)
	for _, state := range reachable {
		for _, variable := range state.Variables() {
			if _, done := joined[variable]; done {
				continue
			}
			joined[variable] = joinVariable(reachable, variable)
		}
	}

	self.bindings = joined
	self.unreachable = false
}

// A variable which is unbound on one of the paths has an unknown value there.
func joinVariable(states []State, variable *uast.Variable) values.Value {
	var result values.Value
	for _, state := range states {
		value, found := state.Lookup(variable)
		if !found {
			value = values.Undetermined
		}
		if result == nil {
			result = value
			continue
		}
		result = values.Merge(result, value)
	}
	return result
}

func (self *MapState) Variables() []*uast.Variable {
	variables := maps.Keys(self.bindings)
	slices.SortFunc(variables, compareVariables)
	return variables
}

func compareVariables(left *uast.Variable, right *uast.Variable) int {
	if cmp := strings.Compare(left.Name(), right.Name()); cmp != 0 {
		return cmp
	}
	leftIndex, rightIndex := left.Ident.Span().Start.Index, right.Ident.Span().Start.Index
	switch {
	case leftIndex < rightIndex:
		return -1
	case leftIndex > rightIndex:
		return 1
	default:
		return 0
	}
}

func (self *MapState) Equal(other State) bool {
	if self.Reachable() != other.Reachable() {
		return false
	}

	variables := other.Variables()
	if len(variables) != len(self.bindings) {
		return false
	}

	for _, variable := range variables {
		value, found := self.bindings[variable]
		if !found {
			return false
		}
		otherValue, _ := other.Lookup(variable)
		if !value.Equal(otherValue) {
			return false
		}
	}

	return true
}

func (self *MapState) String() string {
	if self.unreachable {
		return "<unreachable>"
	}

	lines := make([]string, 0, len(self.bindings))
	for _, variable := range self.Variables() {
		lines = append(lines, fmt.Sprintf("%s = %s", variable.Name(), self.bindings[variable]))
	}
	return strings.Join(lines, "\n")
}
