package evaluator

import (
	"github.com/rs/zerolog"

	"github.com/smarthome-go/ueval/ueval/state"
	"github.com/smarthome-go/ueval/ueval/uast"
	"github.com/smarthome-go/ueval/ueval/values"
)

func (self *TreeEvaluator) statement(node uast.Statement, st state.State) {
	if !st.Reachable() {
		return
	}

	self.logger.Debug().
		Str("method", self.methodName()).
		Str("stmt", node.Kind().String()).
		Str("span", node.Span().String()).
		Msg("Visiting statement")

	switch node.Kind() {
	case uast.BlockStatementKind:
		for _, child := range node.(*uast.Block).Statements {
			self.statement(child, st)
		}
	case uast.DeclarationStatementKind:
		node := node.(*uast.DeclarationStatement)
		if node.Initializer == nil {
			return
		}
		value := self.evaluate(node.Initializer, st)
		self.bind(node.Variable, value, st)
	case uast.ExpressionStatementKind:
		self.evaluate(node.(*uast.ExpressionStatement).Expression, st)
	case uast.IfStatementKind:
		self.ifStatement(node.(*uast.IfStatement), st)
	case uast.WhileStatementKind:
		self.whileStatement(node.(*uast.WhileStatement), st)
	case uast.ReturnStatementKind:
		self.returnStatement(node.(*uast.ReturnStatement), st)
	default:
		panic("A new statement kind was added without updating this code")
	}
}

func (self *TreeEvaluator) ifStatement(node *uast.IfStatement, st state.State) {
	condition := self.evaluate(node.Condition, st)

	switch values.ToTristate(condition) {
	case values.TristateTrue:
		self.statement(node.Then, st)
	case values.TristateFalse:
		if node.Else != nil {
			self.statement(node.Else, st)
		}
	default:
		thenBranch := st.Fork()
		self.statement(node.Then, thenBranch)
		if node.Else != nil {
			self.statement(node.Else, st)
		}
		self.join(st, thenBranch)
	}
}

// The loop is walked until the bindings stop changing.
// After the iteration limit, every binding which still changes is widened to `Undetermined`.
func (self *TreeEvaluator) whileStatement(node *uast.WhileStatement, st state.State) {
	for iteration := 1; ; iteration++ {
		truth := values.ToTristate(self.evaluate(node.Condition, st))
		if truth == values.TristateFalse {
			return
		}

		body := st.Fork()
		self.statement(node.Body, body)

		before := st.Fork()
		self.join(st, body)

		if st.Equal(before) {
			// The loop can only be left through its condition.
			if truth == values.TristateTrue {
				st.MarkUnreachable()
			}
			return
		}

		if iteration >= self.loopIterationLimit {
			self.widen(st, before)
		}
	}
}

func (self *TreeEvaluator) widen(st state.State, before state.State) {
	for _, variable := range st.Variables() {
		current, _ := st.Lookup(variable)
		previous, found := before.Lookup(variable)
		if found && current.Equal(previous) {
			continue
		}

		self.logger.Debug().
			Str("method", self.methodName()).
			Str("variable", variable.Name()).
			Str("value", current.String()).
			Msg("Widening loop variable")

		st.Bind(variable, values.Undetermined)
	}
}

func (self *TreeEvaluator) returnStatement(node *uast.ReturnStatement, st state.State) {
	if node.Value != nil {
		value := self.evaluate(node.Value, st)

		if self.trackReturns && self.currentMethod != nil {
			if previous, found := self.returns[self.currentMethod]; found {
				value = values.Merge(previous, value)
			}
			self.returns[self.currentMethod] = value
		}
	}

	st.MarkUnreachable()
}

func (self *TreeEvaluator) join(st state.State, others ...state.State) {
	if self.logger.GetLevel() <= zerolog.DebugLevel {
		for _, other := range others {
			if !other.Reachable() || !st.Reachable() {
				continue
			}
			for _, variable := range other.Variables() {
				theirs, _ := other.Lookup(variable)
				ours, found := st.Lookup(variable)
				if !found || ours.Equal(theirs) {
					continue
				}
				self.logger.Debug().
					Str("method", self.methodName()).
					Str("variable", variable.Name()).
					Str("value", ours.String()).
					Str("other", theirs.String()).
					Str("result", values.Merge(ours, theirs).String()).
					Msg("Merging binding")
			}
		}
	}

	st.Join(others...)
}

func (self *TreeEvaluator) bind(variable *uast.Variable, value values.Value, st state.State) *values.VariableValue {
	bound := values.NewVariableValue(variable, convertForAssignment(value, variable.Type), values.DependencySet{})
	st.Bind(variable, bound)
	return bound
}
