package evaluator

import (
	"fmt"

	"github.com/smarthome-go/ueval/ueval/state"
	"github.com/smarthome-go/ueval/ueval/uast"
	"github.com/smarthome-go/ueval/ueval/values"
)

func (self *TreeEvaluator) evaluate(node uast.Expression, st state.State) values.Value {
	value := self.expression(node, st)
	self.record(node, value)
	return value
}

func (self *TreeEvaluator) expression(node uast.Expression, st state.State) values.Value {
	switch node.Kind() {
	case uast.IntLiteralExpressionKind:
		node := node.(*uast.IntLiteralExpression)
		if node.IsLong {
			return values.Long(node.Value)
		}
		return values.Int(int32(node.Value))
	case uast.FloatLiteralExpressionKind:
		node := node.(*uast.FloatLiteralExpression)
		if node.IsFloat {
			return values.NewFloatConstant(node.Value, values.FloatNumeric)
		}
		return values.Double(node.Value)
	case uast.CharLiteralExpressionKind:
		return values.Char(node.(*uast.CharLiteralExpression).Value)
	case uast.StringLiteralExpressionKind:
		return values.String(node.(*uast.StringLiteralExpression).Value)
	case uast.BoolLiteralExpressionKind:
		return values.Boolean(node.(*uast.BoolLiteralExpression).Value)
	case uast.NullLiteralExpressionKind:
		return values.Null
	case uast.ReferenceExpressionKind:
		return self.reference(node.(*uast.ReferenceExpression), st)
	case uast.EnumEntryExpressionKind:
		return values.NewEnumEntryConstant(node.(*uast.EnumEntryExpression).Entry)
	case uast.ClassLiteralExpressionKind:
		return values.NewClassConstant(node.(*uast.ClassLiteralExpression).Type)
	case uast.GroupedExpressionKind:
		return self.evaluate(node.(*uast.GroupedExpression).Inner, st)
	case uast.PrefixExpressionKind:
		return self.prefixExpression(node.(*uast.PrefixExpression), st)
	case uast.PostfixExpressionKind:
		return self.postfixExpression(node.(*uast.PostfixExpression), st)
	case uast.InfixExpressionKind:
		return self.infixExpression(node.(*uast.InfixExpression), st)
	case uast.AssignExpressionKind:
		return self.assignExpression(node.(*uast.AssignExpression), st)
	case uast.CastExpressionKind:
		node := node.(*uast.CastExpression)
		return values.Cast(self.evaluate(node.Operand, st), node.Type)
	case uast.ConditionalExpressionKind:
		return self.conditionalExpression(node.(*uast.ConditionalExpression), st)
	case uast.CallExpressionKind:
		// Calls are not followed, but their arguments may assign.
		for _, argument := range node.(*uast.CallExpression).Arguments {
			self.evaluate(argument, st)
		}
		return values.Undetermined
	default:
		panic("A new expression kind was added without updating this code")
	}
}

func (self *TreeEvaluator) reference(node *uast.ReferenceExpression, st state.State) values.Value {
	if node.Variable == nil {
		panic(fmt.Sprintf("Unresolved reference `%s` at %s", node.Ident, node.Span()))
	}

	value, found := st.Lookup(node.Variable)
	if !found {
		return values.Undetermined
	}
	return value
}

//
// Prefix and postfix expressions
//

func (self *TreeEvaluator) prefixExpression(node *uast.PrefixExpression, st state.State) values.Value {
	operand := self.evaluate(node.Operand, st)
	result := values.Unary(node.Operator, operand)

	switch node.Operator {
	case uast.IncrementPrefixOperator, uast.DecrementPrefixOperator:
		return self.bind(assignmentTarget(node.Operand), result, st)
	default:
		return result
	}
}

func (self *TreeEvaluator) postfixExpression(node *uast.PostfixExpression, st state.State) values.Value {
	operand := self.evaluate(node.Operand, st)

	var result values.Value
	switch node.Operator {
	case uast.IncrementPostfixOperator:
		result = values.Inc(operand)
	case uast.DecrementPostfixOperator:
		result = values.Dec(operand)
	default:
		panic("A new postfix operator was added without updating this code")
	}

	self.bind(assignmentTarget(node.Operand), result, st)
	return operand
}

// Increment and decrement only apply to variables, the front end guarantees this.
func assignmentTarget(node uast.Expression) *uast.Variable {
	for {
		switch target := node.(type) {
		case *uast.GroupedExpression:
			node = target.Inner
		case *uast.ReferenceExpression:
			if target.Variable == nil {
				panic(fmt.Sprintf("Unresolved assignment target `%s`", target.Ident))
			}
			return target.Variable
		default:
			panic(fmt.Sprintf("Cannot assign to `%s`", node))
		}
	}
}

//
// Infix expressions
//

func (self *TreeEvaluator) infixExpression(node *uast.InfixExpression, st state.State) values.Value {
	switch node.Operator {
	case uast.LogicalAndInfixOperator, uast.LogicalOrInfixOperator:
		return self.shortCircuit(node, st)
	}

	lhs := self.evaluate(node.Lhs, st)
	rhs := self.evaluate(node.Rhs, st)

	result, err := values.Binary(node.Operator, lhs, rhs)
	if err != nil {
		self.fail(node, err)
	}
	return result
}

// The right operand of `&&` and `||` is only walked if the left one does not decide the result.
// If that is unknown, the right operand is walked on a forked state.
func (self *TreeEvaluator) shortCircuit(node *uast.InfixExpression, st state.State) values.Value {
	lhs := self.evaluate(node.Lhs, st)
	truth := values.ToTristate(lhs)

	combine := values.And
	decisive := values.TristateFalse
	if node.Operator == uast.LogicalOrInfixOperator {
		combine = values.Or
		decisive = values.TristateTrue
	}

	switch truth {
	case decisive:
		return combine(lhs, values.Undetermined)
	case values.Unknown:
		rhsBranch := st.Fork()
		rhs := self.evaluate(node.Rhs, rhsBranch)
		self.join(st, rhsBranch)
		return combine(lhs, rhs)
	default:
		return combine(lhs, self.evaluate(node.Rhs, st))
	}
}

//
// Assignments
//

func (self *TreeEvaluator) assignExpression(node *uast.AssignExpression, st state.State) values.Value {
	variable := assignmentTarget(node.Target)

	if node.Operator == uast.StdAssignOperatorKind {
		return self.bind(variable, self.evaluate(node.Rhs, st), st)
	}

	current := self.evaluate(node.Target, st)
	rhs := self.evaluate(node.Rhs, st)

	result, err := values.Binary(node.Operator.IntoInfixOperator(), current, rhs)
	if err != nil {
		self.fail(node, err)
	}

	// Compound assignments contain an implicit cast to the type of the variable.
	if _, isConstant := result.Constant(); isConstant && variable.Type.IsPrimitive() {
		result = values.Cast(result, variable.Type)
	}

	return self.bind(variable, result, st)
}

func (self *TreeEvaluator) conditionalExpression(node *uast.ConditionalExpression, st state.State) values.Value {
	condition := self.evaluate(node.Condition, st)

	switch values.ToTristate(condition) {
	case values.TristateTrue:
		return self.evaluate(node.Then, st)
	case values.TristateFalse:
		return self.evaluate(node.Else, st)
	default:
		thenBranch := st.Fork()
		thenValue := self.evaluate(node.Then, thenBranch)
		elseValue := self.evaluate(node.Else, st)
		self.join(st, thenBranch)
		return values.Merge(thenValue, elseValue)
	}
}
