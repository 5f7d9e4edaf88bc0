package uast

// Children returns the direct subexpressions of an expression in source order.
func Children(expression Expression) []Expression {
	switch node := expression.(type) {
	case *GroupedExpression:
		return []Expression{node.Inner}
	case *PrefixExpression:
		return []Expression{node.Operand}
	case *PostfixExpression:
		return []Expression{node.Operand}
	case *InfixExpression:
		return []Expression{node.Lhs, node.Rhs}
	case *AssignExpression:
		return []Expression{node.Target, node.Rhs}
	case *CastExpression:
		return []Expression{node.Operand}
	case *ConditionalExpression:
		return []Expression{node.Condition, node.Then, node.Else}
	case *CallExpression:
		return node.Arguments
	default:
		return nil
	}
}

// InspectExpression visits the expression and its subexpressions depth-first.
// If `visit` returns false, the children of that expression are skipped.
func InspectExpression(expression Expression, visit func(Expression) bool) {
	if expression == nil || !visit(expression) {
		return
	}
	for _, child := range Children(expression) {
		InspectExpression(child, visit)
	}
}

// InspectStatement visits the statement, nested statements and all contained expressions.
// Either callback may be nil.
func InspectStatement(statement Statement, visitStatement func(Statement) bool, visitExpression func(Expression) bool) {
	if statement == nil {
		return
	}
	if visitStatement != nil && !visitStatement(statement) {
		return
	}

	expression := func(expression Expression) {
		if visitExpression != nil {
			InspectExpression(expression, visitExpression)
		}
	}

	switch node := statement.(type) {
	case *Block:
		for _, child := range node.Statements {
			InspectStatement(child, visitStatement, visitExpression)
		}
	case *DeclarationStatement:
		expression(node.Initializer)
	case *ExpressionStatement:
		expression(node.Expression)
	case *IfStatement:
		expression(node.Condition)
		InspectStatement(node.Then, visitStatement, visitExpression)
		InspectStatement(node.Else, visitStatement, visitExpression)
	case *WhileStatement:
		expression(node.Condition)
		InspectStatement(node.Body, visitStatement, visitExpression)
	case *ReturnStatement:
		expression(node.Value)
	default:
		panic("A new statement was added without updating this code")
	}
}
