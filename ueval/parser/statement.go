package parser

import (
	"fmt"

	"github.com/smarthome-go/ueval/ueval/errors"
	"github.com/smarthome-go/ueval/ueval/uast"
)

//
// Blocks
//

func (self *Parser) block() (*uast.Block, *errors.Error) {
	start := self.CurrentToken.Span.Start

	if err := self.expect(LCurly); err != nil {
		return nil, err
	}

	self.pushScope()
	defer self.popScope()

	statements := make([]uast.Statement, 0)
	for self.CurrentToken.Kind != RCurly && self.CurrentToken.Kind != EOF {
		statement, err := self.statement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, statement)
	}

	if err := self.expect(RCurly); err != nil {
		return nil, err
	}

	return &uast.Block{
		Statements: statements,
		Range:      start.Until(self.PreviousToken.Span.End, self.Filename),
	}, nil
}

//
// Statements
//

func (self *Parser) statement() (uast.Statement, *errors.Error) {
	switch self.CurrentToken.Kind {
	case LCurly:
		return self.block()
	case If:
		return self.ifStatement()
	case While:
		return self.whileStatement()
	case Return:
		return self.returnStatement()
	case Semicolon:
		// empty statement
		if err := self.next(); err != nil {
			return nil, err
		}
		return &uast.Block{Statements: make([]uast.Statement, 0), Range: self.PreviousToken.Span}, nil
	case Final:
		return self.declarationStatement()
	}

	if self.isDeclarationStart() {
		return self.declarationStatement()
	}
	return self.expressionStatement()
}

// A declaration starts with a primitive type keyword or with two consecutive identifiers (`Color c`).
// The primitive keyword case excludes class literals such as `int.class`.
func (self *Parser) isDeclarationStart() bool {
	next := self.peek().Kind

	switch {
	case self.CurrentToken.Kind.isPrimitiveType():
		return next != Dot
	case self.CurrentToken.Kind == Identifier:
		return next == Identifier
	default:
		return false
	}
}

// The body of an if or a while statement has its own scope even if it is not a block.
func (self *Parser) nestedStatement() (uast.Statement, *errors.Error) {
	self.pushScope()
	defer self.popScope()

	statement, err := self.statement()
	if err != nil {
		return nil, err
	}

	if statement.Kind() == uast.DeclarationStatementKind {
		self.nonCriticalErr(statement.Span(), "Declarations are not allowed here, use a block instead")
	}

	return statement, nil
}

func (self *Parser) declarationStatement() (uast.Statement, *errors.Error) {
	start := self.CurrentToken.Span.Start

	if self.CurrentToken.Kind == Final {
		if err := self.next(); err != nil {
			return nil, err
		}
	}

	typ, err := self.typ()
	if err != nil {
		return nil, err
	}

	if typ.Kind == uast.VoidTypeKind {
		self.nonCriticalErr(self.PreviousToken.Span, "Variables cannot have the type `void`")
	}

	if err := self.expect(Identifier); err != nil {
		return nil, err
	}
	ident := uast.NewSpannedIdent(self.PreviousToken.Value, self.PreviousToken.Span)

	var initializer uast.Expression
	if self.CurrentToken.Kind == Assign {
		if err := self.next(); err != nil {
			return nil, err
		}

		// The variable is not in scope inside of its own initializer.
		initializer, err = self.expression(0)
		if err != nil {
			return nil, err
		}
	}

	variable := uast.NewVariable(ident, typ, uast.LocalVariableOrigin)
	self.declare(variable)

	if err := self.expectRecoverable(Semicolon); err != nil {
		return nil, err
	}

	statement := &uast.DeclarationStatement{
		Variable: variable,
		Range:    start.Until(self.PreviousToken.Span.End, self.Filename),
	}
	if initializer != nil {
		statement.Initializer = initializer
	}

	return statement, nil
}

func (self *Parser) expressionStatement() (uast.Statement, *errors.Error) {
	start := self.CurrentToken.Span.Start

	expression, err := self.expression(0)
	if err != nil {
		return nil, err
	}

	switch expression.Kind() {
	case uast.AssignExpressionKind, uast.CallExpressionKind, uast.PostfixExpressionKind:
	case uast.PrefixExpressionKind:
		switch expression.(*uast.PrefixExpression).Operator {
		case uast.IncrementPrefixOperator, uast.DecrementPrefixOperator:
		default:
			self.nonCriticalErr(expression.Span(), fmt.Sprintf("`%s` is not a statement", expression))
		}
	default:
		self.nonCriticalErr(expression.Span(), fmt.Sprintf("`%s` is not a statement", expression))
	}

	if err := self.expectRecoverable(Semicolon); err != nil {
		return nil, err
	}

	return &uast.ExpressionStatement{
		Expression: expression,
		Range:      start.Until(self.PreviousToken.Span.End, self.Filename),
	}, nil
}

func (self *Parser) condition() (uast.Expression, *errors.Error) {
	if err := self.expect(LParen); err != nil {
		return nil, err
	}

	condition, err := self.expression(0)
	if err != nil {
		return nil, err
	}

	if err := self.expect(RParen); err != nil {
		return nil, err
	}

	return condition, nil
}

func (self *Parser) ifStatement() (uast.Statement, *errors.Error) {
	start := self.CurrentToken.Span.Start

	// skip the `if` keyword
	if err := self.next(); err != nil {
		return nil, err
	}

	condition, err := self.condition()
	if err != nil {
		return nil, err
	}

	then, err := self.nestedStatement()
	if err != nil {
		return nil, err
	}

	statement := &uast.IfStatement{
		Condition: condition,
		Then:      then,
	}

	if self.CurrentToken.Kind == Else {
		if err := self.next(); err != nil {
			return nil, err
		}

		elseBranch, err := self.nestedStatement()
		if err != nil {
			return nil, err
		}
		statement.Else = elseBranch
	}

	statement.Range = start.Until(self.PreviousToken.Span.End, self.Filename)
	return statement, nil
}

func (self *Parser) whileStatement() (uast.Statement, *errors.Error) {
	start := self.CurrentToken.Span.Start

	// skip the `while` keyword
	if err := self.next(); err != nil {
		return nil, err
	}

	condition, err := self.condition()
	if err != nil {
		return nil, err
	}

	body, err := self.nestedStatement()
	if err != nil {
		return nil, err
	}

	return &uast.WhileStatement{
		Condition: condition,
		Body:      body,
		Range:     start.Until(self.PreviousToken.Span.End, self.Filename),
	}, nil
}

func (self *Parser) returnStatement() (uast.Statement, *errors.Error) {
	start := self.CurrentToken.Span.Start

	// skip the `return` keyword
	if err := self.next(); err != nil {
		return nil, err
	}

	statement := &uast.ReturnStatement{}

	if self.CurrentToken.Kind != Semicolon {
		value, err := self.expression(0)
		if err != nil {
			return nil, err
		}
		statement.Value = value
	}

	if err := self.expectRecoverable(Semicolon); err != nil {
		return nil, err
	}

	statement.Range = start.Until(self.PreviousToken.Span.End, self.Filename)
	return statement, nil
}
