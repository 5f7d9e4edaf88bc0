package uast

import (
	"fmt"
	"strings"

	"github.com/smarthome-go/ueval/ueval/errors"
)

type Statement interface {
	Kind() StatementKind
	Span() errors.Span
	String() string
}

type StatementKind uint8

const (
	BlockStatementKind StatementKind = iota
	DeclarationStatementKind
	ExpressionStatementKind
	IfStatementKind
	WhileStatementKind
	ReturnStatementKind
)

func (self StatementKind) String() string {
	switch self {
	case BlockStatementKind:
		return "block"
	case DeclarationStatementKind:
		return "declaration"
	case ExpressionStatementKind:
		return "expression"
	case IfStatementKind:
		return "if"
	case WhileStatementKind:
		return "while"
	case ReturnStatementKind:
		return "return"
	default:
		panic("A new StatementKind was added without updating this code")
	}
}

//
// Block
//

type Block struct {
	Statements []Statement
	Range      errors.Span
}

func (self *Block) Kind() StatementKind { return BlockStatementKind }
func (self *Block) Span() errors.Span   { return self.Range }
func (self *Block) String() string {
	if len(self.Statements) == 0 {
		return "{}"
	}

	contents := make([]string, 0, len(self.Statements))
	for _, stmt := range self.Statements {
		contents = append(contents, strings.ReplaceAll(stmt.String(), "\n", "\n    "))
	}

	return fmt.Sprintf("{\n    %s\n}", strings.Join(contents, "\n    "))
}

//
// Declaration statement
//

type DeclarationStatement struct {
	Variable *Variable
	// Nil if the variable is declared without a value.
	Initializer Expression
	Range       errors.Span
}

func (self *DeclarationStatement) Kind() StatementKind { return DeclarationStatementKind }
func (self *DeclarationStatement) Span() errors.Span   { return self.Range }
func (self *DeclarationStatement) String() string {
	if self.Initializer == nil {
		return fmt.Sprintf("%s;", self.Variable)
	}
	return fmt.Sprintf("%s = %s;", self.Variable, self.Initializer)
}

//
// Expression statement
//

type ExpressionStatement struct {
	Expression Expression
	Range      errors.Span
}

func (self *ExpressionStatement) Kind() StatementKind { return ExpressionStatementKind }
func (self *ExpressionStatement) Span() errors.Span   { return self.Range }
func (self *ExpressionStatement) String() string      { return fmt.Sprintf("%s;", self.Expression) }

//
// If statement
//

type IfStatement struct {
	Condition Expression
	Then      Statement
	Else      Statement
	Range     errors.Span
}

func (self *IfStatement) Kind() StatementKind { return IfStatementKind }
func (self *IfStatement) Span() errors.Span   { return self.Range }
func (self *IfStatement) String() string {
	if self.Else == nil {
		return fmt.Sprintf("if (%s) %s", self.Condition, self.Then)
	}
	return fmt.Sprintf("if (%s) %s else %s", self.Condition, self.Then, self.Else)
}

//
// While statement
//

type WhileStatement struct {
	Condition Expression
	Body      Statement
	Range     errors.Span
}

func (self *WhileStatement) Kind() StatementKind { return WhileStatementKind }
func (self *WhileStatement) Span() errors.Span   { return self.Range }
func (self *WhileStatement) String() string {
	return fmt.Sprintf("while (%s) %s", self.Condition, self.Body)
}

//
// Return statement
//

type ReturnStatement struct {
	// Nil for a bare `return;`.
	Value Expression
	Range errors.Span
}

func (self *ReturnStatement) Kind() StatementKind { return ReturnStatementKind }
func (self *ReturnStatement) Span() errors.Span   { return self.Range }
func (self *ReturnStatement) String() string {
	if self.Value == nil {
		return "return;"
	}
	return fmt.Sprintf("return %s;", self.Value)
}
