package parser

import (
	"fmt"

	"github.com/smarthome-go/ueval/ueval/errors"
	"github.com/smarthome-go/ueval/ueval/parser/util"
	"github.com/smarthome-go/ueval/ueval/uast"
)

func (self *Parser) nonCriticalErr(span errors.Span, message string) {
	self.Errors = append(self.Errors, *errors.NewError(
		span,
		message,
		errors.SyntaxError,
	))
}

func (self *Parser) expect(expected TokenKind) *errors.Error {
	if self.CurrentToken.Kind != expected {
		return errors.NewSyntaxError(
			self.CurrentToken.Span,
			fmt.Sprintf("Expected '%s', found '%s'", expected, self.CurrentToken.Kind),
		)
	}

	if err := self.next(); err != nil {
		return err
	}

	return nil
}

func (self *Parser) expectRecoverable(expected TokenKind) *errors.Error {
	if self.CurrentToken.Kind != expected {
		self.nonCriticalErr(
			self.CurrentToken.Span,
			fmt.Sprintf("Expected '%s', found '%s'", expected, self.CurrentToken.Kind),
		)
		return nil
	}

	if err := self.next(); err != nil {
		return err
	}

	return nil
}

func (self Parser) expectedOneOfErr(expected []TokenKind) *errors.Error {
	message := ""

	if len(expected) == 2 {
		message = fmt.Sprintf("either '%s' or '%s'", expected[0], expected[1])
	} else {
		for idx, expectedItem := range expected {
			if idx == len(expected)-1 {
				message += ", or "
			} else if message != "" {
				message += ", "
			}
			message += fmt.Sprintf("'%s'", expectedItem)
		}
	}

	return errors.NewSyntaxError(
		self.CurrentToken.Span,
		fmt.Sprintf("Expected %s, found '%s'", message, self.CurrentToken.Kind),
	)
}

//
// Scopes
//

type scope map[string]*uast.Variable

func (self *Parser) pushScope() {
	self.scopes = append(self.scopes, make(scope))
}

func (self *Parser) popScope() {
	self.scopes = self.scopes[:len(self.scopes)-1]
}

// Local variables may not shadow other locals or parameters of the same method.
func (self *Parser) declare(variable *uast.Variable) {
	if previous, exists := self.lookupVariable(variable.Name()); exists {
		self.Errors = append(self.Errors, *errors.NewReferenceError(
			variable.Ident.Span(),
			fmt.Sprintf("Variable `%s` is already declared in this method", variable.Name()),
			fmt.Sprintf("`%s` was previously declared at %s", previous.Name(), previous.Ident.Span()),
		))
	}
	self.scopes[len(self.scopes)-1][variable.Name()] = variable
}

func (self *Parser) lookupVariable(name string) (*uast.Variable, bool) {
	for idx := len(self.scopes) - 1; idx >= 0; idx-- {
		if variable, found := self.scopes[idx][name]; found {
			return variable, true
		}
	}
	return nil, false
}

// Resolves a name to its declaration, an unknown name is reported as a recoverable error.
func (self *Parser) resolve(ident uast.SpannedIdent) *uast.Variable {
	if variable, found := self.lookupVariable(ident.Ident()); found {
		return variable
	}

	notes := make([]string, 0)
	if suggestion, found := util.Suggest(ident.Ident(), self.visibleNames()); found {
		notes = append(notes, fmt.Sprintf("Did you mean `%s`?", suggestion))
	}
	if self.isTypeName(ident.Ident()) {
		notes = append(notes, fmt.Sprintf("`%s` is a type, not a value", ident))
	}

	self.Errors = append(self.Errors, *errors.NewReferenceError(
		ident.Span(),
		fmt.Sprintf("Use of undefined variable `%s`", ident),
		notes...,
	))
	return nil
}

func (self *Parser) visibleNames() []string {
	names := make([]string, 0)
	for _, scope := range self.scopes {
		for name := range scope {
			names = append(names, name)
		}
	}
	return names
}

// Increment, decrement and assignments require a variable as their target.
func (self *Parser) assignmentTarget(expression uast.Expression) (*uast.ReferenceExpression, bool) {
	for {
		switch target := expression.(type) {
		case *uast.GroupedExpression:
			expression = target.Inner
		case *uast.ReferenceExpression:
			return target, true
		default:
			return nil, false
		}
	}
}
