package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/smarthome-go/ueval/ueval/errors"
	"github.com/smarthome-go/ueval/ueval/parser/util"
	"github.com/smarthome-go/ueval/ueval/uast"
)

//
//	Expression
//

func (self *Parser) expression(prec uint8) (uast.Expression, *errors.Error) {
	startLoc := self.CurrentToken.Span.Start

	lhs, err := self.primary()
	if err != nil {
		return nil, err
	}

	for left, right := self.CurrentToken.Kind.prec(); left > prec; left, right = self.CurrentToken.Kind.prec() {
		switch self.CurrentToken.Kind {
		case Plus, Minus, Multiply, Divide, Modulo,
			ShiftLeft, ShiftRight, UnsignedShiftRight,
			BitOr, BitAnd, BitXor, Or, And,
			Equal, NotEqual, LessThan, LessThanEqual,
			GreaterThan, GreaterThanEqual:
			lhs, err = self.infixExpression(startLoc, lhs, right)
		case Assign, PlusAssign, MinusAssign, MultiplyAssign,
			DivideAssign, ModuloAssign, ShiftLeftAssign,
			ShiftRightAssign, UnsignedShiftRightAssign,
			BitOrAssign, BitAndAssign, BitXorAssign:
			lhs, err = self.assignExpression(startLoc, lhs, right)
		case QuestionMark:
			lhs, err = self.conditionalExpression(startLoc, lhs, right)
		case Increment, Decrement:
			lhs, err = self.postfixExpression(startLoc, lhs)
		default:
			panic(fmt.Sprintf("A binding power was assigned to `%s` without updating this code", self.CurrentToken.Kind))
		}

		if err != nil {
			return nil, err
		}
	}

	return lhs, nil
}

func (self *Parser) primary() (uast.Expression, *errors.Error) {
	switch self.CurrentToken.Kind {
	case Int, Long:
		return self.intLiteral(false)
	case Float, Double:
		return self.floatLiteral()
	case Char:
		if err := self.next(); err != nil {
			return nil, err
		}
		unit, _ := strconv.ParseUint(self.PreviousToken.Value, 10, 16)
		return &uast.CharLiteralExpression{
			Value: uint16(unit),
			Range: self.PreviousToken.Span,
		}, nil
	case String:
		if err := self.next(); err != nil {
			return nil, err
		}
		return &uast.StringLiteralExpression{
			Value: self.PreviousToken.Value,
			Range: self.PreviousToken.Span,
		}, nil
	case True, False:
		if err := self.next(); err != nil {
			return nil, err
		}
		return &uast.BoolLiteralExpression{
			Value: self.PreviousToken.Kind == True,
			Range: self.PreviousToken.Span,
		}, nil
	case Null:
		if err := self.next(); err != nil {
			return nil, err
		}
		return &uast.NullLiteralExpression{Range: self.PreviousToken.Span}, nil
	case Identifier:
		return self.identExpression()
	case LParen:
		return self.castOrGroupedExpression()
	case Minus, Plus, Not, BitNot, Increment, Decrement:
		return self.prefixExpression()
	}

	if self.CurrentToken.Kind.isPrimitiveType() {
		return self.primitiveClassLiteral()
	}

	return nil, errors.NewSyntaxError(
		self.CurrentToken.Span,
		fmt.Sprintf("Expected an expression, found '%s'", self.CurrentToken.Kind),
	)
}

//
// Number literals
//

// The int literal `2147483648` is only valid as the operand of unary minus.
func (self *Parser) intLiteral(negated bool) (uast.Expression, *errors.Error) {
	if err := self.next(); err != nil {
		return nil, err
	}
	token := self.PreviousToken
	isLong := token.Kind == Long

	parsed, err := strconv.ParseUint(token.Value, 0, 64)
	if err != nil {
		return nil, errors.NewSyntaxError(token.Span, fmt.Sprintf("Malformed number literal `%s`", token.Value))
	}

	// Hexadecimal and octal literals may describe negative numbers in two's complement.
	isDecimal := token.Value == "0" || !strings.HasPrefix(token.Value, "0")

	limit := uint64(math.MaxUint32)
	if isLong {
		limit = math.MaxUint64
	}
	if isDecimal {
		limit = uint64(math.MaxInt32)
		if isLong {
			limit = uint64(math.MaxInt64)
		}
		if negated {
			limit++
		}
	}

	if parsed > limit {
		return nil, errors.NewSyntaxError(token.Span, fmt.Sprintf("Number literal `%s` is out of range", token.Value))
	}

	value := int64(parsed)
	if !isLong {
		value = int64(int32(uint32(parsed)))
	}

	return &uast.IntLiteralExpression{
		Value:  value,
		IsLong: isLong,
		Range:  token.Span,
	}, nil
}

func (self *Parser) floatLiteral() (uast.Expression, *errors.Error) {
	if err := self.next(); err != nil {
		return nil, err
	}
	token := self.PreviousToken
	isFloat := token.Kind == Float

	bitSize := 64
	if isFloat {
		bitSize = 32
	}

	value, err := strconv.ParseFloat(token.Value, bitSize)
	if err != nil {
		return nil, errors.NewSyntaxError(token.Span, fmt.Sprintf("Floating-point literal `%s` is out of range", token.Value))
	}

	return &uast.FloatLiteralExpression{
		Value:   value,
		IsFloat: isFloat,
		Range:   token.Span,
	}, nil
}

//
// Identifiers, calls, enum entries and class literals
//

func (self *Parser) identExpression() (uast.Expression, *errors.Error) {
	startLoc := self.CurrentToken.Span.Start
	ident := uast.NewSpannedIdent(self.CurrentToken.Value, self.CurrentToken.Span)

	if err := self.next(); err != nil {
		return nil, err
	}

	switch {
	case self.CurrentToken.Kind == LParen:
		return self.callExpression(startLoc, ident)
	case self.CurrentToken.Kind == Dot && self.peek().Kind == Class:
		return self.classLiteral(startLoc, self.referenceType(ident.Ident()))
	case self.CurrentToken.Kind == Dot:
		if enum, isEnum := self.enums[ident.Ident()]; isEnum {
			return self.enumEntryExpression(startLoc, enum)
		}
	}

	return &uast.ReferenceExpression{
		Ident:    ident,
		Variable: self.resolve(ident),
	}, nil
}

func (self *Parser) callExpression(startLoc errors.Location, callee uast.SpannedIdent) (uast.Expression, *errors.Error) {
	// skip the opening parenthesis
	if err := self.next(); err != nil {
		return nil, err
	}

	arguments := make([]uast.Expression, 0)
	for self.CurrentToken.Kind != RParen {
		argument, err := self.expression(0)
		if err != nil {
			return nil, err
		}
		arguments = append(arguments, argument)

		if self.CurrentToken.Kind == RParen {
			break
		}
		if self.CurrentToken.Kind != Comma {
			return nil, self.expectedOneOfErr([]TokenKind{Comma, RParen})
		}
		if err := self.next(); err != nil {
			return nil, err
		}
	}

	if err := self.expect(RParen); err != nil {
		return nil, err
	}

	return &uast.CallExpression{
		Callee:    callee,
		Arguments: arguments,
		Range:     startLoc.Until(self.PreviousToken.Span.End, self.Filename),
	}, nil
}

func (self *Parser) enumEntryExpression(startLoc errors.Location, enum *uast.EnumDeclaration) (uast.Expression, *errors.Error) {
	// skip the dot
	if err := self.next(); err != nil {
		return nil, err
	}

	if err := self.expect(Identifier); err != nil {
		return nil, err
	}
	name := self.PreviousToken.Value

	entry, found := enum.Entry(name)
	if !found {
		candidates := make([]string, 0, len(enum.Entries))
		for _, entry := range enum.Entries {
			candidates = append(candidates, entry.Name())
		}

		notes := make([]string, 0)
		if suggestion, found := util.Suggest(name, candidates); found {
			notes = append(notes, fmt.Sprintf("Did you mean `%s`?", suggestion))
		}

		return nil, errors.NewReferenceError(
			self.PreviousToken.Span,
			fmt.Sprintf("Enum `%s` has no entry named `%s`", enum.Ident, name),
			notes...,
		)
	}

	return &uast.EnumEntryExpression{
		Entry: entry,
		Range: startLoc.Until(self.PreviousToken.Span.End, self.Filename),
	}, nil
}

// The current token is the dot in front of the `class` keyword.
func (self *Parser) classLiteral(startLoc errors.Location, typ uast.Type) (uast.Expression, *errors.Error) {
	if err := self.expect(Dot); err != nil {
		return nil, err
	}
	if err := self.expect(Class); err != nil {
		return nil, err
	}

	return &uast.ClassLiteralExpression{
		Type:  typ,
		Range: startLoc.Until(self.PreviousToken.Span.End, self.Filename),
	}, nil
}

func (self *Parser) primitiveClassLiteral() (uast.Expression, *errors.Error) {
	startLoc := self.CurrentToken.Span.Start
	typ := self.CurrentToken.Kind.asPrimitiveType()

	if err := self.next(); err != nil {
		return nil, err
	}

	if self.CurrentToken.Kind != Dot {
		return nil, errors.NewSyntaxError(
			self.PreviousToken.Span,
			fmt.Sprintf("Expected an expression, found type `%s`", typ),
		)
	}

	return self.classLiteral(startLoc, typ)
}

//
// Grouped expressions and casts
//

func (self *Parser) castOrGroupedExpression() (uast.Expression, *errors.Error) {
	startLoc := self.CurrentToken.Span.Start

	if self.isCastStart() {
		return self.castExpression(startLoc)
	}

	// skip the opening parenthesis
	if err := self.next(); err != nil {
		return nil, err
	}

	inner, err := self.expression(0)
	if err != nil {
		return nil, err
	}

	if err := self.expect(RParen); err != nil {
		return nil, err
	}

	return &uast.GroupedExpression{
		Inner: inner,
		Range: startLoc.Until(self.PreviousToken.Span.End, self.Filename),
	}, nil
}

// The current token is an opening parenthesis.
// `(int) x` is always a cast, `(Name) x` only if `Name` is not a variable.
func (self *Parser) isCastStart() bool {
	lexer := self.Lexer

	typeToken, err := lexer.NextToken()
	if err != nil {
		return false
	}
	closing, err := lexer.NextToken()
	if err != nil || closing.Kind != RParen {
		return false
	}

	if typeToken.Kind.isPrimitiveType() {
		return true
	}
	if typeToken.Kind != Identifier {
		return false
	}
	if _, isVariable := self.lookupVariable(typeToken.Value); isVariable {
		return false
	}

	operand, err := lexer.NextToken()
	return err == nil && operand.Kind.startsCastOperand()
}

func (self *Parser) castExpression(startLoc errors.Location) (uast.Expression, *errors.Error) {
	// skip the opening parenthesis
	if err := self.next(); err != nil {
		return nil, err
	}

	typ, err := self.typ()
	if err != nil {
		return nil, err
	}

	if err := self.expect(RParen); err != nil {
		return nil, err
	}

	operand, err := self.expression(prefixPrec)
	if err != nil {
		return nil, err
	}

	return &uast.CastExpression{
		Type:    typ,
		Operand: operand,
		Range:   startLoc.Until(self.PreviousToken.Span.End, self.Filename),
	}, nil
}

//
// Operators
//

func (self *Parser) prefixExpression() (uast.Expression, *errors.Error) {
	startLoc := self.CurrentToken.Span.Start
	operator := self.CurrentToken.Kind

	if err := self.next(); err != nil {
		return nil, err
	}

	var operand uast.Expression
	var err *errors.Error

	if operator == Minus && (self.CurrentToken.Kind == Int || self.CurrentToken.Kind == Long) {
		operand, err = self.intLiteral(true)
	} else {
		operand, err = self.expression(prefixPrec)
	}
	if err != nil {
		return nil, err
	}

	if operator == Increment || operator == Decrement {
		self.checkAssignmentTarget(operand)
	}

	return &uast.PrefixExpression{
		Operator: operator.asPrefixOperator(),
		Operand:  operand,
		Range:    startLoc.Until(self.PreviousToken.Span.End, self.Filename),
	}, nil
}

func (self *Parser) postfixExpression(startLoc errors.Location, lhs uast.Expression) (uast.Expression, *errors.Error) {
	operator := self.CurrentToken.Kind
	self.checkAssignmentTarget(lhs)

	if err := self.next(); err != nil {
		return nil, err
	}

	return &uast.PostfixExpression{
		Operand:  lhs,
		Operator: operator.asPostfixOperator(),
		Range:    startLoc.Until(self.PreviousToken.Span.End, self.Filename),
	}, nil
}

func (self *Parser) checkAssignmentTarget(expression uast.Expression) {
	if _, isVariable := self.assignmentTarget(expression); !isVariable {
		self.nonCriticalErr(expression.Span(), fmt.Sprintf("Cannot assign to `%s`: it is not a variable", expression))
	}
}

func (self *Parser) infixExpression(startLoc errors.Location, lhs uast.Expression, prec uint8) (uast.Expression, *errors.Error) {
	operator := self.CurrentToken.Kind.asInfixOperator()

	if err := self.next(); err != nil {
		return nil, err
	}

	rhs, err := self.expression(prec)
	if err != nil {
		return nil, err
	}

	return &uast.InfixExpression{
		Lhs:      lhs,
		Operator: operator,
		Rhs:      rhs,
		Range:    startLoc.Until(self.PreviousToken.Span.End, self.Filename),
	}, nil
}

func (self *Parser) assignExpression(startLoc errors.Location, lhs uast.Expression, prec uint8) (uast.Expression, *errors.Error) {
	target, isVariable := self.assignmentTarget(lhs)
	if !isVariable {
		return nil, errors.NewSyntaxError(
			lhs.Span(),
			fmt.Sprintf("Cannot assign to `%s`: it is not a variable", lhs),
		)
	}

	operator := self.CurrentToken.Kind.asAssignOperator()

	if err := self.next(); err != nil {
		return nil, err
	}

	rhs, err := self.expression(prec)
	if err != nil {
		return nil, err
	}

	return &uast.AssignExpression{
		Target:   target,
		Operator: operator,
		Rhs:      rhs,
		Range:    startLoc.Until(self.PreviousToken.Span.End, self.Filename),
	}, nil
}

func (self *Parser) conditionalExpression(startLoc errors.Location, condition uast.Expression, prec uint8) (uast.Expression, *errors.Error) {
	// skip the question mark
	if err := self.next(); err != nil {
		return nil, err
	}

	then, err := self.expression(0)
	if err != nil {
		return nil, err
	}

	if err := self.expect(Colon); err != nil {
		return nil, err
	}

	elseBranch, err := self.expression(prec)
	if err != nil {
		return nil, err
	}

	return &uast.ConditionalExpression{
		Condition: condition,
		Then:      then,
		Else:      elseBranch,
		Range:     startLoc.Until(self.PreviousToken.Span.End, self.Filename),
	}, nil
}
