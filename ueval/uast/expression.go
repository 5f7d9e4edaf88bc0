package uast

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/smarthome-go/ueval/ueval/errors"
)

type Expression interface {
	Kind() ExpressionKind
	Span() errors.Span
	String() string
}

type ExpressionKind uint8

const (
	IntLiteralExpressionKind ExpressionKind = iota
	FloatLiteralExpressionKind
	CharLiteralExpressionKind
	StringLiteralExpressionKind
	BoolLiteralExpressionKind
	NullLiteralExpressionKind
	ReferenceExpressionKind
	EnumEntryExpressionKind
	ClassLiteralExpressionKind
	GroupedExpressionKind
	PrefixExpressionKind
	PostfixExpressionKind
	InfixExpressionKind
	AssignExpressionKind
	CastExpressionKind
	ConditionalExpressionKind
	CallExpressionKind
)

func (self ExpressionKind) String() string {
	switch self {
	case IntLiteralExpressionKind:
		return "int-literal"
	case FloatLiteralExpressionKind:
		return "float-literal"
	case CharLiteralExpressionKind:
		return "char-literal"
	case StringLiteralExpressionKind:
		return "string-literal"
	case BoolLiteralExpressionKind:
		return "bool-literal"
	case NullLiteralExpressionKind:
		return "null-literal"
	case ReferenceExpressionKind:
		return "reference"
	case EnumEntryExpressionKind:
		return "enum-entry"
	case ClassLiteralExpressionKind:
		return "class-literal"
	case GroupedExpressionKind:
		return "grouped"
	case PrefixExpressionKind:
		return "prefix"
	case PostfixExpressionKind:
		return "postfix"
	case InfixExpressionKind:
		return "infix"
	case AssignExpressionKind:
		return "assign"
	case CastExpressionKind:
		return "cast"
	case ConditionalExpressionKind:
		return "conditional"
	case CallExpressionKind:
		return "call"
	default:
		panic("A new ExpressionKind was added without updating this code")
	}
}

// Whether the expression is a plain literal which cannot be simplified any further.
func (self ExpressionKind) IsLiteral() bool {
	switch self {
	case IntLiteralExpressionKind, FloatLiteralExpressionKind, CharLiteralExpressionKind,
		StringLiteralExpressionKind, BoolLiteralExpressionKind, NullLiteralExpressionKind,
		EnumEntryExpressionKind, ClassLiteralExpressionKind:
		return true
	default:
		return false
	}
}

//
// Int literal
//

type IntLiteralExpression struct {
	Value  int64
	IsLong bool
	Range  errors.Span
}

func (self *IntLiteralExpression) Kind() ExpressionKind { return IntLiteralExpressionKind }
func (self *IntLiteralExpression) Span() errors.Span    { return self.Range }
func (self *IntLiteralExpression) String() string {
	if self.IsLong {
		return fmt.Sprintf("%dL", self.Value)
	}
	return fmt.Sprint(self.Value)
}

//
// Float literal
//

type FloatLiteralExpression struct {
	Value   float64
	IsFloat bool
	Range   errors.Span
}

func (self *FloatLiteralExpression) Kind() ExpressionKind { return FloatLiteralExpressionKind }
func (self *FloatLiteralExpression) Span() errors.Span    { return self.Range }
func (self *FloatLiteralExpression) String() string {
	if self.IsFloat {
		return strconv.FormatFloat(self.Value, 'g', -1, 32) + "f"
	}
	display := strconv.FormatFloat(self.Value, 'g', -1, 64)
	if !strings.ContainsAny(display, ".eEnN") {
		display += ".0"
	}
	return display
}

//
// Char literal
//

type CharLiteralExpression struct {
	// A UTF-16 code unit.
	Value uint16
	Range errors.Span
}

func (self *CharLiteralExpression) Kind() ExpressionKind { return CharLiteralExpressionKind }
func (self *CharLiteralExpression) Span() errors.Span    { return self.Range }
func (self *CharLiteralExpression) String() string {
	return fmt.Sprintf("'%s'", string(utf16.Decode([]uint16{self.Value})))
}

//
// String literal
//

type StringLiteralExpression struct {
	Value string
	Range errors.Span
}

func (self *StringLiteralExpression) Kind() ExpressionKind { return StringLiteralExpressionKind }
func (self *StringLiteralExpression) Span() errors.Span    { return self.Range }
func (self *StringLiteralExpression) String() string       { return fmt.Sprintf("\"%s\"", self.Value) }

//
// Bool literal
//

type BoolLiteralExpression struct {
	Value bool
	Range errors.Span
}

func (self *BoolLiteralExpression) Kind() ExpressionKind { return BoolLiteralExpressionKind }
func (self *BoolLiteralExpression) Span() errors.Span    { return self.Range }
func (self *BoolLiteralExpression) String() string       { return fmt.Sprint(self.Value) }

//
// Null literal
//

type NullLiteralExpression struct{ Range errors.Span }

func (self *NullLiteralExpression) Kind() ExpressionKind { return NullLiteralExpressionKind }
func (self *NullLiteralExpression) Span() errors.Span    { return self.Range }
func (self *NullLiteralExpression) String() string       { return "null" }

//
// Reference expression
//

type ReferenceExpression struct {
	Ident SpannedIdent
	// The declaration this reference was resolved to by the front end.
	Variable *Variable
}

func (self *ReferenceExpression) Kind() ExpressionKind { return ReferenceExpressionKind }
func (self *ReferenceExpression) Span() errors.Span    { return self.Ident.span }
func (self *ReferenceExpression) String() string       { return self.Ident.ident }

//
// Enum entry expression
//

type EnumEntryExpression struct {
	Entry *EnumEntry
	Range errors.Span
}

func (self *EnumEntryExpression) Kind() ExpressionKind { return EnumEntryExpressionKind }
func (self *EnumEntryExpression) Span() errors.Span    { return self.Range }
func (self *EnumEntryExpression) String() string       { return self.Entry.String() }

//
// Class literal
//

type ClassLiteralExpression struct {
	Type  Type
	Range errors.Span
}

func (self *ClassLiteralExpression) Kind() ExpressionKind { return ClassLiteralExpressionKind }
func (self *ClassLiteralExpression) Span() errors.Span    { return self.Range }
func (self *ClassLiteralExpression) String() string {
	return fmt.Sprintf("%s.class", self.Type.SimpleName())
}

//
// Grouped expression
//

type GroupedExpression struct {
	Inner Expression
	Range errors.Span
}

func (self *GroupedExpression) Kind() ExpressionKind { return GroupedExpressionKind }
func (self *GroupedExpression) Span() errors.Span    { return self.Range }
func (self *GroupedExpression) String() string       { return fmt.Sprintf("(%s)", self.Inner) }

//
// Prefix expression
//

type PrefixExpression struct {
	Operator PrefixOperator
	Operand  Expression
	Range    errors.Span
}

func (self *PrefixExpression) Kind() ExpressionKind { return PrefixExpressionKind }
func (self *PrefixExpression) Span() errors.Span    { return self.Range }
func (self *PrefixExpression) String() string {
	return fmt.Sprintf("%s%s", self.Operator, self.Operand)
}

type PrefixOperator uint8

const (
	MinusPrefixOperator PrefixOperator = iota
	PlusPrefixOperator
	NegatePrefixOperator
	BitNotPrefixOperator
	IncrementPrefixOperator
	DecrementPrefixOperator
)

func (self PrefixOperator) String() string {
	switch self {
	case MinusPrefixOperator:
		return "-"
	case PlusPrefixOperator:
		return "+"
	case NegatePrefixOperator:
		return "!"
	case BitNotPrefixOperator:
		return "~"
	case IncrementPrefixOperator:
		return "++"
	case DecrementPrefixOperator:
		return "--"
	default:
		panic("A new prefix-operator was added without updating this code")
	}
}

//
// Postfix expression
//

type PostfixExpression struct {
	Operand  Expression
	Operator PostfixOperator
	Range    errors.Span
}

func (self *PostfixExpression) Kind() ExpressionKind { return PostfixExpressionKind }
func (self *PostfixExpression) Span() errors.Span    { return self.Range }
func (self *PostfixExpression) String() string {
	return fmt.Sprintf("%s%s", self.Operand, self.Operator)
}

type PostfixOperator uint8

const (
	IncrementPostfixOperator PostfixOperator = iota
	DecrementPostfixOperator
)

func (self PostfixOperator) String() string {
	switch self {
	case IncrementPostfixOperator:
		return "++"
	case DecrementPostfixOperator:
		return "--"
	default:
		panic("A new postfix-operator was added without updating this code")
	}
}

//
// Infix expression
//

type InfixExpression struct {
	Lhs      Expression
	Operator InfixOperator
	Rhs      Expression
	Range    errors.Span
}

func (self *InfixExpression) Kind() ExpressionKind { return InfixExpressionKind }
func (self *InfixExpression) Span() errors.Span    { return self.Range }
func (self *InfixExpression) String() string {
	return fmt.Sprintf("%s %s %s", self.Lhs, self.Operator, self.Rhs)
}

type InfixOperator uint8

const (
	PlusInfixOperator InfixOperator = iota
	MinusInfixOperator
	MultiplyInfixOperator
	DivideInfixOperator
	ModuloInfixOperator
	ShiftLeftInfixOperator
	ShiftRightInfixOperator
	UnsignedShiftRightInfixOperator
	BitOrInfixOperator
	BitAndInfixOperator
	BitXorInfixOperator
	LogicalOrInfixOperator
	LogicalAndInfixOperator
	EqualInfixOperator
	NotEqualInfixOperator
	LessThanInfixOperator
	LessThanEqualInfixOperator
	GreaterThanInfixOperator
	GreaterThanEqualInfixOperator
)

func (self InfixOperator) String() string {
	switch self {
	case PlusInfixOperator:
		return "+"
	case MinusInfixOperator:
		return "-"
	case MultiplyInfixOperator:
		return "*"
	case DivideInfixOperator:
		return "/"
	case ModuloInfixOperator:
		return "%"
	case ShiftLeftInfixOperator:
		return "<<"
	case ShiftRightInfixOperator:
		return ">>"
	case UnsignedShiftRightInfixOperator:
		return ">>>"
	case BitOrInfixOperator:
		return "|"
	case BitAndInfixOperator:
		return "&"
	case BitXorInfixOperator:
		return "^"
	case LogicalOrInfixOperator:
		return "||"
	case LogicalAndInfixOperator:
		return "&&"
	case EqualInfixOperator:
		return "=="
	case NotEqualInfixOperator:
		return "!="
	case LessThanInfixOperator:
		return "<"
	case LessThanEqualInfixOperator:
		return "<="
	case GreaterThanInfixOperator:
		return ">"
	case GreaterThanEqualInfixOperator:
		return ">="
	default:
		panic("A new infix-operator was added without updating this code")
	}
}

//
// Assign expression
//

type AssignExpression struct {
	Target   *ReferenceExpression
	Operator AssignOperator
	Rhs      Expression
	Range    errors.Span
}

func (self *AssignExpression) Kind() ExpressionKind { return AssignExpressionKind }
func (self *AssignExpression) Span() errors.Span    { return self.Range }
func (self *AssignExpression) String() string {
	return fmt.Sprintf("%s %s %s", self.Target, self.Operator, self.Rhs)
}

type AssignOperator uint8

const (
	StdAssignOperatorKind AssignOperator = iota
	PlusAssignOperatorKind
	MinusAssignOperatorKind
	MultiplyAssignOperatorKind
	DivideAssignOperatorKind
	ModuloAssignOperatorKind
	ShiftLeftAssignOperatorKind
	ShiftRightAssignOperatorKind
	UnsignedShiftRightAssignOperatorKind
	BitOrAssignOperatorKind
	BitAndAssignOperatorKind
	BitXorAssignOperatorKind
)

func (self AssignOperator) String() string {
	switch self {
	case StdAssignOperatorKind:
		return "="
	case PlusAssignOperatorKind:
		return "+="
	case MinusAssignOperatorKind:
		return "-="
	case MultiplyAssignOperatorKind:
		return "*="
	case DivideAssignOperatorKind:
		return "/="
	case ModuloAssignOperatorKind:
		return "%="
	case ShiftLeftAssignOperatorKind:
		return "<<="
	case ShiftRightAssignOperatorKind:
		return ">>="
	case UnsignedShiftRightAssignOperatorKind:
		return ">>>="
	case BitOrAssignOperatorKind:
		return "|="
	case BitAndAssignOperatorKind:
		return "&="
	case BitXorAssignOperatorKind:
		return "^="
	default:
		panic("A new assign-operator was introduced without updating this code")
	}
}

func (self AssignOperator) IntoInfixOperator() InfixOperator {
	switch self {
	case PlusAssignOperatorKind:
		return PlusInfixOperator
	case MinusAssignOperatorKind:
		return MinusInfixOperator
	case MultiplyAssignOperatorKind:
		return MultiplyInfixOperator
	case DivideAssignOperatorKind:
		return DivideInfixOperator
	case ModuloAssignOperatorKind:
		return ModuloInfixOperator
	case ShiftLeftAssignOperatorKind:
		return ShiftLeftInfixOperator
	case ShiftRightAssignOperatorKind:
		return ShiftRightInfixOperator
	case UnsignedShiftRightAssignOperatorKind:
		return UnsignedShiftRightInfixOperator
	case BitOrAssignOperatorKind:
		return BitOrInfixOperator
	case BitAndAssignOperatorKind:
		return BitAndInfixOperator
	case BitXorAssignOperatorKind:
		return BitXorInfixOperator
	default:
		panic("Not supported")
	}
}

//
// Cast expression
//

type CastExpression struct {
	Type    Type
	Operand Expression
	Range   errors.Span
}

func (self *CastExpression) Kind() ExpressionKind { return CastExpressionKind }
func (self *CastExpression) Span() errors.Span    { return self.Range }
func (self *CastExpression) String() string {
	return fmt.Sprintf("(%s)%s", self.Type.SimpleName(), self.Operand)
}

//
// Conditional expression
//

type ConditionalExpression struct {
	Condition Expression
	Then      Expression
	Else      Expression
	Range     errors.Span
}

func (self *ConditionalExpression) Kind() ExpressionKind { return ConditionalExpressionKind }
func (self *ConditionalExpression) Span() errors.Span    { return self.Range }
func (self *ConditionalExpression) String() string {
	return fmt.Sprintf("%s ? %s : %s", self.Condition, self.Then, self.Else)
}

//
// Call expression
//

type CallExpression struct {
	Callee    SpannedIdent
	Arguments []Expression
	Range     errors.Span
}

func (self *CallExpression) Kind() ExpressionKind { return CallExpressionKind }
func (self *CallExpression) Span() errors.Span    { return self.Range }
func (self *CallExpression) String() string {
	args := make([]string, 0, len(self.Arguments))
	for _, arg := range self.Arguments {
		args = append(args, arg.String())
	}
	return fmt.Sprintf("%s(%s)", self.Callee, strings.Join(args, ", "))
}
