package parser

import (
	"fmt"

	"github.com/smarthome-go/ueval/ueval/errors"
	"github.com/smarthome-go/ueval/ueval/uast"
)

type Token struct {
	Kind  TokenKind
	Value string
	Span  errors.Span
}

type TokenKind uint8

const (
	Unknown TokenKind = iota
	EOF

	Semicolon    // ;
	Colon        // :
	Comma        // ,
	Dot          // .
	QuestionMark // ?
	LParen       // (
	RParen       // )
	LCurly       // {
	RCurly       // }

	Or     // ||
	And    // &&
	BitOr  // |
	BitAnd // &
	BitXor // ^
	BitNot // ~
	Not    // !

	Equal            // ==
	NotEqual         // !=
	LessThan         // <
	LessThanEqual    // <=
	GreaterThan      // >
	GreaterThanEqual // >=

	ShiftLeft          // <<
	ShiftRight         // >>
	UnsignedShiftRight // >>>

	Plus      // +
	Minus     // -
	Multiply  // *
	Divide    // /
	Modulo    // %
	Increment // ++
	Decrement // --

	Assign                   // =
	PlusAssign               // +=
	MinusAssign              // -=
	MultiplyAssign           // *=
	DivideAssign             // /=
	ModuloAssign             // %=
	ShiftLeftAssign          // <<=
	ShiftRightAssign         // >>=
	UnsignedShiftRightAssign // >>>=
	BitOrAssign              // |=
	BitAndAssign             // &=
	BitXorAssign             // ^=

	Package // package
	Enum    // enum
	Final   // final
	If      // if
	Else    // else
	While   // while
	Return  // return
	Class   // class
	True    // true
	False   // false
	Null    // null

	ByteKeyword    // byte
	ShortKeyword   // short
	IntKeyword     // int
	LongKeyword    // long
	FloatKeyword   // float
	DoubleKeyword  // double
	CharKeyword    // char
	BooleanKeyword // boolean
	VoidKeyword    // void

	String     // "foo" (the value excludes the quotes and has escapes resolved)
	Char       // 'a' (the value is the UTF-16 code unit in decimal)
	Int        // 42
	Long       // 42L (the value excludes the suffix)
	Float      // 1.5f (the value excludes the suffix)
	Double     // 1.5
	Identifier // foobar
)

// Operators and their token kinds, matched longest first by the lexer.
var operators = map[string]TokenKind{
	";":    Semicolon,
	":":    Colon,
	",":    Comma,
	".":    Dot,
	"?":    QuestionMark,
	"(":    LParen,
	")":    RParen,
	"{":    LCurly,
	"}":    RCurly,
	"||":   Or,
	"&&":   And,
	"|":    BitOr,
	"&":    BitAnd,
	"^":    BitXor,
	"~":    BitNot,
	"!":    Not,
	"==":   Equal,
	"!=":   NotEqual,
	"<":    LessThan,
	"<=":   LessThanEqual,
	">":    GreaterThan,
	">=":   GreaterThanEqual,
	"<<":   ShiftLeft,
	">>":   ShiftRight,
	">>>":  UnsignedShiftRight,
	"+":    Plus,
	"-":    Minus,
	"*":    Multiply,
	"/":    Divide,
	"%":    Modulo,
	"++":   Increment,
	"--":   Decrement,
	"=":    Assign,
	"+=":   PlusAssign,
	"-=":   MinusAssign,
	"*=":   MultiplyAssign,
	"/=":   DivideAssign,
	"%=":   ModuloAssign,
	"<<=":  ShiftLeftAssign,
	">>=":  ShiftRightAssign,
	">>>=": UnsignedShiftRightAssign,
	"|=":   BitOrAssign,
	"&=":   BitAndAssign,
	"^=":   BitXorAssign,
}

const longestOperator = 4

func newToken(kind TokenKind, value string, span errors.Span) Token {
	return Token{
		Kind:  kind,
		Value: value,
		Span:  span,
	}
}

func unknownToken(location errors.Location) Token {
	return newToken(Unknown, "", errors.Span{Start: location, End: location})
}

func (self TokenKind) String() string {
	switch self {
	case Unknown:
		return "unknown"
	case EOF:
		return "EOF"
	case String:
		return "string"
	case Char:
		return "char literal"
	case Int:
		return "int literal"
	case Long:
		return "long literal"
	case Float:
		return "float literal"
	case Double:
		return "double literal"
	case Identifier:
		return "identifier"
	}

	if keyword, isKeyword := self.keyword(); isKeyword {
		return keyword
	}

	for display, kind := range operators {
		if kind == self {
			return display
		}
	}

	panic("A new token was introduced without updating this code")
}

func (self TokenKind) keyword() (string, bool) {
	for keyword, kind := range keywords {
		if kind == self {
			return keyword, true
		}
	}
	return "", false
}

var keywords = map[string]TokenKind{
	"package": Package,
	"enum":    Enum,
	"final":   Final,
	"if":      If,
	"else":    Else,
	"while":   While,
	"return":  Return,
	"class":   Class,
	"true":    True,
	"false":   False,
	"null":    Null,
	"byte":    ByteKeyword,
	"short":   ShortKeyword,
	"int":     IntKeyword,
	"long":    LongKeyword,
	"float":   FloatKeyword,
	"double":  DoubleKeyword,
	"char":    CharKeyword,
	"boolean": BooleanKeyword,
	"void":    VoidKeyword,
}

// Binding power of infix and postfix operators.
// Right-associative operators bind weaker on their right side.
func (self TokenKind) prec() (left uint8, right uint8) {
	switch self {
	case Assign, PlusAssign, MinusAssign, MultiplyAssign,
		DivideAssign, ModuloAssign, ShiftLeftAssign,
		ShiftRightAssign, UnsignedShiftRightAssign,
		BitOrAssign, BitAndAssign, BitXorAssign:
		return 2, 1
	case QuestionMark:
		return 4, 3
	case Or:
		return 5, 6
	case And:
		return 7, 8
	case BitOr:
		return 9, 10
	case BitXor:
		return 11, 12
	case BitAnd:
		return 13, 14
	case Equal, NotEqual:
		return 15, 16
	case LessThan, GreaterThan, LessThanEqual, GreaterThanEqual:
		return 17, 18
	case ShiftLeft, ShiftRight, UnsignedShiftRight:
		return 19, 20
	case Plus, Minus:
		return 21, 22
	case Multiply, Divide, Modulo:
		return 23, 24
	case Increment, Decrement:
		return 27, 28
	default:
		return 0, 0
	}
}

// Operands of prefix operators and casts are parsed with this binding power.
const prefixPrec = 25

func (self TokenKind) isPrimitiveType() bool {
	switch self {
	case ByteKeyword, ShortKeyword, IntKeyword, LongKeyword, FloatKeyword,
		DoubleKeyword, CharKeyword, BooleanKeyword, VoidKeyword:
		return true
	default:
		return false
	}
}

func (self TokenKind) asPrimitiveType() uast.Type {
	switch self {
	case ByteKeyword:
		return uast.NewPrimitiveType(uast.ByteTypeKind)
	case ShortKeyword:
		return uast.NewPrimitiveType(uast.ShortTypeKind)
	case IntKeyword:
		return uast.NewPrimitiveType(uast.IntTypeKind)
	case LongKeyword:
		return uast.NewPrimitiveType(uast.LongTypeKind)
	case FloatKeyword:
		return uast.NewPrimitiveType(uast.FloatTypeKind)
	case DoubleKeyword:
		return uast.NewPrimitiveType(uast.DoubleTypeKind)
	case CharKeyword:
		return uast.NewPrimitiveType(uast.CharTypeKind)
	case BooleanKeyword:
		return uast.NewPrimitiveType(uast.BooleanTypeKind)
	case VoidKeyword:
		return uast.NewPrimitiveType(uast.VoidTypeKind)
	default:
		panic(fmt.Sprintf("Unreachable: this method was called on an unsupported token `%s`", self))
	}
}

// Whether the token may begin the operand of a reference-type cast such as `(String) x`.
func (self TokenKind) startsCastOperand() bool {
	switch self {
	case Identifier, String, Char, Int, Long, Float, Double,
		True, False, Null, LParen, Not, BitNot:
		return true
	default:
		return false
	}
}

func (self TokenKind) asInfixOperator() uast.InfixOperator {
	switch self {
	case Plus:
		return uast.PlusInfixOperator
	case Minus:
		return uast.MinusInfixOperator
	case Multiply:
		return uast.MultiplyInfixOperator
	case Divide:
		return uast.DivideInfixOperator
	case Modulo:
		return uast.ModuloInfixOperator
	case ShiftLeft:
		return uast.ShiftLeftInfixOperator
	case ShiftRight:
		return uast.ShiftRightInfixOperator
	case UnsignedShiftRight:
		return uast.UnsignedShiftRightInfixOperator
	case BitOr:
		return uast.BitOrInfixOperator
	case BitAnd:
		return uast.BitAndInfixOperator
	case BitXor:
		return uast.BitXorInfixOperator
	case Or:
		return uast.LogicalOrInfixOperator
	case And:
		return uast.LogicalAndInfixOperator
	case Equal:
		return uast.EqualInfixOperator
	case NotEqual:
		return uast.NotEqualInfixOperator
	case LessThan:
		return uast.LessThanInfixOperator
	case LessThanEqual:
		return uast.LessThanEqualInfixOperator
	case GreaterThan:
		return uast.GreaterThanInfixOperator
	case GreaterThanEqual:
		return uast.GreaterThanEqualInfixOperator
	default:
		panic(fmt.Sprintf("Unreachable: this method was called on an unsupported token `%s`", self))
	}
}

func (self TokenKind) asPrefixOperator() uast.PrefixOperator {
	switch self {
	case Minus:
		return uast.MinusPrefixOperator
	case Plus:
		return uast.PlusPrefixOperator
	case Not:
		return uast.NegatePrefixOperator
	case BitNot:
		return uast.BitNotPrefixOperator
	case Increment:
		return uast.IncrementPrefixOperator
	case Decrement:
		return uast.DecrementPrefixOperator
	default:
		panic(fmt.Sprintf("Unreachable: this method was called on an unsupported token `%s`", self))
	}
}

func (self TokenKind) asPostfixOperator() uast.PostfixOperator {
	switch self {
	case Increment:
		return uast.IncrementPostfixOperator
	case Decrement:
		return uast.DecrementPostfixOperator
	default:
		panic(fmt.Sprintf("Unreachable: this method was called on an unsupported token `%s`", self))
	}
}

func (self TokenKind) asAssignOperator() uast.AssignOperator {
	switch self {
	case Assign:
		return uast.StdAssignOperatorKind
	case PlusAssign:
		return uast.PlusAssignOperatorKind
	case MinusAssign:
		return uast.MinusAssignOperatorKind
	case MultiplyAssign:
		return uast.MultiplyAssignOperatorKind
	case DivideAssign:
		return uast.DivideAssignOperatorKind
	case ModuloAssign:
		return uast.ModuloAssignOperatorKind
	case ShiftLeftAssign:
		return uast.ShiftLeftAssignOperatorKind
	case ShiftRightAssign:
		return uast.ShiftRightAssignOperatorKind
	case UnsignedShiftRightAssign:
		return uast.UnsignedShiftRightAssignOperatorKind
	case BitOrAssign:
		return uast.BitOrAssignOperatorKind
	case BitAndAssign:
		return uast.BitAndAssignOperatorKind
	case BitXorAssign:
		return uast.BitXorAssignOperatorKind
	default:
		panic(fmt.Sprintf("Unreachable: this method was called on an unsupported token `%s`", self))
	}
}
