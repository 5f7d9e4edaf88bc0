package errors

import "fmt"

type ErrorKind uint8

const (
	SyntaxError ErrorKind = iota
	ReferenceError
	TypeError
	ArithmeticError
	ValueError
)

func (self ErrorKind) String() string {
	switch self {
	case SyntaxError:
		return "SyntaxError"
	case ReferenceError:
		return "ReferenceError"
	case TypeError:
		return "TypeError"
	case ArithmeticError:
		return "ArithmeticError"
	case ValueError:
		return "ValueError"
	default:
		panic("A new ErrorKind was added without updating this code")
	}
}

type Error struct {
	Kind    ErrorKind
	Message string
	Notes   []string
	Span    Span
}

// Implements the builtin error interface so that front-end errors can be wrapped by callers.
func (self Error) Error() string {
	return fmt.Sprintf("%s at %s: %s", self.Kind, self.Span, self.Message)
}

func NewError(span Span, message string, kind ErrorKind) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
		Notes:   nil,
		Span:    span,
	}
}

func NewSyntaxError(span Span, message string) *Error {
	return NewError(span, message, SyntaxError)
}

func NewReferenceError(span Span, message string, notes ...string) *Error {
	err := NewError(span, message, ReferenceError)
	err.Notes = notes
	return err
}
