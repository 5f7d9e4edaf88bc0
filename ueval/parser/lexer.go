package parser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/smarthome-go/ueval/ueval/errors"
	"github.com/smarthome-go/ueval/ueval/parser/util"
)

//
// Lexer
//

type Lexer struct {
	currentIndex int
	currentChar  *rune
	nextChar     *rune
	program      []rune
	location     errors.Location
	filename     string
}

func NewLexer(programSource string, filename string) Lexer {
	program := []rune(programSource)
	programLen := len(program)
	var currentChar *rune
	var nextChar *rune

	if programLen > 0 {
		currentChar = &program[0]
	}
	if programLen > 1 {
		nextChar = &program[1]
	}

	return Lexer{
		currentIndex: 0,
		currentChar:  currentChar,
		nextChar:     nextChar,
		program:      program,
		location:     errors.NewLocation(),
		filename:     filename,
	}
}

func (self *Lexer) advance() {
	self.location.Advance(self.currentChar != nil && *self.currentChar == '\n')

	self.currentIndex++
	programLen := len(self.program)

	if self.currentIndex >= programLen {
		self.currentChar = nil
	} else {
		self.currentChar = &self.program[self.currentIndex]
	}

	if self.currentIndex+1 >= programLen {
		self.nextChar = nil
	} else {
		self.nextChar = &self.program[self.currentIndex+1]
	}
}

func (self *Lexer) span(start errors.Location, end errors.Location) errors.Span {
	return start.Until(end, self.filename)
}

func (self *Lexer) errorFrom(start errors.Location, message string) *errors.Error {
	return errors.NewSyntaxError(self.span(start, self.location), message)
}

func (self *Lexer) skipLineComment() {
	for self.currentChar != nil && *self.currentChar != '\n' {
		self.advance()
	}
}

func (self *Lexer) skipBlockComment() *errors.Error {
	start := self.location
	self.advance()
	self.advance()

	for {
		if self.currentChar == nil || self.nextChar == nil {
			return self.errorFrom(start, "Block comment never closed")
		}
		if *self.currentChar == '*' && *self.nextChar == '/' {
			self.advance()
			self.advance()
			return nil
		}
		self.advance()
	}
}

func (self *Lexer) NextToken() (Token, *errors.Error) {
	for self.currentChar != nil {
		switch *self.currentChar {
		case ' ', '\n', '\t', '\r', '\f':
			self.advance()
			continue
		case '"':
			return self.makeString()
		case '\'':
			return self.makeChar()
		case '/':
			if self.nextChar != nil && *self.nextChar == '/' {
				self.skipLineComment()
				continue
			}
			if self.nextChar != nil && *self.nextChar == '*' {
				if err := self.skipBlockComment(); err != nil {
					return unknownToken(self.location), err
				}
				continue
			}
		}

		if util.IsDigit(*self.currentChar) {
			return self.makeNumber()
		}
		if util.IsLetter(*self.currentChar) {
			return self.makeName(), nil
		}
		if token, found := self.makeOperator(); found {
			return token, nil
		}

		return unknownToken(self.location), self.errorFrom(
			self.location,
			fmt.Sprintf("Illegal character: %c", *self.currentChar),
		)
	}

	return newToken(EOF, "EOF", self.span(self.location, self.location)), nil
}

func (self *Lexer) makeOperator() (Token, bool) {
	for length := longestOperator; length > 0; length-- {
		if self.currentIndex+length > len(self.program) {
			continue
		}

		candidate := string(self.program[self.currentIndex : self.currentIndex+length])
		kind, isOperator := operators[candidate]
		if !isOperator {
			continue
		}

		start := self.location
		for idx := 1; idx < length; idx++ {
			self.advance()
		}
		token := newToken(kind, candidate, self.span(start, self.location))
		self.advance()
		return token, true
	}

	return Token{}, false
}

//
// String and char literals
//

func (self *Lexer) makeString() (Token, *errors.Error) {
	start := self.location
	var units []uint16

	// skip opening quote
	self.advance()

	for self.currentChar != nil && *self.currentChar != '"' && *self.currentChar != '\n' {
		if *self.currentChar == '\\' {
			unit, err := self.makeEscapeSequence()
			if err != nil {
				return unknownToken(start), err
			}
			units = append(units, unit)
			continue
		}

		units = utf16.AppendRune(units, *self.currentChar)
		self.advance()
	}

	if self.currentChar == nil || *self.currentChar != '"' {
		return unknownToken(start), self.errorFrom(start, "String literal never closed")
	}

	token := newToken(String, string(utf16.Decode(units)), self.span(start, self.location))

	// skip closing quote
	self.advance()
	return token, nil
}

func (self *Lexer) makeChar() (Token, *errors.Error) {
	start := self.location
	var units []uint16

	// skip opening quote
	self.advance()

	for self.currentChar != nil && *self.currentChar != '\'' && *self.currentChar != '\n' {
		if *self.currentChar == '\\' {
			unit, err := self.makeEscapeSequence()
			if err != nil {
				return unknownToken(start), err
			}
			units = append(units, unit)
			continue
		}

		units = utf16.AppendRune(units, *self.currentChar)
		self.advance()
	}

	if self.currentChar == nil || *self.currentChar != '\'' {
		return unknownToken(start), self.errorFrom(start, "Character literal never closed")
	}

	if len(units) != 1 {
		return unknownToken(start), self.errorFrom(start, "A character literal must contain exactly one character")
	}

	token := newToken(Char, strconv.Itoa(int(units[0])), self.span(start, self.location))

	// skip closing quote
	self.advance()
	return token, nil
}

// Returns a single UTF-16 code unit: `\uXXXX` escapes may describe one half of a surrogate pair.
func (self *Lexer) makeEscapeSequence() (uint16, *errors.Error) {
	start := self.location
	self.advance()
	if self.currentChar == nil {
		return 0, self.errorFrom(start, "Unfinished escape sequence")
	}

	var char rune
	switch *self.currentChar {
	case '\\':
		char = '\\'
	case '\'':
		char = '\''
	case '"':
		char = '"'
	case 'b':
		char = '\b'
	case 'f':
		char = '\f'
	case 'n':
		char = '\n'
	case 'r':
		char = '\r'
	case 's':
		char = ' '
	case 't':
		char = '\t'
	case 'u':
		return self.unicodeEscape(start)
	default:
		if util.IsOctalDigit(*self.currentChar) {
			return self.octalEscape(start)
		}
		return 0, self.errorFrom(start, "Invalid escape sequence")
	}

	self.advance()
	return uint16(char), nil
}

func (self *Lexer) unicodeEscape(start errors.Location) (uint16, *errors.Error) {
	// `\uuuu0041` is a valid escape
	for self.currentChar != nil && *self.currentChar == 'u' {
		self.advance()
	}

	digits := ""
	for idx := 0; idx < 4; idx++ {
		if self.currentChar == nil || !util.IsHexDigit(*self.currentChar) {
			return 0, self.errorFrom(start, "Invalid unicode escape sequence")
		}
		digits += string(*self.currentChar)
		self.advance()
	}

	code, _ := strconv.ParseUint(digits, 16, 16)
	return uint16(code), nil
}

// Octal escapes range from `\0` to `\377`.
func (self *Lexer) octalEscape(start errors.Location) (uint16, *errors.Error) {
	maxDigits := 2
	if *self.currentChar <= '3' {
		maxDigits = 3
	}

	digits := ""
	for len(digits) < maxDigits && self.currentChar != nil && util.IsOctalDigit(*self.currentChar) {
		digits += string(*self.currentChar)
		self.advance()
	}

	code, err := strconv.ParseUint(digits, 8, 16)
	if err != nil {
		return 0, self.errorFrom(start, "Invalid octal escape sequence")
	}
	return uint16(code), nil
}

//
// Numbers
//

func (self *Lexer) makeNumber() (Token, *errors.Error) {
	start := self.location
	var end errors.Location

	if *self.currentChar == '0' && self.nextChar != nil && (*self.nextChar == 'x' || *self.nextChar == 'X') {
		self.advance()
		self.advance()
		digits := self.digits(util.IsHexDigit)
		if digits == "" {
			return unknownToken(start), self.errorFrom(start, "Hexadecimal numbers must contain at least one digit")
		}

		kind := Int
		end = self.lastLocation()
		if self.currentChar != nil && (*self.currentChar == 'L' || *self.currentChar == 'l') {
			kind = Long
			end = self.location
			self.advance()
		}
		return newToken(kind, "0x"+digits, self.span(start, end)), nil
	}

	value := self.digits(util.IsDigit)
	kind := Int

	if self.currentChar != nil && *self.currentChar == '.' && self.nextChar != nil && util.IsDigit(*self.nextChar) {
		kind = Double
		self.advance()
		value += "." + self.digits(util.IsDigit)
	}

	if self.currentChar != nil && (*self.currentChar == 'e' || *self.currentChar == 'E') {
		kind = Double
		value += "e"
		self.advance()

		if self.currentChar != nil && (*self.currentChar == '+' || *self.currentChar == '-') {
			value += string(*self.currentChar)
			self.advance()
		}

		exponent := self.digits(util.IsDigit)
		if exponent == "" {
			return unknownToken(start), self.errorFrom(start, "Malformed floating-point literal: missing exponent")
		}
		value += exponent
	}

	end = self.lastLocation()

	if self.currentChar != nil {
		suffix := *self.currentChar
		switch {
		case (suffix == 'L' || suffix == 'l') && kind == Int:
			kind = Long
		case suffix == 'f' || suffix == 'F':
			kind = Float
		case suffix == 'd' || suffix == 'D':
			kind = Double
		default:
			return newToken(kind, value, self.span(start, end)), nil
		}
		end = self.location
		self.advance()
	}

	return newToken(kind, value, self.span(start, end)), nil
}

// Reads digits separated by underscores and returns them without the underscores.
func (self *Lexer) digits(isDigit func(rune) bool) string {
	var digits strings.Builder
	for self.currentChar != nil {
		if *self.currentChar == '_' && self.nextChar != nil && (isDigit(*self.nextChar) || *self.nextChar == '_') {
			self.advance()
			continue
		}
		if !isDigit(*self.currentChar) {
			break
		}
		digits.WriteRune(*self.currentChar)
		self.advance()
	}
	return digits.String()
}

// The location of the previously consumed character.
func (self *Lexer) lastLocation() errors.Location {
	location := self.location
	if location.Index > 0 {
		location.Index--
		if location.Column > 1 {
			location.Column--
		}
	}
	return location
}

//
// Names
//

func (self *Lexer) makeName() Token {
	start := self.location
	end := self.location
	var value strings.Builder

	for self.currentChar != nil && (util.IsLetter(*self.currentChar) || util.IsDigit(*self.currentChar)) {
		end = self.location
		value.WriteRune(*self.currentChar)
		self.advance()
	}

	name := value.String()
	kind, isKeyword := keywords[name]
	if !isKeyword {
		kind = Identifier
	}

	return newToken(kind, name, self.span(start, end))
}
