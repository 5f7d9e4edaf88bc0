package parser

import (
	"fmt"
	"strings"

	"github.com/smarthome-go/ueval/ueval/errors"
	"github.com/smarthome-go/ueval/ueval/uast"
)

type Parser struct {
	Lexer         Lexer
	Errors        []errors.Error
	PreviousToken Token
	CurrentToken  Token
	Filename      string

	packageName string
	// Enums declared anywhere in the file, keyed by their simple name.
	enums  map[string]*uast.EnumDeclaration
	scopes []scope
}

func NewParser(lex Lexer, filename string) Parser {
	return Parser{
		Lexer:         lex,
		Errors:        make([]errors.Error, 0),
		PreviousToken: unknownToken(errors.Location{}),
		CurrentToken:  unknownToken(errors.Location{}),
		Filename:      filename,
		enums:         make(map[string]*uast.EnumDeclaration),
		scopes:        make([]scope, 0),
	}
}

// Parse is a shorthand for lexing and parsing a source file.
func Parse(program string, filename string) (*uast.File, []errors.Error, *errors.Error) {
	parser := NewParser(NewLexer(program, filename), filename)
	return parser.Parse()
}

func (self *Parser) next() *errors.Error {
	token, err := self.Lexer.NextToken()
	if err != nil {
		return err
	}

	self.PreviousToken = self.CurrentToken
	self.CurrentToken = token
	return nil
}

// Returns the token after the current one without consuming anything.
func (self *Parser) peek() Token {
	lexer := self.Lexer
	token, err := lexer.NextToken()
	if err != nil {
		return unknownToken(self.CurrentToken.Span.End)
	}
	return token
}

func (self *Parser) Parse() (file *uast.File, softErrors []errors.Error, hardError *errors.Error) {
	self.collectEnums()

	tree, err := self.file()
	if err != nil {
		return nil, self.Errors, err
	}
	return tree, self.Errors, nil
}

func (self *Parser) file() (*uast.File, *errors.Error) {
	if err := self.next(); err != nil {
		return nil, err
	}

	tree := &uast.File{
		Enums:    make([]*uast.EnumDeclaration, 0),
		Methods:  make([]*uast.Method, 0),
		Filename: self.Filename,
	}

	if self.CurrentToken.Kind == Package {
		name, err := self.packageDeclaration()
		if err != nil {
			return nil, err
		}
		tree.Package = name
	}

	for self.CurrentToken.Kind != EOF {
		switch self.CurrentToken.Kind {
		case Enum:
			enum, err := self.enumDeclaration()
			if err != nil {
				return nil, err
			}
			tree.Enums = append(tree.Enums, enum)
		case Package:
			return nil, errors.NewSyntaxError(
				self.CurrentToken.Span,
				"The package declaration must be the first item of a file",
			)
		default:
			method, err := self.method()
			if err != nil {
				return nil, err
			}

			if _, exists := tree.Method(method.Name()); exists {
				self.Errors = append(self.Errors, *errors.NewReferenceError(
					method.Ident.Span(),
					fmt.Sprintf("Method `%s` is already declared", method.Name()),
				))
			}
			tree.Methods = append(tree.Methods, method)
		}
	}

	return tree, nil
}

//
// Package
//

func (self *Parser) packageDeclaration() (string, *errors.Error) {
	// skip the `package` keyword
	if err := self.next(); err != nil {
		return "", err
	}

	name, _, err := self.qualifiedName()
	if err != nil {
		return "", err
	}

	if err := self.expectRecoverable(Semicolon); err != nil {
		return "", err
	}

	self.packageName = name
	return name, nil
}

func (self *Parser) qualifiedName() (string, errors.Span, *errors.Error) {
	start := self.CurrentToken.Span.Start

	if err := self.expect(Identifier); err != nil {
		return "", errors.Span{}, err
	}
	segments := []string{self.PreviousToken.Value}

	for self.CurrentToken.Kind == Dot && self.peek().Kind == Identifier {
		if err := self.next(); err != nil {
			return "", errors.Span{}, err
		}
		if err := self.next(); err != nil {
			return "", errors.Span{}, err
		}
		segments = append(segments, self.PreviousToken.Value)
	}

	return strings.Join(segments, "."), start.Until(self.PreviousToken.Span.End, self.Filename), nil
}

func (self *Parser) qualify(name string) string {
	if self.packageName == "" {
		return name
	}
	return fmt.Sprintf("%s.%s", self.packageName, name)
}

//
// Enums
//

// Enums may be referenced before their declaration.
// Therefore, a first pass over the token stream registers every well-formed enum declaration.
func (self *Parser) collectEnums() {
	collector := NewParser(self.Lexer, self.Filename)
	defer func() {
		self.enums = collector.enums
		self.packageName = collector.packageName
	}()

	if err := collector.next(); err != nil {
		return
	}

	if collector.CurrentToken.Kind == Package {
		if _, err := collector.packageDeclaration(); err != nil {
			return
		}
	}

	for collector.CurrentToken.Kind != EOF {
		if collector.CurrentToken.Kind != Enum {
			if err := collector.next(); err != nil {
				return
			}
			continue
		}

		if _, err := collector.enumDeclaration(); err != nil {
			return
		}
	}
}

func (self *Parser) enumDeclaration() (*uast.EnumDeclaration, *errors.Error) {
	start := self.CurrentToken.Span.Start

	// skip the `enum` keyword
	if err := self.next(); err != nil {
		return nil, err
	}

	if err := self.expect(Identifier); err != nil {
		return nil, err
	}
	ident := uast.NewSpannedIdent(self.PreviousToken.Value, self.PreviousToken.Span)

	if err := self.expect(LCurly); err != nil {
		return nil, err
	}

	entries := make([]uast.SpannedIdent, 0)
	for self.CurrentToken.Kind != RCurly {
		if err := self.expect(Identifier); err != nil {
			return nil, err
		}
		entry := uast.NewSpannedIdent(self.PreviousToken.Value, self.PreviousToken.Span)

		for _, other := range entries {
			if other.Ident() == entry.Ident() {
				self.Errors = append(self.Errors, *errors.NewReferenceError(
					entry.Span(),
					fmt.Sprintf("Enum entry `%s` is already declared", entry),
				))
			}
		}
		entries = append(entries, entry)

		if self.CurrentToken.Kind != Comma {
			break
		}
		if err := self.next(); err != nil {
			return nil, err
		}
	}

	if err := self.expect(RCurly); err != nil {
		return nil, err
	}

	span := start.Until(self.PreviousToken.Span.End, self.Filename)

	// The first pass already created this declaration: reuse it so that enum entry expressions share its identity.
	if existing, exists := self.enums[ident.Ident()]; exists {
		if existing.Range == span {
			return existing, nil
		}
		self.Errors = append(self.Errors, *errors.NewReferenceError(
			ident.Span(),
			fmt.Sprintf("Enum `%s` is already declared", ident),
		))
	}

	declaration := &uast.EnumDeclaration{
		Ident:         ident,
		QualifiedName: self.qualify(ident.Ident()),
		Entries:       make([]*uast.EnumEntry, 0, len(entries)),
		Range:         span,
	}
	for _, entry := range entries {
		declaration.Entries = append(declaration.Entries, &uast.EnumEntry{
			Ident:       entry,
			Declaration: declaration,
		})
	}

	if _, exists := self.enums[ident.Ident()]; !exists {
		self.enums[ident.Ident()] = declaration
	}

	return declaration, nil
}

//
// Types
//

// Simple names which resolve to a class of the implicitly imported standard package.
var implicitTypes = map[string]bool{
	"Object":       true,
	"String":       true,
	"CharSequence": true,
	"Number":       true,
	"Byte":         true,
	"Short":        true,
	"Integer":      true,
	"Long":         true,
	"Float":        true,
	"Double":       true,
	"Character":    true,
	"Boolean":      true,
}

func (self *Parser) isTypeName(name string) bool {
	_, isEnum := self.enums[name]
	return isEnum || implicitTypes[name]
}

func (self *Parser) referenceType(name string) uast.Type {
	if enum, isEnum := self.enums[name]; isEnum {
		return enum.Type()
	}
	if implicitTypes[name] {
		return uast.NewReferenceType("java.lang." + name)
	}
	return uast.NewReferenceType(name)
}

func (self *Parser) typ() (uast.Type, *errors.Error) {
	if self.CurrentToken.Kind.isPrimitiveType() {
		typ := self.CurrentToken.Kind.asPrimitiveType()
		if err := self.next(); err != nil {
			return uast.Type{}, err
		}
		return typ, nil
	}

	if self.CurrentToken.Kind != Identifier {
		return uast.Type{}, errors.NewSyntaxError(
			self.CurrentToken.Span,
			fmt.Sprintf("Expected a type, found '%s'", self.CurrentToken.Kind),
		)
	}

	name, _, err := self.qualifiedName()
	if err != nil {
		return uast.Type{}, err
	}
	return self.referenceType(name), nil
}

//
// Methods
//

func (self *Parser) method() (*uast.Method, *errors.Error) {
	start := self.CurrentToken.Span.Start

	returnType, err := self.typ()
	if err != nil {
		return nil, err
	}

	if err := self.expect(Identifier); err != nil {
		return nil, err
	}
	ident := uast.NewSpannedIdent(self.PreviousToken.Value, self.PreviousToken.Span)

	self.pushScope()
	defer self.popScope()

	parameters, err := self.parameters()
	if err != nil {
		return nil, err
	}

	body, err := self.block()
	if err != nil {
		return nil, err
	}

	return &uast.Method{
		Ident:      ident,
		ReturnType: returnType,
		Parameters: parameters,
		Body:       body,
		Range:      start.Until(self.PreviousToken.Span.End, self.Filename),
	}, nil
}

func (self *Parser) parameters() ([]*uast.Variable, *errors.Error) {
	if err := self.expect(LParen); err != nil {
		return nil, err
	}

	parameters := make([]*uast.Variable, 0)
	for self.CurrentToken.Kind != RParen {
		if self.CurrentToken.Kind == Final {
			if err := self.next(); err != nil {
				return nil, err
			}
		}

		typ, err := self.typ()
		if err != nil {
			return nil, err
		}

		if err := self.expect(Identifier); err != nil {
			return nil, err
		}

		parameter := uast.NewVariable(
			uast.NewSpannedIdent(self.PreviousToken.Value, self.PreviousToken.Span),
			typ,
			uast.ParameterVariableOrigin,
		)
		self.declare(parameter)
		parameters = append(parameters, parameter)

		if self.CurrentToken.Kind != Comma {
			break
		}
		if err := self.next(); err != nil {
			return nil, err
		}
	}

	if err := self.expect(RParen); err != nil {
		return nil, err
	}

	return parameters, nil
}
