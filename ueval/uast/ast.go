package uast

import (
	"fmt"
	"strings"

	"github.com/smarthome-go/ueval/ueval/errors"
)

//
// Spanned ident
//

func NewSpannedIdent(ident string, span errors.Span) SpannedIdent {
	return SpannedIdent{
		ident: ident,
		span:  span,
	}
}

type SpannedIdent struct {
	ident string
	span  errors.Span
}

func (self SpannedIdent) Ident() string     { return self.ident }
func (self SpannedIdent) Span() errors.Span { return self.span }
func (self SpannedIdent) String() string    { return self.ident }

//
// Variable
//

type VariableOrigin uint8

const (
	LocalVariableOrigin VariableOrigin = iota
	ParameterVariableOrigin
)

// A Variable is identified by its address: two declarations with the same name are different variables.
type Variable struct {
	Ident  SpannedIdent
	Type   Type
	Origin VariableOrigin
}

func NewVariable(ident SpannedIdent, typ Type, origin VariableOrigin) *Variable {
	return &Variable{
		Ident:  ident,
		Type:   typ,
		Origin: origin,
	}
}

func (self *Variable) Name() string {
	if self == nil || self.Ident.ident == "" {
		return "<unnamed>"
	}
	return self.Ident.ident
}

func (self *Variable) String() string {
	return fmt.Sprintf("%s %s", self.Type, self.Name())
}

//
// Enums
//

type EnumDeclaration struct {
	Ident         SpannedIdent
	QualifiedName string
	Entries       []*EnumEntry
	Range         errors.Span
}

func (self *EnumDeclaration) Entry(name string) (*EnumEntry, bool) {
	for _, entry := range self.Entries {
		if entry.Ident.ident == name {
			return entry, true
		}
	}
	return nil, false
}

func (self *EnumDeclaration) Type() Type { return NewReferenceType(self.QualifiedName) }

func (self *EnumDeclaration) String() string {
	entries := make([]string, 0, len(self.Entries))
	for _, entry := range self.Entries {
		entries = append(entries, entry.Ident.ident)
	}
	return fmt.Sprintf("enum %s { %s }", self.Ident, strings.Join(entries, ", "))
}

type EnumEntry struct {
	Ident       SpannedIdent
	Declaration *EnumDeclaration
}

func (self *EnumEntry) Name() string { return self.Ident.ident }

// Qualified name of the declaring enum, empty if the entry is detached.
func (self *EnumEntry) DeclaringTypeName() string {
	if self.Declaration == nil {
		return ""
	}
	return self.Declaration.QualifiedName
}

func (self *EnumEntry) String() string {
	if self.Declaration == nil {
		return self.Ident.ident
	}
	return fmt.Sprintf("%s.%s", self.Declaration.Ident, self.Ident)
}

//
// Method
//

type Method struct {
	Ident      SpannedIdent
	ReturnType Type
	Parameters []*Variable
	Body       *Block
	Range      errors.Span
}

func (self *Method) Name() string { return self.Ident.ident }

// Signature returns the method header without its body, for instance `int f(int a, boolean b)`.
func (self *Method) Signature() string {
	params := make([]string, 0, len(self.Parameters))
	for _, param := range self.Parameters {
		params = append(params, param.String())
	}
	return fmt.Sprintf("%s %s(%s)", self.ReturnType, self.Ident, strings.Join(params, ", "))
}

func (self *Method) String() string {
	return fmt.Sprintf("%s %s", self.Signature(), self.Body)
}

//
// File
//

type File struct {
	Package  string
	Enums    []*EnumDeclaration
	Methods  []*Method
	Filename string
}

func (self *File) Method(name string) (*Method, bool) {
	for _, method := range self.Methods {
		if method.Ident.ident == name {
			return method, true
		}
	}
	return nil, false
}

func (self *File) String() string {
	out := ""
	if self.Package != "" {
		out += fmt.Sprintf("package %s;\n\n", self.Package)
	}

	for _, enum := range self.Enums {
		out += enum.String() + "\n"
	}
	if len(self.Enums) > 0 {
		out += "\n"
	}

	methods := make([]string, 0, len(self.Methods))
	for _, method := range self.Methods {
		methods = append(methods, method.String())
	}

	return out + strings.Join(methods, "\n\n")
}
