package diagnostic

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smarthome-go/ueval/ueval/errors"
)

func TestDisplayWithoutColor(t *testing.T) {
	program := "int f() {\n    return 1 / 0;\n}"
	diagnostic := Diagnostic{
		Level:   DiagnosticLevelError,
		Message: "Division by zero",
		Notes:   []string{"The divisor is always zero"},
		Span: errors.Span{
			Start:    errors.Location{Line: 2, Column: 12, Index: 21},
			End:      errors.Location{Line: 2, Column: 16, Index: 25},
			Filename: "test.java",
		},
	}

	output := diagnostic.Display(program, false)
	assert.NotContains(t, output, "\x1b[")
	assert.True(t, strings.HasPrefix(output, "Error at test.java:2:12"), output)
	assert.Contains(t, output, "return 1 / 0;")
	assert.Contains(t, output, "^^^^^")
	assert.Contains(t, output, "Division by zero")
	assert.Contains(t, output, " - note: The divisor is always zero")

	assert.Contains(t, diagnostic.Display(program, true), "\x1b[1;31m")
}

func TestDisplayWithoutSpan(t *testing.T) {
	diagnostic := Diagnostic{Level: DiagnosticLevelWarning, Message: "Empty file", Span: errors.Span{Filename: "a.java"}}
	assert.Equal(t, "Warning in a.java\nEmpty file\n", diagnostic.Display("", false))
}

func TestFromError(t *testing.T) {
	err := errors.NewReferenceError(errors.Span{Filename: "a.java"}, "Use of undeclared variable `y`", "Did you mean `x`?")
	diagnostic := FromError(*err)
	assert.Equal(t, DiagnosticLevelError, diagnostic.Level)
	assert.Equal(t, "ReferenceError: Use of undeclared variable `y`", diagnostic.Message)
	assert.Equal(t, []string{"Did you mean `x`?"}, diagnostic.Notes)
}
