package diagnostic

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/smarthome-go/ueval/ueval/errors"
)

type DiagnosticLevel uint8

const (
	DiagnosticLevelHint DiagnosticLevel = iota
	DiagnosticLevelInfo
	DiagnosticLevelWarning
	DiagnosticLevelError
)

func (self DiagnosticLevel) String() string {
	switch self {
	case DiagnosticLevelHint:
		return "Hint"
	case DiagnosticLevelInfo:
		return "Info"
	case DiagnosticLevelWarning:
		return "Warning"
	case DiagnosticLevelError:
		return "Error"
	default:
		panic("A new diagnostic level was added without updating this code")
	}
}

//
// Diagnostic
//

type Diagnostic struct {
	Level   DiagnosticLevel `json:"level"`
	Message string          `json:"message"`
	Notes   []string        `json:"notes"`
	Span    errors.Span     `json:"span"`
}

func FromError(err errors.Error) Diagnostic {
	return Diagnostic{
		Level:   DiagnosticLevelError,
		Message: fmt.Sprintf("%s: %s", err.Kind, err.Message),
		Notes:   err.Notes,
		Span:    err.Span,
	}
}

func (self Diagnostic) String() string {
	return fmt.Sprintf("%s at %s: %s", self.Level, self.Span, self.Message)
}

var ansiEscape = regexp.MustCompile("\x1b\\[[0-9;]*m")

// Display renders the diagnostic together with the affected source lines.
// If `color` is false, ANSI escape sequences are stripped from the output.
func (self Diagnostic) Display(program string, color bool) string {
	output := self.display(program)
	if color {
		return output
	}
	return ansiEscape.ReplaceAllString(output, "")
}

func (self Diagnostic) display(program string) string {
	singleMarker := "^"
	markerMul := ""
	var color uint8 = 0

	switch self.Level {
	case DiagnosticLevelHint:
		markerMul = "~"
		color = 5 // magenta
	case DiagnosticLevelInfo:
		markerMul = "~"
		color = 4 // blue
	case DiagnosticLevelWarning:
		markerMul = "~"
		color = 3 // yellow
	case DiagnosticLevelError:
		markerMul = "^"
		color = 1 // red
	}

	notes := ""
	for _, note := range self.Notes {
		notes += fmt.Sprintf("%s - note:\x1b[0m %s\n", ansiCol(36, true), note)
	}

	lines := strings.Split(program, "\n")

	// no useful span or the span lies outside of the program
	if self.Span.Start.Line == 0 || int(self.Span.Start.Line) > len(lines) {
		return fmt.Sprintf(
			"%s%s\x1b[1;39m in %s\x1b[0m\n%s\n%s",
			ansiCol(color+30, true),
			self.Level,
			self.Span.Filename,
			self.Message,
			notes,
		)
	}

	before := ""
	if self.Span.Start.Line > 1 {
		before = fmt.Sprintf("\n \x1b[90m%- 3d | \x1b[0m%s", self.Span.Start.Line-1, lines[self.Span.Start.Line-2])
	}
	current := fmt.Sprintf(" \x1b[90m%- 3d | \x1b[0m%s", self.Span.Start.Line, lines[self.Span.Start.Line-1])
	after := ""
	if int(self.Span.Start.Line) < len(lines) {
		after = fmt.Sprintf("\n \x1b[90m%- 3d | \x1b[0m%s", self.Span.Start.Line+1, lines[self.Span.Start.Line])
	}

	markers := ""
	switch {
	case self.Span.Start.Line != self.Span.End.Line:
		s := "s"
		if self.Span.End.Line-self.Span.Start.Line == 1 {
			s = ""
		}

		width := len(lines[self.Span.Start.Line-1]) - int(self.Span.Start.Column) + 1
		if width < 1 {
			width = 1
		}

		markers = fmt.Sprintf(
			"%s ...\n%s%s+ %d more line%s\x1b[0m",
			strings.Repeat(markerMul, width),
			strings.Repeat(" ", int(self.Span.Start.Column)+6),
			ansiCol(32, true),
			self.Span.End.Line-self.Span.Start.Line,
			s,
		)
	case self.Span.End.Column <= self.Span.Start.Column:
		markers = singleMarker
	default:
		// spans are inclusive
		markers = strings.Repeat(markerMul, int(self.Span.End.Column-self.Span.Start.Column)+1)
	}

	marker := fmt.Sprintf(
		"%s%s%s\x1b[0m",
		ansiCol(color+30, true),
		strings.Repeat(" ", int(self.Span.Start.Column+6)),
		markers,
	)

	return fmt.Sprintf(
		"%s%v\x1b[39m at %s:%d:%d\x1b[0m\n%s\n%s\n%s%s\n\n%s%s\x1b[0m\n%s",
		ansiCol(color+30, true),
		self.Level,
		self.Span.Filename,
		self.Span.Start.Line,
		self.Span.Start.Column,
		before,
		current,
		marker,
		after,
		ansiCol(color+30, true),
		self.Message,
		notes,
	)
}

func ansiCol(color uint8, bold bool) string {
	if bold {
		return fmt.Sprintf("\x1b[1;%dm", color)
	}
	return fmt.Sprintf("\x1b[%dm", color)
}
