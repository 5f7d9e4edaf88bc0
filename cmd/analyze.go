package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/smarthome-go/ueval/ueval"
	"github.com/smarthome-go/ueval/ueval/config"
	"github.com/smarthome-go/ueval/ueval/diagnostic"
)

var errSyntax = errors.New("Encountered syntax error(s)")

type session struct {
	cfg    *config.Config
	logger zerolog.Logger
	color  bool
}

// analyzeFile reads and analyzes one file.
// Syntax errors are written to `out` and abort the analysis, diagnostics are only written if `printDiagnostics` is set.
func (self session) analyzeFile(
	path string,
	out io.Writer,
	printDiagnostics bool,
) (result ueval.Result, diagnostics []diagnostic.Diagnostic, err error) {
	program, err := os.ReadFile(path)
	if err != nil {
		return ueval.Result{}, nil, fmt.Errorf("Could not read file `%s`: %w", path, err)
	}

	start := time.Now()
	result, diagnostics, syntaxErrors := ueval.Analyze(
		ueval.InputProgram{
			ProgramText: string(program),
			Filename:    path,
		},
		self.cfg,
		self.logger.With().Str("file", path).Logger(),
	)
	log.Printf("Finished analysis of `%s`: elapsed: %v\n", path, time.Since(start))

	if len(syntaxErrors) != 0 {
		for _, syntaxErr := range syntaxErrors {
			fmt.Fprintln(out, diagnostic.FromError(syntaxErr).Display(string(program), self.color))
		}
		return ueval.Result{}, nil, fmt.Errorf("%w in `%s`", errSyntax, path)
	}

	if printDiagnostics {
		for _, item := range diagnostics {
			fmt.Fprintln(out, item.Display(string(program), self.color))
		}
	}

	return result, diagnostics, nil
}
