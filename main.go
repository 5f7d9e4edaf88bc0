package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/smarthome-go/ueval/ueval"
	"github.com/smarthome-go/ueval/ueval/diagnostic"
	"github.com/smarthome-go/ueval/ueval/values"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: ueval <file>")
		os.Exit(2)
	}

	hasError, err := run(os.Args[1], os.Stdout)
	if err != nil {
		panic(err.Error())
	}
	if hasError {
		os.Exit(1)
	}
}

// run analyzes the file and prints its diagnostics followed by the return value of every method.
func run(filename string, out io.Writer) (hasError bool, err error) {
	program, err := os.ReadFile(filename)
	if err != nil {
		return false, err
	}

	result, diagnostics, syntaxErrors := ueval.Analyze(
		ueval.InputProgram{
			ProgramText: string(program),
			Filename:    filename,
		},
		nil,
		zerolog.Nop(),
	)

	for _, syntaxErr := range syntaxErrors {
		fmt.Fprintln(out, diagnostic.FromError(syntaxErr).Display(string(program), false))
		hasError = true
	}

	for _, item := range diagnostics {
		fmt.Fprintln(out, item.Display(string(program), false))
		if item.Level == diagnostic.DiagnosticLevelError {
			hasError = true
		}
	}

	if len(syntaxErrors) > 0 {
		fmt.Fprintln(out, "Analyzer detected errors")
		return hasError, nil
	}

	for _, method := range result.Methods {
		if method.ReturnValue == nil {
			fmt.Fprintf(out, "%s: no value\n", method.Method.Name())
			continue
		}
		fmt.Fprintf(out, "%s: %s\n", method.Method.Name(), values.Unwrap(method.ReturnValue))
	}

	return hasError, nil
}
