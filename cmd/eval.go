package main

import (
	"bytes"
	"fmt"
	"io"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/smarthome-go/ueval/ueval"
	"github.com/smarthome-go/ueval/ueval/values"
)

// evalFiles analyzes every file concurrently and prints the results in the order of `paths`.
// Each file gets its own evaluator and states.
func (self session) evalFiles(paths []string, out io.Writer) error {
	reports := make(chan report)
	done := make(chan struct{})

	go func() {
		flushReports(reports, out)
		close(done)
	}()

	var group errgroup.Group
	group.SetLimit(runtime.NumCPU())

	for idx, path := range paths {
		idx, path := idx, path
		group.Go(func() error {
			var buffer bytes.Buffer
			fmt.Fprintf(&buffer, "=== FILE: %s ===\n", path)

			result, _, err := self.analyzeFile(path, &buffer, false)
			if err == nil {
				buffer.WriteString(renderMethods(result))
			}

			reports <- report{index: idx, output: buffer.String()}
			return err
		})
	}

	err := group.Wait()
	close(reports)
	<-done

	return err
}

// renderMethods lists the final bindings and the return value of every method.
func renderMethods(result ueval.Result) string {
	var builder strings.Builder

	for _, method := range result.Methods {
		builder.WriteString(method.Method.Signature())
		builder.WriteByte('\n')

		if method.Failed {
			builder.WriteString("    (analysis failed)\n")
			continue
		}

		for _, variable := range method.State.Variables() {
			value, _ := method.State.Lookup(variable)
			fmt.Fprintf(&builder, "    %s = %s\n", variable.Name(), values.Unwrap(value))
		}

		if method.ReturnValue != nil {
			fmt.Fprintf(&builder, "    returns %s\n", values.Unwrap(method.ReturnValue))
		}

		if !method.State.Reachable() {
			builder.WriteString("    (end of method is unreachable)\n")
		}
	}

	return builder.String()
}
