package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/smarthome-go/ueval/ueval"
	"github.com/smarthome-go/ueval/ueval/uast"
	"github.com/smarthome-go/ueval/ueval/values"
)

type dumpRow struct {
	expression uast.Expression
	value      values.Value
	visited    bool
}

// collectRows returns every expression of the method in source order together with its computed value.
func collectRows(result ueval.Result, method *uast.Method) []dumpRow {
	rows := make([]dumpRow, 0)

	uast.InspectStatement(method.Body, nil, func(expression uast.Expression) bool {
		value, visited := result.ValueOf(expression)
		rows = append(rows, dumpRow{
			expression: expression,
			value:      value,
			visited:    visited,
		})
		return true
	})

	return rows
}

func dumpMethod(result ueval.Result, method *uast.Method, raw bool, out io.Writer) error {
	rows := collectRows(result, method)

	fmt.Fprintln(out, method.Signature())

	if raw {
		for _, row := range rows {
			fmt.Fprintf(out, "=== %s (%s) ===\n", row.expression, row.expression.Span())
			if !row.visited {
				fmt.Fprintln(out, "not evaluated")
				continue
			}
			spew.Fdump(out, row.value)
		}
		return nil
	}

	caser := cases.Title(language.AmericanEnglish)
	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	fmt.Fprintln(writer, "SPAN\tEXPRESSION\tKIND\tVALUE")
	for _, row := range rows {
		kind, value := "-", "not evaluated"
		if row.visited {
			kind = caser.String(row.value.Kind().String())
			value = row.value.String()
		}

		fmt.Fprintf(
			writer,
			"%d:%d\t%s\t%s\t%s\n",
			row.expression.Span().Start.Line,
			row.expression.Span().Start.Column,
			singleLine(row.expression.String()),
			kind,
			value,
		)
	}

	return writer.Flush()
}

func singleLine(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
