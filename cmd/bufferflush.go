package main

import (
	"fmt"
	"io"
)

type report struct {
	index  int
	output string
}

// flushReports writes every report in the order of its index.
// A report is written as soon as all reports before it have been written.
func flushReports(reports <-chan report, out io.Writer) {
	pending := make(map[int]string)
	next := 0

	for received := range reports {
		pending[received.index] = received.output

		for {
			output, found := pending[next]
			if !found {
				break
			}

			fmt.Fprint(out, output)
			delete(pending, next)
			next++
		}
	}
}
