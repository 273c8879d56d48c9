package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/go-arrower/warehouse/inventory"
)

var failure = color.New(color.FgRed)

// printReport writes the message of r, failures in red.
func printReport(w io.Writer, r inventory.Report) {
	if r.OK() {
		fmt.Fprintln(w, r.Message)
		return
	}

	failure.Fprintln(w, r.Message) //nolint:errcheck // best effort output
}
