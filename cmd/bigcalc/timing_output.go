package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"bigcalc/internal/observ"
)

// printTimings writes the phase table to out when --timings is set.
func printTimings(cmd *cobra.Command, out io.Writer, timer *observ.Timer) {
	show, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil || !show || out == nil {
		return
	}
	fmt.Fprint(out, timer.Summary())
}
