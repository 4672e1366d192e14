package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"bigcalc/internal/prof"
)

// setupProfiling starts the profiles named by --cpu-profile and
// --mem-profile. The heap profile is written by the returned cleanup.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	fs := cmd.Root().PersistentFlags()
	cpuPath, errCPU := fs.GetString("cpu-profile")
	memPath, errMem := fs.GetString("mem-profile")
	if err := errors.Join(errCPU, errMem); err != nil {
		return nil, fmt.Errorf("profile flags: %w", err)
	}

	session, err := prof.Start(cpuPath, memPath)
	if err != nil {
		return nil, fmt.Errorf("failed to start profiling: %w", err)
	}
	return func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "profile: %v\n", err)
		}
	}, nil
}
