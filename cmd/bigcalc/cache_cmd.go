package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errCacheDisabled = errors.New("factorial cache is disabled in configuration")

func newCacheCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the factorial result cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "dir",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fc, err := a.openCache()
			if err != nil {
				return err
			}
			if fc == nil {
				return errCacheDisabled
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), fc.Dir())
			return err
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "purge",
		Short: "Remove every cached factorial",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fc, err := a.openCache()
			if err != nil {
				return err
			}
			if fc == nil {
				return errCacheDisabled
			}
			if err := fc.Purge(); err != nil {
				return fmt.Errorf("cache purge: %w", err)
			}
			if !quiet(cmd) {
				fmt.Fprintf(cmd.ErrOrStderr(), "purged %s\n", fc.Dir())
			}
			return nil
		},
	})
	return cmd
}
