package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"bigcalc/internal/bignum"
)

func newPrimeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prime a",
		Short: "Report whether a is prime (trial division)",
		Long: `prime tries every odd divisor up to a/2, so the running time grows
linearly with a. Use --timeout or [prime].timeout to bound it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vals, err := a.parseArgs(args)
			if err != nil {
				return err
			}
			timeout := a.cfg.Prime.Timeout
			if cmd.Flags().Changed("timeout") {
				if timeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
					return fmt.Errorf("failed to get timeout flag: %w", err)
				}
			}

			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			var prime bool
			err = a.compute(ctx, "prime", func() error {
				var err error
				prime, err = bignum.IsPrimeContext(ctx, vals[0])
				return err
			})
			if err != nil {
				return fmt.Errorf("prime %s: %w", vals[0], err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatBool(prime))
			return err
		},
	}
	cmd.Flags().Duration("timeout", time.Duration(0), "give up after this long (0 = no limit, overrides [prime].timeout)")
	return cmd
}
