package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"bigcalc/internal/bignum"
	"bigcalc/internal/cache"
)

func newFactCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fact n",
		Short: "Print n! computed as a parallel range product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vals, err := a.parseArgs(args)
			if err != nil {
				return err
			}
			n := vals[0]
			cfg, err := a.factorialConfig(cmd)
			if err != nil {
				return err
			}
			modeStr, err := cmd.Flags().GetString("ui")
			if err != nil {
				return fmt.Errorf("failed to get ui flag: %w", err)
			}
			mode, err := parseTristate("ui", modeStr)
			if err != nil {
				return err
			}
			noCache, err := cmd.Flags().GetBool("no-cache")
			if err != nil {
				return fmt.Errorf("failed to get no-cache flag: %w", err)
			}

			var fc *cache.FactorialCache
			if !noCache {
				if fc, err = a.openCache(); err != nil {
					a.warn(cmd, "factorial cache disabled: %v", err)
					fc = nil
				}
			}

			v, cacheable := n.Uint64()
			cacheable = cacheable && (cfg.MaxInput == 0 || v <= cfg.MaxInput)
			if cacheable {
				hit, ok, err := fc.Get(v)
				if err != nil {
					a.warn(cmd, "%v", err)
				}
				if ok {
					a.span.WithExtra("cache", "hit")
					return a.printValues(cmd, hit)
				}
			}

			cfg.Progress = a.progress
			var out bignum.BigInt
			err = a.compute(cmd.Context(), "fact", func() error {
				if cacheable && mode.enabled(os.Stderr) && !quiet(cmd) {
					out, err = runFactorialWithUI(cmd.Context(), cmd.ErrOrStderr(), n.String()+"!", n, v, a.progress, cfg)
					return err
				}
				out, err = bignum.Factorial(cmd.Context(), n, cfg)
				return err
			})
			if err != nil {
				return fmt.Errorf("fact %s: %w", n, err)
			}

			if cacheable {
				if err := fc.Put(v, out); err != nil {
					a.warn(cmd, "factorial cache: %v", err)
				}
			}
			return a.printValues(cmd, out)
		},
	}
	cmd.Flags().Int("jobs", 0, "concurrent range products (0 = GOMAXPROCS, overrides [factorial].jobs)")
	cmd.Flags().Uint64("fork-threshold", bignum.DefaultForkThreshold, "range length above which halves are forked")
	cmd.Flags().Uint64("max-input", 0, "reject n above this value (0 = no cap)")
	cmd.Flags().String("ui", "auto", "progress display (auto|on|off)")
	cmd.Flags().Bool("no-cache", false, "bypass the factorial result cache")
	return cmd
}

// factorialConfig merges [factorial] with the flags the user set explicitly.
func (a *app) factorialConfig(cmd *cobra.Command) (bignum.FactorialConfig, error) {
	cfg := a.cfg.Factorial.Bignum()
	flags := cmd.Flags()
	if flags.Changed("jobs") {
		jobs, err := flags.GetInt("jobs")
		if err != nil {
			return cfg, fmt.Errorf("failed to get jobs flag: %w", err)
		}
		if jobs < 0 {
			return cfg, fmt.Errorf("--jobs must not be negative, got %d", jobs)
		}
		cfg.Jobs = jobs
	}
	if flags.Changed("fork-threshold") {
		threshold, err := flags.GetUint64("fork-threshold")
		if err != nil {
			return cfg, fmt.Errorf("failed to get fork-threshold flag: %w", err)
		}
		if threshold == 0 {
			return cfg, fmt.Errorf("--fork-threshold must be positive")
		}
		cfg.ForkThreshold = threshold
	}
	if flags.Changed("max-input") {
		limit, err := flags.GetUint64("max-input")
		if err != nil {
			return cfg, fmt.Errorf("failed to get max-input flag: %w", err)
		}
		cfg.MaxInput = limit
	}
	a.span.WithExtra("jobs", strconv.Itoa(cfg.Jobs))
	return cfg, nil
}

func (a *app) warn(cmd *cobra.Command, format string, args ...any) {
	if quiet(cmd) {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "warning: "+format+"\n", args...)
}
