package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"bigcalc/internal/bignum"
	"bigcalc/internal/config"
	"bigcalc/internal/observ"
	"bigcalc/internal/trace"
	"bigcalc/internal/ui"
	"bigcalc/internal/version"
)

// app carries the state shared by every command of one invocation.
type app struct {
	cfg     config.Config
	cfgPath string
	timer   *observ.Timer
	span    *trace.Span
	ring    *trace.RingTracer

	// progress counts factors folded by a running factorial; the trace
	// heartbeat reports it.
	progress *ui.Counter

	cleanups []func()
}

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the CLI with args and returns the process exit status.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{timer: observ.NewTimer(), progress: &ui.Counter{}}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if a.span != nil {
		detail := ""
		if err != nil {
			detail = "failed: " + err.Error()
		}
		a.span.End(detail)
	}
	if err == nil {
		printTimings(root, stderr, a.timer)
	}
	if err != nil && a.ring != nil {
		// Ring mode keeps events in memory; a failure is when they are worth reading.
		_ = a.ring.Dump(stderr, trace.FormatText)
	}
	a.close()

	if err != nil {
		printError(stderr, err)
		return 1
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "bigcalc",
		Short: "Arbitrary-precision integer calculator",
		Long: `bigcalc computes with signed integers of unbounded size: arithmetic,
comparison, gcd, primality and parallel factorials.

Negative operands must follow "--", for example: bigcalc add -- -7 2.
Fullwidth digits and signs are accepted and read as ASCII.`,
		Version:       version.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "path to bigcalc.toml (default: nearest bigcalc.toml above the working directory)")
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.String("trace", "", "trace output file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	flags.Int("trace-ring-size", 4096, "events kept in ring mode")
	flags.Duration("trace-heartbeat", 0, "heartbeat interval (0 disables)")
	flags.String("cpu-profile", "", "write a CPU profile to this file")
	flags.String("mem-profile", "", "write a heap profile to this file")

	root.AddCommand(
		newBinaryCmd(a, "add", "Print a + b", func(x, y bignum.BigInt) (bignum.BigInt, error) { return bignum.Add(x, y), nil }),
		newBinaryCmd(a, "sub", "Print a - b", func(x, y bignum.BigInt) (bignum.BigInt, error) { return bignum.Sub(x, y), nil }),
		newBinaryCmd(a, "mul", "Print a * b", func(x, y bignum.BigInt) (bignum.BigInt, error) { return bignum.Mul(x, y), nil }),
		newBinaryCmd(a, "div", "Print a / b truncated toward zero", bignum.Div),
		newBinaryCmd(a, "mod", "Print a - (a/b)*b", bignum.Mod),
		newBinaryCmd(a, "gcd", "Print the greatest common divisor of |a| and |b|", func(x, y bignum.BigInt) (bignum.BigInt, error) { return bignum.GCD(x, y), nil }),
		newUnaryCmd(a, "neg", "Print -a", bignum.BigInt.Negated),
		newUnaryCmd(a, "abs", "Print |a|", bignum.BigInt.Abs),
		newCmpCmd(a),
		newAllCmd(a),
		newPrimeCmd(a),
		newFactCmd(a),
		newCacheCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup reads the persistent flags once, before any subcommand runs.
func (a *app) setup(cmd *cobra.Command) error {
	root := cmd.Root()

	colorMode, err := root.PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	if err := applyColorMode(colorMode); err != nil {
		return err
	}

	if err := a.loadConfig(cmd); err != nil {
		return err
	}

	cleanupTrace, err := a.setupTracing(cmd)
	if err != nil {
		return err
	}
	a.cleanups = append(a.cleanups, cleanupTrace)

	cleanupProf, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	a.cleanups = append(a.cleanups, cleanupProf)

	ctx := cmd.Context()
	a.span = trace.Begin(trace.FromContext(ctx), trace.ScopeCommand, cmd.Name(), 0)
	if a.cfgPath != "" {
		a.span.WithExtra("config", a.cfgPath)
	}
	cmd.SetContext(trace.WithSpan(ctx, a.span))
	return nil
}

// close runs cleanups in reverse registration order.
func (a *app) close() {
	for i := len(a.cleanups) - 1; i >= 0; i-- {
		a.cleanups[i]()
	}
	a.cleanups = nil
}

// applyColorMode sets color.NoColor for both fatih/color and version.Pretty.
func applyColorMode(value string) error {
	mode, err := parseTristate("color", value)
	if err != nil {
		return err
	}
	color.NoColor = !mode.enabled(os.Stdout)
	return nil
}

var errorLabel = color.New(color.FgRed, color.Bold)

func printError(w io.Writer, err error) {
	msg := err.Error()
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		msg = "timed out: " + msg
	case errors.Is(err, context.Canceled):
		msg = "interrupted"
	}
	fmt.Fprintf(w, "%s %s\n", errorLabel.Sprint("error:"), msg)
}

// isTerminal reports whether f is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // G115: file descriptors fit in int.
}
