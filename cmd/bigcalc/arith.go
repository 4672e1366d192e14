package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"bigcalc/internal/bignum"
	"bigcalc/internal/trace"
)

type binaryOp func(x, y bignum.BigInt) (bignum.BigInt, error)

func newBinaryCmd(a *app, name, short string, op binaryOp) *cobra.Command {
	return &cobra.Command{
		Use:   name + " a b",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			vals, err := a.parseArgs(args)
			if err != nil {
				return err
			}
			var out bignum.BigInt
			err = a.compute(cmd.Context(), name, func() error {
				out, err = op(vals[0], vals[1])
				return err
			})
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			return a.printValues(cmd, out)
		},
	}
}

func newUnaryCmd(a *app, name, short string, op func(bignum.BigInt) bignum.BigInt) *cobra.Command {
	return &cobra.Command{
		Use:   name + " a",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vals, err := a.parseArgs(args)
			if err != nil {
				return err
			}
			var out bignum.BigInt
			_ = a.compute(cmd.Context(), name, func() error {
				out = op(vals[0])
				return nil
			})
			return a.printValues(cmd, out)
		},
	}
}

var (
	lessColor    = color.New(color.FgCyan)
	equalColor   = color.New(color.FgGreen)
	greaterColor = color.New(color.FgYellow)
)

func newCmpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cmp a b",
		Short: "Print -1, 0 or 1 as a is less than, equal to or greater than b",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			vals, err := a.parseArgs(args)
			if err != nil {
				return err
			}
			var c int
			_ = a.compute(cmd.Context(), "cmp", func() error {
				c = vals[0].Cmp(vals[1])
				return nil
			})
			painter := equalColor
			switch {
			case c < 0:
				painter = lessColor
			case c > 0:
				painter = greaterColor
			}
			_, err = painter.Fprintln(cmd.OutOrStdout(), strconv.Itoa(c))
			return err
		},
	}
}

func newAllCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "all a b",
		Short: "Print a+b, b-a, a*b, b/a and b%a",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			vals, err := a.parseArgs(args)
			if err != nil {
				return err
			}
			x, y := vals[0], vals[1]
			steps := []struct {
				label string
				op    binaryOp
			}{
				{"a + b", func(x, y bignum.BigInt) (bignum.BigInt, error) { return bignum.Add(x, y), nil }},
				{"b - a", func(x, y bignum.BigInt) (bignum.BigInt, error) { return bignum.Sub(y, x), nil }},
				{"a * b", func(x, y bignum.BigInt) (bignum.BigInt, error) { return bignum.Mul(x, y), nil }},
				{"b / a", func(x, y bignum.BigInt) (bignum.BigInt, error) { return bignum.Div(y, x) }},
				{"b % a", func(x, y bignum.BigInt) (bignum.BigInt, error) { return bignum.Mod(y, x) }},
			}
			out := cmd.OutOrStdout()
			for _, step := range steps {
				var v bignum.BigInt
				err := a.compute(cmd.Context(), step.label, func() error {
					var err error
					v, err = step.op(x, y)
					return err
				})
				if err != nil {
					return fmt.Errorf("%s: %w", step.label, err)
				}
				if _, err := fmt.Fprintf(out, "%s = %s\n", step.label, a.format(v)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// compute runs fn as the "compute" timer phase inside an op span.
func (a *app) compute(ctx context.Context, name string, fn func() error) error {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeOp, name, trace.CurrentSpan(ctx).SpanID)
	err := a.timer.Track("compute", fn)
	if err != nil {
		span.End(err.Error())
		return err
	}
	span.End("")
	return nil
}

// format renders v as the "format" timer phase.
func (a *app) format(v bignum.BigInt) string {
	var text string
	_ = a.timer.Track("format", func() error {
		text = v.String()
		return nil
	})
	return text
}

func (a *app) printValues(cmd *cobra.Command, vals ...bignum.BigInt) error {
	for _, v := range vals {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), a.format(v)); err != nil {
			return err
		}
	}
	return nil
}
