package main

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"bigcalc/internal/bignum"
)

// parseOperand normalizes s to NFKC before strict parsing, so fullwidth
// digits and signs typed through an input method read as ASCII.
func parseOperand(s string) (bignum.BigInt, error) {
	v, err := bignum.Parse(norm.NFKC.String(s))
	if err != nil {
		return bignum.Zero(), fmt.Errorf("operand %q: %w", s, err)
	}
	return v, nil
}

func parseOperands(args []string) ([]bignum.BigInt, error) {
	out := make([]bignum.BigInt, len(args))
	for i, arg := range args {
		v, err := parseOperand(arg)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// parseArgs parses every operand as the "parse" timer phase.
func (a *app) parseArgs(args []string) ([]bignum.BigInt, error) {
	var vals []bignum.BigInt
	err := a.timer.Track("parse", func() error {
		var err error
		vals, err = parseOperands(args)
		return err
	})
	return vals, err
}
