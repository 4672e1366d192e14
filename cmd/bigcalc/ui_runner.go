package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"bigcalc/internal/bignum"
	"bigcalc/internal/ui"
)

type factorialOutcome struct {
	value bignum.BigInt
	err   error
}

// runFactorialWithUI computes n! while a progress display fed by counter runs
// on out. Quitting the display cancels the computation.
func runFactorialWithUI(ctx context.Context, out io.Writer, title string, n bignum.BigInt, total uint64, counter *ui.Counter, cfg bignum.FactorialConfig) (bignum.BigInt, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg.Progress = counter
	display := make(chan ui.Outcome, 1)
	outcomeCh := make(chan factorialOutcome, 1)

	go func() {
		v, err := bignum.Factorial(ctx, n, cfg)
		outcomeCh <- factorialOutcome{value: v, err: err}
		res := ui.Outcome{Err: err}
		if err == nil {
			res.Text = v.String()
		}
		display <- res
		close(display)
	}()

	model := ui.NewProgressModel(title, total, counter, display)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithContext(ctx))
	final, uiErr := program.Run()
	interrupted := ui.Interrupted(final)
	if interrupted {
		cancel()
	}
	outcome := <-outcomeCh
	switch {
	case interrupted:
		return bignum.Zero(), context.Canceled
	case outcome.err != nil:
		return outcome.value, outcome.err
	default:
		return outcome.value, uiErr
	}
}
