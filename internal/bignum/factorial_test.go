package bignum

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"testing"

	"bigcalc/internal/trace"
)

func sequentialFactorial(n uint64) BigInt {
	acc := One()
	for i := uint64(2); i <= n; i++ {
		acc = Mul(acc, FromUint64(i))
	}
	return acc
}

func TestFactorialTable(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{0, "1"},
		{1, "1"},
		{2, "2"},
		{5, "120"},
		{20, "2432902008176640000"},
		{25, "15511210043330985984000000"},
		{30, "265252859812191058636308480000000"},
		{100, "93326215443944152681699238856266700490715968264381621468592963895217599993229915608941463976156518286253697920827223758251185210916864000000000000000000000000"},
	}
	for _, tc := range cases {
		got, err := Factorial(context.Background(), FromInt64(tc.n), FactorialConfig{})
		if err != nil {
			t.Fatalf("Factorial(%d): %v", tc.n, err)
		}
		if got.String() != tc.want {
			t.Fatalf("Factorial(%d) = %s, want %s", tc.n, got, tc.want)
		}
	}
}

func TestFactorialErrors(t *testing.T) {
	ctx := context.Background()
	if _, err := Factorial(ctx, FromInt64(-1), FactorialConfig{}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("Factorial(-1) error = %v, want ErrInvalidArgument", err)
	}
	if _, err := Factorial(ctx, FromInt64(21), FactorialConfig{MaxInput: 20}); !errors.Is(err, ErrOverflow) {
		t.Fatalf("Factorial(21) with cap 20 error = %v, want ErrOverflow", err)
	}
	if _, err := Factorial(ctx, FromInt64(20), FactorialConfig{MaxInput: 20}); err != nil {
		t.Fatalf("Factorial(20) with cap 20: %v", err)
	}
	huge := MustParse("100000000000000000000")
	if _, err := Factorial(ctx, huge, FactorialConfig{}); !errors.Is(err, ErrOverflow) {
		t.Fatalf("Factorial(%s) error = %v, want ErrOverflow", huge, err)
	}
}

func TestFactorialDeterministic(t *testing.T) {
	const n = 600
	want := sequentialFactorial(n)
	for _, jobs := range []int{1, 2, 4, 16} {
		for _, threshold := range []uint64{2, 3, 16, 128, 1000} {
			t.Run(fmt.Sprintf("jobs=%d/threshold=%d", jobs, threshold), func(t *testing.T) {
				t.Parallel()
				got, err := Factorial(context.Background(), FromUint64(n), FactorialConfig{
					Jobs:          jobs,
					ForkThreshold: threshold,
				})
				if err != nil {
					t.Fatalf("Factorial(%d): %v", n, err)
				}
				if !got.Equal(want) {
					t.Fatalf("Factorial(%d) differs from sequential product", n)
				}
			})
		}
	}
}

type countingSink struct{ total atomic.Uint64 }

func (s *countingSink) Advance(count uint64) { s.total.Add(count) }

func TestFactorialProgress(t *testing.T) {
	for _, n := range []uint64{1, 2, 3, 7, 500} {
		sink := &countingSink{}
		if _, err := Factorial(context.Background(), FromUint64(n), FactorialConfig{
			Jobs:          4,
			ForkThreshold: 8,
			Progress:      sink,
		}); err != nil {
			t.Fatalf("Factorial(%d): %v", n, err)
		}
		if got := sink.total.Load(); got != n {
			t.Fatalf("progress for %d! = %d, want %d", n, got, n)
		}
	}
}

func TestFactorialCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Factorial(ctx, FromUint64(5000), FactorialConfig{Jobs: 2, ForkThreshold: 16})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Factorial on cancelled context error = %v, want context.Canceled", err)
	}
}

func TestFactorialTraceSpans(t *testing.T) {
	ring := trace.NewRingTracer(1024, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), ring)

	got, err := Factorial(ctx, FromUint64(10), FactorialConfig{Jobs: 1, ForkThreshold: 4})
	if err != nil {
		t.Fatalf("Factorial(10): %v", err)
	}
	if got.String() != "3628800" {
		t.Fatalf("Factorial(10) = %s", got)
	}

	counts := map[string]int{}
	var covered uint64
	var opEnd *trace.Event
	for _, ev := range ring.Snapshot() {
		if ev.Kind != trace.KindSpanEnd {
			continue
		}
		counts[ev.Name]++
		switch ev.Name {
		case "leaf":
			lo, _ := strconv.ParseUint(ev.Extra["lo"], 10, 64)
			hi, _ := strconv.ParseUint(ev.Extra["hi"], 10, 64)
			covered += hi - lo + 1
		case "factorial":
			e := ev
			opEnd = &e
		}
	}
	if opEnd == nil || opEnd.Extra["n"] != "10" {
		t.Fatalf("missing factorial op span, got %v", counts)
	}
	if counts["range"] == 0 || counts["leaf"] == 0 {
		t.Fatalf("expected range and leaf spans, got %v", counts)
	}
	if covered != 10 {
		t.Fatalf("leaves cover %d integers, want 10", covered)
	}
}

func TestFactorialTraceLevelPhase(t *testing.T) {
	ring := trace.NewRingTracer(64, trace.LevelPhase)
	ctx := trace.WithTracer(context.Background(), ring)
	if _, err := Factorial(ctx, FromUint64(50), FactorialConfig{}); err != nil {
		t.Fatalf("Factorial(50): %v", err)
	}
	for _, ev := range ring.Snapshot() {
		if ev.Scope != trace.ScopeOp {
			t.Fatalf("phase level recorded %s span %q", ev.Scope, ev.Name)
		}
	}
}
