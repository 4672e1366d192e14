package bignum

import (
	"context"
	"fmt"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"

	"bigcalc/internal/trace"
)

// DefaultForkThreshold is the range length above which a range product hands
// its left half to the worker pool.
const DefaultForkThreshold = 128

// ProgressSink receives the number of integers folded into the product as
// leaf ranges complete. Advance may be called from several goroutines.
type ProgressSink interface {
	Advance(count uint64)
}

// FactorialConfig controls Factorial.
type FactorialConfig struct {
	// Jobs caps the forked range products running at once.
	// Zero or negative means runtime.GOMAXPROCS(0).
	Jobs int
	// ForkThreshold is the range length above which the left half is forked.
	// Zero means DefaultForkThreshold.
	ForkThreshold uint64
	// MaxInput rejects n > MaxInput with ErrOverflow. Zero disables the cap.
	MaxInput uint64
	// Progress is optional.
	Progress ProgressSink
}

// Factorial returns n! computed as a balanced range product of [1, n].
//
// Large sub-ranges are multiplied concurrently on a bounded pool of
// cfg.Jobs goroutines; when the pool is full the work runs inline on the
// caller, so the recursion never waits for a free slot. The result does not
// depend on scheduling. Cancelling ctx aborts the computation with ctx.Err().
func Factorial(ctx context.Context, n BigInt, cfg FactorialConfig) (BigInt, error) {
	if n.IsNeg() {
		return Zero(), fmt.Errorf("%w: factorial of negative value %s", ErrInvalidArgument, n)
	}
	v, ok := n.Uint64()
	if !ok {
		return Zero(), fmt.Errorf("%w: factorial of %s", ErrOverflow, n)
	}
	if cfg.MaxInput > 0 && v > cfg.MaxInput {
		return Zero(), fmt.Errorf("%w: factorial of %s exceeds limit %d", ErrOverflow, n, cfg.MaxInput)
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeOp, "factorial", trace.CurrentSpan(ctx).SpanID).
		WithExtra("n", strconv.FormatUint(v, 10))

	if v <= 1 {
		if cfg.Progress != nil && v == 1 {
			cfg.Progress.Advance(1)
		}
		span.End("trivial")
		return One(), nil
	}

	jobs := cfg.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	threshold := cfg.ForkThreshold
	if threshold == 0 {
		threshold = DefaultForkThreshold
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	p := &rangeProducer{
		ctx:       gctx,
		g:         g,
		threshold: threshold,
		progress:  cfg.Progress,
		tracer:    tracer,
	}
	m, err := p.product(1, v, span.ID())
	// Every fork has been joined by its parent; Wait only collects the error.
	if waitErr := g.Wait(); err == nil {
		err = waitErr
	}
	if err != nil {
		span.End("aborted: " + err.Error())
		return Zero(), err
	}
	out := makeInt(false, m)
	span.WithExtra("limbs", strconv.Itoa(len(out.limbs))).End("")
	return out, nil
}

type rangeProducer struct {
	ctx       context.Context
	g         *errgroup.Group
	threshold uint64
	progress  ProgressSink
	tracer    trace.Tracer
}

type rangeResult struct {
	mag nat
	err error
}

// product returns the product of every integer in [lo, hi].
func (p *rangeProducer) product(lo, hi, parent uint64) (nat, error) {
	if err := p.ctx.Err(); err != nil {
		return nil, err
	}
	switch {
	case lo > hi:
		return nat{1}, nil
	case lo == hi:
		p.leaf(lo, hi, parent)
		return natFromUint64(lo), nil
	case hi == lo+1:
		p.leaf(lo, hi, parent)
		return mulMag(natFromUint64(lo), natFromUint64(hi)), nil
	}

	mid := lo + (hi-lo)/2
	span := trace.Begin(p.tracer, trace.ScopeRange, "range", parent).
		WithExtra("lo", strconv.FormatUint(lo, 10)).
		WithExtra("hi", strconv.FormatUint(hi, 10))

	left, right, err := p.halves(lo, mid, hi, span)
	if err != nil {
		span.End("aborted")
		return nil, err
	}
	out := mulMag(left, right)
	span.End("")
	return out, nil
}

// halves computes [lo, mid] and [mid+1, hi]. Long ranges offer the left half
// to the pool and compute the right half on the calling goroutine.
func (p *rangeProducer) halves(lo, mid, hi uint64, span *trace.Span) (left, right nat, err error) {
	if hi-lo+1 > p.threshold {
		ch := make(chan rangeResult, 1)
		forked := p.g.TryGo(func() error {
			m, err := p.product(lo, mid, span.ID())
			ch <- rangeResult{mag: m, err: err}
			return err
		})
		if forked {
			span.WithExtra("forked", "true")
			right, err = p.product(mid+1, hi, span.ID())
			res := <-ch
			if err == nil {
				err = res.err
			}
			return res.mag, right, err
		}
	}
	if left, err = p.product(lo, mid, span.ID()); err != nil {
		return nil, nil, err
	}
	if right, err = p.product(mid+1, hi, span.ID()); err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

func (p *rangeProducer) leaf(lo, hi, parent uint64) {
	if p.progress != nil {
		p.progress.Advance(hi - lo + 1)
	}
	if p.tracer.Level().ShouldEmit(trace.ScopeLeaf) {
		trace.Begin(p.tracer, trace.ScopeLeaf, "leaf", parent).
			WithExtra("lo", strconv.FormatUint(lo, 10)).
			WithExtra("hi", strconv.FormatUint(hi, 10)).
			End("")
	}
}
