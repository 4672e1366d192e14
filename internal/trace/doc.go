// Package trace records spans for long bigcalc computations.
//
// A factorial of a six-digit n or a trial-division primality test of a
// large value can run for a long time. Spans show where that time goes, and
// heartbeats show the process is still alive between span ends.
//
//	bigcalc fact 5000 --trace=- --trace-level=detail
//
// Events are delivered to a Tracer. StreamTracer writes each one as it
// happens, RingTracer keeps the last N in memory for a dump after a failure,
// and MultiTracer feeds both. Nop discards everything.
//
// Every event has a Scope and the tracer's Level bounds which scopes pass:
// phase admits commands and operations, detail adds range-product splits,
// and debug adds the leaves multiplied at the bottom of a range product.
//
// Tracers and the enclosing span travel in a context.Context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeOp, "factorial", trace.CurrentSpan(ctx).SpanID)
//	defer span.End("")
package trace
