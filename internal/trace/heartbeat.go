package trace

import (
	"context"
	"strconv"
	"time"
)

// Heartbeat emits a KindHeartbeat event every interval until stopped. A trace
// that keeps beating without span ends points at one huge multiplication or
// a primality test that is still grinding; the status text says how far it got.
type Heartbeat struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// StartHeartbeat starts beating on tracer. status, if non-nil, is called on
// every beat and its result appended to the event detail. It returns nil when
// the tracer is disabled or interval is not positive.
func StartHeartbeat(tracer Tracer, interval time.Duration, status func() string) *Heartbeat {
	if tracer == nil || !tracer.Enabled() || interval <= 0 {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	h := &Heartbeat{cancel: cancel, done: make(chan struct{})}
	go h.run(ctx, tracer, interval, status)
	return h
}

func (h *Heartbeat) run(ctx context.Context, tracer Tracer, interval time.Duration, status func() string) {
	defer close(h.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	gid := getGoroutineID()
	for beat := uint64(1); ; beat++ {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		detail := "#" + strconv.FormatUint(beat, 10)
		if status != nil {
			if s := status(); s != "" {
				detail += " " + s
			}
		}
		tracer.Emit(&Event{
			Time:   time.Now(),
			Seq:    NextSeq(),
			Kind:   KindHeartbeat,
			Scope:  ScopeCommand,
			GID:    gid,
			Name:   "heartbeat",
			Detail: detail,
		})
	}
}

// Stop ends the heartbeat and waits for its goroutine. It is safe on a nil
// Heartbeat and may be called more than once.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.cancel()
	<-h.done
}
