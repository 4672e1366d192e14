package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"bigcalc/internal/trace"
)

// traceFlags are the persistent --trace* flags.
type traceFlags struct {
	output    string
	level     string
	mode      string
	format    string
	ringSize  int
	heartbeat time.Duration
}

func readTraceFlags(cmd *cobra.Command) (traceFlags, error) {
	fs := cmd.Root().PersistentFlags()
	output, errOutput := fs.GetString("trace")
	level, errLevel := fs.GetString("trace-level")
	mode, errMode := fs.GetString("trace-mode")
	format, errFormat := fs.GetString("trace-format")
	ringSize, errRing := fs.GetInt("trace-ring-size")
	heartbeat, errBeat := fs.GetDuration("trace-heartbeat")
	if err := errors.Join(errOutput, errLevel, errMode, errFormat, errRing, errBeat); err != nil {
		return traceFlags{}, fmt.Errorf("trace flags: %w", err)
	}
	return traceFlags{output, level, mode, format, ringSize, heartbeat}, nil
}

// config turns the flags into a trace.Config. --trace without --trace-level
// means phase level.
func (f traceFlags) config() (trace.Config, error) {
	level, err := trace.ParseLevel(f.level)
	if err != nil {
		return trace.Config{}, err
	}
	if level == trace.LevelOff && f.output != "" {
		level = trace.LevelPhase
	}
	cfg := trace.Config{Level: level, OutputPath: f.output, RingSize: f.ringSize}
	if level == trace.LevelOff {
		return cfg, nil
	}
	if cfg.Mode, err = trace.ParseMode(f.mode); err != nil {
		return cfg, err
	}
	var ok bool
	if cfg.Format, ok = trace.ParseFormat(f.format); !ok {
		return cfg, fmt.Errorf("invalid trace format %q (expected auto|text|ndjson)", f.format)
	}
	return cfg, nil
}

// setupTracing installs the tracer in the command context and starts the
// heartbeat. The returned cleanup stops both.
func (a *app) setupTracing(cmd *cobra.Command) (func(), error) {
	flags, err := readTraceFlags(cmd)
	if err != nil {
		return nil, err
	}
	cfg, err := flags.config()
	if err != nil {
		return nil, err
	}
	if cfg.OutputPath == "" || cfg.OutputPath == "-" {
		cfg.Output = trace.NopCloser(cmd.ErrOrStderr())
	}

	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	a.ring = trace.RingOf(tracer)
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))
	heartbeat := trace.StartHeartbeat(tracer, flags.heartbeat, a.heartbeatStatus)

	return func() {
		heartbeat.Stop()
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: %v\n", err)
		}
	}, nil
}

// heartbeatStatus reports factorial progress, or nothing before any factor
// has been folded.
func (a *app) heartbeatStatus() string {
	done := a.progress.Done()
	if done == 0 {
		return ""
	}
	return "folded=" + strconv.FormatUint(done, 10)
}
