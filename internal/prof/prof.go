// Package prof wires runtime/pprof into the CLI so expensive operations
// (large factorials, long divisions) can be profiled from the command line.
package prof

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
)

// Session holds the profiles requested for one command.
type Session struct {
	cpuFile *os.File
	memPath string
}

// Start begins CPU profiling into cpuPath when it is non-empty and remembers
// memPath for a heap profile written by Stop. Both paths may be empty.
func Start(cpuPath, memPath string) (*Session, error) {
	s := &Session{memPath: memPath}
	if cpuPath == "" {
		return s, nil
	}
	f, err := os.Create(cpuPath)
	if err != nil {
		return nil, fmt.Errorf("cpu profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("cpu profile: %w", err)
	}
	s.cpuFile = f
	return s, nil
}

// Stop ends CPU profiling and writes the heap profile, if any.
func (s *Session) Stop() error {
	if s == nil {
		return nil
	}
	var errs []error
	if s.cpuFile != nil {
		pprof.StopCPUProfile()
		if err := s.cpuFile.Close(); err != nil {
			errs = append(errs, fmt.Errorf("cpu profile: %w", err))
		}
		s.cpuFile = nil
	}
	if s.memPath != "" {
		if err := writeHeap(s.memPath); err != nil {
			errs = append(errs, fmt.Errorf("heap profile: %w", err))
		}
		s.memPath = ""
	}
	return errors.Join(errs...)
}

func writeHeap(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()
	runtime.GC()
	return pprof.WriteHeapProfile(f)
}
