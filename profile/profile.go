package profile

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
)

// ErrProfile is returned when a profile cannot be started or written.
var ErrProfile = errors.New("profile")

// Session is a running profiling session.
//
// Create instances with [Config.Start].
type Session struct {
	cpuFile   *os.File
	snapshots []snapshot
}

type snapshot struct {
	name string
	path string
}

// Start applies the sampling rates and starts CPU profiling if enabled. The
// returned [Session] must be stopped to write the enabled profiles.
func (c *Config) Start() (*Session, error) {
	s := &Session{}

	for _, snap := range []snapshot{
		{"heap", c.HeapProfile},
		{"goroutine", c.GoroutineProfile},
		{"block", c.BlockProfile},
		{"mutex", c.MutexProfile},
	} {
		if snap.path != "" {
			s.snapshots = append(s.snapshots, snap)
		}
	}

	if c.HeapProfile != "" && c.MemProfileRate > 0 {
		runtime.MemProfileRate = c.MemProfileRate
	}

	if c.BlockProfile != "" {
		runtime.SetBlockProfileRate(c.BlockProfileRate)
	}

	if c.MutexProfile != "" {
		runtime.SetMutexProfileFraction(c.MutexProfileFraction)
	}

	if c.CPUProfile == "" {
		return s, nil
	}

	f, err := os.Create(c.CPUProfile) //nolint:gosec // Profile path from CLI flag is expected.
	if err != nil {
		return nil, fmt.Errorf("%w: create cpu profile: %w", ErrProfile, err)
	}

	err = pprof.StartCPUProfile(f)
	if err != nil {
		return nil, errors.Join(
			fmt.Errorf("%w: start cpu profile: %w", ErrProfile, err),
			f.Close(),
		)
	}

	s.cpuFile = f

	return s, nil
}

// Stop stops CPU profiling and writes every enabled snapshot profile. It
// keeps going after a failure and returns all errors joined.
func (s *Session) Stop() error {
	var errs []error

	if s.cpuFile != nil {
		pprof.StopCPUProfile()

		err := s.cpuFile.Close()
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: close cpu profile: %w", ErrProfile, err))
		}

		s.cpuFile = nil
	}

	for _, snap := range s.snapshots {
		err := writeProfile(snap.name, snap.path)
		if err != nil {
			errs = append(errs, err)
		}
	}

	s.snapshots = nil

	return errors.Join(errs...)
}

func writeProfile(name, path string) error {
	prof := pprof.Lookup(name)
	if prof == nil {
		return fmt.Errorf("%w: unknown profile %q", ErrProfile, name)
	}

	f, err := os.Create(path) //nolint:gosec // Profile path from CLI flag is expected.
	if err != nil {
		return fmt.Errorf("%w: create %s profile: %w", ErrProfile, name, err)
	}

	err = prof.WriteTo(f, 0)
	if err != nil {
		return errors.Join(
			fmt.Errorf("%w: write %s profile: %w", ErrProfile, name, err),
			f.Close(),
		)
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("%w: write %s profile: %w", ErrProfile, name, err)
	}

	return nil
}
