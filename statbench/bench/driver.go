// Package bench times stat providers over repeated stat and walk operations.
package bench

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ZanzyTHEbar/statbench/statbench/filesystem/stat"
	"github.com/ZanzyTHEbar/statbench/statbench/metadata"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/panics"
)

// Op names the measured operation
type Op string

const (
	OpStat Op = "stat"
	OpWalk Op = "walk"
)

// Result is one timed measurement of one provider.
type Result struct {
	Phase      string
	Op         Op
	Provider   string
	Iterations int
	Warmup     bool
	Elapsed    time.Duration
}

// PerIteration returns Elapsed divided by Iterations, or 0 when nothing ran.
func (r Result) PerIteration() time.Duration {
	if r.Iterations <= 0 {
		return 0
	}
	return r.Elapsed / time.Duration(r.Iterations)
}

// Driver runs timed loops and prints a line naming the provider followed by the
// elapsed time, in the format:
//
//	stat using NativeStat
//	time:      1234567ns
type Driver struct {
	out    io.Writer
	logger zerolog.Logger
	now    func() time.Time
}

// DriverOption configures a Driver
type DriverOption func(*Driver)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) DriverOption {
	return func(d *Driver) {
		d.now = now
	}
}

// NewDriver creates a Driver printing to out, or stdout if nil.
func NewDriver(out io.Writer, logger zerolog.Logger, opts ...DriverOption) *Driver {
	if out == nil {
		out = os.Stdout
	}
	d := &Driver{
		out:    out,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Header prints the blank separator line and the phase title.
func (d *Driver) Header(label string, iterations int) {
	fmt.Fprintln(d.out)
	fmt.Fprintf(d.out, "%s: %d iterations\n", label, iterations)
}

// MeasureStat calls p.Stat once per target, in order, count times.
func (d *Driver) MeasureStat(p stat.Provider, count int, targets ...string) (Result, error) {
	fmt.Fprintf(d.out, "stat using %s\n", p.Name())

	elapsed, err := d.timed(func() error {
		for range count {
			for _, target := range targets {
				if _, err := p.Stat(target); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("stat using %s: %w", p.Name(), err)
	}

	return d.report(Result{Op: OpStat, Provider: p.Name(), Iterations: count, Elapsed: elapsed}), nil
}

// MeasureWalk walks root count times. Every repetition starts from a freshly
// allocated result slice, and that allocation is part of the measured time.
func (d *Driver) MeasureWalk(p stat.Provider, count int, root string) (Result, error) {
	fmt.Fprintf(d.out, "walk using %s\n", p.Name())

	elapsed, err := d.timed(func() error {
		for range count {
			records := make([]metadata.Record, 0)
			if _, err := p.Walk(root, records); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("walk using %s: %w", p.Name(), err)
	}

	return d.report(Result{Op: OpWalk, Provider: p.Name(), Iterations: count, Elapsed: elapsed}), nil
}

// timed measures fn between two clock reads. A panic inside a provider is
// returned as an error instead of unwinding the caller.
func (d *Driver) timed(fn func() error) (time.Duration, error) {
	var (
		pc      panics.Catcher
		elapsed time.Duration
		err     error
	)
	pc.Try(func() {
		start := d.now()
		err = fn()
		elapsed = d.now().Sub(start)
	})
	if r := pc.Recovered(); r != nil {
		return 0, r.AsError()
	}
	if err != nil {
		return 0, err
	}
	return max(elapsed, 0), nil
}

func (d *Driver) report(res Result) Result {
	fmt.Fprintf(d.out, "time: %12dns\n", res.Elapsed.Nanoseconds())
	d.logger.Debug().
		Str("op", string(res.Op)).
		Str("provider", res.Provider).
		Int("iterations", res.Iterations).
		Dur("elapsed", res.Elapsed).
		Msg("Measurement finished")
	return res
}
