package bench

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/statbench/statbench/filesystem/stat"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Targets are the paths a run measures against.
type Targets struct {
	WalkRoot string
	Stat     []string
}

// Observer receives every result as soon as it is measured.
type Observer interface {
	Observe(Result)
}

// Runner executes a Plan against a list of providers.
type Runner struct {
	driver    *Driver
	logger    zerolog.Logger
	observers []Observer
}

// NewRunner creates a Runner that measures through driver.
func NewRunner(driver *Driver, logger zerolog.Logger, observers ...Observer) *Runner {
	return &Runner{
		driver:    driver,
		logger:    logger,
		observers: observers,
	}
}

// Run executes every phase for every provider, in order, on the calling goroutine.
// The first error stops the run; results measured so far are discarded.
func (r *Runner) Run(ctx context.Context, plan Plan, providers []stat.Provider, targets Targets) ([]Result, error) {
	runID := uuid.New().String()
	logger := r.logger.With().Str("run_id", runID).Logger()

	logger.Info().
		Int("phases", len(plan)).
		Int("providers", len(providers)).
		Str("walk_root", targets.WalkRoot).
		Msg("Starting benchmark run")

	results := make([]Result, 0, len(plan)*len(providers))

	for _, phase := range plan {
		r.driver.Header(phase.Label, phase.Iterations)

		for _, p := range providers {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("benchmark interrupted before %s: %w", phase.Label, err)
			}

			res, err := r.measure(phase, p, targets)
			if err != nil {
				logger.Error().Err(err).Str("phase", phase.Label).Str("provider", p.Name()).Msg("Measurement failed")
				return nil, fmt.Errorf("%s: %w", phase.Label, err)
			}
			res.Phase = phase.Label
			res.Warmup = phase.Warmup

			for _, o := range r.observers {
				o.Observe(res)
			}
			results = append(results, res)
		}
	}

	logger.Info().Int("measurements", len(results)).Msg("Benchmark run completed")
	return results, nil
}

func (r *Runner) measure(phase Phase, p stat.Provider, targets Targets) (Result, error) {
	switch phase.Op {
	case OpStat:
		return r.driver.MeasureStat(p, phase.Iterations, targets.Stat...)
	case OpWalk:
		return r.driver.MeasureWalk(p, phase.Iterations, targets.WalkRoot)
	default:
		return Result{}, fmt.Errorf("unknown operation %q", phase.Op)
	}
}
