package bench

import (
	"fmt"

	"github.com/ZanzyTHEbar/statbench/statbench/config"
)

// Phase is one round of measurements, run for every provider in turn.
type Phase struct {
	Label      string
	Op         Op
	Iterations int
	Warmup     bool
}

// Plan is the ordered list of phases of a benchmark run.
type Plan []Phase

// BuildPlan lays out the warmup rounds and then the numbered test rounds, stat
// series first and walk series second.
func BuildPlan(statSeries, walkSeries config.SeriesConfig) Plan {
	var plan Plan
	plan = appendSeries(plan, OpStat, statSeries)
	plan = appendSeries(plan, OpWalk, walkSeries)
	return plan
}

// DefaultPlan is the stock schedule: three stat warmups of 1000, stat tests of
// 2000, 2000, 500000, 500000, three walk warmups of 500 and walk tests of 2000,
// 2000, 5000, 5000.
func DefaultPlan() Plan {
	cfg := config.Default()
	return BuildPlan(cfg.Bench.Stat, cfg.Bench.Walk)
}

func appendSeries(plan Plan, op Op, series config.SeriesConfig) Plan {
	for range series.WarmupRounds {
		plan = append(plan, Phase{
			Label:      fmt.Sprintf("%s warmup", op),
			Op:         op,
			Iterations: series.WarmupIterations,
			Warmup:     true,
		})
	}
	for i, n := range series.Tests {
		plan = append(plan, Phase{
			Label:      fmt.Sprintf("%s test %d", op, i+1),
			Op:         op,
			Iterations: n,
		})
	}
	return plan
}
