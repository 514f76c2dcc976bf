package bench

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// SummaryRow aggregates the measured (non-warmup) rounds of one provider and op.
type SummaryRow struct {
	Op       Op
	Provider string
	Rounds   int
	Mean     float64 // ns per iteration
	StdDev   float64 // ns per iteration, 0 with a single round
}

// Summarize groups results by op and provider, in first-seen order, skipping
// warmups and rounds with zero iterations.
func Summarize(results []Result) []SummaryRow {
	type key struct {
		op       Op
		provider string
	}

	var order []key
	samples := make(map[key][]float64)

	for _, res := range results {
		if res.Warmup || res.Iterations <= 0 {
			continue
		}
		k := key{res.Op, res.Provider}
		if _, seen := samples[k]; !seen {
			order = append(order, k)
		}
		samples[k] = append(samples[k], float64(res.Elapsed.Nanoseconds())/float64(res.Iterations))
	}

	rows := make([]SummaryRow, 0, len(order))
	for _, k := range order {
		xs := samples[k]
		row := SummaryRow{Op: k.op, Provider: k.provider, Rounds: len(xs)}
		if len(xs) == 1 {
			row.Mean = xs[0]
		} else {
			row.Mean, row.StdDev = stat.MeanStdDev(xs, nil)
		}
		if math.IsNaN(row.StdDev) {
			row.StdDev = 0
		}
		rows = append(rows, row)
	}
	return rows
}
