package weather

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	sim "github.com/windlass-sim/windlass-sim/sim"
)

// Operability summarizes how workable a series is for one operation
// kind: the fraction of hours its limits permit, plus the condition
// statistics planners quote alongside it.
type Operability struct {
	Kind             sim.OperationKind `json:"kind"`
	FeasibleFraction float64           `json:"feasible_fraction"`
	MeanWindspeed    float64           `json:"mean_windspeed_ms"`
	P90Windspeed     float64           `json:"p90_windspeed_ms"`
	MeanWaveheight   float64           `json:"mean_waveheight_m"`
	P90Waveheight    float64           `json:"p90_waveheight_m"`
}

// Operability computes series-wide workability for kind under the
// evaluator's limits. Kinds with no limits report fraction 1.
func (e *Evaluator) Operability(kind sim.OperationKind) Operability {
	op := Operability{Kind: kind}
	n := e.series.Len()
	if n == 0 {
		return op
	}
	feasible := 0
	for i := 0; i < n; i++ {
		if e.IsFeasible(float64(i), kind) {
			feasible++
		}
	}
	op.FeasibleFraction = float64(feasible) / float64(n)
	op.MeanWindspeed = stat.Mean(e.series.Windspeed, nil)
	op.MeanWaveheight = stat.Mean(e.series.Waveheight, nil)
	op.P90Windspeed = quantile(e.series.Windspeed, 0.9)
	op.P90Waveheight = quantile(e.series.Waveheight, 0.9)
	return op
}

// quantile returns the q-quantile of values. stat.Quantile expects
// sorted input, so it works on a copy.
func quantile(values []float64, q float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return stat.Quantile(q, stat.Empirical, sorted, nil)
}
