package weather

import (
	"math"

	sim "github.com/windlass-sim/windlass-sim/sim"
)

// Limits caps the conditions an operation may start and run in. A zero
// value for either measure leaves that measure unlimited.
type Limits struct {
	MaxWindspeed  float64 // m/s
	MaxWaveheight float64 // m
}

// permits reports whether one hour's conditions satisfy the limits.
func (l Limits) permits(wind, wave float64) bool {
	if l.MaxWindspeed > 0 && wind > l.MaxWindspeed {
		return false
	}
	if l.MaxWaveheight > 0 && wave > l.MaxWaveheight {
		return false
	}
	return true
}

// Evaluator gates operations on an hourly weather series. Kinds with no
// configured limits are always feasible. Times past the end of the
// series are infeasible with no next window, so a run that outlasts its
// forecast aborts with a deadlock report instead of inventing weather.
type Evaluator struct {
	series *Series
	limits map[sim.OperationKind]Limits
}

var _ sim.ConstraintEvaluator = (*Evaluator)(nil)

// NewEvaluator builds an evaluator over series with per-kind limits.
func NewEvaluator(series *Series, limits map[sim.OperationKind]Limits) *Evaluator {
	return &Evaluator{series: series, limits: limits}
}

// VesselLimits maps a vessel's operating limits onto each weather-gated
// operation kind it performs. Mobilization happens quayside and is
// deliberately absent.
func VesselLimits(spec sim.VesselSpec) map[sim.OperationKind]Limits {
	l := Limits{MaxWindspeed: spec.MaxWindspeed, MaxWaveheight: spec.MaxWaveheight}
	return map[sim.OperationKind]Limits{
		sim.OpTransit: l,
		sim.OpLoad:    l,
		sim.OpDrop:    l,
	}
}

// IsFeasible reports whether kind may start at time now.
func (e *Evaluator) IsFeasible(now float64, kind sim.OperationKind) bool {
	lim, ok := e.limits[kind]
	if !ok {
		return true
	}
	idx := hourIndex(now)
	if idx >= e.series.Len() {
		return false
	}
	return lim.permits(e.series.Windspeed[idx], e.series.Waveheight[idx])
}

// NextFeasibleTime scans forward from now for the first hour whose
// conditions permit kind. Within a feasible hour it returns now itself,
// so operations can start mid-hour.
func (e *Evaluator) NextFeasibleTime(now float64, kind sim.OperationKind) (float64, bool) {
	lim, ok := e.limits[kind]
	if !ok {
		return now, true
	}
	idx := hourIndex(now)
	if idx < e.series.Len() && lim.permits(e.series.Windspeed[idx], e.series.Waveheight[idx]) {
		return now, true
	}
	for i := idx + 1; i < e.series.Len(); i++ {
		if lim.permits(e.series.Windspeed[i], e.series.Waveheight[i]) {
			return float64(i), true
		}
	}
	return 0, false
}

// hourIndex maps a simulated time to its series row.
func hourIndex(now float64) int {
	if now < 0 {
		return 0
	}
	return int(math.Floor(now))
}
