package sim

// OperationKind classifies a timed operation for constraint evaluation.
// Operating limits are looked up per kind, so a cargo drop can carry a
// tighter sea-state limit than a transit.
type OperationKind string

const (
	OpTransit  OperationKind = "transit"
	OpLoad     OperationKind = "load"
	OpDrop     OperationKind = "drop"
	OpMobilize OperationKind = "mobilize"
)

// ConstraintEvaluator answers whether an operation may start at a given
// simulated time, and when it next can. Implementations must be pure
// functions of (time, kind): the engine calls them repeatedly for the
// same instant and expects the same answer every time.
type ConstraintEvaluator interface {
	// IsFeasible reports whether kind may start at time now.
	IsFeasible(now float64, kind OperationKind) bool

	// NextFeasibleTime returns the earliest time >= now at which kind may
	// start. ok is false when no such time exists; the vessel then aborts
	// the run with a DeadlockError instead of waiting forever.
	NextFeasibleTime(now float64, kind OperationKind) (next float64, ok bool)
}

// Unconstrained permits every operation immediately. It is the evaluator
// vessels get when no weather series is loaded.
type Unconstrained struct{}

// IsFeasible always reports true.
func (Unconstrained) IsFeasible(float64, OperationKind) bool { return true }

// NextFeasibleTime always returns now.
func (Unconstrained) NextFeasibleTime(now float64, _ OperationKind) (float64, bool) {
	return now, true
}
