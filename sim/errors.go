package sim

import (
	"fmt"
	"strings"
)

// CapacityExceededError reports a put request that could never fit: the
// requested amount alone is larger than the container's total capacity, or
// a load step would push cargo past a vessel's rated maximum. It signals a
// configuration or sizing fault, never a transient shortage, so the engine
// aborts the run instead of retrying.
type CapacityExceededError struct {
	Resource  string  // container the request was made against
	Requested float64 // tons asked for
	Capacity  float64 // hard upper bound in tons
	Level     float64 // fill level at the time of the request
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("capacity exceeded on %s: requested %.1ft against capacity %.1ft (level %.1ft)",
		e.Resource, e.Requested, e.Capacity, e.Level)
}

// InsufficientAmountError reports a get request that cannot be honored:
// either the amount is structurally impossible (negative, or above the
// container's total capacity) or an installation step found less material
// on board than its work requires.
type InsufficientAmountError struct {
	Resource  string  // container the request was made against
	Requested float64 // tons asked for
	Available float64 // tons present at the time of the request
}

func (e *InsufficientAmountError) Error() string {
	return fmt.Sprintf("insufficient amount in %s: requested %.1ft, %.1ft available",
		e.Resource, e.Requested, e.Available)
}

// VesselStateError reports a vessel whose location no longer matches any
// branch of its work loop. It only fires on orchestration bugs, so the
// message is deliberately loud.
type VesselStateError struct {
	Vessel string
	State  VesselLocation
}

func (e *VesselStateError) Error() string {
	return fmt.Sprintf("vessel %s is lost at sea (state %q)", e.Vessel, string(e.State))
}

// DeadlockError reports a run that can no longer make progress: the event
// queue drained while processes were still parked on resource waits, or a
// constraint evaluator found no feasible window. Waiting lists what each
// blocked party was waiting for.
type DeadlockError struct {
	Time    float64 // simulated hours at which progress stopped
	Waiting []string
}

func (e *DeadlockError) Error() string {
	return fmt.Sprintf("simulation deadlocked at %.2fh: %s", e.Time, strings.Join(e.Waiting, "; "))
}
