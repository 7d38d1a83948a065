package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// VesselLocation is where a vessel currently is. The orchestrating
// process owns transitions: the timed primitives below never move the
// vessel themselves.
type VesselLocation string

const (
	AtPort    VesselLocation = "at_port"
	AtSite    VesselLocation = "at_site"
	InTransit VesselLocation = "in_transit"
)

// VesselSpec is the static description of a vessel, resolved from the
// vessel library before the run starts.
type VesselSpec struct {
	Name          string
	TransitSpeed  float64 // km/h
	MaxCargo      float64 // t
	DayRate       float64 // USD/day, reporting only
	MobilizeHours float64 // one-off mobilization before work starts
	MaxWindspeed  float64 // m/s operating limit, 0 means unlimited
	MaxWaveheight float64 // m operating limit, 0 means unlimited
}

// Vessel couples a cargo hold with timed task and transit primitives that
// respect an operating-window evaluator and account busy and delay time.
type Vessel struct {
	env         *Environment
	spec        VesselSpec
	storage     *StorageContainer
	constraints ConstraintEvaluator
	location    VesselLocation
	log         TimeLog
}

// NewVessel builds a vessel with an empty hold and registers it with the
// environment's run report. A nil evaluator means no operating limits.
func NewVessel(env *Environment, spec VesselSpec, constraints ConstraintEvaluator) *Vessel {
	if constraints == nil {
		constraints = Unconstrained{}
	}
	v := &Vessel{
		env:         env,
		spec:        spec,
		storage:     NewStorageContainer(env, spec.Name+" cargo", spec.MaxCargo, 0),
		constraints: constraints,
	}
	env.RegisterAgent(v)
	return v
}

// Name returns the vessel's name.
func (v *Vessel) Name() string { return v.spec.Name }

// Spec returns the static vessel description.
func (v *Vessel) Spec() VesselSpec { return v.spec }

// Storage returns the vessel's cargo hold.
func (v *Vessel) Storage() *StorageContainer { return v.storage }

// TimeLog returns the busy and delay hours accumulated so far.
func (v *Vessel) TimeLog() TimeLog { return v.log }

// Location returns the vessel's current location.
func (v *Vessel) Location() VesselLocation { return v.location }

// SetLocation moves the vessel. Called by the orchestrating process
// around transits, never by Task or Transit themselves.
func (v *Vessel) SetLocation(loc VesselLocation) { v.location = loc }

// Task performs one named operation of the given duration. If the
// evaluator rules the current time infeasible for kind, the vessel first
// parks until the next feasible window and books that wait as delay; the
// duration itself is booked as busy time. The completed action, including
// the delay it absorbed, goes to the action recorder.
func (v *Vessel) Task(p *Process, name string, duration float64, kind OperationKind) error {
	if duration < 0 || math.IsNaN(duration) {
		return fmt.Errorf("vessel %s: task %s has invalid duration %v", v.spec.Name, name, duration)
	}
	delay, err := v.awaitWindow(p, kind)
	if err != nil {
		return err
	}
	start := v.env.Now()
	p.Hold(duration)
	v.log.Busy += duration
	logrus.Debugf("[%9.2fh] %s: %s done (%.2fh work, %.2fh delay)",
		v.env.Now(), v.spec.Name, name, duration, delay)
	v.env.recordAction(Action{
		Agent:    v.spec.Name,
		Name:     name,
		Kind:     kind,
		Location: string(v.location),
		Start:    start,
		Duration: duration,
		Delay:    delay,
	})
	return nil
}

// Transit sails distance km at the vessel's transit speed, as a single
// constrained task. The caller flips location around the call.
func (v *Vessel) Transit(p *Process, distance float64) error {
	if v.spec.TransitSpeed <= 0 {
		return fmt.Errorf("vessel %s: transit speed %.2f must be positive", v.spec.Name, v.spec.TransitSpeed)
	}
	if distance < 0 {
		return fmt.Errorf("vessel %s: negative transit distance %.2f", v.spec.Name, distance)
	}
	return v.Task(p, "Transit", distance/v.spec.TransitSpeed, OpTransit)
}

// Mobilize runs the one-off mobilization task. Zero hours is a no-op.
func (v *Vessel) Mobilize(p *Process) error {
	if v.spec.MobilizeHours <= 0 {
		return nil
	}
	return v.Task(p, "Mobilize", v.spec.MobilizeHours, OpMobilize)
}

// awaitWindow parks p until kind is feasible, accruing delay time, and
// returns the total delay taken. When the evaluator reports no feasible
// time at all, or a next window that fails to advance the clock, the wait
// could never end and a DeadlockError comes back instead.
func (v *Vessel) awaitWindow(p *Process, kind OperationKind) (float64, error) {
	var delay float64
	for !v.constraints.IsFeasible(v.env.Now(), kind) {
		next, ok := v.constraints.NextFeasibleTime(v.env.Now(), kind)
		if !ok {
			return delay, &DeadlockError{
				Time:    v.env.Now(),
				Waiting: []string{fmt.Sprintf("%s: no feasible window for %s", v.spec.Name, kind)},
			}
		}
		if next <= v.env.Now() {
			return delay, &DeadlockError{
				Time:    v.env.Now(),
				Waiting: []string{fmt.Sprintf("%s: %s window at %.2fh does not advance the clock", v.spec.Name, kind, next)},
			}
		}
		step := next - v.env.Now()
		p.Hold(step)
		delay += step
		v.log.Delay += step
	}
	return delay, nil
}
