package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// traceRecorder captures actions in memory for assertions.
type traceRecorder struct {
	actions []Action
}

func (r *traceRecorder) Record(a Action) { r.actions = append(r.actions, a) }

// windowEvaluator blocks every operation before open, then permits all.
type windowEvaluator struct {
	open float64
}

func (w windowEvaluator) IsFeasible(now float64, _ OperationKind) bool { return now >= w.open }

func (w windowEvaluator) NextFeasibleTime(now float64, _ OperationKind) (float64, bool) {
	if now >= w.open {
		return now, true
	}
	return w.open, true
}

// closedEvaluator never admits any operation.
type closedEvaluator struct{}

func (closedEvaluator) IsFeasible(float64, OperationKind) bool { return false }

func (closedEvaluator) NextFeasibleTime(float64, OperationKind) (float64, bool) {
	return 0, false
}

func testVesselSpec() VesselSpec {
	return VesselSpec{
		Name:         "SPI Vessel",
		TransitSpeed: 10,
		MaxCargo:     4000,
	}
}

func TestVesselTask_BooksBusyTimeAndRecordsAction(t *testing.T) {
	// GIVEN an unconstrained vessel with a recorder attached
	env := NewEnvironment()
	rec := &traceRecorder{}
	env.SetRecorder(rec)
	v := NewVessel(env, testVesselSpec(), nil)
	v.SetLocation(AtPort)
	env.StartProcess("work", func(p *Process) error {
		return v.Task(p, "Load SP Material", 4, OpLoad)
	})

	// WHEN the simulation runs
	if err := env.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// THEN 4h of busy time accrued and the action was logged
	assert.Equal(t, TimeLog{Busy: 4, Delay: 0}, v.TimeLog())
	assert.Equal(t, []Action{{
		Agent:    "SPI Vessel",
		Name:     "Load SP Material",
		Kind:     OpLoad,
		Location: string(AtPort),
		Start:    0,
		Duration: 4,
		Delay:    0,
	}}, rec.actions)
	assert.Equal(t, 4.0, env.Now())
}

func TestVesselTask_WaitsForOperatingWindow(t *testing.T) {
	// GIVEN a vessel whose evaluator opens at t=6
	env := NewEnvironment()
	rec := &traceRecorder{}
	env.SetRecorder(rec)
	v := NewVessel(env, testVesselSpec(), windowEvaluator{open: 6})
	env.StartProcess("work", func(p *Process) error {
		return v.Task(p, "Drop SP Material", 2, OpDrop)
	})

	// WHEN the simulation runs
	if err := env.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// THEN the task waited 6h, worked 2h, and both are accounted
	assert.Equal(t, TimeLog{Busy: 2, Delay: 6}, v.TimeLog())
	if len(rec.actions) != 1 {
		t.Fatalf("recorded actions: got %d, want 1", len(rec.actions))
	}
	assert.Equal(t, 6.0, rec.actions[0].Start)
	assert.Equal(t, 6.0, rec.actions[0].Delay)
	assert.Equal(t, 8.0, env.Now())
}

func TestVesselTask_NoFeasibleWindow_ReturnsDeadlock(t *testing.T) {
	// GIVEN a vessel whose evaluator admits no window at all
	env := NewEnvironment()
	v := NewVessel(env, testVesselSpec(), closedEvaluator{})
	env.StartProcess("work", func(p *Process) error {
		return v.Task(p, "Transit", 1, OpTransit)
	})

	// WHEN the simulation runs
	err := env.Run()

	// THEN it aborts with a DeadlockError instead of waiting forever
	var dl *DeadlockError
	if !errors.As(err, &dl) {
		t.Fatalf("Run: got %v, want DeadlockError", err)
	}
	assert.Equal(t, TimeLog{}, v.TimeLog())
}

func TestVesselTask_NegativeDuration_Errors(t *testing.T) {
	env := NewEnvironment()
	v := NewVessel(env, testVesselSpec(), nil)
	var taskErr error
	env.StartProcess("work", func(p *Process) error {
		taskErr = v.Task(p, "Load SP Material", -1, OpLoad)
		return nil
	})
	if err := env.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if taskErr == nil {
		t.Fatal("Task with negative duration: got nil error")
	}
}

func TestVesselTransit_DurationFromSpeed(t *testing.T) {
	// GIVEN a vessel doing 10 km/h
	env := NewEnvironment()
	v := NewVessel(env, testVesselSpec(), nil)
	env.StartProcess("sail", func(p *Process) error {
		return v.Transit(p, 25)
	})

	// WHEN it transits 25 km
	if err := env.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// THEN the leg took 2.5h of busy time
	assert.Equal(t, 2.5, v.TimeLog().Busy)
	assert.Equal(t, 2.5, env.Now())
}

func TestVesselTransit_InvalidSpeed_Errors(t *testing.T) {
	env := NewEnvironment()
	spec := testVesselSpec()
	spec.TransitSpeed = 0
	v := NewVessel(env, spec, nil)
	var transitErr error
	env.StartProcess("sail", func(p *Process) error {
		transitErr = v.Transit(p, 25)
		return nil
	})
	if err := env.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if transitErr == nil {
		t.Fatal("Transit with zero speed: got nil error")
	}
}

func TestVesselMobilize_ZeroHours_IsNoOp(t *testing.T) {
	env := NewEnvironment()
	rec := &traceRecorder{}
	env.SetRecorder(rec)
	v := NewVessel(env, testVesselSpec(), nil)
	env.StartProcess("mob", func(p *Process) error {
		return v.Mobilize(p)
	})
	if err := env.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	assert.Equal(t, TimeLog{}, v.TimeLog())
	assert.Empty(t, rec.actions)
}

func TestVesselMobilize_BooksConfiguredHours(t *testing.T) {
	env := NewEnvironment()
	spec := testVesselSpec()
	spec.MobilizeHours = 72
	v := NewVessel(env, spec, nil)
	env.StartProcess("mob", func(p *Process) error {
		return v.Mobilize(p)
	})
	if err := env.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	assert.Equal(t, 72.0, v.TimeLog().Busy)
}

func TestReport_SplitsBusyDelayIdle(t *testing.T) {
	// GIVEN a vessel that works 4h out of a 10h run
	env := NewEnvironment()
	v := NewVessel(env, testVesselSpec(), nil)
	env.StartProcess("work", func(p *Process) error {
		if err := v.Task(p, "Load SP Material", 4, OpLoad); err != nil {
			return err
		}
		p.Hold(6)
		return nil
	})

	// WHEN the simulation runs
	if err := env.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// THEN the report shows 4h busy and 6h idle against the final clock
	rep := env.Report()
	assert.Equal(t, 10.0, rep.FinalTime)
	assert.Equal(t, []AgentTimes{{
		Name: "SPI Vessel",
		Busy: 4,
		Idle: 6,
	}}, rep.Agents)
}
