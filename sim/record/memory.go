package record

import sim "github.com/windlass-sim/windlass-sim/sim"

// Memory is an in-memory action recorder for tests and for runs that
// only need a post-run summary, not a persisted log.
type Memory struct {
	actions []sim.Action
}

var _ sim.ActionRecorder = (*Memory)(nil)

// Record appends one action.
func (m *Memory) Record(a sim.Action) { m.actions = append(m.actions, a) }

// Actions returns the recorded actions in order.
func (m *Memory) Actions() []sim.Action { return m.actions }
