package sim

import (
	"container/heap"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Environment owns the simulated clock, the pending-event queue and the
// set of processes. It is the only scheduler: a process runs only while
// the engine is blocked waiting for it to park again, so all simulation
// state stays effectively single-threaded even though every process lives
// on its own goroutine.
type Environment struct {
	clock   float64
	events  eventQueue
	nextSeq uint64

	processes []*Process
	agents    []Agent
	recorder  ActionRecorder

	yield chan *Process // process -> engine: parked or finished
}

// NewEnvironment creates an empty environment with the clock at zero.
func NewEnvironment() *Environment {
	return &Environment{
		yield: make(chan *Process),
	}
}

// Now returns the current simulated time in hours.
func (env *Environment) Now() float64 { return env.clock }

// SetRecorder installs an action recorder. A nil recorder disables
// action logging.
func (env *Environment) SetRecorder(r ActionRecorder) { env.recorder = r }

func (env *Environment) recordAction(a Action) {
	if env.recorder != nil {
		env.recorder.Record(a)
	}
}

// RegisterAgent adds an agent to the run report. Vessels register
// themselves on construction.
func (env *Environment) RegisterAgent(a Agent) {
	env.agents = append(env.agents, a)
}

// schedule queues a resumption of p at simulated time at. Only the engine
// or the currently active process may call it.
func (env *Environment) schedule(p *Process, at float64) {
	env.nextSeq++
	heap.Push(&env.events, &event{time: at, seq: env.nextSeq, proc: p})
}

// StartProcess registers fn as a new process and schedules its first
// activation at the current simulated time. The goroutine starts parked
// and will not run until the engine pops that activation event, so
// processes started before Run begin in registration order.
func (env *Environment) StartProcess(name string, fn ProcFunc) *Process {
	p := &Process{env: env, name: name, resume: make(chan struct{})}
	env.processes = append(env.processes, p)
	env.schedule(p, env.clock)
	go p.run(fn)
	return p
}

// Run drains the event queue, advancing the clock to each event's due
// time and resuming its process until that process parks again or
// returns. Run stops at the first process error. An empty queue with
// processes still parked on resource waits is a deadlock: no future event
// can ever wake them, so Run reports it instead of returning silently.
//
// All process goroutines are wound down before Run returns, whatever the
// outcome.
func (env *Environment) Run() error {
	defer env.teardown()

	for env.events.Len() > 0 {
		ev := heap.Pop(&env.events).(*event)
		if ev.time < env.clock {
			panic(fmt.Sprintf("clock went backwards: event due at %.4fh, now %.4fh", ev.time, env.clock))
		}
		env.clock = ev.time
		logrus.Debugf("[%9.2fh] resume %s", env.clock, ev.proc.name)
		env.activate(ev.proc)
		if ev.proc.done && ev.proc.err != nil {
			return ev.proc.err
		}
	}

	var stuck []string
	for _, p := range env.processes {
		if !p.done {
			stuck = append(stuck, fmt.Sprintf("%s waiting on %s", p.name, p.waitingOn))
		}
	}
	if len(stuck) > 0 {
		return &DeadlockError{Time: env.clock, Waiting: stuck}
	}
	return nil
}

// activate resumes p and blocks until it parks or finishes. This receive
// on yield is the handoff that serializes the whole simulation.
func (env *Environment) activate(p *Process) {
	p.resume <- struct{}{}
	<-env.yield
}

// teardown unwinds every unfinished process goroutine, so Run never leaks
// goroutines even when it aborts mid-simulation.
func (env *Environment) teardown() {
	for _, p := range env.processes {
		if p.done {
			continue
		}
		p.killed = true
		p.resume <- struct{}{}
		<-env.yield
	}
	env.events = env.events[:0]
}
