package sim

import (
	"fmt"
	"math"
)

// ProcFunc is the body of a simulation process. It runs on its own
// goroutine but never concurrently with the engine or another process:
// control moves through strict channel handoffs, so exactly one goroutine
// touches simulation state at any moment. A ProcFunc suspends itself by
// calling the blocking primitives (Process.Hold, StorageContainer.Put/Get,
// the vessel tasks). Returning a non-nil error aborts the whole run with
// that error.
type ProcFunc func(p *Process) error

// killSignal is the panic payload used to unwind a parked process during
// teardown. It never escapes the process goroutine.
type killSignal struct{}

// Process is one cooperatively scheduled activity, such as a vessel's
// installation loop. Create processes with Environment.StartProcess.
type Process struct {
	env  *Environment
	name string

	resume chan struct{} // engine -> process: run until the next park
	killed bool          // teardown in progress, park points must unwind
	done   bool          // body returned or was unwound
	err    error         // body's return value, surfaced by Run

	waitingOn string // what the process is parked on, for deadlock reports
}

// Name returns the name the process was started with.
func (p *Process) Name() string { return p.name }

// Env returns the environment the process runs in.
func (p *Process) Env() *Environment { return p.env }

// Hold suspends the process for d simulated hours. A negative or NaN
// duration is a programming error and panics.
func (p *Process) Hold(d float64) {
	if d < 0 || math.IsNaN(d) {
		panic(fmt.Sprintf("process %s: invalid hold duration %v", p.name, d))
	}
	p.env.schedule(p, p.env.clock+d)
	p.park()
}

// park hands control back to the engine and blocks until the engine
// resumes this process. Every suspension funnels through here; the killed
// checks are what let teardown unwind parked goroutines. The entry check
// catches parks reached while already unwinding, such as a deferred
// Hold, when the engine is no longer listening on yield.
func (p *Process) park() {
	if p.killed {
		panic(killSignal{})
	}
	p.env.yield <- p
	<-p.resume
	if p.killed {
		panic(killSignal{})
	}
}

// run is the goroutine body wrapping fn. The deferred handoff guarantees
// the engine gets control back exactly once per resume, whether fn
// returns, is unwound at teardown, or panics for real (in which case the
// panic is re-raised and crashes the program).
func (p *Process) run(fn ProcFunc) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(killSignal); !ok {
				panic(r)
			}
		}
		p.done = true
		p.env.yield <- p
	}()

	// Wait for the initial activation event scheduled by StartProcess.
	<-p.resume
	if p.killed {
		panic(killSignal{})
	}

	p.err = fn(p)
}
