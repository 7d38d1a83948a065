// Package sim provides the discrete-event process engine behind windlass.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - engine.go: Environment, the clock, the event loop and deadlock detection
//   - process.go: Process, the goroutine handoff that serializes execution
//   - container.go: StorageContainer, blocking put/get with FIFO waiters
//
// # Architecture
//
// Time is a float64 in hours. The Environment pops events in (due time,
// scheduling order) order, so equal-time events resume in the order they
// were scheduled and identical inputs replay identical runs. Processes
// are goroutines, but never concurrent ones: the engine resumes exactly
// one process and blocks until that process parks on a wait or returns.
// Because control transfers are strict handoffs, simulation state needs
// no locks.
//
// On top of the kernel sit the marine-logistics resources:
//   - vessel.go: Vessel, timed tasks and transits with busy/delay accounting
//   - port.go: Port, a quayside stockpile with finite or unlimited supply
//   - constraint.go: ConstraintEvaluator, operating-window feasibility
//   - metrics.go: run report types and the action log hook
//
// Installation phases that drive these resources live in sim/install;
// weather-window evaluators in sim/weather; action-log persistence in
// sim/record.
//
// # Failure model
//
// Shortages and capacity violations that mean a mis-sized project are
// returned as typed errors (CapacityExceededError, InsufficientAmountError,
// VesselStateError) and abort the run. A run whose event queue drains
// while processes still wait on resources, or whose constraint evaluator
// admits no feasible window, aborts with DeadlockError. Programming
// errors inside the engine panic.
package sim
