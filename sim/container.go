package sim

import (
	"fmt"
	"math"
)

// levelSlack absorbs float dust from repeated fractional-ton transfers
// before the level invariant is declared violated.
const levelSlack = 1e-9

// waiter is one parked process together with the amount it wants to move.
type waiter struct {
	proc   *Process
	amount float64
}

// StorageContainer is a homogeneous bulk store with a hard capacity, and
// the invariant 0 <= level <= capacity holds at every instant. Put and
// Get apply immediately when they fit and nothing is queued ahead of
// them, park the calling process until their turn comes, or fail fast
// when the request could never fit at any level.
//
// Requests are served strictly in arrival order per direction: a fresh
// request parks behind any queued one even when it would fit right now,
// and a large request at the head of its queue blocks smaller ones
// behind it. Service order stays independent of the amounts involved and
// therefore deterministic.
type StorageContainer struct {
	env      *Environment
	name     string
	capacity float64
	level    float64

	putQ []waiter
	getQ []waiter

	totalIn  float64
	totalOut float64
}

// NewStorageContainer creates a container holding initial tons out of
// capacity. Capacity may be math.Inf(1) for an unbounded store, such as a
// port stockpile modeled as limitless.
func NewStorageContainer(env *Environment, name string, capacity, initial float64) *StorageContainer {
	if capacity < 0 || math.IsNaN(capacity) {
		panic(fmt.Sprintf("container %s: invalid capacity %v", name, capacity))
	}
	if initial < 0 || initial > capacity {
		panic(fmt.Sprintf("container %s: initial level %v outside [0, %v]", name, initial, capacity))
	}
	return &StorageContainer{env: env, name: name, capacity: capacity, level: initial}
}

// Name returns the container's name as used in error messages.
func (c *StorageContainer) Name() string { return c.name }

// Level returns the tons currently stored.
func (c *StorageContainer) Level() float64 { return c.level }

// Capacity returns the hard upper bound in tons.
func (c *StorageContainer) Capacity() float64 { return c.capacity }

// AvailableCapacity returns how many tons fit right now.
func (c *StorageContainer) AvailableCapacity() float64 { return c.capacity - c.level }

// TotalIn returns cumulative tons ever put. Together with TotalOut it
// lets callers check conservation over a whole run.
func (c *StorageContainer) TotalIn() float64 { return c.totalIn }

// TotalOut returns cumulative tons ever taken.
func (c *StorageContainer) TotalOut() float64 { return c.totalOut }

// Put adds amount tons, parking p until the container has room and every
// earlier put has been served. A request that could never fit (negative,
// NaN, or larger than total capacity) fails immediately with
// CapacityExceededError and changes nothing.
func (c *StorageContainer) Put(p *Process, amount float64) error {
	if amount < 0 || math.IsNaN(amount) || amount > c.capacity {
		return &CapacityExceededError{Resource: c.name, Requested: amount, Capacity: c.capacity, Level: c.level}
	}
	if len(c.putQ) == 0 && c.level+amount <= c.capacity {
		c.applyPut(amount)
		c.wake()
		return nil
	}
	c.putQ = append(c.putQ, waiter{proc: p, amount: amount})
	p.waitingOn = fmt.Sprintf("%s: put %.1ft (level %.1ft/%.1ft)", c.name, amount, c.level, c.capacity)
	p.park()
	p.waitingOn = ""
	return nil
}

// Get removes amount tons, parking p until the container holds enough and
// every earlier get has been served. A request that could never be
// satisfied (negative, NaN, or larger than total capacity) fails
// immediately with InsufficientAmountError and changes nothing.
func (c *StorageContainer) Get(p *Process, amount float64) error {
	if amount < 0 || math.IsNaN(amount) || amount > c.capacity {
		return &InsufficientAmountError{Resource: c.name, Requested: amount, Available: c.level}
	}
	if len(c.getQ) == 0 && c.level >= amount {
		c.applyGet(amount)
		c.wake()
		return nil
	}
	c.getQ = append(c.getQ, waiter{proc: p, amount: amount})
	p.waitingOn = fmt.Sprintf("%s: get %.1ft (level %.1ft)", c.name, amount, c.level)
	p.park()
	p.waitingOn = ""
	return nil
}

// wake serves queued requests that now fit, strictly FIFO per queue,
// alternating between queues until neither head can proceed. The woken
// waiter's amount is applied here, atomically with the wake decision; the
// waiter itself is rescheduled at the current time and resumes once the
// active process parks or finishes. On return each queue is either empty
// or headed by a request that does not fit, so Put and Get only ever see
// an empty queue or a blocked head.
func (c *StorageContainer) wake() {
	for {
		progress := false
		for len(c.getQ) > 0 && c.level >= c.getQ[0].amount {
			w := c.getQ[0]
			c.getQ = c.getQ[1:]
			c.applyGet(w.amount)
			c.env.schedule(w.proc, c.env.clock)
			progress = true
		}
		for len(c.putQ) > 0 && c.level+c.putQ[0].amount <= c.capacity {
			w := c.putQ[0]
			c.putQ = c.putQ[1:]
			c.applyPut(w.amount)
			c.env.schedule(w.proc, c.env.clock)
			progress = true
		}
		if !progress {
			return
		}
	}
}

func (c *StorageContainer) applyPut(amount float64) {
	c.level += amount
	c.totalIn += amount
	c.checkLevel()
}

func (c *StorageContainer) applyGet(amount float64) {
	c.level -= amount
	c.totalOut += amount
	c.checkLevel()
}

// checkLevel asserts the level invariant, clamping away float dust and
// panicking on anything larger. Put and Get preconditions make a real
// violation unreachable; a panic here means a bug in this file.
func (c *StorageContainer) checkLevel() {
	if c.level < 0 {
		if c.level < -levelSlack {
			panic(fmt.Sprintf("container %s: level %v below zero", c.name, c.level))
		}
		c.level = 0
	}
	if c.level > c.capacity {
		if c.level-c.capacity > levelSlack {
			panic(fmt.Sprintf("container %s: level %v above capacity %v", c.name, c.level, c.capacity))
		}
		c.level = c.capacity
	}
}
