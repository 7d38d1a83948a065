package sim

import "math"

// Port is a quayside stockpile vessels draw material from. A port created
// with unlimited supply never runs dry; a finite one hands out material
// until exhausted, at which point the installation process aborts rather
// than idling forever.
type Port struct {
	stock *StorageContainer
}

// NewPort creates a port stocked with supply tons. Pass math.Inf(1) for
// unlimited supply.
func NewPort(env *Environment, supply float64) *Port {
	return &Port{stock: NewStorageContainer(env, "port stockpile", supply, supply)}
}

// Available reports whether amount tons can be withdrawn right now.
func (pt *Port) Available(amount float64) bool { return pt.stock.Level() >= amount }

// Level returns the tons currently on the quay.
func (pt *Port) Level() float64 { return pt.stock.Level() }

// Unlimited reports whether the port was created with unlimited supply.
func (pt *Port) Unlimited() bool { return math.IsInf(pt.stock.Capacity(), 1) }

// Withdraw removes amount tons, parking p until the stock suffices.
func (pt *Port) Withdraw(p *Process, amount float64) error {
	return pt.stock.Get(p, amount)
}

// Deposit adds amount tons to the quay, for resupply deliveries or
// returned cargo.
func (pt *Port) Deposit(p *Process, amount float64) error {
	return pt.stock.Put(p, amount)
}

// Withdrawn returns cumulative tons ever taken from the quay.
func (pt *Port) Withdrawn() float64 { return pt.stock.TotalOut() }
