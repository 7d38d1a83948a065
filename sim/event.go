package sim

// event is one pending resumption of a process at a simulated time.
//
// seq is drawn from the Environment's monotonically increasing counter at
// scheduling time, so events due at the same instant pop in the order they
// were scheduled. That single rule is what makes runs reproducible: there
// is no randomness anywhere in the engine.
type event struct {
	time float64  // due time, in simulated hours
	seq  uint64   // scheduling order, breaks ties at equal due times
	proc *Process // process to resume
}

// eventQueue is a min-heap of pending events ordered by (due time, seq).
// All access goes through container/heap.
type eventQueue []*event

// Len returns the number of pending events.
func (eq eventQueue) Len() int { return len(eq) }

// Less orders events by due time, then by scheduling order.
func (eq eventQueue) Less(i, j int) bool {
	if eq[i].time != eq[j].time {
		return eq[i].time < eq[j].time
	}
	return eq[i].seq < eq[j].seq
}

// Swap exchanges two events in the heap.
func (eq eventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

// Push appends an event (heap.Interface contract).
func (eq *eventQueue) Push(x any) {
	*eq = append(*eq, x.(*event))
}

// Pop removes and returns the last event (heap.Interface contract).
func (eq *eventQueue) Pop() any {
	old := *eq
	n := len(old)
	ev := old[n-1]
	old[n-1] = nil
	*eq = old[:n-1]
	return ev
}
