package sim

// TimeLog accumulates how an agent spent simulated time. Busy is time on
// productive tasks, Delay is time parked waiting for operating windows.
type TimeLog struct {
	Busy  float64
	Delay float64
}

// Agent is anything whose time usage shows up in the run report.
type Agent interface {
	Name() string
	TimeLog() TimeLog
}

// AgentTimes is one agent's row in the run report. Idle is whatever part
// of the run the agent spent neither busy nor delayed.
type AgentTimes struct {
	Name  string  `json:"name"`
	Busy  float64 `json:"busy_hours"`
	Delay float64 `json:"delay_hours"`
	Idle  float64 `json:"idle_hours"`
}

// RunReport is the engine-level outcome of a run: the final clock and the
// raw per-agent time split. Utilization percentages, day-rate costs and
// other derived figures are for callers to compute from these numbers.
type RunReport struct {
	FinalTime float64      `json:"final_time_hours"`
	Agents    []AgentTimes `json:"agents"`
}

// Report snapshots the time accounting of every registered agent against
// the current clock.
func (env *Environment) Report() RunReport {
	rep := RunReport{FinalTime: env.clock}
	for _, a := range env.agents {
		tl := a.TimeLog()
		idle := env.clock - tl.Busy - tl.Delay
		if idle < 0 {
			idle = 0
		}
		rep.Agents = append(rep.Agents, AgentTimes{
			Name:  a.Name(),
			Busy:  tl.Busy,
			Delay: tl.Delay,
			Idle:  idle,
		})
	}
	return rep
}

// Action is one completed timed operation as it goes to the action log.
// Start is when the work itself began, after any window delay; Delay is
// the wait that preceded it.
type Action struct {
	Agent    string
	Name     string
	Kind     OperationKind
	Location string
	Start    float64
	Duration float64
	Delay    float64
}

// ActionRecorder receives completed actions. Implementations live in the
// record package; the engine calls Record with the clock already advanced
// past the action's end.
type ActionRecorder interface {
	Record(a Action)
}
