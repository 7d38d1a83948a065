package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/xid"

	sim "github.com/windlass-sim/windlass-sim/sim"
	"github.com/windlass-sim/windlass-sim/sim/install"
	"github.com/windlass-sim/windlass-sim/sim/weather"
)

// Results is the JSON document written after a run: the phase counters,
// the per-agent time accounting and, when a weather series was loaded,
// the operability statistics of each operation kind.
type Results struct {
	RunID       string                `json:"run_id"`
	GeneratedAt time.Time             `json:"generated_at"`
	Project     string                `json:"project"`
	Vessel      string                `json:"vessel"`
	FinalTime   float64               `json:"final_time_hours"`
	VesselCost  float64               `json:"vessel_cost_usd"`
	Outputs     install.Outputs       `json:"outputs"`
	Agents      []AgentSummary        `json:"agents"`
	Operability []weather.Operability `json:"operability,omitempty"`
}

// AgentSummary is one agent's row in the results document: the raw time
// split from the run report plus the utilization fleet planners compare
// vessels by.
type AgentSummary struct {
	Name        string  `json:"name"`
	Busy        float64 `json:"busy_hours"`
	Delay       float64 `json:"delay_hours"`
	Idle        float64 `json:"idle_hours"`
	Utilization float64 `json:"utilization"`
}

// buildResults assembles the results document from a completed run.
func buildResults(projectPath string, spec sim.VesselSpec, env *sim.Environment, phase *install.ScourProtection, evaluator *weather.Evaluator) *Results {
	report := env.Report()
	res := &Results{
		RunID:       xid.New().String(),
		GeneratedAt: time.Now().UTC(),
		Project:     projectPath,
		Vessel:      spec.Name,
		FinalTime:   report.FinalTime,
		VesselCost:  spec.DayRate * report.FinalTime / 24,
		Outputs:     phase.Outputs(),
	}
	for _, a := range report.Agents {
		summary := AgentSummary{Name: a.Name, Busy: a.Busy, Delay: a.Delay, Idle: a.Idle}
		if report.FinalTime > 0 {
			summary.Utilization = a.Busy / report.FinalTime
		}
		res.Agents = append(res.Agents, summary)
	}
	if evaluator != nil {
		for _, kind := range []sim.OperationKind{sim.OpTransit, sim.OpLoad, sim.OpDrop} {
			res.Operability = append(res.Operability, evaluator.Operability(kind))
		}
	}
	return res
}

// WriteResults writes the results document as indented JSON.
func WriteResults(path string, res *Results) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

// printSummary prints the run summary to stdout in a fixed layout so
// runs are easy to eyeball and diff.
func printSummary(res *Results, wall time.Duration) {
	fmt.Println("=== Installation Summary ===")
	fmt.Printf("Turbines Installed   : %d\n", res.Outputs.TurbinesInstalled)
	fmt.Printf("Final Time           : %.1f h (%.1f days)\n", res.FinalTime, res.FinalTime/24)
	fmt.Printf("Rock Delivered       : %.0f t\n", res.Outputs.TonsDelivered)
	fmt.Printf("Rock Withdrawn       : %.0f t\n", res.Outputs.PortWithdrawn)
	fmt.Printf("Port Calls           : %d\n", res.Outputs.PortCalls)
	fmt.Printf("Site Transits        : %d\n", res.Outputs.SiteTransits)
	if res.VesselCost > 0 {
		fmt.Printf("Vessel Cost          : $%.0f\n", res.VesselCost)
	}
	for _, a := range res.Agents {
		fmt.Printf("%-20s : busy %.1fh, delay %.1fh, idle %.1fh (%.0f%% utilized)\n",
			a.Name, a.Busy, a.Delay, a.Idle, a.Utilization*100)
	}
	for _, op := range res.Operability {
		fmt.Printf("Operability %-8s : %.0f%% feasible\n", op.Kind, op.FeasibleFraction*100)
	}
	fmt.Printf("Wall Clock           : %s\n", wall.Round(time.Millisecond))
}
