package install

import (
	"math"
	"testing"

	sim "github.com/windlass-sim/windlass-sim/sim"
	"github.com/windlass-sim/windlass-sim/sim/internal/testutil"
)

// scenarioConfig maps a golden scenario onto a phase configuration.
// A zero port supply in the dataset means an unlimited stockpile.
func scenarioConfig(sc testutil.GoldenScenario) ScourProtectionConfig {
	supply := sc.PortSupplyTons
	if supply == 0 {
		supply = math.Inf(1)
	}
	return ScourProtectionConfig{
		SiteDistance:        sc.SiteDistanceKm,
		NumTurbines:         sc.NumTurbines,
		TurbineDistance:     sc.TurbineDistanceKm,
		RotorDiameter:       sc.RotorDiameterM,
		TurbineSpacing:      sc.TurbineSpacingRD,
		TonsPerSubstructure: sc.TonsPerSubstructure,
		PortSupply:          supply,
		LoadRocksTime:       sc.LoadRocksHours,
		DropRocksTime:       sc.DropRocksHours,
		Vessel: sim.VesselSpec{
			Name:          sc.Vessel.Name,
			TransitSpeed:  sc.Vessel.TransitSpeedKmh,
			MaxCargo:      sc.Vessel.MaxCargoT,
			MobilizeHours: sc.Vessel.MobilizeHours,
		},
	}
}

func runGoldenScenario(t *testing.T, sc testutil.GoldenScenario) (*sim.Environment, *ScourProtection) {
	t.Helper()
	env := sim.NewEnvironment()
	sp, err := NewScourProtection(env, scenarioConfig(sc), nil)
	if err != nil {
		t.Fatalf("NewScourProtection: %v", err)
	}
	sp.Start()
	if err := env.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return env, sp
}

// TestScourProtection_GoldenDataset_Equivalence verifies:
// GIVEN golden dataset scenarios
// WHEN run through the installation phase
// THEN all end-of-run results match the golden expected values
func TestScourProtection_GoldenDataset_Equivalence(t *testing.T) {
	dataset := testutil.LoadGoldenDataset(t)

	if len(dataset.Tests) == 0 {
		t.Fatal("Golden dataset contains no test cases")
	}

	for _, tc := range dataset.Tests {
		t.Run(tc.Name, func(t *testing.T) {
			env, sp := runGoldenScenario(t, tc.Scenario)
			out := sp.Outputs()

			if out.TurbinesInstalled != tc.Expected.TurbinesInstalled {
				t.Errorf("turbines_installed: got %d, want %d",
					out.TurbinesInstalled, tc.Expected.TurbinesInstalled)
			}
			if out.PortCalls != tc.Expected.PortCalls {
				t.Errorf("port_calls: got %d, want %d", out.PortCalls, tc.Expected.PortCalls)
			}
			if out.SiteTransits != tc.Expected.SiteTransits {
				t.Errorf("site_transits: got %d, want %d", out.SiteTransits, tc.Expected.SiteTransits)
			}
			if out.TurbineMoves != tc.Expected.TurbineMoves {
				t.Errorf("turbine_moves: got %d, want %d", out.TurbineMoves, tc.Expected.TurbineMoves)
			}
			if out.ReturnTransits != tc.Expected.ReturnTransits {
				t.Errorf("return_transits: got %d, want %d", out.ReturnTransits, tc.Expected.ReturnTransits)
			}

			const relTol = 1e-9
			testutil.AssertFloat64Equal(t, "final_time_hours", tc.Expected.FinalTimeHours, env.Now(), relTol)
			testutil.AssertFloat64Equal(t, "tons_delivered", tc.Expected.TonsDelivered, out.TonsDelivered, relTol)
			testutil.AssertFloat64Equal(t, "tons_loaded", tc.Expected.TonsLoaded, out.TonsLoaded, relTol)
			testutil.AssertFloat64Equal(t, "port_withdrawn", tc.Expected.PortWithdrawn, out.PortWithdrawn, relTol)
			testutil.AssertFloat64Equal(t, "vessel_busy_hours", tc.Expected.VesselBusyHours, sp.Vessel().TimeLog().Busy, relTol)
			testutil.AssertFloat64Equal(t, "vessel_delay_hours", tc.Expected.VesselDelayHours, sp.Vessel().TimeLog().Delay, relTol)
		})
	}
}

// TestScourProtection_GoldenDataset_Invariants checks conservation laws
// alongside the golden dataset. Golden tests answer "did the output
// change?" but not "is the output correct?"; these verify what every
// completed run must satisfy regardless of scenario.
func TestScourProtection_GoldenDataset_Invariants(t *testing.T) {
	dataset := testutil.LoadGoldenDataset(t)

	if len(dataset.Tests) == 0 {
		t.Fatal("Golden dataset contains no test cases")
	}

	for _, tc := range dataset.Tests {
		t.Run(tc.Name, func(t *testing.T) {
			env, sp := runGoldenScenario(t, tc.Scenario)
			out := sp.Outputs()
			const relTol = 1e-9

			// Mass conservation: nothing leaves the system between quay,
			// hold and seabed.
			holdLevel := sp.Vessel().Storage().Level()
			testutil.AssertFloat64Equal(t, "withdrawn = delivered + on board",
				out.PortWithdrawn, out.TonsDelivered+holdLevel, relTol)
			testutil.AssertFloat64Equal(t, "withdrawn = loaded",
				out.PortWithdrawn, out.TonsLoaded, relTol)

			// Every installed turbine consumed exactly one substructure's
			// worth of rock.
			wantDelivered := float64(out.TurbinesInstalled) * math.Ceil(tc.Scenario.TonsPerSubstructure)
			testutil.AssertFloat64Equal(t, "delivered = installed x tons",
				wantDelivered, out.TonsDelivered, relTol)

			// A completed run ends with the vessel back at port.
			if sp.Vessel().Location() != sim.AtPort {
				t.Errorf("final location: got %q, want %q", sp.Vessel().Location(), sim.AtPort)
			}

			// The run report accounts every simulated hour of the vessel.
			report := env.Report()
			testutil.AssertFloat64Equal(t, "report final time", env.Now(), report.FinalTime, relTol)
			if len(report.Agents) != 1 {
				t.Fatalf("report agents: got %d, want 1", len(report.Agents))
			}
			a := report.Agents[0]
			testutil.AssertFloat64Equal(t, "busy + delay + idle = final time",
				report.FinalTime, a.Busy+a.Delay+a.Idle, relTol)
		})
	}
}
