// Package testutil provides shared test infrastructure for the windlass
// simulator. It consolidates golden dataset types and assertion helpers
// used across sim/ and sim/install/ test packages.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is a single installation scenario with its expected
// end-of-run accounting.
type GoldenTestCase struct {
	Name     string         `json:"name"`
	Scenario GoldenScenario `json:"scenario"`
	Expected GoldenOutputs  `json:"expected"`
}

// GoldenScenario mirrors the installation phase configuration. A zero
// port supply means an unlimited stockpile.
type GoldenScenario struct {
	SiteDistanceKm      float64      `json:"site_distance_km"`
	NumTurbines         int          `json:"num_turbines"`
	TurbineDistanceKm   float64      `json:"turbine_distance_km"`
	RotorDiameterM      float64      `json:"rotor_diameter_m"`
	TurbineSpacingRD    float64      `json:"turbine_spacing_rd"`
	TonsPerSubstructure float64      `json:"tons_per_substructure"`
	PortSupplyTons      float64      `json:"port_supply_tons"`
	LoadRocksHours      float64      `json:"load_rocks_hours"`
	DropRocksHours      float64      `json:"drop_rocks_hours"`
	Vessel              GoldenVessel `json:"vessel"`
}

// GoldenVessel is the vessel slice of a golden scenario.
type GoldenVessel struct {
	Name            string  `json:"name"`
	TransitSpeedKmh float64 `json:"transit_speed_kmh"`
	MaxCargoT       float64 `json:"max_cargo_t"`
	MobilizeHours   float64 `json:"mobilize_hours"`
}

// GoldenOutputs represents the expected results from a golden test case.
type GoldenOutputs struct {
	// Exact match counters (integers)
	TurbinesInstalled int `json:"turbines_installed"`
	PortCalls         int `json:"port_calls"`
	SiteTransits      int `json:"site_transits"`
	TurbineMoves      int `json:"turbine_moves"`
	ReturnTransits    int `json:"return_transits"`

	// Deterministic floating-point results (derived from the simulation clock)
	FinalTimeHours   float64 `json:"final_time_hours"`
	TonsDelivered    float64 `json:"tons_delivered"`
	TonsLoaded       float64 `json:"tons_loaded"`
	PortWithdrawn    float64 `json:"port_withdrawn"`
	VesselBusyHours  float64 `json:"vessel_busy_hours"`
	VesselDelayHours float64 `json:"vessel_delay_hours"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
