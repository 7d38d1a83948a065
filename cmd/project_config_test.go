package cmd

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/windlass-sim/windlass-sim/sim"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "project.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalProject = `
site:
  distance: 20
plant:
  num_turbines: 3
  turbine_distance: 1
scour_protection:
  tons_per_substructure: 200
spi_vessel: example_scour_protection_vessel
`

const fullProject = `
site:
  distance: 40
  depth: 200
plant:
  num_turbines: 5
  turbine_spacing: 7
turbine:
  rotor_diameter: 154
  turbine_rating: 6
port:
  supply_tons: 20000
scour_protection:
  tons_per_substructure: 2000
spi_vessel:
  name: Rockpiper
  transit_speed: 13
  max_cargo: 16500
  day_rate: 85000
  max_windspeed: 15
  max_waveheight: 2.5
process_times:
  load_rocks: 6
  drop_rocks: 12
  mobilize: 24
mooring_system:
  num_lines: 3
  anchor_type: Drag Embedment
weather:
  file: weather.csv
`

func TestLoadProjectConfig_FullProject(t *testing.T) {
	cfg, err := LoadProjectConfig(writeConfig(t, fullProject))
	require.NoError(t, err)

	assert.Equal(t, 40.0, cfg.Site.Distance)
	assert.Equal(t, 200.0, cfg.Site.Depth)
	assert.Equal(t, 5, cfg.Plant.NumTurbines)
	assert.Equal(t, 7.0, cfg.Plant.TurbineSpacing)
	assert.Equal(t, 154.0, cfg.Turbine.RotorDiameter)
	require.NotNil(t, cfg.Port.SupplyTons)
	assert.Equal(t, 20000.0, *cfg.Port.SupplyTons)
	assert.Equal(t, 2000.0, cfg.ScourProtection.TonsPerSubstructure)

	require.NotNil(t, cfg.SPIVessel.Spec)
	assert.Equal(t, "Rockpiper", cfg.SPIVessel.Spec.Name)
	assert.Equal(t, 16500.0, cfg.SPIVessel.Spec.MaxCargo)

	assert.Equal(t, 6.0, cfg.ProcessTimes.LoadRocks)
	assert.Equal(t, 12.0, cfg.ProcessTimes.DropRocks)
	require.NotNil(t, cfg.ProcessTimes.Mobilize)
	assert.Equal(t, 24.0, *cfg.ProcessTimes.Mobilize)

	assert.Equal(t, 3, cfg.MooringSystem.NumLines)
	assert.Equal(t, "Drag Embedment", cfg.MooringSystem.AnchorType)
	assert.Equal(t, "weather.csv", cfg.Weather.File)
}

func TestLoadProjectConfig_AppliesProcessTimeDefaults(t *testing.T) {
	cfg, err := LoadProjectConfig(writeConfig(t, minimalProject))
	require.NoError(t, err)

	assert.Equal(t, defaultLoadRocksHours, cfg.ProcessTimes.LoadRocks)
	assert.Equal(t, defaultDropRocksHours, cfg.ProcessTimes.DropRocks)
	require.NotNil(t, cfg.ProcessTimes.Mobilize)
	assert.Equal(t, defaultMobilizeHours, *cfg.ProcessTimes.Mobilize)
}

func TestLoadProjectConfig_ExplicitZeroMobilize(t *testing.T) {
	// An explicit zero switches mobilization off rather than falling
	// back to the default.
	cfg, err := LoadProjectConfig(writeConfig(t, minimalProject+`process_times:
  mobilize: 0
`))
	require.NoError(t, err)
	require.NotNil(t, cfg.ProcessTimes.Mobilize)
	assert.Equal(t, 0.0, *cfg.ProcessTimes.Mobilize)
	// The other durations still default.
	assert.Equal(t, defaultLoadRocksHours, cfg.ProcessTimes.LoadRocks)
}

func TestLoadProjectConfig_NamedVessel(t *testing.T) {
	cfg, err := LoadProjectConfig(writeConfig(t, minimalProject))
	require.NoError(t, err)
	assert.Equal(t, "example_scour_protection_vessel", cfg.SPIVessel.Name)
	assert.Nil(t, cfg.SPIVessel.Spec)
}

func TestLoadProjectConfig_RejectsUnknownFields(t *testing.T) {
	// GIVEN a config with a typoed field name
	path := writeConfig(t, `
site:
  distance: 20
plant:
  num_turbins: 3
  turbine_distance: 1
scour_protection:
  tons_per_substructure: 200
`)

	// THEN strict parsing rejects it instead of silently defaulting
	_, err := LoadProjectConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "num_turbins")
}

func TestLoadProjectConfig_RejectsMissingRequiredFields(t *testing.T) {
	path := writeConfig(t, `
plant:
  num_turbines: 3
  turbine_distance: 1
scour_protection:
  tons_per_substructure: 200
`)
	_, err := LoadProjectConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Distance")
}

func TestLoadProjectConfig_RejectsUnderivableTurbineDistance(t *testing.T) {
	// No turbine_distance and no rotor diameter / spacing to derive it
	path := writeConfig(t, `
site:
  distance: 20
plant:
  num_turbines: 3
scour_protection:
  tons_per_substructure: 200
`)
	_, err := LoadProjectConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "turbine_distance")
}

func TestProjectConfig_ScourInstallConfig(t *testing.T) {
	cfg, err := LoadProjectConfig(writeConfig(t, fullProject))
	require.NoError(t, err)

	spec := sim.VesselSpec{Name: "Rockpiper", TransitSpeed: 13, MaxCargo: 16500}
	ic := cfg.ScourInstallConfig(spec)

	assert.Equal(t, 40.0, ic.SiteDistance)
	assert.Equal(t, 5, ic.NumTurbines)
	assert.Equal(t, 2000.0, ic.TonsPerSubstructure)
	assert.Equal(t, 20000.0, ic.PortSupply)
	assert.Equal(t, 6.0, ic.LoadRocksTime)
	assert.Equal(t, 12.0, ic.DropRocksTime)
	assert.Equal(t, 24.0, ic.Vessel.MobilizeHours, "mobilize hours move onto the vessel spec")
}

func TestProjectConfig_ScourInstallConfig_UnlimitedPort(t *testing.T) {
	cfg, err := LoadProjectConfig(writeConfig(t, minimalProject))
	require.NoError(t, err)

	ic := cfg.ScourInstallConfig(sim.VesselSpec{Name: "SPI Vessel", TransitSpeed: 10, MaxCargo: 1000})
	assert.True(t, math.IsInf(ic.PortSupply, 1), "absent port.supply_tons means unlimited")
}

func TestProjectConfig_MooringDesign(t *testing.T) {
	cfg, err := LoadProjectConfig(writeConfig(t, fullProject))
	require.NoError(t, err)

	mc := cfg.MooringDesign()
	assert.Equal(t, 200.0, mc.SiteDepth)
	assert.Equal(t, 6.0, mc.TurbineRating)
	assert.Equal(t, 5, mc.NumTurbines)
	assert.Equal(t, 3, mc.NumLines)
	assert.Equal(t, "Drag Embedment", mc.AnchorType)
}
