package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/windlass-sim/windlass-sim/design"
	sim "github.com/windlass-sim/windlass-sim/sim"
	"github.com/windlass-sim/windlass-sim/sim/install"
)

// Default process durations (hours) applied when project.yaml leaves
// them out.
const (
	defaultLoadRocksHours = 4.0
	defaultDropRocksHours = 10.0
	defaultMobilizeHours  = 72.0
)

// ProjectConfig is the full project.yaml structure. All top-level
// sections must be listed to satisfy KnownFields(true) strict parsing.
type ProjectConfig struct {
	Site            SiteConfig          `yaml:"site"`
	Plant           PlantConfig         `yaml:"plant"`
	Turbine         TurbineConfig       `yaml:"turbine"`
	Port            PortConfig          `yaml:"port"`
	ScourProtection ScourConfig         `yaml:"scour_protection"`
	SPIVessel       VesselRef           `yaml:"spi_vessel"`
	ProcessTimes    ProcessTimesConfig  `yaml:"process_times"`
	MooringSystem   MooringDesignConfig `yaml:"mooring_system"`
	Weather         WeatherConfig       `yaml:"weather"`
}

// SiteConfig locates the site relative to the staging port. Depth only
// matters to the mooring design calculator.
type SiteConfig struct {
	Distance float64 `yaml:"distance" validate:"required,gt=0"` // km
	Depth    float64 `yaml:"depth" validate:"omitempty,gt=0"`   // m
}

// PlantConfig describes the turbine array. TurbineDistance is optional;
// when absent it is derived from rotor diameter and spacing.
type PlantConfig struct {
	NumTurbines     int     `yaml:"num_turbines" validate:"required,gt=0"`
	TurbineSpacing  float64 `yaml:"turbine_spacing" validate:"omitempty,gt=0"`  // rotor diameters
	TurbineDistance float64 `yaml:"turbine_distance" validate:"omitempty,gt=0"` // km
}

type TurbineConfig struct {
	RotorDiameter float64 `yaml:"rotor_diameter" validate:"omitempty,gt=0"` // m
	TurbineRating float64 `yaml:"turbine_rating" validate:"omitempty,gt=0"` // MW
}

// PortConfig bounds the rock stockpile. A nil SupplyTons means the port
// never runs out.
type PortConfig struct {
	SupplyTons *float64 `yaml:"supply_tons" validate:"omitempty,gt=0"`
}

type ScourConfig struct {
	TonsPerSubstructure float64 `yaml:"tons_per_substructure" validate:"required,gt=0"`
}

// ProcessTimesConfig overrides the default operation durations (hours).
// Mobilize is a pointer so an explicit zero can switch mobilization off.
type ProcessTimesConfig struct {
	LoadRocks float64  `yaml:"load_rocks" validate:"omitempty,gt=0"`
	DropRocks float64  `yaml:"drop_rocks" validate:"omitempty,gt=0"`
	Mobilize  *float64 `yaml:"mobilize" validate:"omitempty,gte=0"`
}

type MooringDesignConfig struct {
	NumLines                 int     `yaml:"num_lines" validate:"omitempty,gt=0"`
	AnchorType               string  `yaml:"anchor_type"`
	DragEmbedmentFixedLength float64 `yaml:"drag_embedment_fixed_length" validate:"omitempty,gt=0"`
}

type WeatherConfig struct {
	File string `yaml:"file"`
}

// VesselSpecConfig is one vessel entry, inline or in the library file.
type VesselSpecConfig struct {
	Name          string  `yaml:"name"`
	TransitSpeed  float64 `yaml:"transit_speed" validate:"required,gt=0"` // km/h
	MaxCargo      float64 `yaml:"max_cargo" validate:"required,gt=0"`     // t
	DayRate       float64 `yaml:"day_rate" validate:"omitempty,gt=0"`     // USD/day
	MaxWindspeed  float64 `yaml:"max_windspeed" validate:"omitempty,gt=0"`
	MaxWaveheight float64 `yaml:"max_waveheight" validate:"omitempty,gt=0"`
}

// VesselRef is either the name of a library vessel or an inline spec
// mapping, mirroring the "dict | str" convention of the source configs.
type VesselRef struct {
	Name string
	Spec *VesselSpecConfig
}

func (r *VesselRef) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		return value.Decode(&r.Name)
	case yaml.MappingNode:
		var spec VesselSpecConfig
		if err := value.Decode(&spec); err != nil {
			return err
		}
		r.Spec = &spec
		return nil
	default:
		return fmt.Errorf("spi_vessel must be a vessel name or an inline vessel spec")
	}
}

// LoadProjectConfig parses and validates project.yaml. Unknown fields
// are errors so config typos cannot silently fall back to defaults.
func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project config: %w", err)
	}

	var cfg ProjectConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse project config %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("project config %s: %w", path, err)
	}
	return &cfg, nil
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.ProcessTimes.LoadRocks == 0 {
		pc.ProcessTimes.LoadRocks = defaultLoadRocksHours
	}
	if pc.ProcessTimes.DropRocks == 0 {
		pc.ProcessTimes.DropRocks = defaultDropRocksHours
	}
	if pc.ProcessTimes.Mobilize == nil {
		mobilize := defaultMobilizeHours
		pc.ProcessTimes.Mobilize = &mobilize
	}
}

func (pc *ProjectConfig) validate() error {
	v := validator.New()
	if err := v.Struct(pc); err != nil {
		return formatValidationError(err)
	}
	if pc.Plant.TurbineDistance <= 0 &&
		(pc.Turbine.RotorDiameter <= 0 || pc.Plant.TurbineSpacing <= 0) {
		return fmt.Errorf("plant.turbine_distance is not set and cannot be derived: " +
			"set it, or set turbine.rotor_diameter and plant.turbine_spacing")
	}
	return nil
}

// formatValidationError converts validator errors into readable messages.
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}
	var messages []string
	for _, e := range validationErrs {
		messages = append(messages, fmt.Sprintf(
			"field '%s' failed validation: %s (value: '%v')",
			e.Namespace(), e.Tag(), e.Value(),
		))
	}
	return fmt.Errorf("validation failed:\n  %s", strings.Join(messages, "\n  "))
}

// ScourInstallConfig assembles the installation phase configuration from
// the project config and the resolved vessel spec.
func (pc *ProjectConfig) ScourInstallConfig(vessel sim.VesselSpec) install.ScourProtectionConfig {
	supply := math.Inf(1)
	if pc.Port.SupplyTons != nil {
		supply = *pc.Port.SupplyTons
	}
	vessel.MobilizeHours = *pc.ProcessTimes.Mobilize
	return install.ScourProtectionConfig{
		SiteDistance:        pc.Site.Distance,
		NumTurbines:         pc.Plant.NumTurbines,
		TurbineDistance:     pc.Plant.TurbineDistance,
		RotorDiameter:       pc.Turbine.RotorDiameter,
		TurbineSpacing:      pc.Plant.TurbineSpacing,
		TonsPerSubstructure: pc.ScourProtection.TonsPerSubstructure,
		PortSupply:          supply,
		LoadRocksTime:       pc.ProcessTimes.LoadRocks,
		DropRocksTime:       pc.ProcessTimes.DropRocks,
		Vessel:              vessel,
	}
}

// MooringDesign assembles the mooring calculator configuration.
func (pc *ProjectConfig) MooringDesign() design.MooringConfig {
	return design.MooringConfig{
		SiteDepth:                pc.Site.Depth,
		TurbineRating:            pc.Turbine.TurbineRating,
		NumTurbines:              pc.Plant.NumTurbines,
		NumLines:                 pc.MooringSystem.NumLines,
		AnchorType:               pc.MooringSystem.AnchorType,
		DragEmbedmentFixedLength: pc.MooringSystem.DragEmbedmentFixedLength,
	}
}
