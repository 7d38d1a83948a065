package cmd

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	sim "github.com/windlass-sim/windlass-sim/sim"
)

// defaultVesselName matches the source convention for unnamed SPI
// vessels.
const defaultVesselName = "SPI Vessel"

// builtinVessels ships a small library so simple projects run without a
// vessels file. A --vessels file can add to or override these entries.
var builtinVessels = map[string]VesselSpecConfig{
	"example_scour_protection_vessel": {
		TransitSpeed:  11.5,
		MaxCargo:      4000,
		DayRate:       120000,
		MaxWindspeed:  15,
		MaxWaveheight: 2.5,
	},
	"heavy_rock_dumper": {
		TransitSpeed:  9.0,
		MaxCargo:      12000,
		DayRate:       210000,
		MaxWindspeed:  18,
		MaxWaveheight: 3.0,
	},
}

// vesselsFile is the on-disk vessel library structure.
type vesselsFile struct {
	Vessels map[string]VesselSpecConfig `yaml:"vessels"`
}

// VesselLibrary resolves vessel references to concrete specs.
type VesselLibrary struct {
	vessels map[string]VesselSpecConfig
}

// LoadVesselLibrary builds the library from the built-ins plus an
// optional YAML file. File entries override built-ins of the same name.
func LoadVesselLibrary(path string) (*VesselLibrary, error) {
	lib := &VesselLibrary{vessels: make(map[string]VesselSpecConfig, len(builtinVessels))}
	for name, spec := range builtinVessels {
		lib.vessels[name] = spec
	}
	if path == "" {
		return lib, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vessel library: %w", err)
	}
	var file vesselsFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("parse vessel library %s: %w", path, err)
	}
	for name, spec := range file.Vessels {
		lib.vessels[name] = spec
	}
	return lib, nil
}

// Names lists the library entries, sorted for stable error messages.
func (l *VesselLibrary) Names() []string {
	names := make([]string, 0, len(l.vessels))
	for name := range l.vessels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve turns a vessel reference into a runnable spec. Inline specs
// win over names; unnamed entries take the referenced library name.
func (l *VesselLibrary) Resolve(ref VesselRef) (sim.VesselSpec, error) {
	switch {
	case ref.Spec != nil:
		return ref.Spec.toSpec(defaultVesselName), nil
	case ref.Name != "":
		spec, ok := l.vessels[ref.Name]
		if !ok {
			return sim.VesselSpec{}, fmt.Errorf("vessel %q is not in the library (known vessels: %s)",
				ref.Name, strings.Join(l.Names(), ", "))
		}
		return spec.toSpec(ref.Name), nil
	default:
		return sim.VesselSpec{}, fmt.Errorf("no vessel specified: set spi_vessel in the project config or pass --vessel")
	}
}

func (c VesselSpecConfig) toSpec(fallbackName string) sim.VesselSpec {
	name := c.Name
	if name == "" {
		name = fallbackName
	}
	return sim.VesselSpec{
		Name:          name,
		TransitSpeed:  c.TransitSpeed,
		MaxCargo:      c.MaxCargo,
		DayRate:       c.DayRate,
		MaxWindspeed:  c.MaxWindspeed,
		MaxWaveheight: c.MaxWaveheight,
	}
}
