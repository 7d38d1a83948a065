// Package design holds static design calculators that size project
// components before any installation is simulated. Each calculator is a
// pure function of its configuration: regression fits evaluated once, no
// simulation state involved. The fits size logistics inputs; they are not
// engineering designs.
package design

import (
	"fmt"
	"math"
)

// Anchor types understood by the mooring calculator.
const (
	AnchorSuctionPile   = "Suction Pile"
	AnchorDragEmbedment = "Drag Embedment"
)

const (
	defaultNumLines                 = 4
	defaultDragEmbedmentFixedLength = 0.5
)

// MooringConfig describes the site and plant a mooring system is sized
// for. NumLines, AnchorType and DragEmbedmentFixedLength fall back to
// their defaults (4 lines, suction pile, 0.5) when left zero.
type MooringConfig struct {
	SiteDepth                float64 // m
	TurbineRating            float64 // MW
	NumTurbines              int
	NumLines                 int    // lines per turbine
	AnchorType               string // AnchorSuctionPile or AnchorDragEmbedment
	DragEmbedmentFixedLength float64
}

// MooringSystem is a sized mooring system with its cost breakdown. Line
// quantities are per line; SystemCost covers all lines of all turbines.
type MooringSystem struct {
	NumLines     int     `json:"num_lines"`
	LineDiameter float64 `json:"line_diameter_m"`
	LineLength   float64 `json:"line_length_m"`
	LineMass     float64 `json:"line_mass_t"`
	BreakingLoad float64 `json:"breaking_load_kn"`
	LineCostRate float64 `json:"line_cost_rate_usd_per_m"`
	AnchorType   string  `json:"anchor_type"`
	AnchorMass   float64 `json:"anchor_mass_t"`
	AnchorCost   float64 `json:"anchor_cost_usd"`
	SystemCost   float64 `json:"system_cost_usd"`
}

// DesignMooring sizes mooring lines and anchors for every turbine in the
// plant and prices the system. The chain is picked from a three-entry
// catalog by a fit on turbine rating; breaking load, line length and
// anchor cost are regressions on chain diameter and site depth.
func DesignMooring(cfg MooringConfig) (*MooringSystem, error) {
	switch {
	case cfg.SiteDepth <= 0 || math.IsNaN(cfg.SiteDepth):
		return nil, fmt.Errorf("mooring design: site depth %.2f must be positive", cfg.SiteDepth)
	case cfg.TurbineRating <= 0 || math.IsNaN(cfg.TurbineRating):
		return nil, fmt.Errorf("mooring design: turbine rating %.2f must be positive", cfg.TurbineRating)
	case cfg.NumTurbines <= 0:
		return nil, fmt.Errorf("mooring design: turbine count %d must be positive", cfg.NumTurbines)
	case cfg.NumLines < 0:
		return nil, fmt.Errorf("mooring design: line count %d must not be negative", cfg.NumLines)
	case cfg.DragEmbedmentFixedLength < 0:
		return nil, fmt.Errorf("mooring design: drag embedment fixed length %.2f must not be negative", cfg.DragEmbedmentFixedLength)
	}

	lines := cfg.NumLines
	if lines == 0 {
		lines = defaultNumLines
	}
	anchorType := cfg.AnchorType
	if anchorType == "" {
		anchorType = AnchorSuctionPile
	}
	if anchorType != AnchorSuctionPile && anchorType != AnchorDragEmbedment {
		return nil, fmt.Errorf("mooring design: unknown anchor type %q", anchorType)
	}

	diam, massPerMeter, costRate := mooringLine(cfg.TurbineRating)
	breaking := breakingLoad(diam)
	length := lineLength(cfg.SiteDepth, anchorType, cfg.DragEmbedmentFixedLength)
	anchorMass, anchorCost := anchorMassCost(anchorType, breaking)

	return &MooringSystem{
		NumLines:     lines,
		LineDiameter: diam,
		LineLength:   length,
		LineMass:     length * massPerMeter,
		BreakingLoad: breaking,
		LineCostRate: costRate,
		AnchorType:   anchorType,
		AnchorMass:   anchorMass,
		AnchorCost:   anchorCost,
		SystemCost:   float64(lines) * float64(cfg.NumTurbines) * (anchorCost + length*costRate),
	}, nil
}

// mooringLine picks the catalog chain for a turbine rating and returns
// its diameter (m), linear mass (t/m) and cost rate (USD/m). The fit is
// a downward parabola, so ratings past its crest roll back to smaller
// chains; that is how the catalog fit behaves outside its support.
func mooringLine(rating float64) (diam, massPerMeter, costRate float64) {
	fit := -0.0004*rating*rating + 0.0132*rating + 0.0536
	switch {
	case fit <= 0.09:
		return 0.09, 0.161, 399.0
	case fit <= 0.12:
		return 0.12, 0.288, 721.0
	default:
		return 0.15, 0.450, 1088.0
	}
}

// breakingLoad returns the minimum breaking load (kN) of a chain of the
// given diameter.
func breakingLoad(diam float64) float64 {
	return 419449*diam*diam + 93415*diam - 3577.9
}

// lineLength returns the per-line length (m) for a site depth. Drag
// embedment anchors add a fixed scope on top of the depth fit.
func lineLength(depth float64, anchorType string, dragFixed float64) float64 {
	var fixed float64
	if anchorType == AnchorDragEmbedment {
		fixed = dragFixed
		if fixed == 0 {
			fixed = defaultDragEmbedmentFixedLength
		}
	}
	return 0.0002*depth*depth + 1.264*depth + 47.776 + fixed
}

// anchorMassCost returns anchor mass (t) and unit cost (USD), both sized
// off the line's breaking load.
func anchorMassCost(anchorType string, breaking float64) (mass, cost float64) {
	if anchorType == AnchorDragEmbedment {
		return 20, breaking / 9.81 / 20.0 * 2000.0
	}
	return 50, math.Sqrt(breaking/9.81/1250) * 150000
}
