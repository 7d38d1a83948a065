package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/windlass-sim/windlass-sim/design"
)

var (
	designConfigPath  string
	designDepth       float64
	designRating      float64
	designTurbines    int
	designNumLines    int
	designAnchorType  string
	designDragFixed   float64
	designResultsPath string
)

// designCmd sizes the mooring system, either from a full project config
// or from the scalar flags.
var designCmd = &cobra.Command{
	Use:   "design",
	Short: "Size the mooring system for a project",
	Long:  "Run the mooring design regressions from --config (a full project YAML) or from the scalar flags. The sized system is printed and optionally written as JSON.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := design.MooringConfig{
			SiteDepth:                designDepth,
			TurbineRating:            designRating,
			NumTurbines:              designTurbines,
			NumLines:                 designNumLines,
			AnchorType:               designAnchorType,
			DragEmbedmentFixedLength: designDragFixed,
		}
		if designConfigPath != "" {
			pc, err := LoadProjectConfig(designConfigPath)
			if err != nil {
				logrus.Fatalf("Failed to load project config: %v", err)
			}
			cfg = pc.MooringDesign()
		}

		ms, err := design.DesignMooring(cfg)
		if err != nil {
			logrus.Fatalf("Mooring design failed: %v", err)
		}

		fmt.Println("=== Mooring System Design ===")
		fmt.Printf("Lines per Turbine    : %d\n", ms.NumLines)
		fmt.Printf("Line Diameter        : %.2f m\n", ms.LineDiameter)
		fmt.Printf("Line Length          : %.1f m\n", ms.LineLength)
		fmt.Printf("Line Mass            : %.1f t\n", ms.LineMass)
		fmt.Printf("Breaking Load        : %.0f kN\n", ms.BreakingLoad)
		fmt.Printf("Anchor               : %s (%.0f t)\n", ms.AnchorType, ms.AnchorMass)
		fmt.Printf("Anchor Cost          : $%.0f\n", ms.AnchorCost)
		fmt.Printf("System Cost          : $%.0f\n", ms.SystemCost)

		if designResultsPath != "" {
			data, err := json.MarshalIndent(ms, "", "  ")
			if err != nil {
				logrus.Fatalf("Failed to encode design result: %v", err)
			}
			if err := os.WriteFile(designResultsPath, append(data, '\n'), 0o644); err != nil {
				logrus.Fatalf("Failed to write design result: %v", err)
			}
			logrus.Infof("Design result written to %s", designResultsPath)
		}
	},
}

func init() {
	designCmd.Flags().StringVar(&designConfigPath, "config", "", "Project configuration YAML (site, turbine and mooring sections)")
	designCmd.Flags().Float64Var(&designDepth, "depth", 0, "Site depth (m)")
	designCmd.Flags().Float64Var(&designRating, "turbine-rating", 0, "Turbine rating (MW)")
	designCmd.Flags().IntVar(&designTurbines, "num-turbines", 0, "Number of turbines")
	designCmd.Flags().IntVar(&designNumLines, "num-lines", 0, "Mooring lines per turbine (default 4)")
	designCmd.Flags().StringVar(&designAnchorType, "anchor", "", "Anchor type: \"Suction Pile\" (default) or \"Drag Embedment\"")
	designCmd.Flags().Float64Var(&designDragFixed, "drag-fixed-length", 0, "Fixed line scope for drag embedment anchors")
	designCmd.Flags().StringVar(&designResultsPath, "results", "", "Write the sized system as JSON to this path")

	rootCmd.AddCommand(designCmd)
}
