package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/windlass-sim/windlass-sim/sim"
	"github.com/windlass-sim/windlass-sim/sim/weather"
)

var (
	weatherFile    string
	weatherMaxWind float64
	weatherMaxWave float64
)

// weatherCmd summarizes a weather series without running a simulation:
// how much of the series is workable under the given limits.
var weatherCmd = &cobra.Command{
	Use:   "weather",
	Short: "Summarize operability of a weather series",
	Long:  "Load an hourly weather CSV and report the fraction of workable hours under the given limits, with wind and wave statistics. Zero limits mean unlimited.",
	Run: func(cmd *cobra.Command, args []string) {
		series, err := weather.LoadSeriesCSV(weatherFile)
		if err != nil {
			logrus.Fatalf("Failed to load weather series: %v", err)
		}

		kind := sim.OperationKind("work")
		evaluator := weather.NewEvaluator(series, map[sim.OperationKind]weather.Limits{
			kind: {MaxWindspeed: weatherMaxWind, MaxWaveheight: weatherMaxWave},
		})
		op := evaluator.Operability(kind)

		fmt.Println("=== Weather Operability ===")
		fmt.Printf("Hours                : %d\n", series.Len())
		fmt.Printf("Workable             : %.1f%%\n", op.FeasibleFraction*100)
		fmt.Printf("Windspeed mean/p90   : %.1f / %.1f m/s\n", op.MeanWindspeed, op.P90Windspeed)
		fmt.Printf("Waveheight mean/p90  : %.2f / %.2f m\n", op.MeanWaveheight, op.P90Waveheight)
	},
}

func init() {
	weatherCmd.Flags().StringVar(&weatherFile, "file", "", "Weather series CSV")
	weatherCmd.Flags().Float64Var(&weatherMaxWind, "max-windspeed", 0, "Windspeed limit (m/s)")
	weatherCmd.Flags().Float64Var(&weatherMaxWave, "max-waveheight", 0, "Waveheight limit (m)")
	_ = weatherCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(weatherCmd)
}
