// Package weather loads hourly metocean series and turns per-vessel
// operating limits into the constraint evaluator the engine consults
// before weather-gated tasks.
package weather

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Series is an hourly metocean record starting at simulation time zero.
// Row i covers simulated hours [i, i+1).
type Series struct {
	Windspeed  []float64 // m/s
	Waveheight []float64 // m
}

// Len returns the number of hourly rows.
func (s *Series) Len() int { return len(s.Windspeed) }

// LoadSeriesCSV reads an hourly weather series from a CSV file. The
// header must name a windspeed and a waveheight column; any other
// columns (timestamps, temperature, ...) are ignored.
func LoadSeriesCSV(path string) (*Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open weather series: %w", err)
	}
	defer f.Close()
	s, err := ReadSeries(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ReadSeries parses CSV weather data from r. Split from LoadSeriesCSV so
// tests can feed literal data.
func ReadSeries(r io.Reader) (*Series, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read weather header: %w", err)
	}
	windCol, waveCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "windspeed":
			windCol = i
		case "waveheight":
			waveCol = i
		}
	}
	if windCol < 0 || waveCol < 0 {
		return nil, fmt.Errorf("weather header %v: need windspeed and waveheight columns", header)
	}

	s := &Series{}
	for row := 2; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read weather row %d: %w", row, err)
		}
		wind, err := strconv.ParseFloat(strings.TrimSpace(rec[windCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("weather row %d: bad windspeed %q", row, rec[windCol])
		}
		wave, err := strconv.ParseFloat(strings.TrimSpace(rec[waveCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("weather row %d: bad waveheight %q", row, rec[waveCol])
		}
		s.Windspeed = append(s.Windspeed, wind)
		s.Waveheight = append(s.Waveheight, wave)
	}
	if s.Len() == 0 {
		return nil, fmt.Errorf("weather series has no data rows")
	}
	return s, nil
}
