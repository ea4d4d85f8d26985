// Command calibrate runs the Calibration Harness offline against a fixed
// set of sample natal charts, rewriting each meter's percentile tables and
// reporting the §8 acceptance checks. It takes no flags: the sample charts
// and date span are fixed constants below, matching the small seed dataset
// shipped with the embedded city gazetteer (internal/ephemeris/data).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"astrometers/internal/calibration"
	"astrometers/internal/config"
	"astrometers/internal/domain"
	"astrometers/internal/engine"
	"astrometers/internal/ephemeris"
	"astrometers/internal/logging"
)

// sampleBirths seeds the harness with a small, deliberately varied fleet of
// natal charts: different hemispheres, different times of day, so the
// within/between-group correlation checks have more than one chart's worth
// of signal to work with.
var sampleBirths = []ephemeris.BirthData{
	{Year: 1990, Month: 3, Day: 21, LocalTime: "06:00:00", City: "New York"},
	{Year: 1985, Month: 7, Day: 4, LocalTime: "14:30:00", City: "London"},
	{Year: 2001, Month: 12, Day: 25, LocalTime: "23:15:00", City: "Sydney"},
	{Year: 1978, Month: 11, Day: 2, LocalTime: "09:45:00", City: "Sao Paulo"},
	{Year: 1995, Month: 5, Day: 17, LocalTime: "18:00:00", City: "Tokyo"},
}

func main() {
	cfg := config.Load()
	logger := logging.NewLogger(cfg.Logging)

	adapter, err := ephemeris.NewSwissEphemerisAdapter(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "calibrate: initializing ephemeris adapter: %v\n", err)
		os.Exit(1)
	}

	meters, err := config.LoadMeters(cfg.Engine.MetersConfigDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "calibrate: loading meter registry: %v\n", err)
		os.Exit(1)
	}

	constants, err := config.LoadConstants(cfg.Engine.MetersConfigDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "calibrate: loading engine constants: %v\n", err)
		os.Exit(1)
	}
	engine.Configure(engine.Tunables{
		Sensitivity:      constants.Sensitivity,
		SigmaDivisor:     constants.SigmaDivisor,
		SpeedFloorDegDay: constants.SpeedFloorDegDay,
		ChartRulerBonus:  constants.ChartRulerBonus,
	})

	store, err := calibration.NewStore(cfg.Engine.CalibrationDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "calibrate: opening store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	charts := make([]*domain.NatalChart, 0, len(sampleBirths))
	for _, birth := range sampleBirths {
		chart, err := adapter.BuildNatalChart(birth)
		if err != nil {
			fmt.Fprintf(os.Stderr, "calibrate: building chart for %s: %v\n", birth.City, err)
			os.Exit(1)
		}
		charts = append(charts, chart)
	}

	span := calibration.DateRange{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	harness := calibration.NewHarness(store, adapter, meters, logger)

	ctx := context.Background()
	results, err := harness.Run(ctx, charts, span)
	if err != nil {
		fmt.Fprintf(os.Stderr, "calibrate: running harness: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%-24s %8s %8s\n", "meter", "ballast", "status")
	for _, r := range results {
		verdict, err := harness.Verify(ctx, r.MeterID, meters)
		status := "ok"
		if err != nil {
			status = "REJECTED"
		}
		fmt.Printf("%-24s %8.2f %8s\n", r.MeterID, r.Ballast, status)
		if verdict != nil {
			for _, reason := range verdict.Reasons {
				fmt.Printf("  - %s\n", reason)
			}
		}
	}
}
