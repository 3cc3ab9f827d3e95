package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"climametrics/internal/comfort"
	"climametrics/internal/config"
	"climametrics/internal/dataprocessing"
	"climametrics/internal/exporter"
	"climametrics/internal/infrastructure"
)

func main() {
	inputPath := flag.String("input", "", "EnergyPlus hourly output CSV (required)")
	outputDir := flag.String("out", "", "output directory for indicator files (defaults to configured reports dir)")
	simulation := flag.String("simulation", "", "simulation label used in file names and output columns (defaults to input file name)")
	zonesFlag := flag.String("zones", "", "comma-separated zone names (defaults to every zone in the file)")
	indicatorsFlag := flag.String("indicators", "", "comma-separated indicator selection (defaults to all)")
	format := flag.String("format", "wide", "output format: wide, long, powerbi, or xlsx")
	dateStart := flag.String("start", "", "inclusive start of the MM/DD date filter")
	dateEnd := flag.String("end", "", "inclusive end of the MM/DD date filter")
	comfortTemp := flag.Float64("comfort-temp", 0, "IOD comfort threshold in °C (overrides config)")
	baseTemp := flag.Float64("base-temp", 0, "AWD base temperature in °C (overrides config)")
	year := flag.Int("year", 0, "year used to materialize simulation timestamps (overrides config)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := infrastructure.MustInitializeLogger(cfg.Logging)
	ctx := infrastructure.ContextWithRunID(context.Background())
	logger = logger.With("run_id", infrastructure.GetRunID(ctx))

	if *inputPath == "" {
		logger.Error("missing required -input flag")
		flag.Usage()
		os.Exit(1)
	}

	params, err := cfg.Parameters()
	if err != nil {
		logger.Error("invalid comfort configuration", "error", err)
		os.Exit(1)
	}
	if *comfortTemp != 0 {
		params.ComfortTemp = *comfortTemp
	}
	if *baseTemp != 0 {
		params.BaseTemp = *baseTemp
	}
	if *year != 0 {
		params.Year = *year
	}
	if *indicatorsFlag != "" {
		params.Indicators = nil
		for _, name := range splitList(*indicatorsFlag) {
			ind, err := comfort.ParseIndicator(name)
			if err != nil {
				logger.Error("unknown indicator", "name", name, "error", err)
				os.Exit(1)
			}
			params.Indicators = append(params.Indicators, ind)
		}
	}
	if *dateStart != "" || *dateEnd != "" {
		dr, err := comfort.ParseDateRange(*dateStart, *dateEnd)
		if err != nil {
			logger.Error("invalid date range", "error", err)
			os.Exit(1)
		}
		params.Range = dr
	}

	if *outputDir == "" {
		*outputDir = cfg.Paths.ReportsDir
	}
	if *simulation == "" {
		base := filepath.Base(*inputPath)
		*simulation = strings.TrimSuffix(base, filepath.Ext(base))
	}

	logger.InfoContext(ctx, "parsing simulation output",
		"input", *inputPath,
		"simulation", *simulation)

	parser := dataprocessing.NewParser(params.Year, params.WattsPerPerson, logger)
	series, err := parser.ParseFile(*inputPath, splitList(*zonesFlag))
	if err != nil {
		logger.ErrorContext(ctx, "failed to parse simulation output", "error", err)
		os.Exit(1)
	}

	var history []comfort.DailyOutdoorTemp
	if params.Range != nil && len(series) > 0 && len(series[0].Records) > 0 {
		// Days before the filtered window still seed the running mean.
		for _, r := range series[0].Records {
			if params.Range.Contains(r.Timestamp) {
				history = dataprocessing.OutdoorHistory(series, r.Timestamp)
				break
			}
		}
	}

	zones := make([]string, 0, len(series))
	for _, s := range series {
		zones = append(zones, s.Zone)
	}

	calc := comfort.NewCalculator(*simulation, params, logger)
	results, err := calc.Calculate(ctx, comfort.Input{
		Series:  series,
		History: history,
		Zones:   zones,
	})
	if err != nil {
		var insufficient *comfort.InsufficientHistoryError
		if errors.As(err, &insufficient) {
			logger.ErrorContext(ctx, "not enough outdoor history for the adaptive comfort bound",
				"error", err,
				"hint", "widen the date filter or supply at least one prior day")
		} else {
			logger.ErrorContext(ctx, "indicator calculation failed", "error", err)
		}
		os.Exit(1)
	}
	logger.InfoContext(ctx, "calculated indicators",
		"results", len(results.Results),
		"zones", len(zones))

	if err := export(results, *format, *outputDir, *simulation); err != nil {
		logger.ErrorContext(ctx, "failed to export results", "error", err, "format", *format)
		os.Exit(1)
	}
	logger.InfoContext(ctx, "export complete", "format", *format, "out", *outputDir)
}

func export(results *comfort.ResultSet, format, outputDir, simulation string) error {
	switch strings.ToLower(format) {
	case "wide":
		return exporter.NewWideExporter(outputDir).Export(results)
	case "long":
		filename := fmt.Sprintf("indicators_long_%s.csv", simulation)
		return exporter.NewLongExporter(outputDir).Export(results, filename)
	case "powerbi":
		filename := fmt.Sprintf("indicators_powerbi_%s.csv", simulation)
		return exporter.NewPowerBIExporter(outputDir).Export(results, filename)
	case "xlsx":
		filename := fmt.Sprintf("indicators_%s.xlsx", simulation)
		return exporter.NewExcelExporter(outputDir).Export(results, filename)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
