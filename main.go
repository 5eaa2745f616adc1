package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/wildstyl3r/argonmc/internal/config"
	"github.com/wildstyl3r/argonmc/internal/constants"
	"github.com/wildstyl3r/argonmc/internal/crosssection"
	"github.com/wildstyl3r/argonmc/internal/model"
	"github.com/wildstyl3r/argonmc/internal/utils"
)

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	dataFlags := model.NewDataFlags(fs)
	opts, err := config.ParseOptions(fs, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, dataFlags, logger); err != nil {
		logger.Error("run failed", "err", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, opts config.Options, dataFlags model.DataFlags, logger *slog.Logger) error {
	startTime := time.Now()
	logger.Info("starting", "time", startTime.UTC().Format(time.UnixDate), "input", opts.Input)

	cfg, meta, err := config.LoadConfig(opts.Input)
	if err != nil {
		return err
	}
	if opts.OutputDir != "" {
		cfg.OutputDir = opts.OutputDir
	}

	outputPath := ""
	if cfg.OutputDir != "" && cfg.OutputDir != "." {
		if err := os.MkdirAll(cfg.OutputDir, 0750); err != nil {
			return fmt.Errorf("unable to create output directory: %w", err)
		}
		outputPath = cfg.OutputDir + "/"
	}
	dataFlags.SetOutputPath(outputPath)

	var summary utils.CSV
	var errs []error
	for _, runName := range cfg.RunNames() {
		row, err := simulate(ctx, runName, &cfg, &meta, opts, dataFlags, logger)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			logger.Error("run skipped", "run", runName, "err", err)
			errs = append(errs, fmt.Errorf("%s: %w", runName, err))
			continue
		}
		summary = append(summary, row)
	}

	if len(summary) > 0 {
		name, err := utils.WriteAsCSV(summary, dataFlags.GetOutputPath(), "", utils.GetFilename(opts.Input)+"_summary", false, model.SummaryColumns)
		if err != nil {
			errs = append(errs, err)
		} else {
			logger.Info("summary saved", "file", name)
		}
	}
	logger.Info("done", "runs", len(summary), "elapsed", time.Since(startTime).Round(time.Millisecond))
	return errors.Join(errs...)
}

func simulate(ctx context.Context, runName string, cfg *config.Config, meta *toml.MetaData, opts config.Options, dataFlags model.DataFlags, logger *slog.Logger) ([]string, error) {
	parameters, err := cfg.Resolve(runName, meta)
	if err != nil {
		return nil, err
	}
	if opts.Seed != 0 {
		parameters.Seed = opts.Seed
	}
	if dataFlags.NeedsHistory() {
		parameters.KeepHistory = true
	}
	parameters.SetThreads(opts.Threads)
	parameters.SetVerbosity(opts.Verbose)
	parameters.LogWarnings(logger, runName)

	gas, err := constants.LookupGas(parameters.Gas)
	if err != nil {
		return nil, err
	}
	source, massRatio, err := crosssection.Open(parameters.CrossSections, parameters.CrossSectionsFormat, gas, logger)
	if err != nil {
		return nil, err
	}
	m, err := model.NewModel(parameters, source, gas, massRatio, logger.With("run", runName))
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := m.Run(ctx, func(percent int) {
		fmt.Fprintf(os.Stderr, "\r%s: %3d%%", runName, percent)
	})
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, err
	}
	logger.Info("run finished",
		"run", runName,
		"seed", result.Seed,
		"meanIonizations", result.Stats.Ionizations.Mean,
		"survivalRate", result.Stats.SurvivalRate,
		"elapsed", time.Since(start).Round(time.Millisecond))

	extractor := model.NewDataExtractor(m, result)
	if err := extractor.Save(runName, dataFlags); err != nil {
		return nil, err
	}
	return extractor.SummaryRow(runName), nil
}
