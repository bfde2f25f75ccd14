// Command cookietrail samples cookie values from a target URL and charts how
// each cookie's value drifts over time.
//
// Usage:
//
//	cookietrail [flags] <url>
//
// Each run creates a <domain>_<timestamp> directory holding, per cookie, the
// raw value CSV annotated with encoded scalars, a scatter chart PNG, and a
// binary trace snapshot.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/driftlab/cookietrail/collect"
	"github.com/driftlab/cookietrail/config"
	"github.com/driftlab/cookietrail/runner"
	"github.com/driftlab/cookietrail/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "cookietrail:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath  = flag.String("config", "", "YAML config file (flags override its values)")
		payloadPath = flag.String("payload", "", "auth payload file: one field,value pair per line, POSTed before each GET")
		requests    = flag.Int("requests", config.DefaultRequests, fmt.Sprintf("number of request cycles [%d, %d]", config.MinRequests, config.MaxRequests))
		throttle    = flag.Bool("throttle", false, "wait 0.5s between request cycles")
		outputDir   = flag.String("output", "", "output directory (default <domain>_<timestamp>)")
		workers     = flag.Int("workers", 0, "parallel analysis workers (default number of CPUs)")
		compression = flag.String("compression", "", "snapshot compression: none, zstd, s2 or lz4 (default zstd)")
		noCharts    = flag.Bool("no-charts", false, "skip chart rendering")
		noSnapshots = flag.Bool("no-snapshots", false, "skip binary snapshot retention")
		verbose     = flag.Bool("verbose", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	applyFlags(cfg, payloadPath, requests, throttle, outputDir, workers, compression, noCharts, noSnapshots)
	if flag.NArg() > 0 {
		cfg.URL = flag.Arg(0)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dir := cfg.OutputDir
	if dir == "" {
		dir = collect.OutputDir(cfg.URL, time.Now())
	}
	st, err := store.New(dir)
	if err != nil {
		return err
	}
	logger.Info("writing results", "dir", st.Dir())

	opts := []collect.Option{
		collect.WithRequests(cfg.Requests),
		collect.WithLogger(logger),
	}
	if cfg.Throttle {
		opts = append(opts, collect.WithThrottle(collect.ThrottleInterval))
	}
	if cfg.PayloadFile != "" {
		payload, err := collect.LoadPayload(cfg.PayloadFile)
		if err != nil {
			return err
		}
		opts = append(opts, collect.WithPayload(payload))
	}

	collector, err := collect.New(cfg.URL, st, opts...)
	if err != nil {
		return err
	}
	if err := collector.Run(ctx); err != nil {
		return err
	}
	if len(st.Files()) == 0 {
		logger.Warn("target set no cookies, nothing to analyze", "url", cfg.URL)
		// The run produced nothing; drop the empty directory.
		_ = os.Remove(st.Dir())

		return nil
	}
	logger.Info("collection complete",
		"cookies", collector.Registry().Count(),
		"names", collector.Registry().Names())

	r, err := runner.New(
		runner.WithWorkers(cfg.Workers),
		runner.WithCompression(cfg.CompressionType()),
		runner.WithCharts(cfg.Charts),
		runner.WithSnapshots(cfg.Snapshots),
		runner.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	if err := r.Process(ctx, st.Files()); err != nil {
		return err
	}

	logger.Info("run complete", "dir", st.Dir())

	return nil
}

// applyFlags overrides loaded config with explicitly-set CLI flags only, so a
// config file value survives unless the user passed the matching flag.
func applyFlags(cfg *config.Config, payloadPath *string, requests *int, throttle *bool,
	outputDir *string, workers *int, compression *string, noCharts, noSnapshots *bool,
) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "payload":
			cfg.PayloadFile = *payloadPath
		case "requests":
			cfg.Requests = *requests
		case "throttle":
			cfg.Throttle = *throttle
		case "output":
			cfg.OutputDir = *outputDir
		case "workers":
			cfg.Workers = *workers
		case "compression":
			cfg.Compression = *compression
		case "no-charts":
			cfg.Charts = !*noCharts
		case "no-snapshots":
			cfg.Snapshots = !*noSnapshots
		}
	})
}
