// Package runner fans the per-stream analysis pipeline out over the cookie
// files of a collection run: encode the raw values, rewrite the CSV with the
// scalar column, render the chart, and retain a binary snapshot.
//
// Streams are fully independent (separate encoder, separate files), so the
// fan-out is a plain bounded-parallel loop with no shared mutable state
// beyond the error list.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/driftlab/cookietrail/chart"
	"github.com/driftlab/cookietrail/encode"
	"github.com/driftlab/cookietrail/errs"
	"github.com/driftlab/cookietrail/format"
	"github.com/driftlab/cookietrail/internal/hash"
	"github.com/driftlab/cookietrail/internal/options"
	"github.com/driftlab/cookietrail/store"
	"github.com/driftlab/cookietrail/trace"
)

// Runner processes the cookie files of one collection run.
type Runner struct {
	workers     int
	compression format.CompressionType
	charts      bool
	snapshots   bool
	logger      *slog.Logger
}

// Option configures a Runner.
type Option = options.Option[*Runner]

// WithWorkers bounds the parallel fan-out; values below one mean one.
func WithWorkers(n int) Option {
	return options.NoError(func(r *Runner) {
		if n < 1 {
			n = 1
		}
		r.workers = n
	})
}

// WithCompression selects the snapshot codec.
func WithCompression(typ format.CompressionType) Option {
	return options.New(func(r *Runner) error {
		if !typ.IsValid() {
			return fmt.Errorf("%w: %d", errs.ErrUnknownCompression, typ)
		}
		r.compression = typ

		return nil
	})
}

// WithCharts toggles PNG rendering.
func WithCharts(enabled bool) Option {
	return options.NoError(func(r *Runner) {
		r.charts = enabled
	})
}

// WithSnapshots toggles binary snapshot retention.
func WithSnapshots(enabled bool) Option {
	return options.NoError(func(r *Runner) {
		r.snapshots = enabled
	})
}

// WithLogger replaces the runner's logger.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(r *Runner) {
		r.logger = logger
	})
}

// New creates a runner. Defaults: 4 workers, Zstd snapshots, charts on.
func New(opts ...Option) (*Runner, error) {
	r := &Runner{
		workers:     4,
		compression: format.CompressionZstd,
		charts:      true,
		snapshots:   true,
		logger:      slog.Default(),
	}
	if err := options.Apply(r, opts...); err != nil {
		return nil, err
	}

	return r, nil
}

// Process runs the pipeline for every file, at most workers at a time.
//
// One stream's failure never stops the others: failures are logged, collected
// and returned joined after all streams finish. Context cancellation stops
// scheduling new streams.
func (r *Runner) Process(ctx context.Context, files []string) error {
	g := new(errgroup.Group)
	g.SetLimit(r.workers)

	var (
		mu       sync.Mutex
		failures []error
		ctxErr   error
	)
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			ctxErr = err
			break
		}

		path := path
		g.Go(func() error {
			if err := r.processStream(path); err != nil {
				r.logger.Error("stream processing failed", "file", path, "error", err)
				mu.Lock()
				failures = append(failures, fmt.Errorf("%s: %w", streamName(path), err))
				mu.Unlock()
			}

			return nil
		})
	}
	_ = g.Wait()

	if ctxErr != nil {
		return ctxErr
	}

	return errors.Join(failures...)
}

// processStream encodes one cookie file and writes its derived artifacts.
func (r *Runner) processStream(path string) error {
	name := streamName(path)

	times, raws, err := store.ReadRaw(path)
	if err != nil {
		return err
	}
	if len(raws) == 0 {
		return fmt.Errorf("%w: %s has no rows", errs.ErrNoDataPoints, path)
	}

	enc, err := encode.NewStreamEncoder(
		encode.WithDegeneracyHandler(func(raw string, scalar float64) {
			r.logger.Warn("degenerate encoding clamped",
				"stream", name, "len", len(raw), "scalar", scalar)
		}),
	)
	if err != nil {
		return err
	}
	scalars, err := enc.EncodeAll(raws)
	if err != nil {
		return err
	}

	if err := store.WriteAnnotated(path, times, raws, scalars); err != nil {
		return err
	}

	if r.charts {
		rows := make([]store.Row, len(raws))
		for i := range raws {
			rows[i] = store.Row{Time: times[i], Raw: raws[i], Scalar: scalars[i]}
		}
		if _, err := chart.Render(path, rows); err != nil {
			return err
		}
	}

	if r.snapshots {
		if err := r.writeSnapshot(path, name, times, scalars); err != nil {
			return err
		}
	}

	r.logger.Info("stream processed", "stream", name, "points", len(raws))

	return nil
}

// writeSnapshot retains the encoded series as a binary trace snapshot next
// to the CSV, keyed by the stream's xxHash64 ID.
func (r *Runner) writeSnapshot(path, name string, times []time.Time, scalars []float64) error {
	w, err := trace.NewWriter(hash.StreamID(name), times[0], trace.WithCompression(r.compression))
	if err != nil {
		return err
	}
	for i := range times {
		if err := w.Add(times[i].UnixMicro(), scalars[i]); err != nil {
			return err
		}
	}

	data, err := w.Finish()
	if err != nil {
		return err
	}

	snapPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".trace"
	if err := os.WriteFile(snapPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	return nil
}

func streamName(path string) string {
	base := filepath.Base(path)

	return strings.TrimSuffix(base, filepath.Ext(base))
}
