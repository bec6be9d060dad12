package rating

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"osu-db-tool/core/metrics"
	"osu-db-tool/core/osudb"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrMissingPath is recorded for beatmaps without a folder or file name.
var ErrMissingPath = errors.New("beatmap has no folder or file name")

// Failure is a beatmap that could not be loaded.
type Failure struct {
	Hash string
	Path string
	Err  error
}

// Stats summarizes one fill pass.
type Stats struct {
	Total      int
	Calculated int
	Skipped    int
	Failed     int
	Failures   []Failure
}

// Filler computes missing star ratings.
type Filler struct {
	evaluator     Evaluator
	songsDir      string
	wanted        []osudb.ModSet
	workers       int
	progressEvery int
	metrics       *metrics.Metrics
	logger        *zap.Logger
}

// NewFiller creates a filler reading beatmaps below songsDir.
func NewFiller(evaluator Evaluator, songsDir string, wanted []osudb.ModSet, cfg Config, m *metrics.Metrics, logger *zap.Logger) *Filler {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Filler{
		evaluator:     evaluator,
		songsDir:      songsDir,
		wanted:        wanted,
		workers:       workers,
		progressEvery: cfg.ProgressEvery,
		metrics:       m,
		logger:        logger,
	}
}

// Missing returns the wanted mod combinations b has no standard rating for, in wanted order.
func Missing(b *osudb.Beatmap, wanted []osudb.ModSet) []osudb.ModSet {
	var missing []osudb.ModSet
	for _, mods := range wanted {
		if !b.HasStdRating(mods) {
			missing = append(missing, mods)
		}
	}
	return missing
}

// Fill updates beatmaps in place. Each beatmap is handled independently: it is either
// skipped (nothing missing), calculated (every missing rating appended) or failed
// (left untouched).
func (f *Filler) Fill(ctx context.Context, beatmaps []osudb.Beatmap) Stats {
	var (
		calculated, skipped, printTrigger atomic.Int64

		mu       sync.Mutex
		failures []Failure
	)
	total := len(beatmaps)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.workers)

	for i := range beatmaps {
		b := &beatmaps[i]
		g.Go(func() error {
			missing := Missing(b, f.wanted)
			if len(missing) == 0 {
				skipped.Add(1)
				f.metrics.RatingsSkipped.Inc()
				return nil
			}

			path, err := f.fill(ctx, b, missing)
			if err != nil {
				f.metrics.RatingsFailed.Inc()
				f.logger.Debug("Failed to load beatmap", zap.String("path", path), zap.Error(err))
				mu.Lock()
				failures = append(failures, Failure{Hash: derefOr(b.Hash, ""), Path: path, Err: err})
				mu.Unlock()
				return nil
			}

			done := calculated.Add(1)
			f.metrics.RatingsCalculated.Inc()
			if f.progressEvery > 0 && printTrigger.Add(1) >= int64(f.progressEvery) {
				printTrigger.Store(0)
				f.logger.Info("Calculating",
					zap.Int64("calculated", done),
					zap.Int("total", total),
					zap.Int64("skipped", skipped.Load()),
				)
			}
			return nil
		})
	}
	_ = g.Wait()

	slices.SortFunc(failures, func(a, b Failure) int { return strings.Compare(a.Path, b.Path) })

	return Stats{
		Total:      total,
		Calculated: int(calculated.Load()),
		Skipped:    int(skipped.Load()),
		Failed:     len(failures),
		Failures:   failures,
	}
}

// fill computes every missing rating before touching b, so a failure leaves it unchanged.
func (f *Filler) fill(ctx context.Context, b *osudb.Beatmap, missing []osudb.ModSet) (string, error) {
	if b.FolderName == nil || b.FileName == nil {
		return "", ErrMissingPath
	}
	path := filepath.Join(f.songsDir, *b.FolderName, *b.FileName)

	chart, err := f.evaluator.Load(ctx, path)
	if err != nil {
		return path, err
	}

	ratings := make([]osudb.Rating, 0, len(missing))
	for _, mods := range missing {
		stars, err := chart.Stars(ctx, mods)
		if err != nil {
			return path, fmt.Errorf("%s: %w", mods, err)
		}
		ratings = append(ratings, osudb.Rating{Mods: mods, Stars: stars})
	}
	b.StdRatings = append(b.StdRatings, ratings...)
	return path, nil
}

func derefOr(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}
