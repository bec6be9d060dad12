package rating

import (
	"context"

	"osu-db-tool/core/metrics"
	"osu-db-tool/core/osudb"
	"osu-db-tool/core/storage"

	"go.uber.org/zap"
)

// Service runs a full backfill against an osu! installation.
type Service struct {
	paths     osudb.Paths
	cfg       Config
	username  string
	evaluator Evaluator
	snapshot  storage.Snapshotter
	ledger    *Ledger
	metrics   *metrics.Metrics
	runID     string
	logger    *zap.Logger
}

// ServiceOption configures optional Service collaborators.
type ServiceOption func(*Service)

// WithLedger records failures in l.
func WithLedger(l *Ledger, runID string) ServiceOption {
	return func(s *Service) {
		s.ledger = l
		s.runID = runID
	}
}

// WithUsername selects the osu!.<username>.cfg used to locate the songs directory.
func WithUsername(username string) ServiceOption {
	return func(s *Service) {
		s.username = username
	}
}

// NewService creates a backfill service.
func NewService(paths osudb.Paths, cfg Config, evaluator Evaluator, snapshot storage.Snapshotter, m *metrics.Metrics, logger *zap.Logger, opts ...ServiceOption) *Service {
	s := &Service{
		paths:     paths,
		cfg:       cfg,
		evaluator: evaluator,
		snapshot:  snapshot,
		metrics:   m,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Backfill fills the wanted ratings of every beatmap in osu!.db and saves it once
// after the pass.
func (s *Service) Backfill(ctx context.Context, wanted []osudb.ModSet) (*Stats, error) {
	s.logger.Info("Reading osu!.db", zap.String("path", s.paths.Listing()))
	listing, err := osudb.LoadListing(s.paths.Listing())
	if err != nil {
		return nil, err
	}

	songs, err := ResolveSongsDir(s.paths, s.username)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Songs directory resolved", zap.String("path", songs))

	filler := NewFiller(s.evaluator, songs, wanted, s.cfg, s.metrics, s.logger)
	stats := filler.Fill(ctx, listing.Beatmaps)
	s.logger.Info("Calculation finished",
		zap.Int("calculated", stats.Calculated),
		zap.Int("skipped", stats.Skipped),
		zap.Int("failed", stats.Failed),
		zap.Int("total", stats.Total),
	)
	if stats.Failed > 0 {
		s.logger.Warn("Some beatmaps could not be loaded", zap.Int("failed", stats.Failed))
	}

	if s.ledger != nil {
		if err := s.ledger.Record(ctx, s.runID, stats.Failures); err != nil {
			return nil, err
		}
	}

	if err := s.snapshot.Snapshot(ctx, s.paths.Listing()); err != nil {
		return nil, err
	}
	s.logger.Info("Saving osu!.db")
	if err := listing.Save(s.paths.Listing()); err != nil {
		return nil, err
	}
	return &stats, nil
}
