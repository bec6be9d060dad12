package cmd

import (
	"errors"
	"fmt"

	"osu-db-tool/core/config"
	"osu-db-tool/core/database"
	"osu-db-tool/core/logger"
	"osu-db-tool/core/metrics"
	"osu-db-tool/core/osudb"
	"osu-db-tool/core/storage"
	"osu-db-tool/feature/rating"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app holds everything a command needs for one run.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	runID    string
	paths    osudb.Paths
	metrics  *metrics.Metrics
	snapshot storage.Snapshotter
	// mirror is nil when no storage endpoint is configured.
	mirror *storage.Mirror
}

// newApp loads configuration and builds the shared services for the installation at osuPath.
func newApp(osuPath string) (*app, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if logLevelFlag != "" {
		cfg.Log.Level = logLevelFlag
	}
	if workersFlag > 0 {
		cfg.Rating.Workers = workersFlag
	}

	base, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	runID := uuid.NewString()
	logg := logger.WithRunID(base, runID)
	logg.Info("Using osu! directory", zap.String("path", osuPath))

	var (
		snapshot storage.Snapshotter = storage.Nop{}
		mirror   *storage.Mirror
	)
	if cfg.Storage.Enabled() {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		mirror = storage.NewMirror(client, cfg.Storage.Bucket, cfg.Storage.Prefix, runID, logg)
		snapshot = mirror
		logg.Info("Snapshots enabled", zap.String("endpoint", cfg.Storage.Endpoint), zap.String("bucket", cfg.Storage.Bucket))
	}

	return &app{
		cfg:      cfg,
		log:      logg,
		runID:    runID,
		paths:    osudb.Paths{Root: osuPath},
		metrics:  metrics.New(),
		snapshot: snapshot,
		mirror:   mirror,
	}, nil
}

// songsDir resolves the beatmap directory from osu!.<username>.cfg. Without a cfg file
// it falls back to <osu-path>/Songs.
func (a *app) songsDir() (string, error) {
	dir, err := rating.ResolveSongsDir(a.paths, a.cfg.Osu.Username)
	if errors.Is(err, osudb.ErrNotFound) {
		a.log.Warn("No osu! user config, using default songs directory", zap.Error(err))
		return a.paths.Songs(), nil
	}
	return dir, err
}

// connectDB opens the ledger database, or returns nil when none is configured.
func (a *app) connectDB() (*gorm.DB, error) {
	if !a.cfg.Database.Enabled() {
		return nil, nil
	}
	db, err := database.Connect(a.cfg.Database)
	if err != nil {
		return nil, err
	}
	a.log.Info("Connected to database", zap.String("driver", a.cfg.Database.Driver))
	return db, nil
}

// close exports metrics and flushes the logger.
func (a *app) close() {
	if path := a.cfg.Metrics.Textfile; path != "" {
		if err := a.metrics.WriteTextfile(path); err != nil {
			a.log.Warn("Failed to write metrics textfile", zap.String("path", path), zap.Error(err))
		}
	}
	_ = a.log.Sync()
}
