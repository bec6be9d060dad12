package collection

import (
	"context"
	"errors"

	"osu-db-tool/core/osudb"
	"osu-db-tool/core/storage"

	"go.uber.org/zap"
)

// Config holds configuration for collection building.
type Config struct {
	// DefaultName is used when no collection name is given.
	DefaultName string `mapstructure:"default_name" default:"All maps"`
}

// Builder appends collections to collection.db.
type Builder struct {
	paths    osudb.Paths
	cfg      Config
	snapshot storage.Snapshotter
	logger   *zap.Logger
}

// NewBuilder creates a builder for the installation at paths.
func NewBuilder(paths osudb.Paths, cfg Config, snapshot storage.Snapshotter, logger *zap.Logger) *Builder {
	return &Builder{
		paths:    paths,
		cfg:      cfg,
		snapshot: snapshot,
		logger:   logger,
	}
}

// AllMaps returns a collection holding the hash of every listed beatmap that has one,
// in listing order.
func AllMaps(name string, listing *osudb.Listing) osudb.Collection {
	c := osudb.Collection{Name: osudb.Str(name)}
	for _, b := range listing.Beatmaps {
		if b.Hash != nil {
			c.BeatmapHashes = append(c.BeatmapHashes, b.Hash)
		}
	}
	return c
}

// AddAllMaps appends a collection of every beatmap in osu!.db to collection.db.
// An empty name selects the configured default.
func (b *Builder) AddAllMaps(ctx context.Context, name string) (*osudb.Collection, error) {
	if name == "" {
		name = b.cfg.DefaultName
	}

	b.logger.Info("Reading osu!.db", zap.String("path", b.paths.Listing()))
	listing, err := osudb.LoadListing(b.paths.Listing())
	if err != nil {
		return nil, err
	}

	b.logger.Info("Reading collection.db", zap.String("path", b.paths.Collections()))
	collections, err := osudb.LoadCollectionList(b.paths.Collections())
	switch {
	case errors.Is(err, osudb.ErrNotFound):
		// osu! only creates collection.db once the first collection is made.
		b.logger.Info("collection.db not found, creating it")
		collections = &osudb.CollectionList{Version: listing.Version}
	case err != nil:
		return nil, err
	}

	c := AllMaps(name, listing)
	collections.Collections = append(collections.Collections, c)

	if err := b.snapshot.Snapshot(ctx, b.paths.Collections()); err != nil {
		return nil, err
	}
	if err := collections.Save(b.paths.Collections()); err != nil {
		return nil, err
	}

	b.logger.Info("Collection added",
		zap.String("name", name),
		zap.Int("beatmaps", len(c.BeatmapHashes)),
	)
	return &c, nil
}
