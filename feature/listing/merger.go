package listing

import (
	"context"

	"osu-db-tool/core/osudb"
	"osu-db-tool/core/reconcile"
	"osu-db-tool/core/storage"

	"go.uber.org/zap"
)

// Report summarizes one merge.
type Report struct {
	reconcile.Summary
	// Saved is true when osu!.db was rewritten.
	Saved bool `json:"saved"`
}

// Merger imports beatmaps from another listing.
type Merger struct {
	paths    osudb.Paths
	snapshot storage.Snapshotter
	logger   *zap.Logger
}

// NewMerger creates a merger targeting the installation at paths.
func NewMerger(paths osudb.Paths, snapshot storage.Snapshotter, logger *zap.Logger) *Merger {
	return &Merger{
		paths:    paths,
		snapshot: snapshot,
		logger:   logger,
	}
}

// Spec returns the reconcile spec for osu!.db entries.
func (m *Merger) Spec() *reconcile.Spec[osudb.Beatmap, string] {
	return &reconcile.Spec[osudb.Beatmap, string]{
		Name: "listing",
		Key: func(b *osudb.Beatmap) (string, bool) {
			return reconcile.Deref(b.Hash)
		},
		OnFound: func(existing *osudb.Beatmap, candidate osudb.Beatmap) {
			m.logger.Debug("Merging difficulty ratings", zap.Int32("beatmap_id", candidate.BeatmapID))
		},
		OnMissing: func(candidate osudb.Beatmap) osudb.Beatmap {
			m.logger.Debug("Adding beatmap", zap.Int32("beatmap_id", candidate.BeatmapID))
			return candidate
		},
	}
}

// Merge reconciles every beatmap of the listing at source into osu!.db and saves it
// when anything was inserted.
func (m *Merger) Merge(ctx context.Context, source string) (*Report, error) {
	m.logger.Info("Reading osu!.db", zap.String("path", m.paths.Listing()))
	target, err := osudb.LoadListing(m.paths.Listing())
	if err != nil {
		return nil, err
	}

	m.logger.Info("Reading source osu!.db", zap.String("path", source))
	src, err := osudb.LoadListing(source)
	if err != nil {
		return nil, err
	}

	spec := m.Spec()
	spec.Sort(target.Beatmaps)
	report := &Report{Summary: spec.ReconcileAll(&target.Beatmaps, src.Beatmaps)}

	if report.Inserted == 0 {
		m.logger.Info("Nothing changed", zap.Int("known", report.Found))
		return report, nil
	}

	if err := m.snapshot.Snapshot(ctx, m.paths.Listing()); err != nil {
		return nil, err
	}
	if err := target.Save(m.paths.Listing()); err != nil {
		return nil, err
	}
	report.Saved = true

	m.logger.Info("Listing merged",
		zap.Int("inserted", report.Inserted),
		zap.Int("known", report.Found),
	)
	return report, nil
}
