package scores

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"osu-db-tool/core/osudb"
	"osu-db-tool/core/reconcile"
	"osu-db-tool/core/storage"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
)

// replayPattern matches replays in Data/r and any subdirectory.
const replayPattern = "**/*.osr"

// Report summarizes one import run.
type Report struct {
	reconcile.Summary
	// Added counts replays that were new to scores.db.
	Added int `json:"added"`
	// Duplicates counts replays already present for their beatmap.
	Duplicates int `json:"duplicates"`
	// Saved is true when scores.db was rewritten.
	Saved bool `json:"saved"`
}

// Importer adds local replays to scores.db.
type Importer struct {
	paths    osudb.Paths
	snapshot storage.Snapshotter
	logger   *zap.Logger
}

// NewImporter creates an importer for the installation at paths.
func NewImporter(paths osudb.Paths, snapshot storage.Snapshotter, logger *zap.Logger) *Importer {
	return &Importer{
		paths:    paths,
		snapshot: snapshot,
		logger:   logger,
	}
}

// FindReplays returns every .osr file below dir in lexical order.
func FindReplays(dir string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), replayPattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to list replays in %s: %w", dir, err)
	}
	sort.Strings(matches)
	paths := make([]string, len(matches))
	for i, m := range matches {
		paths[i] = filepath.Join(dir, filepath.FromSlash(m))
	}
	return paths, nil
}

// Import reconciles every replay in Data/r into scores.db and saves it if anything changed.
func (i *Importer) Import(ctx context.Context) (*Report, error) {
	i.logger.Info("Reading scores.db", zap.String("path", i.paths.Scores()))
	list, err := osudb.LoadScoreList(i.paths.Scores())
	if err != nil {
		return nil, err
	}

	files, err := FindReplays(i.paths.Replays())
	if err != nil {
		return nil, err
	}

	report := &Report{}
	spec := i.spec(report)
	spec.Sort(list.Beatmaps)

	for _, file := range files {
		rp, err := osudb.LoadReplay(file)
		if err != nil {
			return nil, err
		}
		// scores.db never stores input frames.
		rp.Frames, rp.Seed = nil, nil
		report.Add(spec.Reconcile(&list.Beatmaps, osudb.BeatmapScores{
			Hash:   rp.BeatmapHash,
			Scores: []osudb.Replay{*rp},
		}))
	}

	if report.Added == 0 {
		i.logger.Info("Nothing changed", zap.Int("replays", len(files)))
		return report, nil
	}

	if err := i.snapshot.Snapshot(ctx, i.paths.Scores()); err != nil {
		return nil, err
	}
	i.logger.Info("Backing up scores.db", zap.String("path", i.paths.ScoresBackup()))
	if err := os.Rename(i.paths.Scores(), i.paths.ScoresBackup()); err != nil {
		return nil, fmt.Errorf("failed to back up scores.db: %w", err)
	}
	if err := list.Save(i.paths.Scores()); err != nil {
		return nil, err
	}
	report.Saved = true

	i.logger.Info("Scores imported",
		zap.Int("added", report.Added),
		zap.Int("duplicates", report.Duplicates),
	)
	return report, nil
}

func (i *Importer) spec(report *Report) *reconcile.Spec[osudb.BeatmapScores, string] {
	return &reconcile.Spec[osudb.BeatmapScores, string]{
		Name: "scores",
		Key: func(b *osudb.BeatmapScores) (string, bool) {
			return reconcile.Deref(b.Hash)
		},
		OnFound: func(existing *osudb.BeatmapScores, candidate osudb.BeatmapScores) {
			for _, rp := range candidate.Scores {
				if containsReplay(existing.Scores, rp.ReplayHash) {
					report.Duplicates++
					continue
				}
				i.logger.Debug("Adding score", zap.Stringp("replay_hash", rp.ReplayHash))
				existing.Scores = append(existing.Scores, rp)
				report.Added++
			}
		},
		OnMissing: func(candidate osudb.BeatmapScores) osudb.BeatmapScores {
			i.logger.Debug("Adding beatmap to scores.db", zap.Stringp("hash", candidate.Hash))
			report.Added += len(candidate.Scores)
			return candidate
		},
	}
}

func containsReplay(scores []osudb.Replay, hash *string) bool {
	for _, s := range scores {
		if equalHash(s.ReplayHash, hash) {
			return true
		}
	}
	return false
}

func equalHash(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
