package replay

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"osu-db-tool/core/beatmap"
	"osu-db-tool/core/osudb"
	"osu-db-tool/core/storage"

	"go.uber.org/zap"
)

// Result describes the files written by a conversion.
type Result struct {
	// BeatmapPath is the path of the written .osu file.
	BeatmapPath string
	// BeatmapHash is the MD5 of the written .osu file.
	BeatmapHash string
	// ReplayPath is the path of the rewritten replay.
	ReplayPath string
	// Align reports how many hit objects were moved.
	Align AlignResult
	// Registered is false when the written beatmap is identical to the source, in
	// which case osu!.db already knows its hash and is left alone.
	Registered bool
}

// Converter turns replays into beatmaps registered in an osu! installation.
type Converter struct {
	paths    osudb.Paths
	cfg      Config
	snapshot storage.Snapshotter
	logger   *zap.Logger
}

// NewConverter creates a converter for the installation at paths.
func NewConverter(paths osudb.Paths, cfg Config, snapshot storage.Snapshotter, logger *zap.Logger) *Converter {
	return &Converter{
		paths:    paths,
		cfg:      cfg,
		snapshot: snapshot,
		logger:   logger,
	}
}

// Convert aligns the beatmap the replay was played on to the replay's clicks, writes it
// as a new difficulty, saves a copy of the replay pointing at it and adds it to osu!.db.
func (c *Converter) Convert(ctx context.Context, replayPath string) (*Result, error) {
	c.logger.Info("Reading osu!.db", zap.String("path", c.paths.Listing()))
	listing, err := osudb.LoadListing(c.paths.Listing())
	if err != nil {
		return nil, err
	}

	rp, err := osudb.LoadReplay(replayPath)
	if err != nil {
		return nil, err
	}
	if rp.Frames == nil {
		return nil, fmt.Errorf("%s: %w", replayPath, ErrMissingData)
	}

	entry, err := findBeatmap(listing, rp.BeatmapHash)
	if err != nil {
		return nil, err
	}
	if entry.FolderName == nil || entry.FileName == nil {
		return nil, fmt.Errorf("beatmap %s is missing its folder or file name: %w", *entry.Hash, osudb.ErrNotFound)
	}

	songs := c.cfg.SongsDir
	if songs == "" {
		songs = c.paths.Songs()
	}
	folder := filepath.Join(songs, *entry.FolderName)
	source := filepath.Join(folder, *entry.FileName)
	file, err := beatmap.ParseFile(source)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", source, osudb.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to parse %s: %w: %w", source, osudb.ErrMalformed, err)
	}
	if !file.HasHitObjects() {
		return nil, fmt.Errorf("%s: %w: %w", source, osudb.ErrMalformed, beatmap.ErrNoHitObjects)
	}

	clicks := ExtractClicks(rp.Frames)
	aligned := Align(file.HitObjects, clicks)
	c.logger.Info("Aligned hit objects",
		zap.Int("clicks", len(clicks)),
		zap.Int("aligned", aligned.Aligned),
		zap.Int("untouched", aligned.Untouched),
	)

	newName := c.cfg.FilePrefix + *entry.FileName
	res := &Result{
		BeatmapPath: filepath.Join(folder, newName),
		ReplayPath:  c.cfg.Output,
		Align:       aligned,
	}

	if err := file.WriteFile(res.BeatmapPath); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", res.BeatmapPath, err)
	}
	res.BeatmapHash = osudb.HashBytes(file.Bytes())
	c.logger.Info("Beatmap written", zap.String("path", res.BeatmapPath), zap.String("hash", res.BeatmapHash))

	rp.BeatmapHash = osudb.Str(res.BeatmapHash)
	if err := rp.Save(res.ReplayPath); err != nil {
		return nil, err
	}
	c.logger.Info("Replay written", zap.String("path", res.ReplayPath))

	if entry.Hash != nil && *entry.Hash == res.BeatmapHash {
		c.logger.Warn("No hit object moved, osu!.db left unchanged", zap.String("hash", res.BeatmapHash))
		return res, nil
	}

	added := entry.Clone()
	added.FileName = osudb.Str(newName)
	added.Hash = osudb.Str(res.BeatmapHash)
	listing.Beatmaps = append(listing.Beatmaps, added)

	if err := c.snapshot.Snapshot(ctx, c.paths.Listing()); err != nil {
		return nil, err
	}
	if err := listing.Save(c.paths.Listing()); err != nil {
		return nil, err
	}
	res.Registered = true
	c.logger.Info("Beatmap added to osu!.db", zap.String("file", newName))

	return res, nil
}

func findBeatmap(listing *osudb.Listing, hash *string) (*osudb.Beatmap, error) {
	if hash != nil {
		for i := range listing.Beatmaps {
			if b := &listing.Beatmaps[i]; b.Hash != nil && *b.Hash == *hash {
				return b, nil
			}
		}
	}
	h := "<none>"
	if hash != nil {
		h = *hash
	}
	return nil, fmt.Errorf("beatmap %s in osu!.db: %w", h, osudb.ErrNotFound)
}
