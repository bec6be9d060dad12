package checks

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"osu-db-tool/core/osudb"

	"go.uber.org/zap"
)

// RequiredEntry is a file or directory an osu! installation is expected to have.
type RequiredEntry struct {
	Name  string
	Path  func(osudb.Paths) string
	IsDir bool
}

// RequiredEntries lists what CheckStructure looks for.
var RequiredEntries = []RequiredEntry{
	{Name: "osu!.db", Path: osudb.Paths.Listing},
	{Name: "scores.db", Path: osudb.Paths.Scores},
	{Name: "collection.db", Path: osudb.Paths.Collections},
	{Name: "Data/r", Path: osudb.Paths.Replays, IsDir: true},
	{Name: "Songs", Path: osudb.Paths.Songs, IsDir: true},
}

// CheckStructure returns the names of required entries that are missing or of the
// wrong kind.
func CheckStructure(paths osudb.Paths) ([]string, error) {
	var missing []string
	for _, e := range RequiredEntries {
		info, err := os.Stat(e.Path(paths))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				missing = append(missing, e.Name)
				continue
			}
			return nil, fmt.Errorf("failed to stat %s: %w", e.Name, err)
		}
		if info.IsDir() != e.IsDir {
			missing = append(missing, e.Name)
		}
	}
	return missing, nil
}

// FixStructure creates the missing directories. Missing store files cannot be created
// and are reported instead.
func FixStructure(paths osudb.Paths, logger *zap.Logger, missing []string) error {
	for _, name := range missing {
		for _, e := range RequiredEntries {
			if e.Name != name {
				continue
			}
			if !e.IsDir {
				logger.Warn("Store file missing, start osu! once to create it", zap.String("file", name))
				continue
			}
			if err := os.MkdirAll(e.Path(paths), 0o755); err != nil {
				logger.Error("Failed to create directory", zap.String("dir", name), zap.Error(err))
				return err
			}
			logger.Info("Created missing directory", zap.String("dir", name))
		}
	}
	return nil
}
