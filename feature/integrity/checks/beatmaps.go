package checks

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"osu-db-tool/core/osudb"
)

// MissingBeatmap is a listing entry whose .osu file does not exist.
type MissingBeatmap struct {
	Hash string `json:"hash"`
	Path string `json:"path"`
}

// CheckBeatmapFiles returns the entries of l whose .osu file is missing below songsDir.
// Entries without a folder or file name are reported with an empty path.
func CheckBeatmapFiles(l *osudb.Listing, songsDir string) ([]MissingBeatmap, error) {
	var missing []MissingBeatmap
	for _, b := range l.Beatmaps {
		hash := ""
		if b.Hash != nil {
			hash = *b.Hash
		}
		if b.FolderName == nil || b.FileName == nil {
			missing = append(missing, MissingBeatmap{Hash: hash})
			continue
		}
		path := filepath.Join(songsDir, *b.FolderName, *b.FileName)
		if _, err := os.Stat(path); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, err
			}
			missing = append(missing, MissingBeatmap{Hash: hash, Path: path})
		}
	}
	return missing, nil
}
