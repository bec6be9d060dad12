package osudb

import "path/filepath"

// Paths resolves the well-known files below an osu! installation directory.
type Paths struct {
	Root string
}

// Listing returns the path of osu!.db.
func (p Paths) Listing() string {
	return filepath.Join(p.Root, "osu!.db")
}

// Scores returns the path of scores.db.
func (p Paths) Scores() string {
	return filepath.Join(p.Root, "scores.db")
}

// ScoresBackup returns the path scores.db is moved to before being rewritten.
func (p Paths) ScoresBackup() string {
	return filepath.Join(p.Root, "scores.db.backup")
}

// Collections returns the path of collection.db.
func (p Paths) Collections() string {
	return filepath.Join(p.Root, "collection.db")
}

// Replays returns the directory osu! stores local replays in.
func (p Paths) Replays() string {
	return filepath.Join(p.Root, "Data", "r")
}

// Songs returns the default beatmap directory.
func (p Paths) Songs() string {
	return filepath.Join(p.Root, "Songs")
}

// UserConfig returns the path of the per-user configuration file.
func (p Paths) UserConfig(username string) string {
	return filepath.Join(p.Root, "osu!."+username+".cfg")
}
