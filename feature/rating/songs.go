package rating

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"osu-db-tool/core/osudb"

	"gopkg.in/ini.v1"
)

const (
	beatmapDirectoryKey = "BeatmapDirectory"
	defaultSongsDir     = "Songs"
)

// ResolveSongsDir returns the beatmap directory configured in osu!.<username>.cfg.
// An empty username selects the current OS user. A relative directory is resolved
// against the installation root.
func ResolveSongsDir(paths osudb.Paths, username string) (string, error) {
	if username == "" {
		u, err := currentUsername()
		if err != nil {
			return "", err
		}
		username = u
	}

	cfgPath := paths.UserConfig(username)
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", cfgPath, osudb.ErrNotFound)
		}
		return "", fmt.Errorf("failed to read %s: %w", cfgPath, err)
	}

	cfg, err := ini.LoadSources(ini.LoadOptions{
		AllowShadows:            true,
		IgnoreInlineComment:     true,
		SkipUnrecognizableLines: true,
	}, data)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s: %w: %w", cfgPath, osudb.ErrMalformed, err)
	}

	dir := defaultSongsDir
	if key, err := cfg.Section(ini.DefaultSection).GetKey(beatmapDirectoryKey); err == nil {
		// Value is the first occurrence; later ones are shadows and never consulted,
		// even when the first one is empty.
		if v := strings.TrimSpace(key.Value()); v != "" {
			dir = v
		}
	}

	if filepath.IsAbs(dir) {
		return dir, nil
	}
	return filepath.Join(paths.Root, dir), nil
}

// currentUsername strips the domain from Windows account names.
func currentUsername() (string, error) {
	u, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("failed to determine current user: %w", err)
	}
	name := u.Username
	if i := strings.LastIndexByte(name, '\\'); i >= 0 {
		name = name[i+1:]
	}
	return name, nil
}
