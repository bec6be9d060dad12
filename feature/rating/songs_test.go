package rating

import (
	"os"
	"path/filepath"
	"testing"

	"osu-db-tool/core/osudb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSongsDir(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "elsewhere")

	tests := []struct {
		name string
		cfg  string
		want func(root string) string
	}{
		{
			name: "default when key is absent",
			cfg:  "# osu! configuration for user peppy\nVolumeUniversal = 100\n",
			want: func(root string) string { return filepath.Join(root, "Songs") },
		},
		{
			name: "relative directory",
			cfg:  "VolumeUniversal = 100\nBeatmapDirectory = Maps\n",
			want: func(root string) string { return filepath.Join(root, "Maps") },
		},
		{
			name: "first occurrence wins",
			cfg:  "BeatmapDirectory = First\nBeatmapDirectory = Second\n",
			want: func(root string) string { return filepath.Join(root, "First") },
		},
		{
			name: "absolute directory",
			cfg:  "BeatmapDirectory = " + abs + "\n",
			want: func(string) string { return abs },
		},
		{
			name: "empty value falls back to default",
			cfg:  "BeatmapDirectory =\n",
			want: func(root string) string { return filepath.Join(root, "Songs") },
		},
		{
			name: "empty value with spaces falls back to default",
			cfg:  "BeatmapDirectory = \n",
			want: func(root string) string { return filepath.Join(root, "Songs") },
		},
		{
			name: "empty first occurrence is not overridden by a later one",
			cfg:  "BeatmapDirectory =\nBeatmapDirectory = Later\n",
			want: func(root string) string { return filepath.Join(root, "Songs") },
		},
		{
			name: "semicolons are part of the value",
			cfg:  "BeatmapDirectory = Songs;old\n",
			want: func(root string) string { return filepath.Join(root, "Songs;old") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths := osudb.Paths{Root: t.TempDir()}
			require.NoError(t, os.WriteFile(paths.UserConfig("peppy"), []byte(tt.cfg), 0o644))

			var (
				got string
				err error
			)
			require.NotPanics(t, func() { got, err = ResolveSongsDir(paths, "peppy") })
			require.NoError(t, err)
			assert.Equal(t, tt.want(paths.Root), got)
		})
	}
}

func TestResolveSongsDir_MissingConfig(t *testing.T) {
	paths := osudb.Paths{Root: t.TempDir()}

	_, err := ResolveSongsDir(paths, "nobody")
	assert.ErrorIs(t, err, osudb.ErrNotFound)
}
