package checks

import (
	"os"
	"path/filepath"
	"testing"

	"osu-db-tool/core/osudb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCheckStructure(t *testing.T) {
	t.Run("Empty Directory", func(t *testing.T) {
		paths := osudb.Paths{Root: t.TempDir()}

		missing, err := CheckStructure(paths)
		assert.NoError(t, err)
		assert.Equal(t, []string{"osu!.db", "scores.db", "collection.db", "Data/r", "Songs"}, missing)
	})

	t.Run("Wrong Kind", func(t *testing.T) {
		paths := osudb.Paths{Root: t.TempDir()}
		require.NoError(t, os.Mkdir(paths.Listing(), 0o755))
		require.NoError(t, os.WriteFile(paths.Songs(), nil, 0o644))

		missing, err := CheckStructure(paths)
		assert.NoError(t, err)
		assert.Contains(t, missing, "osu!.db")
		assert.Contains(t, missing, "Songs")
	})

	t.Run("Complete", func(t *testing.T) {
		paths := osudb.Paths{Root: t.TempDir()}
		for _, f := range []string{paths.Listing(), paths.Scores(), paths.Collections()} {
			require.NoError(t, os.WriteFile(f, nil, 0o644))
		}
		require.NoError(t, os.MkdirAll(paths.Replays(), 0o755))
		require.NoError(t, os.MkdirAll(paths.Songs(), 0o755))

		missing, err := CheckStructure(paths)
		assert.NoError(t, err)
		assert.Empty(t, missing)
	})
}

func TestFixStructure(t *testing.T) {
	paths := osudb.Paths{Root: t.TempDir()}

	err := FixStructure(paths, zap.NewNop(), []string{"osu!.db", "Data/r", "Songs"})
	require.NoError(t, err)

	assert.DirExists(t, paths.Replays())
	assert.DirExists(t, paths.Songs())
	assert.NoFileExists(t, paths.Listing())
}

func TestCheckStores(t *testing.T) {
	paths := osudb.Paths{Root: t.TempDir()}
	l := &osudb.Listing{Version: 20211231, Beatmaps: []osudb.Beatmap{{Hash: osudb.Str("a")}, {Hash: osudb.Str("b")}}}
	require.NoError(t, l.Save(paths.Listing()))
	require.NoError(t, os.WriteFile(paths.Scores(), []byte{1, 2}, 0o644))

	results := CheckStores(paths)

	require.Len(t, results, 2)
	assert.Equal(t, StoreResult{Name: "osu!.db", Records: 2}, results[0])
	assert.Equal(t, "scores.db", results[1].Name)
	assert.Contains(t, results[1].Error, "malformed")
}

func TestCheckBeatmapFiles(t *testing.T) {
	songs := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(songs, "1 present"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(songs, "1 present", "a.osu"), nil, 0o644))

	l := &osudb.Listing{Beatmaps: []osudb.Beatmap{
		{Hash: osudb.Str("a"), FolderName: osudb.Str("1 present"), FileName: osudb.Str("a.osu")},
		{Hash: osudb.Str("b"), FolderName: osudb.Str("2 gone"), FileName: osudb.Str("b.osu")},
		{Hash: osudb.Str("c"), FileName: osudb.Str("c.osu")},
	}}

	missing, err := CheckBeatmapFiles(l, songs)
	require.NoError(t, err)
	assert.Equal(t, []MissingBeatmap{
		{Hash: "b", Path: filepath.Join(songs, "2 gone", "b.osu")},
		{Hash: "c"},
	}, missing)
}
