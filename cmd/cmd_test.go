package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"osu-db-tool/core/config"
	"osu-db-tool/core/osudb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func run(t *testing.T, args ...string) error {
	t.Helper()
	configDir, logLevelFlag, workersFlag = ".", "", 0
	RootCmd.SetArgs(append([]string{"--config", t.TempDir(), "--log-level", "error"}, args...))
	return RootCmd.Execute()
}

func newInstall(t *testing.T) osudb.Paths {
	t.Helper()
	paths := osudb.Paths{Root: t.TempDir()}
	l := &osudb.Listing{
		Version: 20211231,
		Beatmaps: []osudb.Beatmap{
			{Hash: osudb.Str("b"), FolderName: osudb.Str("1 b"), FileName: osudb.Str("b.osu")},
			{Hash: osudb.Str("a"), FolderName: osudb.Str("2 a"), FileName: osudb.Str("a.osu")},
		},
	}
	require.NoError(t, l.Save(paths.Listing()))
	return paths
}

func TestAddAllMapsCommand(t *testing.T) {
	paths := newInstall(t)
	cl := &osudb.CollectionList{Version: 20211231}
	require.NoError(t, cl.Save(paths.Collections()))

	require.NoError(t, run(t, "add-all-maps-to-collection", paths.Root, "Mine"))

	saved, err := osudb.LoadCollectionList(paths.Collections())
	require.NoError(t, err)
	require.Len(t, saved.Collections, 1)
	assert.Equal(t, "Mine", *saved.Collections[0].Name)
	assert.Len(t, saved.Collections[0].BeatmapHashes, 2)
}

func TestImportReplaysCommand(t *testing.T) {
	paths := newInstall(t)
	sl := &osudb.ScoreList{Version: 20211231}
	require.NoError(t, sl.Save(paths.Scores()))
	require.NoError(t, os.MkdirAll(paths.Replays(), 0o755))
	rp := &osudb.Replay{
		BeatmapHash: osudb.Str("a"),
		ReplayHash:  osudb.Str("r"),
		Frames:      []osudb.ReplayFrame{{Delta: 0}, {Delta: 10, Buttons: 1}},
	}
	require.NoError(t, rp.Save(filepath.Join(paths.Replays(), "r.osr")))

	require.NoError(t, run(t, "import-replays", paths.Root))

	assert.FileExists(t, paths.ScoresBackup())
	saved, err := osudb.LoadScoreList(paths.Scores())
	require.NoError(t, err)
	require.Len(t, saved.Beatmaps, 1)
	assert.Equal(t, "a", *saved.Beatmaps[0].Hash)
}

func TestImportDatabaseCommand(t *testing.T) {
	paths := newInstall(t)
	other := filepath.Join(t.TempDir(), "osu!.db")
	src := &osudb.Listing{Version: 20211231, Beatmaps: []osudb.Beatmap{{Hash: osudb.Str("c")}}}
	require.NoError(t, src.Save(other))

	require.NoError(t, run(t, "import-database", paths.Root, other))

	saved, err := osudb.LoadListing(paths.Listing())
	require.NoError(t, err)
	require.Len(t, saved.Beatmaps, 3)
	assert.Equal(t, "c", *saved.Beatmaps[2].Hash)
}

func TestDiffCalcCommand_Errors(t *testing.T) {
	paths := newInstall(t)

	t.Run("invalid mods", func(t *testing.T) {
		assert.ErrorContains(t, run(t, "diff-calc", paths.Root, "XX"), "invalid mods")
	})

	t.Run("no calculator configured", func(t *testing.T) {
		assert.ErrorContains(t, run(t, "diff-calc", paths.Root), "rating.command")
	})
}

func TestCommands_RequireOsuPath(t *testing.T) {
	assert.Error(t, run(t, "import-replays"))
	assert.Error(t, run(t, "replay-to-beatmap", "only-one"))
}

func TestCommands_MissingStore(t *testing.T) {
	err := run(t, "import-replays", t.TempDir())
	assert.ErrorIs(t, err, osudb.ErrNotFound)
}

func TestIntegrityCommand_Fix(t *testing.T) {
	paths := newInstall(t)

	require.NoError(t, run(t, "integrity", paths.Root, "--fix"))
	fixFlag = false

	assert.DirExists(t, paths.Replays())
	assert.DirExists(t, paths.Songs())
}

func TestRestoreCommand_RequiresStorage(t *testing.T) {
	paths := newInstall(t)
	assert.ErrorContains(t, run(t, "restore", paths.Root, "run-1"), "storage.endpoint")
}

func TestRestoreTargets(t *testing.T) {
	paths := osudb.Paths{Root: "/osu"}
	targets := restoreTargets(paths)

	assert.Equal(t, paths.Listing(), targets["osu!.db"])
	assert.Equal(t, paths.Scores(), targets["scores.db"])
	assert.Equal(t, paths.Collections(), targets["collection.db"])
	assert.NotContains(t, targets, "awesomereplay.osr")
}

func TestAppSongsDir(t *testing.T) {
	paths := osudb.Paths{Root: t.TempDir()}
	a := &app{
		cfg:   &config.Config{Osu: config.OsuConfig{Username: "peppy"}},
		log:   zap.NewNop(),
		paths: paths,
	}

	t.Run("default without user config", func(t *testing.T) {
		dir, err := a.songsDir()
		require.NoError(t, err)
		assert.Equal(t, paths.Songs(), dir)
	})

	t.Run("configured beatmap directory", func(t *testing.T) {
		require.NoError(t, os.WriteFile(paths.UserConfig("peppy"), []byte("BeatmapDirectory = Maps\n"), 0o644))

		dir, err := a.songsDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(paths.Root, "Maps"), dir)
	})
}
