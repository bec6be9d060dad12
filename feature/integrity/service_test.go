package integrity

import (
	"os"
	"path/filepath"
	"testing"

	"osu-db-tool/core/osudb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestService_Run(t *testing.T) {
	paths := osudb.Paths{Root: t.TempDir()}
	l := &osudb.Listing{Version: 20211231, Beatmaps: []osudb.Beatmap{
		{Hash: osudb.Str("a"), FolderName: osudb.Str("1"), FileName: osudb.Str("a.osu")},
	}}
	require.NoError(t, l.Save(paths.Listing()))
	require.NoError(t, (&osudb.ScoreList{Version: 20211231}).Save(paths.Scores()))
	require.NoError(t, (&osudb.CollectionList{Version: 20211231}).Save(paths.Collections()))
	require.NoError(t, os.MkdirAll(paths.Replays(), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(paths.Songs(), "1"), 0o755))

	svc := NewService(paths, zap.NewNop())

	t.Run("Missing Beatmap File", func(t *testing.T) {
		report, err := svc.Run(paths.Songs())
		require.NoError(t, err)
		assert.Empty(t, report.MissingStructure)
		assert.Len(t, report.Stores, 3)
		assert.Len(t, report.MissingBeatmaps, 1)
		assert.False(t, report.Healthy())
	})

	t.Run("Healthy", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(paths.Songs(), "1", "a.osu"), nil, 0o644))

		report, err := svc.Run(paths.Songs())
		require.NoError(t, err)
		assert.True(t, report.Healthy())
	})

	t.Run("Skip Beatmap Check", func(t *testing.T) {
		report, err := svc.Run("")
		require.NoError(t, err)
		assert.Nil(t, report.MissingBeatmaps)
	})
}

func TestService_FixStructure(t *testing.T) {
	paths := osudb.Paths{Root: t.TempDir()}
	svc := NewService(paths, zap.NewNop())

	missing, err := svc.CheckStructure()
	require.NoError(t, err)
	require.NoError(t, svc.FixStructure(missing))

	missing, err = svc.CheckStructure()
	require.NoError(t, err)
	assert.Equal(t, []string{"osu!.db", "scores.db", "collection.db"}, missing)
}
