package collection_test

import (
	"context"
	"testing"

	"osu-db-tool/core/osudb"
	"osu-db-tool/core/storage/mocks"
	"osu-db-tool/feature/collection"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setup(t *testing.T, withCollections bool) osudb.Paths {
	t.Helper()
	paths := osudb.Paths{Root: t.TempDir()}
	l := &osudb.Listing{
		Version: 20211231,
		Beatmaps: []osudb.Beatmap{
			{Hash: osudb.Str("b")},
			{Hash: nil},
			{Hash: osudb.Str("a")},
			{Hash: osudb.Str("b")},
		},
	}
	require.NoError(t, l.Save(paths.Listing()))

	if withCollections {
		cl := &osudb.CollectionList{
			Version:     20211231,
			Collections: []osudb.Collection{{Name: osudb.Str("favourites"), BeatmapHashes: []*string{osudb.Str("a")}}},
		}
		require.NoError(t, cl.Save(paths.Collections()))
	}
	return paths
}

func names(hashes []*string) []string {
	out := make([]string, len(hashes))
	for i, h := range hashes {
		out[i] = *h
	}
	return out
}

func TestAllMaps(t *testing.T) {
	l := &osudb.Listing{Beatmaps: []osudb.Beatmap{{Hash: osudb.Str("x")}, {}, {Hash: osudb.Str("y")}}}

	c := collection.AllMaps("everything", l)

	assert.Equal(t, "everything", *c.Name)
	assert.Equal(t, []string{"x", "y"}, names(c.BeatmapHashes))
}

func TestBuilder_AddAllMaps(t *testing.T) {
	tests := []struct {
		name     string
		arg      string
		wantName string
	}{
		{name: "default name", arg: "", wantName: "All maps"},
		{name: "custom name", arg: "Everything", wantName: "Everything"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths := setup(t, true)
			snap := new(mocks.Snapshotter)
			snap.On("Snapshot", mock.Anything, paths.Collections()).Return(nil).Once()

			b := collection.NewBuilder(paths, collection.Config{DefaultName: "All maps"}, snap, zap.NewNop())
			c, err := b.AddAllMaps(context.Background(), tt.arg)
			require.NoError(t, err)
			snap.AssertExpectations(t)
			assert.Equal(t, tt.wantName, *c.Name)

			saved, err := osudb.LoadCollectionList(paths.Collections())
			require.NoError(t, err)
			require.Len(t, saved.Collections, 2)
			assert.Equal(t, "favourites", *saved.Collections[0].Name)
			assert.Equal(t, tt.wantName, *saved.Collections[1].Name)
			// Listing order, duplicates kept, absent hashes dropped.
			assert.Equal(t, []string{"b", "a", "b"}, names(saved.Collections[1].BeatmapHashes))
		})
	}
}

func TestBuilder_CreatesMissingCollectionDB(t *testing.T) {
	paths := setup(t, false)
	snap := new(mocks.Snapshotter)
	snap.On("Snapshot", mock.Anything, paths.Collections()).Return(nil)

	b := collection.NewBuilder(paths, collection.Config{DefaultName: "All maps"}, snap, zap.NewNop())
	_, err := b.AddAllMaps(context.Background(), "")
	require.NoError(t, err)

	saved, err := osudb.LoadCollectionList(paths.Collections())
	require.NoError(t, err)
	assert.Equal(t, int32(20211231), saved.Version)
	require.Len(t, saved.Collections, 1)
}

func TestBuilder_MissingListing(t *testing.T) {
	paths := osudb.Paths{Root: t.TempDir()}
	b := collection.NewBuilder(paths, collection.Config{}, new(mocks.Snapshotter), zap.NewNop())

	_, err := b.AddAllMaps(context.Background(), "x")
	assert.ErrorIs(t, err, osudb.ErrNotFound)
}
