package osudb

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreList_RoundTrip(t *testing.T) {
	score := *sampleReplay()
	score.Frames = nil
	score.Seed = nil

	list := &ScoreList{
		Version: 20230326,
		Beatmaps: []BeatmapScores{
			{Hash: Str("aa"), Scores: []Replay{score, score}},
			{Hash: nil, Scores: []Replay{score}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, list.Encode(&buf))

	decoded, err := DecodeScoreList(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, list, decoded)
}

func TestScoreList_DropsFrames(t *testing.T) {
	list := &ScoreList{
		Version:  20230326,
		Beatmaps: []BeatmapScores{{Hash: Str("aa"), Scores: []Replay{*sampleReplay()}}},
	}

	path := filepath.Join(t.TempDir(), "scores.db")
	require.NoError(t, list.Save(path))

	loaded, err := LoadScoreList(path)
	require.NoError(t, err)
	require.Len(t, loaded.Beatmaps[0].Scores, 1)
	assert.Nil(t, loaded.Beatmaps[0].Scores[0].Frames)
	assert.Equal(t, "replayhash", *loaded.Beatmaps[0].Scores[0].ReplayHash)
}

func TestCollectionList_RoundTrip(t *testing.T) {
	list := &CollectionList{
		Version: 20230326,
		Collections: []Collection{
			{Name: Str("Favourites"), BeatmapHashes: []*string{Str("aa"), Str("bb"), Str("aa")}},
			{Name: nil, BeatmapHashes: []*string{nil}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, list.Encode(&buf))

	decoded, err := DecodeCollectionList(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, list, decoded)

	path := filepath.Join(t.TempDir(), "collection.db")
	require.NoError(t, decoded.Save(path))
	loaded, err := LoadCollectionList(path)
	require.NoError(t, err)
	assert.Len(t, loaded.Collections, 2)
}

func TestDecodeCollectionList_NegativeCount(t *testing.T) {
	data := []byte{1, 0, 0, 0, 0xff, 0xff, 0xff, 0xff}
	_, err := DecodeCollectionList(bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestHashBytes(t *testing.T) {
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", HashBytes(nil))
	assert.Equal(t, "900150983cd24fb0d6963f7d28e17f72", HashBytes([]byte("abc")))
}

func TestPaths(t *testing.T) {
	p := Paths{Root: "/games/osu"}
	assert.Equal(t, filepath.Join("/games/osu", "osu!.db"), p.Listing())
	assert.Equal(t, filepath.Join("/games/osu", "scores.db.backup"), p.ScoresBackup())
	assert.Equal(t, filepath.Join("/games/osu", "Data", "r"), p.Replays())
	assert.Equal(t, filepath.Join("/games/osu", "osu!.peppy.cfg"), p.UserConfig("peppy"))
}
