package osudb

import (
	"fmt"
	"io"
)

// ScoreList is the decoded scores.db.
type ScoreList struct {
	Version  int32
	Beatmaps []BeatmapScores
}

// BeatmapScores holds every local score set on one beatmap.
type BeatmapScores struct {
	Hash   *string
	Scores []Replay
}

// DecodeScoreList decodes a scores.db stream.
func DecodeScoreList(r io.Reader) (*ScoreList, error) {
	d := newDecoder(r)
	sl := &ScoreList{Version: d.i32()}
	n := d.count("beatmap")
	for i := 0; i < n && d.err == nil; i++ {
		bs := BeatmapScores{Hash: d.str()}
		scores := d.count("score")
		for j := 0; j < scores && d.err == nil; j++ {
			bs.Scores = append(bs.Scores, decodeReplay(d, false))
		}
		if d.err != nil {
			return nil, fmt.Errorf("beatmap %d: %w", i, d.err)
		}
		sl.Beatmaps = append(sl.Beatmaps, bs)
	}
	if d.err != nil {
		return nil, d.err
	}
	return sl, nil
}

// Encode writes the score list. Replay frames are never stored in scores.db.
func (sl *ScoreList) Encode(w io.Writer) error {
	e := newEncoder(w)
	e.i32(sl.Version)
	e.i32(int32(len(sl.Beatmaps)))
	for i := range sl.Beatmaps {
		bs := &sl.Beatmaps[i]
		e.str(bs.Hash)
		e.i32(int32(len(bs.Scores)))
		for j := range bs.Scores {
			if err := encodeReplay(e, &bs.Scores[j], false); err != nil {
				return err
			}
		}
	}
	return e.flush()
}

// Save atomically replaces the file at path with the encoded score list.
func (sl *ScoreList) Save(path string) error {
	return saveFile(path, sl)
}

// LoadScoreList reads and decodes a scores.db file.
func LoadScoreList(path string) (*ScoreList, error) {
	return loadFile(path, DecodeScoreList)
}
