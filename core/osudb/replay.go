package osudb

import (
	"fmt"
	"io"
)

// noReplayData is the compressed length written when a score carries no frames,
// which is always the case inside scores.db.
const noReplayData = -1

// Replay is a recorded play. The same layout is used for standalone .osr files and for
// the entries of scores.db, where Frames is always nil.
type Replay struct {
	Mode          uint8
	Version       int32
	BeatmapHash   *string
	PlayerName    *string
	ReplayHash    *string
	Count300      uint16
	Count100      uint16
	Count50       uint16
	CountGeki     uint16
	CountKatu     uint16
	CountMiss     uint16
	Score         int32
	MaxCombo      uint16
	Perfect       bool
	Mods          ModSet
	LifeGraph     *string
	Timestamp     int64
	Frames        []ReplayFrame
	Seed          *int32
	OnlineScoreID int64
	// TargetAccuracy is only stored when the Target Practice mod is enabled.
	TargetAccuracy float64
}

// DecodeReplay decodes a standalone .osr stream, including its input frames.
func DecodeReplay(r io.Reader) (*Replay, error) {
	d := newDecoder(r)
	rp := decodeReplay(d, true)
	if d.err != nil {
		return nil, d.err
	}
	return &rp, nil
}

// Encode writes the replay as a standalone .osr file.
func (rp *Replay) Encode(w io.Writer) error {
	e := newEncoder(w)
	if err := encodeReplay(e, rp, true); err != nil {
		return err
	}
	return e.flush()
}

// Save atomically replaces the file at path with the encoded replay.
func (rp *Replay) Save(path string) error {
	return saveFile(path, rp)
}

// LoadReplay reads and decodes a .osr file.
func LoadReplay(path string) (*Replay, error) {
	return loadFile(path, DecodeReplay)
}

func decodeReplay(d *decoder, withData bool) Replay {
	rp := Replay{
		Mode:        d.u8(),
		Version:     d.i32(),
		BeatmapHash: d.str(),
		PlayerName:  d.str(),
		ReplayHash:  d.str(),
		Count300:    d.u16(),
		Count100:    d.u16(),
		Count50:     d.u16(),
		CountGeki:   d.u16(),
		CountKatu:   d.u16(),
		CountMiss:   d.u16(),
		Score:       d.i32(),
		MaxCombo:    d.u16(),
		Perfect:     d.boolean(),
		Mods:        ModSet(d.u32()),
		LifeGraph:   d.str(),
		Timestamp:   d.i64(),
	}
	size := d.i32()
	if d.err != nil {
		return rp
	}
	if withData && size > 0 {
		compressed := d.bytes(int(size))
		if d.err != nil {
			return rp
		}
		frames, seed, err := decompressFrames(compressed)
		if err != nil {
			d.fail(fmt.Errorf("replay frames: %w", err))
			return rp
		}
		rp.Frames, rp.Seed = frames, seed
	} else if size > 0 {
		d.bytes(int(size))
	}
	rp.OnlineScoreID = d.i64()
	if rp.Mods.Contains(TargetPractice) {
		rp.TargetAccuracy = d.f64()
	}
	return rp
}

func encodeReplay(e *encoder, rp *Replay, withData bool) error {
	e.u8(rp.Mode)
	e.i32(rp.Version)
	e.str(rp.BeatmapHash)
	e.str(rp.PlayerName)
	e.str(rp.ReplayHash)
	e.u16(rp.Count300)
	e.u16(rp.Count100)
	e.u16(rp.Count50)
	e.u16(rp.CountGeki)
	e.u16(rp.CountKatu)
	e.u16(rp.CountMiss)
	e.i32(rp.Score)
	e.u16(rp.MaxCombo)
	e.boolean(rp.Perfect)
	e.u32(uint32(rp.Mods))
	e.str(rp.LifeGraph)
	e.i64(rp.Timestamp)
	switch {
	case !withData:
		e.i32(noReplayData)
	case rp.Frames == nil && rp.Seed == nil:
		e.i32(0)
	default:
		compressed, err := compressFrames(rp.Frames, rp.Seed)
		if err != nil {
			return fmt.Errorf("replay frames: %w", err)
		}
		e.i32(int32(len(compressed)))
		e.write(compressed)
	}
	e.i64(rp.OnlineScoreID)
	if rp.Mods.Contains(TargetPractice) {
		e.f64(rp.TargetAccuracy)
	}
	return nil
}
