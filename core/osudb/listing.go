package osudb

import (
	"bytes"
	"fmt"
	"io"
)

const (
	// versionFloatDifficulty is the first version storing AR/CS/HP/OD as Single and
	// caching star ratings.
	versionFloatDifficulty = 20140609
	// versionNoEntrySize is the first version without the per-beatmap byte size prefix.
	versionNoEntrySize = 20191106
	// versionFloatStars is the first version storing cached star ratings as Single.
	versionFloatStars = 20250107

	ratingModsMarker   = 0x08
	ratingDoubleMarker = 0x0d
	ratingSingleMarker = 0x0c
)

// Listing is the decoded osu!.db beatmap listing.
type Listing struct {
	Version         int32
	FolderCount     int32
	AccountUnlocked bool
	UnlockDate      int64
	PlayerName      *string
	Beatmaps        []Beatmap
	UserPermissions int32
}

// Rating is one cached star rating for a mod combination.
type Rating struct {
	Mods  ModSet
	Stars float64
}

// TimingPoint is a BPM or slider-velocity section as cached in osu!.db.
type TimingPoint struct {
	BPM         float64
	Offset      float64
	Uninherited bool
}

// Beatmap is a single osu!.db entry.
type Beatmap struct {
	Artist            *string
	ArtistUnicode     *string
	Title             *string
	TitleUnicode      *string
	Creator           *string
	Difficulty        *string
	AudioFile         *string
	Hash              *string
	FileName          *string
	RankedStatus      uint8
	HitCircles        uint16
	Sliders           uint16
	Spinners          uint16
	LastModified      int64
	ApproachRate      float32
	CircleSize        float32
	HPDrain           float32
	OverallDifficulty float32
	SliderVelocity    float64
	StdRatings        []Rating
	TaikoRatings      []Rating
	CatchRatings      []Rating
	ManiaRatings      []Rating
	DrainTime         int32
	TotalTime         int32
	PreviewTime       int32
	TimingPoints      []TimingPoint
	BeatmapID         int32
	BeatmapSetID      int32
	ThreadID          int32
	StdGrade          uint8
	TaikoGrade        uint8
	CatchGrade        uint8
	ManiaGrade        uint8
	LocalOffset       int16
	StackLeniency     float32
	Mode              uint8
	Source            *string
	Tags              *string
	OnlineOffset      int16
	TitleFont         *string
	Unplayed          bool
	LastPlayed        int64
	Osz2              bool
	FolderName        *string
	LastChecked       int64
	IgnoreSounds      bool
	IgnoreSkin        bool
	DisableStoryboard bool
	DisableVideo      bool
	VisualOverride    bool
	LegacyUnknown     int16
	LastModification  int32
	ManiaScrollSpeed  uint8
}

// HasStdRating reports whether a standard-mode star rating is cached for mods.
func (b *Beatmap) HasStdRating(mods ModSet) bool {
	for _, r := range b.StdRatings {
		if r.Mods == mods {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the entry.
func (b Beatmap) Clone() Beatmap {
	b.StdRatings = append([]Rating(nil), b.StdRatings...)
	b.TaikoRatings = append([]Rating(nil), b.TaikoRatings...)
	b.CatchRatings = append([]Rating(nil), b.CatchRatings...)
	b.ManiaRatings = append([]Rating(nil), b.ManiaRatings...)
	b.TimingPoints = append([]TimingPoint(nil), b.TimingPoints...)
	return b
}

// DecodeListing decodes an osu!.db stream.
func DecodeListing(r io.Reader) (*Listing, error) {
	d := newDecoder(r)
	l := &Listing{
		Version:         d.i32(),
		FolderCount:     d.i32(),
		AccountUnlocked: d.boolean(),
		UnlockDate:      d.i64(),
		PlayerName:      d.str(),
	}
	n := d.count("beatmap")
	if d.err == nil {
		l.Beatmaps = make([]Beatmap, 0, min(n, 1<<16))
	}
	for i := 0; i < n && d.err == nil; i++ {
		if l.Version < versionNoEntrySize {
			d.i32()
		}
		b := decodeBeatmap(d, l.Version)
		if d.err != nil {
			return nil, fmt.Errorf("beatmap %d: %w", i, d.err)
		}
		l.Beatmaps = append(l.Beatmaps, b)
	}
	l.UserPermissions = d.i32()
	if d.err != nil {
		return nil, d.err
	}
	return l, nil
}

// Encode writes the listing in the format version recorded in l.Version.
func (l *Listing) Encode(w io.Writer) error {
	e := newEncoder(w)
	e.i32(l.Version)
	e.i32(l.FolderCount)
	e.boolean(l.AccountUnlocked)
	e.i64(l.UnlockDate)
	e.str(l.PlayerName)
	e.i32(int32(len(l.Beatmaps)))
	for i := range l.Beatmaps {
		if l.Version >= versionNoEntrySize {
			encodeBeatmap(e, &l.Beatmaps[i], l.Version)
			continue
		}
		var entry bytes.Buffer
		inner := newEncoder(&entry)
		encodeBeatmap(inner, &l.Beatmaps[i], l.Version)
		if err := inner.flush(); err != nil {
			return err
		}
		e.i32(int32(entry.Len()))
		e.write(entry.Bytes())
	}
	e.i32(l.UserPermissions)
	return e.flush()
}

// Save atomically replaces the file at path with the encoded listing.
func (l *Listing) Save(path string) error {
	return saveFile(path, l)
}

// LoadListing reads and decodes an osu!.db file.
func LoadListing(path string) (*Listing, error) {
	return loadFile(path, DecodeListing)
}

func decodeBeatmap(d *decoder, version int32) Beatmap {
	b := Beatmap{
		Artist:        d.str(),
		ArtistUnicode: d.str(),
		Title:         d.str(),
		TitleUnicode:  d.str(),
		Creator:       d.str(),
		Difficulty:    d.str(),
		AudioFile:     d.str(),
		Hash:          d.str(),
		FileName:      d.str(),
		RankedStatus:  d.u8(),
		HitCircles:    d.u16(),
		Sliders:       d.u16(),
		Spinners:      d.u16(),
		LastModified:  d.i64(),
	}
	if version >= versionFloatDifficulty {
		b.ApproachRate = d.f32()
		b.CircleSize = d.f32()
		b.HPDrain = d.f32()
		b.OverallDifficulty = d.f32()
	} else {
		b.ApproachRate = float32(d.u8())
		b.CircleSize = float32(d.u8())
		b.HPDrain = float32(d.u8())
		b.OverallDifficulty = float32(d.u8())
	}
	b.SliderVelocity = d.f64()
	if version >= versionFloatDifficulty {
		b.StdRatings = decodeRatings(d, version)
		b.TaikoRatings = decodeRatings(d, version)
		b.CatchRatings = decodeRatings(d, version)
		b.ManiaRatings = decodeRatings(d, version)
	}
	b.DrainTime = d.i32()
	b.TotalTime = d.i32()
	b.PreviewTime = d.i32()
	n := d.count("timing point")
	for i := 0; i < n && d.err == nil; i++ {
		b.TimingPoints = append(b.TimingPoints, TimingPoint{
			BPM:         d.f64(),
			Offset:      d.f64(),
			Uninherited: d.boolean(),
		})
	}
	b.BeatmapID = d.i32()
	b.BeatmapSetID = d.i32()
	b.ThreadID = d.i32()
	b.StdGrade = d.u8()
	b.TaikoGrade = d.u8()
	b.CatchGrade = d.u8()
	b.ManiaGrade = d.u8()
	b.LocalOffset = d.i16()
	b.StackLeniency = d.f32()
	b.Mode = d.u8()
	b.Source = d.str()
	b.Tags = d.str()
	b.OnlineOffset = d.i16()
	b.TitleFont = d.str()
	b.Unplayed = d.boolean()
	b.LastPlayed = d.i64()
	b.Osz2 = d.boolean()
	b.FolderName = d.str()
	b.LastChecked = d.i64()
	b.IgnoreSounds = d.boolean()
	b.IgnoreSkin = d.boolean()
	b.DisableStoryboard = d.boolean()
	b.DisableVideo = d.boolean()
	b.VisualOverride = d.boolean()
	if version < versionFloatDifficulty {
		b.LegacyUnknown = d.i16()
	}
	b.LastModification = d.i32()
	b.ManiaScrollSpeed = d.u8()
	return b
}

func encodeBeatmap(e *encoder, b *Beatmap, version int32) {
	e.str(b.Artist)
	e.str(b.ArtistUnicode)
	e.str(b.Title)
	e.str(b.TitleUnicode)
	e.str(b.Creator)
	e.str(b.Difficulty)
	e.str(b.AudioFile)
	e.str(b.Hash)
	e.str(b.FileName)
	e.u8(b.RankedStatus)
	e.u16(b.HitCircles)
	e.u16(b.Sliders)
	e.u16(b.Spinners)
	e.i64(b.LastModified)
	if version >= versionFloatDifficulty {
		e.f32(b.ApproachRate)
		e.f32(b.CircleSize)
		e.f32(b.HPDrain)
		e.f32(b.OverallDifficulty)
	} else {
		e.u8(uint8(b.ApproachRate))
		e.u8(uint8(b.CircleSize))
		e.u8(uint8(b.HPDrain))
		e.u8(uint8(b.OverallDifficulty))
	}
	e.f64(b.SliderVelocity)
	if version >= versionFloatDifficulty {
		encodeRatings(e, b.StdRatings, version)
		encodeRatings(e, b.TaikoRatings, version)
		encodeRatings(e, b.CatchRatings, version)
		encodeRatings(e, b.ManiaRatings, version)
	}
	e.i32(b.DrainTime)
	e.i32(b.TotalTime)
	e.i32(b.PreviewTime)
	e.i32(int32(len(b.TimingPoints)))
	for _, tp := range b.TimingPoints {
		e.f64(tp.BPM)
		e.f64(tp.Offset)
		e.boolean(tp.Uninherited)
	}
	e.i32(b.BeatmapID)
	e.i32(b.BeatmapSetID)
	e.i32(b.ThreadID)
	e.u8(b.StdGrade)
	e.u8(b.TaikoGrade)
	e.u8(b.CatchGrade)
	e.u8(b.ManiaGrade)
	e.i16(b.LocalOffset)
	e.f32(b.StackLeniency)
	e.u8(b.Mode)
	e.str(b.Source)
	e.str(b.Tags)
	e.i16(b.OnlineOffset)
	e.str(b.TitleFont)
	e.boolean(b.Unplayed)
	e.i64(b.LastPlayed)
	e.boolean(b.Osz2)
	e.str(b.FolderName)
	e.i64(b.LastChecked)
	e.boolean(b.IgnoreSounds)
	e.boolean(b.IgnoreSkin)
	e.boolean(b.DisableStoryboard)
	e.boolean(b.DisableVideo)
	e.boolean(b.VisualOverride)
	if version < versionFloatDifficulty {
		e.i16(b.LegacyUnknown)
	}
	e.i32(b.LastModification)
	e.u8(b.ManiaScrollSpeed)
}

func decodeRatings(d *decoder, version int32) []Rating {
	n := d.count("star rating")
	if d.err != nil || n == 0 {
		return nil
	}
	ratings := make([]Rating, 0, min(n, 64))
	for i := 0; i < n && d.err == nil; i++ {
		d.expect(ratingModsMarker, "star rating mods")
		r := Rating{Mods: ModSet(d.u32())}
		if version >= versionFloatStars {
			d.expect(ratingSingleMarker, "star rating value")
			r.Stars = float64(d.f32())
		} else {
			d.expect(ratingDoubleMarker, "star rating value")
			r.Stars = d.f64()
		}
		ratings = append(ratings, r)
	}
	return ratings
}

func encodeRatings(e *encoder, ratings []Rating, version int32) {
	e.i32(int32(len(ratings)))
	for _, r := range ratings {
		e.u8(ratingModsMarker)
		e.u32(uint32(r.Mods))
		if version >= versionFloatStars {
			e.u8(ratingSingleMarker)
			e.f32(float32(r.Stars))
		} else {
			e.u8(ratingDoubleMarker)
			e.f64(r.Stars)
		}
	}
}
