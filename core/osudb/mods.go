package osudb

import (
	"fmt"
	"math/bits"
	"strings"
)

// Mod is a single gameplay modifier, identified by its bit index in a ModSet.
type Mod uint8

const (
	NoFail Mod = iota
	Easy
	TouchDevice
	Hidden
	HardRock
	SuddenDeath
	DoubleTime
	Relax
	HalfTime
	Nightcore
	Flashlight
	Autoplay
	SpunOut
	Autopilot
	Perfect
	Key4
	Key5
	Key6
	Key7
	Key8
	FadeIn
	Random
	Cinema
	TargetPractice
	Key9
	KeyCoop
	Key1
	Key3
	Key2
	ScoreV2
	Mirror
)

var modAcronyms = map[Mod]string{
	NoFail:         "NF",
	Easy:           "EZ",
	TouchDevice:    "TD",
	Hidden:         "HD",
	HardRock:       "HR",
	SuddenDeath:    "SD",
	DoubleTime:     "DT",
	Relax:          "RX",
	HalfTime:       "HT",
	Nightcore:      "NC",
	Flashlight:     "FL",
	Autoplay:       "AT",
	SpunOut:        "SO",
	Autopilot:      "AP",
	Perfect:        "PF",
	Key4:           "4K",
	Key5:           "5K",
	Key6:           "6K",
	Key7:           "7K",
	Key8:           "8K",
	FadeIn:         "FI",
	Random:         "RD",
	Cinema:         "CN",
	TargetPractice: "TP",
	Key9:           "9K",
	KeyCoop:        "CO",
	Key1:           "1K",
	Key3:           "3K",
	Key2:           "2K",
	ScoreV2:        "V2",
	Mirror:         "MR",
}

// Acronym returns the two-letter name of the mod.
func (m Mod) Acronym() string {
	if a, ok := modAcronyms[m]; ok {
		return a
	}
	return fmt.Sprintf("M%d", uint8(m))
}

// ModSet is a bitset of mods, stored as the raw integer used by every osu! store.
type ModSet uint32

// NoMod is the empty mod combination.
const NoMod ModSet = 0

// ModsOf builds a set from individual mods.
func ModsOf(mods ...Mod) ModSet {
	var s ModSet
	for _, m := range mods {
		s = s.With(m)
	}
	return s
}

// With returns a copy of the set with m enabled.
func (s ModSet) With(m Mod) ModSet {
	return s | 1<<m
}

// Contains reports whether m is enabled.
func (s ModSet) Contains(m Mod) bool {
	return s&(1<<m) != 0
}

// String renders the set as concatenated acronyms, "NM" when empty.
func (s ModSet) String() string {
	if s == NoMod {
		return "NM"
	}
	var b strings.Builder
	for v := uint32(s); v != 0; v &= v - 1 {
		b.WriteString(Mod(bits.TrailingZeros32(v)).Acronym())
	}
	return b.String()
}

// ParseModSet parses a run of two-letter acronyms such as "HDDTHR" or "NM".
// Acronyms are case-insensitive.
func ParseModSet(s string) (ModSet, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "NM" || s == "" {
		return NoMod, nil
	}
	if len(s)%2 != 0 {
		return 0, fmt.Errorf("invalid mod combination %q", s)
	}
	var set ModSet
	for i := 0; i < len(s); i += 2 {
		m, ok := modByAcronym(s[i : i+2])
		if !ok {
			return 0, fmt.Errorf("unknown mod %q in %q", s[i:i+2], s)
		}
		set = set.With(m)
	}
	return set, nil
}

// ParseModSets parses a comma separated list of mod combinations, e.g. "NM,HR,DTHR".
// Duplicate combinations are collapsed, first occurrence wins.
func ParseModSets(s string) ([]ModSet, error) {
	var sets []ModSet
	seen := make(map[ModSet]struct{})
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		set, err := ParseModSet(part)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[set]; dup {
			continue
		}
		seen[set] = struct{}{}
		sets = append(sets, set)
	}
	if len(sets) == 0 {
		return nil, fmt.Errorf("no mod combinations in %q", s)
	}
	return sets, nil
}

func modByAcronym(a string) (Mod, bool) {
	for m, acronym := range modAcronyms {
		if acronym == a {
			return m, true
		}
	}
	return 0, false
}
