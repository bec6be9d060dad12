package beatmap

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const hitObjectsHeader = "[HitObjects]"

// ErrNoHitObjects reports a file without a [HitObjects] section.
var ErrNoHitObjects = errors.New("beatmap has no [HitObjects] section")

// HitObject is a single timed, positioned element of a beatmap.
type HitObject struct {
	X    int32
	Y    int32
	Time int64
	// Rest holds the type, hitsound and remaining fields exactly as written.
	Rest string
}

// File is a parsed .osu file.
type File struct {
	lines      []string
	newline    string
	trailingNL bool
	hasObjects bool

	// HitObjects is mutable in place; changes are picked up by Bytes.
	HitObjects []HitObject
	original   []HitObject
	objectLine []int
}

// Parse reads a .osu file.
func Parse(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseBytes(data)
}

// ParseFile reads and parses the .osu file at path.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseBytes(data)
}

// ParseBytes parses the content of a .osu file.
func ParseBytes(data []byte) (*File, error) {
	text := string(data)
	f := &File{newline: "\n"}
	if strings.Contains(text, "\r\n") {
		f.newline = "\r\n"
	}
	f.trailingNL = strings.HasSuffix(text, "\n")
	text = strings.TrimSuffix(strings.TrimSuffix(text, "\n"), "\r")
	if text == "" {
		return f, nil
	}
	f.lines = strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	inObjects := false
	for i, line := range f.lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			inObjects = trimmed == hitObjectsHeader
			f.hasObjects = f.hasObjects || inObjects
			continue
		}
		if !inObjects || trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}
		obj, err := parseHitObject(trimmed)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		f.HitObjects = append(f.HitObjects, obj)
		f.objectLine = append(f.objectLine, i)
	}
	f.original = append([]HitObject(nil), f.HitObjects...)
	return f, nil
}

// HasHitObjects reports whether the file declares a [HitObjects] section.
func (f *File) HasHitObjects() bool {
	return f.hasObjects
}

// Bytes serializes the file. Only hit objects whose values changed are re-rendered.
func (f *File) Bytes() []byte {
	lines := f.lines
	if len(f.objectLine) > 0 {
		lines = append([]string(nil), f.lines...)
		for i, idx := range f.objectLine {
			if f.HitObjects[i] != f.original[i] {
				lines[idx] = f.HitObjects[i].String()
			}
		}
	}
	var buf bytes.Buffer
	buf.WriteString(strings.Join(lines, f.newline))
	if f.trailingNL {
		buf.WriteString(f.newline)
	}
	return buf.Bytes()
}

// WriteFile writes the serialized file to path.
func (f *File) WriteFile(path string) error {
	return os.WriteFile(path, f.Bytes(), 0o644)
}

// String renders the hit object in .osu syntax.
func (o HitObject) String() string {
	s := strconv.FormatInt(int64(o.X), 10) + "," + strconv.FormatInt(int64(o.Y), 10) + "," + strconv.FormatInt(o.Time, 10)
	if o.Rest != "" {
		s += "," + o.Rest
	}
	return s
}

func parseHitObject(line string) (HitObject, error) {
	parts := strings.SplitN(line, ",", 4)
	if len(parts) < 3 {
		return HitObject{}, fmt.Errorf("hit object %q: expected at least 3 fields", line)
	}
	x, err := parseCoordinate(parts[0])
	if err != nil {
		return HitObject{}, fmt.Errorf("hit object %q: x: %w", line, err)
	}
	y, err := parseCoordinate(parts[1])
	if err != nil {
		return HitObject{}, fmt.Errorf("hit object %q: y: %w", line, err)
	}
	t, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err != nil {
		return HitObject{}, fmt.Errorf("hit object %q: time: %w", line, err)
	}
	obj := HitObject{X: x, Y: y, Time: int64(t)}
	if len(parts) == 4 {
		obj.Rest = parts[3]
	}
	return obj, nil
}

// parseCoordinate accepts the decimal coordinates some editors emit and truncates them.
func parseCoordinate(s string) (int32, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}
