package osudb

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ulikunitz/xz/lzma"
)

// seedFrameDelta marks the trailing frame that carries the RNG seed instead of input.
const seedFrameDelta = -12345

// ReplayFrame is one sample of the input trace.
type ReplayFrame struct {
	// Delta is the time in milliseconds since the previous frame.
	Delta int64
	X     float32
	Y     float32
	// Buttons is the key state bitmask: M1=1, M2=2, K1=4, K2=8, Smoke=16.
	// K1 and K2 always set M1 and M2 respectively.
	Buttons uint32
}

// StdButtons returns the mouse button state, which also covers the keyboard keys.
func (f ReplayFrame) StdButtons() uint32 {
	return f.Buttons & 0b11
}

func decompressFrames(compressed []byte) ([]ReplayFrame, *int32, error) {
	r, err := lzma.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: lzma header: %w", ErrMalformed, err)
	}
	text, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: lzma stream: %w", ErrMalformed, err)
	}
	return parseFrames(string(text))
}

func compressFrames(frames []ReplayFrame, seed *int32) ([]byte, error) {
	text := formatFrames(frames, seed)
	var buf bytes.Buffer
	w, err := lzma.WriterConfig{
		SizeInHeader: true,
		Size:         int64(len(text)),
	}.NewWriter(&buf)
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(w, text); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func parseFrames(text string) ([]ReplayFrame, *int32, error) {
	var (
		frames []ReplayFrame
		seed   *int32
	)
	for i, raw := range strings.Split(text, ",") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		parts := strings.Split(raw, "|")
		if len(parts) != 4 {
			return nil, nil, fmt.Errorf("%w: frame %d: expected 4 fields, got %d", ErrMalformed, i, len(parts))
		}
		delta, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: frame %d delta: %w", ErrMalformed, i, err)
		}
		x, err := strconv.ParseFloat(parts[1], 32)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: frame %d x: %w", ErrMalformed, i, err)
		}
		y, err := strconv.ParseFloat(parts[2], 32)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: frame %d y: %w", ErrMalformed, i, err)
		}
		buttons, err := strconv.ParseInt(parts[3], 10, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: frame %d buttons: %w", ErrMalformed, i, err)
		}
		if delta == seedFrameDelta {
			s := int32(buttons)
			seed = &s
			continue
		}
		frames = append(frames, ReplayFrame{
			Delta:   delta,
			X:       float32(x),
			Y:       float32(y),
			Buttons: uint32(buttons),
		})
	}
	return frames, seed, nil
}

func formatFrames(frames []ReplayFrame, seed *int32) string {
	var b strings.Builder
	for _, f := range frames {
		b.WriteString(strconv.FormatInt(f.Delta, 10))
		b.WriteByte('|')
		b.WriteString(strconv.FormatFloat(float64(f.X), 'f', -1, 32))
		b.WriteByte('|')
		b.WriteString(strconv.FormatFloat(float64(f.Y), 'f', -1, 32))
		b.WriteByte('|')
		b.WriteString(strconv.FormatUint(uint64(f.Buttons), 10))
		b.WriteByte(',')
	}
	if seed != nil {
		fmt.Fprintf(&b, "%d|0|0|%d,", seedFrameDelta, *seed)
	}
	return b.String()
}
