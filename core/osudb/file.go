package osudb

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/natefinch/atomic"
)

type encodable interface {
	Encode(w io.Writer) error
}

// loadFile reads the whole file before decoding so that decode errors are always
// classified as ErrMalformed and read errors as I/O.
func loadFile[T any](path string, decode func(io.Reader) (T, error)) (T, error) {
	var zero T
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return zero, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return zero, fmt.Errorf("failed to read %s: %w", path, err)
	}
	v, err := decode(bytes.NewReader(data))
	if err != nil {
		return zero, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return v, nil
}

// saveFile encodes fully in memory, then swaps the file in with a single rename.
func saveFile(path string, v encodable) error {
	var buf bytes.Buffer
	if err := v.Encode(&buf); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// HashBytes returns the lowercase hex MD5 digest osu! uses to identify beatmaps and replays.
func HashBytes(b []byte) string {
	sum := md5.Sum(b)
	return hex.EncodeToString(sum[:])
}

// Str returns a pointer to s, for building optional string fields.
func Str(s string) *string {
	return &s
}
