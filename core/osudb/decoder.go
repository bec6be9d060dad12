package osudb

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

const (
	stringAbsent  = 0x00
	stringPresent = 0x0b
)

// decoder reads little-endian primitives. The first error sticks; later reads are no-ops.
type decoder struct {
	r   *bufio.Reader
	buf [8]byte
	err error
}

func newDecoder(r io.Reader) *decoder {
	if br, ok := r.(*bufio.Reader); ok {
		return &decoder{r: br}
	}
	return &decoder{r: bufio.NewReader(r)}
}

func (d *decoder) fail(err error) {
	if d.err != nil {
		return
	}
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		err = fmt.Errorf("%w: unexpected end of data", ErrMalformed)
	case !errors.Is(err, ErrMalformed):
		err = fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	d.err = err
}

func (d *decoder) read(n int) []byte {
	if d.err != nil {
		return d.buf[:n]
	}
	if _, err := io.ReadFull(d.r, d.buf[:n]); err != nil {
		d.fail(err)
	}
	return d.buf[:n]
}

func (d *decoder) u8() uint8 {
	return d.read(1)[0]
}

func (d *decoder) boolean() bool {
	return d.u8() != 0
}

func (d *decoder) u16() uint16 {
	return binary.LittleEndian.Uint16(d.read(2))
}

func (d *decoder) i16() int16 {
	return int16(d.u16())
}

func (d *decoder) u32() uint32 {
	return binary.LittleEndian.Uint32(d.read(4))
}

func (d *decoder) i32() int32 {
	return int32(d.u32())
}

func (d *decoder) i64() int64 {
	return int64(binary.LittleEndian.Uint64(d.read(8)))
}

func (d *decoder) f32() float32 {
	return math.Float32frombits(d.u32())
}

func (d *decoder) f64() float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(d.read(8)))
}

func (d *decoder) uleb128() uint64 {
	if d.err != nil {
		return 0
	}
	v, err := binary.ReadUvarint(d.r)
	if err != nil {
		d.fail(err)
	}
	return v
}

func (d *decoder) bytes(n int) []byte {
	if d.err != nil || n == 0 {
		return nil
	}
	out := make([]byte, n)
	if _, err := io.ReadFull(d.r, out); err != nil {
		d.fail(err)
		return nil
	}
	return out
}

func (d *decoder) str() *string {
	switch marker := d.u8(); {
	case d.err != nil:
		return nil
	case marker == stringAbsent:
		return nil
	case marker == stringPresent:
		n := d.uleb128()
		if n > math.MaxInt32 {
			d.fail(fmt.Errorf("%w: string length %d too large", ErrMalformed, n))
			return nil
		}
		s := string(d.bytes(int(n)))
		return &s
	default:
		d.fail(fmt.Errorf("%w: invalid string marker 0x%02x", ErrMalformed, marker))
		return nil
	}
}

// count reads an Int32 element count and rejects negative values.
func (d *decoder) count(what string) int {
	n := d.i32()
	if d.err == nil && n < 0 {
		d.fail(fmt.Errorf("%w: negative %s count %d", ErrMalformed, what, n))
		return 0
	}
	return int(n)
}

// expect consumes a single marker byte and fails if it differs.
func (d *decoder) expect(marker uint8, what string) {
	if got := d.u8(); d.err == nil && got != marker {
		d.fail(fmt.Errorf("%w: %s: expected 0x%02x, got 0x%02x", ErrMalformed, what, marker, got))
	}
}
