package osudb

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
)

// encoder writes little-endian primitives. The first error sticks.
type encoder struct {
	w   *bufio.Writer
	buf [10]byte
	err error
}

func newEncoder(w io.Writer) *encoder {
	return &encoder{w: bufio.NewWriter(w)}
}

func (e *encoder) write(b []byte) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.Write(b)
}

func (e *encoder) flush() error {
	if e.err != nil {
		return e.err
	}
	return e.w.Flush()
}

func (e *encoder) u8(v uint8) {
	e.buf[0] = v
	e.write(e.buf[:1])
}

func (e *encoder) boolean(v bool) {
	if v {
		e.u8(1)
	} else {
		e.u8(0)
	}
}

func (e *encoder) u16(v uint16) {
	binary.LittleEndian.PutUint16(e.buf[:2], v)
	e.write(e.buf[:2])
}

func (e *encoder) i16(v int16) {
	e.u16(uint16(v))
}

func (e *encoder) u32(v uint32) {
	binary.LittleEndian.PutUint32(e.buf[:4], v)
	e.write(e.buf[:4])
}

func (e *encoder) i32(v int32) {
	e.u32(uint32(v))
}

func (e *encoder) i64(v int64) {
	binary.LittleEndian.PutUint64(e.buf[:8], uint64(v))
	e.write(e.buf[:8])
}

func (e *encoder) f32(v float32) {
	e.u32(math.Float32bits(v))
}

func (e *encoder) f64(v float64) {
	binary.LittleEndian.PutUint64(e.buf[:8], math.Float64bits(v))
	e.write(e.buf[:8])
}

func (e *encoder) uleb128(v uint64) {
	n := binary.PutUvarint(e.buf[:], v)
	e.write(e.buf[:n])
}

func (e *encoder) str(s *string) {
	if s == nil {
		e.u8(stringAbsent)
		return
	}
	e.u8(stringPresent)
	e.uleb128(uint64(len(*s)))
	e.write([]byte(*s))
}
