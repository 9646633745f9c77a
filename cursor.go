// Copyright 2024 The cafebabe authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

package cafebabe

import (
	"encoding/binary"
	"math"
)

// A cursor is a single mutable offset into a borrowed, read-only byte
// slice. It is not buffered and not seekable backward: every decoder in
// this package advances it monotonically, which is what lets attribute
// length framing (spec §4.E) detect a decoder that consumed the wrong
// number of bytes.
type cursor struct {
	bytes []byte
	ix    int
}

func newCursor(bytes []byte) *cursor {
	return &cursor{bytes: bytes}
}

// pos returns the current offset.
func (c *cursor) pos() int {
	return c.ix
}

// remaining reports how many bytes are left to read.
func (c *cursor) remaining() int {
	return len(c.bytes) - c.ix
}

func (c *cursor) readU1() (uint8, error) {
	if c.remaining() < 1 {
		return 0, ErrUnexpectedEnd
	}
	v := c.bytes[c.ix]
	c.ix++
	return v, nil
}

func (c *cursor) readU2() (uint16, error) {
	if c.remaining() < 2 {
		return 0, ErrUnexpectedEnd
	}
	v := binary.BigEndian.Uint16(c.bytes[c.ix:])
	c.ix += 2
	return v, nil
}

func (c *cursor) readU4() (uint32, error) {
	if c.remaining() < 4 {
		return 0, ErrUnexpectedEnd
	}
	v := binary.BigEndian.Uint32(c.bytes[c.ix:])
	c.ix += 4
	return v, nil
}

func (c *cursor) readU8() (uint64, error) {
	if c.remaining() < 8 {
		return 0, ErrUnexpectedEnd
	}
	v := binary.BigEndian.Uint64(c.bytes[c.ix:])
	c.ix += 8
	return v, nil
}

// readI1/I2/I4 are the signed counterparts used by bytecode operand decoding.
func (c *cursor) readI1() (int8, error) {
	v, err := c.readU1()
	return int8(v), err
}

func (c *cursor) readI2() (int16, error) {
	v, err := c.readU2()
	return int16(v), err
}

func (c *cursor) readI4() (int32, error) {
	v, err := c.readU4()
	return int32(v), err
}

// float32FromBits and float64FromBits convert the raw big-endian bit
// patterns stored in Float/Double constant pool entries, preserving NaN,
// Infinity, and signed zero exactly as the class file encodes them.
func float32FromBits(bits uint32) float32 {
	return math.Float32frombits(bits)
}

func float64FromBits(bits uint64) float64 {
	return math.Float64frombits(bits)
}

// slice advances the cursor by n and returns the skipped-over bytes as a
// view into the backing slice. Fails on short input rather than returning
// a truncated slice.
func (c *cursor) slice(n int) ([]byte, error) {
	if n < 0 || c.remaining() < n {
		return nil, ErrUnexpectedEnd
	}
	b := c.bytes[c.ix : c.ix+n]
	c.ix += n
	return b, nil
}
