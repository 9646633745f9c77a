// Copyright 2024 The cafebabe authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

package cafebabe

import "testing"

func TestCursorReadPrimitives(t *testing.T) {
	c := newCursor([]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08})

	u1, err := c.readU1()
	if err != nil || u1 != 0x01 {
		t.Fatalf("readU1 = %d, %v; want 1, nil", u1, err)
	}
	u2, err := c.readU2()
	if err != nil || u2 != 0x0203 {
		t.Fatalf("readU2 = %d, %v; want 0x0203, nil", u2, err)
	}
	u4, err := c.readU4()
	if err != nil || u4 != 0x04050607 {
		t.Fatalf("readU4 = %#x, %v; want 0x04050607, nil", u4, err)
	}
	if c.remaining() != 1 {
		t.Fatalf("remaining = %d, want 1", c.remaining())
	}
}

func TestCursorReadU8(t *testing.T) {
	c := newCursor([]byte{0, 0, 0, 0, 0, 0, 0, 42})
	v, err := c.readU8()
	if err != nil || v != 42 {
		t.Fatalf("readU8 = %d, %v; want 42, nil", v, err)
	}
}

func TestCursorShortReadsFail(t *testing.T) {
	tests := []struct {
		name string
		fn   func(c *cursor) error
	}{
		{"u1", func(c *cursor) error { _, err := c.readU1(); return err }},
		{"u2", func(c *cursor) error { _, err := c.readU2(); return err }},
		{"u4", func(c *cursor) error { _, err := c.readU4(); return err }},
		{"u8", func(c *cursor) error { _, err := c.readU8(); return err }},
		{"slice", func(c *cursor) error { _, err := c.slice(3); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCursor([]byte{0x01})
			if tt.fn(c) != ErrUnexpectedEnd {
				t.Fatalf("expected ErrUnexpectedEnd")
			}
		})
	}
}

func TestCursorSignedReads(t *testing.T) {
	c := newCursor([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF})
	i1, _ := c.readI1()
	if i1 != -1 {
		t.Fatalf("readI1 = %d, want -1", i1)
	}
	i2, _ := c.readI2()
	if i2 != -1 {
		t.Fatalf("readI2 = %d, want -1", i2)
	}
	i4, _ := c.readI4()
	if i4 != -1 {
		t.Fatalf("readI4 = %d, want -1", i4)
	}
}

func TestFloatFromBits(t *testing.T) {
	// 0x3F800000 is 1.0f.
	if v := float32FromBits(0x3F800000); v != 1.0 {
		t.Fatalf("float32FromBits = %v, want 1.0", v)
	}
	// 0x3FF0000000000000 is 1.0.
	if v := float64FromBits(0x3FF0000000000000); v != 1.0 {
		t.Fatalf("float64FromBits = %v, want 1.0", v)
	}
}

func TestCursorSliceIsAView(t *testing.T) {
	backing := []byte{1, 2, 3, 4, 5}
	c := newCursor(backing)
	s, err := c.slice(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(s) != 3 || s[0] != 1 || s[2] != 3 {
		t.Fatalf("slice = %v, want [1 2 3]", s)
	}
	if c.remaining() != 2 {
		t.Fatalf("remaining = %d, want 2", c.remaining())
	}
}

func TestCursorNegativeSlice(t *testing.T) {
	c := newCursor([]byte{1, 2, 3})
	if _, err := c.slice(-1); err != ErrUnexpectedEnd {
		t.Fatalf("expected ErrUnexpectedEnd for negative length, got %v", err)
	}
}
