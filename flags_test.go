// Copyright 2024 The cafebabe authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

package cafebabe

import (
	"testing"

	"github.com/pkg/errors"
)

func TestAccessFlagsStrictRejectsUnknownBits(t *testing.T) {
	_, err := accessFlags(classFlagsMask|0x0008, classFlagsMask, flagStrict)
	if err == nil {
		t.Fatal("expected an error for a bit outside classFlagsMask")
	}
	if cause := errors.Cause(err); cause != ErrInvalidFlags {
		t.Fatalf("root cause = %v, want ErrInvalidFlags", cause)
	}
}

func TestAccessFlagsStrictAcceptsLegalBits(t *testing.T) {
	got, err := accessFlags(AccPublic|AccFinal, classFlagsMask, flagStrict)
	if err != nil {
		t.Fatal(err)
	}
	if got != AccPublic|AccFinal {
		t.Fatalf("got 0x%04x, want 0x%04x", got, AccPublic|AccFinal)
	}
}

func TestAccessFlagsLenientTruncatesUnknownBits(t *testing.T) {
	// 0x8000 (AccModule/AccMandated) is outside innerClassFlagsMask.
	raw := uint16(AccPublic | 0x8000)
	got, err := accessFlags(raw, innerClassFlagsMask, flagLenient)
	if err != nil {
		t.Fatalf("lenient parsing must not fail, got %v", err)
	}
	if got&0x8000 != 0 {
		t.Fatalf("got 0x%04x, unknown bit should have been truncated", got)
	}
	if got&AccPublic == 0 {
		t.Fatalf("got 0x%04x, legal bit should have survived", got)
	}
}

func TestHasFlag(t *testing.T) {
	if !hasFlag(AccPublic|AccFinal, AccPublic) {
		t.Error("expected AccPublic to be set")
	}
	if hasFlag(AccPublic, AccFinal) {
		t.Error("did not expect AccFinal to be set")
	}
}

func TestReadClassAccessFlagsRejectsReservedBit(t *testing.T) {
	c := newCursor([]byte{0x80, 0x00}) // AccModule alone is legal, but combined with nothing else it still needs to pass the mask
	if _, err := readClassAccessFlags(c); err != nil {
		t.Fatalf("AccModule alone should be legal for a class: %v", err)
	}

	c2 := newCursor([]byte{0x00, 0x40}) // AccBridge (0x0040) is not a legal class flag
	if _, err := readClassAccessFlags(c2); err == nil {
		t.Fatal("expected an error for a method-only bit on a class")
	}
}

func TestReadInnerClassAccessFlagsIsLenient(t *testing.T) {
	// 0x1000 (AccSynthetic) combined with a reserved high bit outside
	// innerClassFlagsMask should still parse because InnerClasses flag sets
	// are read leniently.
	c := newCursor([]byte{0x90, 0x01}) // 0x9001: AccPublic | AccModule-ish reserved bits
	got, err := readInnerClassAccessFlags(c)
	if err != nil {
		t.Fatalf("lenient InnerClasses parsing should not fail: %v", err)
	}
	if got&^innerClassFlagsMask != 0 {
		t.Fatalf("got 0x%04x, expected unknown bits truncated", got)
	}
}
