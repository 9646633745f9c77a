// Copyright 2024 The cafebabe authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

package cafebabe

import (
	"testing"

	"github.com/pkg/errors"
)

// cpBuilder assembles a constant_pool_count-prefixed byte stream by hand,
// the way every test in this file needs one.
type cpBuilder struct {
	entries int // number of 1-indexed slots consumed so far
	body    []byte
}

func newCPBuilder() *cpBuilder {
	return &cpBuilder{}
}

func (b *cpBuilder) u1(v byte) *cpBuilder {
	b.body = append(b.body, v)
	return b
}

func (b *cpBuilder) u2(v uint16) *cpBuilder {
	b.body = append(b.body, byte(v>>8), byte(v))
	return b
}

func (b *cpBuilder) u4(v uint32) *cpBuilder {
	b.body = append(b.body, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	return b
}

func (b *cpBuilder) utf8(s string) *cpBuilder {
	b.u1(cpTagUtf8)
	b.u2(uint16(len(s)))
	b.body = append(b.body, []byte(s)...)
	b.entries++
	return b
}

func (b *cpBuilder) class(nameIx uint16) *cpBuilder {
	b.u1(cpTagClass)
	b.u2(nameIx)
	b.entries++
	return b
}

func (b *cpBuilder) long(v int64) *cpBuilder {
	b.u1(cpTagLong)
	b.u4(uint32(v >> 32))
	b.u4(uint32(v))
	b.entries += 2 // Long consumes two slots
	return b
}

func (b *cpBuilder) nameAndType(nameIx, descIx uint16) *cpBuilder {
	b.u1(cpTagNameAndType)
	b.u2(nameIx)
	b.u2(descIx)
	b.entries++
	return b
}

func (b *cpBuilder) fieldref(classIx, natIx uint16) *cpBuilder {
	b.u1(cpTagFieldref)
	b.u2(classIx)
	b.u2(natIx)
	b.entries++
	return b
}

// bytes returns a full constant_pool_count + entries byte stream ready to
// feed to readConstantPool via a cursor.
func (b *cpBuilder) bytes() []byte {
	out := make([]byte, 0, 2+len(b.body))
	count := uint16(b.entries + 1) // constant_pool_count is entries+1 (index 0 excluded)
	out = append(out, byte(count>>8), byte(count))
	out = append(out, b.body...)
	return out
}

func TestReadConstantPoolMinimal(t *testing.T) {
	b := newCPBuilder().utf8("Foo")
	pool, err := readConstantPool(newCursor(b.bytes()))
	if err != nil {
		t.Fatal(err)
	}
	s, err := pool.utf8At(1)
	if err != nil {
		t.Fatal(err)
	}
	if s != "Foo" {
		t.Fatalf("got %q, want %q", s, "Foo")
	}
}

func TestReadConstantPoolLongTakesTwoSlots(t *testing.T) {
	// index 1: Long, index 2: Placeholder (unusable), index 3: Utf8.
	b := newCPBuilder().long(42).utf8("after")
	pool, err := readConstantPool(newCursor(b.bytes()))
	if err != nil {
		t.Fatal(err)
	}
	v, err := pool.longAt(1)
	if err != nil || v != 42 {
		t.Fatalf("longAt(1) = %d, %v; want 42, nil", v, err)
	}
	if pool.inRange(2) {
		t.Fatal("index 2 (the Long's placeholder slot) must not be in range")
	}
	if _, err := pool.entryAt(2); errors.Cause(err) != ErrBadPoolIndex {
		t.Fatalf("entryAt(2) error = %v, want ErrBadPoolIndex", err)
	}
	s, err := pool.utf8At(3)
	if err != nil || s != "after" {
		t.Fatalf("utf8At(3) = %q, %v; want \"after\", nil", s, err)
	}
}

func TestReadConstantPoolBadIndexOutOfRange(t *testing.T) {
	b := newCPBuilder().utf8("Foo")
	pool, err := readConstantPool(newCursor(b.bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := pool.utf8At(99); errors.Cause(err) != ErrBadPoolIndex {
		t.Fatalf("utf8At(99) error = %v, want ErrBadPoolIndex", err)
	}
	if _, err := pool.utf8At(0); errors.Cause(err) != ErrBadPoolIndex {
		t.Fatalf("utf8At(0) error = %v, want ErrBadPoolIndex", err)
	}
}

func TestReadConstantPoolKindMismatch(t *testing.T) {
	// index 1 is a Utf8; asking for it as a Class must fail with ErrPoolKindMismatch.
	b := newCPBuilder().utf8("Foo")
	pool, err := readConstantPool(newCursor(b.bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := pool.classAt(1); errors.Cause(err) != ErrPoolKindMismatch {
		t.Fatalf("classAt(1) error = %v, want ErrPoolKindMismatch", err)
	}
}

func TestReadConstantPoolResolvesForwardReference(t *testing.T) {
	// index 1: Class referencing index 2, index 2: Utf8 "Foo" (forward ref).
	b := newCPBuilder()
	b.u1(cpTagClass).u2(2)
	b.entries++
	b.utf8("Foo")
	pool, err := readConstantPool(newCursor(b.bytes()))
	if err != nil {
		t.Fatal(err)
	}
	name, err := pool.classAt(1)
	if err != nil || name != "Foo" {
		t.Fatalf("classAt(1) = %q, %v; want \"Foo\", nil", name, err)
	}
}

func TestReadConstantPoolFieldrefValidatesNameAndType(t *testing.T) {
	// 1: Utf8 "Foo" (class name), 2: Class -> 1, 3: Utf8 "x", 4: Utf8 "I",
	// 5: NameAndType(3,4), 6: Fieldref(2,5).
	b := newCPBuilder()
	b.utf8("Foo")
	b.class(1)
	b.utf8("x")
	b.utf8("I")
	b.nameAndType(3, 4)
	b.fieldref(2, 5)
	pool, err := readConstantPool(newCursor(b.bytes()))
	if err != nil {
		t.Fatal(err)
	}
	ref, err := pool.symbolicRefAt(6, cpTagFieldref)
	if err != nil {
		t.Fatal(err)
	}
	if ref.ClassName != "Foo" || ref.NameAndType.Name != "x" || ref.NameAndType.Descriptor != "I" {
		t.Fatalf("unexpected ref %+v", ref)
	}
	if ref.IsInterface {
		t.Fatal("Fieldref must not be flagged as an interface method")
	}
}

func TestReadConstantPoolRejectsUnrecognizedTag(t *testing.T) {
	b := newCPBuilder()
	b.u1(99) // unrecognized tag
	b.entries++
	if _, err := readConstantPool(newCursor(b.bytes())); errors.Cause(err) != ErrPoolKindMismatch {
		t.Fatalf("expected ErrPoolKindMismatch for tag 99")
	}
}

func TestLiteralConstantAtString(t *testing.T) {
	b := newCPBuilder()
	b.utf8("hello")
	b.u1(cpTagString).u2(1)
	b.entries++
	pool, err := readConstantPool(newCursor(b.bytes()))
	if err != nil {
		t.Fatal(err)
	}
	lit, err := pool.literalConstantAt(2)
	if err != nil {
		t.Fatal(err)
	}
	if lit.Kind != LiteralString || lit.String != "hello" {
		t.Fatalf("unexpected literal %+v", lit)
	}
}

func TestMethodHandleValidatesReferenceKind(t *testing.T) {
	// 1: Utf8 "Foo", 2: Class->1, 3: Utf8 "x", 4: Utf8 "I", 5: NameAndType(3,4),
	// 6: Fieldref(2,5), 7: MethodHandle(kind=RefGetField -> 6).
	b := newCPBuilder()
	b.utf8("Foo")
	b.class(1)
	b.utf8("x")
	b.utf8("I")
	b.nameAndType(3, 4)
	b.fieldref(2, 5)
	b.u1(cpTagMethodHandle).u1(RefGetField).u2(6)
	b.entries++
	pool, err := readConstantPool(newCursor(b.bytes()))
	if err != nil {
		t.Fatal(err)
	}
	mh, err := pool.methodHandleAt(7)
	if err != nil {
		t.Fatal(err)
	}
	if mh.Kind != RefGetField {
		t.Fatalf("got kind %d, want RefGetField", mh.Kind)
	}
}

func TestMethodHandleRejectsMismatchedReferenceKind(t *testing.T) {
	// Same pool as above, but claim kind RefInvokeVirtual against a Fieldref,
	// which resolveAll must reject.
	b := newCPBuilder()
	b.utf8("Foo")
	b.class(1)
	b.utf8("x")
	b.utf8("I")
	b.nameAndType(3, 4)
	b.fieldref(2, 5)
	b.u1(cpTagMethodHandle).u1(RefInvokeVirtual).u2(6)
	b.entries++
	if _, err := readConstantPool(newCursor(b.bytes())); errors.Cause(err) != ErrPoolKindMismatch {
		t.Fatalf("expected ErrPoolKindMismatch, got %v", err)
	}
}
