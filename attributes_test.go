// Copyright 2024 The cafebabe authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

package cafebabe

import (
	"testing"

	"github.com/pkg/errors"
)

// attrFixturePool builds a minimal pool containing just the attribute names
// a test needs, returning the pool plus a helper to look up an index by name.
type attrFixturePool struct {
	pool *constantPool
	ix   map[string]uint16
}

func newAttrFixturePool(t *testing.T, names ...string) *attrFixturePool {
	t.Helper()
	b := newCPBuilder()
	ix := make(map[string]uint16)
	for i, n := range names {
		b.utf8(n)
		ix[n] = uint16(i + 1)
	}
	pool, err := readConstantPool(newCursor(b.bytes()))
	if err != nil {
		t.Fatalf("building fixture pool: %v", err)
	}
	return &attrFixturePool{pool: pool, ix: ix}
}

func newAttrCtx(pool *constantPool) *attrContext {
	return &attrContext{pool: pool, opts: (&Options{}).withDefaults(), depth: 0, maxDepth: DefaultMaxAttributeDepth}
}

func TestReadAttributesUnknownAttributePreserved(t *testing.T) {
	fp := newAttrFixturePool(t, "Foo")

	var body []byte
	body = append(body, 0, 1) // attributes_count = 1
	body = append(body, 0, byte(fp.ix["Foo"]))
	body = append(body, 0, 0, 0, 3) // length = 3
	body = append(body, 0xAA, 0xBB, 0xCC)

	c := newCursor(body)
	attrs, err := readAttributes(c, newAttrCtx(fp.pool))
	if err != nil {
		t.Fatal(err)
	}
	if len(attrs) != 1 {
		t.Fatalf("got %d attributes, want 1", len(attrs))
	}
	if attrs[0].Name != "Foo" {
		t.Fatalf("name = %q, want Foo", attrs[0].Name)
	}
	other, ok := attrs[0].Data.(OtherAttribute)
	if !ok {
		t.Fatalf("data = %T, want OtherAttribute", attrs[0].Data)
	}
	want := []byte{0xAA, 0xBB, 0xCC}
	if len(other.Bytes) != len(want) {
		t.Fatalf("bytes = %v, want %v", other.Bytes, want)
	}
	for i := range want {
		if other.Bytes[i] != want[i] {
			t.Fatalf("bytes = %v, want %v", other.Bytes, want)
		}
	}
	if c.remaining() != 0 {
		t.Fatalf("remaining = %d, want 0 (all bytes consumed)", c.remaining())
	}
}

func TestReadAttributesLengthMismatchOnSynthetic(t *testing.T) {
	fp := newAttrFixturePool(t, "Synthetic")

	var body []byte
	body = append(body, 0, 1)
	body = append(body, 0, byte(fp.ix["Synthetic"]))
	body = append(body, 0, 0, 0, 3) // Synthetic must declare length 0, not 3
	body = append(body, 0, 0, 0)

	_, err := readAttributes(newCursor(body), newAttrCtx(fp.pool))
	if errors.Cause(err) != ErrLengthMismatch {
		t.Fatalf("err = %v, want ErrLengthMismatch", err)
	}
}

func TestReadAttributesTruncatedMidAttribute(t *testing.T) {
	fp := newAttrFixturePool(t, "Foo")

	var body []byte
	body = append(body, 0, 1)
	body = append(body, 0, byte(fp.ix["Foo"]))
	body = append(body, 0, 0, 0, 10) // declares 10 bytes but the file ends sooner
	body = append(body, 1, 2, 3)

	_, err := readAttributes(newCursor(body), newAttrCtx(fp.pool))
	if errors.Cause(err) != ErrUnexpectedEnd {
		t.Fatalf("err = %v, want ErrUnexpectedEnd", err)
	}
}

func TestReadAttributesDepthLimitExceeded(t *testing.T) {
	fp := newAttrFixturePool(t, "Foo")
	ctx := &attrContext{pool: fp.pool, opts: (&Options{}).withDefaults(), depth: 5, maxDepth: 4}
	if _, err := readAttributes(newCursor([]byte{0, 0}), ctx); err == nil {
		t.Fatal("expected an error when depth exceeds maxDepth")
	}
}

func TestReadStackMapTableDiscriminants(t *testing.T) {
	fp := newAttrFixturePool(t, "Unused")

	var body []byte
	body = append(body, 0, 7) // number_of_entries = 7

	// tag 0: same_frame, offset_delta implied 0.
	body = append(body, 0)
	// tag 64: same_locals_1_stack_item_frame, offset_delta implied 0, stack = Top.
	body = append(body, 64, 0)
	// tag 247: same_locals_1_stack_item_frame_extended, explicit u2 delta, stack = Integer.
	body = append(body, 247, 0, 5, 1)
	// tag 248: chop_frame (251-248=3 locals chopped), explicit u2 delta.
	body = append(body, 248, 0, 10)
	// tag 251: same_frame_extended, explicit u2 delta.
	body = append(body, 251, 0, 20)
	// tag 252: append_frame with 1 local (Integer), explicit u2 delta.
	body = append(body, 252, 0, 30, 1)
	// tag 255: full_frame, explicit delta, 0 locals, 0 stack items.
	body = append(body, 255, 0, 40, 0, 0, 0, 0)

	entries, err := readStackMapTableData(newCursor(body), fp.pool)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 7 {
		t.Fatalf("got %d entries, want 7", len(entries))
	}

	if entries[0].Kind != StackMapSame || entries[0].OffsetDelta != 0 {
		t.Errorf("entry 0 = %+v, want Same{0}", entries[0])
	}
	if entries[1].Kind != StackMapSameLocals1StackItem || entries[1].OffsetDelta != 0 {
		t.Errorf("entry 1 = %+v, want SameLocals1StackItem{0}", entries[1])
	}
	if entries[2].Kind != StackMapSameLocals1StackItem || entries[2].OffsetDelta != 5 || entries[2].Stack.Kind != VerificationInteger {
		t.Errorf("entry 2 = %+v, want SameLocals1StackItem{5, Integer}", entries[2])
	}
	if entries[3].Kind != StackMapChop || entries[3].OffsetDelta != 10 || entries[3].ChopCount != 3 {
		t.Errorf("entry 3 = %+v, want Chop{10, 3}", entries[3])
	}
	if entries[4].Kind != StackMapSame || entries[4].OffsetDelta != 20 {
		t.Errorf("entry 4 = %+v, want Same{20}", entries[4])
	}
	if entries[5].Kind != StackMapAppend || entries[5].OffsetDelta != 30 || len(entries[5].Locals) != 1 {
		t.Errorf("entry 5 = %+v, want Append{30, [1 local]}", entries[5])
	}
	if entries[6].Kind != StackMapFullFrame || entries[6].OffsetDelta != 40 || len(entries[6].Locals) != 0 || len(entries[6].FullStack) != 0 {
		t.Errorf("entry 6 = %+v, want FullFrame{40, [], []}", entries[6])
	}
}

func TestReadStackMapTableReservedTagRejected(t *testing.T) {
	fp := newAttrFixturePool(t, "Unused")
	body := []byte{0, 1, 200} // tag 200 is in the reserved 128-246 range
	if _, err := readStackMapTableData(newCursor(body), fp.pool); errors.Cause(err) != ErrUnrecognizedDiscriminant {
		t.Fatalf("err = %v, want ErrUnrecognizedDiscriminant", err)
	}
}

func TestReadCodeDataNestedAttributes(t *testing.T) {
	fp := newAttrFixturePool(t, "Deprecated")

	// max_stack, max_locals, code_length=1, code=[0 (nop)], exception_table_length=0,
	// then a nested attributes list containing one Deprecated attribute.
	var body []byte
	body = append(body, 0, 1) // max_stack
	body = append(body, 0, 1) // max_locals
	body = append(body, 0, 0, 0, 1, 0)
	body = append(body, 0, 0) // exception_table_length
	body = append(body, 0, 1)
	body = append(body, 0, byte(fp.ix["Deprecated"]))
	body = append(body, 0, 0, 0, 0)

	data, err := readCodeData(newCursor(body), newAttrCtx(fp.pool))
	if err != nil {
		t.Fatal(err)
	}
	if data.MaxStack != 1 || data.MaxLocals != 1 {
		t.Fatalf("got MaxStack=%d MaxLocals=%d", data.MaxStack, data.MaxLocals)
	}
	if len(data.Attributes) != 1 || data.Attributes[0].Name != "Deprecated" {
		t.Fatalf("nested attributes = %+v", data.Attributes)
	}
}
