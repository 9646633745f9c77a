// Copyright 2024 The cafebabe authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

package cafebabe

import (
	"testing"

	"github.com/pkg/errors"
)

func emptyPool(t *testing.T) *constantPool {
	t.Helper()
	pool, err := readConstantPool(newCursor([]byte{0, 1})) // count=1, no entries
	if err != nil {
		t.Fatal(err)
	}
	return pool
}

func TestDecodeBytecodeSimpleSequence(t *testing.T) {
	// iconst_0 (3), istore_1 (60), iload_1 (27), ireturn (172)
	code := []byte{3, 60, 27, 172}
	bc, err := decodeBytecode(code, emptyPool(t))
	if err != nil {
		t.Fatal(err)
	}
	if len(bc.Instructions) != 4 {
		t.Fatalf("got %d instructions, want 4", len(bc.Instructions))
	}
	wantMnemonics := []string{"iconst_0", "istore_1", "iload_1", "ireturn"}
	for i, want := range wantMnemonics {
		if bc.Instructions[i].Mnemonic != want {
			t.Errorf("instruction %d = %q, want %q", i, bc.Instructions[i].Mnemonic, want)
		}
		if bc.Instructions[i].Offset != i {
			t.Errorf("instruction %d offset = %d, want %d", i, bc.Instructions[i].Offset, i)
		}
	}
}

func TestDecodeBytecodeBipushSipush(t *testing.T) {
	code := []byte{16, 0x7F, 17, 0x01, 0x00}
	bc, err := decodeBytecode(code, emptyPool(t))
	if err != nil {
		t.Fatal(err)
	}
	if bc.Instructions[0].Immediate != 127 {
		t.Fatalf("bipush immediate = %d, want 127", bc.Instructions[0].Immediate)
	}
	if bc.Instructions[1].Immediate != 256 {
		t.Fatalf("sipush immediate = %d, want 256", bc.Instructions[1].Immediate)
	}
}

func TestDecodeBytecodeUnrecognizedOpcode(t *testing.T) {
	code := []byte{203} // opcode 203 is not defined
	if _, err := decodeBytecode(code, emptyPool(t)); errors.Cause(err) != ErrUnrecognizedOpcode {
		t.Fatalf("err = %v, want ErrUnrecognizedOpcode", err)
	}
}

func TestDecodeBytecodeWideIload(t *testing.T) {
	// wide (196), iload (21), index = 0x0100
	code := []byte{196, 21, 0x01, 0x00}
	bc, err := decodeBytecode(code, emptyPool(t))
	if err != nil {
		t.Fatal(err)
	}
	if len(bc.Instructions) != 1 {
		t.Fatalf("got %d instructions, want 1", len(bc.Instructions))
	}
	inst := bc.Instructions[0]
	if inst.Mnemonic != "wide iload" || inst.LocalVarIndex != 256 {
		t.Fatalf("got %+v", inst)
	}
}

func TestDecodeBytecodeWideIinc(t *testing.T) {
	// wide (196), iinc (132), index=0x0002, const=0xFFFF (-1)
	code := []byte{196, 132, 0x00, 0x02, 0xFF, 0xFF}
	bc, err := decodeBytecode(code, emptyPool(t))
	if err != nil {
		t.Fatal(err)
	}
	inst := bc.Instructions[0]
	if inst.LocalVarIndex != 2 || inst.IincConst != -1 {
		t.Fatalf("got %+v", inst)
	}
}

func TestDecodeBytecodeWideRejectsInvalidModifiedOpcode(t *testing.T) {
	// wide (196) followed by nop (0), which is not widenable.
	code := []byte{196, 0, 0, 0}
	if _, err := decodeBytecode(code, emptyPool(t)); errors.Cause(err) != ErrBadOperand {
		t.Fatalf("err = %v, want ErrBadOperand", err)
	}
}

func TestDecodeBytecodeTableswitchPadding(t *testing.T) {
	// tableswitch at offset 0: padding to offset 4, default=10, low=0, high=1,
	// two jump offsets.
	code := []byte{
		170,                    // tableswitch, offset 0
		0, 0, 0,                // 3 padding bytes (offset 1 -> next multiple of 4 is 4)
		0, 0, 0, 10, // default offset = 10
		0, 0, 0, 0, // low = 0
		0, 0, 0, 1, // high = 1
		0, 0, 0, 100, // jump offset for match 0
		0, 0, 0, 200, // jump offset for match 1
	}
	bc, err := decodeBytecode(code, emptyPool(t))
	if err != nil {
		t.Fatal(err)
	}
	ts := bc.Instructions[0].TableSwitch
	if ts == nil {
		t.Fatal("expected TableSwitch data")
	}
	if ts.DefaultOffset != 10 || ts.Low != 0 || ts.High != 1 || len(ts.JumpOffsets) != 2 {
		t.Fatalf("got %+v", ts)
	}
	if ts.JumpOffsets[0] != 100 || ts.JumpOffsets[1] != 200 {
		t.Fatalf("got jump offsets %v", ts.JumpOffsets)
	}
}

func TestDecodeBytecodeTableswitchRejectsHighLessThanLow(t *testing.T) {
	code := []byte{
		170,
		0, 0, 0,
		0, 0, 0, 0, // default
		0, 0, 0, 5, // low = 5
		0, 0, 0, 3, // high = 3 (< low)
	}
	if _, err := decodeBytecode(code, emptyPool(t)); errors.Cause(err) != ErrBadOperand {
		t.Fatalf("err = %v, want ErrBadOperand", err)
	}
}

func TestDecodeBytecodeLookupswitch(t *testing.T) {
	code := []byte{
		171, // lookupswitch, offset 0
		0, 0, 0,
		0, 0, 0, 9, // default offset = 9
		0, 0, 0, 2, // npairs = 2
		0, 0, 0, 1, 0, 0, 0, 11, // match=1 -> offset=11
		0, 0, 0, 2, 0, 0, 0, 22, // match=2 -> offset=22
	}
	bc, err := decodeBytecode(code, emptyPool(t))
	if err != nil {
		t.Fatal(err)
	}
	ls := bc.Instructions[0].LookupSwitch
	if ls == nil || ls.DefaultOffset != 9 || len(ls.Pairs) != 2 {
		t.Fatalf("got %+v", ls)
	}
	if ls.Pairs[0].Match != 1 || ls.Pairs[0].Offset != 11 {
		t.Fatalf("pair 0 = %+v", ls.Pairs[0])
	}
	if ls.Pairs[1].Match != 2 || ls.Pairs[1].Offset != 22 {
		t.Fatalf("pair 1 = %+v", ls.Pairs[1])
	}
}

func TestDecodeBytecodeInvokeInterfaceRequiresZeroTrailingByte(t *testing.T) {
	// Build a pool with one InterfaceMethodref at index 6.
	b := newCPBuilder()
	b.utf8("Foo")
	b.class(1)
	b.utf8("x")
	b.utf8("()V")
	b.nameAndType(3, 4)
	b.u1(cpTagInterfaceMethodref).u2(2).u2(5)
	b.entries++
	pool, err := readConstantPool(newCursor(b.bytes()))
	if err != nil {
		t.Fatal(err)
	}

	// invokeinterface (185), index=6, count=1, trailing byte must be 0.
	code := []byte{185, 0, 6, 1, 0}
	bc, err := decodeBytecode(code, pool)
	if err != nil {
		t.Fatal(err)
	}
	inst := bc.Instructions[0]
	if inst.MethodRef.ClassName != "Foo" || inst.InterfaceArg != 1 {
		t.Fatalf("got %+v", inst)
	}

	badCode := []byte{185, 0, 6, 1, 1} // nonzero trailing byte
	if _, err := decodeBytecode(badCode, pool); errors.Cause(err) != ErrBadOperand {
		t.Fatalf("err = %v, want ErrBadOperand", err)
	}
}

func TestDecodeBytecodeLdc2WRejectsNonLongDouble(t *testing.T) {
	b := newCPBuilder()
	b.utf8("hello")
	b.u1(cpTagString).u2(1)
	b.entries++
	pool, err := readConstantPool(newCursor(b.bytes()))
	if err != nil {
		t.Fatal(err)
	}
	// ldc2_w (20) pointing at a String constant, which is not Long/Double/Dynamic.
	code := []byte{20, 0, 2}
	if _, err := decodeBytecode(code, pool); errors.Cause(err) != ErrBadOperand {
		t.Fatalf("err = %v, want ErrBadOperand", err)
	}
}

func TestDecodeBytecodeLdc2WAcceptsLong(t *testing.T) {
	b := newCPBuilder().long(123456789012)
	pool, err := readConstantPool(newCursor(b.bytes()))
	if err != nil {
		t.Fatal(err)
	}
	code := []byte{20, 0, 1}
	bc, err := decodeBytecode(code, pool)
	if err != nil {
		t.Fatal(err)
	}
	inst := bc.Instructions[0]
	if inst.LoadConstant.Kind != BootstrapArgLiteral || inst.LoadConstant.Literal.Long != 123456789012 {
		t.Fatalf("got %+v", inst.LoadConstant)
	}
}
