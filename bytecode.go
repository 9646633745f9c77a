// Copyright 2024 The cafebabe authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

package cafebabe

// OperandKind discriminates the operand shape carried by an Instruction.
// Most opcodes carry none; the rest follow the JVM spec's instruction set
// table (§6.5) closely enough that one Instruction struct can represent
// all of them without a separate Go type per opcode.
type OperandKind int

const (
	OperandNone OperandKind = iota
	OperandLocalVar
	OperandIinc
	OperandBranch
	OperandImmediate // bipush/sipush/newarray atype
	OperandClass     // new/anewarray/checkcast/instanceof
	OperandFieldRef
	OperandMethodRef
	OperandInvokeInterface
	OperandInvokeDynamic
	OperandLoadConstant // ldc/ldc_w/ldc2_w
	OperandMultiANewArray
	OperandTableSwitch
	OperandLookupSwitch
)

// TableSwitchData is the decoded operand of a tableswitch instruction.
type TableSwitchData struct {
	DefaultOffset int32
	Low           int32
	High          int32
	JumpOffsets   []int32
}

// LookupSwitchPair is one match/offset pair of a lookupswitch instruction.
type LookupSwitchPair struct {
	Match  int32
	Offset int32
}

// LookupSwitchData is the decoded operand of a lookupswitch instruction.
type LookupSwitchData struct {
	DefaultOffset int32
	Pairs         []LookupSwitchPair
}

// Instruction is one decoded bytecode instruction. Offset is the byte
// offset of its opcode within the owning Code attribute's code array.
type Instruction struct {
	Offset   int
	Opcode   uint8
	Mnemonic string
	Kind     OperandKind

	LocalVarIndex uint16 // OperandLocalVar, OperandIinc
	IincConst     int16  // OperandIinc
	BranchOffset  int32  // OperandBranch (goto_w/jsr_w use the full 32 bits)
	Immediate     int32  // OperandImmediate

	ClassName    string        // OperandClass
	FieldRef     SymbolicRef   // OperandFieldRef
	MethodRef    SymbolicRef   // OperandMethodRef, OperandInvokeInterface
	InterfaceArg uint8         // OperandInvokeInterface count byte
	Dynamic      DynamicConstant // OperandInvokeDynamic

	LoadConstant BootstrapArgument // OperandLoadConstant: Literal, Class, MethodHandle, MethodType, or Dynamic

	Dims int // OperandMultiANewArray

	TableSwitch  *TableSwitchData  // OperandTableSwitch
	LookupSwitch *LookupSwitchData // OperandLookupSwitch
}

// ByteCode is the fully decoded instruction stream of a Code attribute's
// code array, produced only when Options.ParseBytecode is set.
type ByteCode struct {
	Instructions []Instruction
}

type opcodeInfo struct {
	mnemonic string
	kind     OperandKind
}

// opcodeTable maps every defined JVM opcode (JVM spec §6.5, plus the three
// reserved opcodes set aside for implementation-internal use) to its
// mnemonic and operand shape. Opcodes not present here are unrecognized.
var opcodeTable = map[uint8]opcodeInfo{
	0:   {"nop", OperandNone},
	1:   {"aconst_null", OperandNone},
	2:   {"iconst_m1", OperandNone},
	3:   {"iconst_0", OperandNone},
	4:   {"iconst_1", OperandNone},
	5:   {"iconst_2", OperandNone},
	6:   {"iconst_3", OperandNone},
	7:   {"iconst_4", OperandNone},
	8:   {"iconst_5", OperandNone},
	9:   {"lconst_0", OperandNone},
	10:  {"lconst_1", OperandNone},
	11:  {"fconst_0", OperandNone},
	12:  {"fconst_1", OperandNone},
	13:  {"fconst_2", OperandNone},
	14:  {"dconst_0", OperandNone},
	15:  {"dconst_1", OperandNone},
	16:  {"bipush", OperandImmediate},
	17:  {"sipush", OperandImmediate},
	18:  {"ldc", OperandLoadConstant},
	19:  {"ldc_w", OperandLoadConstant},
	20:  {"ldc2_w", OperandLoadConstant},
	21:  {"iload", OperandLocalVar},
	22:  {"lload", OperandLocalVar},
	23:  {"fload", OperandLocalVar},
	24:  {"dload", OperandLocalVar},
	25:  {"aload", OperandLocalVar},
	26:  {"iload_0", OperandNone},
	27:  {"iload_1", OperandNone},
	28:  {"iload_2", OperandNone},
	29:  {"iload_3", OperandNone},
	30:  {"lload_0", OperandNone},
	31:  {"lload_1", OperandNone},
	32:  {"lload_2", OperandNone},
	33:  {"lload_3", OperandNone},
	34:  {"fload_0", OperandNone},
	35:  {"fload_1", OperandNone},
	36:  {"fload_2", OperandNone},
	37:  {"fload_3", OperandNone},
	38:  {"dload_0", OperandNone},
	39:  {"dload_1", OperandNone},
	40:  {"dload_2", OperandNone},
	41:  {"dload_3", OperandNone},
	42:  {"aload_0", OperandNone},
	43:  {"aload_1", OperandNone},
	44:  {"aload_2", OperandNone},
	45:  {"aload_3", OperandNone},
	46:  {"iaload", OperandNone},
	47:  {"laload", OperandNone},
	48:  {"faload", OperandNone},
	49:  {"daload", OperandNone},
	50:  {"aaload", OperandNone},
	51:  {"baload", OperandNone},
	52:  {"caload", OperandNone},
	53:  {"saload", OperandNone},
	54:  {"istore", OperandLocalVar},
	55:  {"lstore", OperandLocalVar},
	56:  {"fstore", OperandLocalVar},
	57:  {"dstore", OperandLocalVar},
	58:  {"astore", OperandLocalVar},
	59:  {"istore_0", OperandNone},
	60:  {"istore_1", OperandNone},
	61:  {"istore_2", OperandNone},
	62:  {"istore_3", OperandNone},
	63:  {"lstore_0", OperandNone},
	64:  {"lstore_1", OperandNone},
	65:  {"lstore_2", OperandNone},
	66:  {"lstore_3", OperandNone},
	67:  {"fstore_0", OperandNone},
	68:  {"fstore_1", OperandNone},
	69:  {"fstore_2", OperandNone},
	70:  {"fstore_3", OperandNone},
	71:  {"dstore_0", OperandNone},
	72:  {"dstore_1", OperandNone},
	73:  {"dstore_2", OperandNone},
	74:  {"dstore_3", OperandNone},
	75:  {"astore_0", OperandNone},
	76:  {"astore_1", OperandNone},
	77:  {"astore_2", OperandNone},
	78:  {"astore_3", OperandNone},
	79:  {"iastore", OperandNone},
	80:  {"lastore", OperandNone},
	81:  {"fastore", OperandNone},
	82:  {"dastore", OperandNone},
	83:  {"aastore", OperandNone},
	84:  {"bastore", OperandNone},
	85:  {"castore", OperandNone},
	86:  {"sastore", OperandNone},
	87:  {"pop", OperandNone},
	88:  {"pop2", OperandNone},
	89:  {"dup", OperandNone},
	90:  {"dup_x1", OperandNone},
	91:  {"dup_x2", OperandNone},
	92:  {"dup2", OperandNone},
	93:  {"dup2_x1", OperandNone},
	94:  {"dup2_x2", OperandNone},
	95:  {"swap", OperandNone},
	96:  {"iadd", OperandNone},
	97:  {"ladd", OperandNone},
	98:  {"fadd", OperandNone},
	99:  {"dadd", OperandNone},
	100: {"isub", OperandNone},
	101: {"lsub", OperandNone},
	102: {"fsub", OperandNone},
	103: {"dsub", OperandNone},
	104: {"imul", OperandNone},
	105: {"lmul", OperandNone},
	106: {"fmul", OperandNone},
	107: {"dmul", OperandNone},
	108: {"idiv", OperandNone},
	109: {"ldiv", OperandNone},
	110: {"fdiv", OperandNone},
	111: {"ddiv", OperandNone},
	112: {"irem", OperandNone},
	113: {"lrem", OperandNone},
	114: {"frem", OperandNone},
	115: {"drem", OperandNone},
	116: {"ineg", OperandNone},
	117: {"lneg", OperandNone},
	118: {"fneg", OperandNone},
	119: {"dneg", OperandNone},
	120: {"ishl", OperandNone},
	121: {"lshl", OperandNone},
	122: {"ishr", OperandNone},
	123: {"lshr", OperandNone},
	124: {"iushr", OperandNone},
	125: {"lushr", OperandNone},
	126: {"iand", OperandNone},
	127: {"land", OperandNone},
	128: {"ior", OperandNone},
	129: {"lor", OperandNone},
	130: {"ixor", OperandNone},
	131: {"lxor", OperandNone},
	132: {"iinc", OperandIinc},
	133: {"i2l", OperandNone},
	134: {"i2f", OperandNone},
	135: {"i2d", OperandNone},
	136: {"l2i", OperandNone},
	137: {"l2f", OperandNone},
	138: {"l2d", OperandNone},
	139: {"f2i", OperandNone},
	140: {"f2l", OperandNone},
	141: {"f2d", OperandNone},
	142: {"d2i", OperandNone},
	143: {"d2l", OperandNone},
	144: {"d2f", OperandNone},
	145: {"i2b", OperandNone},
	146: {"i2c", OperandNone},
	147: {"i2s", OperandNone},
	148: {"lcmp", OperandNone},
	149: {"fcmpl", OperandNone},
	150: {"fcmpg", OperandNone},
	151: {"dcmpl", OperandNone},
	152: {"dcmpg", OperandNone},
	153: {"ifeq", OperandBranch},
	154: {"ifne", OperandBranch},
	155: {"iflt", OperandBranch},
	156: {"ifge", OperandBranch},
	157: {"ifgt", OperandBranch},
	158: {"ifle", OperandBranch},
	159: {"if_icmpeq", OperandBranch},
	160: {"if_icmpne", OperandBranch},
	161: {"if_icmplt", OperandBranch},
	162: {"if_icmpge", OperandBranch},
	163: {"if_icmpgt", OperandBranch},
	164: {"if_icmple", OperandBranch},
	165: {"if_acmpeq", OperandBranch},
	166: {"if_acmpne", OperandBranch},
	167: {"goto", OperandBranch},
	168: {"jsr", OperandBranch},
	169: {"ret", OperandLocalVar},
	170: {"tableswitch", OperandTableSwitch},
	171: {"lookupswitch", OperandLookupSwitch},
	172: {"ireturn", OperandNone},
	173: {"lreturn", OperandNone},
	174: {"freturn", OperandNone},
	175: {"dreturn", OperandNone},
	176: {"areturn", OperandNone},
	177: {"return", OperandNone},
	178: {"getstatic", OperandFieldRef},
	179: {"putstatic", OperandFieldRef},
	180: {"getfield", OperandFieldRef},
	181: {"putfield", OperandFieldRef},
	182: {"invokevirtual", OperandMethodRef},
	183: {"invokespecial", OperandMethodRef},
	184: {"invokestatic", OperandMethodRef},
	185: {"invokeinterface", OperandInvokeInterface},
	186: {"invokedynamic", OperandInvokeDynamic},
	187: {"new", OperandClass},
	188: {"newarray", OperandImmediate},
	189: {"anewarray", OperandClass},
	190: {"arraylength", OperandNone},
	191: {"athrow", OperandNone},
	192: {"checkcast", OperandClass},
	193: {"instanceof", OperandClass},
	194: {"monitorenter", OperandNone},
	195: {"monitorexit", OperandNone},
	// 196 (wide) is handled specially, never looked up here.
	197: {"multianewarray", OperandMultiANewArray},
	198: {"ifnull", OperandBranch},
	199: {"ifnonnull", OperandBranch},
	200: {"goto_w", OperandBranch},
	201: {"jsr_w", OperandBranch},
	202: {"breakpoint", OperandNone},
	254: {"impdep1", OperandNone},
	255: {"impdep2", OperandNone},
}

// wideLocalVarOpcodes is the set of opcodes the wide prefix may widen to a
// u16 local variable index (JVM spec §6.5 wide).
var wideLocalVarOpcodes = map[uint8]bool{
	21: true, 22: true, 23: true, 24: true, 25: true, // iload/lload/fload/dload/aload
	54: true, 55: true, 56: true, 57: true, 58: true, // istore/lstore/fstore/dstore/astore
	169: true, // ret
}

// decodeBytecode decodes a Code attribute's raw code array into a linear
// instruction list. codeStart is always 0 relative to code itself; padding
// for tableswitch/lookupswitch is computed relative to the start of code,
// per spec.md §4.D.
func decodeBytecode(code []byte, pool *constantPool) (*ByteCode, error) {
	c := newCursor(code)
	var instructions []Instruction
	for c.remaining() > 0 {
		offset := c.pos()
		opcodeByte, err := c.readU1()
		if err != nil {
			return nil, wrapf(err, "opcode at offset %d", offset)
		}
		if opcodeByte == 196 {
			inst, err := decodeWideInstruction(c, offset)
			if err != nil {
				return nil, wrapf(err, "wide instruction at offset %d", offset)
			}
			instructions = append(instructions, inst)
			continue
		}
		info, ok := opcodeTable[opcodeByte]
		if !ok {
			return nil, wrapf(ErrUnrecognizedOpcode, "opcode %d at offset %d", opcodeByte, offset)
		}
		inst, err := decodeInstruction(c, pool, offset, opcodeByte, info)
		if err != nil {
			return nil, wrapf(err, "%s at offset %d", info.mnemonic, offset)
		}
		instructions = append(instructions, inst)
	}
	return &ByteCode{Instructions: instructions}, nil
}

func decodeWideInstruction(c *cursor, offset int) (Instruction, error) {
	modifiedOpcode, err := c.readU1()
	if err != nil {
		return Instruction{}, wrap(err, "modified opcode")
	}
	if modifiedOpcode == 132 { // iinc
		index, err := c.readU2()
		if err != nil {
			return Instruction{}, wrap(err, "index")
		}
		constVal, err := c.readI2()
		if err != nil {
			return Instruction{}, wrap(err, "const")
		}
		return Instruction{
			Offset: offset, Opcode: 196, Mnemonic: "wide iinc", Kind: OperandIinc,
			LocalVarIndex: index, IincConst: constVal,
		}, nil
	}
	if !wideLocalVarOpcodes[modifiedOpcode] {
		return Instruction{}, wrapf(ErrBadOperand, "opcode %d is not valid after wide", modifiedOpcode)
	}
	info := opcodeTable[modifiedOpcode]
	index, err := c.readU2()
	if err != nil {
		return Instruction{}, wrap(err, "index")
	}
	return Instruction{
		Offset: offset, Opcode: 196, Mnemonic: "wide " + info.mnemonic, Kind: OperandLocalVar,
		LocalVarIndex: index,
	}, nil
}

func decodeInstruction(c *cursor, pool *constantPool, offset int, opcode uint8, info opcodeInfo) (Instruction, error) {
	inst := Instruction{Offset: offset, Opcode: opcode, Mnemonic: info.mnemonic, Kind: info.kind}
	switch info.kind {
	case OperandNone:
		// nothing to read

	case OperandLocalVar:
		idx, err := c.readU1()
		if err != nil {
			return inst, wrap(err, "index")
		}
		inst.LocalVarIndex = uint16(idx)

	case OperandIinc:
		idx, err := c.readU1()
		if err != nil {
			return inst, wrap(err, "index")
		}
		constVal, err := c.readI1()
		if err != nil {
			return inst, wrap(err, "const")
		}
		inst.LocalVarIndex = uint16(idx)
		inst.IincConst = int16(constVal)

	case OperandBranch:
		if opcode == 200 || opcode == 201 { // goto_w, jsr_w
			v, err := c.readI4()
			if err != nil {
				return inst, wrap(err, "branch offset")
			}
			inst.BranchOffset = v
		} else {
			v, err := c.readI2()
			if err != nil {
				return inst, wrap(err, "branch offset")
			}
			inst.BranchOffset = int32(v)
		}

	case OperandImmediate:
		if opcode == 17 { // sipush
			v, err := c.readI2()
			if err != nil {
				return inst, wrap(err, "immediate")
			}
			inst.Immediate = int32(v)
		} else { // bipush, newarray
			v, err := c.readI1()
			if err != nil {
				return inst, wrap(err, "immediate")
			}
			inst.Immediate = int32(v)
		}

	case OperandClass:
		className, err := readCPClassInfo(c, pool)
		if err != nil {
			return inst, wrap(err, "class reference")
		}
		inst.ClassName = className

	case OperandFieldRef:
		ref, err := readSymbolicRefForOpcode(c, pool, cpTagFieldref)
		if err != nil {
			return inst, wrap(err, "field reference")
		}
		inst.FieldRef = ref

	case OperandMethodRef:
		var ref SymbolicRef
		var err error
		if opcode == 182 { // invokevirtual always resolves a Methodref
			ref, err = readSymbolicRefForOpcode(c, pool, cpTagMethodref)
		} else { // invokespecial, invokestatic: Methodref or, since Java 8, InterfaceMethodref
			ref, err = readMethodRefLenient(c, pool)
		}
		if err != nil {
			return inst, wrap(err, "method reference")
		}
		inst.MethodRef = ref

	case OperandInvokeInterface:
		ref, err := readSymbolicRefForOpcode(c, pool, cpTagInterfaceMethodref)
		if err != nil {
			return inst, wrap(err, "method reference")
		}
		count, err := c.readU1()
		if err != nil {
			return inst, wrap(err, "count")
		}
		zero, err := c.readU1()
		if err != nil {
			return inst, wrap(err, "trailing byte")
		}
		if zero != 0 {
			return inst, wrapf(ErrBadOperand, "nonzero trailing byte %d", zero)
		}
		inst.MethodRef = ref
		inst.InterfaceArg = count

	case OperandInvokeDynamic:
		ix, err := c.readU2()
		if err != nil {
			return inst, wrap(err, "index")
		}
		entry, err := pool.entryAt(ix)
		if err != nil {
			return inst, wrap(err, "index")
		}
		if entry.tag != cpTagInvokeDynamic {
			return inst, wrapf(ErrPoolKindMismatch, "expected InvokeDynamic at index %d, found tag %d", ix, entry.tag)
		}
		nat, err := pool.nameAndTypeAt(entry.idx2)
		if err != nil {
			return inst, wrap(err, "name-and-type")
		}
		zero1, err := c.readU1()
		if err != nil {
			return inst, wrap(err, "trailing byte 1")
		}
		zero2, err := c.readU1()
		if err != nil {
			return inst, wrap(err, "trailing byte 2")
		}
		if zero1 != 0 || zero2 != 0 {
			return inst, wrapf(ErrBadOperand, "nonzero trailing bytes %d %d", zero1, zero2)
		}
		inst.Dynamic = DynamicConstant{BootstrapMethodIndex: entry.idx1, NameAndType: nat}

	case OperandLoadConstant:
		var ix uint16
		var err error
		if opcode == 18 { // ldc
			v, e := c.readU1()
			ix, err = uint16(v), e
		} else { // ldc_w, ldc2_w
			ix, err = c.readU2()
		}
		if err != nil {
			return inst, wrap(err, "index")
		}
		arg, err := pool.bootstrapArgumentAt(ix)
		if err != nil {
			return inst, wrap(err, "constant")
		}
		if opcode == 20 { // ldc2_w: only Long/Double/Dynamic permitted
			if arg.Kind == BootstrapArgLiteral && arg.Literal.Kind != LiteralLong && arg.Literal.Kind != LiteralDouble {
				return inst, wrapf(ErrBadOperand, "ldc2_w requires a Long, Double, or Dynamic constant")
			}
			if arg.Kind == BootstrapArgClass || arg.Kind == BootstrapArgMethodHandle || arg.Kind == BootstrapArgMethodType {
				return inst, wrapf(ErrBadOperand, "ldc2_w requires a Long, Double, or Dynamic constant")
			}
		}
		inst.LoadConstant = arg

	case OperandMultiANewArray:
		className, err := readCPClassInfo(c, pool)
		if err != nil {
			return inst, wrap(err, "class reference")
		}
		dims, err := c.readU1()
		if err != nil {
			return inst, wrap(err, "dimensions")
		}
		if dims == 0 {
			return inst, wrapf(ErrBadOperand, "zero dimensions")
		}
		inst.ClassName = className
		inst.Dims = int(dims)

	case OperandTableSwitch:
		if err := padToAlignment(c, offset); err != nil {
			return inst, wrap(err, "padding")
		}
		defaultOffset, err := c.readI4()
		if err != nil {
			return inst, wrap(err, "default offset")
		}
		low, err := c.readI4()
		if err != nil {
			return inst, wrap(err, "low")
		}
		high, err := c.readI4()
		if err != nil {
			return inst, wrap(err, "high")
		}
		if high < low {
			return inst, wrapf(ErrBadOperand, "high %d less than low %d", high, low)
		}
		count := int(high-low) + 1
		offsets := make([]int32, 0, count)
		for i := 0; i < count; i++ {
			v, err := c.readI4()
			if err != nil {
				return inst, wrapf(err, "jump offset %d", i)
			}
			offsets = append(offsets, v)
		}
		inst.TableSwitch = &TableSwitchData{DefaultOffset: defaultOffset, Low: low, High: high, JumpOffsets: offsets}

	case OperandLookupSwitch:
		if err := padToAlignment(c, offset); err != nil {
			return inst, wrap(err, "padding")
		}
		defaultOffset, err := c.readI4()
		if err != nil {
			return inst, wrap(err, "default offset")
		}
		npairs, err := c.readI4()
		if err != nil {
			return inst, wrap(err, "npairs")
		}
		if npairs < 0 {
			return inst, wrapf(ErrBadOperand, "negative npairs %d", npairs)
		}
		pairs := make([]LookupSwitchPair, 0, npairs)
		for i := int32(0); i < npairs; i++ {
			match, err := c.readI4()
			if err != nil {
				return inst, wrapf(err, "match of pair %d", i)
			}
			off, err := c.readI4()
			if err != nil {
				return inst, wrapf(err, "offset of pair %d", i)
			}
			pairs = append(pairs, LookupSwitchPair{Match: match, Offset: off})
		}
		inst.LookupSwitch = &LookupSwitchData{DefaultOffset: defaultOffset, Pairs: pairs}
	}
	return inst, nil
}

// padToAlignment skips the padding bytes tableswitch/lookupswitch require
// so their first 4-byte field starts at an offset (relative to the start
// of the code array) that is a multiple of 4.
func padToAlignment(c *cursor, opcodeOffset int) error {
	afterOpcode := opcodeOffset + 1
	padding := (4 - afterOpcode%4) % 4
	for i := 0; i < padding; i++ {
		if _, err := c.readU1(); err != nil {
			return err
		}
	}
	return nil
}

// readSymbolicRefForOpcode resolves a u2 pool index as a reference of
// exactly wantTag.
func readSymbolicRefForOpcode(c *cursor, pool *constantPool, wantTag byte) (SymbolicRef, error) {
	ix, err := c.readU2()
	if err != nil {
		return SymbolicRef{}, wrap(err, "index")
	}
	return pool.symbolicRefAt(ix, wantTag)
}

// readMethodRefLenient resolves a u2 pool index as either a Methodref or,
// since Java 8, an InterfaceMethodref (invokestatic/invokespecial on an
// interface method).
func readMethodRefLenient(c *cursor, pool *constantPool) (SymbolicRef, error) {
	ix, err := c.readU2()
	if err != nil {
		return SymbolicRef{}, wrap(err, "index")
	}
	entry, err := pool.entryAt(ix)
	if err != nil {
		return SymbolicRef{}, err
	}
	if entry.tag != cpTagMethodref && entry.tag != cpTagInterfaceMethodref {
		return SymbolicRef{}, wrapf(ErrPoolKindMismatch, "expected Methodref or InterfaceMethodref at index %d, found tag %d", ix, entry.tag)
	}
	return pool.symbolicRefAt(ix, entry.tag)
}
