// Copyright 2024 The cafebabe authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

package cafebabe

// Constant pool tag values, fixed by the JVM specification (Table 4.4-A).
const (
	cpTagUtf8               = 1
	cpTagInteger            = 3
	cpTagFloat              = 4
	cpTagLong               = 5
	cpTagDouble             = 6
	cpTagClass              = 7
	cpTagString             = 8
	cpTagFieldref           = 9
	cpTagMethodref          = 10
	cpTagInterfaceMethodref = 11
	cpTagNameAndType        = 12
	cpTagMethodHandle       = 15
	cpTagMethodType         = 16
	cpTagDynamic            = 17
	cpTagInvokeDynamic      = 18
	cpTagModule             = 19
	cpTagPackage            = 20

	// cpTagPlaceholder is not a wire tag; it marks the unusable second slot
	// following a Long or Double entry.
	cpTagPlaceholder = 0
)

// MethodHandle reference kinds (JVM spec Table 5.4.3.5-A).
const (
	RefGetField         = 1
	RefGetStatic        = 2
	RefPutField         = 3
	RefPutStatic        = 4
	RefInvokeVirtual    = 5
	RefInvokeStatic     = 6
	RefInvokeSpecial    = 7
	RefNewInvokeSpecial = 8
	RefInvokeInterface  = 9
)

// rawCPEntry is the pass-1, unresolved form of a constant pool slot: the
// tag plus whatever raw (still-u16) indices or literal values followed it.
type rawCPEntry struct {
	tag byte

	// Populated depending on tag; raw index fields keep the pool-relative
	// index, resolved against the pool itself only in pass 2.
	utf8      string
	intVal    int32
	floatVal  float32
	longVal   int64
	doubleVal float64

	idx1 uint16 // class index / name index / reference index / bootstrap index / nameandtype index / string index
	idx2 uint16 // name-and-type index / descriptor index

	refKind uint8 // MethodHandle kind
}

// LiteralConstant is the sum of constant kinds a ConstantValue attribute or
// an ldc/ldc_w/ldc2_w instruction can resolve to.
type LiteralConstant struct {
	Kind   LiteralKind
	Int    int32
	Float  float32
	Long   int64
	Double float64
	String string
}

// LiteralKind discriminates LiteralConstant.
type LiteralKind int

const (
	LiteralInt LiteralKind = iota
	LiteralFloat
	LiteralLong
	LiteralDouble
	LiteralString
)

func (k LiteralKind) String() string {
	switch k {
	case LiteralInt:
		return "Int"
	case LiteralFloat:
		return "Float"
	case LiteralLong:
		return "Long"
	case LiteralDouble:
		return "Double"
	case LiteralString:
		return "String"
	default:
		return "Unknown"
	}
}

// NameAndType is a resolved CONSTANT_NameAndType_info.
type NameAndType struct {
	Name       string
	Descriptor string
}

// SymbolicRef is a resolved CONSTANT_Fieldref/Methodref/InterfaceMethodref_info.
type SymbolicRef struct {
	ClassName    string
	NameAndType  NameAndType
	IsInterface  bool // true only for InterfaceMethodref
}

// MethodHandle is a resolved CONSTANT_MethodHandle_info.
type MethodHandle struct {
	Kind      uint8
	Reference SymbolicRef
}

// BootstrapArgument is one element of a BootstrapMethods entry's argument
// list, or a CONSTANT_Dynamic's resolved static-argument pool reference.
type BootstrapArgument struct {
	Kind         BootstrapArgKind
	Literal      LiteralConstant
	ClassName    string
	MethodHandle MethodHandle
	MethodType   string
	Dynamic      DynamicConstant
}

// BootstrapArgKind discriminates BootstrapArgument.
type BootstrapArgKind int

const (
	BootstrapArgLiteral BootstrapArgKind = iota
	BootstrapArgClass
	BootstrapArgMethodHandle
	BootstrapArgMethodType
	BootstrapArgDynamic
)

// DynamicConstant is a resolved CONSTANT_Dynamic_info: a bootstrap method
// table index plus a name-and-type, i.e. a condy site.
type DynamicConstant struct {
	BootstrapMethodIndex uint16
	NameAndType          NameAndType
}

// constantPool is the fully-resolved, read-only constant pool. Index 0 is
// always a zero-value placeholder (never populated, never referenced);
// valid entries occupy indices 1..count-1. The second slot of every Long
// or Double occupies a placeholder slot of its own.
type constantPool struct {
	raw []rawCPEntry // 1-indexed; raw[0] unused
}

func (p *constantPool) count() int {
	return len(p.raw)
}

// inRange reports whether ix is a valid, populated (non-placeholder) index.
func (p *constantPool) inRange(ix uint16) bool {
	return ix > 0 && int(ix) < len(p.raw) && p.raw[ix].tag != cpTagPlaceholder
}

func (p *constantPool) entryAt(ix uint16) (*rawCPEntry, error) {
	if !p.inRange(ix) {
		return nil, wrapf(ErrBadPoolIndex, "index %d", ix)
	}
	return &p.raw[ix], nil
}

// readConstantPool performs the two-pass construction described in
// spec.md §4.C: pass 1 reads every raw, tag-dispatched slot (decoding
// Utf8 strings immediately, since later slots may reference them, but
// leaving every *index* field as a raw, unvalidated u16); pass 2 walks
// the raw slots and validates every index-bearing variant against the
// now-complete table. A single-pass resolve-on-read design cannot work
// here because forward references are legal (e.g. a ClassInfo at index 2
// may reference a Utf8 at index 20).
func readConstantPool(c *cursor) (*constantPool, error) {
	count, err := c.readU2()
	if err != nil {
		return nil, wrap(err, "constant pool count")
	}
	pool := &constantPool{raw: make([]rawCPEntry, count)}

	for i := 1; i < int(count); i++ {
		tag, err := c.readU1()
		if err != nil {
			return nil, wrapf(err, "tag of constant pool entry %d", i)
		}
		entry, consumesExtraSlot, err := readRawCPEntry(c, tag)
		if err != nil {
			return nil, wrapf(err, "constant pool entry %d", i)
		}
		pool.raw[i] = entry
		if consumesExtraSlot {
			i++
			if i >= int(count) {
				return nil, wrapf(ErrUnexpectedEnd, "long/double constant pool entry at index %d overruns pool count", i-1)
			}
			pool.raw[i] = rawCPEntry{tag: cpTagPlaceholder}
		}
	}

	if err := pool.resolveAll(); err != nil {
		return nil, err
	}
	return pool, nil
}

// readRawCPEntry reads the tag-specific payload of one constant pool slot.
// consumesExtraSlot is true for Long/Double, whose second index slot is an
// unreadable Placeholder.
func readRawCPEntry(c *cursor, tag byte) (entry rawCPEntry, consumesExtraSlot bool, err error) {
	entry.tag = tag
	switch tag {
	case cpTagUtf8:
		length, err := c.readU2()
		if err != nil {
			return entry, false, wrap(err, "Utf8 length")
		}
		raw, err := c.slice(int(length))
		if err != nil {
			return entry, false, wrap(err, "Utf8 bytes")
		}
		s, err := decodeModifiedUTF8(raw)
		if err != nil {
			return entry, false, wrap(err, "Utf8 modified-UTF-8 decode")
		}
		entry.utf8 = s
	case cpTagInteger:
		v, err := c.readU4()
		if err != nil {
			return entry, false, wrap(err, "Integer value")
		}
		entry.intVal = int32(v)
	case cpTagFloat:
		v, err := c.readU4()
		if err != nil {
			return entry, false, wrap(err, "Float value")
		}
		entry.floatVal = float32FromBits(v)
	case cpTagLong:
		v, err := c.readU8()
		if err != nil {
			return entry, false, wrap(err, "Long value")
		}
		entry.longVal = int64(v)
		consumesExtraSlot = true
	case cpTagDouble:
		v, err := c.readU8()
		if err != nil {
			return entry, false, wrap(err, "Double value")
		}
		entry.doubleVal = float64FromBits(v)
		consumesExtraSlot = true
	case cpTagClass, cpTagString, cpTagMethodType, cpTagModule, cpTagPackage:
		idx, err := c.readU2()
		if err != nil {
			return entry, false, wrap(err, "index")
		}
		entry.idx1 = idx
	case cpTagFieldref, cpTagMethodref, cpTagInterfaceMethodref, cpTagNameAndType, cpTagDynamic, cpTagInvokeDynamic:
		idx1, err := c.readU2()
		if err != nil {
			return entry, false, wrap(err, "first index")
		}
		idx2, err := c.readU2()
		if err != nil {
			return entry, false, wrap(err, "second index")
		}
		entry.idx1, entry.idx2 = idx1, idx2
	case cpTagMethodHandle:
		kind, err := c.readU1()
		if err != nil {
			return entry, false, wrap(err, "reference kind")
		}
		idx, err := c.readU2()
		if err != nil {
			return entry, false, wrap(err, "reference index")
		}
		entry.refKind = kind
		entry.idx1 = idx
	default:
		return entry, false, wrapf(ErrPoolKindMismatch, "unrecognized tag %d", tag)
	}
	return entry, consumesExtraSlot, nil
}

// resolveAll is pass 2: it validates every index-bearing entry's referent
// kind eagerly, independent of whether any accessor ever visits it, since
// spec.md requires the whole pool to be "fully validated" up front for
// entries that are themselves indices into other pool entries (ClassInfo,
// NameAndType, refs, MethodHandle, Dynamic/InvokeDynamic). Entries that are
// only ever resolved lazily through a typed accessor (e.g. a ConstantValue
// attribute's index into Integer/Float/Long/Double/String) are intentionally
// not re-validated here; read_cp_* enforces their kind when used.
func (p *constantPool) resolveAll() error {
	for i := 1; i < len(p.raw); i++ {
		e := &p.raw[i]
		switch e.tag {
		case cpTagClass, cpTagModule, cpTagPackage:
			if _, err := p.utf8At(e.idx1); err != nil {
				return wrapf(err, "referent of constant pool entry %d", i)
			}
		case cpTagString:
			if _, err := p.utf8At(e.idx1); err != nil {
				return wrapf(err, "referent of constant pool entry %d", i)
			}
		case cpTagMethodType:
			if _, err := p.utf8At(e.idx1); err != nil {
				return wrapf(err, "referent of constant pool entry %d", i)
			}
		case cpTagFieldref, cpTagMethodref, cpTagInterfaceMethodref:
			if _, err := p.classAt(e.idx1); err != nil {
				return wrapf(err, "class of constant pool entry %d", i)
			}
			if _, err := p.nameAndTypeAt(e.idx2); err != nil {
				return wrapf(err, "name-and-type of constant pool entry %d", i)
			}
		case cpTagNameAndType:
			if _, err := p.utf8At(e.idx1); err != nil {
				return wrapf(err, "name of constant pool entry %d", i)
			}
			if _, err := p.utf8At(e.idx2); err != nil {
				return wrapf(err, "descriptor of constant pool entry %d", i)
			}
		case cpTagMethodHandle:
			if e.refKind < RefGetField || e.refKind > RefInvokeInterface {
				return wrapf(ErrUnrecognizedDiscriminant, "method handle kind %d of constant pool entry %d", e.refKind, i)
			}
			if err := p.validateMethodHandleReference(e.refKind, e.idx1, i); err != nil {
				return err
			}
		case cpTagDynamic, cpTagInvokeDynamic:
			// The bootstrap method index is only checkable once the
			// BootstrapMethods attribute has been read, which happens after
			// the pool; the name-and-type is checkable now.
			if _, err := p.nameAndTypeAt(e.idx2); err != nil {
				return wrapf(err, "name-and-type of constant pool entry %d", i)
			}
		case cpTagUtf8, cpTagInteger, cpTagFloat, cpTagLong, cpTagDouble, cpTagPlaceholder:
			// No cross-references to validate.
		default:
			return wrapf(ErrPoolKindMismatch, "unrecognized tag %d at constant pool entry %d", e.tag, i)
		}
	}
	return nil
}

func (p *constantPool) validateMethodHandleReference(kind uint8, ix uint16, entryIndex int) error {
	entry, err := p.entryAt(ix)
	if err != nil {
		return wrapf(err, "reference of constant pool entry %d", entryIndex)
	}
	switch kind {
	case RefGetField, RefGetStatic, RefPutField, RefPutStatic:
		if entry.tag != cpTagFieldref {
			return wrapf(ErrPoolKindMismatch, "method handle kind %d requires a Fieldref at constant pool entry %d", kind, entryIndex)
		}
	case RefInvokeVirtual, RefNewInvokeSpecial:
		if entry.tag != cpTagMethodref {
			return wrapf(ErrPoolKindMismatch, "method handle kind %d requires a Methodref at constant pool entry %d", kind, entryIndex)
		}
	case RefInvokeStatic, RefInvokeSpecial:
		if entry.tag != cpTagMethodref && entry.tag != cpTagInterfaceMethodref {
			return wrapf(ErrPoolKindMismatch, "method handle kind %d requires a Methodref or InterfaceMethodref at constant pool entry %d", kind, entryIndex)
		}
	case RefInvokeInterface:
		if entry.tag != cpTagInterfaceMethodref {
			return wrapf(ErrPoolKindMismatch, "method handle kind %d requires an InterfaceMethodref at constant pool entry %d", kind, entryIndex)
		}
	}
	return nil
}

// --- Typed accessor family (spec.md §4.C) -----------------------------

func (p *constantPool) utf8At(ix uint16) (string, error) {
	e, err := p.entryAt(ix)
	if err != nil {
		return "", err
	}
	if e.tag != cpTagUtf8 {
		return "", wrapf(ErrPoolKindMismatch, "expected Utf8 at index %d, found tag %d", ix, e.tag)
	}
	return e.utf8, nil
}

func (p *constantPool) classAt(ix uint16) (string, error) {
	e, err := p.entryAt(ix)
	if err != nil {
		return "", err
	}
	if e.tag != cpTagClass {
		return "", wrapf(ErrPoolKindMismatch, "expected Class at index %d, found tag %d", ix, e.tag)
	}
	name, err := p.utf8At(e.idx1)
	if err != nil {
		return "", err
	}
	if !isClassInfoName(name) {
		return "", wrapf(ErrInvalidName, "class name %q at index %d", name, ix)
	}
	return name, nil
}

func (p *constantPool) moduleAt(ix uint16) (string, error) {
	e, err := p.entryAt(ix)
	if err != nil {
		return "", err
	}
	if e.tag != cpTagModule {
		return "", wrapf(ErrPoolKindMismatch, "expected Module at index %d, found tag %d", ix, e.tag)
	}
	return p.utf8At(e.idx1)
}

func (p *constantPool) packageAt(ix uint16) (string, error) {
	e, err := p.entryAt(ix)
	if err != nil {
		return "", err
	}
	if e.tag != cpTagPackage {
		return "", wrapf(ErrPoolKindMismatch, "expected Package at index %d, found tag %d", ix, e.tag)
	}
	return p.utf8At(e.idx1)
}

func (p *constantPool) nameAndTypeAt(ix uint16) (NameAndType, error) {
	e, err := p.entryAt(ix)
	if err != nil {
		return NameAndType{}, err
	}
	if e.tag != cpTagNameAndType {
		return NameAndType{}, wrapf(ErrPoolKindMismatch, "expected NameAndType at index %d, found tag %d", ix, e.tag)
	}
	name, err := p.utf8At(e.idx1)
	if err != nil {
		return NameAndType{}, wrap(err, "name")
	}
	desc, err := p.utf8At(e.idx2)
	if err != nil {
		return NameAndType{}, wrap(err, "descriptor")
	}
	return NameAndType{Name: name, Descriptor: desc}, nil
}

func (p *constantPool) symbolicRefAt(ix uint16, wantTag byte) (SymbolicRef, error) {
	e, err := p.entryAt(ix)
	if err != nil {
		return SymbolicRef{}, err
	}
	if e.tag != wantTag {
		return SymbolicRef{}, wrapf(ErrPoolKindMismatch, "expected tag %d at index %d, found tag %d", wantTag, ix, e.tag)
	}
	className, err := p.classAt(e.idx1)
	if err != nil {
		return SymbolicRef{}, wrap(err, "class")
	}
	nat, err := p.nameAndTypeAt(e.idx2)
	if err != nil {
		return SymbolicRef{}, wrap(err, "name-and-type")
	}
	return SymbolicRef{ClassName: className, NameAndType: nat, IsInterface: wantTag == cpTagInterfaceMethodref}, nil
}

func (p *constantPool) methodHandleAt(ix uint16) (MethodHandle, error) {
	e, err := p.entryAt(ix)
	if err != nil {
		return MethodHandle{}, err
	}
	if e.tag != cpTagMethodHandle {
		return MethodHandle{}, wrapf(ErrPoolKindMismatch, "expected MethodHandle at index %d, found tag %d", ix, e.tag)
	}
	refEntry, err := p.entryAt(e.idx1)
	if err != nil {
		return MethodHandle{}, wrap(err, "reference")
	}
	ref, err := p.symbolicRefAt(e.idx1, refEntry.tag)
	if err != nil {
		return MethodHandle{}, wrap(err, "reference")
	}
	return MethodHandle{Kind: e.refKind, Reference: ref}, nil
}

func (p *constantPool) integerAt(ix uint16) (int32, error) {
	e, err := p.entryAt(ix)
	if err != nil {
		return 0, err
	}
	if e.tag != cpTagInteger {
		return 0, wrapf(ErrPoolKindMismatch, "expected Integer at index %d, found tag %d", ix, e.tag)
	}
	return e.intVal, nil
}

func (p *constantPool) floatAt(ix uint16) (float32, error) {
	e, err := p.entryAt(ix)
	if err != nil {
		return 0, err
	}
	if e.tag != cpTagFloat {
		return 0, wrapf(ErrPoolKindMismatch, "expected Float at index %d, found tag %d", ix, e.tag)
	}
	return e.floatVal, nil
}

func (p *constantPool) longAt(ix uint16) (int64, error) {
	e, err := p.entryAt(ix)
	if err != nil {
		return 0, err
	}
	if e.tag != cpTagLong {
		return 0, wrapf(ErrPoolKindMismatch, "expected Long at index %d, found tag %d", ix, e.tag)
	}
	return e.longVal, nil
}

func (p *constantPool) doubleAt(ix uint16) (float64, error) {
	e, err := p.entryAt(ix)
	if err != nil {
		return 0, err
	}
	if e.tag != cpTagDouble {
		return 0, wrapf(ErrPoolKindMismatch, "expected Double at index %d, found tag %d", ix, e.tag)
	}
	return e.doubleVal, nil
}

// literalConstantAt resolves an Integer/Float/Long/Double/String entry to a
// LiteralConstant, as used by ConstantValue attributes and ldc-family
// instructions.
func (p *constantPool) literalConstantAt(ix uint16) (LiteralConstant, error) {
	e, err := p.entryAt(ix)
	if err != nil {
		return LiteralConstant{}, err
	}
	switch e.tag {
	case cpTagInteger:
		return LiteralConstant{Kind: LiteralInt, Int: e.intVal}, nil
	case cpTagFloat:
		return LiteralConstant{Kind: LiteralFloat, Float: e.floatVal}, nil
	case cpTagLong:
		return LiteralConstant{Kind: LiteralLong, Long: e.longVal}, nil
	case cpTagDouble:
		return LiteralConstant{Kind: LiteralDouble, Double: e.doubleVal}, nil
	case cpTagString:
		s, err := p.utf8At(e.idx1)
		if err != nil {
			return LiteralConstant{}, wrapf(err, "string referent of entry %d", ix)
		}
		return LiteralConstant{Kind: LiteralString, String: s}, nil
	default:
		return LiteralConstant{}, wrapf(ErrPoolKindMismatch, "expected a literal-bearing entry at index %d, found tag %d", ix, e.tag)
	}
}

// bootstrapArgumentAt resolves a pool entry as used inside a
// BootstrapMethods argument list or a CONSTANT_Dynamic static argument:
// Literal | Class | MethodHandle | MethodType | Dynamic.
func (p *constantPool) bootstrapArgumentAt(ix uint16) (BootstrapArgument, error) {
	e, err := p.entryAt(ix)
	if err != nil {
		return BootstrapArgument{}, err
	}
	switch e.tag {
	case cpTagInteger, cpTagFloat, cpTagLong, cpTagDouble, cpTagString:
		lit, err := p.literalConstantAt(ix)
		if err != nil {
			return BootstrapArgument{}, err
		}
		return BootstrapArgument{Kind: BootstrapArgLiteral, Literal: lit}, nil
	case cpTagClass:
		name, err := p.classAt(ix)
		if err != nil {
			return BootstrapArgument{}, err
		}
		return BootstrapArgument{Kind: BootstrapArgClass, ClassName: name}, nil
	case cpTagMethodHandle:
		mh, err := p.methodHandleAt(ix)
		if err != nil {
			return BootstrapArgument{}, err
		}
		return BootstrapArgument{Kind: BootstrapArgMethodHandle, MethodHandle: mh}, nil
	case cpTagMethodType:
		desc, err := p.utf8At(e.idx1)
		if err != nil {
			return BootstrapArgument{}, err
		}
		return BootstrapArgument{Kind: BootstrapArgMethodType, MethodType: desc}, nil
	case cpTagDynamic:
		nat, err := p.nameAndTypeAt(e.idx2)
		if err != nil {
			return BootstrapArgument{}, err
		}
		return BootstrapArgument{Kind: BootstrapArgDynamic, Dynamic: DynamicConstant{BootstrapMethodIndex: e.idx1, NameAndType: nat}}, nil
	default:
		return BootstrapArgument{}, wrapf(ErrPoolKindMismatch, "entry %d (tag %d) is not a legal bootstrap argument", ix, e.tag)
	}
}

// --- Cursor-driven accessor wrappers (spec.md §4.C: "all accessors read a
// u16 from the cursor, then resolve") -----------------------------------

func readCPUtf8(c *cursor, p *constantPool) (string, error) {
	ix, err := c.readU2()
	if err != nil {
		return "", wrap(err, "index")
	}
	return p.utf8At(ix)
}

func readCPUtf8Opt(c *cursor, p *constantPool) (*string, error) {
	ix, err := c.readU2()
	if err != nil {
		return nil, wrap(err, "index")
	}
	if ix == 0 {
		return nil, nil
	}
	s, err := p.utf8At(ix)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func readCPClassInfo(c *cursor, p *constantPool) (string, error) {
	ix, err := c.readU2()
	if err != nil {
		return "", wrap(err, "index")
	}
	return p.classAt(ix)
}

func readCPClassInfoOpt(c *cursor, p *constantPool) (*string, error) {
	ix, err := c.readU2()
	if err != nil {
		return nil, wrap(err, "index")
	}
	if ix == 0 {
		return nil, nil
	}
	s, err := p.classAt(ix)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func readCPNameAndTypeOpt(c *cursor, p *constantPool) (*NameAndType, error) {
	ix, err := c.readU2()
	if err != nil {
		return nil, wrap(err, "index")
	}
	if ix == 0 {
		return nil, nil
	}
	nat, err := p.nameAndTypeAt(ix)
	if err != nil {
		return nil, err
	}
	return &nat, nil
}

func readCPLiteralConstant(c *cursor, p *constantPool) (LiteralConstant, error) {
	ix, err := c.readU2()
	if err != nil {
		return LiteralConstant{}, wrap(err, "index")
	}
	return p.literalConstantAt(ix)
}

func readCPInteger(c *cursor, p *constantPool) (int32, error) {
	ix, err := c.readU2()
	if err != nil {
		return 0, wrap(err, "index")
	}
	return p.integerAt(ix)
}

func readCPFloat(c *cursor, p *constantPool) (float32, error) {
	ix, err := c.readU2()
	if err != nil {
		return 0, wrap(err, "index")
	}
	return p.floatAt(ix)
}

func readCPLong(c *cursor, p *constantPool) (int64, error) {
	ix, err := c.readU2()
	if err != nil {
		return 0, wrap(err, "index")
	}
	return p.longAt(ix)
}

func readCPDouble(c *cursor, p *constantPool) (float64, error) {
	ix, err := c.readU2()
	if err != nil {
		return 0, wrap(err, "index")
	}
	return p.doubleAt(ix)
}

func readCPMethodHandle(c *cursor, p *constantPool) (MethodHandle, error) {
	ix, err := c.readU2()
	if err != nil {
		return MethodHandle{}, wrap(err, "index")
	}
	return p.methodHandleAt(ix)
}

func readCPBootstrapArgument(c *cursor, p *constantPool) (BootstrapArgument, error) {
	ix, err := c.readU2()
	if err != nil {
		return BootstrapArgument{}, wrap(err, "index")
	}
	return p.bootstrapArgumentAt(ix)
}

func readCPModuleInfo(c *cursor, p *constantPool) (string, error) {
	ix, err := c.readU2()
	if err != nil {
		return "", wrap(err, "index")
	}
	return p.moduleAt(ix)
}

func readCPPackageInfo(c *cursor, p *constantPool) (string, error) {
	ix, err := c.readU2()
	if err != nil {
		return "", wrap(err, "index")
	}
	return p.packageAt(ix)
}
