// Copyright 2024 The cafebabe authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

package cafebabe

// Access and property flag bits, fixed by the JVM specification (Table
// 4.1-A and friends). Not every bit is legal in every context; each
// flagSet below documents which subset applies where.
const (
	AccPublic       = 0x0001
	AccPrivate      = 0x0002
	AccProtected    = 0x0004
	AccStatic       = 0x0008
	AccFinal        = 0x0010
	AccSuper        = 0x0020 // classes
	AccSynchronized = 0x0020 // methods, same bit as AccSuper
	AccOpen         = 0x0020 // modules, same bit again
	AccTransitive   = 0x0020 // requires
	AccVolatile     = 0x0040
	AccBridge       = 0x0040
	AccStaticPhase  = 0x0040 // requires
	AccTransient    = 0x0080
	AccVarargs      = 0x0080
	AccNative       = 0x0100
	AccInterface    = 0x0200
	AccAbstract     = 0x0400
	AccStrict       = 0x0800
	AccSynthetic    = 0x1000
	AccAnnotation   = 0x2000
	AccEnum         = 0x4000
	AccModule       = 0x8000
	AccMandated     = 0x8000
)

// flagPolicy controls how accessFlags treats bits outside a set's legal
// mask: strict parsing rejects the class file outright, lenient parsing
// truncates the unknown bits and keeps going. Per spec.md §9, InnerClass
// flag sets parse leniently (real-world class files are known to set
// reserved bits there); every other flag set parses strictly.
type flagPolicy int

const (
	flagStrict flagPolicy = iota
	flagLenient
)

const (
	classFlagsMask           = AccPublic | AccFinal | AccSuper | AccInterface | AccAbstract | AccSynthetic | AccAnnotation | AccEnum | AccModule
	fieldFlagsMask           = AccPublic | AccPrivate | AccProtected | AccStatic | AccFinal | AccVolatile | AccTransient | AccSynthetic | AccEnum
	methodFlagsMask          = AccPublic | AccPrivate | AccProtected | AccStatic | AccFinal | AccSynchronized | AccBridge | AccVarargs | AccNative | AccAbstract | AccStrict | AccSynthetic
	innerClassFlagsMask      = AccPublic | AccPrivate | AccProtected | AccStatic | AccFinal | AccInterface | AccAbstract | AccSynthetic | AccAnnotation | AccEnum
	methodParameterFlagsMask = AccFinal | AccSynthetic | AccMandated
	moduleFlagsMask          = AccOpen | AccSynthetic | AccMandated
	requiresFlagsMask        = AccTransitive | AccStaticPhase | AccSynthetic | AccMandated
	exportsOpensFlagsMask    = AccSynthetic | AccMandated
)

// accessFlags parses a raw u2 access_flags value against mask, rejecting
// (strict) or truncating (lenient) bits outside it.
func accessFlags(raw uint16, mask uint16, policy flagPolicy) (uint16, error) {
	extra := raw &^ mask
	if extra != 0 {
		if policy == flagStrict {
			return 0, wrapf(ErrInvalidFlags, "unrecognized bits 0x%04x (raw 0x%04x, mask 0x%04x)", extra, raw, mask)
		}
		return raw & mask, nil
	}
	return raw, nil
}

func readClassAccessFlags(c *cursor) (uint16, error) {
	raw, err := c.readU2()
	if err != nil {
		return 0, wrap(err, "access_flags")
	}
	return accessFlags(raw, classFlagsMask, flagStrict)
}

func readFieldAccessFlags(c *cursor) (uint16, error) {
	raw, err := c.readU2()
	if err != nil {
		return 0, wrap(err, "access_flags")
	}
	return accessFlags(raw, fieldFlagsMask, flagStrict)
}

func readMethodAccessFlags(c *cursor) (uint16, error) {
	raw, err := c.readU2()
	if err != nil {
		return 0, wrap(err, "access_flags")
	}
	return accessFlags(raw, methodFlagsMask, flagStrict)
}

func readInnerClassAccessFlags(c *cursor) (uint16, error) {
	raw, err := c.readU2()
	if err != nil {
		return 0, wrap(err, "inner_class_access_flags")
	}
	return accessFlags(raw, innerClassFlagsMask, flagLenient)
}

func readMethodParameterAccessFlags(c *cursor) (uint16, error) {
	raw, err := c.readU2()
	if err != nil {
		return 0, wrap(err, "access_flags")
	}
	return accessFlags(raw, methodParameterFlagsMask, flagStrict)
}

func readModuleFlags(c *cursor) (uint16, error) {
	raw, err := c.readU2()
	if err != nil {
		return 0, wrap(err, "module_flags")
	}
	return accessFlags(raw, moduleFlagsMask, flagStrict)
}

func readRequiresFlags(c *cursor) (uint16, error) {
	raw, err := c.readU2()
	if err != nil {
		return 0, wrap(err, "requires_flags")
	}
	return accessFlags(raw, requiresFlagsMask, flagStrict)
}

func readExportsFlags(c *cursor) (uint16, error) {
	raw, err := c.readU2()
	if err != nil {
		return 0, wrap(err, "exports_flags")
	}
	return accessFlags(raw, exportsOpensFlagsMask, flagStrict)
}

func readOpensFlags(c *cursor) (uint16, error) {
	raw, err := c.readU2()
	if err != nil {
		return 0, wrap(err, "opens_flags")
	}
	return accessFlags(raw, exportsOpensFlagsMask, flagStrict)
}

func hasFlag(flags uint16, bit int) bool {
	return flags&uint16(bit) != 0
}
