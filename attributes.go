// Copyright 2024 The cafebabe authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

package cafebabe

// ExceptionTableEntry is one row of a Code attribute's exception table.
type ExceptionTableEntry struct {
	StartPC   uint16
	EndPC     uint16
	HandlerPC uint16
	CatchType *string
}

// CodeData is the decoded body of a Code attribute.
type CodeData struct {
	MaxStack       uint16
	MaxLocals      uint16
	Code           []byte
	Bytecode       *ByteCode // non-nil only when Options.ParseBytecode is set
	ExceptionTable []ExceptionTableEntry
	Attributes     []AttributeInfo
}

// VerificationKind discriminates VerificationType.
type VerificationKind int

const (
	VerificationTop VerificationKind = iota
	VerificationInteger
	VerificationFloat
	VerificationLong
	VerificationDouble
	VerificationNull
	VerificationUninitializedThis
	VerificationUninitialized
	VerificationObject
)

// VerificationType is one stack-map verification type entry.
type VerificationType struct {
	Kind       VerificationKind
	ClassName  string // populated only for VerificationObject
	CodeOffset uint16 // populated only for VerificationUninitialized
}

// StackMapKind discriminates StackMapEntry.
type StackMapKind int

const (
	StackMapSame StackMapKind = iota
	StackMapSameLocals1StackItem
	StackMapChop
	StackMapAppend
	StackMapFullFrame
)

// StackMapEntry is one frame of a StackMapTable attribute.
type StackMapEntry struct {
	Kind        StackMapKind
	OffsetDelta uint16
	ChopCount   uint16             // StackMapChop only
	Stack       VerificationType   // StackMapSameLocals1StackItem only
	Locals      []VerificationType // StackMapAppend, StackMapFullFrame
	FullStack   []VerificationType // StackMapFullFrame only
}

// InnerClassEntry is one row of an InnerClasses attribute.
type InnerClassEntry struct {
	InnerClassInfo string
	OuterClassInfo *string
	InnerName      *string
	AccessFlags    uint16
}

// LineNumberEntry is one row of a LineNumberTable attribute.
type LineNumberEntry struct {
	StartPC    uint16
	LineNumber uint16
}

// LocalVariableEntry is one row of a LocalVariableTable attribute.
type LocalVariableEntry struct {
	StartPC    uint16
	Length     uint16
	Name       string
	Descriptor string
	Index      uint16
}

// LocalVariableTypeEntry is one row of a LocalVariableTypeTable attribute.
type LocalVariableTypeEntry struct {
	StartPC   uint16
	Length    uint16
	Name      string
	Signature string
	Index     uint16
}

// AnnotationElementKind discriminates AnnotationElementValue.
type AnnotationElementKind int

const (
	ElementByte AnnotationElementKind = iota
	ElementChar
	ElementDouble
	ElementFloat
	ElementInt
	ElementLong
	ElementShort
	ElementBoolean
	ElementString
	ElementEnum
	ElementClass
	ElementAnnotation
	ElementArray
)

// AnnotationElementValue is one value in an annotation's element map, or one
// element of an ArrayValue, or an AnnotationDefault payload.
type AnnotationElementValue struct {
	Kind int32 // AnnotationElementKind
	// IntValue backs Byte/Char/Int/Short/Boolean, all of which the class
	// file encodes as a 4-byte Integer pool entry.
	IntValue    int32
	LongValue   int64
	FloatValue  float32
	DoubleValue float64
	StringValue string // ElementString

	EnumTypeName  string // ElementEnum
	EnumConstName string // ElementEnum
	ClassName     string // ElementClass, a return descriptor

	Annotation *Annotation              // ElementAnnotation
	Array      []AnnotationElementValue // ElementArray
}

// AnnotationElement is one name/value pair of an Annotation.
type AnnotationElement struct {
	Name  string
	Value AnnotationElementValue
}

// Annotation is a single RuntimeVisible/InvisibleAnnotations entry.
type Annotation struct {
	TypeDescriptor string
	Elements       []AnnotationElement
}

// ParameterAnnotation is one parameter's annotation list within a
// RuntimeVisible/InvisibleParameterAnnotations attribute.
type ParameterAnnotation struct {
	Annotations []Annotation
}

// TypeAnnotationLocalVarEntry is one entry of a LocalVar type-annotation target.
type TypeAnnotationLocalVarEntry struct {
	StartPC uint16
	Length  uint16
	Index   uint16
}

// TypeAnnotationTargetKind discriminates TypeAnnotationTarget.
type TypeAnnotationTargetKind int

const (
	TargetTypeParameter TypeAnnotationTargetKind = iota
	TargetSupertype
	TargetTypeParameterBound
	TargetEmpty
	TargetFormalParameter
	TargetThrows
	TargetLocalVar
	TargetCatch
	TargetOffset
	TargetTypeArgument
)

// TypeAnnotationTarget is the target_type/target_info pair of a type
// annotation, dispatched on the raw target_type byte (JVM spec §4.7.20.1).
type TypeAnnotationTarget struct {
	Kind                TypeAnnotationTargetKind
	Index               uint8  // TargetTypeParameter, TargetFormalParameter
	SupertypeIndex      uint16 // TargetSupertype
	TypeParameterIndex  uint8  // TargetTypeParameterBound
	BoundIndex          uint8  // TargetTypeParameterBound
	ThrowsIndex         uint16 // TargetThrows
	LocalVar            []TypeAnnotationLocalVarEntry
	ExceptionTableIndex uint16 // TargetCatch
	Offset              uint16 // TargetOffset, TargetTypeArgument
	TypeArgumentIndex   uint8  // TargetTypeArgument
}

// TypeAnnotationPathKind discriminates one element of a type_path.
type TypeAnnotationPathKind int

const (
	PathDeeperArray TypeAnnotationPathKind = iota
	PathDeeperNested
	PathWildcardTypeArgument
	PathTypeArgument
)

// TypeAnnotationPathEntry is one element of a type annotation's target_path.
type TypeAnnotationPathEntry struct {
	PathKind      TypeAnnotationPathKind
	ArgumentIndex uint8
}

// TypeAnnotation is one RuntimeVisible/InvisibleTypeAnnotations entry.
type TypeAnnotation struct {
	TargetType TypeAnnotationTarget
	TargetPath []TypeAnnotationPathEntry
	Annotation Annotation
}

// BootstrapMethodEntry is one row of a BootstrapMethods attribute.
type BootstrapMethodEntry struct {
	Method    MethodHandle
	Arguments []BootstrapArgument
}

// MethodParameterEntry is one row of a MethodParameters attribute.
type MethodParameterEntry struct {
	Name        *string
	AccessFlags uint16
}

// ModuleRequireEntry is one `requires` row of a Module attribute.
type ModuleRequireEntry struct {
	Name    string
	Flags   uint16
	Version *string
}

// ModuleExportsEntry is one `exports` row of a Module attribute.
type ModuleExportsEntry struct {
	PackageName string
	Flags       uint16
	ExportsTo   []string
}

// ModuleOpensEntry is one `opens` row of a Module attribute.
type ModuleOpensEntry struct {
	PackageName string
	Flags       uint16
	OpensTo     []string
}

// ModuleProvidesEntry is one `provides` row of a Module attribute.
type ModuleProvidesEntry struct {
	ServiceInterfaceName string
	ProvidesWith         []string
}

// ModuleData is the decoded body of a Module attribute.
type ModuleData struct {
	Name        string
	AccessFlags uint16
	Version     *string
	Requires    []ModuleRequireEntry
	Exports     []ModuleExportsEntry
	Opens       []ModuleOpensEntry
	Uses        []string
	Provides    []ModuleProvidesEntry
}

// RecordComponentEntry is one component of a Record attribute.
type RecordComponentEntry struct {
	Name       string
	Descriptor string
	Attributes []AttributeInfo
}

// AttributeData is the sum of all recognized attribute payload kinds, plus
// Other for anything this package does not recognize by name (preserved
// verbatim so round-trip-style tooling built on this package can still see
// it, even though cafebabe never re-emits class files itself).
type AttributeData interface {
	isAttributeData()
}

type ConstantValueAttribute struct{ Value LiteralConstant }
type CodeAttribute struct{ Data CodeData }
type StackMapTableAttribute struct{ Entries []StackMapEntry }
type ExceptionsAttribute struct{ Exceptions []string }
type InnerClassesAttribute struct{ Entries []InnerClassEntry }
type EnclosingMethodAttribute struct {
	ClassName string
	Method    *NameAndType
}
type SyntheticAttribute struct{}
type SignatureAttribute struct{ Signature string }
type SourceFileAttribute struct{ SourceFile string }
type SourceDebugExtensionAttribute struct{ Value string }
type LineNumberTableAttribute struct{ Entries []LineNumberEntry }
type LocalVariableTableAttribute struct{ Entries []LocalVariableEntry }
type LocalVariableTypeTableAttribute struct{ Entries []LocalVariableTypeEntry }
type DeprecatedAttribute struct{}
type RuntimeVisibleAnnotationsAttribute struct{ Annotations []Annotation }
type RuntimeInvisibleAnnotationsAttribute struct{ Annotations []Annotation }
type RuntimeVisibleParameterAnnotationsAttribute struct{ Parameters []ParameterAnnotation }
type RuntimeInvisibleParameterAnnotationsAttribute struct{ Parameters []ParameterAnnotation }
type RuntimeVisibleTypeAnnotationsAttribute struct{ Annotations []TypeAnnotation }
type RuntimeInvisibleTypeAnnotationsAttribute struct{ Annotations []TypeAnnotation }
type AnnotationDefaultAttribute struct{ Value AnnotationElementValue }
type BootstrapMethodsAttribute struct{ Entries []BootstrapMethodEntry }
type MethodParametersAttribute struct{ Entries []MethodParameterEntry }
type ModuleAttribute struct{ Data ModuleData }
type ModulePackagesAttribute struct{ Packages []string }
type ModuleMainClassAttribute struct{ MainClass string }
type NestHostAttribute struct{ HostClass string }
type NestMembersAttribute struct{ Members []string }
type RecordAttribute struct{ Components []RecordComponentEntry }
type OtherAttribute struct{ Bytes []byte }

func (ConstantValueAttribute) isAttributeData()                        {}
func (CodeAttribute) isAttributeData()                                 {}
func (StackMapTableAttribute) isAttributeData()                        {}
func (ExceptionsAttribute) isAttributeData()                           {}
func (InnerClassesAttribute) isAttributeData()                         {}
func (EnclosingMethodAttribute) isAttributeData()                      {}
func (SyntheticAttribute) isAttributeData()                            {}
func (SignatureAttribute) isAttributeData()                            {}
func (SourceFileAttribute) isAttributeData()                           {}
func (SourceDebugExtensionAttribute) isAttributeData()                 {}
func (LineNumberTableAttribute) isAttributeData()                      {}
func (LocalVariableTableAttribute) isAttributeData()                   {}
func (LocalVariableTypeTableAttribute) isAttributeData()               {}
func (DeprecatedAttribute) isAttributeData()                           {}
func (RuntimeVisibleAnnotationsAttribute) isAttributeData()            {}
func (RuntimeInvisibleAnnotationsAttribute) isAttributeData()          {}
func (RuntimeVisibleParameterAnnotationsAttribute) isAttributeData()   {}
func (RuntimeInvisibleParameterAnnotationsAttribute) isAttributeData() {}
func (RuntimeVisibleTypeAnnotationsAttribute) isAttributeData()        {}
func (RuntimeInvisibleTypeAnnotationsAttribute) isAttributeData()      {}
func (AnnotationDefaultAttribute) isAttributeData()                    {}
func (BootstrapMethodsAttribute) isAttributeData()                     {}
func (MethodParametersAttribute) isAttributeData()                     {}
func (ModuleAttribute) isAttributeData()                               {}
func (ModulePackagesAttribute) isAttributeData()                       {}
func (ModuleMainClassAttribute) isAttributeData()                      {}
func (NestHostAttribute) isAttributeData()                             {}
func (NestMembersAttribute) isAttributeData()                          {}
func (RecordAttribute) isAttributeData()                               {}
func (OtherAttribute) isAttributeData()                                {}

// AttributeInfo pairs an attribute's name (always a Utf8 pool reference)
// with its decoded payload.
type AttributeInfo struct {
	Name string
	Data AttributeData
}

// attrContext threads the constant pool, parse options, and a recursion
// depth counter through the attribute dispatcher. Code and Record
// attributes recurse back into readAttributes for their nested attribute
// lists; maxDepth (Options.MaxAttributeDepth) bounds that recursion so a
// maliciously (or fuzzer-) crafted file cannot exhaust the stack.
type attrContext struct {
	pool     *constantPool
	opts     *Options
	depth    uint32
	maxDepth uint32
}

func ensureLength(length, expected int) error {
	if length != expected {
		return wrapf(ErrLengthMismatch, "expected length %d, found %d", expected, length)
	}
	return nil
}

func readAttributes(c *cursor, ctx *attrContext) ([]AttributeInfo, error) {
	if ctx.depth > ctx.maxDepth {
		return nil, wrapf(ErrLengthMismatch, "attribute nesting exceeds maximum depth %d", ctx.maxDepth)
	}
	count, err := c.readU2()
	if err != nil {
		return nil, wrap(err, "attributes count")
	}
	attrs := make([]AttributeInfo, 0, count)
	for i := 0; i < int(count); i++ {
		name, err := readCPUtf8(c, ctx.pool)
		if err != nil {
			return nil, wrapf(err, "name field of attribute %d", i)
		}
		length, err := c.readU4()
		if err != nil {
			return nil, wrapf(err, "length field of attribute %d", i)
		}
		expectedEnd := c.pos() + int(length)
		if expectedEnd > len(c.bytes) {
			return nil, wrapf(ErrUnexpectedEnd, "attribute %d body", i)
		}
		data, err := readAttributeData(c, ctx, name, int(length), i)
		if err != nil {
			return nil, wrapf(err, "%s attribute %d", name, i)
		}
		if c.pos() != expectedEnd {
			return nil, wrapf(ErrLengthMismatch, "%s attribute %d", name, i)
		}
		attrs = append(attrs, AttributeInfo{Name: name, Data: data})
	}
	return attrs, nil
}

func readAttributeData(c *cursor, ctx *attrContext, name string, length int, i int) (AttributeData, error) {
	switch name {
	case "ConstantValue":
		if err := ensureLength(length, 2); err != nil {
			return nil, err
		}
		v, err := readCPLiteralConstant(c, ctx.pool)
		if err != nil {
			return nil, wrap(err, "value field")
		}
		return ConstantValueAttribute{Value: v}, nil

	case "Code":
		data, err := readCodeData(c, ctx)
		if err != nil {
			return nil, err
		}
		return CodeAttribute{Data: data}, nil

	case "StackMapTable":
		entries, err := readStackMapTableData(c, ctx.pool)
		if err != nil {
			return nil, err
		}
		return StackMapTableAttribute{Entries: entries}, nil

	case "Exceptions":
		exceptions, err := readExceptionsData(c, ctx.pool)
		if err != nil {
			return nil, err
		}
		return ExceptionsAttribute{Exceptions: exceptions}, nil

	case "InnerClasses":
		entries, err := readInnerClassesData(c, ctx.pool)
		if err != nil {
			return nil, err
		}
		return InnerClassesAttribute{Entries: entries}, nil

	case "EnclosingMethod":
		if err := ensureLength(length, 4); err != nil {
			return nil, err
		}
		className, err := readCPClassInfo(c, ctx.pool)
		if err != nil {
			return nil, wrap(err, "class info field")
		}
		method, err := readCPNameAndTypeOpt(c, ctx.pool)
		if err != nil {
			return nil, wrap(err, "method field")
		}
		return EnclosingMethodAttribute{ClassName: className, Method: method}, nil

	case "Synthetic":
		if err := ensureLength(length, 0); err != nil {
			return nil, err
		}
		return SyntheticAttribute{}, nil

	case "Signature":
		if err := ensureLength(length, 2); err != nil {
			return nil, err
		}
		// TODO: validate generic signature grammar (JVM spec §4.7.9.1).
		sig, err := readCPUtf8(c, ctx.pool)
		if err != nil {
			return nil, wrap(err, "signature field")
		}
		return SignatureAttribute{Signature: sig}, nil

	case "SourceFile":
		if err := ensureLength(length, 2); err != nil {
			return nil, err
		}
		sf, err := readCPUtf8(c, ctx.pool)
		if err != nil {
			return nil, wrap(err, "sourcefile field")
		}
		return SourceFileAttribute{SourceFile: sf}, nil

	case "SourceDebugExtension":
		raw, err := c.slice(length)
		if err != nil {
			return nil, wrap(err, "modified UTF-8 data")
		}
		// The debug extension is free text, not a Utf8 constant pool entry,
		// but it still uses modified UTF-8 encoding (JVM spec §4.7.11).
		s, err := decodeModifiedUTF8(raw)
		if err != nil {
			return nil, wrap(err, "modified UTF-8 data")
		}
		return SourceDebugExtensionAttribute{Value: s}, nil

	case "LineNumberTable":
		entries, err := readLineNumberData(c)
		if err != nil {
			return nil, err
		}
		return LineNumberTableAttribute{Entries: entries}, nil

	case "LocalVariableTable":
		entries, err := readLocalVariableData(c, ctx.pool)
		if err != nil {
			return nil, err
		}
		return LocalVariableTableAttribute{Entries: entries}, nil

	case "LocalVariableTypeTable":
		entries, err := readLocalVariableTypeData(c, ctx.pool)
		if err != nil {
			return nil, err
		}
		return LocalVariableTypeTableAttribute{Entries: entries}, nil

	case "Deprecated":
		if err := ensureLength(length, 0); err != nil {
			return nil, err
		}
		return DeprecatedAttribute{}, nil

	case "RuntimeVisibleAnnotations":
		a, err := readAnnotationListData(c, ctx.pool)
		if err != nil {
			return nil, err
		}
		return RuntimeVisibleAnnotationsAttribute{Annotations: a}, nil

	case "RuntimeInvisibleAnnotations":
		a, err := readAnnotationListData(c, ctx.pool)
		if err != nil {
			return nil, err
		}
		return RuntimeInvisibleAnnotationsAttribute{Annotations: a}, nil

	case "RuntimeVisibleParameterAnnotations":
		p, err := readParameterAnnotationData(c, ctx.pool)
		if err != nil {
			return nil, err
		}
		return RuntimeVisibleParameterAnnotationsAttribute{Parameters: p}, nil

	case "RuntimeInvisibleParameterAnnotations":
		p, err := readParameterAnnotationData(c, ctx.pool)
		if err != nil {
			return nil, err
		}
		return RuntimeInvisibleParameterAnnotationsAttribute{Parameters: p}, nil

	case "RuntimeVisibleTypeAnnotations":
		a, err := readTypeAnnotationData(c, ctx.pool)
		if err != nil {
			return nil, err
		}
		return RuntimeVisibleTypeAnnotationsAttribute{Annotations: a}, nil

	case "RuntimeInvisibleTypeAnnotations":
		a, err := readTypeAnnotationData(c, ctx.pool)
		if err != nil {
			return nil, err
		}
		return RuntimeInvisibleTypeAnnotationsAttribute{Annotations: a}, nil

	case "AnnotationDefault":
		v, err := readAnnotationElementValue(c, ctx.pool)
		if err != nil {
			return nil, err
		}
		return AnnotationDefaultAttribute{Value: v}, nil

	case "BootstrapMethods":
		entries, err := readBootstrapMethodsData(c, ctx.pool)
		if err != nil {
			return nil, err
		}
		return BootstrapMethodsAttribute{Entries: entries}, nil

	case "MethodParameters":
		entries, err := readMethodParametersData(c, ctx.pool)
		if err != nil {
			return nil, err
		}
		return MethodParametersAttribute{Entries: entries}, nil

	case "Module":
		m, err := readModuleData(c, ctx.pool)
		if err != nil {
			return nil, err
		}
		return ModuleAttribute{Data: m}, nil

	case "ModulePackages":
		pkgs, err := readModulePackagesData(c, ctx.pool)
		if err != nil {
			return nil, err
		}
		return ModulePackagesAttribute{Packages: pkgs}, nil

	case "ModuleMainClass":
		if err := ensureLength(length, 2); err != nil {
			return nil, err
		}
		mc, err := readCPClassInfo(c, ctx.pool)
		if err != nil {
			return nil, err
		}
		return ModuleMainClassAttribute{MainClass: mc}, nil

	case "NestHost":
		if err := ensureLength(length, 2); err != nil {
			return nil, err
		}
		host, err := readCPClassInfo(c, ctx.pool)
		if err != nil {
			return nil, err
		}
		return NestHostAttribute{HostClass: host}, nil

	case "NestMembers":
		members, err := readClassInfoListData(c, ctx.pool)
		if err != nil {
			return nil, err
		}
		return NestMembersAttribute{Members: members}, nil

	case "Record":
		components, err := readRecordData(c, ctx)
		if err != nil {
			return nil, err
		}
		return RecordAttribute{Components: components}, nil

	default:
		raw, err := c.slice(length)
		if err != nil {
			return nil, err
		}
		cp := make([]byte, len(raw))
		copy(cp, raw)
		return OtherAttribute{Bytes: cp}, nil
	}
}

func readCodeData(c *cursor, ctx *attrContext) (CodeData, error) {
	maxStack, err := c.readU2()
	if err != nil {
		return CodeData{}, wrap(err, "max_stack")
	}
	maxLocals, err := c.readU2()
	if err != nil {
		return CodeData{}, wrap(err, "max_locals")
	}
	codeLength, err := c.readU4()
	if err != nil {
		return CodeData{}, wrap(err, "code_length")
	}
	code, err := c.slice(int(codeLength))
	if err != nil {
		return CodeData{}, wrap(err, "code")
	}
	codeCopy := make([]byte, len(code))
	copy(codeCopy, code)

	exceptionTableCount, err := c.readU2()
	if err != nil {
		return CodeData{}, wrap(err, "exception_table_length")
	}
	exceptionTable := make([]ExceptionTableEntry, 0, exceptionTableCount)
	for i := 0; i < int(exceptionTableCount); i++ {
		startPC, err := c.readU2()
		if err != nil {
			return CodeData{}, wrapf(err, "start_pc of exception table entry %d", i)
		}
		endPC, err := c.readU2()
		if err != nil {
			return CodeData{}, wrapf(err, "end_pc of exception table entry %d", i)
		}
		handlerPC, err := c.readU2()
		if err != nil {
			return CodeData{}, wrapf(err, "handler_pc of exception table entry %d", i)
		}
		catchType, err := readCPClassInfoOpt(c, ctx.pool)
		if err != nil {
			return CodeData{}, wrapf(err, "catch type of exception table entry %d", i)
		}
		exceptionTable = append(exceptionTable, ExceptionTableEntry{
			StartPC: startPC, EndPC: endPC, HandlerPC: handlerPC, CatchType: catchType,
		})
	}

	childCtx := &attrContext{pool: ctx.pool, opts: ctx.opts, depth: ctx.depth + 1, maxDepth: ctx.maxDepth}
	codeAttrs, err := readAttributes(c, childCtx)
	if err != nil {
		return CodeData{}, wrap(err, "code attribute")
	}

	var bytecode *ByteCode
	if ctx.opts.ParseBytecode {
		bc, err := decodeBytecode(codeCopy, ctx.pool)
		if err != nil {
			return CodeData{}, wrap(err, "bytecode")
		}
		bytecode = bc
	}

	return CodeData{
		MaxStack:       maxStack,
		MaxLocals:      maxLocals,
		Code:           codeCopy,
		Bytecode:       bytecode,
		ExceptionTable: exceptionTable,
		Attributes:     codeAttrs,
	}, nil
}

func readVerificationType(c *cursor, pool *constantPool) (VerificationType, error) {
	tag, err := c.readU1()
	if err != nil {
		return VerificationType{}, wrap(err, "verification type tag")
	}
	switch tag {
	case 0:
		return VerificationType{Kind: VerificationTop}, nil
	case 1:
		return VerificationType{Kind: VerificationInteger}, nil
	case 2:
		return VerificationType{Kind: VerificationFloat}, nil
	case 3:
		return VerificationType{Kind: VerificationDouble}, nil
	case 4:
		return VerificationType{Kind: VerificationLong}, nil
	case 5:
		return VerificationType{Kind: VerificationNull}, nil
	case 6:
		return VerificationType{Kind: VerificationUninitializedThis}, nil
	case 7:
		className, err := readCPClassInfo(c, pool)
		if err != nil {
			return VerificationType{}, wrap(err, "object verification type")
		}
		return VerificationType{Kind: VerificationObject, ClassName: className}, nil
	case 8:
		offset, err := c.readU2()
		if err != nil {
			return VerificationType{}, wrap(err, "uninitialized verification type")
		}
		return VerificationType{Kind: VerificationUninitialized, CodeOffset: offset}, nil
	default:
		return VerificationType{}, wrapf(ErrUnrecognizedDiscriminant, "verification type %d", tag)
	}
}

func readStackMapTableData(c *cursor, pool *constantPool) ([]StackMapEntry, error) {
	count, err := c.readU2()
	if err != nil {
		return nil, wrap(err, "number_of_entries")
	}
	entries := make([]StackMapEntry, 0, count)
	for i := 0; i < int(count); i++ {
		tag, err := c.readU1()
		if err != nil {
			return nil, wrapf(err, "frame_type of stack map entry %d", i)
		}
		var entry StackMapEntry
		switch {
		case tag <= 63:
			entry = StackMapEntry{Kind: StackMapSame, OffsetDelta: uint16(tag)}
		case tag <= 127:
			stack, err := readVerificationType(c, pool)
			if err != nil {
				return nil, wrapf(err, "same_locals_1_stack_item_frame stack map entry %d", i)
			}
			entry = StackMapEntry{Kind: StackMapSameLocals1StackItem, OffsetDelta: uint16(tag - 64), Stack: stack}
		case tag <= 246:
			return nil, wrapf(ErrUnrecognizedDiscriminant, "frame_type %d of stack map entry %d", tag, i)
		case tag == 247:
			offsetDelta, err := c.readU2()
			if err != nil {
				return nil, wrapf(err, "offset_delta of stack map entry %d", i)
			}
			stack, err := readVerificationType(c, pool)
			if err != nil {
				return nil, wrapf(err, "same_locals_1_stack_item_frame_extended stack map entry %d", i)
			}
			entry = StackMapEntry{Kind: StackMapSameLocals1StackItem, OffsetDelta: offsetDelta, Stack: stack}
		case tag <= 250:
			offsetDelta, err := c.readU2()
			if err != nil {
				return nil, wrapf(err, "offset_delta of stack map entry %d", i)
			}
			entry = StackMapEntry{Kind: StackMapChop, OffsetDelta: offsetDelta, ChopCount: uint16(251 - tag)}
		case tag == 251:
			offsetDelta, err := c.readU2()
			if err != nil {
				return nil, wrapf(err, "offset_delta of stack map entry %d", i)
			}
			entry = StackMapEntry{Kind: StackMapSame, OffsetDelta: offsetDelta}
		case tag <= 254:
			offsetDelta, err := c.readU2()
			if err != nil {
				return nil, wrapf(err, "offset_delta of stack map entry %d", i)
			}
			verificationCount := int(tag - 251)
			locals := make([]VerificationType, 0, verificationCount)
			for j := 0; j < verificationCount; j++ {
				v, err := readVerificationType(c, pool)
				if err != nil {
					return nil, wrapf(err, "local entry %d of append stack map entry %d", j, i)
				}
				locals = append(locals, v)
			}
			entry = StackMapEntry{Kind: StackMapAppend, OffsetDelta: offsetDelta, Locals: locals}
		default: // 255
			offsetDelta, err := c.readU2()
			if err != nil {
				return nil, wrapf(err, "offset_delta of stack map entry %d", i)
			}
			localsCount, err := c.readU2()
			if err != nil {
				return nil, wrapf(err, "number_of_locals of stack map entry %d", i)
			}
			locals := make([]VerificationType, 0, localsCount)
			for j := 0; j < int(localsCount); j++ {
				v, err := readVerificationType(c, pool)
				if err != nil {
					return nil, wrapf(err, "local entry %d of full-frame stack map entry %d", j, i)
				}
				locals = append(locals, v)
			}
			stackCount, err := c.readU2()
			if err != nil {
				return nil, wrapf(err, "number_of_stack_items of stack map entry %d", i)
			}
			stack := make([]VerificationType, 0, stackCount)
			for j := 0; j < int(stackCount); j++ {
				v, err := readVerificationType(c, pool)
				if err != nil {
					return nil, wrapf(err, "stack entry %d of full-frame stack map entry %d", j, i)
				}
				stack = append(stack, v)
			}
			entry = StackMapEntry{Kind: StackMapFullFrame, OffsetDelta: offsetDelta, Locals: locals, FullStack: stack}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func readExceptionsData(c *cursor, pool *constantPool) ([]string, error) {
	return readClassInfoListData(c, pool)
}

func readClassInfoListData(c *cursor, pool *constantPool) ([]string, error) {
	count, err := c.readU2()
	if err != nil {
		return nil, wrap(err, "count")
	}
	out := make([]string, 0, count)
	for i := 0; i < int(count); i++ {
		name, err := readCPClassInfo(c, pool)
		if err != nil {
			return nil, wrapf(err, "entry %d", i)
		}
		out = append(out, name)
	}
	return out, nil
}

func readInnerClassesData(c *cursor, pool *constantPool) ([]InnerClassEntry, error) {
	count, err := c.readU2()
	if err != nil {
		return nil, wrap(err, "number_of_classes")
	}
	out := make([]InnerClassEntry, 0, count)
	for i := 0; i < int(count); i++ {
		innerClassInfo, err := readCPClassInfo(c, pool)
		if err != nil {
			return nil, wrapf(err, "inner class info for inner class %d", i)
		}
		outerClassInfo, err := readCPClassInfoOpt(c, pool)
		if err != nil {
			return nil, wrapf(err, "outer class info for inner class %d", i)
		}
		innerName, err := readCPUtf8Opt(c, pool)
		if err != nil {
			return nil, wrapf(err, "inner name for inner class %d", i)
		}
		flags, err := readInnerClassAccessFlags(c)
		if err != nil {
			return nil, wrapf(err, "access flags for inner class %d", i)
		}
		out = append(out, InnerClassEntry{
			InnerClassInfo: innerClassInfo, OuterClassInfo: outerClassInfo, InnerName: innerName, AccessFlags: flags,
		})
	}
	return out, nil
}

func readLineNumberData(c *cursor) ([]LineNumberEntry, error) {
	count, err := c.readU2()
	if err != nil {
		return nil, wrap(err, "line_number_table_length")
	}
	out := make([]LineNumberEntry, 0, count)
	for i := 0; i < int(count); i++ {
		startPC, err := c.readU2()
		if err != nil {
			return nil, wrapf(err, "start_pc of line number entry %d", i)
		}
		lineNumber, err := c.readU2()
		if err != nil {
			return nil, wrapf(err, "line_number of line number entry %d", i)
		}
		out = append(out, LineNumberEntry{StartPC: startPC, LineNumber: lineNumber})
	}
	return out, nil
}

func readLocalVariableData(c *cursor, pool *constantPool) ([]LocalVariableEntry, error) {
	count, err := c.readU2()
	if err != nil {
		return nil, wrap(err, "local_variable_table_length")
	}
	out := make([]LocalVariableEntry, 0, count)
	for i := 0; i < int(count); i++ {
		startPC, err := c.readU2()
		if err != nil {
			return nil, wrapf(err, "start_pc for variable %d", i)
		}
		length, err := c.readU2()
		if err != nil {
			return nil, wrapf(err, "length for variable %d", i)
		}
		name, err := readCPUtf8(c, pool)
		if err != nil {
			return nil, wrapf(err, "name for variable %d", i)
		}
		if !isUnqualifiedName(name, false, false) {
			return nil, wrapf(ErrInvalidName, "variable %d", i)
		}
		descriptor, err := readCPUtf8(c, pool)
		if err != nil {
			return nil, wrapf(err, "descriptor for variable %d", i)
		}
		if !isFieldDescriptor(descriptor) {
			return nil, wrapf(ErrInvalidDescriptor, "variable %d", i)
		}
		index, err := c.readU2()
		if err != nil {
			return nil, wrapf(err, "index for variable %d", i)
		}
		out = append(out, LocalVariableEntry{StartPC: startPC, Length: length, Name: name, Descriptor: descriptor, Index: index})
	}
	return out, nil
}

func readLocalVariableTypeData(c *cursor, pool *constantPool) ([]LocalVariableTypeEntry, error) {
	count, err := c.readU2()
	if err != nil {
		return nil, wrap(err, "local_variable_type_table_length")
	}
	out := make([]LocalVariableTypeEntry, 0, count)
	for i := 0; i < int(count); i++ {
		startPC, err := c.readU2()
		if err != nil {
			return nil, wrapf(err, "start_pc for variable %d", i)
		}
		length, err := c.readU2()
		if err != nil {
			return nil, wrapf(err, "length for variable %d", i)
		}
		name, err := readCPUtf8(c, pool)
		if err != nil {
			return nil, wrapf(err, "name for variable %d", i)
		}
		if !isUnqualifiedName(name, false, false) {
			return nil, wrapf(ErrInvalidName, "variable %d", i)
		}
		signature, err := readCPUtf8(c, pool)
		if err != nil {
			return nil, wrapf(err, "signature for variable %d", i)
		}
		index, err := c.readU2()
		if err != nil {
			return nil, wrapf(err, "index for variable %d", i)
		}
		out = append(out, LocalVariableTypeEntry{StartPC: startPC, Length: length, Name: name, Signature: signature, Index: index})
	}
	return out, nil
}

func readAnnotationElementValue(c *cursor, pool *constantPool) (AnnotationElementValue, error) {
	tag, err := c.readU1()
	if err != nil {
		return AnnotationElementValue{}, wrap(err, "element value tag")
	}
	switch tag {
	case 'B':
		v, err := readCPInteger(c, pool)
		if err != nil {
			return AnnotationElementValue{}, err
		}
		return AnnotationElementValue{Kind: int32(ElementByte), IntValue: v}, nil
	case 'C':
		v, err := readCPInteger(c, pool)
		if err != nil {
			return AnnotationElementValue{}, err
		}
		return AnnotationElementValue{Kind: int32(ElementChar), IntValue: v}, nil
	case 'D':
		v, err := readCPDouble(c, pool)
		if err != nil {
			return AnnotationElementValue{}, err
		}
		return AnnotationElementValue{Kind: int32(ElementDouble), DoubleValue: v}, nil
	case 'F':
		v, err := readCPFloat(c, pool)
		if err != nil {
			return AnnotationElementValue{}, err
		}
		return AnnotationElementValue{Kind: int32(ElementFloat), FloatValue: v}, nil
	case 'I':
		v, err := readCPInteger(c, pool)
		if err != nil {
			return AnnotationElementValue{}, err
		}
		return AnnotationElementValue{Kind: int32(ElementInt), IntValue: v}, nil
	case 'J':
		v, err := readCPLong(c, pool)
		if err != nil {
			return AnnotationElementValue{}, err
		}
		return AnnotationElementValue{Kind: int32(ElementLong), LongValue: v}, nil
	case 'S':
		v, err := readCPInteger(c, pool)
		if err != nil {
			return AnnotationElementValue{}, err
		}
		return AnnotationElementValue{Kind: int32(ElementShort), IntValue: v}, nil
	case 'Z':
		v, err := readCPInteger(c, pool)
		if err != nil {
			return AnnotationElementValue{}, err
		}
		return AnnotationElementValue{Kind: int32(ElementBoolean), IntValue: v}, nil
	case 's':
		v, err := readCPUtf8(c, pool)
		if err != nil {
			return AnnotationElementValue{}, err
		}
		return AnnotationElementValue{Kind: int32(ElementString), StringValue: v}, nil
	case 'e':
		typeName, err := readCPUtf8(c, pool)
		if err != nil {
			return AnnotationElementValue{}, wrap(err, "enum type name")
		}
		if !isFieldDescriptor(typeName) {
			return AnnotationElementValue{}, wrapf(ErrInvalidDescriptor, "enum type name")
		}
		constName, err := readCPUtf8(c, pool)
		if err != nil {
			return AnnotationElementValue{}, wrap(err, "enum const name")
		}
		return AnnotationElementValue{Kind: int32(ElementEnum), EnumTypeName: typeName, EnumConstName: constName}, nil
	case 'c':
		className, err := readCPUtf8(c, pool)
		if err != nil {
			return AnnotationElementValue{}, wrap(err, "class literal")
		}
		if !isReturnDescriptor(className) {
			return AnnotationElementValue{}, wrapf(ErrInvalidDescriptor, "class literal")
		}
		return AnnotationElementValue{Kind: int32(ElementClass), ClassName: className}, nil
	case '@':
		a, err := readAnnotation(c, pool)
		if err != nil {
			return AnnotationElementValue{}, err
		}
		return AnnotationElementValue{Kind: int32(ElementAnnotation), Annotation: &a}, nil
	case '[':
		count, err := c.readU2()
		if err != nil {
			return AnnotationElementValue{}, wrap(err, "array count")
		}
		values := make([]AnnotationElementValue, 0, count)
		for i := 0; i < int(count); i++ {
			v, err := readAnnotationElementValue(c, pool)
			if err != nil {
				return AnnotationElementValue{}, wrapf(err, "array index %d", i)
			}
			values = append(values, v)
		}
		return AnnotationElementValue{Kind: int32(ElementArray), Array: values}, nil
	default:
		return AnnotationElementValue{}, wrapf(ErrUnrecognizedDiscriminant, "element value tag %q", rune(tag))
	}
}

func readAnnotation(c *cursor, pool *constantPool) (Annotation, error) {
	typeDescriptor, err := readCPUtf8(c, pool)
	if err != nil {
		return Annotation{}, wrap(err, "type descriptor field")
	}
	if !isFieldDescriptor(typeDescriptor) {
		return Annotation{}, wrapf(ErrInvalidDescriptor, "type descriptor field")
	}
	elementCount, err := c.readU2()
	if err != nil {
		return Annotation{}, wrap(err, "num_element_value_pairs")
	}
	elements := make([]AnnotationElement, 0, elementCount)
	for i := 0; i < int(elementCount); i++ {
		name, err := readCPUtf8(c, pool)
		if err != nil {
			return Annotation{}, wrapf(err, "name of element %d", i)
		}
		value, err := readAnnotationElementValue(c, pool)
		if err != nil {
			return Annotation{}, wrapf(err, "value of element %d", i)
		}
		elements = append(elements, AnnotationElement{Name: name, Value: value})
	}
	return Annotation{TypeDescriptor: typeDescriptor, Elements: elements}, nil
}

func readAnnotationListData(c *cursor, pool *constantPool) ([]Annotation, error) {
	count, err := c.readU2()
	if err != nil {
		return nil, wrap(err, "num_annotations")
	}
	out := make([]Annotation, 0, count)
	for i := 0; i < int(count); i++ {
		a, err := readAnnotation(c, pool)
		if err != nil {
			return nil, wrapf(err, "annotation %d", i)
		}
		out = append(out, a)
	}
	return out, nil
}

func readParameterAnnotationData(c *cursor, pool *constantPool) ([]ParameterAnnotation, error) {
	count, err := c.readU1()
	if err != nil {
		return nil, wrap(err, "num_parameters")
	}
	out := make([]ParameterAnnotation, 0, count)
	for i := 0; i < int(count); i++ {
		annotationCount, err := c.readU2()
		if err != nil {
			return nil, wrapf(err, "num_annotations of parameter %d", i)
		}
		annotations := make([]Annotation, 0, annotationCount)
		for j := 0; j < int(annotationCount); j++ {
			a, err := readAnnotation(c, pool)
			if err != nil {
				return nil, wrapf(err, "annotation %d of parameter %d", j, i)
			}
			annotations = append(annotations, a)
		}
		out = append(out, ParameterAnnotation{Annotations: annotations})
	}
	return out, nil
}

func readTypeAnnotationData(c *cursor, pool *constantPool) ([]TypeAnnotation, error) {
	count, err := c.readU2()
	if err != nil {
		return nil, wrap(err, "num_annotations")
	}
	out := make([]TypeAnnotation, 0, count)
	for i := 0; i < int(count); i++ {
		targetTypeByte, err := c.readU1()
		if err != nil {
			return nil, wrapf(err, "target_type of type annotation %d", i)
		}
		var target TypeAnnotationTarget
		switch targetTypeByte {
		case 0x00, 0x01:
			idx, err := c.readU1()
			if err != nil {
				return nil, wrapf(err, "type annotation %d", i)
			}
			target = TypeAnnotationTarget{Kind: TargetTypeParameter, Index: idx}
		case 0x10:
			idx, err := c.readU2()
			if err != nil {
				return nil, wrapf(err, "type annotation %d", i)
			}
			target = TypeAnnotationTarget{Kind: TargetSupertype, SupertypeIndex: idx}
		case 0x11, 0x12:
			tpIdx, err := c.readU1()
			if err != nil {
				return nil, wrapf(err, "type annotation %d", i)
			}
			boundIdx, err := c.readU1()
			if err != nil {
				return nil, wrapf(err, "type annotation %d", i)
			}
			target = TypeAnnotationTarget{Kind: TargetTypeParameterBound, TypeParameterIndex: tpIdx, BoundIndex: boundIdx}
		case 0x13, 0x14, 0x15:
			target = TypeAnnotationTarget{Kind: TargetEmpty}
		case 0x16:
			idx, err := c.readU1()
			if err != nil {
				return nil, wrapf(err, "type annotation %d", i)
			}
			target = TypeAnnotationTarget{Kind: TargetFormalParameter, Index: idx}
		case 0x17:
			idx, err := c.readU2()
			if err != nil {
				return nil, wrapf(err, "type annotation %d", i)
			}
			target = TypeAnnotationTarget{Kind: TargetThrows, ThrowsIndex: idx}
		case 0x40, 0x41:
			localVarCount, err := c.readU2()
			if err != nil {
				return nil, wrapf(err, "type annotation %d", i)
			}
			localVars := make([]TypeAnnotationLocalVarEntry, 0, localVarCount)
			for j := 0; j < int(localVarCount); j++ {
				startPC, err := c.readU2()
				if err != nil {
					return nil, wrapf(err, "local var entry %d of type annotation %d", j, i)
				}
				length, err := c.readU2()
				if err != nil {
					return nil, wrapf(err, "local var entry %d of type annotation %d", j, i)
				}
				index, err := c.readU2()
				if err != nil {
					return nil, wrapf(err, "local var entry %d of type annotation %d", j, i)
				}
				localVars = append(localVars, TypeAnnotationLocalVarEntry{StartPC: startPC, Length: length, Index: index})
			}
			target = TypeAnnotationTarget{Kind: TargetLocalVar, LocalVar: localVars}
		case 0x42:
			idx, err := c.readU2()
			if err != nil {
				return nil, wrapf(err, "type annotation %d", i)
			}
			target = TypeAnnotationTarget{Kind: TargetCatch, ExceptionTableIndex: idx}
		case 0x43, 0x44, 0x45, 0x46:
			offset, err := c.readU2()
			if err != nil {
				return nil, wrapf(err, "type annotation %d", i)
			}
			target = TypeAnnotationTarget{Kind: TargetOffset, Offset: offset}
		case 0x47, 0x48, 0x49, 0x4A, 0x4B:
			offset, err := c.readU2()
			if err != nil {
				return nil, wrapf(err, "type annotation %d", i)
			}
			typeArgIndex, err := c.readU1()
			if err != nil {
				return nil, wrapf(err, "type annotation %d", i)
			}
			target = TypeAnnotationTarget{Kind: TargetTypeArgument, Offset: offset, TypeArgumentIndex: typeArgIndex}
		default:
			return nil, wrapf(ErrUnrecognizedDiscriminant, "target_type 0x%02x of type annotation %d", targetTypeByte, i)
		}

		pathCount, err := c.readU1()
		if err != nil {
			return nil, wrapf(err, "path_length of type annotation %d", i)
		}
		targetPath := make([]TypeAnnotationPathEntry, 0, pathCount)
		for j := 0; j < int(pathCount); j++ {
			pathKindByte, err := c.readU1()
			if err != nil {
				return nil, wrapf(err, "path element %d of type annotation %d", j, i)
			}
			var pathKind TypeAnnotationPathKind
			switch pathKindByte {
			case 0:
				pathKind = PathDeeperArray
			case 1:
				pathKind = PathDeeperNested
			case 2:
				pathKind = PathWildcardTypeArgument
			case 3:
				pathKind = PathTypeArgument
			default:
				return nil, wrapf(ErrUnrecognizedDiscriminant, "path kind %d of path element %d of type annotation %d", pathKindByte, j, i)
			}
			argumentIndex, err := c.readU1()
			if err != nil {
				return nil, wrapf(err, "path element %d of type annotation %d", j, i)
			}
			targetPath = append(targetPath, TypeAnnotationPathEntry{PathKind: pathKind, ArgumentIndex: argumentIndex})
		}

		annotation, err := readAnnotation(c, pool)
		if err != nil {
			return nil, wrapf(err, "type annotation %d", i)
		}
		out = append(out, TypeAnnotation{TargetType: target, TargetPath: targetPath, Annotation: annotation})
	}
	return out, nil
}

func readBootstrapMethodsData(c *cursor, pool *constantPool) ([]BootstrapMethodEntry, error) {
	count, err := c.readU2()
	if err != nil {
		return nil, wrap(err, "num_bootstrap_methods")
	}
	out := make([]BootstrapMethodEntry, 0, count)
	for i := 0; i < int(count); i++ {
		method, err := readCPMethodHandle(c, pool)
		if err != nil {
			return nil, wrapf(err, "method ref of bootstrap method %d", i)
		}
		argCount, err := c.readU2()
		if err != nil {
			return nil, wrapf(err, "num_bootstrap_arguments of bootstrap method %d", i)
		}
		args := make([]BootstrapArgument, 0, argCount)
		for j := 0; j < int(argCount); j++ {
			arg, err := readCPBootstrapArgument(c, pool)
			if err != nil {
				return nil, wrapf(err, "argument %d of bootstrap method %d", j, i)
			}
			args = append(args, arg)
		}
		out = append(out, BootstrapMethodEntry{Method: method, Arguments: args})
	}
	return out, nil
}

func readMethodParametersData(c *cursor, pool *constantPool) ([]MethodParameterEntry, error) {
	count, err := c.readU1()
	if err != nil {
		return nil, wrap(err, "parameters_count")
	}
	out := make([]MethodParameterEntry, 0, count)
	for i := 0; i < int(count); i++ {
		name, err := readCPUtf8Opt(c, pool)
		if err != nil {
			return nil, wrapf(err, "name of method parameter %d", i)
		}
		if name != nil && !isUnqualifiedName(*name, false, false) {
			return nil, wrapf(ErrInvalidName, "method parameter %d", i)
		}
		flags, err := readMethodParameterAccessFlags(c)
		if err != nil {
			return nil, wrapf(err, "method parameter %d", i)
		}
		out = append(out, MethodParameterEntry{Name: name, AccessFlags: flags})
	}
	return out, nil
}

func readModuleData(c *cursor, pool *constantPool) (ModuleData, error) {
	name, err := readCPModuleInfo(c, pool)
	if err != nil {
		return ModuleData{}, wrap(err, "name")
	}
	flags, err := readModuleFlags(c)
	if err != nil {
		return ModuleData{}, err
	}
	version, err := readCPUtf8Opt(c, pool)
	if err != nil {
		return ModuleData{}, wrap(err, "version")
	}

	requiresCount, err := c.readU2()
	if err != nil {
		return ModuleData{}, wrap(err, "requires_count")
	}
	requires := make([]ModuleRequireEntry, 0, requiresCount)
	for i := 0; i < int(requiresCount); i++ {
		reqName, err := readCPModuleInfo(c, pool)
		if err != nil {
			return ModuleData{}, wrapf(err, "name of requires entry %d", i)
		}
		reqFlags, err := readRequiresFlags(c)
		if err != nil {
			return ModuleData{}, wrapf(err, "requires entry %d", i)
		}
		reqVersion, err := readCPUtf8Opt(c, pool)
		if err != nil {
			return ModuleData{}, wrapf(err, "version of requires entry %d", i)
		}
		requires = append(requires, ModuleRequireEntry{Name: reqName, Flags: reqFlags, Version: reqVersion})
	}

	exportsCount, err := c.readU2()
	if err != nil {
		return ModuleData{}, wrap(err, "exports_count")
	}
	exports := make([]ModuleExportsEntry, 0, exportsCount)
	for i := 0; i < int(exportsCount); i++ {
		packageName, err := readCPPackageInfo(c, pool)
		if err != nil {
			return ModuleData{}, wrapf(err, "package name of exports entry %d", i)
		}
		expFlags, err := readExportsFlags(c)
		if err != nil {
			return ModuleData{}, wrapf(err, "exports entry %d", i)
		}
		exportsToCount, err := c.readU2()
		if err != nil {
			return ModuleData{}, wrapf(err, "exports_to_count of exports entry %d", i)
		}
		exportsTo := make([]string, 0, exportsToCount)
		for j := 0; j < int(exportsToCount); j++ {
			to, err := readCPModuleInfo(c, pool)
			if err != nil {
				return ModuleData{}, wrapf(err, "name of exports_to entry %d of exports entry %d", j, i)
			}
			exportsTo = append(exportsTo, to)
		}
		exports = append(exports, ModuleExportsEntry{PackageName: packageName, Flags: expFlags, ExportsTo: exportsTo})
	}

	opensCount, err := c.readU2()
	if err != nil {
		return ModuleData{}, wrap(err, "opens_count")
	}
	opens := make([]ModuleOpensEntry, 0, opensCount)
	for i := 0; i < int(opensCount); i++ {
		packageName, err := readCPPackageInfo(c, pool)
		if err != nil {
			return ModuleData{}, wrapf(err, "package name of opens entry %d", i)
		}
		openFlags, err := readOpensFlags(c)
		if err != nil {
			return ModuleData{}, wrapf(err, "opens entry %d", i)
		}
		opensToCount, err := c.readU2()
		if err != nil {
			return ModuleData{}, wrapf(err, "opens_to_count of opens entry %d", i)
		}
		opensTo := make([]string, 0, opensToCount)
		for j := 0; j < int(opensToCount); j++ {
			to, err := readCPModuleInfo(c, pool)
			if err != nil {
				return ModuleData{}, wrapf(err, "name of opens_to entry %d of opens entry %d", j, i)
			}
			opensTo = append(opensTo, to)
		}
		opens = append(opens, ModuleOpensEntry{PackageName: packageName, Flags: openFlags, OpensTo: opensTo})
	}

	usesCount, err := c.readU2()
	if err != nil {
		return ModuleData{}, wrap(err, "uses_count")
	}
	uses := make([]string, 0, usesCount)
	for i := 0; i < int(usesCount); i++ {
		u, err := readCPClassInfo(c, pool)
		if err != nil {
			return ModuleData{}, wrapf(err, "name of uses entry %d", i)
		}
		uses = append(uses, u)
	}

	providesCount, err := c.readU2()
	if err != nil {
		return ModuleData{}, wrap(err, "provides_count")
	}
	provides := make([]ModuleProvidesEntry, 0, providesCount)
	for i := 0; i < int(providesCount); i++ {
		serviceInterfaceName, err := readCPClassInfo(c, pool)
		if err != nil {
			return ModuleData{}, wrapf(err, "service interface name of provides entry %d", i)
		}
		providesWithCount, err := c.readU2()
		if err != nil {
			return ModuleData{}, wrapf(err, "provides_with_count of provides entry %d", i)
		}
		providesWith := make([]string, 0, providesWithCount)
		for j := 0; j < int(providesWithCount); j++ {
			w, err := readCPClassInfo(c, pool)
			if err != nil {
				return ModuleData{}, wrapf(err, "provides_with entry %d of provides entry %d", j, i)
			}
			providesWith = append(providesWith, w)
		}
		provides = append(provides, ModuleProvidesEntry{ServiceInterfaceName: serviceInterfaceName, ProvidesWith: providesWith})
	}

	return ModuleData{
		Name: name, AccessFlags: flags, Version: version,
		Requires: requires, Exports: exports, Opens: opens, Uses: uses, Provides: provides,
	}, nil
}

func readModulePackagesData(c *cursor, pool *constantPool) ([]string, error) {
	count, err := c.readU2()
	if err != nil {
		return nil, wrap(err, "package_count")
	}
	out := make([]string, 0, count)
	for i := 0; i < int(count); i++ {
		pkg, err := readCPPackageInfo(c, pool)
		if err != nil {
			return nil, wrapf(err, "package name %d", i)
		}
		out = append(out, pkg)
	}
	return out, nil
}

func readRecordData(c *cursor, ctx *attrContext) ([]RecordComponentEntry, error) {
	count, err := c.readU2()
	if err != nil {
		return nil, wrap(err, "components_count")
	}
	out := make([]RecordComponentEntry, 0, count)
	childCtx := &attrContext{pool: ctx.pool, opts: ctx.opts, depth: ctx.depth + 1, maxDepth: ctx.maxDepth}
	for i := 0; i < int(count); i++ {
		name, err := readCPUtf8(c, ctx.pool)
		if err != nil {
			return nil, wrapf(err, "name of entry %d", i)
		}
		if !isUnqualifiedName(name, false, false) {
			return nil, wrapf(ErrInvalidName, "entry %d", i)
		}
		descriptor, err := readCPUtf8(c, ctx.pool)
		if err != nil {
			return nil, wrapf(err, "descriptor of entry %d", i)
		}
		if !isFieldDescriptor(descriptor) {
			return nil, wrapf(ErrInvalidDescriptor, "entry %d", i)
		}
		attrs, err := readAttributes(c, childCtx)
		if err != nil {
			return nil, wrapf(err, "entry %d", i)
		}
		out = append(out, RecordComponentEntry{Name: name, Descriptor: descriptor, Attributes: attrs})
	}
	return out, nil
}
