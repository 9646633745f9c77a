// Copyright 2024 The cafebabe authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

package cafebabe

import (
	"os"

	mmap "github.com/edsrzf/mmap-go"
	"github.com/go-kratos/kratos/v2/log"
)

const classMagic = 0xCAFEBABE

// Default resource bounds, applied when the corresponding Options field is
// left at its zero value.
const (
	DefaultMaxAttributeDepth   = 32
	DefaultMaxConstantPoolSize = 65535
)

// FieldInfo is one entry of a class's field list.
type FieldInfo struct {
	AccessFlags uint16
	Name        string
	Descriptor  string
	Attributes  []AttributeInfo
}

// MethodInfo is one entry of a class's method list.
type MethodInfo struct {
	AccessFlags uint16
	Name        string
	Descriptor  string
	Attributes  []AttributeInfo
}

// Class is the fully parsed, validated representation of one class file.
type Class struct {
	MinorVersion uint16
	MajorVersion uint16
	AccessFlags  uint16
	ThisClass    string
	SuperClass   *string // nil only for java/lang/Object
	Interfaces   []string
	Fields       []FieldInfo
	Methods      []MethodInfo
	Attributes   []AttributeInfo

	// Anomalies lists non-fatal structural oddities noticed during parsing
	// (see anomaly.go). Parsing never fails because of an anomaly.
	Anomalies []string

	pool *constantPool
}

// Options configures a parse. The zero Options is valid: MaxAttributeDepth
// and MaxConstantPoolSize fall back to their defaults, ParseBytecode
// defaults to false, and Logger defaults to a stderr logger filtered to
// error level.
type Options struct {
	// ParseBytecode, when true, decodes every Code attribute's raw code
	// array into a structured instruction list (component D). When false,
	// the raw bytes are still retained on CodeData.Code.
	ParseBytecode bool

	// MaxAttributeDepth bounds recursive attribute nesting (Code and Record
	// attributes contain nested attribute lists). Default DefaultMaxAttributeDepth.
	MaxAttributeDepth uint32

	// MaxConstantPoolSize bounds constant_pool_count. Default DefaultMaxConstantPoolSize,
	// the largest count representable by the u16 field itself.
	MaxConstantPoolSize uint32

	// Logger receives warnings for non-fatal conditions (anomalies). A
	// custom logger lets embedders route parser diagnostics into their own
	// logging pipeline.
	Logger log.Logger
}

func (o *Options) withDefaults() *Options {
	out := *o
	if out.MaxAttributeDepth == 0 {
		out.MaxAttributeDepth = DefaultMaxAttributeDepth
	}
	if out.MaxConstantPoolSize == 0 {
		out.MaxConstantPoolSize = DefaultMaxConstantPoolSize
	}
	return &out
}

// File represents an open class file backed either by a memory-mapped
// path or by an in-memory byte slice.
type File struct {
	Class

	data   mmap.MMap
	bytes  []byte
	f      *os.File
	opts   *Options
	logger *log.Helper
}

func newLogger(opts *Options) *log.Helper {
	if opts.Logger == nil {
		base := log.NewStdLogger(os.Stderr)
		return log.NewHelper(log.NewFilter(base, log.FilterLevel(log.LevelError)))
	}
	return log.NewHelper(opts.Logger)
}

// New instantiates a File by memory-mapping the named path read-only.
func New(name string, opts *Options) (*File, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}

	file := &File{f: f, data: data}
	if opts != nil {
		file.opts = opts.withDefaults()
	} else {
		file.opts = (&Options{}).withDefaults()
	}
	file.logger = newLogger(file.opts)
	return file, nil
}

// NewBytes instantiates a File directly from an in-memory buffer.
func NewBytes(data []byte, opts *Options) (*File, error) {
	file := &File{bytes: data}
	if opts != nil {
		file.opts = opts.withDefaults()
	} else {
		file.opts = (&Options{}).withDefaults()
	}
	file.logger = newLogger(file.opts)
	return file, nil
}

// Close releases any memory-mapped resources and closes the underlying
// file, if any. Files opened via NewBytes have nothing to release.
func (f *File) Close() error {
	if f.data != nil {
		_ = f.data.Unmap()
	}
	if f.f != nil {
		return f.f.Close()
	}
	return nil
}

func (f *File) rawBytes() []byte {
	if f.data != nil {
		return f.data
	}
	return f.bytes
}

// Parse decodes the backing bytes into f.Class.
func (f *File) Parse() error {
	cls, err := parseClass(f.rawBytes(), f.opts, f.logger)
	if err != nil {
		return err
	}
	f.Class = *cls
	return nil
}

// ParseBytes is the package's pure entry point: it parses an in-memory
// class file buffer to completion with no filesystem interaction. It is
// the JVM-domain equivalent of spec.md's parse(bytes, options) -> Class.
func ParseBytes(data []byte, opts *Options) (*Class, error) {
	if opts == nil {
		opts = &Options{}
	}
	opts = opts.withDefaults()
	return parseClass(data, opts, newLogger(opts))
}

func parseClass(data []byte, opts *Options, logger *log.Helper) (*Class, error) {
	c := newCursor(data)

	magic, err := c.readU4()
	if err != nil {
		return nil, wrap(err, "magic")
	}
	if magic != classMagic {
		return nil, ErrInvalidMagic
	}

	minor, err := c.readU2()
	if err != nil {
		return nil, wrap(err, "minor_version")
	}
	major, err := c.readU2()
	if err != nil {
		return nil, wrap(err, "major_version")
	}

	pool, err := readConstantPool(c)
	if err != nil {
		return nil, wrap(err, "constant pool")
	}
	if uint32(pool.count()) > opts.MaxConstantPoolSize {
		return nil, wrapf(ErrBadPoolIndex, "constant pool count %d exceeds maximum %d", pool.count(), opts.MaxConstantPoolSize)
	}

	accessFlagsVal, err := readClassAccessFlags(c)
	if err != nil {
		return nil, wrap(err, "access_flags")
	}

	thisClass, err := readCPClassInfo(c, pool)
	if err != nil {
		return nil, wrap(err, "this_class")
	}

	superClassIx, err := c.readU2()
	if err != nil {
		return nil, wrap(err, "super_class")
	}
	var superClass *string
	if superClassIx != 0 {
		name, err := pool.classAt(superClassIx)
		if err != nil {
			return nil, wrap(err, "super_class")
		}
		superClass = &name
	} else if thisClass != "java/lang/Object" {
		return nil, wrapf(ErrBadPoolIndex, "super_class is 0 but this_class is %q", thisClass)
	}

	interfacesCount, err := c.readU2()
	if err != nil {
		return nil, wrap(err, "interfaces_count")
	}
	interfaces := make([]string, 0, interfacesCount)
	for i := 0; i < int(interfacesCount); i++ {
		name, err := readCPClassInfo(c, pool)
		if err != nil {
			return nil, wrapf(err, "interface %d", i)
		}
		interfaces = append(interfaces, name)
	}

	ctx := &attrContext{pool: pool, opts: opts, depth: 0, maxDepth: opts.MaxAttributeDepth}

	fields, err := readFields(c, ctx)
	if err != nil {
		return nil, wrap(err, "fields")
	}
	methods, err := readMethods(c, ctx)
	if err != nil {
		return nil, wrap(err, "methods")
	}

	attrs, err := readAttributes(c, ctx)
	if err != nil {
		return nil, wrap(err, "class attributes")
	}

	cls := &Class{
		MinorVersion: minor,
		MajorVersion: major,
		AccessFlags:  accessFlagsVal,
		ThisClass:    thisClass,
		SuperClass:   superClass,
		Interfaces:   interfaces,
		Fields:       fields,
		Methods:      methods,
		Attributes:   attrs,
		pool:         pool,
	}

	cls.Anomalies = detectAnomalies(cls)
	for _, a := range cls.Anomalies {
		logger.Warnf("class file anomaly: %s", a)
	}

	return cls, nil
}

func readFields(c *cursor, ctx *attrContext) ([]FieldInfo, error) {
	count, err := c.readU2()
	if err != nil {
		return nil, wrap(err, "fields_count")
	}
	out := make([]FieldInfo, 0, count)
	for i := 0; i < int(count); i++ {
		flags, err := readFieldAccessFlags(c)
		if err != nil {
			return nil, wrapf(err, "field %d", i)
		}
		name, err := readCPUtf8(c, ctx.pool)
		if err != nil {
			return nil, wrapf(err, "name of field %d", i)
		}
		if !isUnqualifiedName(name, false, false) {
			return nil, wrapf(ErrInvalidName, "field %d", i)
		}
		descriptor, err := readCPUtf8(c, ctx.pool)
		if err != nil {
			return nil, wrapf(err, "descriptor of field %d", i)
		}
		if !isFieldDescriptor(descriptor) {
			return nil, wrapf(ErrInvalidDescriptor, "field %d", i)
		}
		attrs, err := readAttributes(c, ctx)
		if err != nil {
			return nil, wrapf(err, "field %d", i)
		}
		out = append(out, FieldInfo{AccessFlags: flags, Name: name, Descriptor: descriptor, Attributes: attrs})
	}
	return out, nil
}

func readMethods(c *cursor, ctx *attrContext) ([]MethodInfo, error) {
	count, err := c.readU2()
	if err != nil {
		return nil, wrap(err, "methods_count")
	}
	out := make([]MethodInfo, 0, count)
	for i := 0; i < int(count); i++ {
		flags, err := readMethodAccessFlags(c)
		if err != nil {
			return nil, wrapf(err, "method %d", i)
		}
		name, err := readCPUtf8(c, ctx.pool)
		if err != nil {
			return nil, wrapf(err, "name of method %d", i)
		}
		if !isUnqualifiedName(name, true, true) {
			return nil, wrapf(ErrInvalidName, "method %d", i)
		}
		descriptor, err := readCPUtf8(c, ctx.pool)
		if err != nil {
			return nil, wrapf(err, "descriptor of method %d", i)
		}
		if !isMethodDescriptor(descriptor) {
			return nil, wrapf(ErrInvalidDescriptor, "method %d", i)
		}
		attrs, err := readAttributes(c, ctx)
		if err != nil {
			return nil, wrapf(err, "method %d", i)
		}
		out = append(out, MethodInfo{AccessFlags: flags, Name: name, Descriptor: descriptor, Attributes: attrs})
	}
	return out, nil
}
