// Copyright 2024 The cafebabe authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

package cafebabe

import (
	"github.com/pkg/errors"
)

// Sentinel errors for every fatal condition the parser can detect. Callers
// classify a failure with errors.Is / errors.Cause against these values;
// every call site that returns one of them wraps it with positional
// context via errors.Wrap / errors.Wrapf, so the final error's Error()
// string reads outermost-context to innermost-cause and errors.Is still
// sees through the wrapping.
var (
	// ErrUnexpectedEnd is returned when fewer bytes remain than a read requested.
	ErrUnexpectedEnd = errors.New("unexpected end of class file")

	// ErrInvalidMagic is returned when the leading u4 is not 0xCAFEBABE.
	ErrInvalidMagic = errors.New("invalid magic number, not a class file")

	// ErrUnsupportedVersion is returned when a caller-supplied version policy rejects the file.
	ErrUnsupportedVersion = errors.New("unsupported class file version")

	// ErrBadPoolIndex is returned for index 0 where nonzero is required, an
	// out-of-range index, or a reference landing on a Placeholder slot.
	ErrBadPoolIndex = errors.New("bad constant pool index")

	// ErrPoolKindMismatch is returned when a reference expected one pool entry kind but found another.
	ErrPoolKindMismatch = errors.New("constant pool entry kind mismatch")

	// ErrInvalidDescriptor is returned when a validator rejects a descriptor string.
	ErrInvalidDescriptor = errors.New("invalid descriptor")

	// ErrInvalidName is returned when a validator rejects a name string.
	ErrInvalidName = errors.New("invalid name")

	// ErrInvalidFlags is returned when a strict flag set saw an unrecognized bit.
	ErrInvalidFlags = errors.New("invalid access flags")

	// ErrUnrecognizedDiscriminant is returned for an out-of-range stack-map
	// tag, annotation element tag, type-annotation target_type, or path kind.
	ErrUnrecognizedDiscriminant = errors.New("unrecognized discriminant")

	// ErrLengthMismatch is returned when an attribute's declared length
	// disagrees with the bytes actually consumed decoding it.
	ErrLengthMismatch = errors.New("attribute length mismatch")

	// ErrUnrecognizedOpcode is returned by the bytecode decoder for an unknown opcode byte.
	ErrUnrecognizedOpcode = errors.New("unrecognized opcode")

	// ErrBadOperand is returned by the bytecode decoder when an operand is structurally invalid.
	ErrBadOperand = errors.New("bad instruction operand")

	// ErrModifiedUtf8Decode is returned when a modified-UTF-8 byte sequence is malformed.
	ErrModifiedUtf8Decode = errors.New("invalid modified UTF-8 sequence")
)

// wrap attaches positional context to err, or returns nil unchanged.
func wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, context)
}

// wrapf is wrap with a formatted context string.
func wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, format, args...)
}
