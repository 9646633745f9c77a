// Copyright 2024 The cafebabe authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

package cafebabe

import "strings"

// isFieldDescriptor reports whether s is a well-formed JVM field
// descriptor: FieldType = BaseType | ObjectType | ArrayType, with no
// trailing garbage after the type is consumed.
func isFieldDescriptor(s string) bool {
	n, ok := scanFieldType(s, 0)
	return ok && n == len(s)
}

// isReturnDescriptor reports whether s is a field descriptor or "V" (void).
func isReturnDescriptor(s string) bool {
	if s == "V" {
		return true
	}
	return isFieldDescriptor(s)
}

// isMethodDescriptor reports whether s has the shape
// "(" FieldType* ")" (FieldType | "V").
func isMethodDescriptor(s string) bool {
	if len(s) == 0 || s[0] != '(' {
		return false
	}
	i := 1
	for i < len(s) && s[i] != ')' {
		n, ok := scanFieldType(s, i)
		if !ok {
			return false
		}
		i = n
	}
	if i >= len(s) || s[i] != ')' {
		return false
	}
	return isReturnDescriptor(s[i+1:])
}

// scanFieldType attempts to consume one FieldType starting at s[i],
// returning the index just past it. ok is false if s[i:] does not begin
// with a legal FieldType.
func scanFieldType(s string, i int) (next int, ok bool) {
	if i >= len(s) {
		return i, false
	}
	switch s[i] {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z':
		return i + 1, true
	case 'L':
		j := i + 1
		for j < len(s) && s[j] != ';' {
			// The internal form forbids these characters inside a class name,
			// but ';' terminates the descriptor regardless of what preceded it.
			j++
		}
		if j >= len(s) {
			return i, false
		}
		return j + 1, true
	case '[':
		// JVM spec caps array dimensionality at 255, but the grammar itself
		// is unbounded; cafebabe enforces only the grammar, per spec.md.
		return scanFieldType(s, i+1)
	default:
		return i, false
	}
}

// isUnqualifiedName reports whether s is a legal unqualified name: non-empty,
// forbidding '.', ';', '[', '/', except that "<init>" and "<clinit>" are
// allowed when the corresponding flag permits them.
func isUnqualifiedName(s string, allowInit, allowClinit bool) bool {
	if s == "<init>" {
		return allowInit
	}
	if s == "<clinit>" {
		return allowClinit
	}
	if len(s) == 0 {
		return false
	}
	return !strings.ContainsAny(s, ".;[/")
}

// isInternalClassName reports whether s is a legal class name in internal
// form: a sequence of unqualified names joined by '/', e.g.
// "java/lang/String". Unlike isUnqualifiedName it permits '/' as the
// package separator but still forbids '.', ';', and '['.
func isInternalClassName(s string) bool {
	if len(s) == 0 {
		return false
	}
	if strings.ContainsAny(s, ".;[") {
		return false
	}
	for _, part := range strings.Split(s, "/") {
		if part == "" {
			return false
		}
	}
	return true
}

// isClassInfoName reports whether s is legal as the name carried by a
// CONSTANT_Class_info: per JVM spec §4.4.1, that's either a binary class or
// interface name in internal form, or, when the class info instead denotes
// an array type (as checkcast/instanceof/anewarray/multianewarray operands
// may), a field descriptor beginning with '['.
func isClassInfoName(s string) bool {
	if len(s) > 0 && s[0] == '[' {
		return isFieldDescriptor(s)
	}
	return isInternalClassName(s)
}
