// Copyright 2024 The cafebabe authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

package cafebabe

import "testing"

func TestIsFieldDescriptor(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"I", true},
		{"J", true},
		{"Z", true},
		{"Ljava/lang/String;", true},
		{"[I", true},
		{"[[[Ljava/lang/Object;", true},
		{"", false},
		{"V", false}, // void is a return descriptor, not a field descriptor
		{"L", false},
		{"Ljava/lang/String", false}, // missing trailing ';'
		{"[", false},
		{"Q", false},
		{"Ifoo", false}, // trailing garbage
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := isFieldDescriptor(tt.in); got != tt.want {
				t.Errorf("isFieldDescriptor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsReturnDescriptor(t *testing.T) {
	if !isReturnDescriptor("V") {
		t.Error("V should be a valid return descriptor")
	}
	if !isReturnDescriptor("I") {
		t.Error("I should be a valid return descriptor")
	}
	if isReturnDescriptor("") {
		t.Error("empty string should not be a valid return descriptor")
	}
}

func TestIsMethodDescriptor(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"()V", true},
		{"(I)V", true},
		{"(ILjava/lang/String;[I)Z", true},
		{"()Ljava/lang/Object;", true},
		{"(", false},
		{"()", false},
		{")V", false},
		{"(I)", false},
		{"(Q)V", false},
		{"()X", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := isMethodDescriptor(tt.in); got != tt.want {
				t.Errorf("isMethodDescriptor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsUnqualifiedName(t *testing.T) {
	tests := []struct {
		name                    string
		allowInit, allowClinit  bool
		want                    bool
	}{
		{"foo", false, false, true},
		{"<init>", false, false, false},
		{"<init>", true, false, true},
		{"<clinit>", false, false, false},
		{"<clinit>", false, true, true},
		{"", false, false, false},
		{"a.b", false, false, false},
		{"a;b", false, false, false},
		{"a[b", false, false, false},
		{"a/b", false, false, false},
	}
	for _, tt := range tests {
		if got := isUnqualifiedName(tt.name, tt.allowInit, tt.allowClinit); got != tt.want {
			t.Errorf("isUnqualifiedName(%q, %v, %v) = %v, want %v", tt.name, tt.allowInit, tt.allowClinit, got, tt.want)
		}
	}
}

func TestIsInternalClassName(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"java/lang/Object", true},
		{"Foo", true},
		{"", false},
		{"java//Object", false},
		{"java.lang.Object", false},
		{"java/lang/Object;", false},
	}
	for _, tt := range tests {
		if got := isInternalClassName(tt.in); got != tt.want {
			t.Errorf("isInternalClassName(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsClassInfoName(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"java/lang/Object", true},
		{"Foo", true},
		{"[I", true},                   // array-type CONSTANT_Class (checkcast [I)
		{"[Ljava/lang/String;", true},  // array-type CONSTANT_Class of a reference type
		{"[[I", true},                  // multi-dimensional array
		{"", false},
		{"java.lang.Object", false},
		{"[", false},                   // array marker with no element type
		{"[Q", false},                  // '[' followed by an illegal base type
	}
	for _, tt := range tests {
		if got := isClassInfoName(tt.in); got != tt.want {
			t.Errorf("isClassInfoName(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
