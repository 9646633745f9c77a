// Copyright 2024 The cafebabe authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

package cafebabe

import "fmt"

// Anomalies found in a class file. These never cause a parse failure;
// they are collected for callers that want to flag suspicious-but-legal
// input the same way a linter would.
var (
	// AnoMajorVersionTooNew is reported when major_version exceeds the
	// highest version this parser was written against (Java 17, major 61).
	AnoMajorVersionTooNew = "major_version %d exceeds the highest version this parser targets (61)"

	// AnoSuperClassZeroNotObject is reported when super_class is 0 (no
	// superclass) on a class whose name is not java/lang/Object.
	AnoSuperClassZeroNotObject = "super_class is 0 but this_class is not java/lang/Object"

	// AnoInterfaceNotAbstract is reported when ACC_INTERFACE is set without ACC_ABSTRACT.
	AnoInterfaceNotAbstract = "ACC_INTERFACE set without ACC_ABSTRACT"

	// AnoNonStaticMethodZeroMaxLocals is reported when an instance method's
	// Code attribute declares max_locals 0, leaving no room for `this`.
	AnoNonStaticMethodZeroMaxLocals = "instance method %q%s has Code.max_locals=0"

	// AnoDuplicateSourceFile is reported when a class carries more than one SourceFile attribute.
	AnoDuplicateSourceFile = "duplicate SourceFile attribute"

	// AnoDuplicateSignature is reported when a class, field, or method carries more than one Signature attribute.
	AnoDuplicateSignature = "duplicate Signature attribute"

	// AnoDuplicateBootstrapMethods is reported when a class carries more than one BootstrapMethods attribute.
	AnoDuplicateBootstrapMethods = "duplicate BootstrapMethods attribute"
)

const highestKnownMajorVersion = 61

// detectAnomalies runs every post-parse structural check and returns the
// accumulated messages in a fixed order. None of these checks can fail a
// parse; they run only after parseClass has already produced a
// structurally valid Class.
func detectAnomalies(c *Class) []string {
	var anomalies []string

	if c.MajorVersion > highestKnownMajorVersion {
		anomalies = append(anomalies, fmt.Sprintf(AnoMajorVersionTooNew, c.MajorVersion))
	}

	if c.SuperClass == nil && c.ThisClass != "java/lang/Object" {
		anomalies = append(anomalies, AnoSuperClassZeroNotObject)
	}

	if hasFlag(c.AccessFlags, AccInterface) && !hasFlag(c.AccessFlags, AccAbstract) {
		anomalies = append(anomalies, AnoInterfaceNotAbstract)
	}

	if countAttributesNamed(c.Attributes, "SourceFile") > 1 {
		anomalies = append(anomalies, AnoDuplicateSourceFile)
	}
	if countAttributesNamed(c.Attributes, "Signature") > 1 {
		anomalies = append(anomalies, AnoDuplicateSignature)
	}
	if countAttributesNamed(c.Attributes, "BootstrapMethods") > 1 {
		anomalies = append(anomalies, AnoDuplicateBootstrapMethods)
	}

	for _, m := range c.Methods {
		if !hasFlag(m.AccessFlags, AccStatic) {
			for _, a := range m.Attributes {
				code, ok := a.Data.(CodeAttribute)
				if ok && code.Data.MaxLocals == 0 {
					anomalies = append(anomalies, fmt.Sprintf(AnoNonStaticMethodZeroMaxLocals, m.Name, m.Descriptor))
				}
			}
		}
		if countAttributesNamed(m.Attributes, "Signature") > 1 {
			anomalies = append(anomalies, AnoDuplicateSignature)
		}
	}
	for _, f := range c.Fields {
		if countAttributesNamed(f.Attributes, "Signature") > 1 {
			anomalies = append(anomalies, AnoDuplicateSignature)
		}
	}

	return anomalies
}

func countAttributesNamed(attrs []AttributeInfo, name string) int {
	n := 0
	for _, a := range attrs {
		if a.Name == name {
			n++
		}
	}
	return n
}
