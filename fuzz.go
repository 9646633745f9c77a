// Copyright 2024 The cafebabe authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

package cafebabe

// Fuzz is a go-fuzz/libFuzzer-style entry point: it parses data as a class
// file with bytecode decoding enabled and returns 1 when the parse succeeds
// and 0 when it fails, so that inputs the parser accepts get priority in
// the corpus.
func Fuzz(data []byte) int {
	f, err := NewBytes(data, &Options{ParseBytecode: true})
	if err != nil {
		return 0
	}
	if err := f.Parse(); err != nil {
		return 0
	}
	return 1
}
