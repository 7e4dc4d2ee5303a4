// Copyright 2018-2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package compression decodes compressed ACPI table dumps.
//
// Table dumps are often shipped as xz, zstd or lz4 files. The format is
// detected by magic number, the file extension is only a hint.
package compression

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
)

// Compressor defines a single compression scheme (such as XZ).
type Compressor interface {
	// Name is typically the name of a class.
	Name() string

	// Decode and Encode obey "x == Decode(Encode(x))".
	Decode(encodedData []byte) ([]byte, error)
	Encode(decodedData []byte) ([]byte, error)
}

var (
	magicXZ   = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
	magicZstd = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicLZ4  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// Detect returns the Compressor matching the magic number of b, or nil if b
// does not look compressed.
func Detect(b []byte) Compressor {
	switch {
	case bytes.HasPrefix(b, magicXZ):
		return &XZ{}
	case bytes.HasPrefix(b, magicZstd):
		return &Zstd{}
	case bytes.HasPrefix(b, magicLZ4):
		return &LZ4{}
	}
	return nil
}

// FromExtension returns the Compressor for a file name extension, or nil.
func FromExtension(name string) Compressor {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xz":
		return &XZ{}
	case ".zst", ".zstd":
		return &Zstd{}
	case ".lz4":
		return &LZ4{}
	}
	return nil
}

// TrimExtension strips a known compression extension from name.
func TrimExtension(name string) string {
	if FromExtension(name) == nil {
		return name
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Decompress decodes b if it carries a known magic number and returns it
// unchanged otherwise.
func Decompress(b []byte) ([]byte, error) {
	c := Detect(b)
	if c == nil {
		return b, nil
	}
	out, err := c.Decode(b)
	if err != nil {
		return nil, fmt.Errorf("unable to decode %s data: %w", c.Name(), err)
	}
	return out, nil
}
