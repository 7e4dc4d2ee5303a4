// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sdt

import (
	"fmt"

	"github.com/linuxboot/acpitables/pkg/log"
)

// Raw is a table whose header and length were validated. Data holds exactly
// Hdr.Length bytes, starting with the header.
type Raw struct {
	Hdr  Header
	Data []byte
}

// Table is implemented by every typed table decoder.
type Table interface {
	// Signature returns the signature of the table type. It must work on
	// a zero value.
	Signature() Signature

	// Header returns the parsed standard header.
	Header() *Header

	// UnmarshalSDT decodes the table from its validated bytes.
	UnmarshalSDT(raw *Raw) error
}

// NewRaw validates the header of b and returns a view limited to the declared
// length. b is not copied.
func NewRaw(b []byte) (*Raw, error) {
	hdr, err := ParseHeader(b)
	if err != nil {
		return nil, err
	}
	if hdr.Length < HeaderSize {
		return nil, &ErrTableTooShort{Signature: hdr.Signature, Length: hdr.Length}
	}
	if uint64(hdr.Length) > uint64(len(b)) {
		return nil, &ErrTruncatedTable{Signature: hdr.Signature, Length: hdr.Length, Available: len(b)}
	}
	return &Raw{Hdr: *hdr, Data: b[:hdr.Length:hdr.Length]}, nil
}

// Lookup returns the table with signature sig from store.
func Lookup(store Store, sig Signature) (*Raw, error) {
	b, ok := store.FindTable(sig)
	if !ok {
		return nil, &ErrTableNotFound{Signature: sig}
	}
	if len(b) < HeaderSize {
		return nil, &ErrTableTooShort{Signature: sig, Length: uint32(len(b))}
	}
	raw, err := NewRaw(b)
	if err != nil {
		return nil, err
	}
	if raw.Hdr.Signature != sig {
		return nil, &ErrSignatureMismatch{Expected: sig, Actual: raw.Hdr.Signature}
	}
	return raw, nil
}

// Find looks up and decodes the table of type T.
func Find[T any, PT interface {
	*T
	Table
}](store Store) (PT, error) {
	table := PT(new(T))
	sig := table.Signature()
	raw, err := Lookup(store, sig)
	if err != nil {
		return nil, err
	}
	if err := table.UnmarshalSDT(raw); err != nil {
		return nil, fmt.Errorf("unable to parse table '%s': %w", sig, err)
	}
	return table, nil
}

// Header returns the validated header.
func (r *Raw) Header() *Header {
	return &r.Hdr
}

// Signature returns the signature of the table.
func (r *Raw) Signature() Signature {
	return r.Hdr.Signature
}

// Body returns the bytes after the standard header.
func (r *Raw) Body() []byte {
	return r.Data[HeaderSize:]
}

// ValidateChecksum returns *ErrChecksumMismatch if the table bytes do not sum
// to zero.
func (r *Raw) ValidateChecksum() error {
	if sum := Checksum(r.Data); sum != 0 {
		return &ErrChecksumMismatch{Signature: r.Hdr.Signature, Sum: sum}
	}
	return nil
}

// CheckChecksum reports whether the checksum is valid and logs a warning
// if not. The table is still usable either way.
func (r *Raw) CheckChecksum() bool {
	if err := r.ValidateChecksum(); err != nil {
		log.Warnf("%v", err)
		return false
	}
	return true
}

// Checksum returns the 8-bit sum of b.
func Checksum(b []byte) uint8 {
	var sum uint8
	for _, v := range b {
		sum += v
	}
	return sum
}
