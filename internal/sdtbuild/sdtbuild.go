// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sdtbuild assembles synthetic tables for tests. It fixes up the
// length and checksum fields when the table is finished.
package sdtbuild

import (
	"bytes"
	"encoding/binary"
)

// Table accumulates the bytes of a table.
type Table struct {
	buf bytes.Buffer
}

// New starts a table with a standard header. Length and checksum are
// filled in by Bytes.
func New(signature string, revision uint8) *Table {
	t := &Table{}
	var sig [4]byte
	copy(sig[:], signature)
	t.buf.Write(sig[:])
	t.U32(0)
	t.U8(revision)
	t.U8(0)
	t.buf.WriteString("LNXBT ")
	t.buf.WriteString("ACPITEST")
	t.U32(1)
	t.buf.WriteString("LBGO")
	t.U32(0x20240101)
	return t
}

// U8 appends a byte.
func (t *Table) U8(v uint8) *Table {
	t.buf.WriteByte(v)
	return t
}

// U16 appends a little-endian uint16.
func (t *Table) U16(v uint16) *Table {
	_ = binary.Write(&t.buf, binary.LittleEndian, v)
	return t
}

// U32 appends a little-endian uint32.
func (t *Table) U32(v uint32) *Table {
	_ = binary.Write(&t.buf, binary.LittleEndian, v)
	return t
}

// U64 appends a little-endian uint64.
func (t *Table) U64(v uint64) *Table {
	_ = binary.Write(&t.buf, binary.LittleEndian, v)
	return t
}

// Raw appends b as is.
func (t *Table) Raw(b []byte) *Table {
	t.buf.Write(b)
	return t
}

// Zero appends n zero bytes.
func (t *Table) Zero(n int) *Table {
	t.buf.Write(make([]byte, n))
	return t
}

// GAS appends a Generic Address Structure.
func (t *Table) GAS(space, bitWidth, bitOffset, accessSize uint8, addr uint64) *Table {
	return t.U8(space).U8(bitWidth).U8(bitOffset).U8(accessSize).U64(addr)
}

// Entry appends a (type, length) framed entry of the given total length.
// fill receives the whole entry, including the 2-byte header, to set
// fields at their offsets.
func (t *Table) Entry(typ uint8, length int, fill func(e []byte)) *Table {
	e := make([]byte, length)
	if length > 0 {
		e[0] = typ
	}
	if length > 1 {
		e[1] = uint8(length)
	}
	if fill != nil {
		fill(e)
	}
	t.buf.Write(e)
	return t
}

// Len returns the current size of the table.
func (t *Table) Len() int {
	return t.buf.Len()
}

// Bytes finishes the table: the length field is set to the size of the
// table and the checksum makes all bytes sum to zero.
func (t *Table) Bytes() []byte {
	b := append([]byte(nil), t.buf.Bytes()...)
	binary.LittleEndian.PutUint32(b[4:], uint32(len(b)))
	b[9] = 0
	var sum uint8
	for _, v := range b {
		sum += v
	}
	b[9] = -sum
	return b
}

// PutU16 writes v at off in e.
func PutU16(e []byte, off int, v uint16) {
	binary.LittleEndian.PutUint16(e[off:], v)
}

// PutU32 writes v at off in e.
func PutU32(e []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(e[off:], v)
}

// PutU64 writes v at off in e.
func PutU64(e []byte, off int, v uint64) {
	binary.LittleEndian.PutUint64(e[off:], v)
}
