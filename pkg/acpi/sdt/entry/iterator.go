// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package entry walks the variable-length (type, length) framed entries
// which follow the fixed part of tables like SRAT and MADT.
package entry

import (
	"encoding/binary"
	"fmt"

	"github.com/linuxboot/acpitables/pkg/check"
	"github.com/linuxboot/acpitables/pkg/log"
)

// Layout describes where the type and length fields are inside an entry
// header. Sizes are in bytes and must be 1, 2 or 4.
type Layout struct {
	HeaderSize   int
	TypeOffset   int
	TypeSize     int
	LengthOffset int
	LengthSize   int
}

var (
	// LayoutACPI is the framing used by SRAT and MADT: a byte of type
	// followed by a byte of length.
	LayoutACPI = Layout{HeaderSize: 2, TypeOffset: 0, TypeSize: 1, LengthOffset: 1, LengthSize: 1}

	// LayoutWide is a byte of type followed by a 16-bit length.
	LayoutWide = Layout{HeaderSize: 3, TypeOffset: 0, TypeSize: 1, LengthOffset: 1, LengthSize: 2}
)

func readField(b []byte, size int) uint32 {
	switch size {
	case 1:
		return uint32(b[0])
	case 2:
		return uint32(binary.LittleEndian.Uint16(b))
	case 4:
		return binary.LittleEndian.Uint32(b)
	}
	return 0
}

func (l Layout) validate() error {
	for _, size := range []int{l.TypeSize, l.LengthSize} {
		if size != 1 && size != 2 && size != 4 {
			return fmt.Errorf("invalid entry layout field size %d", size)
		}
	}
	if l.TypeSize > 2 {
		return fmt.Errorf("invalid entry layout type size %d", l.TypeSize)
	}
	if l.TypeOffset < 0 || l.TypeOffset+l.TypeSize > l.HeaderSize ||
		l.LengthOffset < 0 || l.LengthOffset+l.LengthSize > l.HeaderSize {
		return fmt.Errorf("entry layout fields do not fit the %d-byte header", l.HeaderSize)
	}
	return nil
}

// Entry is a single framed entry. Data spans the whole entry including
// its header.
type Entry struct {
	Type   uint16
	Offset int
	Data   []byte
}

// Length returns the total length of the entry.
func (e Entry) Length() int {
	return len(e.Data)
}

// Require returns *ErrEntryTooShort if the entry is shorter than the
// fixed layout of the structure called name.
func (e Entry) Require(name string, size int) error {
	if len(e.Data) < size {
		return &ErrEntryTooShort{Name: name, Type: e.Type, Offset: e.Offset, Length: len(e.Data), Required: size}
	}
	return nil
}

// Iterator yields the entries of a table, scanner style:
//
//	it := entry.New(table, bodyOffset, entry.LayoutACPI)
//	for it.Next() {
//		use(it.Entry())
//	}
//	if err := it.Err(); err != nil {
//		...
//	}
//
// An Iterator can not be restarted.
type Iterator struct {
	table  []byte
	offset int
	layout Layout
	cur    Entry
	err    error
	done   bool
}

// New returns an iterator over the entries of table starting at bodyOffset.
// The whole of table[bodyOffset:] is expected to be covered by entries.
func New(table []byte, bodyOffset int, layout Layout) *Iterator {
	it := &Iterator{table: table, offset: bodyOffset, layout: layout}
	if err := layout.validate(); err != nil {
		it.fail(err)
	} else if err := check.BytesRange(uint(len(table)), bodyOffset, len(table)); err != nil {
		it.fail(fmt.Errorf("invalid entries offset %d: %w", bodyOffset, err))
	}
	return it
}

func (it *Iterator) fail(err error) {
	it.err = err
	it.done = true
	it.cur = Entry{}
	log.Warnf("%v", err)
}

// Next advances to the next entry. It returns false at the end of the
// table or when an entry is malformed, see Err.
func (it *Iterator) Next() bool {
	if it.done {
		return false
	}
	remaining := len(it.table) - it.offset
	if remaining == 0 {
		it.done = true
		it.cur = Entry{}
		return false
	}

	l := it.layout
	if remaining < l.HeaderSize {
		it.fail(&ErrMalformedEntry{Offset: it.offset, Remaining: remaining, Reason: "truncated entry header"})
		return false
	}
	hdr := it.table[it.offset:]
	typ := uint16(readField(hdr[l.TypeOffset:], l.TypeSize))
	length := readField(hdr[l.LengthOffset:], l.LengthSize)

	switch {
	case length < uint32(l.HeaderSize):
		it.fail(&ErrMalformedEntry{Offset: it.offset, Type: typ, Length: int(length), Remaining: remaining,
			Reason: "entry length is less than the entry header"})
		return false
	case length > uint32(remaining):
		it.fail(&ErrMalformedEntry{Offset: it.offset, Type: typ, Length: int(length), Remaining: remaining,
			Reason: "entry overruns the table"})
		return false
	}

	end := it.offset + int(length)
	it.cur = Entry{Type: typ, Offset: it.offset, Data: it.table[it.offset:end:end]}
	it.offset = end
	return true
}

// Entry returns the current entry. It is valid until the next call to Next.
func (it *Iterator) Entry() Entry {
	return it.cur
}

// Offset returns the offset of the next entry to be read.
func (it *Iterator) Offset() int {
	return it.offset
}

// Err returns the error which stopped the iteration, if any.
func (it *Iterator) Err() error {
	return it.err
}

// Collect reads all remaining entries of it. The entries read before an
// error are returned together with it.
func Collect(it *Iterator) ([]Entry, error) {
	var result []Entry
	for it.Next() {
		result = append(result, it.Entry())
	}
	return result, it.Err()
}
