// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package srat decodes the System Resource Affinity Table, which associates
// processors, memory ranges and generic initiators with proximity domains.
package srat

import (
	"encoding/binary"
	"fmt"

	"github.com/linuxboot/acpitables/pkg/acpi/sdt"
	"github.com/linuxboot/acpitables/pkg/acpi/sdt/entry"
	"github.com/linuxboot/acpitables/pkg/check"
)

// EntriesOffset is the offset of the first affinity structure: the standard
// header is followed by a 4-byte and an 8-byte reserved field.
const EntriesOffset = sdt.HeaderSize + 4 + 8

// SRAT is the System Resource Affinity Table.
type SRAT struct {
	hdr sdt.Header

	// TableRevision is the first reserved field, which must be 1 for
	// backward compatibility.
	TableRevision uint32

	data   []byte
	layout entry.Layout
}

var _ sdt.Table = (*SRAT)(nil)

// Signature implements sdt.Table.
func (t *SRAT) Signature() sdt.Signature {
	return sdt.SignatureSRAT
}

// Header implements sdt.Table.
func (t *SRAT) Header() *sdt.Header {
	return &t.hdr
}

// UnmarshalSDT implements sdt.Table.
func (t *SRAT) UnmarshalSDT(raw *sdt.Raw) error {
	if err := check.MinLength("SRAT", raw.Data, EntriesOffset); err != nil {
		return err
	}
	t.hdr = raw.Hdr
	t.TableRevision = binary.LittleEndian.Uint32(raw.Data[sdt.HeaderSize:])
	t.data = raw.Data
	t.layout = entry.LayoutACPI
	return nil
}

// SetLayout overrides the entry framing, for tables using LayoutWide.
// Structure fields and sizes move by the extra header bytes.
func (t *SRAT) SetLayout(layout entry.Layout) {
	t.layout = layout
}

// Entries returns a fresh iterator over the affinity structures.
func (t *SRAT) Entries() *Entries {
	return &Entries{it: entry.New(t.data, EntriesOffset, t.layout), layout: t.layout}
}

// Type is the type of an affinity structure.
type Type uint8

// Affinity structure types.
const (
	TypeLocalAPICAffinity Type = iota
	TypeMemoryAffinity
	TypeX2APICAffinity
	TypeGICCAffinity
	TypeGICITSAffinity
	TypeGenericInitiatorAffinity
	TypeGenericPortAffinity
)

func (t Type) String() string {
	switch t {
	case TypeLocalAPICAffinity:
		return "LocalAPICAffinity"
	case TypeMemoryAffinity:
		return "MemoryAffinity"
	case TypeX2APICAffinity:
		return "X2APICAffinity"
	case TypeGICCAffinity:
		return "GICCAffinity"
	case TypeGICITSAffinity:
		return "GICITSAffinity"
	case TypeGenericInitiatorAffinity:
		return "GenericInitiatorAffinity"
	case TypeGenericPortAffinity:
		return "GenericPortAffinity"
	}
	return fmt.Sprintf("unknown_type_%d", uint8(t))
}
