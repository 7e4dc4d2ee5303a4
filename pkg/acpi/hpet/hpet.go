// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hpet decodes the High Precision Event Timer description table.
package hpet

import (
	"encoding/binary"
	"fmt"

	"github.com/linuxboot/acpitables/pkg/acpi/sdt"
	"github.com/linuxboot/acpitables/pkg/check"
)

// Size is the size of the HPET table.
const Size = sdt.HeaderSize + 20

// EventTimerBlockID is the packed capabilities word of the first timer
// block, a copy of the low half of the general capabilities register.
type EventTimerBlockID uint32

// HardwareRevision returns bits 0..8.
func (id EventTimerBlockID) HardwareRevision() uint8 {
	return uint8(sdt.Bits32(uint32(id), 0, 8))
}

// NumComparators returns bits 8..13 as stored by firmware.
func (id EventTimerBlockID) NumComparators() uint8 {
	return uint8(sdt.Bits32(uint32(id), 8, 13))
}

// Counter64Bit returns true if the main counter is 64 bits wide.
func (id EventTimerBlockID) Counter64Bit() bool {
	return sdt.Bit32(uint32(id), 13)
}

// LegacyIRQCapable returns true if the block supports legacy replacement
// interrupt routing.
func (id EventTimerBlockID) LegacyIRQCapable() bool {
	return sdt.Bit32(uint32(id), 15)
}

// PCIVendorID returns bits 16..32.
func (id EventTimerBlockID) PCIVendorID() uint16 {
	return uint16(sdt.Bits32(uint32(id), 16, 32))
}

// PageProtection is the guarantee of how much space after the base address
// can be accessed without side effects.
type PageProtection uint8

// Page protection classes.
const (
	PageProtectionNone PageProtection = iota
	PageProtection4K
	PageProtection64K
	PageProtectionOther
)

func (p PageProtection) String() string {
	switch p {
	case PageProtectionNone:
		return "None"
	case PageProtection4K:
		return "Protected4K"
	case PageProtection64K:
		return "Protected64K"
	case PageProtectionOther:
		return "Other"
	}
	return fmt.Sprintf("PageProtection(%d)", uint8(p))
}

// PageProtectionAndOEM is the packed page protection byte.
type PageProtectionAndOEM uint8

// Protection classifies bits 0..4. Codes 3 to 15 are reserved and reported
// as PageProtectionOther.
func (v PageProtectionAndOEM) Protection() PageProtection {
	switch sdt.Bits32(uint32(v), 0, 4) {
	case 0:
		return PageProtectionNone
	case 1:
		return PageProtection4K
	case 2:
		return PageProtection64K
	default:
		return PageProtectionOther
	}
}

// OEMAttributes returns bits 4..8.
func (v PageProtectionAndOEM) OEMAttributes() uint8 {
	return uint8(sdt.Bits32(uint32(v), 4, 8))
}

// HPET is the HPET description table.
type HPET struct {
	hdr sdt.Header

	EventTimerBlockID    EventTimerBlockID
	BaseAddress          sdt.GenericAddress
	HPETNumber           uint8
	ClockTickUnit        uint16
	PageProtectionAndOEM PageProtectionAndOEM
}

var _ sdt.Table = (*HPET)(nil)

// Signature implements sdt.Table.
func (t *HPET) Signature() sdt.Signature {
	return sdt.SignatureHPET
}

// Header implements sdt.Table.
func (t *HPET) Header() *sdt.Header {
	return &t.hdr
}

// UnmarshalSDT implements sdt.Table.
func (t *HPET) UnmarshalSDT(raw *sdt.Raw) error {
	b := raw.Data
	if err := check.MinLength("HPET", b, Size); err != nil {
		return err
	}
	gas, err := sdt.ParseGenericAddress(b[40:])
	if err != nil {
		return err
	}
	t.hdr = raw.Hdr
	t.EventTimerBlockID = EventTimerBlockID(binary.LittleEndian.Uint32(b[36:]))
	t.BaseAddress = gas
	t.HPETNumber = b[52]
	t.ClockTickUnit = binary.LittleEndian.Uint16(b[53:])
	t.PageProtectionAndOEM = PageProtectionAndOEM(b[55])
	return nil
}
