// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fadt decodes the Fixed ACPI Description Table.
//
// The table grew with every ACPI revision, so a field is decoded only when
// the declared length covers it. Absent optional fields are reported as
// missing rather than zero where the difference matters.
package fadt

import (
	"encoding/binary"

	"github.com/linuxboot/acpitables/pkg/acpi/sdt"
	"github.com/linuxboot/acpitables/pkg/check"
)

// Offsets of the decoded fields.
const (
	offsetFirmwareCtrl       = 36
	offsetDSDT               = 40
	offsetPreferredPMProfile = 45
	offsetSCIInterrupt       = 46
	offsetSMICommand         = 48
	offsetPMTimerBlock       = 76
	offsetPMTimerLength      = 91
	offsetIAPCBootArch       = 109
	offsetFlags              = 112
	offsetResetRegister      = 116
	offsetResetValue         = 128
	offsetARMBootArch        = 129
	offsetMinorVersion       = 131
	offsetXFirmwareCtrl      = 132
	offsetXDSDT              = 140
	offsetXPMTimerBlock      = 208
	offsetHypervisorVendorID = 268
)

// MinSize is the size of the ACPI 1.0 table, the smallest accepted.
const MinSize = offsetFlags + 4

// Size is the size of the current revision of the table.
const Size = offsetHypervisorVendorID + 8

// FADT is the Fixed ACPI Description Table.
type FADT struct {
	hdr sdt.Header

	FirmwareCtrl       uint32
	DSDT               uint32
	PreferredPMProfile PowerProfile
	SCIInterrupt       uint16
	SMICommand         uint32
	PMTimerBlock       uint32
	PMTimerLength      uint8
	IAPCBootArch       IAPCBootArch
	Flags              Flags

	// Fields below are nil or zero if the table is too short to hold them.
	ResetRegister      *sdt.GenericAddress
	ResetValue         uint8
	ARMBootArch        uint16
	MinorVersion       uint8
	XFirmwareCtrl      uint64
	XDSDT              uint64
	XPMTimerBlock      *sdt.GenericAddress
	HypervisorVendorID uint64
}

var _ sdt.Table = (*FADT)(nil)

// Signature implements sdt.Table.
func (t *FADT) Signature() sdt.Signature {
	return sdt.SignatureFADT
}

// Header implements sdt.Table.
func (t *FADT) Header() *sdt.Header {
	return &t.hdr
}

func has(b []byte, offset, size int) bool {
	return check.Field(b, offset, size) == nil
}

// UnmarshalSDT implements sdt.Table.
func (t *FADT) UnmarshalSDT(raw *sdt.Raw) error {
	b := raw.Data
	if err := check.MinLength("FADT", b, MinSize); err != nil {
		return err
	}
	le := binary.LittleEndian
	*t = FADT{
		hdr:                raw.Hdr,
		FirmwareCtrl:       le.Uint32(b[offsetFirmwareCtrl:]),
		DSDT:               le.Uint32(b[offsetDSDT:]),
		PreferredPMProfile: ParsePowerProfile(b[offsetPreferredPMProfile]),
		SCIInterrupt:       le.Uint16(b[offsetSCIInterrupt:]),
		SMICommand:         le.Uint32(b[offsetSMICommand:]),
		PMTimerBlock:       le.Uint32(b[offsetPMTimerBlock:]),
		PMTimerLength:      b[offsetPMTimerLength],
		IAPCBootArch:       IAPCBootArch(le.Uint16(b[offsetIAPCBootArch:])),
		Flags:              Flags(le.Uint32(b[offsetFlags:])),
	}

	if has(b, offsetResetRegister, sdt.GenericAddressSize) {
		gas, err := sdt.ParseGenericAddress(b[offsetResetRegister:])
		if err != nil {
			return err
		}
		t.ResetRegister = &gas
	}
	if has(b, offsetResetValue, 1) {
		t.ResetValue = b[offsetResetValue]
	}
	if has(b, offsetARMBootArch, 2) {
		t.ARMBootArch = le.Uint16(b[offsetARMBootArch:])
	}
	if has(b, offsetMinorVersion, 1) {
		t.MinorVersion = b[offsetMinorVersion]
	}
	if has(b, offsetXFirmwareCtrl, 8) {
		t.XFirmwareCtrl = le.Uint64(b[offsetXFirmwareCtrl:])
	}
	if has(b, offsetXDSDT, 8) {
		t.XDSDT = le.Uint64(b[offsetXDSDT:])
	}
	if has(b, offsetXPMTimerBlock, sdt.GenericAddressSize) {
		gas, err := sdt.ParseGenericAddress(b[offsetXPMTimerBlock:])
		if err != nil {
			return err
		}
		t.XPMTimerBlock = &gas
	}
	if has(b, offsetHypervisorVendorID, 8) {
		t.HypervisorVendorID = le.Uint64(b[offsetHypervisorVendorID:])
	}
	return nil
}

// DSDTAddress returns the physical address of the DSDT, preferring the
// 64-bit field.
func (t *FADT) DSDTAddress() uint64 {
	if t.XDSDT != 0 {
		return t.XDSDT
	}
	return uint64(t.DSDT)
}

// FACSAddress returns the physical address of the FACS, preferring the
// 64-bit field.
func (t *FADT) FACSAddress() uint64 {
	if t.XFirmwareCtrl != 0 {
		return t.XFirmwareCtrl
	}
	return uint64(t.FirmwareCtrl)
}
