// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package madt

import (
	"github.com/linuxboot/acpitables/pkg/acpi/sdt"
)

// LocalAPICFlags are the flags of local APIC and local x2APIC structures.
type LocalAPICFlags uint32

// Enabled returns true if the processor is ready for use.
func (f LocalAPICFlags) Enabled() bool {
	return sdt.Bit32(uint32(f), 0)
}

// OnlineCapable returns true if a disabled processor may be enabled at
// runtime.
func (f LocalAPICFlags) OnlineCapable() bool {
	return sdt.Bit32(uint32(f), 1)
}

// Polarity is the polarity of an interrupt input.
type Polarity uint8

// Polarities.
const (
	PolaritySameAsBus Polarity = iota
	PolarityActiveHigh
	PolarityReserved
	PolarityActiveLow
)

func (p Polarity) String() string {
	switch p {
	case PolaritySameAsBus:
		return "SameAsBus"
	case PolarityActiveHigh:
		return "ActiveHigh"
	case PolarityActiveLow:
		return "ActiveLow"
	}
	return "Reserved"
}

// TriggerMode is the trigger mode of an interrupt input.
type TriggerMode uint8

// Trigger modes.
const (
	TriggerModeSameAsBus TriggerMode = iota
	TriggerModeEdge
	TriggerModeReserved
	TriggerModeLevel
)

func (m TriggerMode) String() string {
	switch m {
	case TriggerModeSameAsBus:
		return "SameAsBus"
	case TriggerModeEdge:
		return "Edge"
	case TriggerModeLevel:
		return "Level"
	}
	return "Reserved"
}

// MPSINTIFlags are the MPS INTI flags of interrupt source overrides and NMI
// structures.
type MPSINTIFlags uint16

// Polarity decodes bits 0..2.
func (f MPSINTIFlags) Polarity() Polarity {
	return Polarity(sdt.Bits32(uint32(f), 0, 2))
}

// TriggerMode decodes bits 2..4.
func (f MPSINTIFlags) TriggerMode() TriggerMode {
	return TriggerMode(sdt.Bits32(uint32(f), 2, 4))
}
