// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package platform

import (
	"github.com/linuxboot/acpitables/pkg/acpi/fadt"
	"github.com/linuxboot/acpitables/pkg/acpi/sdt"
	"github.com/linuxboot/acpitables/pkg/log"
)

// pmTimerLength is the only PM_TMR_LEN the FADT allows.
const pmTimerLength = 4

// PmTimer is the ACPI power management timer.
type PmTimer struct {
	Base sdt.GenericAddress

	// Supports32Bit is false for 24-bit counters, which wrap much earlier.
	Supports32Bit bool
}

// Mask returns the mask of the valid counter bits.
func (t *PmTimer) Mask() uint32 {
	if t.Supports32Bit {
		return 0xffffffff
	}
	return 0x00ffffff
}

// NewPmTimer returns the PM timer described by the FADT, or nil if there
// is none. The extended block is used when it holds a non-zero address.
func NewPmTimer(table *fadt.FADT) *PmTimer {
	supports32Bit := table.Flags.PMTimerIs32Bit()
	if x := table.XPMTimerBlock; x != nil && x.Address != 0 {
		return &PmTimer{Base: *x, Supports32Bit: supports32Bit}
	}
	if table.PMTimerBlock != 0 {
		if table.PMTimerLength != pmTimerLength {
			log.Warnf("FADT PM_TMR_LEN is %d, expected %d; using a %d-bit register",
				table.PMTimerLength, pmTimerLength, pmTimerLength*8)
		}
		return &PmTimer{
			Base: sdt.GenericAddress{
				Space:    sdt.AddressSpaceSystemIO,
				BitWidth: pmTimerLength * 8,
				Address:  uint64(table.PMTimerBlock),
			},
			Supports32Bit: supports32Bit,
		}
	}
	return nil
}
