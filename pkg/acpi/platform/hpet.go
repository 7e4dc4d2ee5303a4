// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package platform

import (
	"github.com/linuxboot/acpitables/pkg/acpi/hpet"
	"github.com/linuxboot/acpitables/pkg/acpi/sdt"
	"github.com/linuxboot/acpitables/pkg/log"
)

// HPETInfo describes the first HPET block.
type HPETInfo struct {
	HardwareRevision uint8
	NumComparators   uint8
	Counter64Bit     bool
	LegacyIRQCapable bool
	PCIVendorID      uint16
	BaseAddress      uint64
	HPETNumber       uint8

	// ClockTickUnit is the minimum number of ticks that can be set
	// without losing interrupts in periodic mode.
	ClockTickUnit  uint16
	PageProtection hpet.PageProtection
	OEMAttributes  uint8
}

// NewHPETInfo reads the HPET table from store. It is required: a missing
// table returns *sdt.ErrTableNotFound.
func NewHPETInfo(store sdt.Store) (*HPETInfo, error) {
	table, err := sdt.Find[hpet.HPET](store)
	if err != nil {
		return nil, err
	}
	if table.BaseAddress.Space != sdt.AddressSpaceSystemMemory {
		log.Warnf("HPET is reported in address space %s, not system memory; tables invalid?", table.BaseAddress.Space)
	}

	id := table.EventTimerBlockID
	return &HPETInfo{
		HardwareRevision: id.HardwareRevision(),
		NumComparators:   id.NumComparators(),
		Counter64Bit:     id.Counter64Bit(),
		LegacyIRQCapable: id.LegacyIRQCapable(),
		PCIVendorID:      id.PCIVendorID(),
		BaseAddress:      table.BaseAddress.Address,
		HPETNumber:       table.HPETNumber,
		ClockTickUnit:    table.ClockTickUnit,
		PageProtection:   table.PageProtectionAndOEM.Protection(),
		OEMAttributes:    table.PageProtectionAndOEM.OEMAttributes(),
	}, nil
}
