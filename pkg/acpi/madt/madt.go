// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package madt decodes the Multiple APIC Description Table, which lists the
// interrupt controllers and processors of the platform.
package madt

import (
	"encoding/binary"
	"fmt"

	"github.com/linuxboot/acpitables/pkg/acpi/sdt"
	"github.com/linuxboot/acpitables/pkg/acpi/sdt/entry"
	"github.com/linuxboot/acpitables/pkg/check"
)

// EntriesOffset is the offset of the first interrupt controller structure.
const EntriesOffset = sdt.HeaderSize + 8

// Flags are the MADT flags.
type Flags uint32

// PCATCompat returns true if the system also has dual 8259 PICs which must
// be disabled before the APICs are used.
func (f Flags) PCATCompat() bool {
	return sdt.Bit32(uint32(f), 0)
}

// ErrNoWakeupEntry means the table has no multiprocessor wakeup structure.
type ErrNoWakeupEntry struct{}

func (ErrNoWakeupEntry) Error() string {
	return "MADT has no multiprocessor wakeup structure"
}

// MADT is the Multiple APIC Description Table.
type MADT struct {
	hdr sdt.Header

	LocalAPICAddress uint32
	Flags            Flags

	data []byte
}

var _ sdt.Table = (*MADT)(nil)

// Signature implements sdt.Table.
func (t *MADT) Signature() sdt.Signature {
	return sdt.SignatureMADT
}

// Header implements sdt.Table.
func (t *MADT) Header() *sdt.Header {
	return &t.hdr
}

// UnmarshalSDT implements sdt.Table.
func (t *MADT) UnmarshalSDT(raw *sdt.Raw) error {
	if err := check.MinLength("MADT", raw.Data, EntriesOffset); err != nil {
		return err
	}
	t.hdr = raw.Hdr
	t.LocalAPICAddress = binary.LittleEndian.Uint32(raw.Data[36:])
	t.Flags = Flags(binary.LittleEndian.Uint32(raw.Data[40:]))
	t.data = raw.Data
	return nil
}

// PCATCompat is a shortcut for t.Flags.PCATCompat().
func (t *MADT) PCATCompat() bool {
	return t.Flags.PCATCompat()
}

// Entries returns a fresh iterator over the interrupt controller
// structures.
func (t *MADT) Entries() *Entries {
	return &Entries{it: entry.New(t.data, EntriesOffset, entry.LayoutACPI)}
}

// WakeupMailboxAddress returns the physical address of the multiprocessor
// wakeup mailbox.
func (t *MADT) WakeupMailboxAddress() (uint64, error) {
	it := t.Entries()
	for it.Next() {
		if w, ok := it.Entry().(*MultiprocessorWakeup); ok {
			return w.MailboxAddress, nil
		}
	}
	if err := it.Err(); err != nil {
		return 0, fmt.Errorf("unable to find the wakeup structure: %w", err)
	}
	return 0, ErrNoWakeupEntry{}
}

// Type is the type of an interrupt controller structure.
type Type uint8

// Interrupt controller structure types.
const (
	TypeLocalAPIC                Type = 0x00
	TypeIOAPIC                   Type = 0x01
	TypeInterruptSourceOverride  Type = 0x02
	TypeNMISource                Type = 0x03
	TypeLocalAPICNMI             Type = 0x04
	TypeLocalAPICAddressOverride Type = 0x05
	TypeIOSAPIC                  Type = 0x06
	TypeLocalSAPIC               Type = 0x07
	TypePlatformInterruptSources Type = 0x08
	TypeLocalX2APIC              Type = 0x09
	TypeLocalX2APICNMI           Type = 0x0a
	TypeGICC                     Type = 0x0b
	TypeGICD                     Type = 0x0c
	TypeGICMSIFrame              Type = 0x0d
	TypeGICR                     Type = 0x0e
	TypeGICITS                   Type = 0x0f
	TypeMultiprocessorWakeup     Type = 0x10
)

func (t Type) String() string {
	switch t {
	case TypeLocalAPIC:
		return "LocalAPIC"
	case TypeIOAPIC:
		return "IOAPIC"
	case TypeInterruptSourceOverride:
		return "InterruptSourceOverride"
	case TypeNMISource:
		return "NMISource"
	case TypeLocalAPICNMI:
		return "LocalAPICNMI"
	case TypeLocalAPICAddressOverride:
		return "LocalAPICAddressOverride"
	case TypeIOSAPIC:
		return "IOSAPIC"
	case TypeLocalSAPIC:
		return "LocalSAPIC"
	case TypePlatformInterruptSources:
		return "PlatformInterruptSources"
	case TypeLocalX2APIC:
		return "LocalX2APIC"
	case TypeLocalX2APICNMI:
		return "LocalX2APICNMI"
	case TypeGICC:
		return "GICC"
	case TypeGICD:
		return "GICD"
	case TypeGICMSIFrame:
		return "GICMSIFrame"
	case TypeGICR:
		return "GICR"
	case TypeGICITS:
		return "GICITS"
	case TypeMultiprocessorWakeup:
		return "MultiprocessorWakeup"
	}
	return fmt.Sprintf("unknown_type_0x%02x", uint8(t))
}
