// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package srat

import (
	"encoding/binary"

	"github.com/linuxboot/acpitables/pkg/acpi/sdt"
	"github.com/linuxboot/acpitables/pkg/acpi/sdt/entry"
	"github.com/linuxboot/acpitables/pkg/log"
	"github.com/linuxboot/acpitables/pkg/memrange"
)

// Sizes of the affinity structures.
const (
	LocalAPICAffinitySize        = 16
	MemoryAffinitySize           = 40
	X2APICAffinitySize           = 24
	GICCAffinitySize             = 18
	GICITSAffinitySize           = 12
	GenericInitiatorAffinitySize = 32
)

// Entry is one of the decoded affinity structures: *LocalAPICAffinity,
// *MemoryAffinity, *X2APICAffinity, *GICCAffinity, *GICITSAffinity or
// *GenericInitiatorAffinity.
type Entry interface {
	Type() Type
	Raw() entry.Entry
}

// LocalAPICAffinityFlags are the flags of processor affinity structures.
type LocalAPICAffinityFlags uint32

// Enabled returns true if the processor entry is in use.
func (f LocalAPICAffinityFlags) Enabled() bool {
	return sdt.Bit32(uint32(f), 0)
}

// MemoryAffinityFlags are the flags of a memory affinity structure.
type MemoryAffinityFlags uint32

// Enabled returns true if the memory range is in use.
func (f MemoryAffinityFlags) Enabled() bool {
	return sdt.Bit32(uint32(f), 0)
}

// HotPluggable returns true if the memory range may be hot-plugged.
func (f MemoryAffinityFlags) HotPluggable() bool {
	return sdt.Bit32(uint32(f), 1)
}

// NonVolatile returns true if the memory range is non-volatile.
func (f MemoryAffinityFlags) NonVolatile() bool {
	return sdt.Bit32(uint32(f), 2)
}

// GICCAffinityFlags are the flags of a GICC affinity structure.
type GICCAffinityFlags uint32

// Enabled returns true if the GICC entry is in use.
func (f GICCAffinityFlags) Enabled() bool {
	return sdt.Bit32(uint32(f), 0)
}

// GenericInitiatorFlags are the flags of a generic initiator structure.
type GenericInitiatorFlags uint32

// Enabled returns true if the initiator entry is in use.
func (f GenericInitiatorFlags) Enabled() bool {
	return sdt.Bit32(uint32(f), 0)
}

// ArchitecturalTransactions returns true if the initiator supports
// architectural transactions.
func (f GenericInitiatorFlags) ArchitecturalTransactions() bool {
	return sdt.Bit32(uint32(f), 1)
}

// LocalAPICAffinity associates a local APIC with a proximity domain.
type LocalAPICAffinity struct {
	raw entry.Entry

	ProximityDomainLow  uint8
	APICID              uint8
	Flags               LocalAPICAffinityFlags
	LocalSAPICEID       uint8
	ProximityDomainHigh [3]uint8
	ClockDomain         uint32
}

// Type implements Entry.
func (e *LocalAPICAffinity) Type() Type { return TypeLocalAPICAffinity }

// Raw implements Entry.
func (e *LocalAPICAffinity) Raw() entry.Entry { return e.raw }

// ProximityDomain joins the split proximity domain fields.
func (e *LocalAPICAffinity) ProximityDomain() uint32 {
	return uint32(e.ProximityDomainLow) |
		uint32(e.ProximityDomainHigh[0])<<8 |
		uint32(e.ProximityDomainHigh[1])<<16 |
		uint32(e.ProximityDomainHigh[2])<<24
}

// MemoryAffinity associates a physical memory range with a proximity domain.
type MemoryAffinity struct {
	raw entry.Entry

	ProximityDomain uint32
	BaseAddressLow  uint32
	BaseAddressHigh uint32
	LengthLow       uint32
	LengthHigh      uint32
	Flags           MemoryAffinityFlags
}

// Type implements Entry.
func (e *MemoryAffinity) Type() Type { return TypeMemoryAffinity }

// Raw implements Entry.
func (e *MemoryAffinity) Raw() entry.Entry { return e.raw }

// BaseAddress returns the physical base address of the range.
func (e *MemoryAffinity) BaseAddress() uint64 {
	return sdt.Join64(e.BaseAddressLow, e.BaseAddressHigh)
}

// Length returns the length of the range in bytes.
func (e *MemoryAffinity) Length() uint64 {
	return sdt.Join64(e.LengthLow, e.LengthHigh)
}

// Range returns the physical range described by the entry.
func (e *MemoryAffinity) Range() memrange.Range {
	return memrange.Range{Base: e.BaseAddress(), Length: e.Length()}
}

// X2APICAffinity associates an x2APIC with a proximity domain.
type X2APICAffinity struct {
	raw entry.Entry

	ProximityDomain uint32
	X2APICID        uint32
	Flags           LocalAPICAffinityFlags
	ClockDomain     uint32
}

// Type implements Entry.
func (e *X2APICAffinity) Type() Type { return TypeX2APICAffinity }

// Raw implements Entry.
func (e *X2APICAffinity) Raw() entry.Entry { return e.raw }

// GICCAffinity associates a GIC CPU interface with a proximity domain.
type GICCAffinity struct {
	raw entry.Entry

	ProximityDomain  uint32
	ACPIProcessorUID uint32
	Flags            GICCAffinityFlags
	ClockDomain      uint32
}

// Type implements Entry.
func (e *GICCAffinity) Type() Type { return TypeGICCAffinity }

// Raw implements Entry.
func (e *GICCAffinity) Raw() entry.Entry { return e.raw }

// GICITSAffinity associates a GIC interrupt translation service with a
// proximity domain.
type GICITSAffinity struct {
	raw entry.Entry

	ProximityDomain uint32
	ITSID           uint32
}

// Type implements Entry.
func (e *GICITSAffinity) Type() Type { return TypeGICITSAffinity }

// Raw implements Entry.
func (e *GICITSAffinity) Raw() entry.Entry { return e.raw }

// DeviceHandleType selects the format of a generic initiator device handle.
type DeviceHandleType uint8

// Device handle types.
const (
	DeviceHandleTypeACPI DeviceHandleType = iota
	DeviceHandleTypePCI
)

func (t DeviceHandleType) String() string {
	switch t {
	case DeviceHandleTypeACPI:
		return "ACPI"
	case DeviceHandleTypePCI:
		return "PCI"
	}
	return "Reserved"
}

// GenericInitiatorAffinity associates a non-processor initiator (like an
// accelerator) with a proximity domain.
type GenericInitiatorAffinity struct {
	raw entry.Entry

	DeviceHandleType DeviceHandleType
	ProximityDomain  uint32
	DeviceHandle     [16]byte
	Flags            GenericInitiatorFlags
}

// Type implements Entry.
func (e *GenericInitiatorAffinity) Type() Type { return TypeGenericInitiatorAffinity }

// Raw implements Entry.
func (e *GenericInitiatorAffinity) Raw() entry.Entry { return e.raw }

// ACPIDevice decodes an ACPI device handle: the _HID and the _UID.
func (e *GenericInitiatorAffinity) ACPIDevice() (hid [8]byte, uid uint32, ok bool) {
	if e.DeviceHandleType != DeviceHandleTypeACPI {
		return hid, 0, false
	}
	copy(hid[:], e.DeviceHandle[:8])
	return hid, binary.LittleEndian.Uint32(e.DeviceHandle[8:]), true
}

// PCIDevice decodes a PCI device handle: the segment and the bus/device/
// function triple.
func (e *GenericInitiatorAffinity) PCIDevice() (segment, bdf uint16, ok bool) {
	if e.DeviceHandleType != DeviceHandleTypePCI {
		return 0, 0, false
	}
	return binary.LittleEndian.Uint16(e.DeviceHandle[0:]), binary.LittleEndian.Uint16(e.DeviceHandle[2:]), true
}

// decode reads the fields of e at offsets relative to the ACPI 2-byte
// header. Wider headers push every field, and the required size, by the
// extra header bytes.
func decode(e entry.Entry, layout entry.Layout) (Entry, bool, error) {
	shift := layout.HeaderSize - entry.LayoutACPI.HeaderSize
	if shift < 0 {
		shift = 0
	}
	b := e.Data[shift:]
	le := binary.LittleEndian
	switch Type(e.Type) {
	case TypeLocalAPICAffinity:
		if err := e.Require("Local APIC Affinity", LocalAPICAffinitySize+shift); err != nil {
			return nil, true, err
		}
		return &LocalAPICAffinity{
			raw:                 e,
			ProximityDomainLow:  b[2],
			APICID:              b[3],
			Flags:               LocalAPICAffinityFlags(le.Uint32(b[4:])),
			LocalSAPICEID:       b[8],
			ProximityDomainHigh: [3]uint8{b[9], b[10], b[11]},
			ClockDomain:         le.Uint32(b[12:]),
		}, true, nil
	case TypeMemoryAffinity:
		if err := e.Require("Memory Affinity", MemoryAffinitySize+shift); err != nil {
			return nil, true, err
		}
		return &MemoryAffinity{
			raw:             e,
			ProximityDomain: le.Uint32(b[2:]),
			BaseAddressLow:  le.Uint32(b[8:]),
			BaseAddressHigh: le.Uint32(b[12:]),
			LengthLow:       le.Uint32(b[16:]),
			LengthHigh:      le.Uint32(b[20:]),
			Flags:           MemoryAffinityFlags(le.Uint32(b[28:])),
		}, true, nil
	case TypeX2APICAffinity:
		if err := e.Require("x2APIC Affinity", X2APICAffinitySize+shift); err != nil {
			return nil, true, err
		}
		return &X2APICAffinity{
			raw:             e,
			ProximityDomain: le.Uint32(b[4:]),
			X2APICID:        le.Uint32(b[8:]),
			Flags:           LocalAPICAffinityFlags(le.Uint32(b[12:])),
			ClockDomain:     le.Uint32(b[16:]),
		}, true, nil
	case TypeGICCAffinity:
		if err := e.Require("GICC Affinity", GICCAffinitySize+shift); err != nil {
			return nil, true, err
		}
		return &GICCAffinity{
			raw:              e,
			ProximityDomain:  le.Uint32(b[2:]),
			ACPIProcessorUID: le.Uint32(b[6:]),
			Flags:            GICCAffinityFlags(le.Uint32(b[10:])),
			ClockDomain:      le.Uint32(b[14:]),
		}, true, nil
	case TypeGICITSAffinity:
		if err := e.Require("GIC ITS Affinity", GICITSAffinitySize+shift); err != nil {
			return nil, true, err
		}
		return &GICITSAffinity{
			raw:             e,
			ProximityDomain: le.Uint32(b[2:]),
			ITSID:           le.Uint32(b[8:]),
		}, true, nil
	case TypeGenericInitiatorAffinity:
		if err := e.Require("Generic Initiator Affinity", GenericInitiatorAffinitySize+shift); err != nil {
			return nil, true, err
		}
		gi := &GenericInitiatorAffinity{
			raw:              e,
			DeviceHandleType: DeviceHandleType(b[3]),
			ProximityDomain:  le.Uint32(b[4:]),
			Flags:            GenericInitiatorFlags(le.Uint32(b[24:])),
		}
		copy(gi.DeviceHandle[:], b[8:24])
		return gi, true, nil
	}
	return nil, false, nil
}

// Entries iterates over the known affinity structures of a SRAT. Unknown
// types are skipped. A known structure shorter than its layout stops the
// iteration like a malformed entry does.
type Entries struct {
	it     *entry.Iterator
	layout entry.Layout
	cur    Entry
	err    error
}

// Next advances to the next known entry.
func (e *Entries) Next() bool {
	if e.err != nil {
		return false
	}
	for e.it.Next() {
		decoded, known, err := decode(e.it.Entry(), e.layout)
		if err != nil {
			log.Warnf("SRAT: %v", err)
			e.err = err
			e.cur = nil
			return false
		}
		if !known {
			continue
		}
		e.cur = decoded
		return true
	}
	e.cur = nil
	e.err = e.it.Err()
	return false
}

// Entry returns the current entry.
func (e *Entries) Entry() Entry {
	return e.cur
}

// Err returns the error which stopped the iteration, if any.
func (e *Entries) Err() error {
	return e.err
}
