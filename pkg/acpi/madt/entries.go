// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package madt

import (
	"encoding/binary"

	"github.com/linuxboot/acpitables/pkg/acpi/sdt/entry"
	"github.com/linuxboot/acpitables/pkg/log"
)

// Sizes of the decoded structures. MultiprocessorWakeupSize is the size
// of the version 0 structure, version 1 appends a reset vector.
const (
	LocalAPICSize                = 8
	IOAPICSize                   = 12
	InterruptSourceOverrideSize  = 10
	NMISourceSize                = 8
	LocalAPICNMISize             = 6
	LocalAPICAddressOverrideSize = 12
	LocalX2APICSize              = 16
	LocalX2APICNMISize           = 12
	MultiprocessorWakeupSize     = 16
	MultiprocessorWakeupV1Size   = 24
)

// Values of the processor UID fields of NMI structures meaning every
// processor.
const (
	AllProcessors       = 0xff
	AllX2APICProcessors = 0xffffffff
)

// Entry is one of the decoded interrupt controller structures.
type Entry interface {
	Type() Type
	Raw() entry.Entry
}

type base struct {
	raw entry.Entry
}

// Type implements Entry.
func (b base) Type() Type { return Type(b.raw.Type) }

// Raw implements Entry.
func (b base) Raw() entry.Entry { return b.raw }

// LocalAPIC describes a processor and its local APIC.
type LocalAPIC struct {
	base
	ProcessorUID uint8
	APICID       uint8
	Flags        LocalAPICFlags
}

// IOAPIC describes an I/O APIC.
type IOAPIC struct {
	base
	ID                        uint8
	Address                   uint32
	GlobalSystemInterruptBase uint32
}

// InterruptSourceOverride describes how an ISA interrupt is routed to a
// global system interrupt.
type InterruptSourceOverride struct {
	base
	Bus                   uint8
	Source                uint8
	GlobalSystemInterrupt uint32
	Flags                 MPSINTIFlags
}

// NMISource describes a global system interrupt wired as NMI.
type NMISource struct {
	base
	Flags                 MPSINTIFlags
	GlobalSystemInterrupt uint32
}

// LocalAPICNMI describes the local APIC interrupt input NMI is connected to.
type LocalAPICNMI struct {
	base
	ProcessorUID uint8
	Flags        MPSINTIFlags
	LINT         uint8
}

// AllProcessors returns true if the structure applies to every processor.
func (e *LocalAPICNMI) AllProcessors() bool {
	return e.ProcessorUID == AllProcessors
}

// LocalAPICAddressOverride provides the 64-bit local APIC address.
type LocalAPICAddressOverride struct {
	base
	Address uint64
}

// LocalX2APIC describes a processor and its local x2APIC.
type LocalX2APIC struct {
	base
	X2APICID     uint32
	Flags        LocalAPICFlags
	ProcessorUID uint32
}

// LocalX2APICNMI describes the x2APIC interrupt input NMI is connected to.
type LocalX2APICNMI struct {
	base
	Flags        MPSINTIFlags
	ProcessorUID uint32
	LINT         uint8
}

// AllProcessors returns true if the structure applies to every processor.
func (e *LocalX2APICNMI) AllProcessors() bool {
	return e.ProcessorUID == AllX2APICProcessors
}

// MultiprocessorWakeup describes the mailbox used to start application
// processors.
type MultiprocessorWakeup struct {
	base
	MailboxVersion uint16
	MailboxAddress uint64

	// ResetVector is zero for version 0 structures.
	ResetVector uint64
}

func decode(e entry.Entry) (Entry, bool, error) {
	b := e.Data
	le := binary.LittleEndian
	switch Type(e.Type) {
	case TypeLocalAPIC:
		if err := e.Require("Local APIC", LocalAPICSize); err != nil {
			return nil, true, err
		}
		return &LocalAPIC{
			base:         base{e},
			ProcessorUID: b[2],
			APICID:       b[3],
			Flags:        LocalAPICFlags(le.Uint32(b[4:])),
		}, true, nil
	case TypeIOAPIC:
		if err := e.Require("I/O APIC", IOAPICSize); err != nil {
			return nil, true, err
		}
		return &IOAPIC{
			base:                      base{e},
			ID:                        b[2],
			Address:                   le.Uint32(b[4:]),
			GlobalSystemInterruptBase: le.Uint32(b[8:]),
		}, true, nil
	case TypeInterruptSourceOverride:
		if err := e.Require("Interrupt Source Override", InterruptSourceOverrideSize); err != nil {
			return nil, true, err
		}
		return &InterruptSourceOverride{
			base:                  base{e},
			Bus:                   b[2],
			Source:                b[3],
			GlobalSystemInterrupt: le.Uint32(b[4:]),
			Flags:                 MPSINTIFlags(le.Uint16(b[8:])),
		}, true, nil
	case TypeNMISource:
		if err := e.Require("NMI Source", NMISourceSize); err != nil {
			return nil, true, err
		}
		return &NMISource{
			base:                  base{e},
			Flags:                 MPSINTIFlags(le.Uint16(b[2:])),
			GlobalSystemInterrupt: le.Uint32(b[4:]),
		}, true, nil
	case TypeLocalAPICNMI:
		if err := e.Require("Local APIC NMI", LocalAPICNMISize); err != nil {
			return nil, true, err
		}
		return &LocalAPICNMI{
			base:         base{e},
			ProcessorUID: b[2],
			Flags:        MPSINTIFlags(le.Uint16(b[3:])),
			LINT:         b[5],
		}, true, nil
	case TypeLocalAPICAddressOverride:
		if err := e.Require("Local APIC Address Override", LocalAPICAddressOverrideSize); err != nil {
			return nil, true, err
		}
		return &LocalAPICAddressOverride{
			base:    base{e},
			Address: le.Uint64(b[4:]),
		}, true, nil
	case TypeLocalX2APIC:
		if err := e.Require("Local x2APIC", LocalX2APICSize); err != nil {
			return nil, true, err
		}
		return &LocalX2APIC{
			base:         base{e},
			X2APICID:     le.Uint32(b[4:]),
			Flags:        LocalAPICFlags(le.Uint32(b[8:])),
			ProcessorUID: le.Uint32(b[12:]),
		}, true, nil
	case TypeLocalX2APICNMI:
		if err := e.Require("Local x2APIC NMI", LocalX2APICNMISize); err != nil {
			return nil, true, err
		}
		return &LocalX2APICNMI{
			base:         base{e},
			Flags:        MPSINTIFlags(le.Uint16(b[2:])),
			ProcessorUID: le.Uint32(b[4:]),
			LINT:         b[8],
		}, true, nil
	case TypeMultiprocessorWakeup:
		if err := e.Require("Multiprocessor Wakeup", MultiprocessorWakeupSize); err != nil {
			return nil, true, err
		}
		w := &MultiprocessorWakeup{
			base:           base{e},
			MailboxVersion: le.Uint16(b[2:]),
			MailboxAddress: le.Uint64(b[8:]),
		}
		if len(b) >= MultiprocessorWakeupV1Size {
			w.ResetVector = le.Uint64(b[16:])
		}
		return w, true, nil
	}
	return nil, false, nil
}

// Entries iterates over the known interrupt controller structures of a
// MADT. Unknown types are skipped. A known structure shorter than its
// layout stops the iteration like a malformed entry does.
type Entries struct {
	it  *entry.Iterator
	cur Entry
	err error
}

// Next advances to the next known entry.
func (e *Entries) Next() bool {
	if e.err != nil {
		return false
	}
	for e.it.Next() {
		decoded, known, err := decode(e.it.Entry())
		if err != nil {
			log.Warnf("MADT: %v", err)
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
