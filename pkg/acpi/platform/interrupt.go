// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package platform

import (
	"fmt"

	"github.com/linuxboot/acpitables/pkg/acpi/madt"
)

// InterruptModelKind is the interrupt controller architecture.
type InterruptModelKind int

// Interrupt models.
const (
	InterruptModelUnknown InterruptModelKind = iota
	InterruptModelAPIC
)

func (k InterruptModelKind) String() string {
	switch k {
	case InterruptModelAPIC:
		return "APIC"
	}
	return "Unknown"
}

// InterruptModel describes the interrupt controllers. APIC is set when Kind
// is InterruptModelAPIC.
type InterruptModel struct {
	Kind InterruptModelKind
	APIC *APIC
}

// IOAPIC is an I/O APIC.
type IOAPIC struct {
	ID                        uint8
	Address                   uint32
	GlobalSystemInterruptBase uint32
}

// LocalInterruptLine is a local APIC interrupt input.
type LocalInterruptLine uint8

func (l LocalInterruptLine) String() string {
	return fmt.Sprintf("LINT%d", uint8(l))
}

// NMILine is the local interrupt input NMI is delivered to. AllProcessors
// is set if it applies to every processor, ProcessorUID is meaningful
// otherwise.
type NMILine struct {
	AllProcessors bool
	ProcessorUID  uint32
	Line          LocalInterruptLine
}

// InterruptSourceOverride routes an ISA interrupt to a global system
// interrupt.
type InterruptSourceOverride struct {
	ISASource             uint8
	GlobalSystemInterrupt uint32
	Polarity              madt.Polarity
	TriggerMode           madt.TriggerMode
}

// NMISource is a global system interrupt wired as NMI.
type NMISource struct {
	GlobalSystemInterrupt uint32
	Polarity              madt.Polarity
	TriggerMode           madt.TriggerMode
}

// APIC is the APIC interrupt model.
type APIC struct {
	LocalAPICAddress         uint64
	IOAPICs                  []IOAPIC
	LocalAPICNMILines        []NMILine
	InterruptSourceOverrides []InterruptSourceOverride
	NMISources               []NMISource

	// AlsoHasLegacyPICs is set if the 8259 PICs must be masked.
	AlsoHasLegacyPICs bool
}

// NewInterruptModel derives the interrupt model and the processor
// topology from the MADT. ProcessorInfo is nil if the table lists no
// processor. The first processor entry is the boot processor.
func NewInterruptModel(table *madt.MADT) (InterruptModel, *ProcessorInfo) {
	return NewInterruptModelIn(table, nil)
}

// NewInterruptModelIn is NewInterruptModel with caller-owned storage.
func NewInterruptModelIn(table *madt.MADT, buf *Buffers) (InterruptModel, *ProcessorInfo) {
	apic := &APIC{
		LocalAPICAddress:         uint64(table.LocalAPICAddress),
		IOAPICs:                  buf.ioAPICs(),
		LocalAPICNMILines:        buf.localAPICNMILines(),
		InterruptSourceOverrides: buf.interruptSourceOverrides(),
		NMISources:               buf.nmiSources(),
		AlsoHasLegacyPICs:        table.PCATCompat(),
	}
	isAPIC := false

	var boot *Processor
	aps := buf.applicationProcessors()
	addProcessor := func(uid, apicID uint32, flags madt.LocalAPICFlags) {
		isAP := boot != nil
		p := Processor{
			UID:         uid,
			LocalAPICID: apicID,
			State:       processorState(isAP, flags.Enabled()),
			IsAP:        isAP,
		}
		if isAP {
			aps = append(aps, p)
		} else {
			boot = &p
		}
	}

	// A malformed entry stops the walk. It was logged, and what was
	// decoded before it is used.
	it := table.Entries()
	for it.Next() {
		switch e := it.Entry().(type) {
		case *madt.LocalAPIC:
			isAPIC = true
			addProcessor(uint32(e.ProcessorUID), uint32(e.APICID), e.Flags)
		case *madt.LocalX2APIC:
			isAPIC = true
			addProcessor(e.ProcessorUID, e.X2APICID, e.Flags)
		case *madt.IOAPIC:
			isAPIC = true
			apic.IOAPICs = append(apic.IOAPICs, IOAPIC{
				ID:                        e.ID,
				Address:                   e.Address,
				GlobalSystemInterruptBase: e.GlobalSystemInterruptBase,
			})
		case *madt.InterruptSourceOverride:
			isAPIC = true
			apic.InterruptSourceOverrides = append(apic.InterruptSourceOverrides, InterruptSourceOverride{
				ISASource:             e.Source,
				GlobalSystemInterrupt: e.GlobalSystemInterrupt,
				Polarity:              e.Flags.Polarity(),
				TriggerMode:           e.Flags.TriggerMode(),
			})
		case *madt.NMISource:
			isAPIC = true
			apic.NMISources = append(apic.NMISources, NMISource{
				GlobalSystemInterrupt: e.GlobalSystemInterrupt,
				Polarity:              e.Flags.Polarity(),
				TriggerMode:           e.Flags.TriggerMode(),
			})
		case *madt.LocalAPICNMI:
			isAPIC = true
			apic.LocalAPICNMILines = append(apic.LocalAPICNMILines, NMILine{
				AllProcessors: e.AllProcessors(),
				ProcessorUID:  uint32(e.ProcessorUID),
				Line:          LocalInterruptLine(e.LINT),
			})
		case *madt.LocalX2APICNMI:
			isAPIC = true
			apic.LocalAPICNMILines = append(apic.LocalAPICNMILines, NMILine{
				AllProcessors: e.AllProcessors(),
				ProcessorUID:  e.ProcessorUID,
				Line:          LocalInterruptLine(e.LINT),
			})
		case *madt.LocalAPICAddressOverride:
			isAPIC = true
			apic.LocalAPICAddress = e.Address
		}
	}

	var processors *ProcessorInfo
	if boot != nil {
		processors = &ProcessorInfo{BootProcessor: *boot, ApplicationProcessors: aps}
	}
	if !isAPIC {
		return InterruptModel{Kind: InterruptModelUnknown}, processors
	}
	return InterruptModel{Kind: InterruptModelAPIC, APIC: apic}, processors
}
