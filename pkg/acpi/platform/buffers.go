// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package platform

// Buffers is the caller-owned backing storage of the aggregated results.
type Buffers struct {
	ProcessorAffinity        []ProcessorAffinity
	MemoryAffinity           []MemoryAffinity
	DistanceMatrix           []byte
	ApplicationProcessors    []Processor
	IOAPICs                  []IOAPIC
	LocalAPICNMILines        []NMILine
	InterruptSourceOverrides []InterruptSourceOverride
	NMISources               []NMISource
}

// NewBuffers preallocates buffers for the given number of processors,
// memory ranges and proximity domains.
func NewBuffers(processors, memoryRanges, domains int) *Buffers {
	return &Buffers{
		ProcessorAffinity:     make([]ProcessorAffinity, 0, processors),
		MemoryAffinity:        make([]MemoryAffinity, 0, memoryRanges),
		DistanceMatrix:        make([]byte, 0, domains*domains),
		ApplicationProcessors: make([]Processor, 0, processors),
	}
}

func (b *Buffers) processorAffinity() []ProcessorAffinity {
	if b == nil {
		return nil
	}
	return b.ProcessorAffinity[:0]
}

func (b *Buffers) memoryAffinity() []MemoryAffinity {
	if b == nil {
		return nil
	}
	return b.MemoryAffinity[:0]
}

func (b *Buffers) distanceMatrix() []byte {
	if b == nil {
		return nil
	}
	return b.DistanceMatrix[:0]
}

func (b *Buffers) applicationProcessors() []Processor {
	if b == nil {
		return nil
	}
	return b.ApplicationProcessors[:0]
}

func (b *Buffers) ioAPICs() []IOAPIC {
	if b == nil {
		return nil
	}
	return b.IOAPICs[:0]
}

func (b *Buffers) localAPICNMILines() []NMILine {
	if b == nil {
		return nil
	}
	return b.LocalAPICNMILines[:0]
}

func (b *Buffers) interruptSourceOverrides() []InterruptSourceOverride {
	if b == nil {
		return nil
	}
	return b.InterruptSourceOverrides[:0]
}

func (b *Buffers) nmiSources() []NMISource {
	if b == nil {
		return nil
	}
	return b.NMISources[:0]
}
