// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package platform

import (
	"errors"

	"github.com/linuxboot/acpitables/pkg/acpi/sdt"
	"github.com/linuxboot/acpitables/pkg/acpi/slit"
	"github.com/linuxboot/acpitables/pkg/acpi/srat"
	"github.com/linuxboot/acpitables/pkg/log"
	"github.com/linuxboot/acpitables/pkg/memrange"
)

// ProcessorAffinity is the proximity domain of a processor.
type ProcessorAffinity struct {
	LocalAPICID     uint32
	ProximityDomain uint32
	Enabled         bool
}

// MemoryAffinity is the proximity domain of a physical memory range.
type MemoryAffinity struct {
	BaseAddress     uint64
	Length          uint64
	ProximityDomain uint32
	Enabled         bool
	HotPluggable    bool
	NonVolatile     bool
}

// Range returns the physical range of the entry.
func (m MemoryAffinity) Range() memrange.Range {
	return memrange.Range{Base: m.BaseAddress, Length: m.Length}
}

// NumaInfo describes the NUMA topology reported by SRAT and SLIT.
type NumaInfo struct {
	ProcessorAffinity   []ProcessorAffinity
	MemoryAffinity      []MemoryAffinity
	NumProximityDomains uint64

	// DistanceMatrix is row-major: the distance from domain i to domain j
	// is DistanceMatrix[i*NumProximityDomains+j]. It is empty if the SLIT
	// is missing or too short.
	DistanceMatrix []byte
}

// NewNumaInfo reads SRAT and SLIT from store. Both tables are optional:
// a missing table leaves the corresponding fields empty.
func NewNumaInfo(store sdt.Store) *NumaInfo {
	return NewNumaInfoIn(store, nil)
}

// NewNumaInfoIn is NewNumaInfo with caller-owned storage.
func NewNumaInfoIn(store sdt.Store, buf *Buffers) *NumaInfo {
	info := &NumaInfo{
		ProcessorAffinity: buf.processorAffinity(),
		MemoryAffinity:    buf.memoryAffinity(),
		DistanceMatrix:    buf.distanceMatrix(),
	}

	// A malformed SRAT entry stops the walk with a warning. The entries
	// decoded before it are kept.
	if table := findOptional[srat.SRAT](store); table != nil {
		it := table.Entries()
		for it.Next() {
			switch e := it.Entry().(type) {
			case *srat.LocalAPICAffinity:
				info.ProcessorAffinity = append(info.ProcessorAffinity, ProcessorAffinity{
					LocalAPICID:     uint32(e.APICID),
					ProximityDomain: e.ProximityDomain(),
					Enabled:         e.Flags.Enabled(),
				})
			case *srat.X2APICAffinity:
				info.ProcessorAffinity = append(info.ProcessorAffinity, ProcessorAffinity{
					LocalAPICID:     e.X2APICID,
					ProximityDomain: e.ProximityDomain,
					Enabled:         e.Flags.Enabled(),
				})
			case *srat.MemoryAffinity:
				info.MemoryAffinity = append(info.MemoryAffinity, MemoryAffinity{
					BaseAddress:     e.BaseAddress(),
					Length:          e.Length(),
					ProximityDomain: e.ProximityDomain,
					Enabled:         e.Flags.Enabled(),
					HotPluggable:    e.Flags.HotPluggable(),
					NonVolatile:     e.Flags.NonVolatile(),
				})
			}
		}
	}

	if distances := findOptional[slit.SLIT](store); distances != nil {
		info.NumProximityDomains = distances.NumProximityDomains
		info.DistanceMatrix = append(info.DistanceMatrix, distances.Matrix()...)
	}

	return info
}

// findOptional returns nil if the table is missing. A present but
// undecodable table is reported as a warning and treated as missing.
func findOptional[T any, PT interface {
	*T
	sdt.Table
}](store sdt.Store) PT {
	table, err := sdt.Find[T, PT](store)
	if err == nil {
		return table
	}
	var notFound *sdt.ErrTableNotFound
	if !errors.As(err, &notFound) {
		log.Warnf("ignoring optional table: %v", err)
	}
	return nil
}

// Distances returns the distance matrix as slit.Distances.
func (n *NumaInfo) Distances() slit.Distances {
	return slit.Distances{N: n.NumProximityDomains, Matrix: n.DistanceMatrix}
}

// Distance returns the relative distance from domain i to domain j.
func (n *NumaInfo) Distance(i, j uint64) (uint8, bool) {
	return n.Distances().Entry(i, j)
}

// Domains returns the proximity domains referenced by any entry, in order
// of first appearance.
func (n *NumaInfo) Domains() []uint32 {
	var result []uint32
	seen := map[uint32]struct{}{}
	add := func(d uint32) {
		if _, ok := seen[d]; !ok {
			seen[d] = struct{}{}
			result = append(result, d)
		}
	}
	for _, p := range n.ProcessorAffinity {
		add(p.ProximityDomain)
	}
	for _, m := range n.MemoryAffinity {
		add(m.ProximityDomain)
	}
	return result
}

// MemoryRanges returns the merged enabled memory ranges of a domain.
func (n *NumaInfo) MemoryRanges(domain uint32) memrange.Ranges {
	var result memrange.Ranges
	for _, m := range n.MemoryAffinity {
		if m.Enabled && m.ProximityDomain == domain {
			result = append(result, m.Range())
		}
	}
	result.SortAndMerge()
	return result
}

// DomainOf returns the proximity domain of the enabled memory range
// containing addr.
func (n *NumaInfo) DomainOf(addr uint64) (uint32, bool) {
	for _, m := range n.MemoryAffinity {
		if m.Enabled && m.Range().Contains(addr) {
			return m.ProximityDomain, true
		}
	}
	return 0, false
}

// ProcessorsOf returns the enabled processors of a domain.
func (n *NumaInfo) ProcessorsOf(domain uint32) []ProcessorAffinity {
	var result []ProcessorAffinity
	for _, p := range n.ProcessorAffinity {
		if p.Enabled && p.ProximityDomain == domain {
			result = append(result, p)
		}
	}
	return result
}
