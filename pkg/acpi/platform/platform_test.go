// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package platform

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxboot/acpitables/pkg/acpi/fadt"
	"github.com/linuxboot/acpitables/pkg/acpi/hpet"
	"github.com/linuxboot/acpitables/pkg/acpi/madt"
	"github.com/linuxboot/acpitables/pkg/acpi/sdt"
	"github.com/linuxboot/acpitables/pkg/log"
	"github.com/linuxboot/acpitables/pkg/memrange"
)

func TestPlatformInfo(t *testing.T) {
	apic := madtTable(
		madtProcessor{uid: 0, apicID: 0, enabled: true},
		madtProcessor{uid: 1, apicID: 2, enabled: true},
		madtProcessor{uid: 2, apicID: 4, enabled: false},
		madtProcessor{uid: 3, apicID: 0x100, enabled: true, x2: true},
	).
		Entry(1, 12, func(e []byte) {
			e[2] = 8
			e[4], e[5], e[6], e[7] = 0x00, 0x00, 0xc0, 0xfe
		}).
		Entry(2, 10, func(e []byte) {
			e[3] = 0
			e[4] = 2
		}).
		Entry(4, 6, func(e []byte) {
			e[2] = 0xff
			e[5] = 1
		}).
		Bytes()

	store := sdt.MapStore{
		sdt.SignatureFADT: fadtTable(uint8(fadt.PowerProfileEnterpriseServer), 0x408, 0, 1<<8),
		sdt.SignatureMADT: apic,
	}
	info, err := NewPlatformInfo(store)
	require.NoError(t, err)

	assert.Equal(t, fadt.PowerProfileEnterpriseServer, info.PowerProfile)

	require.Equal(t, InterruptModelAPIC, info.InterruptModel.Kind)
	model := info.InterruptModel.APIC
	require.NotNil(t, model)
	assert.Equal(t, uint64(0xfee00000), model.LocalAPICAddress)
	assert.True(t, model.AlsoHasLegacyPICs)
	assert.Equal(t, []IOAPIC{{ID: 8, Address: 0xfec00000}}, model.IOAPICs)
	assert.Equal(t, []InterruptSourceOverride{{
		ISASource:             0,
		GlobalSystemInterrupt: 2,
		Polarity:              madt.PolaritySameAsBus,
		TriggerMode:           madt.TriggerModeSameAsBus,
	}}, model.InterruptSourceOverrides)
	assert.Equal(t, []NMILine{{AllProcessors: true, ProcessorUID: 0xff, Line: 1}}, model.LocalAPICNMILines)

	require.NotNil(t, info.ProcessorInfo)
	assert.Equal(t, Processor{UID: 0, LocalAPICID: 0, State: ProcessorStateRunning}, info.ProcessorInfo.BootProcessor)
	assert.Equal(t, []Processor{
		{UID: 1, LocalAPICID: 2, State: ProcessorStateWaitingForSipi, IsAP: true},
		{UID: 2, LocalAPICID: 4, State: ProcessorStateDisabled, IsAP: true},
		{UID: 3, LocalAPICID: 0x100, State: ProcessorStateWaitingForSipi, IsAP: true},
	}, info.ProcessorInfo.ApplicationProcessors)
	assert.Len(t, info.ProcessorInfo.Enabled(), 2)

	require.NotNil(t, info.PmTimer)
	assert.True(t, info.PmTimer.Supports32Bit)
	assert.Equal(t, uint32(0xffffffff), info.PmTimer.Mask())
	assert.Equal(t, sdt.GenericAddress{Space: sdt.AddressSpaceSystemIO, BitWidth: 32, Address: 0x408}, info.PmTimer.Base)
}

func TestPlatformInfoAPOrder(t *testing.T) {
	var processors []madtProcessor
	for i := uint32(0); i < 16; i++ {
		// APIC ids deliberately out of numeric order
		processors = append(processors, madtProcessor{uid: i, apicID: (i * 7) % 16, enabled: true})
	}
	store := sdt.MapStore{
		sdt.SignatureFADT: fadtTable(0, 0, 0, 0),
		sdt.SignatureMADT: madtTable(processors...).Bytes(),
	}
	info, err := NewPlatformInfo(store)
	require.NoError(t, err)
	require.Len(t, info.ProcessorInfo.ApplicationProcessors, 15)
	for i, ap := range info.ProcessorInfo.ApplicationProcessors {
		require.Equal(t, uint32(i+1), ap.UID)
		require.Equal(t, (uint32(i+1)*7)%16, ap.LocalAPICID)
	}
}

func TestPlatformInfoMissingTables(t *testing.T) {
	_, err := NewPlatformInfo(sdt.MapStore{sdt.SignatureMADT: madtTable().Bytes()})
	var notFound *sdt.ErrTableNotFound
	require.True(t, errors.As(err, &notFound))
	require.Equal(t, sdt.SignatureFADT, notFound.Signature)

	_, err = NewPlatformInfo(sdt.MapStore{sdt.SignatureFADT: fadtTable(0, 0, 0, 0)})
	require.True(t, errors.As(err, &notFound))
	require.Equal(t, sdt.SignatureMADT, notFound.Signature)
}

func TestPlatformInfoNoProcessors(t *testing.T) {
	store := sdt.MapStore{
		sdt.SignatureFADT: fadtTable(0, 0, 0, 0),
		sdt.SignatureMADT: madtTable().Bytes(),
	}
	info, err := NewPlatformInfo(store)
	require.NoError(t, err)
	assert.Nil(t, info.ProcessorInfo)
	assert.Nil(t, info.PmTimer)
	assert.Equal(t, InterruptModelUnknown, info.InterruptModel.Kind)
	assert.Nil(t, info.InterruptModel.APIC)
}

func TestPlatformInfoAddressOverride(t *testing.T) {
	apic := madtTable(madtProcessor{enabled: true}).
		Entry(5, 12, func(e []byte) {
			e[4], e[5], e[6], e[7], e[8] = 0x00, 0x00, 0xe0, 0xfe, 0x01
		}).
		Bytes()
	store := sdt.MapStore{sdt.SignatureFADT: fadtTable(0, 0, 0, 0), sdt.SignatureMADT: apic}
	info, err := NewPlatformInfo(store)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x1_fee00000), info.InterruptModel.APIC.LocalAPICAddress)
}

func TestPmTimer(t *testing.T) {
	parse := func(b []byte) *fadt.FADT {
		table, err := sdt.Find[fadt.FADT](sdt.MapStore{sdt.SignatureFADT: b})
		require.NoError(t, err)
		return table
	}

	timer := NewPmTimer(parse(fadtTable(0, 0x408, 0x1808, 0)))
	require.NotNil(t, timer)
	assert.Equal(t, uint64(0x1808), timer.Base.Address)
	assert.False(t, timer.Supports32Bit)
	assert.Equal(t, uint32(0x00ffffff), timer.Mask())

	timer = NewPmTimer(parse(fadtTable(0, 0x408, 0, 0)))
	require.NotNil(t, timer)
	assert.Equal(t, uint64(0x408), timer.Base.Address)
	assert.Equal(t, uint8(32), timer.Base.BitWidth)

	assert.Nil(t, NewPmTimer(parse(fadtTable(0, 0, 0, 0))))
}

func TestPmTimerBadLength(t *testing.T) {
	rec := &log.Recorder{}
	defer log.Swap(rec)()

	for _, length := range []uint8{0, 3, 32, 255} {
		table, err := sdt.Find[fadt.FADT](sdt.MapStore{
			sdt.SignatureFADT: fadtTableWithTimerLength(0, 0x408, length, 0, 0),
		})
		require.NoError(t, err)
		timer := NewPmTimer(table)
		require.NotNil(t, timer)
		assert.Equal(t, uint8(32), timer.Base.BitWidth, "PM_TMR_LEN %d", length)
	}
	assert.Equal(t, 4, rec.Count(log.LevelWarn))
}

func TestNumaInfo(t *testing.T) {
	store := sdt.MapStore{
		sdt.SignatureSRAT: sratTable(),
		sdt.SignatureSLIT: slitTable(2, 10, 21, 21, 10),
	}
	info := NewNumaInfo(store)

	assert.Equal(t, []ProcessorAffinity{
		{LocalAPICID: 0, ProximityDomain: 0, Enabled: true},
		{LocalAPICID: 0x100, ProximityDomain: 1, Enabled: true},
	}, info.ProcessorAffinity)
	require.Len(t, info.MemoryAffinity, 3)
	assert.Equal(t, MemoryAffinity{
		BaseAddress:     0x00000001AAAABBBB,
		Length:          0x40000000,
		ProximityDomain: 1,
		Enabled:         true,
		HotPluggable:    true,
		NonVolatile:     true,
	}, info.MemoryAffinity[1])

	assert.Equal(t, uint64(2), info.NumProximityDomains)
	assert.Equal(t, []byte{10, 21, 21, 10}, info.DistanceMatrix)
	d, ok := info.Distance(0, 1)
	require.True(t, ok)
	assert.Equal(t, uint8(21), d)
	d, ok = info.Distance(1, 1)
	require.True(t, ok)
	assert.Equal(t, uint8(10), d)

	assert.Equal(t, []uint32{0, 1}, info.Domains())
	assert.Equal(t, memrange.Ranges{{Base: 0, Length: 0xc0000000}}, info.MemoryRanges(0))

	domain, ok := info.DomainOf(0x1AAAABBBB + 0x10)
	require.True(t, ok)
	assert.Equal(t, uint32(1), domain)
	_, ok = info.DomainOf(0x100000000)
	assert.False(t, ok)
	assert.Len(t, info.ProcessorsOf(1), 1)
}

func TestNumaInfoMissingTables(t *testing.T) {
	info := NewNumaInfo(sdt.MapStore{})
	assert.Empty(t, info.ProcessorAffinity)
	assert.Empty(t, info.MemoryAffinity)
	assert.Zero(t, info.NumProximityDomains)
	assert.Empty(t, info.DistanceMatrix)
	_, ok := info.Distance(0, 0)
	assert.False(t, ok)
}

func TestNumaInfoShortSLIT(t *testing.T) {
	rec := &log.Recorder{}
	defer log.Swap(rec)()

	info := NewNumaInfo(sdt.MapStore{sdt.SignatureSLIT: slitTable(4, 10, 20)})
	assert.Equal(t, uint64(4), info.NumProximityDomains)
	assert.Empty(t, info.DistanceMatrix)
	assert.Equal(t, 1, rec.Count(log.LevelWarn))
}

func TestNumaInfoMalformedSRAT(t *testing.T) {
	rec := &log.Recorder{}
	defer log.Swap(rec)()

	b := sratTable()
	// corrupt the length of the x2APIC entry, the second one
	b[48+16+1] = 0xff
	info := NewNumaInfo(sdt.MapStore{sdt.SignatureSRAT: b})
	assert.Len(t, info.ProcessorAffinity, 1)
	assert.Empty(t, info.MemoryAffinity)
	assert.Equal(t, 1, rec.Count(log.LevelWarn))
}

func TestNumaInfoIn(t *testing.T) {
	buf := NewBuffers(8, 8, 2)
	backing := &buf.ProcessorAffinity[:1][0]

	store := sdt.MapStore{
		sdt.SignatureSRAT: sratTable(),
		sdt.SignatureSLIT: slitTable(2, 10, 21, 21, 10),
	}
	info := NewNumaInfoIn(store, buf)
	require.Len(t, info.ProcessorAffinity, 2)
	assert.Same(t, backing, &info.ProcessorAffinity[0])
	assert.Equal(t, 8, cap(info.MemoryAffinity))
	assert.Equal(t, 4, cap(info.DistanceMatrix))
}

func TestHPETInfo(t *testing.T) {
	info, err := NewHPETInfo(sdt.MapStore{sdt.SignatureHPET: hpetTable(0, 0x8086a201, 2)})
	require.NoError(t, err)
	assert.Equal(t, HPETInfo{
		HardwareRevision: 1,
		NumComparators:   2,
		Counter64Bit:     true,
		LegacyIRQCapable: true,
		PCIVendorID:      0x8086,
		BaseAddress:      0xfed00000,
		ClockTickUnit:    0x80,
		PageProtection:   hpet.PageProtection64K,
	}, *info)

	_, err = NewHPETInfo(sdt.MapStore{})
	var notFound *sdt.ErrTableNotFound
	require.True(t, errors.As(err, &notFound))
	require.Equal(t, sdt.SignatureHPET, notFound.Signature)
}

func TestHPETInfoNotSystemMemory(t *testing.T) {
	rec := &log.Recorder{}
	defer log.Swap(rec)()

	info, err := NewHPETInfo(sdt.MapStore{sdt.SignatureHPET: hpetTable(1, 0, 0x0f)})
	require.NoError(t, err)
	assert.Equal(t, hpet.PageProtectionOther, info.PageProtection)
	assert.Equal(t, 1, rec.Count(log.LevelWarn))
}
