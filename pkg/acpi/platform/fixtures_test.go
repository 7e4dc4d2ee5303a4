// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package platform

import (
	"github.com/linuxboot/acpitables/internal/sdtbuild"
	"github.com/linuxboot/acpitables/pkg/acpi/sdt"
)

func fadtTable(profile uint8, pmTimer uint32, xPMTimer uint64, flags uint32) []byte {
	return fadtTableWithTimerLength(profile, pmTimer, 4, xPMTimer, flags)
}

func fadtTableWithTimerLength(profile uint8, pmTimer uint32, pmTimerLen uint8, xPMTimer uint64, flags uint32) []byte {
	b := make([]byte, 276)
	b[45] = profile
	sdtbuild.PutU32(b, 76, pmTimer)
	b[91] = pmTimerLen
	sdtbuild.PutU32(b, 112, flags)
	if xPMTimer != 0 {
		b[208] = uint8(sdt.AddressSpaceSystemIO)
		b[209] = 32
		sdtbuild.PutU64(b, 212, xPMTimer)
	}
	return sdtbuild.New("FACP", 6).Raw(b[sdt.HeaderSize:]).Bytes()
}

type madtProcessor struct {
	uid, apicID uint32
	enabled     bool
	x2          bool
}

func madtTable(processors ...madtProcessor) *sdtbuild.Table {
	t := sdtbuild.New("APIC", 5).U32(0xfee00000).U32(1)
	for _, p := range processors {
		p := p
		var flags uint32
		if p.enabled {
			flags = 1
		}
		if p.x2 {
			t.Entry(9, 16, func(e []byte) {
				sdtbuild.PutU32(e, 4, p.apicID)
				sdtbuild.PutU32(e, 8, flags)
				sdtbuild.PutU32(e, 12, p.uid)
			})
			continue
		}
		t.Entry(0, 8, func(e []byte) {
			e[2] = uint8(p.uid)
			e[3] = uint8(p.apicID)
			sdtbuild.PutU32(e, 4, flags)
		})
	}
	return t
}

func sratTable() []byte {
	return sdtbuild.New("SRAT", 3).U32(1).U64(0).
		Entry(0, 16, func(e []byte) {
			e[2] = 0
			e[3] = 0
			sdtbuild.PutU32(e, 4, 1)
		}).
		Entry(2, 24, func(e []byte) {
			sdtbuild.PutU32(e, 4, 1)
			sdtbuild.PutU32(e, 8, 0x100)
			sdtbuild.PutU32(e, 12, 1)
		}).
		Entry(3, 18, nil).
		Entry(1, 40, func(e []byte) {
			sdtbuild.PutU32(e, 2, 0)
			sdtbuild.PutU32(e, 8, 0)
			sdtbuild.PutU32(e, 16, 0x80000000)
			sdtbuild.PutU32(e, 28, 1)
		}).
		Entry(1, 40, func(e []byte) {
			sdtbuild.PutU32(e, 2, 1)
			sdtbuild.PutU32(e, 8, 0xAAAABBBB)
			sdtbuild.PutU32(e, 12, 0x00000001)
			sdtbuild.PutU32(e, 16, 0x40000000)
			sdtbuild.PutU32(e, 28, 0b111)
		}).
		Entry(1, 40, func(e []byte) {
			sdtbuild.PutU32(e, 2, 0)
			sdtbuild.PutU32(e, 8, 0x80000000)
			sdtbuild.PutU32(e, 16, 0x40000000)
			sdtbuild.PutU32(e, 28, 1)
		}).
		Bytes()
}

func slitTable(n uint64, matrix ...byte) []byte {
	return sdtbuild.New("SLIT", 1).U64(n).Raw(matrix).Bytes()
}

func hpetTable(space uint8, blockID uint32, protection uint8) []byte {
	return sdtbuild.New("HPET", 1).
		U32(blockID).
		GAS(space, 64, 0, 0, 0xfed00000).
		U8(0).
		U16(0x80).
		U8(protection).
		Bytes()
}
