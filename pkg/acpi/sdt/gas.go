// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sdt

import (
	"encoding/binary"
	"fmt"

	"github.com/linuxboot/acpitables/pkg/check"
)

// GenericAddressSize is the size of the Generic Address Structure.
const GenericAddressSize = 12

// AddressSpace is the address space id of a Generic Address Structure.
type AddressSpace uint8

// Address spaces defined by ACPI.
const (
	AddressSpaceSystemMemory AddressSpace = iota
	AddressSpaceSystemIO
	AddressSpacePCIConfig
	AddressSpaceEmbeddedController
	AddressSpaceSMBus
	AddressSpaceSystemCMOS
	AddressSpacePCIBarTarget
	AddressSpaceIPMI
	AddressSpaceGPIO
	AddressSpaceGenericSerialBus
	AddressSpacePCC
	AddressSpacePRM
	AddressSpaceFunctionalFixedHW AddressSpace = 0x7f
)

// IsReserved returns true for ids reserved by ACPI.
func (s AddressSpace) IsReserved() bool {
	return s > AddressSpacePRM && s < AddressSpaceFunctionalFixedHW
}

// IsOEMDefined returns true for ids in the OEM-defined range.
func (s AddressSpace) IsOEMDefined() bool {
	return s >= 0x80
}

func (s AddressSpace) String() string {
	switch s {
	case AddressSpaceSystemMemory:
		return "SystemMemory"
	case AddressSpaceSystemIO:
		return "SystemIO"
	case AddressSpacePCIConfig:
		return "PCIConfig"
	case AddressSpaceEmbeddedController:
		return "EmbeddedController"
	case AddressSpaceSMBus:
		return "SMBus"
	case AddressSpaceSystemCMOS:
		return "SystemCMOS"
	case AddressSpacePCIBarTarget:
		return "PCIBarTarget"
	case AddressSpaceIPMI:
		return "IPMI"
	case AddressSpaceGPIO:
		return "GPIO"
	case AddressSpaceGenericSerialBus:
		return "GenericSerialBus"
	case AddressSpacePCC:
		return "PCC"
	case AddressSpacePRM:
		return "PRM"
	case AddressSpaceFunctionalFixedHW:
		return "FunctionalFixedHW"
	}
	if s.IsOEMDefined() {
		return fmt.Sprintf("OEMDefined(0x%02x)", uint8(s))
	}
	return fmt.Sprintf("Reserved(0x%02x)", uint8(s))
}

// AccessSize is the access width of a Generic Address Structure.
type AccessSize uint8

// Access sizes.
const (
	AccessSizeUndefined AccessSize = iota
	AccessSizeByte
	AccessSizeWord
	AccessSizeDWord
	AccessSizeQWord
)

// Bytes returns the access width in bytes, or 0 if it is undefined or
// reserved.
func (s AccessSize) Bytes() int {
	if s == AccessSizeUndefined || s > AccessSizeQWord {
		return 0
	}
	return 1 << (s - 1)
}

func (s AccessSize) String() string {
	switch s {
	case AccessSizeUndefined:
		return "Undefined"
	case AccessSizeByte:
		return "Byte"
	case AccessSizeWord:
		return "Word"
	case AccessSizeDWord:
		return "DWord"
	case AccessSizeQWord:
		return "QWord"
	}
	return fmt.Sprintf("Reserved(%d)", uint8(s))
}

// GenericAddress is the Generic Address Structure describing a register.
type GenericAddress struct {
	Space      AddressSpace
	BitWidth   uint8
	BitOffset  uint8
	AccessSize AccessSize
	Address    uint64
}

// ParseGenericAddress decodes a Generic Address Structure from the start
// of b.
func ParseGenericAddress(b []byte) (GenericAddress, error) {
	if err := check.MinLength("generic address structure", b, GenericAddressSize); err != nil {
		return GenericAddress{}, err
	}
	return GenericAddress{
		Space:      AddressSpace(b[0]),
		BitWidth:   b[1],
		BitOffset:  b[2],
		AccessSize: AccessSize(b[3]),
		Address:    binary.LittleEndian.Uint64(b[4:]),
	}, nil
}

func (g GenericAddress) String() string {
	return fmt.Sprintf("%s:0x%x (width %d, offset %d, access %s)",
		g.Space, g.Address, g.BitWidth, g.BitOffset, g.AccessSize)
}
