// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fadt

import (
	"fmt"

	"github.com/linuxboot/acpitables/pkg/acpi/sdt"
)

// PowerProfile is the preferred power management profile of the platform.
type PowerProfile uint8

// Power management profiles.
const (
	PowerProfileUnspecified PowerProfile = iota
	PowerProfileDesktop
	PowerProfileMobile
	PowerProfileWorkstation
	PowerProfileEnterpriseServer
	PowerProfileSOHOServer
	PowerProfileAppliancePC
	PowerProfilePerformanceServer
	PowerProfileTablet

	// PowerProfileReserved stands for every code above PowerProfileTablet.
	PowerProfileReserved PowerProfile = 0xff
)

// ParsePowerProfile maps a raw code to a PowerProfile. Reserved codes map to
// PowerProfileReserved.
func ParsePowerProfile(code uint8) PowerProfile {
	if p := PowerProfile(code); p <= PowerProfileTablet {
		return p
	}
	return PowerProfileReserved
}

func (p PowerProfile) String() string {
	switch p {
	case PowerProfileUnspecified:
		return "Unspecified"
	case PowerProfileDesktop:
		return "Desktop"
	case PowerProfileMobile:
		return "Mobile"
	case PowerProfileWorkstation:
		return "Workstation"
	case PowerProfileEnterpriseServer:
		return "EnterpriseServer"
	case PowerProfileSOHOServer:
		return "SOHOServer"
	case PowerProfileAppliancePC:
		return "AppliancePC"
	case PowerProfilePerformanceServer:
		return "PerformanceServer"
	case PowerProfileTablet:
		return "Tablet"
	}
	return "Reserved"
}

// Flags is the fixed feature flags word.
type Flags uint32

// Flag bits.
const (
	FlagWBINVD                = 0
	FlagWBINVDFlush           = 1
	FlagProcC1                = 2
	FlagPLvl2MP               = 3
	FlagPowerButton           = 4
	FlagSleepButton           = 5
	FlagFixedRTC              = 6
	FlagRTCS4                 = 7
	FlagTimerValExt           = 8
	FlagDockCapable           = 9
	FlagResetRegSupported     = 10
	FlagSealedCase            = 11
	FlagHeadless              = 12
	FlagCPUSoftwareSleep      = 13
	FlagPCIExpWake            = 14
	FlagUsePlatformClock      = 15
	FlagS4RTCStatusValid      = 16
	FlagRemotePowerOnCapable  = 17
	FlagForceAPICClusterModel = 18
	FlagForceAPICPhysicalDest = 19
	FlagHardwareReduced       = 20
	FlagLowPowerS0IdleCapable = 21
	FlagPersistentCPUCaches0  = 22
	FlagPersistentCPUCaches1  = 23
	flagCount                 = 24
)

var flagNames = [flagCount]string{
	"WBINVD", "WBINVD_FLUSH", "PROC_C1", "P_LVL2_UP", "PWR_BUTTON", "SLP_BUTTON",
	"FIX_RTC", "RTC_S4", "TMR_VAL_EXT", "DCK_CAP", "RESET_REG_SUP", "SEALED_CASE",
	"HEADLESS", "CPU_SW_SLP", "PCI_EXP_WAK", "USE_PLATFORM_CLOCK", "S4_RTC_STS_VALID",
	"REMOTE_POWER_ON_CAPABLE", "FORCE_APIC_CLUSTER_MODEL", "FORCE_APIC_PHYSICAL_DESTINATION_MODE",
	"HW_REDUCED_ACPI", "LOW_POWER_S0_IDLE_CAPABLE", "PERSISTENT_CPU_CACHES_0", "PERSISTENT_CPU_CACHES_1",
}

// Has returns whether flag bit n is set.
func (f Flags) Has(n uint) bool {
	return sdt.Bit32(uint32(f), n)
}

// PMTimerIs32Bit returns true if the PM timer counter is 32 bits wide. It
// is 24 bits wide otherwise.
func (f Flags) PMTimerIs32Bit() bool {
	return f.Has(FlagTimerValExt)
}

// ResetRegisterSupported returns true if the reset register may be used.
func (f Flags) ResetRegisterSupported() bool {
	return f.Has(FlagResetRegSupported)
}

// Headless returns true if the platform has no local input or output
// devices.
func (f Flags) Headless() bool {
	return f.Has(FlagHeadless)
}

// HardwareReduced returns true on platforms without fixed ACPI hardware.
func (f Flags) HardwareReduced() bool {
	return f.Has(FlagHardwareReduced)
}

// LowPowerS0IdleCapable returns true if the platform supports S0 idle.
func (f Flags) LowPowerS0IdleCapable() bool {
	return f.Has(FlagLowPowerS0IdleCapable)
}

// Names returns the names of the set flags. Bits without a name are
// reported by position.
func (f Flags) Names() []string {
	var result []string
	for n := uint(0); n < 32; n++ {
		if !f.Has(n) {
			continue
		}
		if n < flagCount {
			result = append(result, flagNames[n])
		} else {
			result = append(result, fmt.Sprintf("BIT%d", n))
		}
	}
	return result
}

// IAPCBootArch are the IA-PC boot architecture flags.
type IAPCBootArch uint16

// LegacyDevices returns true if the platform has user-visible legacy
// devices (LPC or ISA).
func (a IAPCBootArch) LegacyDevices() bool {
	return sdt.Bit32(uint32(a), 0)
}

// Has8042 returns true if an 8042 keyboard controller is present.
func (a IAPCBootArch) Has8042() bool {
	return sdt.Bit32(uint32(a), 1)
}

// VGANotPresent returns true if probing VGA is unsafe.
func (a IAPCBootArch) VGANotPresent() bool {
	return sdt.Bit32(uint32(a), 2)
}

// MSINotSupported returns true if MSI must not be enabled.
func (a IAPCBootArch) MSINotSupported() bool {
	return sdt.Bit32(uint32(a), 3)
}

// CMOSRTCNotPresent returns true if there is no CMOS RTC.
func (a IAPCBootArch) CMOSRTCNotPresent() bool {
	return sdt.Bit32(uint32(a), 5)
}
