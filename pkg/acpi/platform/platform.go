// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package platform

import (
	"github.com/linuxboot/acpitables/pkg/acpi/fadt"
	"github.com/linuxboot/acpitables/pkg/acpi/madt"
	"github.com/linuxboot/acpitables/pkg/acpi/sdt"
)

// PlatformInfo is the basic description of the platform built from the
// FADT and the MADT.
type PlatformInfo struct {
	PowerProfile   fadt.PowerProfile
	InterruptModel InterruptModel

	// ProcessorInfo is nil if the MADT lists no processor.
	ProcessorInfo *ProcessorInfo

	// PmTimer is nil if the FADT describes no PM timer.
	PmTimer *PmTimer
}

// NewPlatformInfo reads the FADT and the MADT from store. Both are
// required: a missing one returns *sdt.ErrTableNotFound.
func NewPlatformInfo(store sdt.Store) (*PlatformInfo, error) {
	return NewPlatformInfoIn(store, nil)
}

// NewPlatformInfoIn is NewPlatformInfo with caller-owned storage.
func NewPlatformInfoIn(store sdt.Store, buf *Buffers) (*PlatformInfo, error) {
	fixed, err := sdt.Find[fadt.FADT](store)
	if err != nil {
		return nil, err
	}
	apic, err := sdt.Find[madt.MADT](store)
	if err != nil {
		return nil, err
	}

	model, processors := NewInterruptModelIn(apic, buf)
	return &PlatformInfo{
		PowerProfile:   fixed.PreferredPMProfile,
		InterruptModel: model,
		ProcessorInfo:  processors,
		PmTimer:        NewPmTimer(fixed),
	}, nil
}
