// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package platform

// ProcessorState is the state of a processor at hand-off from firmware.
type ProcessorState int

// Processor states.
const (
	// ProcessorStateDisabled processors must not be brought up.
	ProcessorStateDisabled ProcessorState = iota

	// ProcessorStateWaitingForSipi processors are not running but can be
	// brought up.
	ProcessorStateWaitingForSipi

	// ProcessorStateRunning is the state of the boot processor.
	ProcessorStateRunning
)

func (s ProcessorState) String() string {
	switch s {
	case ProcessorStateDisabled:
		return "Disabled"
	case ProcessorStateWaitingForSipi:
		return "WaitingForSipi"
	case ProcessorStateRunning:
		return "Running"
	}
	return "Unknown"
}

// Processor is a processor listed by the MADT.
type Processor struct {
	// UID matches the _UID of the processor device in the namespace.
	UID         uint32
	LocalAPICID uint32
	State       ProcessorState
	IsAP        bool
}

// ProcessorInfo is the processor topology. ApplicationProcessors must be
// brought up in order.
type ProcessorInfo struct {
	BootProcessor         Processor
	ApplicationProcessors []Processor
}

// Enabled returns the application processors which may be brought up.
func (p *ProcessorInfo) Enabled() []Processor {
	var result []Processor
	for _, ap := range p.ApplicationProcessors {
		if ap.State != ProcessorStateDisabled {
			result = append(result, ap)
		}
	}
	return result
}

// processorState derives the state from the role and the enabled flag.
func processorState(isAP, enabled bool) ProcessorState {
	switch {
	case !enabled:
		return ProcessorStateDisabled
	case isAP:
		return ProcessorStateWaitingForSipi
	default:
		return ProcessorStateRunning
	}
}
