// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpwakeup

import (
	"fmt"
	"sync/atomic"
	"unsafe"

	"github.com/linuxboot/acpitables/pkg/acpi/madt"
	"github.com/linuxboot/acpitables/pkg/acpi/sdt"
)

// Mapping is a mapped region of physical memory.
type Mapping interface {
	// Pointer returns the virtual address of the start of the region.
	Pointer() unsafe.Pointer

	// Unmap releases the region. Pointer must not be used afterwards.
	Unmap()
}

// Mapper maps physical memory into the address space.
type Mapper interface {
	MapPhysical(addr, size uint64) (Mapping, error)
}

// ErrWakeupTimeout means the processor did not acknowledge the wakeup
// command within the allowed number of polls.
type ErrWakeupTimeout struct {
	APICID uint32
	Loops  uint64
}

func (err *ErrWakeupTimeout) Error() string {
	return fmt.Sprintf("processor with APIC ID %d did not acknowledge the wakeup command after %d loops", err.APICID, err.Loops)
}

// State is the progress of a handshake.
type State int32

// Handshake states.
const (
	StateIdle State = iota
	StateWakeupRequested
	StateAcknowledged
	StateTimedOut
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateWakeupRequested:
		return "WakeupRequested"
	case StateAcknowledged:
		return "Acknowledged"
	case StateTimedOut:
		return "TimedOut"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// Option configures a Handshake.
type Option func(h *Handshake)

// WithSpinHint replaces the function run after every poll which did not
// observe the acknowledgement. It defaults to the architecture spin-wait
// hint.
func WithSpinHint(fn func()) Option {
	return func(h *Handshake) {
		h.spin = fn
	}
}

// Handshake drives the wakeup of one processor through a mailbox.
type Handshake struct {
	mailbox *Mailbox
	apicID  uint32
	spin    func()
	state   atomic.Int32
	loops   atomic.Uint64
}

// NewHandshake returns an idle handshake over mailbox.
func NewHandshake(mailbox *Mailbox, opts ...Option) *Handshake {
	h := &Handshake{
		mailbox: mailbox,
		spin:    cpuRelax,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// State returns the current state. It may be called concurrently with Wait.
func (h *Handshake) State() State {
	return State(h.state.Load())
}

// Loops returns the number of polls which did not observe the
// acknowledgement.
func (h *Handshake) Loops() uint64 {
	return h.loops.Load()
}

// Request resets the mailbox, fills it for apicID and vector and issues the
// wakeup command.
func (h *Handshake) Request(apicID uint32, vector uint64) {
	h.apicID = apicID
	h.loops.Store(0)
	h.mailbox.SetCommand(CommandNoop)
	h.mailbox.SetAPICID(apicID)
	h.mailbox.SetWakeupVector(vector)
	h.mailbox.SetCommand(CommandWakeup)
	h.state.Store(int32(StateWakeupRequested))
}

// Wait polls the command field until the processor resets it to noop.
// After timeoutLoops unsuccessful polls it returns *ErrWakeupTimeout.
func (h *Handshake) Wait(timeoutLoops uint64) error {
	for loops := uint64(0); ; loops++ {
		if loops >= timeoutLoops {
			h.state.Store(int32(StateTimedOut))
			return &ErrWakeupTimeout{APICID: h.apicID, Loops: loops}
		}
		if h.mailbox.Command() == CommandNoop {
			h.state.Store(int32(StateAcknowledged))
			return nil
		}
		h.loops.Store(loops + 1)
		h.spin()
	}
}

// Wakeup maps the mailbox at mailboxAddr and wakes the processor with
// apicID, which starts executing at vector. The mapping is released before
// returning.
func Wakeup(mapper Mapper, mailboxAddr uint64, apicID uint32, vector, timeoutLoops uint64, opts ...Option) error {
	mapping, err := mapper.MapPhysical(mailboxAddr, MailboxSize)
	if err != nil {
		return fmt.Errorf("unable to map the wakeup mailbox at 0x%x: %w", mailboxAddr, err)
	}
	defer mapping.Unmap()

	h := NewHandshake(NewMailbox(mapping.Pointer()), opts...)
	h.Request(apicID, vector)
	return h.Wait(timeoutLoops)
}

// WakeupAP is Wakeup with the mailbox address taken from the MADT in store.
func WakeupAP(store sdt.Store, mapper Mapper, apicID uint32, vector, timeoutLoops uint64, opts ...Option) error {
	table, err := sdt.Find[madt.MADT](store)
	if err != nil {
		return err
	}
	addr, err := table.WakeupMailboxAddress()
	if err != nil {
		return err
	}
	return Wakeup(mapper, addr, apicID, vector, timeoutLoops, opts...)
}
