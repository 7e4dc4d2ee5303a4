// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpwakeup

import (
	"fmt"
	"sync/atomic"
	"unsafe"
)

// MailboxSize is the size of the mailbox structure.
const MailboxSize = 4096

// Offsets of the mailbox fields.
const (
	offsetCommand      = 0
	offsetAPICID       = 4
	offsetWakeupVector = 8
)

// Command is the content of the mailbox command field.
type Command uint16

// Known commands. Every other value is reserved.
const (
	CommandNoop Command = iota
	CommandWakeup
	CommandTest
)

// IsReserved returns true for commands without a defined meaning.
func (c Command) IsReserved() bool {
	return c > CommandTest
}

func (c Command) String() string {
	switch c {
	case CommandNoop:
		return "Noop"
	case CommandWakeup:
		return "Wakeup"
	case CommandTest:
		return "Test"
	}
	return fmt.Sprintf("Reserved(0x%04x)", uint16(c))
}

// Mailbox accesses a mapped mailbox. Every access is atomic, so neither the
// compiler nor the processor elides or reorders them.
//
// The command field is accessed as a 32-bit word together with the reserved
// field following it, which is always written as zero. This relies on the
// little-endian layout of every architecture defining the mailbox.
type Mailbox struct {
	base unsafe.Pointer
}

// NewMailbox returns a Mailbox at p, which must point to MailboxSize bytes
// aligned to at least 8 bytes.
func NewMailbox(p unsafe.Pointer) *Mailbox {
	return &Mailbox{base: p}
}

func (m *Mailbox) word(offset uintptr) *uint32 {
	return (*uint32)(unsafe.Add(m.base, offset))
}

// Command loads the command field.
func (m *Mailbox) Command() Command {
	return Command(atomic.LoadUint32(m.word(offsetCommand)))
}

// SetCommand stores the command field and clears the reserved field.
func (m *Mailbox) SetCommand(c Command) {
	atomic.StoreUint32(m.word(offsetCommand), uint32(c))
}

// APICID loads the target APIC ID.
func (m *Mailbox) APICID() uint32 {
	return atomic.LoadUint32(m.word(offsetAPICID))
}

// SetAPICID stores the target APIC ID.
func (m *Mailbox) SetAPICID(id uint32) {
	atomic.StoreUint32(m.word(offsetAPICID), id)
}

// WakeupVector loads the physical address the woken processor jumps to.
func (m *Mailbox) WakeupVector() uint64 {
	return atomic.LoadUint64((*uint64)(unsafe.Add(m.base, offsetWakeupVector)))
}

// SetWakeupVector stores the physical address the woken processor jumps to.
func (m *Mailbox) SetWakeupVector(v uint64) {
	atomic.StoreUint64((*uint64)(unsafe.Add(m.base, offsetWakeupVector)), v)
}
