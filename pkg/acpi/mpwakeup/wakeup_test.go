// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpwakeup

import (
	"encoding/binary"
	"errors"
	"runtime"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/linuxboot/acpitables/internal/sdtbuild"
	"github.com/linuxboot/acpitables/pkg/acpi/madt"
	"github.com/linuxboot/acpitables/pkg/acpi/sdt"
)

const mailboxAddr = 0x7f000

type mockMapping struct {
	mock.Mock
	mem []uint64
}

func newMockMapping() *mockMapping {
	m := &mockMapping{mem: make([]uint64, MailboxSize/8)}
	m.On("Unmap").Return()
	return m
}

func (m *mockMapping) Pointer() unsafe.Pointer {
	return unsafe.Pointer(&m.mem[0])
}

func (m *mockMapping) Unmap() {
	m.Called()
}

func (m *mockMapping) bytes() []byte {
	return unsafe.Slice((*byte)(m.Pointer()), MailboxSize)
}

type mockMapper struct {
	mock.Mock
}

func (m *mockMapper) MapPhysical(addr, size uint64) (Mapping, error) {
	args := m.Called(addr, size)
	mapping, _ := args.Get(0).(Mapping)
	return mapping, args.Error(1)
}

func newMapper(mapping Mapping, err error) *mockMapper {
	m := &mockMapper{}
	m.On("MapPhysical", uint64(mailboxAddr), uint64(MailboxSize)).Return(mapping, err)
	return m
}

// ackAfter returns a spin hint playing the woken processor: it clears the
// command once it has been called n times.
func ackAfter(mailbox func() *Mailbox, n int, spins *int) Option {
	return WithSpinHint(func() {
		*spins++
		if *spins == n {
			mailbox().SetCommand(CommandNoop)
		}
	})
}

func TestWakeupAcknowledged(t *testing.T) {
	mapping := newMockMapping()
	mapper := newMapper(mapping, nil)

	var spins int
	hint := ackAfter(func() *Mailbox { return NewMailbox(mapping.Pointer()) }, 3, &spins)
	err := Wakeup(mapper, mailboxAddr, 0x21, 0x8000, 100, hint)
	require.NoError(t, err)
	require.Equal(t, 3, spins)

	b := mapping.bytes()
	require.Equal(t, uint16(CommandNoop), binary.LittleEndian.Uint16(b[0:]))
	require.Equal(t, uint16(0), binary.LittleEndian.Uint16(b[2:]))
	require.Equal(t, uint32(0x21), binary.LittleEndian.Uint32(b[4:]))
	require.Equal(t, uint64(0x8000), binary.LittleEndian.Uint64(b[8:]))

	mapper.AssertExpectations(t)
	mapping.AssertNumberOfCalls(t, "Unmap", 1)
}

func TestWakeupTimeout(t *testing.T) {
	mapping := newMockMapping()
	mapper := newMapper(mapping, nil)

	var spins int
	err := Wakeup(mapper, mailboxAddr, 3, 0x8000, 5, WithSpinHint(func() { spins++ }))

	var timeout *ErrWakeupTimeout
	require.True(t, errors.As(err, &timeout))
	require.Equal(t, uint32(3), timeout.APICID)
	require.Equal(t, uint64(5), timeout.Loops)
	require.Equal(t, 5, spins)
	require.Equal(t, CommandWakeup, NewMailbox(mapping.Pointer()).Command())
	mapping.AssertNumberOfCalls(t, "Unmap", 1)
}

func TestWakeupZeroTimeout(t *testing.T) {
	mapping := newMockMapping()
	mapper := newMapper(mapping, nil)

	err := Wakeup(mapper, mailboxAddr, 3, 0x8000, 0, WithSpinHint(func() {
		t.Fatal("no poll expected")
	}))
	var timeout *ErrWakeupTimeout
	require.True(t, errors.As(err, &timeout))
	require.Zero(t, timeout.Loops)
	mapping.AssertNumberOfCalls(t, "Unmap", 1)
}

func TestWakeupMapError(t *testing.T) {
	mapFailure := errors.New("no access")
	mapper := newMapper(nil, mapFailure)

	err := Wakeup(mapper, mailboxAddr, 1, 0x8000, 10)
	require.ErrorIs(t, err, mapFailure)
	mapper.AssertExpectations(t)
}

func TestHandshakeStates(t *testing.T) {
	mem := make([]uint64, MailboxSize/8)
	mailbox := NewMailbox(unsafe.Pointer(&mem[0]))

	var spins int
	h := NewHandshake(mailbox, WithSpinHint(func() {
		spins++
		if spins == 2 {
			mailbox.SetCommand(CommandNoop)
		}
	}))
	require.Equal(t, StateIdle, h.State())

	h.Request(7, 0x1000)
	require.Equal(t, StateWakeupRequested, h.State())
	require.Equal(t, CommandWakeup, mailbox.Command())
	require.Equal(t, uint32(7), mailbox.APICID())
	require.Equal(t, uint64(0x1000), mailbox.WakeupVector())

	require.NoError(t, h.Wait(10))
	require.Equal(t, StateAcknowledged, h.State())
	require.Equal(t, uint64(2), h.Loops())

	h = NewHandshake(mailbox, WithSpinHint(func() {}))
	h.Request(8, 0x1000)
	require.Error(t, h.Wait(4))
	require.Equal(t, StateTimedOut, h.State())
	require.Equal(t, uint64(4), h.Loops())
	require.Equal(t, "TimedOut", h.State().String())
}

func TestWakeupConcurrentProcessor(t *testing.T) {
	mapping := newMockMapping()
	mapper := newMapper(mapping, nil)
	mailbox := NewMailbox(mapping.Pointer())

	done := make(chan uint32)
	go func() {
		for mailbox.Command() != CommandWakeup {
			runtime.Gosched()
		}
		id := mailbox.APICID()
		mailbox.SetCommand(CommandNoop)
		done <- id
	}()

	err := Wakeup(mapper, mailboxAddr, 5, 0x9000, 1<<40, WithSpinHint(runtime.Gosched))
	require.NoError(t, err)
	require.Equal(t, uint32(5), <-done)
	mapping.AssertNumberOfCalls(t, "Unmap", 1)
}

func TestWakeupAP(t *testing.T) {
	withMailbox := sdtbuild.New("APIC", 5).U32(0xfee00000).U32(0).
		Entry(0, 8, func(e []byte) { sdtbuild.PutU32(e, 4, 1) }).
		Entry(0x10, 16, func(e []byte) {
			sdtbuild.PutU16(e, 2, 0)
			sdtbuild.PutU64(e, 8, mailboxAddr)
		}).
		Bytes()

	mapping := newMockMapping()
	mapper := newMapper(mapping, nil)
	var spins int
	hint := ackAfter(func() *Mailbox { return NewMailbox(mapping.Pointer()) }, 1, &spins)
	err := WakeupAP(sdt.MapStore{sdt.SignatureMADT: withMailbox}, mapper, 2, 0x8000, 10, hint)
	require.NoError(t, err)
	mapper.AssertExpectations(t)
	mapping.AssertNumberOfCalls(t, "Unmap", 1)

	withoutMailbox := sdtbuild.New("APIC", 5).U32(0xfee00000).U32(0).Bytes()
	err = WakeupAP(sdt.MapStore{sdt.SignatureMADT: withoutMailbox}, &mockMapper{}, 2, 0x8000, 10)
	require.ErrorIs(t, err, madt.ErrNoWakeupEntry{})

	err = WakeupAP(sdt.MapStore{}, &mockMapper{}, 2, 0x8000, 10)
	var notFound *sdt.ErrTableNotFound
	require.True(t, errors.As(err, &notFound))
}

func TestCommandString(t *testing.T) {
	require.Equal(t, "Wakeup", CommandWakeup.String())
	require.False(t, CommandTest.IsReserved())
	require.True(t, Command(3).IsReserved())
	require.Equal(t, "Reserved(0x0003)", Command(3).String())
	require.Equal(t, "Noop", CommandNoop.String())
}
