// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mpwakeup implements the boot processor side of the multiprocessor
// wakeup mailbox handshake described by the MADT.
//
// The boot processor clears the command, writes the target APIC ID and the
// wakeup vector, then issues the wakeup command. The application processor
// acknowledges by clearing the command back to noop.
//
// The caller is responsible for the environment the woken processor expects.
// On x86 that is: interrupts disabled, long mode with paging enabled, the
// wakeup vector identity mapped and contained in a single page, and flat
// selectors. None of this is checked here.
package mpwakeup
