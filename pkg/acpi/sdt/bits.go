// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sdt

// Bits32 returns bits [lo, hi) of v shifted down to bit 0.
func Bits32(v uint32, lo, hi uint) uint32 {
	if hi <= lo {
		return 0
	}
	width := hi - lo
	if width >= 32 {
		return v >> lo
	}
	return (v >> lo) & (1<<width - 1)
}

// Bit32 returns whether bit n of v is set.
func Bit32(v uint32, n uint) bool {
	return v&(1<<n) != 0
}

// Join64 combines two 32-bit halves into one 64-bit value.
func Join64(lo, hi uint32) uint64 {
	return uint64(hi)<<32 | uint64(lo)
}
