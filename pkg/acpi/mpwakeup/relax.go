// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build amd64 || arm64

package mpwakeup

// cpuRelax executes the spin-wait hint of the processor: PAUSE on amd64,
// YIELD on arm64.
func cpuRelax()
