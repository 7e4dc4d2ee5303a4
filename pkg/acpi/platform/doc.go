// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package platform folds the decoded tables into a view of the platform
// topology: processors, interrupt controllers, NUMA layout and timers.
//
// Every constructor has a variant taking *Buffers. Results are appended to
// the zero-length prefix of the caller's slices, so a caller with
// preallocated storage avoids heap growth. A nil *Buffers, or a nil slice
// in it, uses the Go heap.
package platform
