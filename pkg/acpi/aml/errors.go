// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aml

import (
	"fmt"
)

// ErrInvalidHandle means the handle does not belong to the arena.
type ErrInvalidHandle struct {
	Handle Handle
}

func (err *ErrInvalidHandle) Error() string {
	return fmt.Sprintf("invalid object handle %s", err.Handle)
}

// ErrReferenceCycle means a reference chain did not end within
// MaxReferenceDepth steps.
type ErrReferenceCycle struct {
	Start Handle
	Depth int
}

func (err *ErrReferenceCycle) Error() string {
	return fmt.Sprintf("reference chain from %s is longer than %d, cycle?", err.Start, err.Depth)
}
