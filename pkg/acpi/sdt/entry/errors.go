// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entry

import (
	"fmt"
)

// ErrMalformedEntry means the framing of an entry is inconsistent with the
// table, so no further entry can be located.
type ErrMalformedEntry struct {
	Offset    int
	Type      uint16
	Length    int
	Remaining int
	Reason    string
}

func (err *ErrMalformedEntry) Error() string {
	return fmt.Sprintf("malformed entry at offset 0x%x (type %d, length %d, %d bytes remaining): %s",
		err.Offset, err.Type, err.Length, err.Remaining, err.Reason)
}

// ErrEntryTooShort means an entry of a known type is shorter than its
// structure.
type ErrEntryTooShort struct {
	Name     string
	Type     uint16
	Offset   int
	Length   int
	Required int
}

func (err *ErrEntryTooShort) Error() string {
	return fmt.Sprintf("%s entry (type %d) at offset 0x%x is too short: %d < %d",
		err.Name, err.Type, err.Offset, err.Length, err.Required)
}
