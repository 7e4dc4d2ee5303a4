// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sdt

import (
	"fmt"
)

// ErrTableNotFound means the store does not hold a table with
// the requested signature.
type ErrTableNotFound struct {
	Signature Signature
}

func (err *ErrTableNotFound) Error() string {
	return fmt.Sprintf("table '%s' is not found", err.Signature)
}

// ErrSignatureMismatch means the store returned a table with another
// signature than requested.
type ErrSignatureMismatch struct {
	Expected Signature
	Actual   Signature
}

func (err *ErrSignatureMismatch) Error() string {
	return fmt.Sprintf("expected table '%s', got '%s'", err.Expected, err.Actual)
}

// ErrTableTooShort means the Length field of the header is smaller than the
// header itself.
type ErrTableTooShort struct {
	Signature Signature
	Length    uint32
}

func (err *ErrTableTooShort) Error() string {
	return fmt.Sprintf("table '%s' declares length %d which is less than the header size %d",
		err.Signature, err.Length, HeaderSize)
}

// ErrTruncatedTable means fewer bytes are available than the header
// declares.
type ErrTruncatedTable struct {
	Signature Signature
	Length    uint32
	Available int
}

func (err *ErrTruncatedTable) Error() string {
	return fmt.Sprintf("table '%s' declares length %d, but only %d bytes are available",
		err.Signature, err.Length, err.Available)
}

// ErrChecksumMismatch means the bytes of a table do not sum to zero.
type ErrChecksumMismatch struct {
	Signature Signature
	Sum       uint8
}

func (err *ErrChecksumMismatch) Error() string {
	return fmt.Sprintf("table '%s' checksum mismatch: bytes sum to 0x%02x", err.Signature, err.Sum)
}
