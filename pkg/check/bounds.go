// Copyright 2017-2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package check contains bounds checks shared by the table decoders.
package check

import (
	"github.com/hashicorp/go-multierror"
)

func bounds(length uint, startIdx, endIdx int) error {
	var result *multierror.Error
	if startIdx < 0 {
		result = multierror.Append(result, &ErrStartLessThanZero{StartIdx: startIdx})
	}
	if endIdx < startIdx {
		result = multierror.Append(result, &ErrEndLessThanStart{StartIdx: startIdx, EndIdx: endIdx})
	}
	if endIdx >= 0 && uint(endIdx) > length {
		result = multierror.Append(result, &ErrEndGreaterThanLength{Length: length, EndIdx: endIdx})
	}

	return result.ErrorOrNil()
}

// BytesRange checks if starting index `startIdx`, ending index `endIdx` and
// length pass sanity checks:
// * 0 <= startIdx
// * startIdx <= endIdx
// * endIdx <= length
func BytesRange(length uint, startIdx, endIdx int) error {
	return bounds(length, startIdx, endIdx)
}

// Field checks that a field of `size` bytes at `offset` fits into b.
func Field(b []byte, offset, size int) error {
	return bounds(uint(len(b)), offset, offset+size)
}

// MinLength returns *ErrTooShort if b is shorter than required.
func MinLength(what string, b []byte, required int) error {
	if len(b) < required {
		return &ErrTooShort{What: what, Length: uint(len(b)), Required: uint(required)}
	}
	return nil
}
