// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package check

import (
	"errors"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"
)

func TestBytesRange(t *testing.T) {
	require.NoError(t, BytesRange(10, 0, 10))
	require.NoError(t, BytesRange(10, 4, 4))

	err := BytesRange(10, 4, 11)
	var endErr *ErrEndGreaterThanLength
	require.True(t, errors.As(err, &endErr))
	require.Equal(t, 11, endErr.EndIdx)

	err = BytesRange(10, -1, -2)
	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	require.Len(t, merr.Errors, 2)

	var startErr *ErrStartLessThanZero
	require.True(t, errors.As(err, &startErr))
	var orderErr *ErrEndLessThanStart
	require.True(t, errors.As(err, &orderErr))
}

func TestField(t *testing.T) {
	b := make([]byte, 8)
	require.NoError(t, Field(b, 4, 4))
	require.Error(t, Field(b, 6, 4))
}

func TestMinLength(t *testing.T) {
	require.NoError(t, MinLength("x", make([]byte, 4), 4))

	err := MinLength("HPET", make([]byte, 3), 56)
	var short *ErrTooShort
	require.True(t, errors.As(err, &short))
	require.Equal(t, "HPET is too short: 3 < 56", err.Error())
}
