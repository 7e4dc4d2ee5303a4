// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linuxboot/acpitables/internal/sdtbuild"
	"github.com/linuxboot/acpitables/pkg/acpi/sdt"
	"github.com/linuxboot/acpitables/pkg/log"
)

func parse(t *testing.T, b []byte) *SLIT {
	table, err := sdt.Find[SLIT](sdt.MapStore{sdt.SignatureSLIT: b})
	require.NoError(t, err)
	return table
}

func TestSelfDistance(t *testing.T) {
	table := parse(t, sdtbuild.New("SLIT", 1).U64(2).Raw([]byte{10, 5, 5, 10}).Bytes())
	require.Equal(t, uint64(2), table.NumProximityDomains)
	require.Len(t, table.Matrix(), 4)

	for _, tc := range []struct {
		i, j uint64
		want uint8
	}{
		{0, 0, 10},
		{1, 1, 10},
		{0, 1, 5},
		{1, 0, 5},
	} {
		got, ok := table.Entry(tc.i, tc.j)
		require.True(t, ok)
		require.Equal(t, tc.want, got)
	}

	_, ok := table.Entry(2, 0)
	require.False(t, ok)
	_, ok = table.Entry(0, 2)
	require.False(t, ok)
}

func TestRowMajor(t *testing.T) {
	table := parse(t, sdtbuild.New("SLIT", 1).U64(3).Raw([]byte{
		10, 11, 12,
		21, 10, 23,
		31, 32, 10,
	}).Bytes())

	v, ok := table.Entry(1, 2)
	require.True(t, ok)
	require.Equal(t, uint8(23), v)
	v, ok = table.Entry(2, 0)
	require.True(t, ok)
	require.Equal(t, uint8(31), v)
}

func TestShortMatrix(t *testing.T) {
	rec := &log.Recorder{}
	defer log.Swap(rec)()

	table := parse(t, sdtbuild.New("SLIT", 1).U64(3).Raw([]byte{10, 20, 20, 10}).Bytes())
	require.Empty(t, table.Matrix())
	require.Equal(t, 1, rec.Count(log.LevelWarn))

	for i := uint64(0); i < 3; i++ {
		_, ok := table.Entry(i, 0)
		require.False(t, ok)
	}
	require.False(t, table.Distances().Valid())
	require.Equal(t, 1, rec.Count(log.LevelWarn))
}

func TestOverflowingCount(t *testing.T) {
	rec := &log.Recorder{}
	defer log.Swap(rec)()

	table := parse(t, sdtbuild.New("SLIT", 1).U64(1<<32).Raw([]byte{10}).Bytes())
	require.Empty(t, table.Matrix())
	_, ok := MatrixSize(1 << 32)
	require.False(t, ok)
}

func TestDistancesValid(t *testing.T) {
	require.True(t, Distances{N: 2, Matrix: make([]byte, 4)}.Valid())
	require.False(t, Distances{N: 2, Matrix: make([]byte, 3)}.Valid())
	require.True(t, Distances{}.Valid())
}
