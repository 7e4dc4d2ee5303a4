// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type sample struct {
	ProximityDomain uint32
	BaseAddress     Hex
	Length          Size
	hidden          int
}

func TestTitle(t *testing.T) {
	require.Equal(t, "Proximity Domain", Title("ProximityDomain"))
	require.Equal(t, "HPET Number", Title("HPETNumber"))
}

func TestStruct(t *testing.T) {
	var buf bytes.Buffer
	err := Struct(&buf, "Sample", &sample{ProximityDomain: 3, BaseAddress: 0x1000, Length: 2 << 20, hidden: 1})
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, strings.ToLower(out), "sample")
	require.Contains(t, out, "Proximity Domain")
	require.Contains(t, out, "0x1000")
	require.Contains(t, out, "2.0 MiB (0x200000)")
	require.NotContains(t, out, "hidden")

	require.Error(t, Struct(&buf, "", 5))
	require.Error(t, Struct(&buf, "", (*sample)(nil)))
}

func TestSlice(t *testing.T) {
	var buf bytes.Buffer
	err := Slice(&buf, "", []sample{{ProximityDomain: 1}, {ProximityDomain: 2, Length: 512}})
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "BASE ADDRESS")
	require.Contains(t, out, "512 B (0x200)")

	require.Error(t, Slice(&buf, "", sample{}))
	require.Error(t, Slice(&buf, "", []int{1}))
}

func TestMatrix(t *testing.T) {
	var buf bytes.Buffer
	Matrix(&buf, "Distances", 2, func(i, j int) string {
		if i == j {
			return "10"
		}
		return "21"
	})
	require.Contains(t, buf.String(), "21")
}
