// Copyright 2018-2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compression

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

var compressors = []Compressor{&XZ{}, &Zstd{}, &LZ4{}}

func TestEncodeDecode(t *testing.T) {
	decoded := bytes.Repeat([]byte("FACP\x14\x01\x00\x00"), 64)
	for _, c := range compressors {
		t.Run(c.Name(), func(t *testing.T) {
			encoded, err := c.Encode(decoded)
			require.NoError(t, err)

			detected := Detect(encoded)
			require.NotNil(t, detected)
			require.Equal(t, c.Name(), detected.Name())

			out, err := Decompress(encoded)
			require.NoError(t, err)
			require.Equal(t, decoded, out)
		})
	}
}

func TestDecompressPlain(t *testing.T) {
	plain := []byte("APIC not compressed")
	require.Nil(t, Detect(plain))

	out, err := Decompress(plain)
	require.NoError(t, err)
	require.Equal(t, plain, out)
}

func TestDecompressCorrupted(t *testing.T) {
	_, err := Decompress(append([]byte{0xfd, '7', 'z', 'X', 'Z', 0x00}, 0xff, 0xff))
	require.Error(t, err)
}

func TestExtension(t *testing.T) {
	require.Equal(t, "XZ", FromExtension("DSDT.xz").Name())
	require.Equal(t, "Zstd", FromExtension("apic.ZST").Name())
	require.Equal(t, "LZ4", FromExtension("SRAT.lz4").Name())
	require.Nil(t, FromExtension("SLIT"))
	require.Equal(t, "SRAT", TrimExtension("SRAT.lz4"))
	require.Equal(t, "SLIT.dat", TrimExtension("SLIT.dat"))
}
