// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tablestore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"

	"github.com/linuxboot/acpitables/internal/sdtbuild"
	"github.com/linuxboot/acpitables/pkg/acpi/sdt"
	"github.com/linuxboot/acpitables/pkg/compression"
)

func table(sig string, body ...byte) []byte {
	return sdtbuild.New(sig, 1).Raw(body).Bytes()
}

func writeFile(t *testing.T, dir, name string, b []byte) {
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), b, 0o644))
}

func encode(t *testing.T, c compression.Compressor, b []byte) []byte {
	encoded, err := c.Encode(b)
	require.NoError(t, err)
	return encoded
}

func TestFromDir(t *testing.T) {
	dir := t.TempDir()
	facp := table("FACP", 1, 2, 3)
	apic := table("APIC", 4, 5)
	srat := table("SRAT", 6)
	ssdt1 := table("SSDT", 1)
	ssdt2 := table("SSDT", 2)

	writeFile(t, dir, "FACP", facp)
	writeFile(t, dir, "APIC.xz", encode(t, &compression.XZ{}, apic))
	// compressed without a telling extension
	writeFile(t, dir, "SRAT", encode(t, &compression.Zstd{}, srat))
	writeFile(t, dir, "SLIT.lz4", encode(t, &compression.LZ4{}, table("SLIT")))
	writeFile(t, dir, "SSDT1", ssdt1)
	writeFile(t, dir, "SSDT2", ssdt2)
	writeFile(t, dir, "bogus", []byte("not a table"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "dynamic"), 0o755))

	store, err := FromDir(dir)
	require.Error(t, err)
	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	require.Len(t, merr.Errors, 1)
	require.Contains(t, merr.Errors[0].Error(), "bogus")

	require.Equal(t, 5, store.Len())
	require.Equal(t, []sdt.Signature{
		sdt.SignatureMADT, sdt.SignatureFADT, sdt.SignatureSLIT, sdt.SignatureSRAT, sdt.SignatureSSDT,
	}, store.Signatures())

	b, ok := store.FindTable(sdt.SignatureMADT)
	require.True(t, ok)
	require.Equal(t, apic, b)
	b, ok = store.FindTable(sdt.SignatureSRAT)
	require.True(t, ok)
	require.Equal(t, srat, b)

	b, ok = store.FindTable(sdt.SignatureSSDT)
	require.True(t, ok)
	require.Equal(t, ssdt1, b)
	require.Equal(t, "SSDT1", store.Origin(sdt.SignatureSSDT))
	require.Equal(t, "APIC.xz", store.Origin(sdt.SignatureMADT))
}

func TestFromDirMissing(t *testing.T) {
	_, err := FromDir(filepath.Join(t.TempDir(), "nope"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFromDirTruncatedFile(t *testing.T) {
	dir := t.TempDir()
	b := table("HPET", make([]byte, 20)...)
	writeFile(t, dir, "HPET", b[:40])

	store, err := FromDir(dir)
	var truncated *sdt.ErrTruncatedTable
	require.True(t, errors.As(err, &truncated))
	require.Equal(t, sdt.SignatureHPET, truncated.Signature)
	require.Zero(t, store.Len())
}

func TestFromBlob(t *testing.T) {
	facp := table("FACP", 1, 2, 3)
	apic := table("APIC", 4, 5)
	hpet := table("HPET", make([]byte, 20)...)

	var blob []byte
	blob = append(blob, facp...)
	blob = append(blob, apic...)
	blob = append(blob, hpet...)

	store, err := FromBlob(blob)
	require.NoError(t, err)
	require.Equal(t, 3, store.Len())
	b, ok := store.FindTable(sdt.SignatureMADT)
	require.True(t, ok)
	require.Equal(t, apic, b)
	require.Equal(t, "0x27", store.Origin(sdt.SignatureMADT))

	store, err = FromBlob(blob[:len(blob)-1])
	var truncated *sdt.ErrTruncatedTable
	require.True(t, errors.As(err, &truncated))
	require.Equal(t, sdt.SignatureHPET, truncated.Signature)
	require.Equal(t, 2, store.Len())

	store, err = FromBlob(append(append([]byte{}, facp...), 0, 0, 0))
	require.Error(t, err)
	require.Equal(t, 1, store.Len())

	store, err = FromBlob(nil)
	require.NoError(t, err)
	require.Zero(t, store.Len())
}
