// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package slit decodes the System Locality Information Table: an N×N matrix
// of relative distances between proximity domains.
package slit

import (
	"encoding/binary"
	"math/bits"

	"github.com/linuxboot/acpitables/pkg/acpi/sdt"
	"github.com/linuxboot/acpitables/pkg/check"
	"github.com/linuxboot/acpitables/pkg/log"
)

// MatrixOffset is the offset of the distance matrix.
const MatrixOffset = sdt.HeaderSize + 8

// LocalDistance is the normalized distance of a domain to itself.
const LocalDistance = 10

// UnreachableDistance marks domains that can not reach each other.
const UnreachableDistance = 0xff

// SLIT is the System Locality Information Table.
type SLIT struct {
	hdr sdt.Header

	NumProximityDomains uint64

	matrix []byte
}

var _ sdt.Table = (*SLIT)(nil)

// Signature implements sdt.Table.
func (t *SLIT) Signature() sdt.Signature {
	return sdt.SignatureSLIT
}

// Header implements sdt.Table.
func (t *SLIT) Header() *sdt.Header {
	return &t.hdr
}

// UnmarshalSDT implements sdt.Table.
func (t *SLIT) UnmarshalSDT(raw *sdt.Raw) error {
	if err := check.MinLength("SLIT", raw.Data, MatrixOffset); err != nil {
		return err
	}
	t.hdr = raw.Hdr
	t.NumProximityDomains = binary.LittleEndian.Uint64(raw.Data[sdt.HeaderSize:])
	t.matrix = matrix(raw.Data, t.NumProximityDomains)
	return nil
}

// matrix slices the N*N distance entries out of data. If data is too short
// to hold them an empty matrix is returned and a warning is logged.
func matrix(data []byte, n uint64) []byte {
	size, ok := MatrixSize(n)
	available := uint64(len(data) - MatrixOffset)
	if !ok || size > available {
		log.Warnf("SLIT is too short for %d proximity domains (%d bytes of matrix available), using an empty matrix",
			n, available)
		return data[MatrixOffset:MatrixOffset]
	}
	return data[MatrixOffset : MatrixOffset+int(size)]
}

// MatrixSize returns N*N, or false if it overflows.
func MatrixSize(n uint64) (uint64, bool) {
	hi, lo := bits.Mul64(n, n)
	return lo, hi == 0
}

// Matrix returns the raw distance matrix, row-major. It is empty if the
// table is too short to hold N*N entries.
func (t *SLIT) Matrix() []byte {
	return t.matrix
}

// Distances returns the distance matrix of the table.
func (t *SLIT) Distances() Distances {
	return Distances{N: t.NumProximityDomains, Matrix: t.matrix}
}

// Entry returns the distance from domain i to domain j.
func (t *SLIT) Entry(i, j uint64) (uint8, bool) {
	return t.Distances().Entry(i, j)
}

// Distances is a row-major N×N distance matrix.
type Distances struct {
	N      uint64
	Matrix []byte
}

// Entry returns the distance from domain i to domain j, or false if the
// indices are out of range or the matrix is empty.
func (d Distances) Entry(i, j uint64) (uint8, bool) {
	if i >= d.N || j >= d.N || !d.Valid() {
		return 0, false
	}
	return d.Matrix[i*d.N+j], true
}

// Valid reports whether the matrix holds exactly N*N entries.
func (d Distances) Valid() bool {
	size, ok := MatrixSize(d.N)
	return ok && size == uint64(len(d.Matrix))
}
