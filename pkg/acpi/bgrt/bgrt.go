// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bgrt decodes the Boot Graphics Resource Table.
package bgrt

import (
	"encoding/binary"

	"github.com/linuxboot/acpitables/pkg/acpi/sdt"
	"github.com/linuxboot/acpitables/pkg/check"
)

// Size is the size of the BGRT table.
const Size = sdt.HeaderSize + 20

// ImageType is the format of the boot image.
type ImageType uint8

// Image types.
const (
	ImageTypeBitmap ImageType = iota
	ImageTypeReserved
)

func (t ImageType) String() string {
	if t == ImageTypeBitmap {
		return "Bitmap"
	}
	return "Reserved"
}

// Status is the status byte of the table.
type Status uint8

// Displayed returns true if the image is currently on the screen.
func (s Status) Displayed() bool {
	return sdt.Bit32(uint32(s), 0)
}

// OrientationOffset returns the clockwise rotation of the image in degrees.
func (s Status) OrientationOffset() uint16 {
	return uint16(sdt.Bits32(uint32(s), 1, 3)) * 90
}

// BGRT is the Boot Graphics Resource Table.
type BGRT struct {
	hdr sdt.Header

	Version      uint16
	Status       Status
	RawImageType uint8
	ImageAddress uint64
	ImageOffsetX uint32
	ImageOffsetY uint32
}

var _ sdt.Table = (*BGRT)(nil)

// Signature implements sdt.Table.
func (t *BGRT) Signature() sdt.Signature {
	return sdt.SignatureBGRT
}

// Header implements sdt.Table.
func (t *BGRT) Header() *sdt.Header {
	return &t.hdr
}

// UnmarshalSDT implements sdt.Table.
func (t *BGRT) UnmarshalSDT(raw *sdt.Raw) error {
	b := raw.Data
	if err := check.MinLength("BGRT", b, Size); err != nil {
		return err
	}
	le := binary.LittleEndian
	t.hdr = raw.Hdr
	t.Version = le.Uint16(b[36:])
	t.Status = Status(b[38])
	t.RawImageType = b[39]
	t.ImageAddress = le.Uint64(b[40:])
	t.ImageOffsetX = le.Uint32(b[48:])
	t.ImageOffsetY = le.Uint32(b[52:])
	return nil
}

// ImageType decodes RawImageType. Every code but 0 is reserved.
func (t *BGRT) ImageType() ImageType {
	if t.RawImageType == 0 {
		return ImageTypeBitmap
	}
	return ImageTypeReserved
}

// ImageOffset returns the position of the image on the screen.
func (t *BGRT) ImageOffset() (x, y uint32) {
	return t.ImageOffsetX, t.ImageOffsetY
}
