// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sdt

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/linuxboot/acpitables/pkg/check"
)

// HeaderSize is the size of the standard table header.
const HeaderSize = 36

// Header is the header shared by every system description table.
type Header struct {
	Signature       Signature
	Length          uint32
	Revision        uint8
	Checksum        uint8
	OEMID           [6]byte
	OEMTableID      [8]byte
	OEMRevision     uint32
	CreatorID       uint32
	CreatorRevision uint32
}

// ParseHeader parses the first HeaderSize bytes of b.
func ParseHeader(b []byte) (*Header, error) {
	if err := check.MinLength("table header", b, HeaderSize); err != nil {
		return nil, err
	}
	var hdr Header
	if err := binary.Read(bytes.NewReader(b[:HeaderSize]), binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("unable to parse table header: %w", err)
	}
	return &hdr, nil
}

// OEMIDString returns the OEM ID without padding.
func (h *Header) OEMIDString() string {
	return trimPadding(h.OEMID[:])
}

// OEMTableIDString returns the OEM table ID without padding.
func (h *Header) OEMTableIDString() string {
	return trimPadding(h.OEMTableID[:])
}

// CreatorIDString returns the creator ID as the 4 ASCII characters it
// usually holds.
func (h *Header) CreatorIDString() string {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], h.CreatorID)
	return trimPadding(b[:])
}

func (h *Header) String() string {
	return fmt.Sprintf("%s rev %d len %d OEM %q/%q rev 0x%x",
		h.Signature, h.Revision, h.Length, h.OEMIDString(), h.OEMTableIDString(), h.OEMRevision)
}

func trimPadding(b []byte) string {
	return strings.TrimRight(string(b), " \x00")
}
