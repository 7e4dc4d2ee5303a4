// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sdt

import (
	"fmt"
	"unicode"
)

// Signature is the 4-character identifier of a system description table.
type Signature [4]byte

// Well-known table signatures.
var (
	SignatureFADT = Signature{'F', 'A', 'C', 'P'}
	SignatureMADT = Signature{'A', 'P', 'I', 'C'}
	SignatureSRAT = Signature{'S', 'R', 'A', 'T'}
	SignatureSLIT = Signature{'S', 'L', 'I', 'T'}
	SignatureHPET = Signature{'H', 'P', 'E', 'T'}
	SignatureBGRT = Signature{'B', 'G', 'R', 'T'}
	SignatureDSDT = Signature{'D', 'S', 'D', 'T'}
	SignatureSSDT = Signature{'S', 'S', 'D', 'T'}
	SignatureXSDT = Signature{'X', 'S', 'D', 'T'}
	SignatureRSDT = Signature{'R', 'S', 'D', 'T'}
	SignatureFACS = Signature{'F', 'A', 'C', 'S'}
)

// String implements fmt.Stringer.
func (s Signature) String() string {
	for _, c := range s {
		if c > unicode.MaxASCII || !unicode.IsPrint(rune(c)) {
			return fmt.Sprintf("%q", string(s[:]))
		}
	}
	return string(s[:])
}

// ParseSignature converts a 4-character string into a Signature.
func ParseSignature(s string) (Signature, error) {
	var sig Signature
	if len(s) != len(sig) {
		return sig, fmt.Errorf("signature '%s' must be exactly %d characters long", s, len(sig))
	}
	copy(sig[:], s)
	return sig, nil
}
