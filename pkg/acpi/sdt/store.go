// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sdt

import (
	"sort"
)

// Store is a source of raw tables, for example an OS-provided table
// directory or a firmware dump.
type Store interface {
	// FindTable returns the bytes of the table with the given signature,
	// starting at its header.
	FindTable(sig Signature) ([]byte, bool)
}

// MapStore is an in-memory Store.
type MapStore map[Signature][]byte

var _ Store = MapStore(nil)

// FindTable implements Store.
func (s MapStore) FindTable(sig Signature) ([]byte, bool) {
	b, ok := s[sig]
	return b, ok
}

// Add stores b under the signature from its header. An already stored
// table of the same signature is kept and false is returned.
func (s MapStore) Add(b []byte) (bool, error) {
	hdr, err := ParseHeader(b)
	if err != nil {
		return false, err
	}
	if _, ok := s[hdr.Signature]; ok {
		return false, nil
	}
	s[hdr.Signature] = b
	return true, nil
}

// Signatures returns the stored signatures in lexical order.
func (s MapStore) Signatures() []Signature {
	result := make([]Signature, 0, len(s))
	for sig := range s {
		result = append(result, sig)
	}
	sort.Slice(result, func(i, j int) bool {
		return string(result[i][:]) < string(result[j][:])
	})
	return result
}
