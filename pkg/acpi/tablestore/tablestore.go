// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tablestore loads raw tables from a table directory (as exported
// by Linux in /sys/firmware/acpi/tables) or from a blob of concatenated
// tables.
package tablestore

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"github.com/xaionaro-go/bytesextra"

	"github.com/linuxboot/acpitables/pkg/acpi/sdt"
	"github.com/linuxboot/acpitables/pkg/compression"
)

// DefaultDir is where Linux exports the firmware tables.
const DefaultDir = "/sys/firmware/acpi/tables"

// Store is a sdt.Store remembering where every table came from. When more
// than one table has the same signature the first one loaded is kept.
type Store struct {
	tables  sdt.MapStore
	origins map[sdt.Signature]string
}

var _ sdt.Store = (*Store)(nil)

func newStore() *Store {
	return &Store{
		tables:  sdt.MapStore{},
		origins: map[sdt.Signature]string{},
	}
}

// FindTable implements sdt.Store.
func (s *Store) FindTable(sig sdt.Signature) ([]byte, bool) {
	return s.tables.FindTable(sig)
}

// Signatures returns the signatures of the loaded tables in lexical order.
func (s *Store) Signatures() []sdt.Signature {
	return s.tables.Signatures()
}

// Len returns the number of loaded tables.
func (s *Store) Len() int {
	return len(s.tables)
}

// Origin describes where the table sig was loaded from: a file name or an
// offset within a blob.
func (s *Store) Origin(sig sdt.Signature) string {
	return s.origins[sig]
}

func (s *Store) add(b []byte, origin string) error {
	raw, err := sdt.NewRaw(b)
	if err != nil {
		return err
	}
	added, err := s.tables.Add(raw.Data)
	if err != nil {
		return err
	}
	if added {
		s.origins[raw.Signature()] = origin
	}
	return nil
}

// FromDir loads every regular file under dir as a table. Files compressed
// with xz, zstd or lz4 are decompressed. Files which are not valid tables
// are reported in the returned error, which may be a *multierror.Error,
// while the valid ones are still returned.
func FromDir(dir string) (*Store, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("unable to read directory '%s': %w", dir, err)
	}

	store := newStore()
	var result *multierror.Error
	for _, file := range files {
		if !file.Type().IsRegular() {
			continue
		}
		path := filepath.Join(dir, file.Name())
		if err := store.addFile(path); err != nil {
			result = multierror.Append(result, fmt.Errorf("unable to load '%s': %w", path, err))
		}
	}
	return store, result.ErrorOrNil()
}

func (s *Store) addFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if c := compression.FromExtension(path); c != nil {
		if b, err = c.Decode(b); err != nil {
			return fmt.Errorf("unable to decode %s data: %w", c.Name(), err)
		}
	} else if b, err = compression.Decompress(b); err != nil {
		return err
	}
	return s.add(b, filepath.Base(path))
}

// FromBlob loads tables stored back to back in b. The walk stops at the end
// of b or at the first table which does not fit, in which case the tables
// before it are returned along with the error.
func FromBlob(b []byte) (*Store, error) {
	store := newStore()
	r := bytesextra.NewReadWriteSeeker(b)
	for {
		offset, err := r.Seek(0, io.SeekCurrent)
		if err != nil {
			return store, err
		}
		if offset == int64(len(b)) {
			return store, nil
		}

		var hdr sdt.Header
		if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
			return store, fmt.Errorf("unable to read the table header at offset 0x%x: %w", offset, err)
		}
		end := offset + int64(hdr.Length)
		if hdr.Length < sdt.HeaderSize || end > int64(len(b)) {
			return store, fmt.Errorf("table at offset 0x%x: %w", offset,
				&sdt.ErrTruncatedTable{Signature: hdr.Signature, Length: hdr.Length, Available: len(b) - int(offset)})
		}
		if err := store.add(b[offset:end], fmt.Sprintf("0x%x", offset)); err != nil {
			return store, fmt.Errorf("table at offset 0x%x: %w", offset, err)
		}
		if _, err := r.Seek(end, io.SeekStart); err != nil {
			return store, err
		}
	}
}
