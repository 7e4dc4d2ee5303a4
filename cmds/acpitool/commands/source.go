// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/linuxboot/acpitables/pkg/acpi/tablestore"
	"github.com/linuxboot/acpitables/pkg/compression"
	"github.com/linuxboot/acpitables/pkg/log"
)

// Format is the output format of a verb.
type Format int

const (
	FormatUndefined = Format(iota)
	FormatText
	FormatJSON
)

// ParseFormat parses the value of the --format option.
func ParseFormat(s string) Format {
	switch strings.Trim(strings.ToLower(s), " ") {
	case "text":
		return FormatText
	case "json":
		return FormatJSON
	}
	return FormatUndefined
}

// Source holds the options shared by every verb: where the tables are
// read from and how the result is printed. It is embedded into the verbs.
type Source struct {
	Dir    string  `short:"d" long:"dir" description:"path to a directory of table files" default:"/sys/firmware/acpi/tables"`
	Blob   string  `short:"f" long:"blob" description:"path to a file of concatenated tables, optionally compressed"`
	Format *string `long:"format" description:"output format [text, json]"`

	out io.Writer
}

// SetOutput redirects the output of the verb, os.Stdout by default.
func (src *Source) SetOutput(w io.Writer) {
	src.out = w
}

// Output returns where the verb prints to.
func (src *Source) Output() io.Writer {
	if src.out == nil {
		return os.Stdout
	}
	return src.out
}

// ParseFormat returns the requested output format.
func (src *Source) ParseFormat() (Format, error) {
	if src.Format == nil {
		return FormatText, nil
	}
	format := ParseFormat(*src.Format)
	if format == FormatUndefined {
		return FormatUndefined, ErrUnknownFormat{Format: *src.Format}
	}
	return format, nil
}

// Load reads the tables. Tables which could not be loaded are reported as
// warnings as long as at least one table was loaded.
func (src *Source) Load() (*tablestore.Store, error) {
	var (
		store *tablestore.Store
		err   error
	)
	if src.Blob != "" {
		store, err = loadBlob(src.Blob)
	} else {
		store, err = tablestore.FromDir(src.Dir)
	}
	if store == nil || store.Len() == 0 {
		if err == nil {
			err = fmt.Errorf("no tables found")
		}
		return nil, err
	}
	if merr, ok := err.(*multierror.Error); ok {
		for _, err := range merr.Errors {
			log.Warnf("%v", err)
		}
	} else if err != nil {
		log.Warnf("%v", err)
	}
	return store, nil
}

func loadBlob(path string) (*tablestore.Store, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read the tables file '%s': %w", path, err)
	}
	if b, err = compression.Decompress(b); err != nil {
		return nil, fmt.Errorf("unable to decompress '%s': %w", path, err)
	}
	return tablestore.FromBlob(b)
}

// WriteJSON prints v as indented JSON.
func (src *Source) WriteJSON(v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to marshal the result: %w", err)
	}
	_, err = fmt.Fprintf(src.Output(), "%s\n", b)
	return err
}
