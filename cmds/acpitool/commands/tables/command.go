// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tables

import (
	"fmt"

	"github.com/linuxboot/acpitables/cmds/acpitool/commands"
	"github.com/linuxboot/acpitables/cmds/acpitool/render"
	"github.com/linuxboot/acpitables/pkg/acpi/sdt"
)

var _ commands.Command = (*Command)(nil)

type Command struct {
	commands.Source
}

// Row describes one loaded table.
type Row struct {
	Signature       string
	Length          uint32
	Revision        uint8
	ChecksumValid   bool
	OEMID           string
	OEMTableID      string
	OEMRevision     render.Hex
	CreatorID       string
	CreatorRevision render.Hex
	Origin          string
}

// ShortDescription explains what this command does in one line
func (cmd *Command) ShortDescription() string {
	return "lists the tables"
}

// LongDescription explains what this verb does (without limitation in amount of lines)
func (cmd *Command) LongDescription() string {
	return "Prints the header of every table found, and whether its checksum is valid."
}

// Execute is the main function here. It is responsible to
// start the execution of the command.
//
// `args` are the arguments left unused by verb itself and options.
func (cmd *Command) Execute(args []string) error {
	if err := commands.NoArgs("tables", args); err != nil {
		return err
	}
	format, err := cmd.ParseFormat()
	if err != nil {
		return err
	}
	store, err := cmd.Load()
	if err != nil {
		return err
	}

	var rows []Row
	for _, sig := range store.Signatures() {
		raw, err := sdt.Lookup(store, sig)
		if err != nil {
			return fmt.Errorf("unable to look up '%s': %w", sig, err)
		}
		hdr := raw.Header()
		rows = append(rows, Row{
			Signature:       sig.String(),
			Length:          hdr.Length,
			Revision:        hdr.Revision,
			ChecksumValid:   raw.ValidateChecksum() == nil,
			OEMID:           hdr.OEMIDString(),
			OEMTableID:      hdr.OEMTableIDString(),
			OEMRevision:     render.Hex(hdr.OEMRevision),
			CreatorID:       hdr.CreatorIDString(),
			CreatorRevision: render.Hex(hdr.CreatorRevision),
			Origin:          store.Origin(sig),
		})
	}

	if format == commands.FormatJSON {
		return cmd.WriteJSON(rows)
	}
	return render.Slice(cmd.Output(), "Tables", rows)
}
