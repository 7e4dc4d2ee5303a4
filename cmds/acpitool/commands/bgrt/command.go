// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bgrt

import (
	"github.com/linuxboot/acpitables/cmds/acpitool/commands"
	"github.com/linuxboot/acpitables/cmds/acpitool/render"
	"github.com/linuxboot/acpitables/pkg/acpi/bgrt"
	"github.com/linuxboot/acpitables/pkg/acpi/sdt"
)

var _ commands.Command = (*Command)(nil)

type Command struct {
	commands.Source
}

// Info is the decoded boot graphics resource.
type Info struct {
	Version           uint16
	Displayed         bool
	OrientationOffset uint16
	ImageType         string
	ImageAddress      render.Hex
	ImageOffsetX      uint32
	ImageOffsetY      uint32
}

// ShortDescription explains what this command does in one line
func (cmd *Command) ShortDescription() string {
	return "prints the boot graphics resource"
}

// LongDescription explains what this verb does (without limitation in amount of lines)
func (cmd *Command) LongDescription() string {
	return ""
}

// Execute is the main function here. It is responsible to
// start the execution of the command.
//
// `args` are the arguments left unused by verb itself and options.
func (cmd *Command) Execute(args []string) error {
	if err := commands.NoArgs("bgrt", args); err != nil {
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

	table, err := sdt.Find[bgrt.BGRT](store)
	if err != nil {
		return err
	}
	x, y := table.ImageOffset()
	info := Info{
		Version:           table.Version,
		Displayed:         table.Status.Displayed(),
		OrientationOffset: table.Status.OrientationOffset(),
		ImageType:         table.ImageType().String(),
		ImageAddress:      render.Hex(table.ImageAddress),
		ImageOffsetX:      x,
		ImageOffsetY:      y,
	}
	if format == commands.FormatJSON {
		return cmd.WriteJSON(info)
	}
	return render.Struct(cmd.Output(), "BGRT", info)
}
