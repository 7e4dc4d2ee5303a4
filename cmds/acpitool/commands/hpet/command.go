// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpet

import (
	"fmt"

	"github.com/linuxboot/acpitables/cmds/acpitool/commands"
	"github.com/linuxboot/acpitables/cmds/acpitool/render"
	"github.com/linuxboot/acpitables/pkg/acpi/platform"
)

var _ commands.Command = (*Command)(nil)

type Command struct {
	commands.Source
}

type row struct {
	HardwareRevision uint8
	NumComparators   uint8
	Counter64Bit     bool
	LegacyIRQCapable bool
	PCIVendorID      render.Hex
	BaseAddress      render.Hex
	HPETNumber       uint8
	ClockTickUnit    uint16
	PageProtection   string
	OEMAttributes    render.Hex
}

// ShortDescription explains what this command does in one line
func (cmd *Command) ShortDescription() string {
	return "prints the HPET description"
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
	if err := commands.NoArgs("hpet", args); err != nil {
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

	info, err := platform.NewHPETInfo(store)
	if err != nil {
		return fmt.Errorf("unable to get the HPET info: %w", err)
	}
	if format == commands.FormatJSON {
		return cmd.WriteJSON(info)
	}
	return render.Struct(cmd.Output(), "HPET", row{
		HardwareRevision: info.HardwareRevision,
		NumComparators:   info.NumComparators,
		Counter64Bit:     info.Counter64Bit,
		LegacyIRQCapable: info.LegacyIRQCapable,
		PCIVendorID:      render.Hex(info.PCIVendorID),
		BaseAddress:      render.Hex(info.BaseAddress),
		HPETNumber:       info.HPETNumber,
		ClockTickUnit:    info.ClockTickUnit,
		PageProtection:   info.PageProtection.String(),
		OEMAttributes:    render.Hex(info.OEMAttributes),
	})
}
