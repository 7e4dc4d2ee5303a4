// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package numa

import (
	"fmt"
	"strings"

	"github.com/linuxboot/acpitables/cmds/acpitool/commands"
	"github.com/linuxboot/acpitables/cmds/acpitool/render"
	"github.com/linuxboot/acpitables/pkg/acpi/platform"
)

var _ commands.Command = (*Command)(nil)

type Command struct {
	commands.Source
}

type memoryRow struct {
	ProximityDomain uint32
	BaseAddress     render.Hex
	Length          render.Size
	Flags           string
}

func memoryFlags(m platform.MemoryAffinity) string {
	var flags []string
	if m.Enabled {
		flags = append(flags, "enabled")
	}
	if m.HotPluggable {
		flags = append(flags, "hot-pluggable")
	}
	if m.NonVolatile {
		flags = append(flags, "non-volatile")
	}
	return strings.Join(flags, ",")
}

// ShortDescription explains what this command does in one line
func (cmd *Command) ShortDescription() string {
	return "prints the NUMA topology"
}

// LongDescription explains what this verb does (without limitation in amount of lines)
func (cmd *Command) LongDescription() string {
	return "Prints processor and memory affinity from the SRAT and the distance matrix from the SLIT. Both tables are optional."
}

// Execute is the main function here. It is responsible to
// start the execution of the command.
//
// `args` are the arguments left unused by verb itself and options.
func (cmd *Command) Execute(args []string) error {
	if err := commands.NoArgs("numa", args); err != nil {
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

	info := platform.NewNumaInfo(store)
	if format == commands.FormatJSON {
		return cmd.WriteJSON(info)
	}

	out := cmd.Output()
	if err := render.Slice(out, "Processor Affinity", info.ProcessorAffinity); err != nil {
		return err
	}
	memory := make([]memoryRow, 0, len(info.MemoryAffinity))
	for _, m := range info.MemoryAffinity {
		memory = append(memory, memoryRow{
			ProximityDomain: m.ProximityDomain,
			BaseAddress:     render.Hex(m.BaseAddress),
			Length:          render.Size(m.Length),
			Flags:           memoryFlags(m),
		})
	}
	if err := render.Slice(out, "Memory Affinity", memory); err != nil {
		return err
	}

	distances := info.Distances()
	if !distances.Valid() || distances.N == 0 {
		fmt.Fprintln(out, "no distance matrix")
		return nil
	}
	render.Matrix(out, "Distances", int(distances.N), func(i, j int) string {
		d, _ := distances.Entry(uint64(i), uint64(j))
		return fmt.Sprint(d)
	})
	return nil
}
