// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package platform

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

type summary struct {
	PowerProfile      string
	InterruptModel    string
	LocalAPICAddress  render.Hex
	AlsoHasLegacyPICs bool
	PMTimer           string
	BootProcessor     string
	Processors        int
	EnabledProcessors int
}

type ioAPICRow struct {
	ID                        uint8
	Address                   render.Hex
	GlobalSystemInterruptBase uint32
}

func describeTimer(t *platform.PmTimer) string {
	if t == nil {
		return "none"
	}
	width := 24
	if t.Supports32Bit {
		width = 32
	}
	return fmt.Sprintf("%s 0x%x (%d bits)", t.Base.Space, t.Base.Address, width)
}

func newSummary(info *platform.PlatformInfo) summary {
	s := summary{
		PowerProfile:   info.PowerProfile.String(),
		InterruptModel: info.InterruptModel.Kind.String(),
		PMTimer:        describeTimer(info.PmTimer),
		BootProcessor:  "none",
	}
	if apic := info.InterruptModel.APIC; apic != nil {
		s.LocalAPICAddress = render.Hex(apic.LocalAPICAddress)
		s.AlsoHasLegacyPICs = apic.AlsoHasLegacyPICs
	}
	if p := info.ProcessorInfo; p != nil {
		s.BootProcessor = fmt.Sprintf("UID %d, APIC ID %d", p.BootProcessor.UID, p.BootProcessor.LocalAPICID)
		s.Processors = 1 + len(p.ApplicationProcessors)
		s.EnabledProcessors = 1 + len(p.Enabled())
	}
	return s
}

// ShortDescription explains what this command does in one line
func (cmd *Command) ShortDescription() string {
	return "prints the processors and the interrupt model"
}

// LongDescription explains what this verb does (without limitation in amount of lines)
func (cmd *Command) LongDescription() string {
	return "Prints the power profile and the power management timer from the FADT, the processors and the interrupt controllers from the MADT."
}

// Execute is the main function here. It is responsible to
// start the execution of the command.
//
// `args` are the arguments left unused by verb itself and options.
func (cmd *Command) Execute(args []string) error {
	if err := commands.NoArgs("platform", args); err != nil {
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

	info, err := platform.NewPlatformInfo(store)
	if err != nil {
		return fmt.Errorf("unable to get the platform info: %w", err)
	}
	if format == commands.FormatJSON {
		return cmd.WriteJSON(info)
	}

	out := cmd.Output()
	if err := render.Struct(out, "Platform", newSummary(info)); err != nil {
		return err
	}
	if p := info.ProcessorInfo; p != nil {
		processors := append([]platform.Processor{p.BootProcessor}, p.ApplicationProcessors...)
		if err := render.Slice(out, "Processors", processors); err != nil {
			return err
		}
	}

	apic := info.InterruptModel.APIC
	if apic == nil {
		return nil
	}
	ioAPICs := make([]ioAPICRow, 0, len(apic.IOAPICs))
	for _, ioAPIC := range apic.IOAPICs {
		ioAPICs = append(ioAPICs, ioAPICRow{ID: ioAPIC.ID, Address: render.Hex(ioAPIC.Address), GlobalSystemInterruptBase: ioAPIC.GlobalSystemInterruptBase})
	}
	if err := render.Slice(out, "I/O APICs", ioAPICs); err != nil {
		return err
	}
	if err := render.Slice(out, "Interrupt Source Overrides", apic.InterruptSourceOverrides); err != nil {
		return err
	}
	if err := render.Slice(out, "NMI Sources", apic.NMISources); err != nil {
		return err
	}
	return render.Slice(out, "Local APIC NMI Lines", apic.LocalAPICNMILines)
}
