// Copyright 2017-2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// acpitool prints what the firmware ACPI tables describe.
//
// Synopsis:
//     acpitool tables [-d DIR | -f FILE] [--format=text|json]
//     acpitool numa [-d DIR | -f FILE] [--format=text|json]
//     acpitool platform [-d DIR | -f FILE] [--format=text|json]
//     acpitool hpet [-d DIR | -f FILE] [--format=text|json]
//     acpitool bgrt [-d DIR | -f FILE] [--format=text|json]
//
// An example:
//     sudo acpitool platform
//     acpitool numa -f tables.bin.zst --format=json | jq '.MemoryAffinity'
//
// Description:
//     tables:   Lists the tables and validates their checksum
//     numa:     Prints the SRAT affinity structures and the SLIT distances
//     platform: Prints the processors and the interrupt model
//     hpet:     Prints the HPET description
//     bgrt:     Prints the boot graphics resource
//
// Tables are read from /sys/firmware/acpi/tables by default. With -f they
// are read from a file holding tables back to back, which may be xz, zstd
// or lz4 compressed.
package main

import (
	"log"

	"github.com/jessevdk/go-flags"

	"github.com/linuxboot/acpitables/cmds/acpitool/commands"
	"github.com/linuxboot/acpitables/cmds/acpitool/commands/bgrt"
	"github.com/linuxboot/acpitables/cmds/acpitool/commands/hpet"
	"github.com/linuxboot/acpitables/cmds/acpitool/commands/numa"
	"github.com/linuxboot/acpitables/cmds/acpitool/commands/platform"
	"github.com/linuxboot/acpitables/cmds/acpitool/commands/tables"
)

var (
	knownCommands = map[string]commands.Command{
		"tables":   &tables.Command{},
		"numa":     &numa.Command{},
		"platform": &platform.Command{},
		"hpet":     &hpet.Command{},
		"bgrt":     &bgrt.Command{},
	}
)

func main() {
	flagsParser := flags.NewParser(nil, flags.Default)
	for commandName, command := range knownCommands {
		_, err := flagsParser.AddCommand(commandName, command.ShortDescription(), command.LongDescription(), command)
		if err != nil {
			panic(err)
		}
	}

	// parse arguments and execute the appropriate command
	if _, err := flagsParser.Parse(); err != nil {
		log.Fatal(err)
	}
}
