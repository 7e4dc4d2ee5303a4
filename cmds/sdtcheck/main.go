// Copyright 2023-2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// sdtcheck verifies the checksum of table files.
//
// Synopsis:
//     sdtcheck [-q] [FILE_OR_DIR...]
//
// Directories are expanded to the regular files they contain. Without
// arguments the tables exported by Linux are checked. The exit status is 1
// if any table has a bad checksum or can not be read.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/linuxboot/acpitables/pkg/acpi/sdt"
	"github.com/linuxboot/acpitables/pkg/acpi/tablestore"
	"github.com/linuxboot/acpitables/pkg/compression"
	"github.com/linuxboot/acpitables/pkg/log"
)

func main() {
	quiet := flag.BoolP("quiet", "q", false, "print only the tables failing the check")
	flag.Parse()

	os.Exit(run(flag.Args(), *quiet, os.Stdout))
}

func run(args []string, quiet bool, out io.Writer) int {
	if len(args) == 0 {
		args = []string{tablestore.DefaultDir}
	}
	files, err := expand(args)
	if err != nil {
		log.Errorf("%v", err)
		return 1
	}

	status := 0
	for _, path := range files {
		sig, err := checkFile(path)
		switch {
		case err != nil:
			status = 1
			fmt.Fprintf(out, "%s: %v\n", path, err)
		case !quiet:
			fmt.Fprintf(out, "%s: %s ok\n", path, sig)
		}
	}
	return status
}

func expand(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		fi, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !fi.IsDir() {
			files = append(files, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.Type().IsRegular() {
				files = append(files, filepath.Join(arg, e.Name()))
			}
		}
	}
	return files, nil
}

func checkFile(path string) (sdt.Signature, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return sdt.Signature{}, err
	}
	if b, err = compression.Decompress(b); err != nil {
		return sdt.Signature{}, err
	}
	raw, err := sdt.NewRaw(b)
	if err != nil {
		return sdt.Signature{}, err
	}
	return raw.Signature(), raw.ValidateChecksum()
}
