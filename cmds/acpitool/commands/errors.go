// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"
	"strings"
)

// ErrExtraArgs is returned by a verb given positional arguments. None of
// the verbs take any, the tables are selected with -d or -f.
type ErrExtraArgs struct {
	Verb string
	Args []string
}

func (err ErrExtraArgs) Error() string {
	return fmt.Sprintf("%s: unexpected arguments %s, tables are selected with -d or -f",
		err.Verb, strings.Join(err.Args, " "))
}

// ErrUnknownFormat is returned for a --format value other than text or json.
type ErrUnknownFormat struct {
	Format string
}

func (err ErrUnknownFormat) Error() string {
	return fmt.Sprintf("unknown output format '%s', expected text or json", err.Format)
}

// NoArgs returns ErrExtraArgs if args is not empty.
func NoArgs(verb string, args []string) error {
	if len(args) != 0 {
		return ErrExtraArgs{Verb: verb, Args: args}
	}
	return nil
}
