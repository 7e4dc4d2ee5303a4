// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"io"

	"github.com/jessevdk/go-flags"
)

// Command is a verb of acpitool, like "numa" in "acpitool numa -d tables/".
// Every verb embeds Source, which provides the table options and the output.
type Command interface {
	flags.Commander

	// ShortDescription is the one-line summary shown in the verb list.
	ShortDescription() string

	// LongDescription is shown by "acpitool <verb> --help".
	LongDescription() string

	// SetOutput redirects what the verb prints.
	SetOutput(w io.Writer)
}
