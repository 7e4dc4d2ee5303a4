// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sdt implements the common part of ACPI system description tables:
// the standard header, signatures, checksums and lookup of tables in a
// Store.
//
// Tables are never trusted. Lookup validates that the declared length fits
// the available bytes before any typed decoder sees them, and typed
// decoders read fields by explicit offsets from the validated view.
package sdt
