// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package aml holds AML namespace objects in an arena. Objects refer to
// each other by Handle and are only mutated through Arena.Update, so no
// two holders ever alias the same mutable object.
package aml

import (
	"fmt"
)

// Kind is the type of an AML object.
type Kind int

// Object kinds.
const (
	KindUninitialized Kind = iota
	KindBuffer
	KindBufferField
	KindDevice
	KindEvent
	KindFieldUnit
	KindInteger
	KindMethod
	KindMutex
	KindReference
	KindOpRegion
	KindPackage
	KindPowerResource
	KindProcessor
	KindRawDataBuffer
	KindString
	KindThermalZone
)

var kindNames = []string{
	"Uninitialized", "Buffer", "BufferField", "Device", "Event", "FieldUnit",
	"Integer", "Method", "Mutex", "Reference", "OpRegion", "Package",
	"PowerResource", "Processor", "RawDataBuffer", "String", "ThermalZone",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Handle identifies an object of an Arena. The zero Handle is never valid.
type Handle uint32

func (h Handle) String() string {
	return fmt.Sprintf("#%d", uint32(h))
}

// Object is an AML object. Only the field matching Kind is meaningful.
type Object struct {
	Kind      Kind
	Integer   uint64
	Buffer    []byte
	Reference Handle
}

// NewInteger returns an integer object.
func NewInteger(v uint64) Object {
	return Object{Kind: KindInteger, Integer: v}
}

// NewBuffer returns a buffer object holding a copy of b.
func NewBuffer(b []byte) Object {
	return Object{Kind: KindBuffer, Buffer: append([]byte{}, b...)}
}

// NewReference returns a reference to the object h.
func NewReference(h Handle) Object {
	return Object{Kind: KindReference, Reference: h}
}

func (o Object) clone() Object {
	if o.Buffer != nil {
		o.Buffer = append([]byte{}, o.Buffer...)
	}
	return o
}

func (o Object) String() string {
	switch o.Kind {
	case KindInteger:
		return fmt.Sprintf("Integer(0x%x)", o.Integer)
	case KindBuffer:
		return fmt.Sprintf("Buffer(%d bytes)", len(o.Buffer))
	case KindReference:
		return fmt.Sprintf("Reference(%s)", o.Reference)
	}
	return o.Kind.String()
}
