// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render prints structures as text tables. Column titles are
// derived from the Go field names.
package render

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/camelcase"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Hex is printed in hexadecimal.
type Hex uint64

func (h Hex) String() string {
	return fmt.Sprintf("0x%x", uint64(h))
}

// Size is a number of bytes printed in a human readable form.
type Size uint64

func (s Size) String() string {
	return fmt.Sprintf("%s (0x%x)", humanize.IBytes(uint64(s)), uint64(s))
}

// Title splits a Go identifier into words: "ProximityDomain" becomes
// "Proximity Domain".
func Title(name string) string {
	return strings.Join(camelcase.Split(name), " ")
}

func newWriter(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	if title != "" {
		t.SetTitle(title)
	}
	return t
}

func structValue(v interface{}) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return reflect.Value{}, fmt.Errorf("nil %s", rv.Type())
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%s is not a struct", rv.Type())
	}
	return rv, nil
}

func exportedFields(t reflect.Type) []int {
	var result []int
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).IsExported() {
			result = append(result, i)
		}
	}
	return result
}

// Struct prints the exported fields of v, a struct or a pointer to one,
// as a two column table.
func Struct(w io.Writer, title string, v interface{}) error {
	rv, err := structValue(v)
	if err != nil {
		return err
	}
	t := newWriter(w, title)
	t.AppendHeader(table.Row{"Field", "Value"})
	for _, i := range exportedFields(rv.Type()) {
		t.AppendRow(table.Row{Title(rv.Type().Field(i).Name), fmt.Sprint(rv.Field(i).Interface())})
	}
	t.Render()
	return nil
}

// Slice prints s, a slice of structs, with one column per exported field.
func Slice(w io.Writer, title string, s interface{}) error {
	rv := reflect.ValueOf(s)
	if rv.Kind() != reflect.Slice {
		return fmt.Errorf("%s is not a slice", rv.Type())
	}
	elem := rv.Type().Elem()
	if elem.Kind() != reflect.Struct {
		return fmt.Errorf("%s is not a slice of structs", rv.Type())
	}

	fields := exportedFields(elem)
	t := newWriter(w, title)
	header := table.Row{"#"}
	for _, i := range fields {
		header = append(header, Title(elem.Field(i).Name))
	}
	t.AppendHeader(header)
	for idx := 0; idx < rv.Len(); idx++ {
		row := table.Row{idx}
		for _, i := range fields {
			row = append(row, fmt.Sprint(rv.Index(idx).Field(i).Interface()))
		}
		t.AppendRow(row)
	}
	t.Render()
	return nil
}

// Matrix prints a square matrix of n rows, labelling rows and columns by
// their index.
func Matrix(w io.Writer, title string, n int, cell func(i, j int) string) {
	t := newWriter(w, title)
	header := table.Row{""}
	for j := 0; j < n; j++ {
		header = append(header, j)
	}
	t.AppendHeader(header)
	for i := 0; i < n; i++ {
		row := table.Row{i}
		for j := 0; j < n; j++ {
			row = append(row, cell(i, j))
		}
		t.AppendRow(row)
	}
	t.Render()
}
