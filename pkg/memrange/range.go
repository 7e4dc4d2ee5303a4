// Copyright 2019-2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package memrange handles physical address ranges described by the
// memory affinity structures.
package memrange

import (
	"fmt"
	"sort"
	"strings"
)

// Range is a physical address range [Base, Base+Length).
type Range struct {
	Base   uint64
	Length uint64
}

func (r Range) String() string {
	return fmt.Sprintf(`{"Base":"0x%x", "Length":"0x%x"}`, r.Base, r.Length)
}

// End returns the first address after the range, saturating at the top of
// the address space.
func (r Range) End() uint64 {
	end := r.Base + r.Length
	if end < r.Base {
		return ^uint64(0)
	}
	return end
}

// Contains returns true if addr is inside the range.
func (r Range) Contains(addr uint64) bool {
	return r.Length != 0 && r.Base <= addr && addr < r.End()
}

// Intersect returns true if ranges "r" and "cmp" share at least one address.
func (r Range) Intersect(cmp Range) bool {
	if r.Length == 0 || cmp.Length == 0 {
		return false
	}
	return r.Base < cmp.End() && cmp.Base < r.End()
}

// Ranges is a helper to manipulate multiple `Range`-s at once
type Ranges []Range

func (s Ranges) String() string {
	r := make([]string, 0, len(s))
	for _, oneRange := range s {
		r = append(r, oneRange.String())
	}
	return `[` + strings.Join(r, `, `) + `]`
}

// Sort sorts the slice by field Base
func (s Ranges) Sort() {
	sort.Slice(s, func(i, j int) bool {
		return s[i].Base < s[j].Base
	})
}

// Merge merges adjacent or overlapping ranges. Empty ranges are dropped.
//
// Warning: should be called only on sorted ranges!
func Merge(in Ranges) Ranges {
	var result Ranges
	for _, next := range in {
		if next.Length == 0 {
			continue
		}
		if n := len(result); n > 0 && result[n-1].End() >= next.Base {
			last := &result[n-1]
			if end := next.End(); end > last.End() {
				last.Length = end - last.Base
			}
			continue
		}
		result = append(result, next)
	}
	return result
}

// SortAndMerge sorts the slice (by field Base) and then merges ranges
// which could be merged.
func (s *Ranges) SortAndMerge() {
	s.Sort()
	*s = Merge(*s)
}

// Contains returns true if any of the ranges covers addr.
func (s Ranges) Contains(addr uint64) bool {
	for _, r := range s {
		if r.Contains(addr) {
			return true
		}
	}
	return false
}

// Total returns the sum of the lengths.
func (s Ranges) Total() uint64 {
	var total uint64
	for _, r := range s {
		total += r.Length
	}
	return total
}
