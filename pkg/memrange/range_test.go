// Copyright 2019-2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memrange

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRangesSortAndMerge(t *testing.T) {
	t.Run("nothing_to_merge", func(t *testing.T) {
		entries := Ranges{{Base: 2, Length: 1}, {Base: 0, Length: 1}}
		entries.SortAndMerge()
		require.Equal(t, Ranges{{Base: 0, Length: 1}, {Base: 2, Length: 1}}, entries)
	})
	t.Run("merge_overlapping", func(t *testing.T) {
		entries := Ranges{{Base: 2, Length: 3}, {Base: 0, Length: 3}}
		entries.SortAndMerge()
		require.Equal(t, Ranges{{Base: 0, Length: 5}}, entries)
	})
	t.Run("merge_adjacent", func(t *testing.T) {
		entries := Ranges{{Base: 0x100000, Length: 0x100000}, {Base: 0, Length: 0x100000}}
		entries.SortAndMerge()
		require.Equal(t, Ranges{{Base: 0, Length: 0x200000}}, entries)
	})
	t.Run("next_range_inside_previous", func(t *testing.T) {
		entries := Ranges{{Base: 0, Length: 100}, {Base: 10, Length: 5}, {Base: 0, Length: 0}}
		entries.SortAndMerge()
		require.Equal(t, Ranges{{Base: 0, Length: 100}}, entries)
	})
}

func TestRangeContains(t *testing.T) {
	r := Range{Base: 0x1000, Length: 0x1000}
	require.True(t, r.Contains(0x1000))
	require.True(t, r.Contains(0x1fff))
	require.False(t, r.Contains(0x2000))
	require.False(t, Range{Base: 5}.Contains(5))

	top := Range{Base: ^uint64(0) - 1, Length: 10}
	require.Equal(t, ^uint64(0), top.End())
	require.True(t, top.Contains(^uint64(0)-1))

	s := Ranges{{Base: 0, Length: 1}, r}
	require.True(t, s.Contains(0x1800))
	require.False(t, s.Contains(0x800))
	require.Equal(t, uint64(0x1001), s.Total())
}

func TestRangeIntersect(t *testing.T) {
	a := Range{Base: 0, Length: 10}
	require.True(t, a.Intersect(Range{Base: 9, Length: 1}))
	require.False(t, a.Intersect(Range{Base: 10, Length: 1}))
	require.False(t, a.Intersect(Range{Base: 5}))
}
