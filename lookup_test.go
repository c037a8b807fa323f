// Copyright 2022 Daniel Erat.
// All rights reserved.

package main

import (
	"reflect"
	"sort"
	"testing"
)

func TestLookupTable(t *testing.T) {
	table := newLookupTable()
	for i, features := range [][]uint32{
		{0x44442222, 0x44441111, 0x33332222, 0x55553333},
		{0x44442222, 0x44441111, 0x55553333},
		{0x33332222, 0x33331111, 0x33334444, 0x44442222},
	} {
		table.add(i, features)
	}

	for _, tc := range []struct {
		features []uint32
		thresh   int
		want     []int
	}{
		{[]uint32{0x44442222, 0x44441111, 0x33332222, 0x55553333}, 4, []int{0}},
		{[]uint32{0x44442222, 0x44441111, 0x33332222, 0x55553333}, 3, []int{0, 1}},
		{[]uint32{0x44442222, 0x44441111, 0x33332222, 0x55553333}, 2, []int{0, 1, 2}},
		{[]uint32{0x33331111, 0x33334444}, 1, []int{2}},
		{[]uint32{0x33331111, 0x33334444}, 3, []int{}},
		{[]uint32{0x99999999}, 1, []int{}},
		{nil, 1, []int{}},
	} {
		got := table.find(tc.features, tc.thresh)
		sort.Ints(got)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("find(%v, %d) = %v; want %v", tc.features, tc.thresh, got, tc.want)
		}
	}
}
