// Copyright 2022 Daniel Erat.
// All rights reserved.

package main

import (
	"math/rand"
	"reflect"
	"sort"
	"testing"
)

func TestMaxHeap(t *testing.T) {
	const n = 200
	r := rand.New(rand.NewSource(3))
	seen := make(map[uint32]struct{})
	var vals []uint32
	for len(vals) < n {
		v := r.Uint32()
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			vals = append(vals, v)
		}
	}

	var h maxHeap
	for round := 0; round < 2; round++ {
		h.reset(n)
		for i, v := range vals {
			if h.full() {
				t.Fatalf("Heap full after %d inserts", i)
			}
			h.insert(v)
		}
		if !h.full() {
			t.Fatalf("Heap not full after %d inserts", n)
		}

		want := append([]uint32(nil), vals...)
		sort.Slice(want, func(i, j int) bool { return want[i] > want[j] })
		if got := h.peekMax(); got != want[0] {
			t.Errorf("peekMax() = %#x; want %#x", got, want[0])
		}
		var got []uint32
		for h.size() > 0 {
			got = append(got, h.extractMax())
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Extracted %v; want %v", got, want)
		}
	}
}

func TestMaxHeap_SmallValues(t *testing.T) {
	var h maxHeap
	h.reset(5)
	for _, v := range []uint32{3, 0xffffffff, 1, 0x80000000, 2} {
		h.insert(v)
	}
	var got []uint32
	for h.size() > 0 {
		got = append(got, h.extractMax())
	}
	if want := []uint32{0xffffffff, 0x80000000, 3, 2, 1}; !reflect.DeepEqual(got, want) {
		t.Errorf("Extracted %v; want %v", got, want)
	}
}
