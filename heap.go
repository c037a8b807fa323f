// Copyright 2022 Daniel Erat.
// All rights reserved.

package main

// maxHeap is a bounded binary max-heap of fingerprints.
type maxHeap struct {
	vals []uint32 // len(vals) is the current size; cap(vals) is the capacity
}

// reset empties h and sets its capacity to n, reusing storage when possible.
func (h *maxHeap) reset(n int) {
	if cap(h.vals) != n {
		h.vals = make([]uint32, 0, n)
	} else {
		h.vals = h.vals[:0]
	}
}

func (h *maxHeap) size() int  { return len(h.vals) }
func (h *maxHeap) full() bool { return len(h.vals) == cap(h.vals) }

// peekMax returns the largest value without removing it. h must be non-empty.
func (h *maxHeap) peekMax() uint32 { return h.vals[0] }

// insert adds v. h must not be full.
func (h *maxHeap) insert(v uint32) {
	if h.full() {
		panic("heap overflow")
	}
	h.vals = append(h.vals, v)
	i := len(h.vals) - 1
	for i > 0 {
		p := (i - 1) / 2
		if h.vals[p] >= h.vals[i] {
			break
		}
		h.vals[p], h.vals[i] = h.vals[i], h.vals[p]
		i = p
	}
}

// extractMax removes and returns the largest value. h must be non-empty.
func (h *maxHeap) extractMax() uint32 {
	m := h.vals[0]
	last := len(h.vals) - 1
	h.vals[0] = h.vals[last]
	h.vals = h.vals[:last]

	n := len(h.vals)
	i := 0
	for {
		l := 2*i + 1
		if l >= n {
			break
		}
		c := l
		if r := l + 1; r < n && h.vals[r] > h.vals[l] {
			c = r
		}
		if h.vals[i] >= h.vals[c] {
			break
		}
		h.vals[i], h.vals[c] = h.vals[c], h.vals[i]
		i = c
	}
	return m
}
