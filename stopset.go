// Copyright 2022 Daniel Erat.
// All rights reserved.

package main

import "fmt"

// slotState describes the occupancy of a stopSet slot.
type slotState uint8

const (
	slotEmpty slotState = iota
	slotFull
	slotDeleted
)

// stopSet is an open-addressed set of the fingerprints currently held in a sketch.
// Fingerprints are already well mixed, so values are used directly as their own hashes.
type stopSet struct {
	vals []uint32
	occ  []slotState
}

// nextPow2 returns the smallest power of two strictly greater than n.
func nextPow2(n int) int {
	m := 1
	for ; n > 0; n >>= 1 {
		m <<= 1
	}
	return m
}

// reset empties s and sizes it to hold n values at a load factor below 1/7.
func (s *stopSet) reset(n int) {
	s.alloc(nextPow2(7 * n))
}

func (s *stopSet) alloc(size int) {
	s.vals = make([]uint32, size)
	s.occ = make([]slotState, size)
}

// step returns the probe stride. It's odd, so it visits every slot of the
// power-of-two table before repeating.
func (s *stopSet) step() uint32 { return uint32(2*(len(s.vals)/4) + 1) }

// probe calls fn with successive slot indexes for v until fn returns true.
// It returns false if every slot was visited.
func (s *stopSet) probe(v uint32, fn func(i int) bool) bool {
	mask := uint32(len(s.vals) - 1)
	st := s.step()
	h := v
	for n := 0; n < len(s.vals); n++ {
		if fn(int(h & mask)) {
			return true
		}
		h += st
	}
	return false
}

func (s *stopSet) tryInsert(v uint32) bool {
	return s.probe(v, func(i int) bool {
		if s.occ[i] != slotFull {
			s.occ[i] = slotFull
			s.vals[i] = v
			return true
		}
		return s.vals[i] == v
	})
}

// tryContains returns -1 if the probe sequence was exhausted.
func (s *stopSet) tryContains(v uint32) int {
	res := -1
	s.probe(v, func(i int) bool {
		switch {
		case s.occ[i] == slotEmpty:
			res = 0
		case s.occ[i] == slotFull && s.vals[i] == v:
			res = 1
		default:
			return false
		}
		return true
	})
	return res
}

// tryDelete returns -1 if the probe sequence was exhausted.
func (s *stopSet) tryDelete(v uint32) int {
	res := -1
	s.probe(v, func(i int) bool {
		switch {
		case s.occ[i] == slotFull && s.vals[i] == v:
			s.occ[i] = slotDeleted
			res = 1
		case s.occ[i] == slotEmpty:
			res = 0
		default:
			return false
		}
		return true
	})
	return res
}

// compact rebuilds the table without tombstones.
func (s *stopSet) compact() {
	oldVals, oldOcc := s.vals, s.occ
	s.alloc(len(oldVals))
	for i, o := range oldOcc {
		if o == slotFull && !s.tryInsert(oldVals[i]) {
			panic("stop set compaction failed: table full")
		}
	}
}

// retry runs op, compacting the table and running it again if it reports exhaustion.
func (s *stopSet) retry(what string, v uint32, op func() int) int {
	if res := op(); res >= 0 {
		return res
	}
	s.compact()
	if res := op(); res >= 0 {
		return res
	}
	panic(fmt.Sprintf("stop set %s of %#x failed: table full", what, v))
}

// insert adds v to s. Inserting a value that's already present is a no-op
// when no tombstone precedes it in the probe sequence; callers check contains first.
func (s *stopSet) insert(v uint32) {
	s.retry("insert", v, func() int {
		if s.tryInsert(v) {
			return 1
		}
		return -1
	})
}

// contains reports whether v is in s.
func (s *stopSet) contains(v uint32) bool {
	return s.retry("lookup", v, func() int { return s.tryContains(v) }) == 1
}

// delete removes v from s, returning false if it wasn't present.
func (s *stopSet) delete(v uint32) bool {
	return s.retry("delete", v, func() int { return s.tryDelete(v) }) == 1
}

// count returns the number of values in s.
func (s *stopSet) count() int {
	var n int
	for _, o := range s.occ {
		if o == slotFull {
			n++
		}
	}
	return n
}
