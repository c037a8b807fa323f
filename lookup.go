// Copyright 2022 Daniel Erat.
// All rights reserved.

package main

// lookupTable is used to quickly find sketches sharing features with a given sketch.
type lookupTable struct {
	m map[uint32][]int // feature -> indexes of sketches containing it
}

func newLookupTable() *lookupTable { return &lookupTable{make(map[uint32][]int)} }

// add adds the features of the sketch with the supplied index to the table.
// Features within a sketch are distinct.
func (t *lookupTable) add(idx int, features []uint32) {
	for _, v := range features {
		t.m[v] = append(t.m[v], idx)
	}
}

// find returns the indexes of sketches that share at least thresh features with features.
func (t *lookupTable) find(features []uint32, thresh int) []int {
	hits := make(map[int]int)
	for _, v := range features {
		for _, idx := range t.m[v] {
			hits[idx]++
		}
	}
	ids := make([]int, 0, len(hits))
	for idx, cnt := range hits {
		if cnt >= thresh {
			ids = append(ids, idx)
		}
	}
	return ids
}
