// Copyright 2022 Daniel Erat.
// All rights reserved.

package main

import (
	"bytes"
	"reflect"
	"testing"
)

func TestComponents(t *testing.T) {
	edges := make(map[int][]int)
	add := func(a, b int) {
		edges[a] = append(edges[a], b)
		edges[b] = append(edges[b], a)
	}
	add(1, 2)
	add(1, 3)
	add(2, 3)
	add(3, 4)
	add(5, 6)
	add(5, 7)

	add(9, 9)
	if got := components(map[int][]int{}); len(got) != 0 {
		t.Errorf("components of empty graph = %v; want none", got)
	}

	got := components(edges)
	if want := [][]int{{1, 2, 3, 4}, {5, 6, 7}, {9}}; !reflect.DeepEqual(got, want) {
		t.Errorf("components(...) = %v; want %v", got, want)
	}
}

func TestFindGroups(t *testing.T) {
	sketches := []*sketch{
		{8, []uint32{10, 8, 6, 4}},
		{8, []uint32{30, 20, 10}},
		{8, []uint32{10, 8, 6, 4}},
		{8, []uint32{12, 8, 6, 4}},
		{8, []uint32{}},
		{8, []uint32{30, 20, 10}},
	}
	for _, tc := range []struct {
		thresh float64
		want   [][]int
	}{
		{1, [][]int{{0, 2}, {1, 5}}},
		{0.5, [][]int{{0, 2, 3}, {1, 5}}},
		{0.1, [][]int{{0, 1, 2, 3, 5}}},
	} {
		got, err := findGroups(sketches, tc.thresh, nil)
		if err != nil {
			t.Errorf("findGroups(..., %v) failed: %v", tc.thresh, err)
		} else if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("findGroups(..., %v) = %v; want %v", tc.thresh, got, tc.want)
		}
	}
}

func TestWriteGroups(t *testing.T) {
	paths := []string{"c.txt", "a.txt", "d.txt", "b.txt"}
	var b bytes.Buffer
	if err := writeGroups(&b, paths, [][]int{{0, 1}, {2, 3}}); err != nil {
		t.Fatal("writeGroups failed: ", err)
	}
	if got, want := b.String(), "a.txt\nc.txt\n\nb.txt\nd.txt\n"; got != want {
		t.Errorf("writeGroups wrote %q; want %q", got, want)
	}
}
