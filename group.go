// Copyright 2022 Daniel Erat.
// All rights reserved.

package main

import (
	"fmt"
	"io"
	"log"
	"sort"
)

// findGroups returns groups of sketches (as indexes into sketches) that are
// connected by pairwise resemblance of at least thresh.
// Each group is sorted, and groups are ordered by their first index.
func findGroups(sketches []*sketch, thresh float64, warn *log.Logger) ([][]int, error) {
	lookup := newLookupTable()
	edges := make(map[int][]int)
	for i, s := range sketches {
		for _, j := range lookup.find(s.features, 1) {
			score, err := compareSketches(s, sketches[j], warn)
			if err != nil {
				return nil, err
			}
			if score >= thresh {
				edges[i] = append(edges[i], j)
				edges[j] = append(edges[j], i)
			}
		}
		lookup.add(i, s.features)
	}

	return components(edges), nil
}

// components returns the connected components of the undirected graph
// described by edges. Each component is sorted, and components are ordered
// by their smallest node.
func components(edges map[int][]int) [][]int {
	nodes := make([]int, 0, len(edges))
	for n := range edges {
		nodes = append(nodes, n)
	}
	sort.Ints(nodes)

	seen := make(map[int]bool, len(nodes))
	var comps [][]int
	for _, n := range nodes {
		if seen[n] {
			continue
		}
		seen[n] = true
		var comp []int
		for stack := []int{n}; len(stack) > 0; {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			comp = append(comp, v)
			for _, dst := range edges[v] {
				if !seen[dst] {
					seen[dst] = true
					stack = append(stack, dst)
				}
			}
		}
		sort.Ints(comp)
		comps = append(comps, comp)
	}
	return comps
}

// writeGroups writes one path per line for each group, separating groups with blank lines.
func writeGroups(w io.Writer, paths []string, groups [][]int) error {
	for i, g := range groups {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		names := make([]string, len(g))
		for j, idx := range g {
			names[j] = paths[idx]
		}
		sort.Strings(names)
		for _, n := range names {
			if _, err := fmt.Fprintln(w, n); err != nil {
				return err
			}
		}
	}
	return nil
}
