// Copyright 2022 Daniel Erat.
// All rights reserved.

package main

import (
	"errors"
	"fmt"
	"log"
	"math"
)

var errShingleMismatch = errors.New("shingle size mismatch")

// resemblance estimates the Jaccard similarity of the documents behind a and b.
// Both feature lists must be in descending order.
//
// The union size is taken to be 2*min(len(a), len(b)) minus the number of
// shared features, which is exact only when both sketches were built with the
// same feature count and are full.
func resemblance(a, b []uint32) float64 {
	// The smallest features are at the end, so walk backward.
	var matches int
	for i, j := len(a)-1, len(b)-1; i >= 0 && j >= 0; {
		switch {
		case a[i] < b[j]:
			i--
		case a[i] > b[j]:
			j--
		default:
			matches++
			i--
			j--
		}
	}
	m := len(a)
	if len(b) < m {
		m = len(b)
	}
	if m == 0 {
		return 0
	}
	return float64(matches) / float64(2*m-matches)
}

// compareSketches returns the resemblance of a and b.
// An error is returned if they were computed with different shingle sizes.
// A feature count mismatch is reported to warn if it is non-nil.
func compareSketches(a, b *sketch, warn *log.Logger) (float64, error) {
	if a.shingleSize != b.shingleSize {
		return 0, fmt.Errorf("%w (%d vs. %d)", errShingleMismatch, a.shingleSize, b.shingleSize)
	}
	if na, nb := len(a.features), len(b.features); warn != nil && na != nb && na > 0 && nb > 0 {
		warn.Printf("Warning: feature set size mismatch (%d vs. %d)", na, nb)
	}
	return resemblance(a.features, b.features), nil
}

const unknownScore = " ? "

// formatScore formats score as a three-character field: "1.0" or ".NN".
// If ok is false, unknownScore is returned.
func formatScore(score float64, ok bool) string {
	switch {
	case !ok:
		return unknownScore
	case score >= 1:
		return "1.0"
	case score <= 0:
		return ".00"
	}
	n := int(math.Round(score * 100))
	if n > 99 {
		n = 99
	}
	return fmt.Sprintf(".%02d", n)
}
