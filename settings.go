// Copyright 2022 Daniel Erat.
// All rights reserved.

package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// CRC mixing needs at least a full 32-bit word. The stop set's 7*N slots must
// stay well inside the uint32 probe arithmetic.
const (
	minShingleSize  = 4
	minFeatureCount = 1
	maxFeatureCount = 1 << 20
)

// sketchSettings contains the parameters that determine a sketch's contents.
type sketchSettings struct {
	shingleSize  int    // window length k in bytes
	featureCount int    // max fingerprints N retained per sketch
	hash         string // fingerprinter name; see fingerprinters
}

func defaultSketchSettings() *sketchSettings {
	return &sketchSettings{
		shingleSize:  8,
		featureCount: 128,
		hash:         crcHash,
	}
}

func (s *sketchSettings) String() string {
	return fmt.Sprintf("shingle=%d,features=%d,hash=%s", s.shingleSize, s.featureCount, s.hash)
}

type settingField struct{ name, value string }

// fields returns the individual settings in a fixed order.
func (s *sketchSettings) fields() []settingField {
	return []settingField{
		{"shingle_size", strconv.Itoa(s.shingleSize)},
		{"feature_count", strconv.Itoa(s.featureCount)},
		{"hash", s.hash},
	}
}

// check returns an error if s contains out-of-range values.
func (s *sketchSettings) check() error {
	if s.shingleSize < minShingleSize {
		return fmt.Errorf("shingle size must be at least %d", minShingleSize)
	}
	if s.shingleSize > 0xffff {
		return fmt.Errorf("shingle size must be at most %d", 0xffff)
	}
	if s.featureCount < minFeatureCount {
		return fmt.Errorf("feature set size must be at least %d", minFeatureCount)
	}
	if s.featureCount > maxFeatureCount {
		return fmt.Errorf("feature set size must be at most %d", maxFeatureCount)
	}
	if _, ok := fingerprinters[s.hash]; !ok {
		names := make([]string, 0, len(fingerprinters))
		for n := range fingerprinters {
			names = append(names, n)
		}
		sort.Strings(names)
		return fmt.Errorf("unknown hash %q (want %s)", s.hash, strings.Join(names, ", "))
	}
	return nil
}

// newFingerprinter returns a fingerprinter for s.hash.
func (s *sketchSettings) newFingerprinter() fingerprinter {
	return fingerprinters[s.hash](s.shingleSize)
}
