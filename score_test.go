// Copyright 2022 Daniel Erat.
// All rights reserved.

package main

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"
)

func TestResemblance(t *testing.T) {
	for _, tc := range []struct {
		a, b []uint32
		want float64
	}{
		{[]uint32{10, 8, 6, 4}, []uint32{10, 8, 6, 4}, 1},
		{[]uint32{10, 8, 6, 4}, []uint32{9, 7, 5, 3}, 0},
		{[]uint32{10, 8, 6, 4}, []uint32{9, 8, 5, 4}, 2.0 / 6},
		{[]uint32{10, 8, 6, 4}, []uint32{8, 4}, 1},
		{[]uint32{0xffffffff, 1}, []uint32{0xfffffffe, 1}, 1.0 / 3},
		{[]uint32{7}, nil, 0},
		{nil, nil, 0},
	} {
		if got := resemblance(tc.a, tc.b); got != tc.want {
			t.Errorf("resemblance(%v, %v) = %0.3f; want %0.3f", tc.a, tc.b, got, tc.want)
		}
		if got := resemblance(tc.b, tc.a); got != tc.want {
			t.Errorf("resemblance(%v, %v) = %0.3f; want %0.3f", tc.b, tc.a, got, tc.want)
		}
	}
}

func TestResemblance_Random(t *testing.T) {
	data := randBytes(6, 4000)
	build := func(b []byte) []uint32 {
		sk := newSketcher(&sketchSettings{shingleSize: 8, featureCount: 64, hash: crcHash})
		s, err := sk.build(bytes.NewReader(b))
		if err != nil {
			t.Fatal("build failed: ", err)
		}
		return s.features
	}
	a := build(data)
	b := build(data[1000:])
	c := build(randBytes(7, 4000))
	for _, pair := range [][2][]uint32{{a, b}, {a, c}, {b, c}} {
		x, y := pair[0], pair[1]
		s1, s2 := resemblance(x, y), resemblance(y, x)
		if s1 != s2 {
			t.Errorf("Asymmetric scores %0.3f and %0.3f", s1, s2)
		}
		if s1 < 0 || s1 > 1 {
			t.Errorf("Score %0.3f out of range", s1)
		}
	}
	if got := resemblance(a, a); got != 1 {
		t.Errorf("Self-resemblance is %0.3f; want 1", got)
	}
	if got := resemblance(a, c); got != 0 {
		t.Errorf("Resemblance of unrelated data is %0.3f; want 0", got)
	}
	if got := resemblance(a, b); got <= 0 || got >= 1 {
		t.Errorf("Resemblance of overlapping data is %0.3f; want (0, 1)", got)
	}
}

func TestCompareSketches(t *testing.T) {
	a := &sketch{shingleSize: 8, features: []uint32{3, 2, 1}}
	b := &sketch{shingleSize: 16, features: []uint32{3, 2, 1}}
	if _, err := compareSketches(a, b, nil); !errors.Is(err, errShingleMismatch) {
		t.Errorf("compareSketches with different shingle sizes returned %v; want %v", err, errShingleMismatch)
	}
	if got, err := compareSketches(a, a, nil); err != nil {
		t.Errorf("compareSketches failed: %v", err)
	} else if got != 1 {
		t.Errorf("compareSketches(a, a) = %0.3f; want 1", got)
	}
}

func TestFormatScore(t *testing.T) {
	for _, tc := range []struct {
		score float64
		ok    bool
		want  string
	}{
		{1, true, "1.0"},
		{0, true, ".00"},
		{0.5, true, ".50"},
		{0.123, true, ".12"},
		{0.29, true, ".29"},
		{1.0 / 3, true, ".33"},
		{0.999, true, ".99"},
		{0.5, false, " ? "},
	} {
		if got := formatScore(tc.score, tc.ok); got != tc.want {
			t.Errorf("formatScore(%v, %v) = %q; want %q", tc.score, tc.ok, got, tc.want)
		}
	}
}

func TestCompareSketches_Warning(t *testing.T) {
	full := &sketch{shingleSize: 8, features: []uint32{9, 7, 5, 3}}
	for _, tc := range []struct {
		b    *sketch
		warn bool
	}{
		{&sketch{shingleSize: 8, features: []uint32{7, 3}}, true},
		{&sketch{shingleSize: 8, features: []uint32{8, 7, 4, 3}}, false},
		{&sketch{shingleSize: 8, features: []uint32{}}, false},
	} {
		var b bytes.Buffer
		if _, err := compareSketches(full, tc.b, log.New(&b, "", 0)); err != nil {
			t.Errorf("compareSketches(%v, %v) failed: %v", full.features, tc.b.features, err)
			continue
		}
		if got := strings.Contains(b.String(), "feature set size mismatch"); got != tc.warn {
			t.Errorf("compareSketches(%v, %v) logged %q; want warning: %v",
				full.features, tc.b.features, b.String(), tc.warn)
		}
	}
}
