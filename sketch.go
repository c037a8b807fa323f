// Copyright 2022 Daniel Erat.
// All rights reserved.

package main

import (
	"bufio"
	"io"
	"log"
)

// sketch is the bounded set of smallest fingerprints computed from a document.
type sketch struct {
	shingleSize int
	features    []uint32 // distinct, in descending order
}

// sketcher computes sketches. A sketcher may be reused but not shared between goroutines.
type sketcher struct {
	settings *sketchSettings
	fp       fingerprinter
	heap     maxHeap
	stop     stopSet
	ring     []byte
	trace    *log.Logger // per-fingerprint debug output; nil to disable
}

func newSketcher(settings *sketchSettings) *sketcher {
	return &sketcher{
		settings: settings,
		fp:       settings.newFingerprinter(),
		ring:     make([]byte, settings.shingleSize),
	}
}

func (sk *sketcher) tracef(format string, args ...interface{}) {
	if sk.trace != nil {
		sk.trace.Printf(format, args...)
	}
}

// build reads r until EOF and returns its sketch. Input shorter than the
// shingle size produces a sketch with no features.
func (sk *sketcher) build(r io.Reader) (*sketch, error) {
	n := sk.settings.featureCount
	sk.heap.reset(n)
	sk.stop.reset(n)

	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}

	if _, err := io.ReadFull(br, sk.ring); err == io.EOF || err == io.ErrUnexpectedEOF {
		return sk.finish(), nil
	} else if err != nil {
		return nil, err
	}

	sk.offer(sk.fp.start(sk.ring))
	for i := 0; ; i = (i + 1) % len(sk.ring) {
		b, err := br.ReadByte()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		sk.ring[i] = b
		sk.offer(sk.fp.roll(sk.ring, (i+1)%len(sk.ring), b))
	}
	return sk.finish(), nil
}

// offer considers c for inclusion in the sketch, keeping the smallest
// distinct fingerprints seen so far.
func (sk *sketcher) offer(c uint32) {
	sk.tracef(">got %x", c)
	if sk.heap.full() && c >= sk.heap.peekMax() {
		return
	}
	if sk.stop.contains(c) {
		sk.tracef(">dup")
		return
	}
	if sk.heap.full() {
		m := sk.heap.extractMax()
		if !sk.stop.delete(m) {
			panic("heap value missing from stop set")
		}
		sk.tracef(">pop %x", m)
	}
	sk.tracef(">push")
	sk.stop.insert(c)
	sk.heap.insert(c)
}

// finish drains the heap into a new sketch.
func (sk *sketcher) finish() *sketch {
	s := &sketch{
		shingleSize: sk.settings.shingleSize,
		features:    make([]uint32, 0, sk.heap.size()),
	}
	for sk.heap.size() > 0 {
		s.features = append(s.features, sk.heap.extractMax())
	}
	return s
}
