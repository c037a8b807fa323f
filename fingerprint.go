// Copyright 2022 Daniel Erat.
// All rights reserved.

package main

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/chmduquesne/rollinghash/rabinkarp64"
	"github.com/silvasur/buzhash"
)

// fingerprinter computes 32-bit fingerprints of a sliding window of bytes.
// Values depend only on the window's logical contents, never on where the
// window happens to start within the ring buffer.
type fingerprinter interface {
	// start returns the fingerprint of the first full window.
	start(window []byte) uint32
	// roll returns the fingerprint of the window after in was written to the
	// ring just before position i0, which now holds the oldest byte.
	roll(ring []byte, i0 int, in byte) uint32
}

const (
	crcHash       = "crc"
	rabinKarpHash = "rabinkarp"
	buzHash       = "buzhash"
	xxHash        = "xxhash"
)

// fingerprinters maps -hash names to constructors taking the window size.
var fingerprinters = map[string]func(k int) fingerprinter{
	crcHash:       func(k int) fingerprinter { return crcFingerprinter{} },
	rabinKarpHash: func(k int) fingerprinter { return &rabinKarpFingerprinter{rabinkarp64.NewFromPol(rabinKarpPol)} },
	buzHash:       func(k int) fingerprinter { return &buzFingerprinter{buzhash.NewBuzHash(uint32(k))} },
	xxHash:        func(k int) fingerprinter { return &xxFingerprinter{make([]byte, k)} },
}

const (
	crcPoly = 0x04c11db7 // POSIX cksum polynomial, MSB-first
	crcSeed = 0x12345678
)

var crcTable [256]uint32

func init() {
	for i := range crcTable {
		c := uint32(i) << 24
		for j := 0; j < 8; j++ {
			if c&0x80000000 != 0 {
				c = c<<1 ^ crcPoly
			} else {
				c <<= 1
			}
		}
		crcTable[i] = c
	}
}

// ringCRC returns the CRC of the bytes in ring, read in ring order starting at i0.
func ringCRC(ring []byte, i0 int) uint32 {
	crc := uint32(crcSeed)
	for _, b := range ring[i0:] {
		crc = crc<<8 ^ crcTable[byte(crc>>24)^b]
	}
	for _, b := range ring[:i0] {
		crc = crc<<8 ^ crcTable[byte(crc>>24)^b]
	}
	return crc
}

// crcFingerprinter recomputes a CRC over the whole window on every slide.
// This is the function used by .sim files.
type crcFingerprinter struct{}

func (crcFingerprinter) start(window []byte) uint32 { return ringCRC(window, 0) }
func (crcFingerprinter) roll(ring []byte, i0 int, _ byte) uint32 { return ringCRC(ring, i0) }

// rabinKarpPol is fixed so that fingerprints are comparable across runs.
// Finding an irreducible polynomial is slow, so it's only done once.
var rabinKarpPol = func() rabinkarp64.Pol {
	pol, err := rabinkarp64.RandomPolynomial(1)
	if err != nil {
		panic(fmt.Sprintf("no Rabin-Karp polynomial: %v", err))
	}
	return pol
}()

// fold32 reduces a 64-bit digest to 32 bits.
func fold32(v uint64) uint32 { return uint32(v) ^ uint32(v>>32) }

type rabinKarpFingerprinter struct{ h *rabinkarp64.RabinKarp64 }

func (f *rabinKarpFingerprinter) start(window []byte) uint32 {
	f.h.Reset()
	f.h.Write(window)
	return fold32(f.h.Sum64())
}

func (f *rabinKarpFingerprinter) roll(_ []byte, _ int, in byte) uint32 {
	f.h.Roll(in)
	return fold32(f.h.Sum64())
}

type buzFingerprinter struct{ h *buzhash.BuzHash }

func (f *buzFingerprinter) start(window []byte) uint32 {
	f.h.Reset()
	f.h.Write(window)
	return f.h.Sum32()
}

func (f *buzFingerprinter) roll(_ []byte, _ int, in byte) uint32 { return f.h.HashByte(in) }

// xxFingerprinter hashes a contiguous copy of the window on every slide.
type xxFingerprinter struct{ buf []byte }

func (f *xxFingerprinter) start(window []byte) uint32 { return fold32(xxhash.Sum64(window)) }

func (f *xxFingerprinter) roll(ring []byte, i0 int, _ byte) uint32 {
	n := copy(f.buf, ring[i0:])
	copy(f.buf[n:], ring[:i0])
	return fold32(xxhash.Sum64(f.buf))
}
