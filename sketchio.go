// Copyright 2022 Daniel Erat.
// All rights reserved.

package main

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	sketchVersion = 0xcb01 // CRC fingerprints, descending features
	sketchSuffix  = ".sim"
	headerSize    = 4
)

var sketchByteOrder = binary.BigEndian

var (
	errBadVersion = errors.New("bad file version")
	errTruncated  = errors.New("truncated sketch data")
)

// writeSketch writes s to w in .sim format.
func writeSketch(w io.Writer, s *sketch) error {
	bw := bufio.NewWriter(w)
	var b [headerSize]byte
	sketchByteOrder.PutUint16(b[0:], sketchVersion)
	sketchByteOrder.PutUint16(b[2:], uint16(s.shingleSize))
	if _, err := bw.Write(b[:]); err != nil {
		return err
	}
	for _, f := range s.features {
		sketchByteOrder.PutUint32(b[:], f)
		if _, err := bw.Write(b[:]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// readSketch reads a .sim-format sketch from r until EOF.
// The feature count is implied by the amount of data.
func readSketch(r io.Reader) (*sketch, error) {
	br := bufio.NewReader(r)
	var b [headerSize]byte
	if _, err := io.ReadFull(br, b[:]); err == io.EOF || err == io.ErrUnexpectedEOF {
		return nil, errTruncated
	} else if err != nil {
		return nil, err
	}
	if v := sketchByteOrder.Uint16(b[0:]); v != sketchVersion {
		return nil, fmt.Errorf("%w %#04x", errBadVersion, v)
	}
	s := &sketch{
		shingleSize: int(sketchByteOrder.Uint16(b[2:])),
		features:    make([]uint32, 0, 16),
	}
	for {
		_, err := io.ReadFull(br, b[:])
		if err == io.EOF {
			return s, nil
		} else if err == io.ErrUnexpectedEOF {
			return nil, errTruncated
		} else if err != nil {
			return nil, err
		}
		s.features = append(s.features, sketchByteOrder.Uint32(b[:]))
	}
}

// marshalSketch returns s in .sim format.
func marshalSketch(s *sketch) []byte {
	var b bytes.Buffer
	b.Grow(headerSize + 4*len(s.features))
	writeSketch(&b, s) // writes to a bytes.Buffer can't fail
	return b.Bytes()
}

// unmarshalSketch parses .sim-format data.
func unmarshalSketch(b []byte) (*sketch, error) {
	return readSketch(bytes.NewReader(b))
}

// readSketchFile reads the sketch stored at p.
func readSketchFile(p string) (*sketch, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := readSketch(f)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", p, err)
	}
	return s, nil
}

// writeSketchFile writes s to p, replacing any existing file.
func writeSketchFile(p string, s *sketch) error {
	f, err := os.Create(p)
	if err != nil {
		return err
	}
	if err := writeSketch(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
