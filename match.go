// Copyright 2022 Daniel Erat.
// All rights reserved.

package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// sketchFile returns the sketch of the file at p, using db (which may be nil)
// to avoid recomputing sketches of unchanged files.
func sketchFile(sk *sketcher, db *sketchDB, p string) (*sketch, error) {
	fi, err := os.Stat(p)
	if err != nil {
		return nil, err
	}
	key, err := filepath.Abs(p)
	if err != nil {
		return nil, err
	}
	if db != nil {
		if s, err := db.get(key, fi.Size(), fi.ModTime()); err != nil {
			return nil, err
		} else if s != nil {
			return s, nil
		}
	}

	f, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := sk.build(f)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", p, err)
	}

	if db != nil {
		if err := db.save(key, fi.Size(), fi.ModTime(), s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// writeMatrix writes an upper-triangular matrix of pairwise scores for sketches.
// Each input is first listed with its index. Pairs involving an empty sketch
// are reported as unknownScore.
func writeMatrix(w io.Writer, paths []string, sketches []*sketch, warn *log.Logger) error {
	n := len(sketches)
	width := len(strconv.Itoa(n - 1))
	if width < len(unknownScore) {
		width = len(unknownScore)
	}

	var b strings.Builder
	for i, p := range paths {
		fmt.Fprintf(&b, "%*d %s\n", width, i, p)
	}
	if n > 1 {
		b.WriteString(strings.Repeat(" ", width))
		for j := 1; j < n; j++ {
			fmt.Fprintf(&b, " %*d", width, j)
		}
		b.WriteByte('\n')
	}
	for i := 0; i < n-1; i++ {
		fmt.Fprintf(&b, "%*d", width, i)
		for j := 1; j < n; j++ {
			var cell string
			if j > i {
				a, c := sketches[i], sketches[j]
				score, err := compareSketches(a, c, warn)
				if err != nil {
					return fmt.Errorf("%v and %v: %w", paths[i], paths[j], err)
				}
				cell = formatScore(score, len(a.features) > 0 && len(c.features) > 0)
			}
			fmt.Fprintf(&b, " %*s", width, cell)
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}
