// Copyright 2022 Daniel Erat.
// All rights reserved.

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type mode int

const (
	emitMode    mode = iota // write one input's sketch to stdout
	storeMode               // write each input's sketch to <path>.sim
	compareMode             // score two .sim files
	matchMode               // score many inputs against each other
)

// options contains command-line options for run.
type options struct {
	mode      mode
	settings  *sketchSettings
	paramsSet bool    // -s, -f, or -hash was passed
	dbPath    string  // SQLite database for caching sketches
	group     float64 // if positive, print groups in matchMode instead of a matrix
	debug     bool    // trace fingerprints to stderr
	args      []string
}

func (o *options) finish() error {
	if err := o.settings.check(); err != nil {
		return err
	}
	switch o.mode {
	case emitMode:
		if len(o.args) > 1 {
			return errors.New("at most one input may be supplied")
		}
	case storeMode:
		if len(o.args) == 0 {
			return errors.New("-w requires at least one input")
		}
	case compareMode:
		if o.paramsSet {
			return errors.New("-c takes its parameters from the sketch files")
		}
		if len(o.args) != 2 {
			return errors.New("-c requires exactly two sketch files")
		}
		if o.dbPath != "" {
			return errors.New("-db can't be used with -c")
		}
	case matchMode:
		if len(o.args) == 0 {
			return errors.New("-m requires at least one input")
		}
	}
	if (o.mode == emitMode || o.mode == storeMode) && o.settings.hash != crcHash {
		return fmt.Errorf("sketch files require -hash=%s", crcHash)
	}
	if o.mode == emitMode && o.dbPath != "" {
		return errors.New("-db requires -w or -m")
	}
	if o.group != 0 && (o.mode != matchMode || o.group < 0 || o.group > 1) {
		return errors.New("-group must be in the range (0, 1] and used with -m")
	}
	return nil
}

// run parses args, performs the requested operation, and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("shingleprint", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage:\n"+
			"  shingleprint [flag]... [FILE]\n"+
			"  shingleprint [flag]... -w FILE...\n"+
			"  shingleprint -c SKETCH SKETCH\n"+
			"  shingleprint [flag]... -m FILE...\n"+
			"Computes and compares shingleprints for estimating document resemblance.\n\n")
		fs.PrintDefaults()
	}
	opts := options{settings: defaultSketchSettings()}
	store := fs.Bool("w", false, "Write each input's sketch to a file with a "+sketchSuffix+" suffix")
	compare := fs.Bool("c", false, "Print resemblance of two sketch files")
	match := fs.Bool("m", false, "Print matrix of pairwise resemblance between inputs")
	fs.IntVar(&opts.settings.shingleSize, "s", opts.settings.shingleSize, "Shingle size in bytes (at least 4)")
	fs.IntVar(&opts.settings.featureCount, "f", opts.settings.featureCount, "Max features per sketch")
	fs.StringVar(&opts.settings.hash, "hash", opts.settings.hash, "Fingerprint function (crc, rabinkarp, buzhash, xxhash)")
	fs.BoolVar(&opts.debug, "d", false, "Trace fingerprints to stderr")
	fs.StringVar(&opts.dbPath, "db", "", "SQLite database file for caching sketches")
	fs.Float64Var(&opts.group, "group", 0, "With -m, print groups of inputs with at least this resemblance")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "s", "f", "hash":
			opts.paramsSet = true
		}
	})
	opts.args = fs.Args()

	var nmodes int
	for m, set := range map[mode]bool{storeMode: *store, compareMode: *compare, matchMode: *match} {
		if set {
			opts.mode = m
			nmodes++
		}
	}
	if nmodes > 1 {
		fmt.Fprintln(stderr, "Only one of -w, -c, and -m may be supplied")
		return 2
	}
	if err := opts.finish(); err != nil {
		fmt.Fprintln(stderr, "Bad options:", err)
		fs.Usage()
		return 2
	}

	if err := runMode(&opts, stdin, stdout, stderr); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func runMode(opts *options, stdin io.Reader, stdout, stderr io.Writer) error {
	warn := log.New(stderr, "", 0)
	if opts.mode == compareMode {
		return compareFiles(stdout, warn, opts.args[0], opts.args[1])
	}

	sk := newSketcher(opts.settings)
	if opts.debug {
		sk.trace = log.New(stderr, "", 0)
		sk.trace.Printf("Sketching with %v", opts.settings)
	}

	var db *sketchDB
	if opts.dbPath != "" {
		var err error
		if db, err = newSketchDB(opts.dbPath, opts.settings); err != nil {
			return fmt.Errorf("failed opening database: %v", err)
		}
		defer func() {
			if err := db.close(); err != nil {
				fmt.Fprintln(stderr, "Failed closing database:", err)
			}
		}()
	}

	switch opts.mode {
	case emitMode:
		in := stdin
		if len(opts.args) == 1 {
			f, err := os.Open(opts.args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}
		s, err := sk.build(in)
		if err != nil {
			return err
		}
		return writeSketch(stdout, s)
	case storeMode:
		for _, p := range opts.args {
			s, err := sketchFile(sk, db, p)
			if err != nil {
				return err
			}
			if err := writeSketchFile(p+sketchSuffix, s); err != nil {
				return err
			}
		}
		return nil
	case matchMode:
		sketches := make([]*sketch, len(opts.args))
		for i, p := range opts.args {
			var err error
			if sketches[i], err = sketchFile(sk, db, p); err != nil {
				return err
			}
		}
		if opts.group > 0 {
			groups, err := findGroups(sketches, opts.group, warn)
			if err != nil {
				return err
			}
			return writeGroups(stdout, opts.args, groups)
		}
		return writeMatrix(stdout, opts.args, sketches, warn)
	}
	return fmt.Errorf("unknown mode %v", opts.mode)
}

// compareFiles prints the resemblance of the sketches stored at a and b.
func compareFiles(w io.Writer, warn *log.Logger, a, b string) error {
	sa, err := readSketchFile(a)
	if err != nil {
		return err
	}
	sb, err := readSketchFile(b)
	if err != nil {
		return err
	}
	score, err := compareSketches(sa, sb, warn)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, formatScore(score, len(sa.features) > 0 && len(sb.features) > 0))
	return err
}
