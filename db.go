// Copyright 2022 Daniel Erat.
// All rights reserved.

package main

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// sketchDB holds previously-computed sketches.
type sketchDB struct{ db *sql.DB }

// newSketchDB opens or creates a sketchDB at path with the supplied settings.
// An error is returned if an existing database was created with different settings.
func newSketchDB(path string, settings *sketchSettings) (*sketchDB, error) {
	if _, err := os.Stat(path); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	sdb := &sketchDB{db}
	if err := sdb.init(settings); err != nil {
		db.Close()
		return nil, err
	}
	return sdb, nil
}

// init creates the database's tables if needed and records settings in a new
// database or checks them against an existing one.
func (sdb *sketchDB) init(settings *sketchSettings) error {
	for _, q := range []string{
		`CREATE TABLE IF NOT EXISTS Settings (Name STRING PRIMARY KEY NOT NULL, Value STRING NOT NULL)`,
		`CREATE TABLE IF NOT EXISTS Files (
		   Path STRING PRIMARY KEY NOT NULL,
		   Size INTEGER NOT NULL,
		   ModTime INTEGER NOT NULL,
		   Sketch BLOB NOT NULL)`,
	} {
		if _, err := sdb.db.Exec(q); err != nil {
			return err
		}
	}

	// Settings missing from the database (e.g. because it's new) are added.
	// Cached sketches are only valid if every stored setting matches.
	var bad []string
	for _, f := range settings.fields() {
		if _, err := sdb.db.Exec(`INSERT OR IGNORE INTO Settings (Name, Value) VALUES(?, ?)`,
			f.name, f.value); err != nil {
			return err
		}
		var v string
		if err := sdb.db.QueryRow(`SELECT Value FROM Settings WHERE Name = ?`, f.name).Scan(&v); err != nil {
			return err
		}
		if v != f.value {
			bad = append(bad, fmt.Sprintf("%v is %v, not %v", f.name, v, f.value))
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("database was created with different settings: %v", strings.Join(bad, "; "))
	}
	return nil
}

func (sdb *sketchDB) close() error { return sdb.db.Close() }

// get returns the saved sketch for the file at path.
// If the file is not present in the database or its size or modification time
// have changed since it was saved, a nil sketch is returned.
func (sdb *sketchDB) get(path string, size int64, mtime time.Time) (*sketch, error) {
	row := sdb.db.QueryRow(`SELECT Size, ModTime, Sketch FROM Files WHERE Path = ?`, path)
	var dbSize, dbMtime int64
	var b []byte
	if err := row.Scan(&dbSize, &dbMtime, &b); err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	if dbSize != size || dbMtime != mtime.UnixNano() {
		return nil, nil
	}
	s, err := unmarshalSketch(b)
	if err != nil {
		return nil, fmt.Errorf("bad sketch for %v: %v", path, err)
	}
	return s, nil
}

// save saves the supplied sketch for the file at path, replacing any earlier one.
func (sdb *sketchDB) save(path string, size int64, mtime time.Time, s *sketch) error {
	_, err := sdb.db.Exec(`INSERT OR REPLACE INTO Files (Path, Size, ModTime, Sketch) VALUES(?, ?, ?, ?)`,
		path, size, mtime.UnixNano(), marshalSketch(s))
	return err
}
