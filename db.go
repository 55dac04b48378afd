package pgmcreator

import (
	"crypto/sha1"
	"database/sql"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/pgmcreator/pattern"
	"github.com/bodgit/pgmcreator/raster"
	_ "github.com/mattn/go-sqlite3"
)

var errNoName = errors.New("pattern has no name")

// PatternDB is a catalog of named patterns stored in SQLite.
type PatternDB struct {
	db *sql.DB
}

// NewPatternDB opens or creates the catalog in file.
func NewPatternDB(file string) (*PatternDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS pattern (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE, period INTEGER NOT NULL, sha1 TEXT)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS point (pattern_id INTEGER NOT NULL, seq INTEGER NOT NULL, row_index INTEGER NOT NULL, col_index INTEGER NOT NULL, FOREIGN KEY(pattern_id) REFERENCES pattern(id))"); err != nil {
		db.Close()
		return nil, err
	}

	return &PatternDB{
		db: db,
	}, nil
}

// Close closes the catalog.
func (db *PatternDB) Close() error {
	return db.db.Close()
}

func baseName(file string) string {
	return strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
}

// ImportYAML adds the pattern stored in a YAML file. If the file doesn't name
// the pattern then the file name without its extension is used.
func (db *PatternDB) ImportYAML(file string) (*pattern.Pattern, error) {
	p, err := pattern.Load(file)
	if err != nil {
		return nil, err
	}

	if p.Name == "" {
		p.Name = baseName(file)
	}

	if err := db.add(p, sql.NullString{}); err != nil {
		return nil, err
	}

	return p, nil
}

// ImportImage converts an image file to a pattern with pattern.FromImage and
// adds it under name, or the file name without its extension if name is
// empty. The SHA-1 of the source file is recorded alongside.
func (db *PatternDB) ImportImage(name, file string) (*pattern.Pattern, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	h := sha1.New()
	m, _, err := image.Decode(io.TeeReader(f, h))
	if err != nil {
		return nil, err
	}
	sha := sql.NullString{String: fmt.Sprintf("%X", h.Sum(nil)), Valid: true}

	if name == "" {
		name = baseName(file)
	}

	p := pattern.FromImage(name, m)
	if err := db.add(p, sha); err != nil {
		return nil, err
	}

	return p, nil
}

// Add stores p, replacing any existing pattern with the same name.
func (db *PatternDB) Add(p *pattern.Pattern) error {
	return db.add(p, sql.NullString{})
}

func (db *PatternDB) add(p *pattern.Pattern, sha sql.NullString) error {
	if p.Name == "" {
		return errNoName
	}

	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err = tx.Exec("DELETE FROM point WHERE pattern_id IN (SELECT id FROM pattern WHERE name = ?)", p.Name); err != nil {
		return err
	}

	if _, err = tx.Exec("DELETE FROM pattern WHERE name = ?", p.Name); err != nil {
		return err
	}

	result, err := tx.Exec("INSERT INTO pattern (name, period, sha1) VALUES (?, ?, ?)", p.Name, p.Period, sha)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare("INSERT INTO point (pattern_id, seq, row_index, col_index) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, pt := range p.Points {
		if _, err = stmt.Exec(id, i, pt.Row, pt.Col); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindPattern returns the named pattern, or nil if there isn't one.
func (db *PatternDB) FindPattern(name string) (*pattern.Pattern, error) {
	var id int64
	p := &pattern.Pattern{Name: name}
	switch err := db.db.QueryRow("SELECT id, period FROM pattern WHERE name = ?", name).Scan(&id, &p.Period); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
	default:
		return nil, err
	}

	rows, err := db.db.Query("SELECT row_index, col_index FROM point WHERE pattern_id = ? ORDER BY seq", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	p.Points = []raster.Point{}
	for rows.Next() {
		var pt raster.Point
		if err := rows.Scan(&pt.Row, &pt.Col); err != nil {
			return nil, err
		}
		p.Points = append(p.Points, pt)
	}

	return p, rows.Err()
}

// Names returns the name of every pattern in the catalog, sorted.
func (db *PatternDB) Names() ([]string, error) {
	rows, err := db.db.Query("SELECT name FROM pattern ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, rows.Err()
}
