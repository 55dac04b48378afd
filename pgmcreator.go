/*
Package pgmcreator is a library for rendering coordinate patterns into binary
PGM images.
*/
package pgmcreator

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log"

	"github.com/bodgit/pgmcreator/pattern"
	"github.com/bodgit/pgmcreator/pgm"
)

var errNoDB = errors.New("no pattern database")

// Creator renders patterns to files, optionally backed by a PatternDB.
type Creator struct {
	db     *PatternDB
	logger *log.Logger
}

// New returns a Creator. db may be nil if only the built-in pattern or
// patterns loaded from files are used.
func New(db *PatternDB, logger *log.Logger) *Creator {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Creator{
		db:     db,
		logger: logger,
	}
}

// Pattern looks up a pattern by name. The built-in pattern is always
// available unless the database holds a pattern with the same name.
func (c *Creator) Pattern(name string) (*pattern.Pattern, error) {
	if c.db != nil {
		p, err := c.db.FindPattern(name)
		if err != nil {
			return nil, err
		}
		if p != nil {
			return p, nil
		}
	}
	if name == pattern.DefaultName {
		return pattern.Default(), nil
	}
	return nil, fmt.Errorf("no such pattern %q", name)
}

// Create renders p into a width by height raster and writes it to file. If
// the file can't be opened then no pixel data is written and the error is
// returned.
func (c *Creator) Create(file string, p *pattern.Pattern, width, height int) error {
	return c.write(file, p.Generate(width, height))
}

func (c *Creator) write(file string, m *image.Gray) error {
	b := m.Bounds()

	w, err := pgm.Create(file, b.Dx(), b.Dy())
	if err != nil {
		c.logger.Printf("Error opening %s: %v\n", file, err)
		return err
	}
	defer w.Close()

	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := m.PixOffset(b.Min.X, y)
		if err := w.WriteRow(m.Pix[i : i+b.Dx()]); err != nil {
			return err
		}
	}

	if err := w.Close(); err != nil {
		return err
	}

	c.logger.Printf("Wrote %s (%dx%d)\n", file, b.Dx(), b.Dy())

	return nil
}
