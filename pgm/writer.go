package pgm

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
)

var errBadDimensions = errors.New("pgm: invalid dimensions")

// Writer streams an image one row at a time. The header is written when the
// Writer is created; rows must then be written top to bottom, height times,
// each exactly width bytes long, before calling Close. Row lengths are not
// checked.
type Writer struct {
	w      *bufio.Writer
	c      io.Closer
	closed bool
}

// NewWriter writes a header for a width by height image to w and returns a
// Writer for the rows.
func NewWriter(w io.Writer, width, height int) (*Writer, error) {
	if width < 0 || height < 0 {
		return nil, errBadDimensions
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s\n%d %d\n%d\n", magic, width, height, maxValue); err != nil {
		return nil, err
	}

	return &Writer{w: bw}, nil
}

// Create creates or truncates the named file and writes the header for a
// width by height image. If the file cannot be created nothing is written and
// there is nothing to close.
func Create(name string, width, height int) (*Writer, error) {
	if width < 0 || height < 0 {
		return nil, errBadDimensions
	}

	f, err := os.Create(name)
	if err != nil {
		return nil, err
	}

	w, err := NewWriter(f, width, height)
	if err != nil {
		f.Close()
		return nil, err
	}
	w.c = f

	return w, nil
}

// WriteRow appends row verbatim.
func (w *Writer) WriteRow(row []byte) error {
	_, err := w.w.Write(row)
	return err
}

// Close flushes any buffered rows and, if the Writer was returned by Create,
// closes the file. Calling Close more than once does nothing.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	err := w.w.Flush()
	if w.c != nil {
		if cerr := w.c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

type encoder struct {
	w   *Writer
	row []byte
}

func (e *encoder) encode(m image.Image) error {
	b := m.Bounds()

	// Grayscale images can be written straight from the pixel buffer
	if gm, ok := m.(*image.Gray); ok {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			i := gm.PixOffset(b.Min.X, y)
			if err := e.w.WriteRow(gm.Pix[i : i+b.Dx()]); err != nil {
				return err
			}
		}
		return nil
	}

	e.row = make([]byte, b.Dx())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			e.row[x-b.Min.X] = color.GrayModel.Convert(m.At(x, y)).(color.Gray).Y
		}
		if err := e.w.WriteRow(e.row); err != nil {
			return err
		}
	}

	return nil
}

// Encode writes the Image m to w in binary PGM format. Color images are
// converted to grayscale.
func Encode(w io.Writer, m image.Image) error {
	b := m.Bounds()

	pw, err := NewWriter(w, b.Dx(), b.Dy())
	if err != nil {
		return err
	}

	e := encoder{w: pw}
	if err := e.encode(m); err != nil {
		return err
	}

	return pw.Close()
}
