/*
Package raster generates monochrome 8-bit rasters from a list of lit
coordinates.

A coordinate list describes one replication period of rows. Every row of the
generated raster is mapped back into that period with a modulo so the pattern
repeats vertically, while columns are used as-is. A cell is either Off or On;
no other intensity is ever produced.
*/
package raster

import "image"

const (
	// Off is the intensity of an unlit cell
	Off uint8 = 0x00
	// On is the intensity of a lit cell
	On uint8 = 0xff

	// DefaultWidth, DefaultHeight and DefaultPeriod are the dimensions
	// used when nothing else is asked for
	DefaultWidth  = 1024
	DefaultHeight = 30
	DefaultPeriod = 32
)

// Point is a single lit cell within one replication period. Row always
// comes first, matching the order coordinates are authored in.
type Point struct {
	Row int
	Col int
}

// Generate returns a width by height raster where the cell at (row, col) is
// On if and only if (row mod period, col) is one of points, otherwise Off.
// A period of zero or less disables replication.
func Generate(points []Point, width, height, period int) *image.Gray {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if period <= 0 {
		period = height
	}

	m := image.NewGray(image.Rect(0, 0, width, height))

	for _, p := range points {
		// Anything outside the period or the width can never match a
		// probe of (row mod period, col)
		if p.Row < 0 || p.Row >= period || p.Col < 0 || p.Col >= width {
			continue
		}
		for y := p.Row; y < height; y += period {
			m.Pix[y*m.Stride+p.Col] = On
		}
	}

	return m
}

// Lit reports whether the cell at (row, col) of m is On.
func Lit(m *image.Gray, row, col int) bool {
	return m.GrayAt(m.Rect.Min.X+col, m.Rect.Min.Y+row).Y == On
}
