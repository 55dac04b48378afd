package pattern

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/bodgit/pgmcreator/raster"
	"github.com/ericpauley/go-quantize/quantize"
)

const (
	levels    = 2
	threshold = 0x80
)

func luma(c color.Color) uint8 {
	return color.GrayModel.Convert(c).(color.Gray).Y
}

// Work out which palette entries count as lit. With two distinct levels the
// brighter one is lit, otherwise everything is lit if it's bright enough
func litIndices(p color.Palette) []bool {
	lit := make([]bool, len(p))
	if len(p) == 0 {
		return lit
	}

	lo, hi := uint8(0xff), uint8(0x00)
	for _, c := range p {
		y := luma(c)
		if y < lo {
			lo = y
		}
		if y > hi {
			hi = y
		}
	}

	if lo == hi && hi < threshold {
		return lit
	}

	for i, c := range p {
		lit[i] = luma(c) == hi
	}
	return lit
}

// FromImage reduces m to two levels and returns a pattern with a point for
// every pixel of the brighter level. Rows and columns are relative to the
// top-left corner of m and the period is the height of m.
func FromImage(name string, m image.Image) *Pattern {
	b := m.Bounds()

	p := &Pattern{
		Name:   name,
		Period: b.Dy(),
	}
	if b.Empty() {
		return p
	}

	q := quantize.MedianCutQuantizer{}
	palette := q.Quantize(make(color.Palette, 0, levels), m)
	if len(palette) == 0 {
		return p
	}

	pm := image.NewPaletted(b, palette)
	draw.Draw(pm, b, m, b.Min, draw.Src)

	lit := litIndices(pm.Palette)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if lit[pm.ColorIndexAt(x, y)] {
				p.Points = append(p.Points, raster.Point{Row: y - b.Min.Y, Col: x - b.Min.X})
			}
		}
	}

	return p
}
