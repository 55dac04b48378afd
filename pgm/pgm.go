/*
Package pgm implements a binary PGM ("P5") image decoder and encoder.

The file starts with a plain-text header; the magic "P5", the width, the
height and the maximum sample value, each separated by whitespace, with a
single whitespace character after the maximum value. The header is followed
immediately by width * height samples of one byte each, stored row by row
from the top. There is no compression and no trailing data.

Only 8-bit samples are supported, so the maximum value is at most 255. The
encoder always writes 255.
*/
package pgm

const (
	magic    = "P5"
	maxValue = 0xff

	// Largest image the decoder will allocate for
	maxPixels = 1 << 28

	// No header token is longer than this
	maxToken = 20
)
