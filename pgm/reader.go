package pgm

import (
	"bufio"
	"errors"
	"image"
	"image/color"
	"io"
	"strconv"
)

var (
	errNotPGM      = errors.New("pgm: not a binary PGM file")
	errBadHeader   = errors.New("pgm: invalid header")
	errBadMaxValue = errors.New("pgm: unsupported maximum value")
	errTooLarge    = errors.New("pgm: image is too large")
	errNotEnough   = errors.New("pgm: not enough image data")
	errTooMuch     = errors.New("pgm: too much image data")
)

func init() {
	image.RegisterFormat("pgm", magic, Decode, DecodeConfig)
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

type decoder struct {
	r *bufio.Reader

	width, height, maxValue int

	image *image.Gray
}

// readToken returns the next header token, consuming exactly one whitespace
// character after it, or the comment that ends it
func (d *decoder) readToken() (string, error) {
	var tok []byte
	for {
		c, err := d.r.ReadByte()
		if err != nil {
			if err == io.EOF {
				return "", errNotEnough
			}
			return "", err
		}

		switch {
		case c == '#':
			// Comment runs to the end of the line
			if _, err := d.r.ReadString('\n'); err != nil {
				if err == io.EOF {
					return "", errNotEnough
				}
				return "", err
			}
			if len(tok) > 0 {
				return string(tok), nil
			}
		case isSpace(c):
			if len(tok) > 0 {
				return string(tok), nil
			}
		default:
			if len(tok) == maxToken {
				return "", errBadHeader
			}
			tok = append(tok, c)
		}
	}
}

func (d *decoder) readInt() (int, error) {
	tok, err := d.readToken()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(tok)
	if err != nil || n < 0 {
		return 0, errBadHeader
	}
	return n, nil
}

func (d *decoder) readHeader() error {
	tok, err := d.readToken()
	if err != nil {
		if err == errNotEnough || err == errBadHeader {
			return errNotPGM
		}
		return err
	}
	if tok != magic {
		return errNotPGM
	}

	if d.width, err = d.readInt(); err != nil {
		return err
	}
	if d.height, err = d.readInt(); err != nil {
		return err
	}
	if d.height > 0 && d.width > maxPixels/d.height {
		return errTooLarge
	}

	if d.maxValue, err = d.readInt(); err != nil {
		return err
	}
	if d.maxValue < 1 || d.maxValue > maxValue {
		return errBadMaxValue
	}

	return nil
}

func (d *decoder) decode(r io.Reader, configOnly bool) error {
	d.r = bufio.NewReader(r)

	if err := d.readHeader(); err != nil {
		return err
	}

	if configOnly {
		return nil
	}

	d.image = image.NewGray(image.Rect(0, 0, d.width, d.height))

	if _, err := io.ReadFull(d.r, d.image.Pix); err != nil {
		if err != io.EOF && err != io.ErrUnexpectedEOF {
			return err
		}
		return errNotEnough
	}

	if _, err := d.r.ReadByte(); err != io.EOF {
		if err != nil {
			return err
		}
		return errTooMuch
	}

	// Stretch samples to the full 8-bit range
	if d.maxValue < maxValue {
		for i, v := range d.image.Pix {
			s := int(v) * maxValue / d.maxValue
			if s > maxValue {
				s = maxValue
			}
			d.image.Pix[i] = uint8(s)
		}
	}

	return nil
}

// Decode reads a binary PGM image from r and returns it as an image.Image.
// The concrete type is *image.Gray.
func Decode(r io.Reader) (image.Image, error) {
	var d decoder
	if err := d.decode(r, false); err != nil {
		return nil, err
	}
	return d.image, nil
}

// DecodeConfig returns the color model and dimensions of a binary PGM image
// without decoding the entire image.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var d decoder
	if err := d.decode(r, true); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.GrayModel,
		Width:      d.width,
		Height:     d.height,
	}, nil
}
