package pgmcreator

import (
	"bytes"
	"image"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/pgmcreator/pattern"
	"github.com/bodgit/pgmcreator/pgm"
	"github.com/bodgit/pgmcreator/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	file := filepath.Join(t.TempDir(), "imageout.pgm")

	c := New(nil, nil)
	require.NoError(t, c.Create(file, pattern.Default(), raster.DefaultWidth, raster.DefaultHeight))

	b, err := os.ReadFile(file)
	require.NoError(t, err)

	header := []byte("P5\n1024 30\n255\n")
	require.True(t, bytes.HasPrefix(b, header))
	payload := b[len(header):]
	require.Len(t, payload, raster.DefaultWidth*raster.DefaultHeight)

	want := pattern.Default().Generate(raster.DefaultWidth, raster.DefaultHeight)
	assert.Equal(t, want.Pix, payload)

	// Pixel (row, col) lives at row * width + col
	assert.Equal(t, raster.On, payload[25*raster.DefaultWidth+4])
	assert.Equal(t, raster.Off, payload[25*raster.DefaultWidth+9])
	assert.Equal(t, raster.Off, payload[24*raster.DefaultWidth+4])
}

func TestCreateRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		points []raster.Point
		width  int
		height int
		lit    []raster.Point
	}{
		{
			name:   "single point",
			points: []raster.Point{{Row: 2, Col: 4}},
			width:  8,
			height: 32,
			lit:    []raster.Point{{Row: 2, Col: 4}},
		},
		{
			name:   "two periods",
			points: []raster.Point{{Row: 1, Col: 3}},
			width:  8,
			height: 64,
			lit:    []raster.Point{{Row: 1, Col: 3}, {Row: 33, Col: 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := filepath.Join(t.TempDir(), "out.pgm")
			p := &pattern.Pattern{Name: tt.name, Period: raster.DefaultPeriod, Points: tt.points}
			require.NoError(t, New(nil, nil).Create(file, p, tt.width, tt.height))

			f, err := os.Open(file)
			require.NoError(t, err)
			defer f.Close()

			m, err := pgm.Decode(f)
			require.NoError(t, err)
			gm := m.(*image.Gray)
			require.Equal(t, image.Rect(0, 0, tt.width, tt.height), gm.Bounds())

			var lit []raster.Point
			for y := 0; y < tt.height; y++ {
				for x := 0; x < tt.width; x++ {
					if raster.Lit(gm, y, x) {
						lit = append(lit, raster.Point{Row: y, Col: x})
					}
				}
			}
			assert.Equal(t, tt.lit, lit)
		})
	}
}

func TestCreateUnwritable(t *testing.T) {
	file := filepath.Join(t.TempDir(), "missing", "imageout.pgm")

	logs := new(bytes.Buffer)
	c := New(nil, log.New(logs, "", 0))

	err := c.Create(file, pattern.Default(), raster.DefaultWidth, raster.DefaultHeight)
	require.Error(t, err)
	assert.Contains(t, logs.String(), "Error opening "+file)

	_, err = os.Stat(file)
	assert.True(t, os.IsNotExist(err))
}

func TestPattern(t *testing.T) {
	c := New(nil, nil)

	p, err := c.Pattern(pattern.DefaultName)
	require.NoError(t, err)
	assert.Equal(t, pattern.Default(), p)

	_, err = c.Pattern("nope")
	assert.EqualError(t, err, `no such pattern "nope"`)
}

func TestPatternOverride(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Add(&pattern.Pattern{Name: pattern.DefaultName, Period: 4, Points: []raster.Point{{Row: 1, Col: 1}}}))

	p, err := New(db, nil).Pattern(pattern.DefaultName)
	require.NoError(t, err)
	assert.Equal(t, 4, p.Period)
	assert.Equal(t, []raster.Point{{Row: 1, Col: 1}}, p.Points)
}
