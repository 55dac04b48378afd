package pgmcreator

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/pgmcreator/pattern"
	"github.com/bodgit/pgmcreator/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *PatternDB {
	t.Helper()

	db, err := NewPatternDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func TestPatternDBAddFind(t *testing.T) {
	db := newTestDB(t)

	want := pattern.Default()
	require.NoError(t, db.Add(want))

	got, err := db.FindPattern(want.Name)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	missing, err := db.FindPattern("missing")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPatternDBReplace(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Add(&pattern.Pattern{Name: "p", Period: 32, Points: []raster.Point{{Row: 1, Col: 1}, {Row: 2, Col: 2}}}))
	require.NoError(t, db.Add(&pattern.Pattern{Name: "p", Period: 8, Points: []raster.Point{{Row: 3, Col: 3}}}))

	got, err := db.FindPattern("p")
	require.NoError(t, err)
	assert.Equal(t, 8, got.Period)
	assert.Equal(t, []raster.Point{{Row: 3, Col: 3}}, got.Points)

	names, err := db.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"p"}, names)
}

func TestPatternDBNoName(t *testing.T) {
	db := newTestDB(t)
	assert.Equal(t, errNoName, db.Add(&pattern.Pattern{}))
}

func TestPatternDBNames(t *testing.T) {
	db := newTestDB(t)

	for _, name := range []string{"zebra", "alpha", "mid"} {
		require.NoError(t, db.Add(&pattern.Pattern{Name: name, Period: 32}))
	}

	names, err := db.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "mid", "zebra"}, names)

	empty, err := db.FindPattern("mid")
	require.NoError(t, err)
	assert.Equal(t, []raster.Point{}, empty.Points)
}

func TestPatternDBImportYAML(t *testing.T) {
	db := newTestDB(t)
	dir := t.TempDir()

	named := filepath.Join(dir, "named.yml")
	require.NoError(t, os.WriteFile(named, []byte("name: glider\nperiod: 8\npoints: [[1, 2], [2, 3], [3, 1], [3, 2], [3, 3]]\n"), 0644))
	unnamed := filepath.Join(dir, "blinker.yaml")
	require.NoError(t, os.WriteFile(unnamed, []byte("points: [[1, 0], [1, 1], [1, 2]]\n"), 0644))

	p, err := db.ImportYAML(named)
	require.NoError(t, err)
	assert.Equal(t, "glider", p.Name)

	p, err = db.ImportYAML(unnamed)
	require.NoError(t, err)
	assert.Equal(t, "blinker", p.Name)

	got, err := db.FindPattern("blinker")
	require.NoError(t, err)
	assert.Equal(t, raster.DefaultPeriod, got.Period)
	assert.Equal(t, []raster.Point{{Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: 2}}, got.Points)

	_, err = db.ImportYAML(filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)
}

func TestPatternDBImportImage(t *testing.T) {
	db := newTestDB(t)

	m := image.NewGray(image.Rect(0, 0, 4, 3))
	m.SetGray(1, 0, color.Gray{Y: 0xff})
	m.SetGray(3, 2, color.Gray{Y: 0xff})

	file := filepath.Join(t.TempDir(), "dots.png")
	f, err := os.Create(file)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, m))
	require.NoError(t, f.Close())

	p, err := db.ImportImage("", file)
	require.NoError(t, err)
	assert.Equal(t, "dots", p.Name)

	got, err := db.FindPattern("dots")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Period)
	assert.Equal(t, []raster.Point{{Row: 0, Col: 1}, {Row: 2, Col: 3}}, got.Points)

	var sha string
	require.NoError(t, db.db.QueryRow("SELECT sha1 FROM pattern WHERE name = ?", "dots").Scan(&sha))
	assert.Len(t, sha, 40)
}

func TestPatternDBImportImageInvalid(t *testing.T) {
	db := newTestDB(t)

	file := filepath.Join(t.TempDir(), "bad.png")
	require.NoError(t, os.WriteFile(file, []byte("not an image"), 0644))

	_, err := db.ImportImage("bad", file)
	assert.Error(t, err)

	got, err := db.FindPattern("bad")
	require.NoError(t, err)
	assert.Nil(t, got)
}
