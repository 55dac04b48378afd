package pattern

import "github.com/bodgit/pgmcreator/raster"

// DefaultName is the name of the built-in pattern
const DefaultName = "default"

// The list is data, it is reproduced exactly as authored including the
// last entry which is out of sequence.
var defaultPoints = [...]raster.Point{
	{Row: 4, Col: 2}, {Row: 8, Col: 2}, {Row: 9, Col: 2}, {Row: 21, Col: 2}, {Row: 22, Col: 2}, {Row: 26, Col: 2},
	{Row: 5, Col: 3}, {Row: 8, Col: 3}, {Row: 9, Col: 3}, {Row: 21, Col: 3}, {Row: 22, Col: 3}, {Row: 25, Col: 3},
	{Row: 5, Col: 4}, {Row: 8, Col: 4}, {Row: 22, Col: 4},
	{Row: 5, Col: 5}, {Row: 25, Col: 5},
	{Row: 5, Col: 6}, {Row: 10, Col: 6}, {Row: 11, Col: 6}, {Row: 13, Col: 6}, {Row: 17, Col: 6}, {Row: 19, Col: 6}, {Row: 20, Col: 6}, {Row: 25, Col: 6},
	{Row: 2, Col: 7}, {Row: 5, Col: 7}, {Row: 11, Col: 7}, {Row: 12, Col: 7}, {Row: 13, Col: 7}, {Row: 17, Col: 7}, {Row: 18, Col: 7}, {Row: 19, Col: 7}, {Row: 25, Col: 7}, {Row: 28, Col: 7},
	{Row: 3, Col: 8}, {Row: 4, Col: 8}, {Row: 5, Col: 8}, {Row: 12, Col: 8}, {Row: 18, Col: 8}, {Row: 25, Col: 8}, {Row: 26, Col: 8}, {Row: 27, Col: 8},
	{Row: 25, Col: 4},
}

// Default returns a copy of the built-in 44 point pattern.
func Default() *Pattern {
	points := make([]raster.Point, len(defaultPoints))
	copy(points, defaultPoints[:])

	return &Pattern{
		Name:   DefaultName,
		Period: raster.DefaultPeriod,
		Points: points,
	}
}
