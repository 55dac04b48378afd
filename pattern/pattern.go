/*
Package pattern holds the coordinate lists fed to the raster generator.

A pattern is stored as YAML:

	name: default
	period: 32
	points: [[4, 2], [8, 2], [9, 2]]

Each point is a [row, column] pair and the order is preserved exactly as
written, duplicates included. A missing period means raster.DefaultPeriod.
*/
package pattern

import (
	"fmt"
	"image"
	"os"

	"github.com/bodgit/pgmcreator/raster"
	"github.com/goccy/go-yaml"
)

// Pattern is a named coordinate list together with its replication period.
type Pattern struct {
	Name   string
	Period int
	Points []raster.Point
}

type file struct {
	Name   string  `yaml:"name,omitempty"`
	Period int     `yaml:"period,omitempty"`
	Points [][]int `yaml:"points,flow"`
}

// Generate renders the pattern into a width by height raster.
func (p *Pattern) Generate(width, height int) *image.Gray {
	return raster.Generate(p.Points, width, height, p.Period)
}

// MarshalYAML implements the yaml.BytesMarshaler interface.
func (p *Pattern) MarshalYAML() ([]byte, error) {
	f := file{
		Name:   p.Name,
		Period: p.Period,
		Points: make([][]int, 0, len(p.Points)),
	}
	for _, pt := range p.Points {
		f.Points = append(f.Points, []int{pt.Row, pt.Col})
	}
	return yaml.Marshal(f)
}

// UnmarshalYAML implements the yaml.BytesUnmarshaler interface.
func (p *Pattern) UnmarshalYAML(b []byte) error {
	var f file
	if err := yaml.Unmarshal(b, &f); err != nil {
		return err
	}

	if f.Period < 0 {
		return fmt.Errorf("invalid period %d", f.Period)
	}
	if f.Period == 0 {
		f.Period = raster.DefaultPeriod
	}

	points := make([]raster.Point, 0, len(f.Points))
	for i, pt := range f.Points {
		if len(pt) != 2 {
			return fmt.Errorf("point %d: expected [row, column], got %d values", i+1, len(pt))
		}
		points = append(points, raster.Point{Row: pt[0], Col: pt[1]})
	}

	p.Name = f.Name
	p.Period = f.Period
	p.Points = points

	return nil
}

// Parse decodes a pattern from YAML.
func Parse(b []byte) (*Pattern, error) {
	p := new(Pattern)
	if err := yaml.Unmarshal(b, p); err != nil {
		return nil, fmt.Errorf("failed to parse pattern: %w", err)
	}
	return p, nil
}

// Load reads a pattern from a YAML file.
func Load(file string) (*Pattern, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read pattern: %w", err)
	}
	return Parse(b)
}
