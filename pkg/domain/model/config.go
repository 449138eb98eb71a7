package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/headcount/pkg/domain/types"
)

// Default image size for PNG and SVG surfaces
const (
	DefaultImageWidth  = 1024
	DefaultImageHeight = 768
)

// ImageSize is the pixel size of static chart images
type ImageSize struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ChartConfig represents the optional chart configuration file
type ChartConfig struct {
	Palette     []string          `yaml:"palette,omitempty"`     // Colors handed out in order
	Departments map[string]string `yaml:"departments,omitempty"` // Fixed color per department ID
	Seed        uint64            `yaml:"seed,omitempty"`        // Seed for colors beyond the palette
	Image       ImageSize         `yaml:"image,omitempty"`
}

// DefaultChartConfig returns the configuration used when no file is given
func DefaultChartConfig() *ChartConfig {
	return &ChartConfig{
		Image: ImageSize{Width: DefaultImageWidth, Height: DefaultImageHeight},
	}
}

// Validate validates the chart configuration
func (c *ChartConfig) Validate() error {
	for i, hex := range c.Palette {
		if _, err := ParseColor(hex); err != nil {
			return goerr.Wrap(err, "invalid palette color at index", goerr.V("index", i))
		}
	}

	for id, hex := range c.Departments {
		if id == "" {
			return goerr.New("department color entry has empty ID")
		}
		if _, err := ParseColor(hex); err != nil {
			return goerr.Wrap(err, "invalid department color", goerr.V("department", id))
		}
	}

	if c.Image.Width < 0 || c.Image.Height < 0 {
		return goerr.New("image size must not be negative",
			goerr.V("width", c.Image.Width),
			goerr.V("height", c.Image.Height))
	}

	return nil
}

// ImageSizeOrDefault fills unset dimensions with defaults
func (c *ChartConfig) ImageSizeOrDefault() ImageSize {
	size := c.Image
	if size.Width == 0 {
		size.Width = DefaultImageWidth
	}
	if size.Height == 0 {
		size.Height = DefaultImageHeight
	}
	return size
}

// NewColorAssignment builds the session color assignment from the configuration.
// Call Validate first; invalid entries are skipped here.
func (c *ChartConfig) NewColorAssignment() *ColorAssignment {
	var palette []Color
	for _, hex := range c.Palette {
		if color, err := ParseColor(hex); err == nil {
			palette = append(palette, color)
		}
	}

	assignment := NewColorAssignment(palette, c.Seed)
	for id, hex := range c.Departments {
		if color, err := ParseColor(hex); err == nil {
			assignment.Set(types.DepartmentID(id), color)
		}
	}
	return assignment
}
