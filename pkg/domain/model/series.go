package model

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/headcount/pkg/domain/types"
)

// Color is an RGB triple
type Color struct {
	R uint8
	G uint8
	B uint8
}

// Hex returns the "#rrggbb" form
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String returns the hex form
func (c Color) String() string {
	return c.Hex()
}

// ParseColor parses "#rrggbb" or "rrggbb"
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return Color{}, goerr.New("color must be #rrggbb", goerr.V("color", s))
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, goerr.Wrap(err, "invalid color", goerr.V("color", s))
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// DefaultPalette is used for departments without a configured color
var DefaultPalette = []Color{
	{0x1f, 0x77, 0xb4},
	{0xff, 0x7f, 0x0e},
	{0x2c, 0xa0, 0x2c},
	{0xd6, 0x27, 0x28},
	{0x94, 0x67, 0xbd},
	{0x8c, 0x56, 0x4b},
	{0xe3, 0x77, 0xc2},
	{0x7f, 0x7f, 0x7f},
	{0xbc, 0xbd, 0x22},
	{0x17, 0xbe, 0xcf},
}

// ColorAssignment maps departments to colors for the lifetime of a session.
// Once a department has a color it never changes.
type ColorAssignment struct {
	colors  map[types.DepartmentID]Color
	used    map[Color]bool
	palette []Color
	next    int
	rnd     *rand.Rand
}

// NewColorAssignment creates an assignment drawing from palette first and from a
// random generator seeded with seed once the palette is exhausted
func NewColorAssignment(palette []Color, seed uint64) *ColorAssignment {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	return &ColorAssignment{
		colors:  make(map[types.DepartmentID]Color),
		used:    make(map[Color]bool),
		palette: append([]Color(nil), palette...),
		rnd:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Set pins a color for a department unless it already has one
func (a *ColorAssignment) Set(id types.DepartmentID, c Color) {
	if _, ok := a.colors[id]; ok {
		return
	}
	a.colors[id] = c
	a.used[c] = true
}

// Lookup returns the color of a department if assigned
func (a *ColorAssignment) Lookup(id types.DepartmentID) (Color, bool) {
	c, ok := a.colors[id]
	return c, ok
}

// Assign returns the department's color, assigning a new one on first use
func (a *ColorAssignment) Assign(id types.DepartmentID) Color {
	if c, ok := a.colors[id]; ok {
		return c
	}

	c, ok := a.nextPaletteColor()
	if !ok {
		c = a.randomColor()
	}
	a.colors[id] = c
	a.used[c] = true
	return c
}

// Len returns the number of assigned departments
func (a *ColorAssignment) Len() int {
	return len(a.colors)
}

func (a *ColorAssignment) nextPaletteColor() (Color, bool) {
	for a.next < len(a.palette) {
		c := a.palette[a.next]
		a.next++
		if !a.used[c] {
			return c, true
		}
	}
	return Color{}, false
}

// randomColor avoids very light and very dark tones and retries on collision
func (a *ColorAssignment) randomColor() Color {
	var c Color
	for range 16 {
		c = Color{
			R: uint8(32 + a.rnd.IntN(192)),
			G: uint8(32 + a.rnd.IntN(192)),
			B: uint8(32 + a.rnd.IntN(192)),
		}
		if !a.used[c] {
			break
		}
	}
	return c
}

// Point is one (year, month, count) sample of a series
type Point struct {
	Year  int
	Month int
	Count int
}

// Label returns the chronological "year-month" label
func (p Point) Label() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// Key returns a value that orders points chronologically
func (p Point) Key() int {
	return p.Year*12 + (p.Month - 1)
}

// Series is one department's count-over-time sequence, ordered by (year, month)
type Series struct {
	DepartmentID   types.DepartmentID
	DepartmentName types.DepartmentName
	Color          Color
	Points         []Point
}

// Label returns the legend label, falling back to the ID when the name is unknown
func (s *Series) Label() string {
	if s.DepartmentName != "" {
		return s.DepartmentName.String()
	}
	return s.DepartmentID.String()
}
