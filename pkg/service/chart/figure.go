package chart

import (
	"slices"

	"github.com/secmon-lab/headcount/pkg/domain/model"
	"github.com/secmon-lab/headcount/pkg/domain/types"
)

// Chart text
const (
	Title          = "Number of employees per department, year and month"
	LabelYearMonth = "Year-Month"
	LabelYear      = "Year"
	LabelMonth     = "Month"
	LabelEmployees = "Number of employees"
)

// Bar footprint in axis units
const (
	BarWidth = 0.8
	BarDepth = 0.8
)

// Axes holds axis labels. Z is empty in the 2D view.
type Axes struct {
	X string
	Y string
	Z string
}

// Line is one department's 2D line
type Line struct {
	Name   string
	Color  model.Color
	Labels []string // "year-month" of each point
	Counts []int
}

// Bar is one 3D bar anchored at (X, Y, Z) with the given footprint and height
type Bar struct {
	X      float64 // year
	Y      float64 // month
	Z      float64
	Width  float64
	Depth  float64
	Height float64 // count
}

// BarSet is one department's 3D bars
type BarSet struct {
	Name  string
	Color model.Color
	Bars  []Bar
}

// Figure is a renderer-neutral description of a chart
type Figure struct {
	Title      string
	Mode       types.ViewMode
	Axes       Axes
	Categories []string // chronological union of line labels (2D)
	Lines      []Line
	BarSets    []BarSet
}

// IsEmpty reports whether the figure has nothing to draw besides axes
func (f *Figure) IsEmpty() bool {
	return len(f.Lines) == 0 && len(f.BarSets) == 0
}

// NewFigure lays out series for the given view mode. Series with no points are skipped.
func NewFigure(series []*model.Series, mode types.ViewMode) *Figure {
	fig := &Figure{
		Title: Title,
		Mode:  mode,
	}

	if mode == types.ViewModeThreeD {
		fig.Axes = Axes{X: LabelYear, Y: LabelMonth, Z: LabelEmployees}
		for _, s := range series {
			if s == nil || len(s.Points) == 0 {
				continue
			}
			set := BarSet{Name: s.Label(), Color: s.Color, Bars: make([]Bar, 0, len(s.Points))}
			for _, p := range s.Points {
				set.Bars = append(set.Bars, Bar{
					X:      float64(p.Year),
					Y:      float64(p.Month),
					Width:  BarWidth,
					Depth:  BarDepth,
					Height: float64(p.Count),
				})
			}
			fig.BarSets = append(fig.BarSets, set)
		}
		return fig
	}

	fig.Axes = Axes{X: LabelYearMonth, Y: LabelEmployees}
	keys := make(map[string]int)
	for _, s := range series {
		if s == nil || len(s.Points) == 0 {
			continue
		}
		line := Line{
			Name:   s.Label(),
			Color:  s.Color,
			Labels: make([]string, len(s.Points)),
			Counts: make([]int, len(s.Points)),
		}
		for i, p := range s.Points {
			line.Labels[i] = p.Label()
			line.Counts[i] = p.Count
			keys[p.Label()] = p.Key()
		}
		fig.Lines = append(fig.Lines, line)
	}

	fig.Categories = make([]string, 0, len(keys))
	for label := range keys {
		fig.Categories = append(fig.Categories, label)
	}
	slices.SortFunc(fig.Categories, func(a, b string) int {
		return keys[a] - keys[b]
	})

	return fig
}

// maxCount returns the largest count in the figure
func (f *Figure) maxCount() float64 {
	var m float64
	for _, l := range f.Lines {
		for _, c := range l.Counts {
			m = max(m, float64(c))
		}
	}
	for _, set := range f.BarSets {
		for _, b := range set.Bars {
			m = max(m, b.Z+b.Height)
		}
	}
	return m
}

// yearRange returns the first and last year that carries a bar
func (f *Figure) yearRange() (first, last float64, ok bool) {
	for _, set := range f.BarSets {
		for _, b := range set.Bars {
			if !ok {
				first, last, ok = b.X, b.X, true
				continue
			}
			first = min(first, b.X)
			last = max(last, b.X)
		}
	}
	return first, last, ok
}
