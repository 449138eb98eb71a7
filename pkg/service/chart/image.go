package chart

import (
	"io"
	"math"
	"slices"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/headcount/pkg/domain/model"
	"github.com/secmon-lab/headcount/pkg/domain/types"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	titleFontSize  = 14.0
	labelFontSize  = 10.0
	tickFontSize   = 8.0
	lineWidth      = 2.0
	dotWidth       = 3.0
	xTickRotation  = 45.0
	headroomFactor = 1.1
)

// encodeImage writes the figure as a static PNG or SVG image
func encodeImage(w io.Writer, fig *Figure, size model.ImageSize, provider gochart.RendererProvider) error {
	if fig.Mode == types.ViewModeTwoD && !fig.IsEmpty() {
		return drawLines(w, fig, size, provider)
	}

	c, err := newCanvas(size, provider)
	if err != nil {
		return err
	}
	c.title(fig.Title)

	if fig.Mode == types.ViewModeThreeD {
		drawBars(c, fig)
	} else {
		drawEmptyAxes(c, fig)
	}

	return c.save(w)
}

func toDrawing(c model.Color) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: 255}
}

func drawLines(w io.Writer, fig *Figure, size model.ImageSize, provider gochart.RendererProvider) error {
	index := make(map[string]int, len(fig.Categories))
	ticks := make([]gochart.Tick, len(fig.Categories))
	for i, category := range fig.Categories {
		index[category] = i
		ticks[i] = gochart.Tick{Value: float64(i), Label: category}
	}

	series := make([]gochart.Series, 0, len(fig.Lines))
	for _, l := range fig.Lines {
		xs := make([]float64, len(l.Labels))
		ys := make([]float64, len(l.Counts))
		for i, label := range l.Labels {
			xs[i] = float64(index[label])
			ys[i] = float64(l.Counts[i])
		}
		color := toDrawing(l.Color)
		series = append(series, gochart.ContinuousSeries{
			Name:    l.Name,
			XValues: xs,
			YValues: ys,
			Style: gochart.Style{
				StrokeColor: color,
				StrokeWidth: lineWidth,
				DotColor:    color,
				DotWidth:    dotWidth,
			},
		})
	}

	// Ticks define the x range and go-chart rejects a zero-width one,
	// so a single month sits centered between two unlabelled ticks.
	xMin, xMax := 0.0, float64(len(fig.Categories)-1)
	if len(ticks) == 1 {
		xMin, xMax = -1, 1
		ticks = []gochart.Tick{{Value: xMin}, ticks[0], {Value: xMax}}
	}
	yMax := math.Max(fig.maxCount()*headroomFactor, 1)

	graph := &gochart.Chart{
		Title:      fig.Title,
		TitleStyle: gochart.Style{FontSize: titleFontSize},
		Width:      size.Width,
		Height:     size.Height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: gochart.XAxis{
			Name:      fig.Axes.X,
			NameStyle: gochart.Style{FontSize: labelFontSize},
			Style: gochart.Style{
				FontSize:            tickFontSize,
				TextRotationDegrees: xTickRotation,
			},
			Range:        &gochart.ContinuousRange{Min: xMin, Max: xMax},
			Ticks:        ticks,
			TickPosition: gochart.TickPositionUnderTick,
		},
		YAxis: gochart.YAxis{
			Name:      fig.Axes.Y,
			NameStyle: gochart.Style{FontSize: labelFontSize},
			Style:     gochart.Style{FontSize: tickFontSize},
			Range:     &gochart.ContinuousRange{Min: 0, Max: yMax},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return strconv.Itoa(int(math.Round(f)))
				}
				return ""
			},
		},
		Series: series,
	}
	graph.Elements = []gochart.Renderable{gochart.Legend(graph)}

	if err := graph.Render(provider, w); err != nil {
		return goerr.Wrap(err, "failed to draw line chart")
	}
	return nil
}

// canvas wraps a raw go-chart renderer for charts go-chart has no series type for
type canvas struct {
	r      gochart.Renderer
	width  int
	height int
}

func newCanvas(size model.ImageSize, provider gochart.RendererProvider) (*canvas, error) {
	r, err := provider(size.Width, size.Height)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create image renderer")
	}
	font, err := gochart.GetDefaultFont()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load font")
	}
	r.SetFont(font)

	c := &canvas{r: r, width: size.Width, height: size.Height}
	c.polygon([]point{{0, 0}, {c.width, 0}, {c.width, c.height}, {0, c.height}}, drawing.ColorWhite, drawing.ColorWhite)
	return c, nil
}

type point struct {
	X int
	Y int
}

func (c *canvas) polygon(points []point, fill, stroke drawing.Color) {
	if len(points) == 0 {
		return
	}
	c.r.SetFillColor(fill)
	c.r.SetStrokeColor(stroke)
	c.r.SetStrokeWidth(1)
	c.r.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		c.r.LineTo(p.X, p.Y)
	}
	c.r.Close()
	c.r.FillStroke()
}

func (c *canvas) line(from, to point, color drawing.Color) {
	c.r.SetStrokeColor(color)
	c.r.SetStrokeWidth(1)
	c.r.MoveTo(from.X, from.Y)
	c.r.LineTo(to.X, to.Y)
	c.r.Stroke()
}

func (c *canvas) text(body string, at point, size float64) {
	c.r.SetFontColor(drawing.ColorBlack)
	c.r.SetFontSize(size)
	c.r.Text(body, at.X, at.Y)
}

// centered draws text horizontally centered on at.X
func (c *canvas) centered(body string, at point, size float64) {
	c.r.SetFontSize(size)
	box := c.r.MeasureText(body)
	c.text(body, point{at.X - box.Width()/2, at.Y}, size)
}

func (c *canvas) title(body string) {
	c.centered(body, point{c.width / 2, 24}, titleFontSize)
}

func (c *canvas) legend(entries []BarSet) {
	x := c.width - 190
	y := 48
	for _, e := range entries {
		color := toDrawing(e.Color)
		c.polygon([]point{{x, y - 8}, {x + 10, y - 8}, {x + 10, y + 2}, {x, y + 2}}, color, color)
		c.text(e.Name, point{x + 16, y + 2}, tickFontSize)
		y += 16
	}
}

func (c *canvas) save(w io.Writer) error {
	if err := c.r.Save(w); err != nil {
		return goerr.Wrap(err, "failed to encode image")
	}
	return nil
}

// drawEmptyAxes draws a labelled frame with no data
func drawEmptyAxes(c *canvas, fig *Figure) {
	left, top := 70, 50
	right, bottom := c.width-30, c.height-60
	axis := drawing.ColorBlack

	c.line(point{left, bottom}, point{right, bottom}, axis)
	c.line(point{left, bottom}, point{left, top}, axis)
	c.centered(fig.Axes.X, point{(left + right) / 2, bottom + 36}, labelFontSize)

	c.r.SetTextRotation(-math.Pi / 2)
	c.text(fig.Axes.Y, point{left - 40, (top + bottom) / 2}, labelFontSize)
	c.r.ClearTextRotation()
}

// projection maps (year, month, count) onto the image with an oblique projection.
// Year runs to the right, month recedes up and to the right, count rises.
type projection struct {
	origin   point
	yearMin  float64
	yearUnit float64
	monthDX  float64
	monthDY  float64
	zUnit    float64
}

func (p projection) at(x, y, z float64) point {
	return point{
		X: p.origin.X + int(math.Round((x-p.yearMin)*p.yearUnit+(y-1)*p.monthDX)),
		Y: p.origin.Y - int(math.Round((y-1)*p.monthDY+z*p.zUnit)),
	}
}

func shade(c model.Color, factor float64) drawing.Color {
	scale := func(v uint8) uint8 {
		return uint8(math.Min(255, math.Round(float64(v)*factor)))
	}
	return drawing.Color{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: 255}
}

func tint(c model.Color, amount float64) drawing.Color {
	mix := func(v uint8) uint8 {
		return uint8(math.Round(float64(v) + (255-float64(v))*amount))
	}
	return drawing.Color{R: mix(c.R), G: mix(c.G), B: mix(c.B), A: 255}
}

type placedBar struct {
	bar   Bar
	color model.Color
}

func drawBars(c *canvas, fig *Figure) {
	yearMin, yearMax := math.Inf(1), math.Inf(-1)
	var bars []placedBar
	for _, set := range fig.BarSets {
		for _, b := range set.Bars {
			yearMin = math.Min(yearMin, b.X)
			yearMax = math.Max(yearMax, b.X+b.Width)
			bars = append(bars, placedBar{bar: b, color: set.Color})
		}
	}
	if len(bars) == 0 {
		// Unlabelled one-year span
		yearMin, yearMax = 0, 1
	}
	yearMax = math.Max(math.Ceil(yearMax), yearMin+1)
	zMax := math.Max(fig.maxCount()*headroomFactor, 1)

	plotLeft, plotBottom := 90, c.height-70
	plotWidth := float64(c.width - plotLeft - 230)
	plotHeight := float64(plotBottom - 70)

	proj := projection{
		origin:   point{plotLeft, plotBottom},
		yearMin:  yearMin,
		yearUnit: plotWidth * 0.65 / (yearMax - yearMin),
		monthDX:  plotWidth * 0.35 / 12,
		monthDY:  plotHeight * 0.35 / 12,
		zUnit:    plotHeight * 0.6 / zMax,
	}

	axis := drawing.ColorBlack
	grid := drawing.Color{R: 200, G: 200, B: 200, A: 255}

	// Floor and back walls
	c.polygon([]point{
		proj.at(yearMin, 1, 0), proj.at(yearMax, 1, 0),
		proj.at(yearMax, 13, 0), proj.at(yearMin, 13, 0),
	}, drawing.Color{R: 245, G: 245, B: 245, A: 255}, grid)
	for _, z := range []float64{zMax / 2, zMax} {
		c.line(proj.at(yearMin, 13, z), proj.at(yearMax, 13, z), grid)
		c.line(proj.at(yearMin, 1, z), proj.at(yearMin, 13, z), grid)
	}

	c.line(proj.at(yearMin, 1, 0), proj.at(yearMax, 1, 0), axis)
	c.line(proj.at(yearMin, 1, 0), proj.at(yearMin, 13, 0), axis)
	c.line(proj.at(yearMin, 1, 0), proj.at(yearMin, 1, zMax), axis)

	for year := yearMin; len(bars) > 0 && year < yearMax; year++ {
		at := proj.at(year+BarWidth/2, 1, 0)
		c.centered(strconv.Itoa(int(year)), point{at.X, at.Y + 16}, tickFontSize)
	}
	for month := 1; month <= 12; month++ {
		at := proj.at(yearMax, float64(month)+BarDepth/2, 0)
		c.text(strconv.Itoa(month), point{at.X + 6, at.Y + 4}, tickFontSize)
	}
	for _, z := range []float64{0, zMax / 2, zMax} {
		at := proj.at(yearMin, 1, z)
		label := strconv.Itoa(int(math.Round(z)))
		c.r.SetFontSize(tickFontSize)
		box := c.r.MeasureText(label)
		c.text(label, point{at.X - box.Width() - 6, at.Y + 4}, tickFontSize)
	}

	xLabel := proj.at((yearMin+yearMax)/2, 1, 0)
	c.centered(fig.Axes.X, point{xLabel.X, xLabel.Y + 40}, labelFontSize)
	yLabel := proj.at(yearMax, 13, 0)
	c.text(fig.Axes.Y, point{yLabel.X + 10, yLabel.Y}, labelFontSize)
	zLabel := proj.at(yearMin, 1, zMax)
	c.text(fig.Axes.Z, point{zLabel.X - 40, zLabel.Y - 12}, labelFontSize)

	// Painter's order: farthest month first, then left to right, taller bars before shorter
	slices.SortStableFunc(bars, func(a, b placedBar) int {
		switch {
		case a.bar.Y != b.bar.Y:
			return cmpFloat(b.bar.Y, a.bar.Y)
		case a.bar.X != b.bar.X:
			return cmpFloat(a.bar.X, b.bar.X)
		default:
			return cmpFloat(b.bar.Height, a.bar.Height)
		}
	})
	for _, pb := range bars {
		drawBox(c, proj, pb.bar, pb.color)
	}

	c.legend(fig.BarSets)
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func drawBox(c *canvas, proj projection, b Bar, color model.Color) {
	x0, x1 := b.X, b.X+b.Width
	y0, y1 := b.Y, b.Y+b.Depth
	z0, z1 := b.Z, b.Z+b.Height
	edge := shade(color, 0.5)

	// Side (x = x1)
	c.polygon([]point{
		proj.at(x1, y0, z0), proj.at(x1, y1, z0),
		proj.at(x1, y1, z1), proj.at(x1, y0, z1),
	}, shade(color, 0.7), edge)
	// Top (z = z1)
	c.polygon([]point{
		proj.at(x0, y0, z1), proj.at(x1, y0, z1),
		proj.at(x1, y1, z1), proj.at(x0, y1, z1),
	}, tint(color, 0.35), edge)
	// Front (y = y0)
	c.polygon([]point{
		proj.at(x0, y0, z0), proj.at(x1, y0, z0),
		proj.at(x1, y0, z1), proj.at(x0, y0, z1),
	}, toDrawing(color), edge)
}
