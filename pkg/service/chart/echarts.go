package chart

import (
	"io"
	"strconv"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/render"
	"github.com/secmon-lab/headcount/pkg/domain/types"
)

// chartID is fixed so that equal figures encode to equal pages
const chartID = "headcount"

// encodeHTML writes the figure as an interactive ECharts page
func encodeHTML(w io.Writer, fig *Figure) error {
	if fig.Mode == types.ViewModeThreeD {
		return buildBar3D(fig).Render(w)
	}
	return buildLine(fig).Render(w)
}

func buildLine(fig *Figure) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: fig.Title,
			ChartID:   chartID,
			Width:     "100%",
			Height:    "600px",
		}),
		charts.WithTitleOpts(opts.Title{Title: fig.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Type: "scroll", Top: "30"}),
		charts.WithXAxisOpts(opts.XAxis{Name: fig.Axes.X, NameLocation: "middle", NameGap: 30}),
		charts.WithYAxisOpts(opts.YAxis{Name: fig.Axes.Y}),
	)
	line.SetXAxis(fig.Categories)

	for _, l := range fig.Lines {
		byLabel := make(map[string]int, len(l.Labels))
		for i, label := range l.Labels {
			byLabel[label] = l.Counts[i]
		}

		// ECharts leaves a gap for "-" values
		data := make([]opts.LineData, len(fig.Categories))
		for i, category := range fig.Categories {
			if v, ok := byLabel[category]; ok {
				data[i] = opts.LineData{Value: v}
			} else {
				data[i] = opts.LineData{Value: "-"}
			}
		}

		hex := l.Color.Hex()
		line.AddSeries(l.Name, data,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: hex}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: hex}),
		)
	}

	return line
}

// Grid box size in ECharts GL world units
const (
	gridBoxWidth = 200.0
	gridBoxDepth = 120.0
)

func buildBar3D(fig *Figure) *charts.Bar3D {
	// Axes are pinned so the bar footprint converts to box units the same way for every figure
	xAxis := opts.XAxis3D{Name: fig.Axes.X, Type: "value"}
	yAxis := opts.YAxis3D{Name: fig.Axes.Y, Type: "value", Min: 0.5, Max: 12.5}
	yearMin, yearMax, ok := fig.yearRange()
	if ok {
		xAxis.Min, xAxis.Max = yearMin-0.5, yearMax+0.5
	}

	bar := charts.NewBar3D()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: fig.Title,
			ChartID:   chartID,
			Width:     "100%",
			Height:    "600px",
		}),
		charts.WithTitleOpts(opts.Title{Title: fig.Title}),
		charts.WithLegendOpts(opts.Legend{Type: "scroll", Top: "30"}),
		charts.WithXAxis3DOpts(xAxis),
		charts.WithYAxis3DOpts(yAxis),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: fig.Axes.Z, Type: "value"}),
		charts.WithGrid3DOpts(opts.Grid3D{BoxWidth: gridBoxWidth, BoxDepth: gridBoxDepth}),
	)

	sizes := make([]string, 0, len(fig.BarSets))
	for _, set := range fig.BarSets {
		data := make([]opts.Chart3DData, 0, len(set.Bars))
		for _, b := range set.Bars {
			data = append(data, opts.Chart3DData{
				Value: []interface{}{b.X, b.Y, b.Z + b.Height},
			})
		}
		bar.AddSeries(set.Name, data,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: set.Color.Hex()}),
		)
		sizes = append(sizes, barSize(set, yearMax-yearMin+1))
	}

	// go-echarts has no barSize option, so it is set on the instance after init
	if len(sizes) > 0 {
		bar.AddJSFuncs(render.EchartsInstancePlaceholder +
			".setOption({series: [" + strings.Join(sizes, ", ") + "]});")
	}

	return bar
}

// barSize converts a set's footprint from axis units to grid box units
func barSize(set BarSet, yearSpan float64) string {
	width, depth := BarWidth, BarDepth
	if len(set.Bars) > 0 {
		width, depth = set.Bars[0].Width, set.Bars[0].Depth
	}
	w := width * gridBoxWidth / yearSpan
	d := depth * gridBoxDepth / 12
	return "{barSize: [" + strconv.FormatFloat(w, 'f', 2, 64) + ", " + strconv.FormatFloat(d, 'f', 2, 64) + "]}"
}
