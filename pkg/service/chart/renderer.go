package chart

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/headcount/pkg/domain/interfaces"
	"github.com/secmon-lab/headcount/pkg/domain/model"
	"github.com/secmon-lab/headcount/pkg/domain/types"
	gochart "github.com/wcharczuk/go-chart/v2"
)

var _ interfaces.ChartRenderer = (*Renderer)(nil)

// Renderer draws series onto a surface in the encoding the surface accepts
type Renderer struct {
	size model.ImageSize
}

// Option configures a Renderer
type Option func(*Renderer)

// WithImageSize sets the pixel size of PNG and SVG output
func WithImageSize(size model.ImageSize) Option {
	return func(r *Renderer) {
		if size.Width > 0 {
			r.size.Width = size.Width
		}
		if size.Height > 0 {
			r.size.Height = size.Height
		}
	}
}

// NewRenderer creates a new chart renderer
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		size: model.ImageSize{Width: model.DefaultImageWidth, Height: model.DefaultImageHeight},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render replaces the surface content with a chart of series in the given mode.
// The chart is fully encoded before the surface is touched, so a failed render
// leaves the previous chart in place.
func (r *Renderer) Render(ctx context.Context, series []*model.Series, mode types.ViewMode, surface interfaces.Surface) error {
	if surface == nil {
		return goerr.Wrap(model.ErrSurfaceNotAttached, "cannot draw chart", goerr.T(model.ErrTagRender))
	}
	if !mode.IsValid() {
		return goerr.New("unsupported view mode", goerr.V("mode", mode), goerr.T(model.ErrTagRender))
	}

	fig := NewFigure(series, mode)
	format := surface.Format()

	var buf bytes.Buffer
	if err := r.encode(&buf, fig, format); err != nil {
		return goerr.Wrap(err, "failed to encode chart",
			goerr.V("mode", mode),
			goerr.V("format", format),
			goerr.T(model.ErrTagRender))
	}

	if err := replace(surface, buf.Bytes()); err != nil {
		return goerr.Wrap(err, "failed to write chart to surface", goerr.T(model.ErrTagRender))
	}

	ctxlog.From(ctx).Debug("Chart drawn",
		slog.String("mode", mode.String()),
		slog.String("format", format.String()),
		slog.Int("series", len(series)),
		slog.Int("bytes", buf.Len()),
	)
	return nil
}

// replacer is a surface that swaps its content in one step, so readers never
// observe the cleared state between two charts
type replacer interface {
	Replace(p []byte) error
}

func replace(surface interfaces.Surface, p []byte) error {
	if r, ok := surface.(replacer); ok {
		return r.Replace(p)
	}
	if err := surface.Clear(); err != nil {
		return goerr.Wrap(err, "failed to clear surface")
	}
	if _, err := surface.Write(p); err != nil {
		return err
	}
	return nil
}

func (r *Renderer) encode(buf *bytes.Buffer, fig *Figure, format types.SurfaceFormat) error {
	switch format {
	case types.SurfaceFormatHTML:
		return encodeHTML(buf, fig)
	case types.SurfaceFormatPNG:
		return encodeImage(buf, fig, r.size, gochart.PNG)
	case types.SurfaceFormatSVG:
		return encodeImage(buf, fig, r.size, gochart.SVG)
	default:
		return goerr.New("unsupported surface format", goerr.V("format", format))
	}
}
