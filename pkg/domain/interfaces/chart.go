package interfaces

//go:generate moq -out mocks/chart_mock.go -pkg mocks . Surface ChartRenderer

import (
	"context"
	"io"

	"github.com/secmon-lab/headcount/pkg/domain/model"
	"github.com/secmon-lab/headcount/pkg/domain/types"
)

// Surface is a drawing target that holds one rendered chart at a time
type Surface interface {
	io.Writer

	// Format returns the encoding the surface accepts
	Format() types.SurfaceFormat

	// Clear removes previously drawn content
	Clear() error

	// Close releases the surface. A closed surface must not be drawn on.
	Close() error
}

// ChartRenderer draws series onto a surface
type ChartRenderer interface {
	Render(ctx context.Context, series []*model.Series, mode types.ViewMode, surface Surface) error
}
