package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/headcount/pkg/domain/interfaces"
	"github.com/secmon-lab/headcount/pkg/domain/model"
	"github.com/secmon-lab/headcount/pkg/domain/types"
	"github.com/secmon-lab/headcount/pkg/utils/apperr"
	"github.com/secmon-lab/headcount/pkg/utils/async"
)

// Phase is the controller state
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseRendering Phase = "rendering"
)

// ViewState is a snapshot of the controller state
type ViewState struct {
	Phase       Phase
	Filter      model.FilterState
	Mode        types.ViewMode
	SeriesCount int
	Rendered    bool
}

// ViewController owns the filter, the view mode, the color assignment and the
// attached surface, and runs the query-to-chart pipeline on user actions.
//
// Each pipeline run is issued a ticket. A newer action cancels the query of an
// older one, and a run whose ticket is no longer the latest drops its result
// instead of drawing it.
type ViewController struct {
	planner  *Planner
	repo     interfaces.Repository
	renderer interfaces.ChartRenderer
	exporter interfaces.Exporter
	notifier interfaces.Notifier

	seq async.Sequencer

	mu          sync.Mutex
	colors      *model.ColorAssignment
	surface     interfaces.Surface
	filter      model.FilterState
	mode        types.ViewMode
	phase       Phase
	seriesCount int
	rendered    bool
	departments []*model.Department
}

// ViewOption configures a ViewController
type ViewOption func(*ViewController)

// WithExporter sets the export collaborator
func WithExporter(exporter interfaces.Exporter) ViewOption {
	return func(c *ViewController) {
		c.exporter = exporter
	}
}

// WithNotifier sets where user-visible messages go
func WithNotifier(notifier interfaces.Notifier) ViewOption {
	return func(c *ViewController) {
		c.notifier = notifier
	}
}

// WithColorAssignment sets the session color assignment
func WithColorAssignment(colors *model.ColorAssignment) ViewOption {
	return func(c *ViewController) {
		c.colors = colors
	}
}

// WithSurface attaches the initial drawing surface
func WithSurface(surface interfaces.Surface) ViewOption {
	return func(c *ViewController) {
		c.surface = surface
	}
}

// WithViewMode sets the initial view mode
func WithViewMode(mode types.ViewMode) ViewOption {
	return func(c *ViewController) {
		c.mode = mode
	}
}

// WithFilter sets the initial filter. It must be valid.
func WithFilter(filter model.FilterState) ViewOption {
	return func(c *ViewController) {
		c.filter = filter
	}
}

// NewViewController creates a controller in the Idle state with all departments
// selected, no date bounds and the 2D view
func NewViewController(planner *Planner, repo interfaces.Repository, renderer interfaces.ChartRenderer, opts ...ViewOption) *ViewController {
	c := &ViewController{
		planner:  planner,
		repo:     repo,
		renderer: renderer,
		notifier: nopNotifier{},
		colors:   model.NewColorAssignment(nil, 0),
		filter:   model.DefaultFilterState(),
		mode:     types.ViewModeTwoD,
		phase:    PhaseIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LoadDepartments enumerates departments from the store. A failure here leaves
// the UI without a department list, so callers treat it as fatal.
func (c *ViewController) LoadDepartments(ctx context.Context) ([]*model.Department, error) {
	departments, err := c.repo.ListDepartments(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to enumerate departments")
	}

	c.mu.Lock()
	c.departments = departments
	c.mu.Unlock()

	ctxlog.From(ctx).Info("Departments loaded", slog.Int("count", len(departments)))
	return departments, nil
}

// Departments returns the department list loaded at startup
func (c *ViewController) Departments() []*model.Department {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*model.Department(nil), c.departments...)
}

// State returns a snapshot of the controller state
func (c *ViewController) State() ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ViewState{
		Phase:       c.phase,
		Filter:      c.filter,
		Mode:        c.mode,
		SeriesCount: c.seriesCount,
		Rendered:    c.rendered,
	}
}

// AttachSurface replaces the drawing surface. The previous surface is closed
// before the new one is attached.
func (c *ViewController) AttachSurface(ctx context.Context, surface interfaces.Surface) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.surface != nil && c.surface != surface {
		if err := c.surface.Close(); err != nil {
			ctxlog.From(ctx).Warn("Failed to release previous surface", "error", err)
		}
	}
	c.surface = surface
	c.rendered = false
}

// Close releases the attached surface
func (c *ViewController) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.surface == nil {
		return nil
	}
	err := c.surface.Close()
	c.surface = nil
	if err != nil {
		return goerr.Wrap(err, "failed to release surface")
	}
	return nil
}

// ApplyFilter validates filter and, if valid, makes it current and redraws.
// An invalid filter produces exactly one warning and leaves the current filter
// and chart untouched.
func (c *ViewController) ApplyFilter(ctx context.Context, filter model.FilterState) error {
	if err := filter.Validate(); err != nil {
		c.report(ctx, err)
		return err
	}

	c.mu.Lock()
	c.filter = filter
	runCtx, ticket, snapshot := c.issueLocked(ctx)
	c.mu.Unlock()

	return c.finish(ctx, c.run(runCtx, ticket, snapshot))
}

// ChangeSelection replaces the department selector and redraws
func (c *ViewController) ChangeSelection(ctx context.Context, selector model.DepartmentSelector) error {
	if err := selector.Validate(); err != nil {
		c.report(ctx, err)
		return err
	}

	c.mu.Lock()
	c.filter.Departments = selector
	runCtx, ticket, snapshot := c.issueLocked(ctx)
	c.mu.Unlock()

	return c.finish(ctx, c.run(runCtx, ticket, snapshot))
}

// ToggleViewMode flips between the 2D and 3D views and redraws with the current filter
func (c *ViewController) ToggleViewMode(ctx context.Context) error {
	c.mu.Lock()
	c.mode = c.mode.Toggle()
	runCtx, ticket, snapshot := c.issueLocked(ctx)
	c.mu.Unlock()

	return c.finish(ctx, c.run(runCtx, ticket, snapshot))
}

// Refresh redraws with the current filter and view mode
func (c *ViewController) Refresh(ctx context.Context) error {
	c.mu.Lock()
	runCtx, ticket, snapshot := c.issueLocked(ctx)
	c.mu.Unlock()

	return c.finish(ctx, c.run(runCtx, ticket, snapshot))
}

// Export queries the current filter and hands the resulting series to the exporter
func (c *ViewController) Export(ctx context.Context) ([]string, error) {
	if c.exporter == nil {
		err := goerr.New("export is not configured", goerr.T(model.ErrTagExport))
		c.report(ctx, err)
		return nil, err
	}

	c.mu.Lock()
	filter := c.filter
	c.mu.Unlock()

	series, err := c.query(ctx, filter)
	if err != nil {
		c.report(ctx, err)
		return nil, err
	}

	paths, err := c.exporter.Export(ctx, series)
	if err != nil {
		if !goerr.HasTag(err, model.ErrTagExport) {
			err = goerr.Wrap(err, "export failed", goerr.T(model.ErrTagExport))
		}
		c.report(ctx, err)
		return nil, err
	}

	ctxlog.From(ctx).Info("Series exported",
		slog.Int("series", len(series)),
		slog.Any("paths", paths),
	)
	return paths, nil
}

type runSnapshot struct {
	id     types.RunID
	filter model.FilterState
	mode   types.ViewMode
}

// issueLocked must be called with c.mu held so that tickets follow the order of state changes
func (c *ViewController) issueLocked(ctx context.Context) (context.Context, *async.Ticket, runSnapshot) {
	runCtx, ticket := c.seq.Issue(ctx)
	c.phase = PhaseRendering
	return runCtx, ticket, runSnapshot{
		id:     types.NewRunID(),
		filter: c.filter,
		mode:   c.mode,
	}
}

func (c *ViewController) run(ctx context.Context, ticket *async.Ticket, snap runSnapshot) error {
	defer c.seq.Release(ticket)

	logger := ctxlog.From(ctx).With(
		slog.String("run", snap.id.String()),
		slog.Uint64("ticket", ticket.Seq()),
	)
	ctx = ctxlog.With(ctx, logger)

	query, err := c.planner.Plan(snap.filter)
	if err != nil {
		return c.endRun(ticket, err)
	}

	rows, err := c.repo.Execute(ctx, query)
	if err != nil {
		if !c.seq.IsLatest(ticket) {
			return c.stale(ctx)
		}
		return c.endRun(ticket, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// A newer run was issued while the query was in flight
	if !c.seq.IsLatest(ticket) {
		return c.stale(ctx)
	}
	defer func() { c.phase = PhaseIdle }()

	if c.surface == nil {
		return goerr.Wrap(model.ErrSurfaceNotAttached, "cannot draw chart", goerr.T(model.ErrTagRender))
	}

	series := BuildSeries(rows, c.colors)
	if err := c.renderer.Render(ctx, series, snap.mode, c.surface); err != nil {
		if !goerr.HasTag(err, model.ErrTagRender) {
			err = goerr.Wrap(err, "failed to render chart", goerr.T(model.ErrTagRender))
		}
		return err
	}

	c.seriesCount = len(series)
	c.rendered = true
	logger.Debug("Chart rendered",
		slog.String("mode", snap.mode.String()),
		slog.Int("series", len(series)),
		slog.Int("rows", len(rows)),
	)
	return nil
}

// endRun returns the controller to Idle unless a newer run owns the phase
func (c *ViewController) endRun(ticket *async.Ticket, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seq.IsLatest(ticket) {
		c.phase = PhaseIdle
	}
	return err
}

func (c *ViewController) stale(ctx context.Context) error {
	ctxlog.From(ctx).Debug("Dropping result of superseded run")
	return goerr.Wrap(model.ErrStaleRun, "result discarded")
}

// finish converts pipeline failures into user-visible messages. A superseded
// run is not a failure: the newer run owns the chart.
func (c *ViewController) finish(ctx context.Context, err error) error {
	if err == nil || errors.Is(err, model.ErrStaleRun) {
		return nil
	}
	c.report(ctx, err)
	return err
}

func (c *ViewController) query(ctx context.Context, filter model.FilterState) ([]*model.Series, error) {
	query, err := c.planner.Plan(filter)
	if err != nil {
		return nil, err
	}
	rows, err := c.repo.Execute(ctx, query)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return BuildSeries(rows, c.colors), nil
}

func (c *ViewController) report(ctx context.Context, err error) {
	apperr.Handle(ctx, err)
	if goerr.HasTag(err, model.ErrTagInvalidFilter) {
		c.notifier.Warn(ctx, apperr.Message(err))
		return
	}
	c.notifier.Error(ctx, apperr.Message(err))
}

type nopNotifier struct{}

func (nopNotifier) Warn(context.Context, string)  {}
func (nopNotifier) Error(context.Context, string) {}
