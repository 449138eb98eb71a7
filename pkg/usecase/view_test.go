package usecase_test

import (
	"bytes"
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/headcount/pkg/domain/interfaces"
	"github.com/secmon-lab/headcount/pkg/domain/interfaces/mocks"
	"github.com/secmon-lab/headcount/pkg/domain/model"
	"github.com/secmon-lab/headcount/pkg/domain/types"
	"github.com/secmon-lab/headcount/pkg/service/chart"
	"github.com/secmon-lab/headcount/pkg/usecase"
)

func twoDepartmentRows() []*model.EmploymentCountRecord {
	return []*model.EmploymentCountRecord{
		record("d001", 2020, 1, 5),
		record("d001", 2020, 3, 7),
		record("d002", 2020, 2, 1),
	}
}

func fixedRepo(rows []*model.EmploymentCountRecord) *mocks.RepositoryMock {
	return &mocks.RepositoryMock{
		ExecuteFunc: func(ctx context.Context, query *model.Query) ([]*model.EmploymentCountRecord, error) {
			return rows, nil
		},
		ListDepartmentsFunc: func(ctx context.Context) ([]*model.Department, error) {
			return []*model.Department{{ID: "d001", Name: "Marketing"}, {ID: "d002", Name: "Finance"}}, nil
		},
	}
}

func TestViewController_InitialState(t *testing.T) {
	c := usecase.NewViewController(newPlanner(t, types.DialectSQLite), fixedRepo(nil), &mocks.ChartRendererMock{})

	state := c.State()
	gt.Equal(t, state.Phase, usecase.PhaseIdle)
	gt.Equal(t, state.Mode, types.ViewModeTwoD)
	gt.True(t, state.Filter.Departments.IsAll())
	gt.False(t, state.Filter.DateRange.HasStart())
	gt.False(t, state.Filter.DateRange.HasEnd())
	gt.False(t, state.Rendered)
}

func TestViewController_InvalidFilter(t *testing.T) {
	ctx := context.Background()
	repo := fixedRepo(twoDepartmentRows())
	notifier := &mocks.NotifierMock{}
	surface := chart.NewMemorySurface(types.SurfaceFormatHTML)

	c := usecase.NewViewController(newPlanner(t, types.DialectSQLite), repo, chart.NewRenderer(),
		usecase.WithNotifier(notifier),
		usecase.WithSurface(surface),
	)

	valid := model.FilterState{
		DateRange:   model.NewDateRange(day(2020, 1, 1), day(2020, 12, 31)),
		Departments: model.SingleDepartment("d001"),
	}
	gt.NoError(t, c.ApplyFilter(ctx, valid)).Required()
	before := surface.Bytes()
	executed := len(repo.ExecuteCalls())

	err := c.ApplyFilter(ctx, model.FilterState{
		DateRange:   model.NewDateRange(day(2021, 6, 1), day(2021, 1, 1)),
		Departments: model.AllDepartments(),
	})
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, model.ErrTagInvalidFilter))

	gt.A(t, notifier.WarnCalls()).Length(1)
	gt.A(t, notifier.ErrorCalls()).Length(0)
	gt.S(t, notifier.WarnCalls()[0].Message).Contains("start date is after end date")

	gt.Equal(t, len(repo.ExecuteCalls()), executed)
	gt.Equal(t, c.State().Filter, valid)
	gt.Equal(t, c.State().Phase, usecase.PhaseIdle)
	gt.True(t, bytes.Equal(surface.Bytes(), before))
}

func TestViewController_AllDepartments(t *testing.T) {
	ctx := context.Background()
	renderer := &mocks.ChartRendererMock{}
	c := usecase.NewViewController(newPlanner(t, types.DialectSQLite), fixedRepo(twoDepartmentRows()), renderer,
		usecase.WithSurface(&mocks.SurfaceMock{}),
	)

	gt.NoError(t, c.Refresh(ctx)).Required()

	calls := renderer.RenderCalls()
	gt.A(t, calls).Length(1)
	series := calls[0].Series
	if len(series) != 2 {
		t.Fatalf("expected 2 series, got %d", len(series))
	}
	gt.Equal(t, series[0].DepartmentID, types.DepartmentID("d001"))
	gt.Equal(t, series[1].DepartmentID, types.DepartmentID("d002"))
	gt.NotEqual(t, series[0].Color, series[1].Color)

	state := c.State()
	gt.Equal(t, state.SeriesCount, 2)
	gt.True(t, state.Rendered)
	gt.Equal(t, state.Phase, usecase.PhaseIdle)
}

func TestViewController_EmptySelection(t *testing.T) {
	ctx := context.Background()
	surface := chart.NewMemorySurface(types.SurfaceFormatHTML)
	repo := &mocks.RepositoryMock{
		ExecuteFunc: func(ctx context.Context, query *model.Query) ([]*model.EmploymentCountRecord, error) {
			gt.S(t, query.Statement).Contains("1 = 0")
			return nil, nil
		},
	}

	c := usecase.NewViewController(newPlanner(t, types.DialectSQLite), repo, chart.NewRenderer(),
		usecase.WithSurface(surface),
	)
	gt.NoError(t, c.ChangeSelection(ctx, model.DepartmentSet())).Required()

	gt.Equal(t, c.State().SeriesCount, 0)
	gt.True(t, c.State().Rendered)
	out := string(surface.Bytes())
	gt.S(t, out).Contains(chart.Title)
	gt.S(t, out).Contains(chart.LabelYearMonth)
	gt.S(t, out).Contains(chart.LabelEmployees)
}

func TestViewController_ToggleTwice(t *testing.T) {
	ctx := context.Background()
	renderer := &mocks.ChartRendererMock{}
	surface := chart.NewMemorySurface(types.SurfaceFormatPNG)
	real := chart.NewRenderer()
	renderer.RenderFunc = func(ctx context.Context, series []*model.Series, mode types.ViewMode, s interfaces.Surface) error {
		return real.Render(ctx, series, mode, s)
	}

	c := usecase.NewViewController(newPlanner(t, types.DialectSQLite), fixedRepo(twoDepartmentRows()), renderer,
		usecase.WithSurface(surface),
	)

	gt.NoError(t, c.Refresh(ctx)).Required()
	original := surface.Bytes()

	gt.NoError(t, c.ToggleViewMode(ctx)).Required()
	gt.Equal(t, c.State().Mode, types.ViewModeThreeD)
	gt.False(t, bytes.Equal(surface.Bytes(), original))

	gt.NoError(t, c.ToggleViewMode(ctx)).Required()
	gt.Equal(t, c.State().Mode, types.ViewModeTwoD)
	gt.True(t, bytes.Equal(surface.Bytes(), original))

	calls := renderer.RenderCalls()
	gt.A(t, calls).Length(3)
	gt.Equal(t, calls[1].Mode, types.ViewModeThreeD)
	for i := range calls[0].Series {
		gt.Equal(t, *calls[2].Series[i], *calls[0].Series[i])
	}
}

func TestViewController_QueryFailure(t *testing.T) {
	ctx := context.Background()
	notifier := &mocks.NotifierMock{}
	surface := chart.NewMemorySurface(types.SurfaceFormatHTML)

	fail := false
	repo := &mocks.RepositoryMock{
		ExecuteFunc: func(ctx context.Context, query *model.Query) ([]*model.EmploymentCountRecord, error) {
			if fail {
				return nil, goerr.New("server has gone away", goerr.T(model.ErrTagQuery))
			}
			return twoDepartmentRows(), nil
		},
	}

	c := usecase.NewViewController(newPlanner(t, types.DialectSQLite), repo, chart.NewRenderer(),
		usecase.WithNotifier(notifier),
		usecase.WithSurface(surface),
	)
	gt.NoError(t, c.Refresh(ctx)).Required()
	before := surface.Bytes()

	fail = true
	err := c.ChangeSelection(ctx, model.SingleDepartment("d002"))
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, model.ErrTagQuery))

	gt.A(t, notifier.ErrorCalls()).Length(1)
	gt.S(t, notifier.ErrorCalls()[0].Message).Contains("server has gone away")
	gt.True(t, bytes.Equal(surface.Bytes(), before))
	gt.Equal(t, c.State().Phase, usecase.PhaseIdle)
	gt.Equal(t, c.State().SeriesCount, 2)
}

func TestViewController_NoSurface(t *testing.T) {
	ctx := context.Background()
	notifier := &mocks.NotifierMock{}
	renderer := &mocks.ChartRendererMock{}
	c := usecase.NewViewController(newPlanner(t, types.DialectSQLite), fixedRepo(twoDepartmentRows()), renderer,
		usecase.WithNotifier(notifier),
	)

	err := c.Refresh(ctx)
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, model.ErrTagRender))
	gt.A(t, renderer.RenderCalls()).Length(0)
	gt.A(t, notifier.ErrorCalls()).Length(1)
}

func TestViewController_RenderFailure(t *testing.T) {
	ctx := context.Background()
	renderer := &mocks.ChartRendererMock{
		RenderFunc: func(ctx context.Context, series []*model.Series, mode types.ViewMode, surface interfaces.Surface) error {
			return goerr.New("font missing")
		},
	}
	c := usecase.NewViewController(newPlanner(t, types.DialectSQLite), fixedRepo(twoDepartmentRows()), renderer,
		usecase.WithSurface(&mocks.SurfaceMock{}),
	)

	err := c.Refresh(ctx)
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, model.ErrTagRender))
	gt.False(t, c.State().Rendered)
}

func TestViewController_StaleRunIsDropped(t *testing.T) {
	ctx := context.Background()
	renderer := &mocks.ChartRendererMock{}

	var calls atomic.Int32
	started := make(chan struct{})
	repo := &mocks.RepositoryMock{
		ExecuteFunc: func(ctx context.Context, query *model.Query) ([]*model.EmploymentCountRecord, error) {
			if calls.Add(1) == 1 {
				close(started)
				// Held until a newer run cancels it
				<-ctx.Done()
				return []*model.EmploymentCountRecord{record("d009", 2019, 1, 1)}, nil
			}
			return twoDepartmentRows(), nil
		},
	}

	c := usecase.NewViewController(newPlanner(t, types.DialectSQLite), repo, renderer,
		usecase.WithSurface(&mocks.SurfaceMock{}),
	)

	var wg sync.WaitGroup
	var firstErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		firstErr = c.ChangeSelection(ctx, model.SingleDepartment("d009"))
	}()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("first run did not start")
	}

	gt.NoError(t, c.ChangeSelection(ctx, model.DepartmentSet("d001", "d002"))).Required()
	wg.Wait()

	gt.NoError(t, firstErr)
	renders := renderer.RenderCalls()
	gt.A(t, renders).Length(1)
	gt.Equal(t, len(renders[0].Series), 2)
	gt.Equal(t, c.State().Filter.Departments.IDs(), []types.DepartmentID{"d001", "d002"})
	gt.Equal(t, c.State().Phase, usecase.PhaseIdle)
}

func TestViewController_AttachSurface(t *testing.T) {
	ctx := context.Background()
	c := usecase.NewViewController(newPlanner(t, types.DialectSQLite), fixedRepo(nil), &mocks.ChartRendererMock{})

	first := &mocks.SurfaceMock{}
	second := &mocks.SurfaceMock{}

	c.AttachSurface(ctx, first)
	gt.A(t, first.CloseCalls()).Length(0)

	c.AttachSurface(ctx, second)
	gt.A(t, first.CloseCalls()).Length(1)
	gt.A(t, second.CloseCalls()).Length(0)

	gt.NoError(t, c.Close())
	gt.A(t, second.CloseCalls()).Length(1)
}

func TestViewController_SurfaceReuseAcrossToggles(t *testing.T) {
	ctx := context.Background()
	surface := &mocks.SurfaceMock{}
	c := usecase.NewViewController(newPlanner(t, types.DialectSQLite), fixedRepo(twoDepartmentRows()), &mocks.ChartRendererMock{},
		usecase.WithSurface(surface),
	)

	for range 10 {
		gt.NoError(t, c.ToggleViewMode(ctx)).Required()
	}
	gt.A(t, surface.CloseCalls()).Length(0)
}

func TestViewController_Export(t *testing.T) {
	ctx := context.Background()

	t.Run("hands current series to exporter", func(t *testing.T) {
		exporter := &mocks.ExporterMock{
			ExportFunc: func(ctx context.Context, series []*model.Series) ([]string, error) {
				return []string{"d001_data.csv", "d002_data.csv"}, nil
			},
		}
		c := usecase.NewViewController(newPlanner(t, types.DialectSQLite), fixedRepo(twoDepartmentRows()), &mocks.ChartRendererMock{},
			usecase.WithExporter(exporter),
		)

		paths, err := c.Export(ctx)
		gt.NoError(t, err).Required()
		gt.Equal(t, paths, []string{"d001_data.csv", "d002_data.csv"})
		gt.A(t, exporter.ExportCalls()).Length(1)
		gt.Equal(t, len(exporter.ExportCalls()[0].Series), 2)
	})

	t.Run("failure is reported", func(t *testing.T) {
		notifier := &mocks.NotifierMock{}
		exporter := &mocks.ExporterMock{
			ExportFunc: func(ctx context.Context, series []*model.Series) ([]string, error) {
				return nil, goerr.New("permission denied")
			},
		}
		c := usecase.NewViewController(newPlanner(t, types.DialectSQLite), fixedRepo(twoDepartmentRows()), &mocks.ChartRendererMock{},
			usecase.WithExporter(exporter),
			usecase.WithNotifier(notifier),
		)

		_, err := c.Export(ctx)
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagExport))
		gt.A(t, notifier.ErrorCalls()).Length(1)
	})

	t.Run("not configured", func(t *testing.T) {
		c := usecase.NewViewController(newPlanner(t, types.DialectSQLite), fixedRepo(nil), &mocks.ChartRendererMock{})
		_, err := c.Export(ctx)
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagExport))
	})
}

func TestViewController_LoadDepartments(t *testing.T) {
	ctx := context.Background()

	c := usecase.NewViewController(newPlanner(t, types.DialectSQLite), fixedRepo(nil), &mocks.ChartRendererMock{})
	departments, err := c.LoadDepartments(ctx)
	gt.NoError(t, err).Required()
	gt.A(t, departments).Length(2)
	gt.A(t, c.Departments()).Length(2)

	failing := &mocks.RepositoryMock{
		ListDepartmentsFunc: func(ctx context.Context) ([]*model.Department, error) {
			return nil, goerr.New("connection refused", goerr.T(model.ErrTagConnection))
		},
	}
	c = usecase.NewViewController(newPlanner(t, types.DialectSQLite), failing, &mocks.ChartRendererMock{})
	_, err = c.LoadDepartments(ctx)
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, model.ErrTagConnection))
}
