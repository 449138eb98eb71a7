package cli

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/headcount/pkg/cli/config"
	"github.com/secmon-lab/headcount/pkg/repository"
	"github.com/secmon-lab/headcount/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// joinFlags combines multiple flag slices into one
func joinFlags(flags ...[]cli.Flag) []cli.Flag {
	var result []cli.Flag
	for _, f := range flags {
		result = append(result, f...)
	}
	return result
}

// pipeline is the set of components every command builds from configuration
type pipeline struct {
	repo *repository.SQL
	view *usecase.ViewController
}

func (x *pipeline) Close() error {
	if err := errors.Join(x.view.Close(), x.repo.Close()); err != nil {
		return goerr.Wrap(err, "failed to close pipeline")
	}
	return nil
}

// newPipeline opens the store and wires a ViewController. Departments are
// enumerated before returning; failing to do so is fatal.
func newPipeline(ctx context.Context, dbCfg *config.Database, chartCfg *config.Chart, opts ...usecase.ViewOption) (*pipeline, error) {
	chartConfig, err := chartCfg.Configure()
	if err != nil {
		return nil, err
	}

	planner, err := usecase.NewPlanner(dbCfg.PlannerDialect())
	if err != nil {
		return nil, err
	}

	repo, err := dbCfg.Configure(ctx)
	if err != nil {
		return nil, err
	}

	opts = append([]usecase.ViewOption{
		usecase.WithColorAssignment(chartConfig.NewColorAssignment()),
	}, opts...)
	view := usecase.NewViewController(planner, repo, config.NewRenderer(chartConfig), opts...)

	if _, err := view.LoadDepartments(ctx); err != nil {
		_ = view.Close()
		_ = repo.Close()
		return nil, err
	}

	return &pipeline{repo: repo, view: view}, nil
}
