package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/headcount/pkg/cli/config"
	"github.com/secmon-lab/headcount/pkg/domain/types"
	"github.com/secmon-lab/headcount/pkg/service/chart"
	"github.com/secmon-lab/headcount/pkg/service/notify"
	"github.com/secmon-lab/headcount/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdRender() *cli.Command {
	var (
		dbCfg     config.Database
		chartCfg  config.Chart
		filterCfg config.Filter
		mode      string
		output    string
	)

	flags := joinFlags(
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "mode",
				Usage:       "View mode (2d, 3d)",
				Value:       types.ViewModeTwoD.String(),
				Destination: &mode,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "Output file. The extension selects the format (.html, .png, .svg)",
				Required:    true,
				Destination: &output,
			},
		},
		filterCfg.Flags(),
		dbCfg.Flags(),
		chartCfg.Flags(),
	)

	return &cli.Command{
		Name:  "render",
		Usage: "Draw the chart for a filter into a file",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			viewMode, err := types.ParseViewMode(mode)
			if err != nil {
				return err
			}
			filter, err := filterCfg.Configure()
			if err != nil {
				return err
			}

			logger.Debug("Rendering chart",
				slog.Any("filter", filterCfg),
				slog.Any("database", dbCfg),
				slog.String("mode", viewMode.String()),
				slog.String("output", output),
			)

			surface, err := chart.NewFileSurface(output, "")
			if err != nil {
				return err
			}

			p, err := newPipeline(ctx, &dbCfg, &chartCfg,
				usecase.WithSurface(surface),
				usecase.WithNotifier(notify.NewLog()),
				usecase.WithViewMode(viewMode),
			)
			if err != nil {
				_ = surface.Close()
				return err
			}
			defer func() {
				if err := p.Close(); err != nil {
					logger.Warn("Failed to close pipeline", "error", err)
				}
			}()

			if err := p.view.ApplyFilter(ctx, filter); err != nil {
				return goerr.Wrap(err, "failed to render chart", goerr.V("output", output))
			}

			state := p.view.State()
			logger.Info("Chart written",
				slog.String("output", output),
				slog.String("mode", state.Mode.String()),
				slog.Int("series", state.SeriesCount),
			)
			return nil
		},
	}
}
