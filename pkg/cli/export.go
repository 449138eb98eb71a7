package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/secmon-lab/headcount/pkg/cli/config"
	"github.com/secmon-lab/headcount/pkg/service/notify"
	"github.com/secmon-lab/headcount/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdExport() *cli.Command {
	var (
		dbCfg     config.Database
		filterCfg config.Filter
		exportCfg config.Export
	)

	flags := joinFlags(
		filterCfg.Flags(),
		exportCfg.Flags(),
		dbCfg.Flags(),
	)

	return &cli.Command{
		Name:  "export",
		Usage: "Write the series of a filter to CSV or XLSX files",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			filter, err := filterCfg.Configure()
			if err != nil {
				return err
			}
			exporter, err := exportCfg.Configure()
			if err != nil {
				return err
			}

			p, err := newPipeline(ctx, &dbCfg, &config.Chart{},
				usecase.WithNotifier(notify.NewLog()),
				usecase.WithExporter(exporter),
				usecase.WithFilter(filter),
			)
			if err != nil {
				return err
			}
			defer func() {
				if err := p.Close(); err != nil {
					logger.Warn("Failed to close pipeline", "error", err)
				}
			}()

			paths, err := p.view.Export(ctx)
			if err != nil {
				return err
			}

			logger.Debug("Export finished", slog.Any("export", exportCfg), slog.Int("files", len(paths)))
			for _, path := range paths {
				if _, err := fmt.Fprintln(c.Root().Writer, path); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
