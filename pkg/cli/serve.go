package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/headcount/pkg/cli/config"
	controller "github.com/secmon-lab/headcount/pkg/controller/http"
	"github.com/secmon-lab/headcount/pkg/service/notify"
	"github.com/secmon-lab/headcount/pkg/usecase"
	"github.com/secmon-lab/headcount/pkg/utils/async"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg config.Server
		dbCfg     config.Database
		chartCfg  config.Chart
		exportCfg config.Export
	)

	flags := joinFlags(
		serverCfg.Flags(),
		dbCfg.Flags(),
		chartCfg.Flags(),
		exportCfg.Flags(),
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start the chart UI server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting headcount server",
				slog.Any("server", serverCfg),
				slog.Any("database", dbCfg),
				slog.Any("chart", chartCfg),
				slog.Any("export", exportCfg),
			)

			surface, err := serverCfg.Configure()
			if err != nil {
				return err
			}
			exporter, err := exportCfg.Configure()
			if err != nil {
				return err
			}

			inbox := notify.NewInbox()
			p, err := newPipeline(ctx, &dbCfg, &chartCfg,
				usecase.WithSurface(surface),
				usecase.WithNotifier(inbox),
				usecase.WithExporter(exporter),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to start pipeline")
			}
			defer func() {
				if err := p.Close(); err != nil {
					logger.Warn("Failed to close pipeline", "error", err)
				}
			}()

			// First chart is drawn while the listener starts
			async.Dispatch(ctx, p.view.Refresh)

			server, err := controller.NewServer(ctx, serverCfg.Addr, p.view, surface, inbox)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
