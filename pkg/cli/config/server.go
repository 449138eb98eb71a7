package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/headcount/pkg/domain/types"
	"github.com/secmon-lab/headcount/pkg/service/chart"
	"github.com/urfave/cli/v3"
)

// Server holds server configuration
type Server struct {
	Addr   string
	Format string
}

// Flags returns CLI flags for Server configuration
func (s *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:8080",
			Sources:     cli.EnvVars("HEADCOUNT_ADDR"),
			Destination: &s.Addr,
		},
		&cli.StringFlag{
			Name:        "chart-format",
			Usage:       "Format of the served chart (html, png, svg)",
			Value:       types.SurfaceFormatHTML.String(),
			Sources:     cli.EnvVars("HEADCOUNT_CHART_FORMAT"),
			Destination: &s.Format,
		},
	}
}

// Configure creates the in-memory surface the server draws on
func (s *Server) Configure() (*chart.MemorySurface, error) {
	format := types.SurfaceFormat(s.Format)
	if !format.IsValid() {
		return nil, goerr.New("invalid chart format", goerr.V("format", s.Format))
	}
	return chart.NewMemorySurface(format), nil
}

// LogValue returns structured log value
func (s Server) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("addr", s.Addr),
		slog.String("format", s.Format),
	)
}
