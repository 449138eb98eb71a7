package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/headcount/pkg/domain/interfaces"
	"github.com/secmon-lab/headcount/pkg/domain/types"
	"github.com/secmon-lab/headcount/pkg/service/export"
	"github.com/urfave/cli/v3"
)

// Export holds exporter configuration
type Export struct {
	Format string
	Dir    string
}

// Flags returns CLI flags for Export configuration
func (e *Export) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "export-format",
			Aliases:     []string{"format"},
			Usage:       "Export file format (csv, xlsx)",
			Category:    "Export",
			Value:       types.ExportFormatCSV.String(),
			Sources:     cli.EnvVars("HEADCOUNT_EXPORT_FORMAT"),
			Destination: &e.Format,
		},
		&cli.StringFlag{
			Name:        "export-dir",
			Aliases:     []string{"dir"},
			Usage:       "Directory export files are written to",
			Category:    "Export",
			Value:       ".",
			Sources:     cli.EnvVars("HEADCOUNT_EXPORT_DIR"),
			Destination: &e.Dir,
		},
	}
}

// Configure creates the exporter
func (e *Export) Configure() (interfaces.Exporter, error) {
	format := types.ExportFormat(e.Format)
	if !format.IsValid() {
		return nil, goerr.New("invalid export format", goerr.V("format", e.Format))
	}
	return export.New(format, e.Dir)
}

// LogValue returns structured log value
func (e Export) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("format", e.Format),
		slog.String("dir", e.Dir),
	)
}
