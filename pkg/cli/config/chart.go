package config

import (
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/headcount/pkg/domain/model"
	"github.com/secmon-lab/headcount/pkg/service/chart"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Chart holds chart configuration
type Chart struct {
	ConfigPath string
}

// Flags returns CLI flags for Chart configuration
func (c *Chart) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "chart-config",
			Usage:       "Path to chart configuration YAML (palette, department colors, seed, image size)",
			Category:    "Chart",
			Sources:     cli.EnvVars("HEADCOUNT_CHART_CONFIG"),
			Destination: &c.ConfigPath,
		},
	}
}

// Configure loads the chart configuration, or the defaults when no file is given
func (c *Chart) Configure() (*model.ChartConfig, error) {
	if c.ConfigPath == "" {
		return model.DefaultChartConfig(), nil
	}
	return LoadChartConfig(c.ConfigPath)
}

// NewRenderer builds a chart renderer sized by the configuration
func NewRenderer(cfg *model.ChartConfig) *chart.Renderer {
	return chart.NewRenderer(chart.WithImageSize(cfg.ImageSizeOrDefault()))
}

// LogValue returns structured log value
func (c Chart) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("config", c.ConfigPath),
	)
}

// LoadChartConfig loads chart configuration from a YAML file
func LoadChartConfig(path string) (*model.ChartConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(err, "chart configuration file not found",
				goerr.V("path", path))
		}
		return nil, goerr.Wrap(err, "failed to read chart configuration file",
			goerr.V("path", path))
	}

	cfg := model.DefaultChartConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse chart configuration",
			goerr.V("path", path))
	}

	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid chart configuration",
			goerr.V("path", path))
	}

	return cfg, nil
}
