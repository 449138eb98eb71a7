package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/headcount/pkg/cli"
)

func run(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv("HEADCOUNT_DB_DSN", "")
	t.Setenv("HEADCOUNT_LOG_FORMAT", "json")
	return cli.Run(context.Background(), append([]string{"headcount"}, args...))
}

func TestRender(t *testing.T) {
	dir := t.TempDir()

	t.Run("2D PNG", func(t *testing.T) {
		path := filepath.Join(dir, "chart.png")
		gt.NoError(t, run(t, "render", "--output", path)).Required()

		data, err := os.ReadFile(path)
		gt.NoError(t, err).Required()
		gt.True(t, bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")))
	})

	t.Run("3D HTML for one department", func(t *testing.T) {
		path := filepath.Join(dir, "chart.html")
		gt.NoError(t, run(t, "render", "--output", path, "--mode", "3d", "--department", "d001")).Required()

		data, err := os.ReadFile(path)
		gt.NoError(t, err).Required()
		gt.S(t, string(data)).Contains("Marketing")
		gt.S(t, string(data)).NotContains("Finance")
	})

	t.Run("SVG with date range", func(t *testing.T) {
		path := filepath.Join(dir, "chart.svg")
		gt.NoError(t, run(t, "render", "-o", path, "--start", "2000-01-01", "--end", "2100-12-31")).Required()

		data, err := os.ReadFile(path)
		gt.NoError(t, err).Required()
		gt.S(t, string(data)).Contains("<svg")
	})

	t.Run("inverted date range", func(t *testing.T) {
		path := filepath.Join(dir, "inverted.png")
		gt.Error(t, run(t, "render", "-o", path, "--start", "2021-01-01", "--end", "2020-01-01"))
	})

	t.Run("invalid mode", func(t *testing.T) {
		gt.Error(t, run(t, "render", "-o", filepath.Join(dir, "mode.png"), "--mode", "4d"))
	})

	t.Run("unsupported output format", func(t *testing.T) {
		gt.Error(t, run(t, "render", "-o", filepath.Join(dir, "chart.gif")))
	})
}

func TestExport(t *testing.T) {
	t.Run("CSV", func(t *testing.T) {
		dir := t.TempDir()
		gt.NoError(t, run(t, "export", "--dir", dir, "-d", "d001", "-d", "d002")).Required()

		entries, err := os.ReadDir(dir)
		gt.NoError(t, err).Required()
		gt.A(t, entries).Length(2)

		data, err := os.ReadFile(filepath.Join(dir, "d001_data.csv"))
		gt.NoError(t, err).Required()
		gt.True(t, strings.HasPrefix(string(data), "year,month,count\n"))
	})

	t.Run("XLSX", func(t *testing.T) {
		dir := t.TempDir()
		gt.NoError(t, run(t, "export", "--format", "xlsx", "--dir", dir)).Required()

		_, err := os.Stat(filepath.Join(dir, "headcount.xlsx"))
		gt.NoError(t, err)
	})

	t.Run("unsupported format", func(t *testing.T) {
		gt.Error(t, run(t, "export", "--format", "pdf", "--dir", t.TempDir()))
	})
}

func TestDepartments(t *testing.T) {
	gt.NoError(t, run(t, "departments"))
}

func TestInvalidLogFormat(t *testing.T) {
	gt.Error(t, run(t, "--log-format", "xml", "departments"))
}
