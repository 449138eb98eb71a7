package export_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/headcount/pkg/domain/model"
	"github.com/secmon-lab/headcount/pkg/domain/types"
	"github.com/secmon-lab/headcount/pkg/service/export"
	"github.com/xuri/excelize/v2"
)

func sampleSeries() []*model.Series {
	return []*model.Series{
		{
			DepartmentID:   "d001",
			DepartmentName: "Marketing",
			Points: []model.Point{
				{Year: 2020, Month: 1, Count: 5},
				{Year: 2020, Month: 3, Count: 7},
			},
		},
		{
			DepartmentID:   "d002",
			DepartmentName: "Finance",
			Points: []model.Point{
				{Year: 2021, Month: 12, Count: 4},
			},
		},
	}
}

func TestCSV_Export(t *testing.T) {
	dir := t.TempDir()
	exporter := export.NewCSV(dir)

	paths, err := exporter.Export(context.Background(), sampleSeries())
	gt.NoError(t, err).Required()
	gt.Equal(t, paths, []string{
		filepath.Join(dir, "d001_data.csv"),
		filepath.Join(dir, "d002_data.csv"),
	})

	data, err := os.ReadFile(paths[0])
	gt.NoError(t, err).Required()
	gt.Equal(t, string(data), "year,month,count\n2020,1,5\n2020,3,7\n")

	data, err = os.ReadFile(paths[1])
	gt.NoError(t, err).Required()
	gt.Equal(t, string(data), "year,month,count\n2021,12,4\n")
}

func TestCSV_ExportEmptySeries(t *testing.T) {
	dir := t.TempDir()
	paths, err := export.NewCSV(dir).Export(context.Background(), []*model.Series{{DepartmentID: "d003"}})
	gt.NoError(t, err).Required()
	gt.A(t, paths).Length(1)

	data, err := os.ReadFile(paths[0])
	gt.NoError(t, err).Required()
	gt.Equal(t, string(data), "year,month,count\n")
}

func TestCSV_ExportCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	paths, err := export.NewCSV(dir).Export(context.Background(), sampleSeries())
	gt.NoError(t, err).Required()
	gt.A(t, paths).Length(2)
}

func TestCSV_ExportFailure(t *testing.T) {
	// A regular file where the directory should be
	base := t.TempDir()
	blocker := filepath.Join(base, "blocker")
	gt.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600)).Required()

	_, err := export.NewCSV(filepath.Join(blocker, "out")).Export(context.Background(), sampleSeries())
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, model.ErrTagExport))
}

func TestFileName(t *testing.T) {
	gt.Equal(t, export.FileName("d001"), "d001_data.csv")
	gt.Equal(t, export.FileName("../etc"), "___etc_data.csv")
	gt.Equal(t, export.FileName(""), "__data.csv")
}

func TestXLSX_Export(t *testing.T) {
	dir := t.TempDir()
	paths, err := export.NewXLSX(dir).Export(context.Background(), sampleSeries())
	gt.NoError(t, err).Required()
	gt.Equal(t, paths, []string{filepath.Join(dir, export.WorkbookName)})

	f, err := excelize.OpenFile(paths[0])
	gt.NoError(t, err).Required()
	defer f.Close()

	gt.Equal(t, f.GetSheetList(), []string{"d001", "d002"})

	rows, err := f.GetRows("d001")
	gt.NoError(t, err).Required()
	gt.Equal(t, rows, [][]string{
		{"year", "month", "count"},
		{"2020", "1", "5"},
		{"2020", "3", "7"},
	})

	rows, err = f.GetRows("d002")
	gt.NoError(t, err).Required()
	gt.Equal(t, rows, [][]string{
		{"year", "month", "count"},
		{"2021", "12", "4"},
	})
}

func TestXLSX_ExportNoSeries(t *testing.T) {
	dir := t.TempDir()
	paths, err := export.NewXLSX(dir).Export(context.Background(), nil)
	gt.NoError(t, err)
	gt.A(t, paths).Length(0)

	_, err = os.Stat(filepath.Join(dir, export.WorkbookName))
	gt.True(t, os.IsNotExist(err))
}

func TestXLSX_ExportCollidingSheetNames(t *testing.T) {
	series := []*model.Series{
		{DepartmentID: "d:1", Points: []model.Point{{Year: 2020, Month: 1, Count: 1}}},
		{DepartmentID: "d/1", Points: []model.Point{{Year: 2020, Month: 1, Count: 2}}},
	}
	paths, err := export.NewXLSX(t.TempDir()).Export(context.Background(), series)
	gt.NoError(t, err).Required()

	f, err := excelize.OpenFile(paths[0])
	gt.NoError(t, err).Required()
	defer f.Close()
	gt.Equal(t, f.GetSheetList(), []string{"d_1", "d_1_2"})
}

func TestNew(t *testing.T) {
	exporter, err := export.New(types.ExportFormatCSV, t.TempDir())
	gt.NoError(t, err)
	_, ok := exporter.(*export.CSV)
	gt.True(t, ok)

	exporter, err = export.New(types.ExportFormatXLSX, t.TempDir())
	gt.NoError(t, err)
	_, ok = exporter.(*export.XLSX)
	gt.True(t, ok)

	_, err = export.New("pdf", t.TempDir())
	gt.Error(t, err)
}
