package export

import (
	"context"
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/headcount/pkg/domain/interfaces"
	"github.com/secmon-lab/headcount/pkg/domain/model"
	"github.com/secmon-lab/headcount/pkg/domain/types"
	"github.com/xuri/excelize/v2"
)

// Header is the column header of every exported table
var Header = []string{"year", "month", "count"}

// WorkbookName is the file name of the XLSX export
const WorkbookName = "headcount.xlsx"

// maxSheetNameLength is the Excel limit on sheet names
const maxSheetNameLength = 31

// New creates an exporter writing the given format into dir
func New(format types.ExportFormat, dir string) (interfaces.Exporter, error) {
	if dir == "" {
		dir = "."
	}
	switch format {
	case types.ExportFormatCSV:
		return &CSV{dir: dir}, nil
	case types.ExportFormatXLSX:
		return &XLSX{dir: dir}, nil
	default:
		return nil, goerr.New("unsupported export format", goerr.V("format", format))
	}
}

// CSV writes one "<dept_no>_data.csv" file per department
type CSV struct {
	dir string
}

// NewCSV creates a CSV exporter writing into dir
func NewCSV(dir string) *CSV {
	return &CSV{dir: dir}
}

// FileName returns the CSV file name for a department
func FileName(id types.DepartmentID) string {
	return safeName(id.String()) + "_data.csv"
}

// Export writes each series to its own file and returns the paths in series order
func (x *CSV) Export(ctx context.Context, series []*model.Series) ([]string, error) {
	if err := ensureDir(x.dir); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(series))
	for _, s := range series {
		if s == nil {
			continue
		}
		path := filepath.Join(x.dir, FileName(s.DepartmentID))
		if err := writeCSV(path, s); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}

	ctxlog.From(ctx).Info("CSV exported", slog.String("dir", x.dir), slog.Int("files", len(paths)))
	return paths, nil
}

func writeCSV(path string, s *model.Series) error {
	file, err := os.Create(filepath.Clean(path))
	if err != nil {
		return goerr.Wrap(err, "failed to create CSV file",
			goerr.V("path", path),
			goerr.T(model.ErrTagExport))
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(Header); err != nil {
		return goerr.Wrap(err, "failed to write CSV header", goerr.V("path", path), goerr.T(model.ErrTagExport))
	}
	for _, p := range s.Points {
		record := []string{strconv.Itoa(p.Year), strconv.Itoa(p.Month), strconv.Itoa(p.Count)}
		if err := w.Write(record); err != nil {
			return goerr.Wrap(err, "failed to write CSV row", goerr.V("path", path), goerr.T(model.ErrTagExport))
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return goerr.Wrap(err, "failed to flush CSV file", goerr.V("path", path), goerr.T(model.ErrTagExport))
	}

	if err := file.Close(); err != nil {
		return goerr.Wrap(err, "failed to close CSV file", goerr.V("path", path), goerr.T(model.ErrTagExport))
	}
	return nil
}

// XLSX writes one workbook with a sheet per department
type XLSX struct {
	dir string
}

// NewXLSX creates an XLSX exporter writing into dir
func NewXLSX(dir string) *XLSX {
	return &XLSX{dir: dir}
}

// SheetName returns the worksheet name for a department
func SheetName(id types.DepartmentID) string {
	name := safeName(id.String())
	if len(name) > maxSheetNameLength {
		name = name[:maxSheetNameLength]
	}
	return name
}

// Export writes the workbook and returns its path. Nothing is written for no series.
func (x *XLSX) Export(ctx context.Context, series []*model.Series) ([]string, error) {
	var targets []*model.Series
	for _, s := range series {
		if s != nil {
			targets = append(targets, s)
		}
	}
	if len(targets) == 0 {
		return nil, nil
	}

	if err := ensureDir(x.dir); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create header style", goerr.T(model.ErrTagExport))
	}

	used := make(map[string]bool, len(targets))
	for i, s := range targets {
		sheet := uniqueSheetName(SheetName(s.DepartmentID), used)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return nil, goerr.Wrap(err, "failed to name sheet", goerr.V("sheet", sheet), goerr.T(model.ErrTagExport))
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, goerr.Wrap(err, "failed to add sheet", goerr.V("sheet", sheet), goerr.T(model.ErrTagExport))
		}

		if err := writeSheet(f, sheet, s, bold); err != nil {
			return nil, err
		}
	}

	path := filepath.Join(x.dir, WorkbookName)
	if err := f.SaveAs(path); err != nil {
		return nil, goerr.Wrap(err, "failed to save workbook", goerr.V("path", path), goerr.T(model.ErrTagExport))
	}

	ctxlog.From(ctx).Info("XLSX exported", slog.String("path", path), slog.Int("sheets", len(targets)))
	return []string{path}, nil
}

// uniqueSheetName suffixes name until it differs from every used name, ignoring case as Excel does
func uniqueSheetName(name string, used map[string]bool) string {
	candidate := name
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := "_" + strconv.Itoa(n)
		base := name
		if len(base)+len(suffix) > maxSheetNameLength {
			base = base[:maxSheetNameLength-len(suffix)]
		}
		candidate = base + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

func writeSheet(f *excelize.File, sheet string, s *model.Series, headerStyle int) error {
	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return goerr.Wrap(err, "failed to write sheet header", goerr.V("sheet", sheet), goerr.T(model.ErrTagExport))
	}
	if err := f.SetCellStyle(sheet, "A1", "C1", headerStyle); err != nil {
		return goerr.Wrap(err, "failed to style sheet header", goerr.V("sheet", sheet), goerr.T(model.ErrTagExport))
	}

	for i, p := range s.Points {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return goerr.Wrap(err, "invalid cell", goerr.V("row", i+2), goerr.T(model.ErrTagExport))
		}
		row := []interface{}{p.Year, p.Month, p.Count}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return goerr.Wrap(err, "failed to write sheet row",
				goerr.V("sheet", sheet),
				goerr.V("row", i+2),
				goerr.T(model.ErrTagExport))
		}
	}
	return nil
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return goerr.Wrap(err, "failed to create export directory", goerr.V("dir", dir), goerr.T(model.ErrTagExport))
	}
	return nil
}

// safeName keeps department IDs from escaping the export directory or breaking sheet names
func safeName(s string) string {
	if s == "" {
		return "_"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}
