package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// DepartmentID represents a department code such as "d001"
type DepartmentID string

// String returns the string representation
func (id DepartmentID) String() string {
	return string(id)
}

// DepartmentName represents a human readable department name
type DepartmentName string

// String returns the string representation
func (n DepartmentName) String() string {
	return string(n)
}

// RunID identifies one pipeline run in logs
type RunID string

// String returns the string representation
func (id RunID) String() string {
	return string(id)
}

// NewRunID creates a new RunID using UUID v7 so that IDs sort by issue time
func NewRunID() RunID {
	id, err := uuid.NewV7()
	if err != nil {
		return RunID(uuid.New().String())
	}
	return RunID(id.String())
}

// ViewMode represents the chart presentation style
type ViewMode string

const (
	ViewModeTwoD   ViewMode = "2d"
	ViewModeThreeD ViewMode = "3d"
)

// String returns the string representation
func (m ViewMode) String() string {
	return string(m)
}

// IsValid checks if the view mode is valid
func (m ViewMode) IsValid() bool {
	switch m {
	case ViewModeTwoD, ViewModeThreeD:
		return true
	default:
		return false
	}
}

// Toggle returns the other view mode
func (m ViewMode) Toggle() ViewMode {
	if m == ViewModeThreeD {
		return ViewModeTwoD
	}
	return ViewModeThreeD
}

// ParseViewMode parses "2d" or "3d" (case sensitive, as accepted by the CLI)
func ParseViewMode(s string) (ViewMode, error) {
	mode := ViewMode(s)
	if !mode.IsValid() {
		return "", goerr.New("invalid view mode", goerr.V("mode", s))
	}
	return mode, nil
}

// Dialect represents the SQL dialect of the data store
type Dialect string

const (
	DialectMySQL  Dialect = "mysql"
	DialectSQLite Dialect = "sqlite"
)

// String returns the string representation
func (d Dialect) String() string {
	return string(d)
}

// IsValid checks if the dialect is supported
func (d Dialect) IsValid() bool {
	switch d {
	case DialectMySQL, DialectSQLite:
		return true
	default:
		return false
	}
}

// SurfaceFormat represents the encoding a drawing surface accepts
type SurfaceFormat string

const (
	SurfaceFormatHTML SurfaceFormat = "html"
	SurfaceFormatPNG  SurfaceFormat = "png"
	SurfaceFormatSVG  SurfaceFormat = "svg"
)

// String returns the string representation
func (f SurfaceFormat) String() string {
	return string(f)
}

// IsValid checks if the surface format is supported
func (f SurfaceFormat) IsValid() bool {
	switch f {
	case SurfaceFormatHTML, SurfaceFormatPNG, SurfaceFormatSVG:
		return true
	default:
		return false
	}
}

// ContentType returns the HTTP content type for the format
func (f SurfaceFormat) ContentType() string {
	switch f {
	case SurfaceFormatPNG:
		return "image/png"
	case SurfaceFormatSVG:
		return "image/svg+xml"
	default:
		return "text/html; charset=utf-8"
	}
}

// ExportFormat represents the file format of an export
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
)

// String returns the string representation
func (f ExportFormat) String() string {
	return string(f)
}

// IsValid checks if the export format is supported
func (f ExportFormat) IsValid() bool {
	switch f {
	case ExportFormatCSV, ExportFormatXLSX:
		return true
	default:
		return false
	}
}
