package types_test

import (
	"testing"

	"github.com/secmon-lab/headcount/pkg/domain/types"
)

func TestViewModeValidation(t *testing.T) {
	tests := []struct {
		name     string
		mode     types.ViewMode
		expected bool
	}{
		{"Valid 2d", types.ViewModeTwoD, true},
		{"Valid 3d", types.ViewModeThreeD, true},
		{"Invalid empty", types.ViewMode(""), false},
		{"Invalid uppercase", types.ViewMode("2D"), false},
		{"Invalid unknown", types.ViewMode("4d"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.mode.IsValid()
			if result != tt.expected {
				t.Errorf("ViewMode(%q).IsValid() = %v, want %v", tt.mode, result, tt.expected)
			}
		})
	}
}

func TestViewModeToggle(t *testing.T) {
	if got := types.ViewModeTwoD.Toggle(); got != types.ViewModeThreeD {
		t.Errorf("2d.Toggle() = %q, want 3d", got)
	}
	if got := types.ViewModeTwoD.Toggle().Toggle(); got != types.ViewModeTwoD {
		t.Errorf("2d.Toggle().Toggle() = %q, want 2d", got)
	}
}

func TestParseViewMode(t *testing.T) {
	if _, err := types.ParseViewMode("3d"); err != nil {
		t.Errorf("ParseViewMode(3d) returned error: %v", err)
	}
	if _, err := types.ParseViewMode("bar"); err == nil {
		t.Error("ParseViewMode(bar) should fail")
	}
}

func TestSurfaceFormat(t *testing.T) {
	tests := []struct {
		format      types.SurfaceFormat
		valid       bool
		contentType string
	}{
		{types.SurfaceFormatHTML, true, "text/html; charset=utf-8"},
		{types.SurfaceFormatPNG, true, "image/png"},
		{types.SurfaceFormatSVG, true, "image/svg+xml"},
		{types.SurfaceFormat("gif"), false, "text/html; charset=utf-8"},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			if got := tt.format.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
			if got := tt.format.ContentType(); got != tt.contentType {
				t.Errorf("ContentType() = %q, want %q", got, tt.contentType)
			}
		})
	}
}

func TestDialectAndExportFormat(t *testing.T) {
	if !types.DialectMySQL.IsValid() || !types.DialectSQLite.IsValid() {
		t.Error("mysql and sqlite must be valid dialects")
	}
	if types.Dialect("postgres").IsValid() {
		t.Error("postgres is not supported")
	}
	if !types.ExportFormatCSV.IsValid() || !types.ExportFormatXLSX.IsValid() {
		t.Error("csv and xlsx must be valid export formats")
	}
	if types.ExportFormat("pdf").IsValid() {
		t.Error("pdf is not supported")
	}
}

func TestNewRunID(t *testing.T) {
	a := types.NewRunID()
	b := types.NewRunID()
	if a == "" || a == b {
		t.Errorf("run IDs must be unique and non-empty: %q, %q", a, b)
	}
}
