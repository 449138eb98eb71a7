package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/headcount/pkg/domain/model"
	"github.com/secmon-lab/headcount/pkg/domain/types"
)

func TestChartConfig_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		config  model.ChartConfig
		wantErr bool
	}{
		{
			name:   "default",
			config: *model.DefaultChartConfig(),
		},
		{
			name: "palette and department colors",
			config: model.ChartConfig{
				Palette:     []string{"#112233", "445566"},
				Departments: map[string]string{"d001": "#ff0000"},
				Seed:        3,
			},
		},
		{
			name:    "invalid palette color",
			config:  model.ChartConfig{Palette: []string{"#12345"}},
			wantErr: true,
		},
		{
			name:    "invalid department color",
			config:  model.ChartConfig{Departments: map[string]string{"d001": "red"}},
			wantErr: true,
		},
		{
			name:    "empty department ID",
			config:  model.ChartConfig{Departments: map[string]string{"": "#ff0000"}},
			wantErr: true,
		},
		{
			name:    "negative image size",
			config:  model.ChartConfig{Image: model.ImageSize{Width: -1}},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.Validate()
			if tc.wantErr {
				gt.Error(t, err)
			} else {
				gt.NoError(t, err)
			}
		})
	}
}

func TestChartConfig_ImageSizeOrDefault(t *testing.T) {
	cfg := model.ChartConfig{Image: model.ImageSize{Width: 800}}
	gt.Equal(t, cfg.ImageSizeOrDefault(), model.ImageSize{Width: 800, Height: model.DefaultImageHeight})
}

func TestChartConfig_NewColorAssignment(t *testing.T) {
	cfg := model.ChartConfig{
		Palette:     []string{"#112233", "#ff0000"},
		Departments: map[string]string{"d002": "#ff0000"},
	}
	colors := cfg.NewColorAssignment()

	pinned, ok := colors.Lookup("d002")
	gt.True(t, ok)
	gt.Equal(t, pinned, model.Color{R: 0xff})

	gt.Equal(t, colors.Assign("d001"), model.Color{R: 0x11, G: 0x22, B: 0x33})
	// The palette color already pinned to d002 is skipped
	gt.NotEqual(t, colors.Assign(types.DepartmentID("d003")), model.Color{R: 0xff})
}
