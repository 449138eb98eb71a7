package usecase_test

import (
	"math/rand/v2"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/headcount/pkg/domain/model"
	"github.com/secmon-lab/headcount/pkg/domain/types"
	"github.com/secmon-lab/headcount/pkg/usecase"
)

func record(dept types.DepartmentID, year, month, count int) *model.EmploymentCountRecord {
	return &model.EmploymentCountRecord{
		DepartmentID:   dept,
		DepartmentName: types.DepartmentName("name of " + dept),
		Year:           year,
		Month:          month,
		Count:          count,
	}
}

func TestBuildSeries_SingleDepartment(t *testing.T) {
	rows := []*model.EmploymentCountRecord{
		record("d001", 2020, 3, 7),
		record("d001", 2020, 1, 5),
	}

	series := usecase.BuildSeries(rows, model.NewColorAssignment(nil, 1))
	if len(series) != 1 {
		t.Fatalf("expected 1 series, got %d", len(series))
	}
	gt.Equal(t, series[0].DepartmentID, types.DepartmentID("d001"))
	gt.Equal(t, series[0].Points, []model.Point{
		{Year: 2020, Month: 1, Count: 5},
		{Year: 2020, Month: 3, Count: 7},
	})
}

func TestBuildSeries_TwoDepartments(t *testing.T) {
	rows := []*model.EmploymentCountRecord{
		record("d002", 2020, 2, 1),
		record("d001", 2020, 1, 5),
		record("d002", 2020, 1, 3),
	}

	series := usecase.BuildSeries(rows, model.NewColorAssignment(nil, 1))
	if len(series) != 2 {
		t.Fatalf("expected 2 series, got %d", len(series))
	}
	gt.Equal(t, series[0].DepartmentID, types.DepartmentID("d001"))
	gt.Equal(t, series[1].DepartmentID, types.DepartmentID("d002"))
	gt.NotEqual(t, series[0].Color, series[1].Color)
	gt.Equal(t, series[0].Color, model.DefaultPalette[0])
	gt.Equal(t, series[1].Color, model.DefaultPalette[1])
}

func TestBuildSeries_MergesDuplicateKeys(t *testing.T) {
	rows := []*model.EmploymentCountRecord{
		record("d001", 2020, 1, 2),
		record("d001", 2020, 1, 3),
		record("d001", 2019, 12, 1),
	}

	series := usecase.BuildSeries(rows, model.NewColorAssignment(nil, 1))
	gt.Equal(t, series[0].Points, []model.Point{
		{Year: 2019, Month: 12, Count: 1},
		{Year: 2020, Month: 1, Count: 5},
	})
}

func TestBuildSeries_Empty(t *testing.T) {
	colors := model.NewColorAssignment(nil, 1)
	gt.A(t, usecase.BuildSeries(nil, colors)).Length(0)
	gt.Equal(t, colors.Len(), 0)
}

func TestBuildSeries_OrderedWithoutDuplicates(t *testing.T) {
	rnd := rand.New(rand.NewPCG(42, 42))
	departments := []types.DepartmentID{"d001", "d002", "d003", "d004"}

	for range 50 {
		var rows []*model.EmploymentCountRecord
		for range rnd.IntN(60) {
			rows = append(rows, record(
				departments[rnd.IntN(len(departments))],
				2015+rnd.IntN(10),
				1+rnd.IntN(12),
				rnd.IntN(100),
			))
		}

		total := 0
		for _, r := range rows {
			total += r.Count
		}

		sum := 0
		for _, s := range usecase.BuildSeries(rows, model.NewColorAssignment(nil, 1)) {
			for i, p := range s.Points {
				sum += p.Count
				if i > 0 {
					gt.True(t, s.Points[i-1].Key() < p.Key())
				}
			}
		}
		gt.Equal(t, sum, total)
	}
}

func TestBuildSeries_ColorIsStable(t *testing.T) {
	colors := model.NewColorAssignment(nil, 7)

	first := usecase.BuildSeries([]*model.EmploymentCountRecord{record("d005", 2020, 1, 1)}, colors)
	// Another department appears first in the second call
	second := usecase.BuildSeries([]*model.EmploymentCountRecord{
		record("d001", 2020, 1, 1),
		record("d005", 2020, 2, 1),
	}, colors)

	gt.Equal(t, second[1].DepartmentID, types.DepartmentID("d005"))
	gt.Equal(t, second[1].Color, first[0].Color)
	gt.NotEqual(t, second[0].Color, first[0].Color)
}

func TestBuildSeries_BeyondPalette(t *testing.T) {
	colors := model.NewColorAssignment([]model.Color{{R: 1, G: 2, B: 3}}, 7)

	var rows []*model.EmploymentCountRecord
	for _, id := range []types.DepartmentID{"d001", "d002", "d003", "d004", "d005"} {
		rows = append(rows, record(id, 2020, 1, 1))
	}

	series := usecase.BuildSeries(rows, colors)
	seen := map[model.Color]bool{}
	for _, s := range series {
		gt.False(t, seen[s.Color])
		seen[s.Color] = true
	}
	gt.Equal(t, series[0].Color, model.Color{R: 1, G: 2, B: 3})
}
