package usecase

import (
	"slices"
	"strings"

	"github.com/secmon-lab/headcount/pkg/domain/model"
	"github.com/secmon-lab/headcount/pkg/domain/types"
)

// BuildSeries groups aggregate rows into one series per department.
//
// Points are sorted by (year, month); rows repeating a (year, month) for the
// same department are merged by summing their counts. Departments without a
// color receive one from colors, which is updated in place and keeps that
// color for later calls. Series are ordered by department ID, and a
// department with no rows produces no series.
func BuildSeries(rows []*model.EmploymentCountRecord, colors *model.ColorAssignment) []*model.Series {
	byDept := make(map[types.DepartmentID]*model.Series)
	for _, row := range rows {
		if row == nil {
			continue
		}
		s, ok := byDept[row.DepartmentID]
		if !ok {
			s = &model.Series{
				DepartmentID:   row.DepartmentID,
				DepartmentName: row.DepartmentName,
			}
			byDept[row.DepartmentID] = s
		}
		if s.DepartmentName == "" {
			s.DepartmentName = row.DepartmentName
		}
		s.Points = append(s.Points, model.Point{Year: row.Year, Month: row.Month, Count: row.Count})
	}

	series := make([]*model.Series, 0, len(byDept))
	for _, s := range byDept {
		s.Points = mergePoints(s.Points)
		series = append(series, s)
	}
	slices.SortFunc(series, func(a, b *model.Series) int {
		return strings.Compare(a.DepartmentID.String(), b.DepartmentID.String())
	})

	// Assign colors in ID order so that a fresh session hands out the palette deterministically
	for _, s := range series {
		s.Color = colors.Assign(s.DepartmentID)
	}

	return series
}

func mergePoints(points []model.Point) []model.Point {
	slices.SortStableFunc(points, func(a, b model.Point) int {
		return a.Key() - b.Key()
	})

	merged := points[:0]
	for _, p := range points {
		if n := len(merged); n > 0 && merged[n-1].Key() == p.Key() {
			merged[n-1].Count += p.Count
			continue
		}
		merged = append(merged, p)
	}
	return merged
}
