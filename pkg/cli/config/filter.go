package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/headcount/pkg/domain/model"
	"github.com/secmon-lab/headcount/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Filter holds the filter of one-shot commands
type Filter struct {
	Start       string
	End         string
	Departments []string
}

// Flags returns CLI flags for Filter configuration
func (f *Filter) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "start",
			Usage:       "First day of the date range (YYYY-MM-DD), open if empty",
			Category:    "Filter",
			Destination: &f.Start,
		},
		&cli.StringFlag{
			Name:        "end",
			Usage:       "Last day of the date range (YYYY-MM-DD), open if empty",
			Category:    "Filter",
			Destination: &f.End,
		},
		&cli.StringSliceFlag{
			Name:        "department",
			Aliases:     []string{"d"},
			Usage:       "Department ID to include, repeatable. All departments if omitted",
			Category:    "Filter",
			Destination: &f.Departments,
		},
	}
}

// Configure builds and validates the filter
func (f *Filter) Configure() (model.FilterState, error) {
	start, err := model.ParseDate(f.Start)
	if err != nil {
		return model.FilterState{}, goerr.Wrap(err, "invalid --start")
	}
	end, err := model.ParseDate(f.End)
	if err != nil {
		return model.FilterState{}, goerr.Wrap(err, "invalid --end")
	}

	filter := model.FilterState{
		DateRange:   model.NewDateRange(start, end),
		Departments: f.selector(),
	}
	if err := filter.Validate(); err != nil {
		return model.FilterState{}, err
	}
	return filter, nil
}

func (f *Filter) selector() model.DepartmentSelector {
	switch len(f.Departments) {
	case 0:
		return model.AllDepartments()
	case 1:
		return model.SingleDepartment(types.DepartmentID(f.Departments[0]))
	default:
		ids := make([]types.DepartmentID, len(f.Departments))
		for i, id := range f.Departments {
			ids[i] = types.DepartmentID(id)
		}
		return model.DepartmentSet(ids...)
	}
}

// LogValue returns structured log value
func (f Filter) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("start", f.Start),
		slog.String("end", f.End),
		slog.Any("departments", f.Departments),
	)
}
