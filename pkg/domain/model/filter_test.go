package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/headcount/pkg/domain/model"
	"github.com/secmon-lab/headcount/pkg/domain/types"
)

func TestParseDate(t *testing.T) {
	d, err := model.ParseDate("2020-01-31")
	gt.NoError(t, err)
	gt.Equal(t, d, time.Date(2020, time.January, 31, 0, 0, 0, 0, time.UTC))

	d, err = model.ParseDate("  ")
	gt.NoError(t, err)
	gt.True(t, d.IsZero())

	_, err = model.ParseDate("2020-13-01")
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, model.ErrTagInvalidFilter))
}

func TestDateRange_Validate(t *testing.T) {
	jan := time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC)
	jun := time.Date(2021, time.June, 1, 0, 0, 0, 0, time.UTC)

	gt.NoError(t, model.NewDateRange(jan, jun).Validate())
	gt.NoError(t, model.NewDateRange(jan, jan).Validate())
	gt.NoError(t, model.NewDateRange(time.Time{}, jan).Validate())
	gt.NoError(t, model.NewDateRange(jun, time.Time{}).Validate())
	gt.NoError(t, model.DateRange{}.Validate())

	err := model.NewDateRange(jun, jan).Validate()
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, model.ErrTagInvalidFilter))
}

func TestNewDateRange_TruncatesTime(t *testing.T) {
	r := model.NewDateRange(
		time.Date(2021, time.June, 1, 18, 0, 0, 0, time.UTC),
		time.Date(2021, time.June, 1, 3, 0, 0, 0, time.UTC),
	)
	gt.NoError(t, r.Validate())
	gt.Equal(t, model.FormatDate(r.Start), "2021-06-01")
}

func TestDepartmentSelector(t *testing.T) {
	t.Run("zero value selects all", func(t *testing.T) {
		var sel model.DepartmentSelector
		gt.True(t, sel.IsAll())
		gt.True(t, sel.Contains("d001"))
		gt.Equal(t, len(sel.IDs()), 0)
		gt.Equal(t, sel.String(), "all")
	})

	t.Run("single", func(t *testing.T) {
		sel := model.SingleDepartment("d002")
		gt.Equal(t, sel.Kind(), model.SelectOne)
		gt.True(t, sel.Contains("d002"))
		gt.False(t, sel.Contains("d001"))
		gt.Equal(t, sel.String(), "d002")
	})

	t.Run("set is sorted and deduplicated", func(t *testing.T) {
		sel := model.DepartmentSet("d003", "d001", "d003")
		gt.Equal(t, sel.IDs(), []types.DepartmentID{"d001", "d003"})
		gt.Equal(t, sel.String(), "{d001,d003}")
		gt.False(t, sel.IsEmpty())
	})

	t.Run("empty set selects nothing", func(t *testing.T) {
		sel := model.DepartmentSet()
		gt.True(t, sel.IsEmpty())
		gt.False(t, sel.IsAll())
		gt.False(t, sel.Contains("d001"))
	})

	t.Run("with and without", func(t *testing.T) {
		sel := model.DepartmentSet("d001").With("d002").Without("d001")
		gt.Equal(t, sel.IDs(), []types.DepartmentID{"d002"})
		gt.True(t, model.AllDepartments().With("d001").IsAll())
	})

	t.Run("blank identifier is invalid", func(t *testing.T) {
		err := model.DepartmentSet("d001", "").Validate()
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagInvalidFilter))
	})
}

func TestFilterState_Default(t *testing.T) {
	f := model.DefaultFilterState()
	gt.True(t, f.Departments.IsAll())
	gt.False(t, f.DateRange.HasStart())
	gt.False(t, f.DateRange.HasEnd())
	gt.NoError(t, f.Validate())
}
