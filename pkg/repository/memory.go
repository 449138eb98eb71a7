package repository

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/headcount/pkg/domain/model"
	"github.com/secmon-lab/headcount/pkg/domain/types"
)

// activeUntil is the to_date the employees database uses for open memberships
var activeUntil = time.Date(9999, time.January, 1, 0, 0, 0, 0, time.UTC)

// NewMemory creates an empty in-memory SQLite store. The data is lost on Close.
func NewMemory(ctx context.Context) (*SQL, error) {
	dsn := "file:headcount-" + uuid.NewString() + "?mode=memory&cache=shared&_pragma=foreign_keys(1)"

	s, err := NewSQL(ctx, types.DialectSQLite, dsn)
	if err != nil {
		return nil, err
	}

	keeper, err := s.db.Conn(ctx)
	if err != nil {
		_ = s.Close()
		return nil, goerr.Wrap(err, "failed to pin in-memory database", goerr.T(model.ErrTagConnection))
	}
	s.keeper = keeper

	return s, nil
}

// NewDemo creates an in-memory store filled with DemoDepartments and DemoMemberships
func NewDemo(ctx context.Context, now time.Time) (*SQL, error) {
	s, err := NewMemory(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.ImportDepartments(ctx, DemoDepartments()); err != nil {
		_ = s.Close()
		return nil, goerr.Wrap(err, "failed to import demo departments")
	}
	if err := s.ImportMemberships(ctx, DemoMemberships(now, 1)); err != nil {
		_ = s.Close()
		return nil, goerr.Wrap(err, "failed to import demo memberships")
	}
	return s, nil
}

// DemoDepartments returns the departments of the MySQL employees sample database
func DemoDepartments() []*model.Department {
	return []*model.Department{
		{ID: "d001", Name: "Marketing"},
		{ID: "d002", Name: "Finance"},
		{ID: "d003", Name: "Human Resources"},
		{ID: "d004", Name: "Production"},
		{ID: "d005", Name: "Development"},
		{ID: "d006", Name: "Quality Management"},
		{ID: "d007", Name: "Sales"},
		{ID: "d008", Name: "Research"},
		{ID: "d009", Name: "Customer Service"},
	}
}

// DemoMemberships generates a deterministic set of memberships over the five
// years before now. About one in five has already ended.
func DemoMemberships(now time.Time, seed uint64) []*model.Membership {
	rnd := rand.New(rand.NewPCG(seed, seed+1))
	departments := DemoDepartments()

	start := time.Date(now.Year()-5, time.January, 1, 0, 0, 0, 0, time.UTC)
	days := int(now.Sub(start).Hours() / 24)
	if days <= 0 {
		return nil
	}

	// Larger departments get proportionally more hires
	weights := []int{3, 2, 2, 9, 10, 3, 6, 2, 3}
	total := 0
	for _, w := range weights {
		total += w
	}

	const employees = 2000
	memberships := make([]*model.Membership, 0, employees)
	for i := range employees {
		pick := rnd.IntN(total)
		dept := departments[len(departments)-1]
		for j, w := range weights {
			if pick < w {
				dept = departments[j]
				break
			}
			pick -= w
		}

		from := start.AddDate(0, 0, rnd.IntN(days))
		to := activeUntil
		if rnd.IntN(5) == 0 {
			to = from.AddDate(0, 0, 30+rnd.IntN(700))
		}

		memberships = append(memberships, &model.Membership{
			EmployeeNo:   10001 + i,
			DepartmentID: dept.ID,
			From:         from,
			To:           to,
		})
	}
	return memberships
}
