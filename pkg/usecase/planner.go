package usecase

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/headcount/pkg/domain/model"
	"github.com/secmon-lab/headcount/pkg/domain/types"
)

// Planner translates a FilterState into a parameterized aggregate query.
// Statements are assembled only from the fixed fragments below and "?"
// placeholders; every filter value is passed in Query.Args.
type Planner struct {
	dialect types.Dialect
	now     func() time.Time
}

// PlannerOption configures a Planner
type PlannerOption func(*Planner)

// WithClock sets the clock used to decide which memberships are still active
func WithClock(now func() time.Time) PlannerOption {
	return func(p *Planner) {
		p.now = now
	}
}

// NewPlanner creates a Planner for the given dialect
func NewPlanner(dialect types.Dialect, opts ...PlannerOption) (*Planner, error) {
	if !dialect.IsValid() {
		return nil, goerr.New("unsupported SQL dialect", goerr.V("dialect", dialect))
	}

	p := &Planner{
		dialect: dialect,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Dialect returns the dialect the planner writes
func (p *Planner) Dialect() types.Dialect {
	return p.dialect
}

// Plan builds the aggregate query for filter. It fails with an
// invalid_filter error, without producing a query, when the range is inverted.
func (p *Planner) Plan(filter model.FilterState) (*model.Query, error) {
	if err := filter.Validate(); err != nil {
		return nil, goerr.Wrap(err, "cannot plan query for invalid filter",
			goerr.T(model.ErrTagInvalidFilter))
	}

	year, month := p.dateParts("de.from_date")

	var (
		where []string
		args  []any
	)

	// Memberships still active at evaluation time
	where = append(where, "de.to_date > ?")
	args = append(args, p.now().UTC().Format(model.DateLayout))

	if filter.DateRange.HasStart() {
		where = append(where, "de.from_date >= ?")
		args = append(args, model.FormatDate(filter.DateRange.Start))
	}
	if filter.DateRange.HasEnd() {
		where = append(where, "de.from_date <= ?")
		args = append(args, model.FormatDate(filter.DateRange.End))
	}

	switch sel := filter.Departments; sel.Kind() {
	case model.SelectOne:
		where = append(where, "de.dept_no = ?")
		args = append(args, sel.IDs()[0].String())

	case model.SelectSet:
		ids := sel.IDs()
		if len(ids) == 0 {
			// Nothing selected: keep the query valid but empty
			where = append(where, "1 = 0")
			break
		}
		where = append(where, "de.dept_no IN ("+placeholders(len(ids))+")")
		for _, id := range ids {
			args = append(args, id.String())
		}
	}

	var sb strings.Builder
	sb.WriteString("SELECT de.dept_no AS dept_no, d.dept_name AS dept_name, ")
	sb.WriteString(year + " AS year, ")
	sb.WriteString(month + " AS month, ")
	sb.WriteString("COUNT(de.emp_no) AS num_employees ")
	sb.WriteString("FROM dept_emp de JOIN departments d ON de.dept_no = d.dept_no ")
	sb.WriteString("WHERE " + strings.Join(where, " AND ") + " ")
	sb.WriteString("GROUP BY de.dept_no, d.dept_name, year, month ")
	sb.WriteString("ORDER BY de.dept_no, year, month")

	return &model.Query{
		Dialect:   p.dialect,
		Statement: sb.String(),
		Args:      args,
		Columns:   append([]string(nil), model.AggregateColumns...),
	}, nil
}

// DepartmentsQuery returns the statement enumerating departments
func (p *Planner) DepartmentsQuery() *model.Query {
	return &model.Query{
		Dialect:   p.dialect,
		Statement: "SELECT dept_no, dept_name FROM departments ORDER BY dept_no",
		Columns:   []string{"dept_no", "dept_name"},
	}
}

func (p *Planner) dateParts(column string) (year, month string) {
	switch p.dialect {
	case types.DialectSQLite:
		return "CAST(strftime('%Y', " + column + ") AS INTEGER)",
			"CAST(strftime('%m', " + column + ") AS INTEGER)"
	default:
		return "YEAR(" + column + ")", "MONTH(" + column + ")"
	}
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
