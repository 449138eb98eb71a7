package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/headcount/pkg/domain/types"
)

// Department is one row of the department lookup table
type Department struct {
	ID   types.DepartmentID   `json:"id"`
	Name types.DepartmentName `json:"name"`
}

// Membership records that an employee belonged to a department between two dates
type Membership struct {
	EmployeeNo   int
	DepartmentID types.DepartmentID
	From         time.Time
	To           time.Time
}

// Validate validates the membership interval
func (m *Membership) Validate() error {
	if m.DepartmentID == "" {
		return goerr.New("department ID is required")
	}
	if m.From.IsZero() || m.To.IsZero() {
		return goerr.New("membership interval requires both dates",
			goerr.V("employee", m.EmployeeNo))
	}
	if m.From.After(m.To) {
		return goerr.New("membership starts after it ends",
			goerr.V("employee", m.EmployeeNo),
			goerr.V("from", FormatDate(m.From)),
			goerr.V("to", FormatDate(m.To)))
	}
	return nil
}

// EmploymentCountRecord is one aggregated row: the number of memberships of a
// department that started in a given year and month
type EmploymentCountRecord struct {
	DepartmentID   types.DepartmentID
	DepartmentName types.DepartmentName
	Year           int
	Month          int
	Count          int
}

// Validate checks the ranges an aggregate row must respect
func (r *EmploymentCountRecord) Validate() error {
	if r.DepartmentID == "" {
		return goerr.New("aggregate row has no department")
	}
	if r.Month < 1 || r.Month > 12 {
		return goerr.New("aggregate row month out of range",
			goerr.V("department", r.DepartmentID),
			goerr.V("month", r.Month))
	}
	if r.Count < 0 {
		return goerr.New("aggregate row has negative count",
			goerr.V("department", r.DepartmentID),
			goerr.V("count", r.Count))
	}
	return nil
}
