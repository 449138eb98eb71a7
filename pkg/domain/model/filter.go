package model

import (
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/headcount/pkg/domain/types"
)

// DateLayout is the calendar date format used for input, query arguments and logs
const DateLayout = "2006-01-02"

// ParseDate parses a calendar date. An empty string returns the zero time (no bound).
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, goerr.Wrap(err, "invalid date",
			goerr.V("date", s),
			goerr.T(ErrTagInvalidFilter))
	}
	return d, nil
}

// FormatDate formats a calendar date, returning "" for an open bound
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// DateRange is an inclusive range of calendar dates. A zero Start or End leaves that side open.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange creates a date range truncated to calendar dates
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: truncateDate(start), End: truncateDate(end)}
}

func truncateDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// HasStart reports whether the range has a lower bound
func (r DateRange) HasStart() bool {
	return !r.Start.IsZero()
}

// HasEnd reports whether the range has an upper bound
func (r DateRange) HasEnd() bool {
	return !r.End.IsZero()
}

// Validate checks that start is not after end
func (r DateRange) Validate() error {
	if r.HasStart() && r.HasEnd() && r.Start.After(r.End) {
		return goerr.New("start date is after end date",
			goerr.V("start", FormatDate(r.Start)),
			goerr.V("end", FormatDate(r.End)),
			goerr.T(ErrTagInvalidFilter))
	}
	return nil
}

// LogValue returns structured log value
func (r DateRange) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("start", FormatDate(r.Start)),
		slog.String("end", FormatDate(r.End)),
	)
}

// SelectorKind distinguishes the forms of DepartmentSelector
type SelectorKind int

const (
	SelectAll SelectorKind = iota
	SelectOne
	SelectSet
)

// DepartmentSelector selects all departments, exactly one, or a set of them.
// The zero value selects all departments.
type DepartmentSelector struct {
	kind SelectorKind
	ids  []types.DepartmentID
}

// AllDepartments selects every department
func AllDepartments() DepartmentSelector {
	return DepartmentSelector{kind: SelectAll}
}

// SingleDepartment selects exactly one department
func SingleDepartment(id types.DepartmentID) DepartmentSelector {
	return DepartmentSelector{kind: SelectOne, ids: []types.DepartmentID{id}}
}

// DepartmentSet selects a set of departments. Duplicates are removed and the
// IDs are kept sorted. An empty set selects nothing.
func DepartmentSet(ids ...types.DepartmentID) DepartmentSelector {
	set := slices.Clone(ids)
	slices.Sort(set)
	return DepartmentSelector{kind: SelectSet, ids: slices.Compact(set)}
}

// Kind returns the selector form
func (s DepartmentSelector) Kind() SelectorKind {
	return s.kind
}

// IsAll reports whether every department is selected
func (s DepartmentSelector) IsAll() bool {
	return s.kind == SelectAll
}

// IsEmpty reports whether the selector selects nothing
func (s DepartmentSelector) IsEmpty() bool {
	return s.kind == SelectSet && len(s.ids) == 0
}

// IDs returns a copy of the selected department IDs (nil for All)
func (s DepartmentSelector) IDs() []types.DepartmentID {
	if s.kind == SelectAll {
		return nil
	}
	return slices.Clone(s.ids)
}

// Contains reports whether the department is selected
func (s DepartmentSelector) Contains(id types.DepartmentID) bool {
	if s.kind == SelectAll {
		return true
	}
	return slices.Contains(s.ids, id)
}

// With returns a set selector that also contains id. Selecting into All keeps All.
func (s DepartmentSelector) With(id types.DepartmentID) DepartmentSelector {
	if s.kind == SelectAll {
		return s
	}
	return DepartmentSet(append(s.IDs(), id)...)
}

// Without returns a set selector that no longer contains id
func (s DepartmentSelector) Without(id types.DepartmentID) DepartmentSelector {
	if s.kind == SelectAll {
		return s
	}
	ids := slices.DeleteFunc(s.IDs(), func(v types.DepartmentID) bool { return v == id })
	return DepartmentSet(ids...)
}

// Validate checks that no selected identifier is blank
func (s DepartmentSelector) Validate() error {
	for _, id := range s.ids {
		if strings.TrimSpace(id.String()) == "" {
			return goerr.New("department ID is empty", goerr.T(ErrTagInvalidFilter))
		}
	}
	return nil
}

// String returns a compact representation for logs
func (s DepartmentSelector) String() string {
	switch s.kind {
	case SelectAll:
		return "all"
	case SelectOne:
		return s.ids[0].String()
	default:
		parts := make([]string, len(s.ids))
		for i, id := range s.ids {
			parts[i] = id.String()
		}
		return "{" + strings.Join(parts, ",") + "}"
	}
}

// FilterState holds the validated user selections
type FilterState struct {
	DateRange   DateRange
	Departments DepartmentSelector
}

// DefaultFilterState returns the initial filter: all departments, no date bounds
func DefaultFilterState() FilterState {
	return FilterState{Departments: AllDepartments()}
}

// Validate validates the whole filter
func (f FilterState) Validate() error {
	if err := f.DateRange.Validate(); err != nil {
		return err
	}
	if err := f.Departments.Validate(); err != nil {
		return err
	}
	return nil
}

// LogValue returns structured log value
func (f FilterState) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("range", f.DateRange),
		slog.String("departments", f.Departments.String()),
	)
}
