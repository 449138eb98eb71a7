package model

import (
	"log/slog"

	"github.com/secmon-lab/headcount/pkg/domain/types"
)

// Column names produced by the aggregate query, in scan order
var AggregateColumns = []string{"dept_no", "dept_name", "year", "month", "num_employees"}

// Query is a parameterized statement. Filter values live only in Args; the
// Statement contains positional "?" placeholders.
type Query struct {
	Dialect   types.Dialect
	Statement string
	Args      []any
	Columns   []string
}

// LogValue returns structured log value. Arguments are logged by count only.
func (q *Query) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("dialect", q.Dialect.String()),
		slog.String("statement", q.Statement),
		slog.Int("args", len(q.Args)),
	)
}
