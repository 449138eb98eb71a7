package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	_ "embed"
	"errors"
	"slices"

	"github.com/go-sql-driver/mysql"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/headcount/pkg/domain/interfaces"
	"github.com/secmon-lab/headcount/pkg/domain/model"
	"github.com/secmon-lab/headcount/pkg/domain/types"
	_ "modernc.org/sqlite"
)

//go:embed schema/sqlite.sql
var sqliteSchema string

var _ interfaces.Repository = (*SQL)(nil)

// SQL implements Repository on database/sql. It reads the "employees" schema:
// departments(dept_no, dept_name) and dept_emp(emp_no, dept_no, from_date, to_date).
type SQL struct {
	db      *sql.DB
	dialect types.Dialect

	// keeper pins a connection so that an in-memory database outlives idle pool connections
	keeper *sql.Conn
}

func driverName(dialect types.Dialect) string {
	if dialect == types.DialectSQLite {
		return "sqlite"
	}
	return "mysql"
}

// NewSQL opens a store and checks that it is reachable. SQLite stores get the
// schema applied; MySQL stores are expected to hold the employees database.
func NewSQL(ctx context.Context, dialect types.Dialect, dsn string) (*SQL, error) {
	if !dialect.IsValid() {
		return nil, goerr.New("unsupported SQL dialect", goerr.V("dialect", dialect))
	}
	if dsn == "" {
		return nil, goerr.New("DSN is required", goerr.V("dialect", dialect))
	}

	db, err := sql.Open(driverName(dialect), dsn)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open database",
			goerr.V("dialect", dialect),
			goerr.T(model.ErrTagConnection))
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(err, "database is unreachable",
			goerr.V("dialect", dialect),
			goerr.T(model.ErrTagConnection))
	}

	s := &SQL{db: db, dialect: dialect}
	if dialect == types.DialectSQLite {
		if err := s.applySchema(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	ctxlog.From(ctx).Info("SQL repository initialized", "dialect", dialect)
	return s, nil
}

func (s *SQL) applySchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteSchema); err != nil {
		return goerr.Wrap(err, "failed to apply schema", goerr.T(model.ErrTagQuery))
	}
	return nil
}

// Dialect returns the SQL dialect of the store
func (s *SQL) Dialect() types.Dialect {
	return s.dialect
}

// conn acquires a dedicated connection for one operation. The caller must close it.
func (s *SQL) conn(ctx context.Context) (*sql.Conn, error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to acquire connection",
			goerr.V("dialect", s.dialect),
			goerr.T(model.ErrTagConnection))
	}
	return conn, nil
}

// failureTag classifies a failed query. A connection the server dropped is a
// connection failure, not a problem with the statement.
func failureTag(err error) goerr.Option {
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, mysql.ErrInvalidConn) {
		return goerr.T(model.ErrTagConnection)
	}
	return goerr.T(model.ErrTagQuery)
}

// Execute runs an aggregate query on its own connection, which is released on every path
func (s *SQL) Execute(ctx context.Context, query *model.Query) ([]*model.EmploymentCountRecord, error) {
	if query == nil {
		return nil, goerr.New("query is nil", goerr.T(model.ErrTagQuery))
	}
	if query.Dialect != s.dialect {
		return nil, goerr.New("query was planned for another dialect",
			goerr.V("query", query.Dialect),
			goerr.V("store", s.dialect),
			goerr.T(model.ErrTagQuery))
	}

	conn, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, query.Statement, query.Args...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to execute aggregate query",
			goerr.V("query", query),
			failureTag(err))
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read result columns", goerr.T(model.ErrTagQuery))
	}
	if len(query.Columns) > 0 && !slices.Equal(columns, query.Columns) {
		return nil, goerr.New("unexpected result columns",
			goerr.V("expected", query.Columns),
			goerr.V("actual", columns),
			goerr.T(model.ErrTagQuery))
	}

	var records []*model.EmploymentCountRecord
	for rows.Next() {
		var (
			deptNo, deptName    string
			year, month, counts int
		)
		if err := rows.Scan(&deptNo, &deptName, &year, &month, &counts); err != nil {
			return nil, goerr.Wrap(err, "failed to scan aggregate row", goerr.T(model.ErrTagQuery))
		}

		record := &model.EmploymentCountRecord{
			DepartmentID:   types.DepartmentID(deptNo),
			DepartmentName: types.DepartmentName(deptName),
			Year:           year,
			Month:          month,
			Count:          counts,
		}
		if err := record.Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid aggregate row", goerr.T(model.ErrTagQuery))
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate aggregate rows", failureTag(err))
	}

	return records, nil
}

// ListDepartments returns every department ordered by ID
func (s *SQL) ListDepartments(ctx context.Context) ([]*model.Department, error) {
	conn, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, "SELECT dept_no, dept_name FROM departments ORDER BY dept_no")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list departments", failureTag(err))
	}
	defer rows.Close()

	var departments []*model.Department
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, goerr.Wrap(err, "failed to scan department", goerr.T(model.ErrTagQuery))
		}
		departments = append(departments, &model.Department{
			ID:   types.DepartmentID(id),
			Name: types.DepartmentName(name),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate departments", failureTag(err))
	}

	return departments, nil
}

// ImportDepartments inserts or renames departments
func (s *SQL) ImportDepartments(ctx context.Context, departments []*model.Department) error {
	stmt := "INSERT INTO departments (dept_no, dept_name) VALUES (?, ?) " +
		"ON CONFLICT (dept_no) DO UPDATE SET dept_name = excluded.dept_name"
	if s.dialect == types.DialectMySQL {
		stmt = "INSERT INTO departments (dept_no, dept_name) VALUES (?, ?) " +
			"ON DUPLICATE KEY UPDATE dept_name = VALUES(dept_name)"
	}

	return s.inTx(ctx, stmt, len(departments), func(i int) ([]any, error) {
		d := departments[i]
		if d == nil || d.ID == "" {
			return nil, goerr.New("department ID is required", goerr.V("index", i))
		}
		return []any{d.ID.String(), d.Name.String()}, nil
	})
}

// ImportMemberships inserts membership intervals
func (s *SQL) ImportMemberships(ctx context.Context, memberships []*model.Membership) error {
	stmt := "INSERT INTO dept_emp (emp_no, dept_no, from_date, to_date) VALUES (?, ?, ?, ?)"

	return s.inTx(ctx, stmt, len(memberships), func(i int) ([]any, error) {
		m := memberships[i]
		if m == nil {
			return nil, goerr.New("membership is nil", goerr.V("index", i))
		}
		if err := m.Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid membership", goerr.V("index", i))
		}
		return []any{m.EmployeeNo, m.DepartmentID.String(), model.FormatDate(m.From), model.FormatDate(m.To)}, nil
	})
}

func (s *SQL) inTx(ctx context.Context, stmt string, n int, argsAt func(i int) ([]any, error)) error {
	conn, err := s.conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to begin transaction", goerr.T(model.ErrTagQuery))
	}

	prepared, err := tx.PrepareContext(ctx, stmt)
	if err != nil {
		_ = tx.Rollback()
		return goerr.Wrap(err, "failed to prepare statement", goerr.T(model.ErrTagQuery))
	}
	defer prepared.Close()

	for i := range n {
		args, err := argsAt(i)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
		if _, err := prepared.ExecContext(ctx, args...); err != nil {
			_ = tx.Rollback()
			return goerr.Wrap(err, "failed to insert row",
				goerr.V("index", i),
				goerr.T(model.ErrTagQuery))
		}
	}

	if err := tx.Commit(); err != nil {
		return goerr.Wrap(err, "failed to commit transaction", goerr.T(model.ErrTagQuery))
	}
	return nil
}

// Close closes the database handle
func (s *SQL) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	if s.keeper != nil {
		_ = s.keeper.Close()
	}
	return s.db.Close()
}
