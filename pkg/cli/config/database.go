package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/headcount/pkg/domain/types"
	"github.com/secmon-lab/headcount/pkg/repository"
	"github.com/urfave/cli/v3"
)

// Database holds data store configuration
type Database struct {
	Dialect string
	DSN     string
}

// Flags returns CLI flags for Database configuration
func (d *Database) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "db-dialect",
			Usage:       "Database dialect (mysql, sqlite)",
			Category:    "Database",
			Value:       types.DialectMySQL.String(),
			Sources:     cli.EnvVars("HEADCOUNT_DB_DIALECT"),
			Destination: &d.Dialect,
		},
		&cli.StringFlag{
			Name:        "db-dsn",
			Usage:       "Data source name, e.g. user:pass@tcp(localhost:3306)/employees or a SQLite file path. Demo data in memory if empty",
			Category:    "Database",
			Sources:     cli.EnvVars("HEADCOUNT_DB_DSN"),
			Destination: &d.DSN,
		},
	}
}

// Configure opens the data store. Without a DSN an in-memory SQLite store
// with demo data is used instead.
func (d *Database) Configure(ctx context.Context) (*repository.SQL, error) {
	if !d.IsConfigured() {
		ctxlog.From(ctx).Warn("Using in-memory demo database. Set --db-dsn to read the employees database")
		return repository.NewDemo(ctx, time.Now())
	}

	dialect := types.Dialect(d.Dialect)
	if !dialect.IsValid() {
		return nil, goerr.New("invalid database dialect", goerr.V("dialect", d.Dialect))
	}

	repo, err := repository.NewSQL(ctx, dialect, d.DSN)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open database",
			goerr.V("dialect", d.Dialect),
			goerr.V("dsn", d.maskedDSN()),
		)
	}
	return repo, nil
}

// IsConfigured reports whether a DSN is set
func (d *Database) IsConfigured() bool {
	return d.DSN != ""
}

// PlannerDialect returns the dialect queries must be planned for
func (d *Database) PlannerDialect() types.Dialect {
	if !d.IsConfigured() {
		return types.DialectSQLite
	}
	return types.Dialect(d.Dialect)
}

// maskedDSN hides the MySQL password
func (d Database) maskedDSN() string {
	if types.Dialect(d.Dialect) != types.DialectMySQL || d.DSN == "" {
		return d.DSN
	}
	cfg, err := mysql.ParseDSN(d.DSN)
	if err != nil {
		return "(unparsable)"
	}
	if cfg.Passwd != "" {
		cfg.Passwd = "****"
	}
	return cfg.FormatDSN()
}

// LogValue returns structured log value
func (d Database) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("dialect", d.Dialect),
		slog.String("dsn", d.maskedDSN()),
	)
}
