package repository

import (
	"database/sql"

	"github.com/secmon-lab/headcount/pkg/domain/types"
)

// NewSQLFromDB wraps an already opened pool
func NewSQLFromDB(db *sql.DB, dialect types.Dialect) *SQL {
	return &SQL{db: db, dialect: dialect}
}
