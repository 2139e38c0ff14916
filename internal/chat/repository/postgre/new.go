package postgre

import (
	"database/sql"

	pkgLog "edupal/pkg/log"
)

// Repository implements the conversation and student-record repositories on
// PostgreSQL.
type Repository struct {
	l  pkgLog.Logger
	db *sql.DB
}

// New creates a PostgreSQL-backed repository.
func New(l pkgLog.Logger, db *sql.DB) *Repository {
	return &Repository{l: l, db: db}
}
