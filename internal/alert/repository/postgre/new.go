// Package postgres is the hosted-database adapter for the alert
// storage port, written against database/sql with hand-written SQL.
package postgres

import (
	"database/sql"

	"cscx-api/internal/alert/repository"
	pkgLog "cscx-api/pkg/log"
)

type implRepository struct {
	l  pkgLog.Logger
	db *sql.DB
}

// New creates a Postgres-backed repository.
func New(l pkgLog.Logger, db *sql.DB) repository.Repository {
	return &implRepository{
		l:  l,
		db: db,
	}
}
