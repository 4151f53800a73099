package repository

import (
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
)

// Repository wraps the shared database handle. Every feature repository is
// built on top of it rather than holding its own connection.
type Repository struct {
	DB            *sql.DB
	GoquDBWrapper *goqu.Database
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		DB:            db,
		GoquDBWrapper: goqu.New("postgres", db),
	}
}

// Ping exposes a health-check for the process supervisor.
func (r *Repository) Ping() error {
	return r.DB.Ping()
}

// RunTx runs fn inside a transaction on this repository's handle. Services
// depend on this method through their own small interfaces so transactional
// flows stay mockable.
func (r *Repository) RunTx(fn func(tx *goqu.TxDatabase) error) error {
	return WithTransaction(r.GoquDBWrapper, fn)
}

// WithTransaction runs fn inside a single transaction. Every multi-row stock
// mutation (receive, transfer completion, waste recording) goes through here
// so a failure partway leaves no partial trace.
func WithTransaction(db *goqu.Database, fn func(tx *goqu.TxDatabase) error) (err error) {
	rawTx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	tx := goqu.NewTx("postgres", rawTx)
	defer func() {
		if p := recover(); p != nil {
			rawTx.Rollback()
			panic(p)
		} else if err != nil {
			rawTx.Rollback()
		} else {
			err = rawTx.Commit()
		}
	}()

	err = fn(tx)
	return
}
