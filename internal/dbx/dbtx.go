// Package dbx provides tiny DB abstractions shared by repositories:
// a query handle (DBTX) implemented by both *bun.DB and bun.Tx, helpers to
// open a bun database from a DSN, and a helper to run functions inside a
// transaction.
package dbx

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"
)

// DBTX is the query handle used by our repos.
// Both *bun.DB and bun.Tx satisfy this interface.
type DBTX = bun.IDB

// WithTx begins a transaction, runs fn with a transactional handle, and then
// commits on success or rolls back on error/panic. Panics are rethrown.
//
// Typical use:
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    // use tx instead of db
//	    _, err := tx.NewUpdate().Model(v).WherePK().Exec(ctx)
//	    return err
//	})
func WithTx(ctx context.Context, db *bun.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}
