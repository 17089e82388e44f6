// Package dbx holds the database plumbing the SkillSwap repositories share:
// the DBTX handle that lets one repository run on a pool or inside a
// transaction, WithTx for the multi-step swap and rating updates, and
// column and error helpers for PostgreSQL and SQLite.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is what a repository needs to run queries. *sql.DB and *sql.Tx both
// implement it, so the repository manager can hand out repositories bound
// to either.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx runs fn in a transaction on db. The transaction commits when fn
// returns nil and rolls back when fn fails or panics; a panic is re-raised
// after the rollback.
//
// A receiver deciding a pending request locks it, checks the transition and
// stores the new status as one unit:
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    repo := repos.SwapRequests(tx)
//	    req, err := repo.GetForUpdate(ctx, requestID)
//	    if err != nil {
//	        return err
//	    }
//	    if err := swap.Respond(req, swap.StatusAccepted, receiverID); err != nil {
//	        return err
//	    }
//	    return repo.UpdateStatus(ctx, req)
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		_ = tx.Rollback()
		if p := recover(); p != nil {
			panic(p)
		}
	}()

	if err = fn(ctx, tx); err != nil {
		return err
	}
	committed = true
	return tx.Commit()
}
