// Package tx carries an open *sql.Tx through a context so postgres stores
// join the caller's transaction instead of using the pool.
package tx

import (
	"context"
	"database/sql"
	"sync"
)

type ctxKey struct{}

// WithTx stores tx in ctx. A nil tx leaves ctx unchanged.
func WithTx(ctx context.Context, tx *sql.Tx) context.Context {
	if tx == nil {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, tx)
}

// From extracts the transaction stored by WithTx.
func From(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(ctxKey{}).(*sql.Tx)
	return tx, ok
}

// Executor is the subset of *sql.DB / *sql.Tx used by stores.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Exec returns the context transaction when present, otherwise db.
func Exec(ctx context.Context, db *sql.DB) Executor {
	if t, ok := From(ctx); ok {
		return t
	}
	return db
}

type localKey struct{}

// Local serialises RunInTx calls in-process. It backs the in-memory stores,
// which have no rollback: fn must validate before it writes.
type Local struct {
	mu sync.Mutex
}

func (l *Local) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(localKey{}) == l {
		return fn(ctx)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn(context.WithValue(ctx, localKey{}, l))
}
