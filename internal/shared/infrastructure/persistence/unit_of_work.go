package persistence

import (
	"context"
	"errors"

	"github.com/Hamid-ijaz/mindmate/internal/shared/infrastructure/database"
)

var ErrNoTransaction = errors.New("no transaction in context")

type ownedKey struct{}

// UnitOfWork implements application.UnitOfWork over a database.Connection,
// so the same code drives both SQLite and PostgreSQL. Nested Begin calls
// join the outer transaction; only the owner commits or rolls back.
type UnitOfWork struct {
	conn database.Connection
}

// NewUnitOfWork creates a unit of work bound to a connection.
func NewUnitOfWork(conn database.Connection) *UnitOfWork {
	return &UnitOfWork{conn: conn}
}

// Begin opens a transaction and stores it in the returned context. When the
// context already carries one, the existing transaction is joined instead.
func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	if database.TxFromContext(ctx) != nil {
		return context.WithValue(ctx, ownedKey{}, false), nil
	}

	tx, err := u.conn.BeginTx(ctx)
	if err != nil {
		return nil, err
	}

	ctx = database.WithTx(ctx, tx)
	return context.WithValue(ctx, ownedKey{}, true), nil
}

// Commit commits the transaction if this unit owns it.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	tx := database.TxFromContext(ctx)
	if tx == nil {
		return ErrNoTransaction
	}
	if !owned(ctx) {
		return nil
	}
	return tx.Commit(ctx)
}

// Rollback rolls back the transaction if this unit owns it.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	tx := database.TxFromContext(ctx)
	if tx == nil {
		return ErrNoTransaction
	}
	if !owned(ctx) {
		return nil
	}
	return tx.Rollback(ctx)
}

func owned(ctx context.Context) bool {
	v, ok := ctx.Value(ownedKey{}).(bool)
	return ok && v
}
