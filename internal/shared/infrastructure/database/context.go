package database

import "context"

type txKey struct{}

// WithTx stores a transaction in the context so repositories can join it.
func WithTx(ctx context.Context, tx Transaction) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// TxFromContext returns the transaction carried by the context, or nil.
func TxFromContext(ctx context.Context) Transaction {
	tx, ok := ctx.Value(txKey{}).(Transaction)
	if !ok {
		return nil
	}
	return tx
}

// ExecutorFromContext returns the in-flight transaction when one is present,
// otherwise the bare connection. Repositories call this on every operation so
// they transparently participate in a unit of work.
func ExecutorFromContext(ctx context.Context, conn Connection) Executor {
	if tx := TxFromContext(ctx); tx != nil {
		return tx
	}
	return conn
}
