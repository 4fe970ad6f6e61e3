package repositories

import "context"

// TxFn is a function that runs within a transaction.
type TxFn func(ctx context.Context) error

// TransactionManager handles database transactions. Multi-row invariants
// (chapter word-count deltas, series deletion re-parenting) must run through
// ExecTx so both writes commit or neither does.
type TransactionManager interface {
	// ExecTx executes a function within a transaction
	ExecTx(ctx context.Context, fn TxFn) error
}
