// Package ledger declares the ports the dashboard uses to reach transaction
// storage. Implementations live in the memory and sheets subpackages and in
// internal/storage.
package ledger

import (
	"context"

	"github.com/skprof1/expenses-tracker/internal/core"
)

// Ports for outbound adapters.
type (
	TransactionWriter interface {
		// Append stores a validated transaction and returns a backend reference.
		Append(ctx context.Context, tx core.Transaction) (ref string, err error)
	}

	// TransactionLister returns the transactions of one type recorded in a
	// month, newest first.
	TransactionLister interface {
		ListTransactions(ctx context.Context, period core.Period, t core.TransactionType) ([]core.Transaction, error)
	}

	Store interface {
		TransactionWriter
		TransactionLister
	}
)
