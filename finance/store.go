/*
store.go - Persistence interfaces for transactions and user settings

PURPOSE:
  The finance side needs the same document-store operations the scale engine
  uses: insert-returns-id, merge-patch updates, equality and reference-month
  queries. Settings are a single per-owner document with merge semantics.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: Production SQLite
*/
package finance

import (
	"context"
	"errors"
)

// ErrTransactionNotFound is returned when a referenced transaction doesn't exist.
var ErrTransactionNotFound = errors.New("transaction not found")

// TransactionStore persists income/expense transactions.
type TransactionStore interface {
	// InsertTransaction persists a new transaction and returns its id.
	InsertTransaction(ctx context.Context, tx Transaction) (string, error)

	// UpdateTransaction applies a merge-patch to the stored transaction.
	// Returns ErrTransactionNotFound for unknown ids.
	UpdateTransaction(ctx context.Context, id string, patch TransactionPatch) error

	// DeleteTransaction hard-deletes the transaction.
	DeleteTransaction(ctx context.Context, id string) error

	// TransactionsByOwner returns all of an owner's transactions.
	TransactionsByOwner(ctx context.Context, ownerID string) ([]Transaction, error)

	// TransactionsByMonth returns the owner's transactions booked into the
	// given reference month.
	TransactionsByMonth(ctx context.Context, ownerID, month string) ([]Transaction, error)

	// OwnersWithRecurring lists the owners that have at least one recurring
	// transaction; the scheduler iterates over them.
	OwnersWithRecurring(ctx context.Context) ([]string, error)
}

// SettingsStore persists per-owner settings documents.
type SettingsStore interface {
	// GetSettings returns the owner's settings, falling back to
	// DefaultSettings when no document exists.
	GetSettings(ctx context.Context, ownerID string) (Settings, error)

	// SaveSettings upserts the owner's settings document.
	SaveSettings(ctx context.Context, ownerID string, s Settings) error
}
