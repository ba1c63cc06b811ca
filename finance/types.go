/*
Package finance implements the personal-finance side of the application:
income/expense transactions, reference-month bookkeeping, recurring-bill
duplication and monthly summaries.

The duty-shift engine (package scale) feeds this package: confirming pay for
an extra-duty occurrence creates one Income transaction here, valued by the
tariff calculator and filed under the AC-4 category with its reference month
shifted two months forward (extra-duty pay arrives on that cycle).
*/
package finance

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// TRANSACTION
// =============================================================================

// TransactionType distinguishes income from expense. The Portuguese labels
// are the stored values; they predate this codebase and stay for data
// compatibility.
type TransactionType string

const (
	TypeIncome  TransactionType = "Receita"
	TypeExpense TransactionType = "Despesa"
)

// TransactionStatus is the settlement state of a transaction.
type TransactionStatus string

const (
	StatusPaid     TransactionStatus = "Pago"
	StatusReceived TransactionStatus = "Recebido"
	StatusPending  TransactionStatus = "Pendente"
)

// CategoryExtraDuty is the fixed income category for extra-duty (AC-4) pay.
const CategoryExtraDuty = "AC-4"

// Transaction is one income or expense entry.
type Transaction struct {
	ID             string
	OwnerID        string
	Type           TransactionType
	Description    string
	Category       string
	Amount         decimal.Decimal
	Date           string // "YYYY-MM-DD"
	ReferenceMonth string // "Janeiro 2026"
	Status         TransactionStatus
	Recurring      bool
	CreatedAt      time.Time
}

// TransactionPatch carries a merge-patch over a persisted transaction.
type TransactionPatch struct {
	Description    *string
	Category       *string
	Amount         *decimal.Decimal
	Date           *string
	ReferenceMonth *string
	Status         *TransactionStatus
	Recurring      *bool
}

// Apply merges the patch into tx.
func (p TransactionPatch) Apply(tx *Transaction) {
	if p.Description != nil {
		tx.Description = *p.Description
	}
	if p.Category != nil {
		tx.Category = *p.Category
	}
	if p.Amount != nil {
		tx.Amount = *p.Amount
	}
	if p.Date != nil {
		tx.Date = *p.Date
	}
	if p.ReferenceMonth != nil {
		tx.ReferenceMonth = *p.ReferenceMonth
	}
	if p.Status != nil {
		tx.Status = *p.Status
	}
	if p.Recurring != nil {
		tx.Recurring = *p.Recurring
	}
}

// =============================================================================
// USER SETTINGS
// =============================================================================

// Settings holds a user's category lists. Missing documents fall back to
// DefaultSettings so new fields appear for existing users.
type Settings struct {
	IncomeCategories  []string
	ExpenseCategories []string
}

// DefaultSettings returns the built-in category lists.
func DefaultSettings() Settings {
	return Settings{
		IncomeCategories: []string{"Salário", "AC-4", "Renda Extra", "Outros"},
		ExpenseCategories: []string{
			"Aluguel", "Energia", "Consórcio", "IPASGO",
			"Saneago", "Internet", "Cartão", "Outros",
		},
	}
}
