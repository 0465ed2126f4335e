package usecase

import (
	"context"
	"time"

	"github.com/iho/splitsync/internal/domain"
)

// ExpenseSource is the read contract against the shared-expense ledger.
type ExpenseSource interface {
	CurrentUser(ctx context.Context) (domain.User, error)
	// ExpensesSince returns all non-deleted expenses dated on or after since,
	// following the source's pagination to the end.
	ExpensesSince(ctx context.Context, since time.Time) ([]domain.Expense, error)
}

// BudgetSink is the contract against the target budget ledger.
type BudgetSink interface {
	FindAccount(ctx context.Context, name string) (domain.Account, error)
	AccountTransactions(ctx context.Context, accountID string) ([]domain.ImportedRecord, error)
	CreateTransactions(ctx context.Context, accountID string, txns []domain.CandidateTransaction) ([]domain.ImportOutcome, error)
}

// IndexPredicate reports whether the candidate at the given 1-indexed
// chronological position is selected for import.
type IndexPredicate func(position int) bool

// CandidateSelector narrows the importable sequence to a user-chosen subset.
// Returning domain.ErrSelectionCancelled ends the run without touching the
// sink.
type CandidateSelector interface {
	Select(candidates []domain.CandidateTransaction) (IndexPredicate, error)
}
