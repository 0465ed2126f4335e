// Package mocks provides hand-written test doubles for the usecase
// interfaces. Each mock records its calls and delegates to an optional
// function field, falling back to empty in-memory behavior.
package mocks

import (
	"context"
	"time"

	"github.com/iho/splitsync/internal/domain"
	"github.com/iho/splitsync/internal/usecase"
)

// MockExpenseSource is a mock implementation of ExpenseSource.
type MockExpenseSource struct {
	CurrentUserFunc   func(ctx context.Context) (domain.User, error)
	ExpensesSinceFunc func(ctx context.Context, since time.Time) ([]domain.Expense, error)

	User     domain.User
	Expenses []domain.Expense

	ExpensesSinceCalls []time.Time
}

func NewMockExpenseSource() *MockExpenseSource {
	return &MockExpenseSource{}
}

func (m *MockExpenseSource) CurrentUser(ctx context.Context) (domain.User, error) {
	if m.CurrentUserFunc != nil {
		return m.CurrentUserFunc(ctx)
	}
	return m.User, nil
}

func (m *MockExpenseSource) ExpensesSince(ctx context.Context, since time.Time) ([]domain.Expense, error) {
	m.ExpensesSinceCalls = append(m.ExpensesSinceCalls, since)
	if m.ExpensesSinceFunc != nil {
		return m.ExpensesSinceFunc(ctx, since)
	}
	return m.Expenses, nil
}

// MockBudgetSink is a mock implementation of BudgetSink. By default it
// accepts every submitted transaction and appends it to Created.
type MockBudgetSink struct {
	FindAccountFunc         func(ctx context.Context, name string) (domain.Account, error)
	AccountTransactionsFunc func(ctx context.Context, accountID string) ([]domain.ImportedRecord, error)
	CreateTransactionsFunc  func(ctx context.Context, accountID string, txns []domain.CandidateTransaction) ([]domain.ImportOutcome, error)

	Account domain.Account
	Records []domain.ImportedRecord

	Created     []domain.CandidateTransaction
	CreateCalls int
}

func NewMockBudgetSink() *MockBudgetSink {
	return &MockBudgetSink{
		Account: domain.Account{ID: "acct-1", Name: "Splitwise (Wallet)"},
	}
}

func (m *MockBudgetSink) FindAccount(ctx context.Context, name string) (domain.Account, error) {
	if m.FindAccountFunc != nil {
		return m.FindAccountFunc(ctx, name)
	}
	return m.Account, nil
}

func (m *MockBudgetSink) AccountTransactions(ctx context.Context, accountID string) ([]domain.ImportedRecord, error) {
	if m.AccountTransactionsFunc != nil {
		return m.AccountTransactionsFunc(ctx, accountID)
	}
	return m.Records, nil
}

func (m *MockBudgetSink) CreateTransactions(ctx context.Context, accountID string, txns []domain.CandidateTransaction) ([]domain.ImportOutcome, error) {
	m.CreateCalls++
	if m.CreateTransactionsFunc != nil {
		return m.CreateTransactionsFunc(ctx, accountID, txns)
	}
	m.Created = append(m.Created, txns...)
	outcomes := make([]domain.ImportOutcome, 0, len(txns))
	for _, txn := range txns {
		outcomes = append(outcomes, domain.ImportOutcome{
			ImportID: txn.ImportID,
			Status:   domain.OutcomeAccepted,
		})
	}
	return outcomes, nil
}

// MockSelector is a mock implementation of CandidateSelector. The zero value
// selects everything.
type MockSelector struct {
	SelectFunc func(candidates []domain.CandidateTransaction) (usecase.IndexPredicate, error)

	SelectCalls int
}

func NewMockSelector() *MockSelector {
	return &MockSelector{}
}

func (m *MockSelector) Select(candidates []domain.CandidateTransaction) (usecase.IndexPredicate, error) {
	m.SelectCalls++
	if m.SelectFunc != nil {
		return m.SelectFunc(candidates)
	}
	return func(int) bool { return true }, nil
}
