package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// User is the source-ledger identity the sync runs on behalf of.
type User struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
}

// DisplayName returns the user's full name.
func (u User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Participant is one user's paid/owed split within an expense.
type Participant struct {
	UserID    int64
	FirstName string
	LastName  string
	Paid      decimal.Decimal
	Owed      decimal.Decimal
}

// DisplayName returns the participant's full name.
func (p Participant) DisplayName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Expense is a shared cost fetched from the source ledger. It is parsed into
// this typed form at the client boundary so the rest of the pipeline never
// touches loose API payloads.
type Expense struct {
	ID           int64
	Description  string
	Cost         decimal.Decimal
	CurrencyCode string
	Date         time.Time
	Deleted      bool
	Details      string
	Users        []Participant
}

// Validate checks the structural assumptions the share calculator relies on:
// the expense carries a usable date, and the per-participant paid and owed
// shares each sum to the total cost. The allowed drift is one minor unit per
// participant, matching the source ledger's own rounding of splits.
func (e *Expense) Validate() error {
	if e.Date.IsZero() {
		return fmt.Errorf("%w: expense %d", ErrMissingExpenseDate, e.ID)
	}

	paid := decimal.Zero
	owed := decimal.Zero
	for _, p := range e.Users {
		paid = paid.Add(p.Paid)
		owed = owed.Add(p.Owed)
	}

	epsilon := decimal.New(int64(max(len(e.Users), 1)), -2)

	if paid.Sub(e.Cost).Abs().GreaterThan(epsilon) {
		return fmt.Errorf("%w: expense %d paid shares sum to %s, cost is %s",
			ErrExpenseUnbalanced, e.ID, paid, e.Cost)
	}

	if owed.Sub(e.Cost).Abs().GreaterThan(epsilon) {
		return fmt.Errorf("%w: expense %d owed shares sum to %s, cost is %s",
			ErrExpenseUnbalanced, e.ID, owed, e.Cost)
	}

	return nil
}
