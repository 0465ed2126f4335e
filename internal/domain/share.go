package domain

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// ShareResult is one participant's derived position in a single expense.
// It is recomputed per expense and never stored.
type ShareResult struct {
	Paid          decimal.Decimal
	Owed          decimal.Decimal
	Net           decimal.Decimal
	IsParticipant bool
}

// MinorUnitDigits returns the number of fraction digits for a currency code.
// Unknown codes fall back to two digits.
func MinorUnitDigits(code string) int32 {
	if c := money.GetCurrency(code); c != nil {
		return int32(c.Fraction)
	}
	return 2
}

// ComputeShare derives the target user's net position in an expense.
// Net is paid minus owed, rounded half to even at the currency's minor-unit
// precision. A user absent from the participant list yields
// IsParticipant=false, which callers must treat as a skip, not an error.
func ComputeShare(e Expense, userID int64) ShareResult {
	for _, p := range e.Users {
		if p.UserID == userID {
			return ShareResult{
				Paid:          p.Paid,
				Owed:          p.Owed,
				Net:           p.Paid.Sub(p.Owed).RoundBank(MinorUnitDigits(e.CurrencyCode)),
				IsParticipant: true,
			}
		}
	}
	return ShareResult{}
}

// FormatMoney renders a major-unit amount using the currency's display
// conventions.
func FormatMoney(amount decimal.Decimal, code string) string {
	return money.New(amount.Shift(MinorUnitDigits(code)).Round(0).IntPart(), code).Display()
}
