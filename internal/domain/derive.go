package domain

import "github.com/shopspring/decimal"

// DeriveStatus classifies the outcome of deriving a candidate from one
// expense.
type DeriveStatus int

const (
	// Derived means a candidate transaction was produced.
	Derived DeriveStatus = iota
	// NotParticipant means the target user has no split in the expense.
	NotParticipant
	// ZeroNet means paid and owed offset exactly, e.g. a settlement.
	ZeroNet
)

// Milliunits converts a major-unit amount to the sink's integer milliunits.
func Milliunits(amount decimal.Decimal) int64 {
	return amount.Shift(3).Round(0).IntPart()
}

// DeriveTransaction maps one expense to at most one candidate transaction for
// the target user. Non-participant and zero-net expenses produce no candidate
// and are reported through the status, not as errors. Deleted expenses are
// excluded at the source-client boundary and never reach this function.
func DeriveTransaction(e Expense, userID int64) (CandidateTransaction, DeriveStatus) {
	share := ComputeShare(e, userID)
	if !share.IsParticipant {
		return CandidateTransaction{}, NotParticipant
	}
	if share.Net.IsZero() {
		return CandidateTransaction{}, ZeroNet
	}

	return CandidateTransaction{
		ImportID:  ImportID(e.ID),
		PayeeName: e.Description,
		Amount:    Milliunits(share.Net),
		Memo:      FormatMemo(e, share, userID),
		Date:      e.Date,
		Cleared:   ClearedUncleared,
		SourceID:  e.ID,
	}, Derived
}
