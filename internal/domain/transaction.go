package domain

import "time"

// ClearedUncleared is the sink state all created transactions enter, meaning
// "pending user review".
const ClearedUncleared = "uncleared"

// CandidateTransaction is a budget transaction derived from one expense for
// the target user. It is built fresh per run and immutable once built: it is
// either accepted for import or discarded, never updated in place.
type CandidateTransaction struct {
	ImportID  string
	PayeeName string
	Amount    int64 // signed milliunits
	Memo      string
	Date      time.Time
	Cleared   string
	SourceID  int64
}

// ImportedRecord is a read-only snapshot of a transaction already present in
// the sink, fetched once per run and used only for duplicate comparison.
type ImportedRecord struct {
	ImportID  string
	Amount    int64 // signed milliunits
	PayeeName string
	Date      time.Time
}

// Account is a handle to the sink account transactions are imported into.
type Account struct {
	ID   string
	Name string
}

// OutcomeStatus classifies the sink's per-item response to a create call.
type OutcomeStatus int

const (
	OutcomeAccepted OutcomeStatus = iota
	OutcomeRejected
	OutcomeDuplicate
)

// ImportOutcome is the sink's verdict on one submitted transaction.
type ImportOutcome struct {
	ImportID string
	Status   OutcomeStatus
	Reason   string
}
