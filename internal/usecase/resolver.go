package usecase

import (
	"strings"
	"time"

	"github.com/iho/splitsync/internal/domain"
)

// Resolution partitions a run's candidates against the sink snapshot. The
// three slices are disjoint and each preserves the input order.
type Resolution struct {
	Importable []domain.CandidateTransaction
	Duplicates []domain.CandidateTransaction
	Ambiguous  []domain.CandidateTransaction
	// Collisions lists the import ids that appeared more than once within the
	// candidate batch, one entry per excluded candidate.
	Collisions []string
}

// contentKey is the fallback composite identity for sink records that predate
// import-id tagging, e.g. expenses a user recorded by hand before this tool
// existed. Payees are compared case-folded and trimmed; dates at day
// granularity.
type contentKey struct {
	amount int64
	date   string
	payee  string
}

func newContentKey(amount int64, date time.Time, payee string) contentKey {
	return contentKey{
		amount: amount,
		date:   date.Format(time.DateOnly),
		payee:  strings.ToLower(strings.TrimSpace(payee)),
	}
}

// ResolveDuplicates classifies each candidate as importable, duplicate, or
// ambiguous against the full imported-record snapshot.
//
// Tier 1 matches candidate import ids against every token already in the
// sink. Tier 2 content-matches the remaining candidates against records
// lacking a recognizable token, on (amount, occurrence day, payee); this tier
// is a known-approximate heuristic and can flag two genuinely distinct
// same-day same-amount same-payee expenses. A candidate whose import id was
// already seen earlier in the same batch is ambiguous: the source feed is
// malformed, and importing both would double-book.
//
// The function is pure: no I/O, and neither input slice is mutated.
func ResolveDuplicates(candidates []domain.CandidateTransaction, existing []domain.ImportedRecord) Resolution {
	knownIDs := make(map[string]struct{}, len(existing))
	untagged := make(map[contentKey]struct{})
	for _, r := range existing {
		if domain.HasImportIDPrefix(r.ImportID) {
			knownIDs[r.ImportID] = struct{}{}
			continue
		}
		untagged[newContentKey(r.Amount, r.Date, r.PayeeName)] = struct{}{}
	}

	var res Resolution
	seen := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		if _, dup := seen[c.ImportID]; dup {
			res.Ambiguous = append(res.Ambiguous, c)
			res.Collisions = append(res.Collisions, c.ImportID)
			continue
		}
		seen[c.ImportID] = struct{}{}

		if _, ok := knownIDs[c.ImportID]; ok {
			res.Duplicates = append(res.Duplicates, c)
			continue
		}

		if _, ok := untagged[newContentKey(c.Amount, c.Date, c.PayeeName)]; ok {
			res.Duplicates = append(res.Duplicates, c)
			continue
		}

		res.Importable = append(res.Importable, c)
	}

	return res
}
