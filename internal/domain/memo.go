package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxMemoLength is the sink's memo length cap.
const MaxMemoLength = 500

const memoDelimiter = " | "

// FormatMemo renders a single-line memo from an expense and the target user's
// share. Up to four segments appear in order, each only when its source data
// is non-empty: the paid/owed breakdown, the other participants' names, the
// expense notes, and the source expense id. The id segment backstops
// duplicate detection when a record loses its import id, so truncation
// removes the other segments first and the id always survives.
func FormatMemo(e Expense, share ShareResult, userID int64) string {
	var segments []string

	segments = append(segments, fmt.Sprintf("Paid: %s, Owed: %s",
		FormatMoney(share.Paid, e.CurrencyCode),
		FormatMoney(share.Owed, e.CurrencyCode)))

	var names []string
	for _, p := range e.Users {
		if p.UserID == userID {
			continue
		}
		if name := p.DisplayName(); name != "" {
			names = append(names, name)
		}
	}
	if len(names) > 0 {
		segments = append(segments, "Users: "+strings.Join(names, ", "))
	}

	if details := strings.TrimSpace(e.Details); details != "" {
		segments = append(segments, "Notes: "+details)
	}

	idSegment := "Splitwise ID: " + strconv.FormatInt(e.ID, 10)

	return joinCapped(segments, idSegment, MaxMemoLength)
}

// joinCapped joins the leading segments and the identifier segment with the
// memo delimiter, truncating the leading part so the identifier segment fits
// within limit.
func joinCapped(segments []string, idSegment string, limit int) string {
	full := strings.Join(append(segments, idSegment), memoDelimiter)
	if len(full) <= limit {
		return full
	}

	budget := limit - len(idSegment) - len(memoDelimiter)
	if budget <= 0 {
		return idSegment
	}

	prefix := strings.Join(segments, memoDelimiter)
	if len(prefix) > budget {
		prefix = prefix[:budget]
	}

	return prefix + memoDelimiter + idSegment
}
