package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/iho/splitsync/internal/domain"
	"github.com/iho/splitsync/internal/usecase"
)

const memoPreviewLength = 60

// WriteCandidateTable renders the importable candidates with their 1-indexed
// positions and a signed total.
func WriteCandidateTable(w io.Writer, candidates []domain.CandidateTransaction) {
	fmt.Fprintln(w, "\nTransactions to import:")
	fmt.Fprintln(w, strings.Repeat("-", 72))

	var total int64
	for i, c := range candidates {
		total += c.Amount
		fmt.Fprintf(w, "%3d. %s  %12s  %s\n",
			i+1, c.Date.Format(time.DateOnly), formatMilliunits(c.Amount), c.PayeeName)
		if memo := excerpt(c.Memo, memoPreviewLength); memo != "" {
			fmt.Fprintf(w, "     %s\n", memo)
		}
	}

	fmt.Fprintln(w, strings.Repeat("-", 72))
	fmt.Fprintf(w, "Total: %s\n", formatMilliunits(total))
}

// WriteSummary renders the terminal run summary. It is printed even after a
// partial failure, reflecting the work completed up to that point.
func WriteSummary(w io.Writer, summary *usecase.RunSummary) {
	fmt.Fprintln(w, "\nRun summary")
	fmt.Fprintln(w, strings.Repeat("-", 40))
	fmt.Fprintf(w, "  fetched expenses:    %d\n", summary.Fetched)
	fmt.Fprintf(w, "  not a participant:   %d\n", summary.NotParticipant)
	fmt.Fprintf(w, "  zero net:            %d\n", summary.ZeroNet)
	fmt.Fprintf(w, "  candidates:          %d\n", summary.Candidates)
	fmt.Fprintf(w, "  duplicates:          %d\n", summary.Duplicates)
	if summary.Ambiguous > 0 {
		fmt.Fprintf(w, "  ambiguous:           %d\n", summary.Ambiguous)
	}
	fmt.Fprintf(w, "  selected:            %d\n", summary.Selected)
	fmt.Fprintf(w, "  imported:            %d\n", summary.Imported)
	fmt.Fprintf(w, "  failed:              %d\n", summary.Failed)
	fmt.Fprintf(w, "  state:               %s\n", summary.State)
}

// formatMilliunits renders a signed milliunit amount in major units, e.g.
// +12.50 or -20.00.
func formatMilliunits(amount int64) string {
	sign := "+"
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d", sign, amount/1000, (amount%1000)/10)
}

func excerpt(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit-3] + "..."
}
