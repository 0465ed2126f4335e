package domain

import (
	"strings"
	"testing"
)

func TestFormatMemoSegments(t *testing.T) {
	t.Parallel()

	e := expenseFixture(501, "25.00", []Participant{
		{UserID: 1, FirstName: "Ada", LastName: "Lovelace", Paid: dec("25.00"), Owed: dec("12.50")},
		{UserID: 2, FirstName: "Grace", LastName: "Hopper", Paid: dec("0"), Owed: dec("12.50")},
	})
	e.Details = "weekly shop"

	memo := FormatMemo(e, ComputeShare(e, 1), 1)

	want := "Paid: $25.00, Owed: $12.50 | Users: Grace Hopper | Notes: weekly shop | Splitwise ID: 501"
	if memo != want {
		t.Fatalf("memo = %q, want %q", memo, want)
	}
}

func TestFormatMemoOmitsEmptySegments(t *testing.T) {
	t.Parallel()

	// Only the target user, no names to list, no notes.
	e := expenseFixture(502, "10.00", []Participant{
		{UserID: 1, Paid: dec("10.00"), Owed: dec("0")},
	})

	memo := FormatMemo(e, ComputeShare(e, 1), 1)

	want := "Paid: $10.00, Owed: $0.00 | Splitwise ID: 502"
	if memo != want {
		t.Fatalf("memo = %q, want %q", memo, want)
	}
}

func TestFormatMemoDeterministic(t *testing.T) {
	t.Parallel()

	e := expenseFixture(503, "30.00", []Participant{
		{UserID: 1, FirstName: "Ada", Paid: dec("30.00"), Owed: dec("15.00")},
		{UserID: 2, FirstName: "Grace", Paid: dec("0"), Owed: dec("15.00")},
	})
	share := ComputeShare(e, 1)

	if FormatMemo(e, share, 1) != FormatMemo(e, share, 1) {
		t.Fatal("memo is not deterministic for identical inputs")
	}
}

func TestFormatMemoTruncationPreservesID(t *testing.T) {
	t.Parallel()

	e := expenseFixture(987654321, "50.00", []Participant{
		{UserID: 1, FirstName: "Ada", Paid: dec("50.00"), Owed: dec("25.00")},
		{UserID: 2, FirstName: "Grace", Paid: dec("0"), Owed: dec("25.00")},
	})
	e.Details = strings.Repeat("long notes ", 100)

	memo := FormatMemo(e, ComputeShare(e, 1), 1)

	if len(memo) > MaxMemoLength {
		t.Fatalf("memo length %d exceeds cap %d", len(memo), MaxMemoLength)
	}
	if !strings.Contains(memo, "Splitwise ID: 987654321") {
		t.Fatalf("truncated memo lost the source id segment: %q", memo)
	}
	if !strings.HasSuffix(memo, "Splitwise ID: 987654321") {
		t.Fatalf("source id segment should close the memo: %q", memo)
	}
}

func TestJoinCapped(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		segments  []string
		idSegment string
		limit     int
		want      string
	}{
		{
			name:      "fits untouched",
			segments:  []string{"aaa", "bbb"},
			idSegment: "ID: 1",
			limit:     50,
			want:      "aaa | bbb | ID: 1",
		},
		{
			name:      "prefix truncated",
			segments:  []string{"aaaaaaaaaa"},
			idSegment: "ID: 1",
			limit:     13,
			want:      "aaaaa | ID: 1",
		},
		{
			name:      "only id survives",
			segments:  []string{"aaaa"},
			idSegment: "ID: 1",
			limit:     6,
			want:      "ID: 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := joinCapped(tt.segments, tt.idSegment, tt.limit)
			if got != tt.want {
				t.Fatalf("joinCapped = %q, want %q", got, tt.want)
			}
			if len(got) > tt.limit && got != tt.idSegment {
				t.Fatalf("result %q exceeds limit %d", got, tt.limit)
			}
		})
	}
}
