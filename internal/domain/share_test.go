package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func expenseFixture(id int64, cost string, users []Participant) Expense {
	return Expense{
		ID:           id,
		Description:  "Groceries",
		Cost:         dec(cost),
		CurrencyCode: "USD",
		Date:         time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Users:        users,
	}
}

func TestComputeShare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		expense         Expense
		userID          int64
		wantParticipant bool
		wantNet         string
	}{
		{
			name: "payer gets money back",
			expense: expenseFixture(501, "25.00", []Participant{
				{UserID: 1, Paid: dec("25.00"), Owed: dec("12.50")},
				{UserID: 2, Paid: dec("0"), Owed: dec("12.50")},
			}),
			userID:          1,
			wantParticipant: true,
			wantNet:         "12.5",
		},
		{
			name: "non-payer owes their share",
			expense: expenseFixture(502, "40.00", []Participant{
				{UserID: 1, Paid: dec("0"), Owed: dec("20.00")},
				{UserID: 2, Paid: dec("40.00"), Owed: dec("20.00")},
			}),
			userID:          1,
			wantParticipant: true,
			wantNet:         "-20",
		},
		{
			name: "paid equals owed nets to zero",
			expense: expenseFixture(503, "30.00", []Participant{
				{UserID: 1, Paid: dec("15.00"), Owed: dec("15.00")},
				{UserID: 2, Paid: dec("15.00"), Owed: dec("15.00")},
			}),
			userID:          1,
			wantParticipant: true,
			wantNet:         "0",
		},
		{
			name: "user not in participant list",
			expense: expenseFixture(504, "10.00", []Participant{
				{UserID: 2, Paid: dec("10.00"), Owed: dec("10.00")},
			}),
			userID:          1,
			wantParticipant: false,
			wantNet:         "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeShare(tt.expense, tt.userID)

			if got.IsParticipant != tt.wantParticipant {
				t.Fatalf("IsParticipant = %v, want %v", got.IsParticipant, tt.wantParticipant)
			}
			if !got.Net.Equal(dec(tt.wantNet)) {
				t.Fatalf("Net = %s, want %s", got.Net, tt.wantNet)
			}
			if !got.Net.Equal(got.Paid.Sub(got.Owed).RoundBank(2)) {
				t.Fatalf("Net %s does not equal paid %s minus owed %s", got.Net, got.Paid, got.Owed)
			}
		})
	}
}

func TestComputeShareRoundsHalfToEven(t *testing.T) {
	t.Parallel()

	// 0.125 sits exactly between minor units; bank rounding goes to the even
	// neighbour 0.12.
	e := expenseFixture(505, "0.50", []Participant{
		{UserID: 1, Paid: dec("0.50"), Owed: dec("0.375")},
		{UserID: 2, Paid: dec("0"), Owed: dec("0.125")},
	})

	got := ComputeShare(e, 1)
	if !got.Net.Equal(dec("0.12")) {
		t.Fatalf("Net = %s, want 0.12", got.Net)
	}
}

func TestComputeShareGlobalBalance(t *testing.T) {
	t.Parallel()

	e := expenseFixture(506, "90.00", []Participant{
		{UserID: 1, Paid: dec("90.00"), Owed: dec("30.00")},
		{UserID: 2, Paid: dec("0"), Owed: dec("30.00")},
		{UserID: 3, Paid: dec("0"), Owed: dec("30.00")},
	})

	total := decimal.Zero
	for _, p := range e.Users {
		total = total.Add(ComputeShare(e, p.UserID).Net)
	}

	if !total.IsZero() {
		t.Fatalf("net shares sum to %s across participants, want 0", total)
	}
}

func TestMinorUnitDigits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code string
		want int32
	}{
		{"USD", 2},
		{"JPY", 0},
		{"XXX-unknown", 2},
	}

	for _, tt := range tests {
		if got := MinorUnitDigits(tt.code); got != tt.want {
			t.Fatalf("MinorUnitDigits(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestMilliunits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		amount string
		want   int64
	}{
		{"12.50", 12500},
		{"-20.00", -20000},
		{"0", 0},
		{"0.01", 10},
	}

	for _, tt := range tests {
		if got := Milliunits(dec(tt.amount)); got != tt.want {
			t.Fatalf("Milliunits(%s) = %d, want %d", tt.amount, got, tt.want)
		}
	}
}
