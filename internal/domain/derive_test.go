package domain

import (
	"strings"
	"testing"
)

func TestDeriveTransaction(t *testing.T) {
	t.Parallel()

	t.Run("payer receives positive amount", func(t *testing.T) {
		e := expenseFixture(501, "25.00", []Participant{
			{UserID: 1, Paid: dec("25.00"), Owed: dec("12.50")},
			{UserID: 2, FirstName: "Grace", Paid: dec("0"), Owed: dec("12.50")},
		})

		c, status := DeriveTransaction(e, 1)
		if status != Derived {
			t.Fatalf("status = %v, want Derived", status)
		}
		if c.Amount != 12500 {
			t.Fatalf("Amount = %d milliunits, want 12500", c.Amount)
		}
		if c.PayeeName != e.Description {
			t.Fatalf("PayeeName = %q, want %q", c.PayeeName, e.Description)
		}
		if !strings.Contains(c.Memo, "501") {
			t.Fatalf("memo %q does not carry the source id", c.Memo)
		}
		if c.ImportID != "splitwise_501" {
			t.Fatalf("ImportID = %q, want splitwise_501", c.ImportID)
		}
		if c.Cleared != ClearedUncleared {
			t.Fatalf("Cleared = %q, want %q", c.Cleared, ClearedUncleared)
		}
		if !c.Date.Equal(e.Date) {
			t.Fatalf("Date = %v, want %v", c.Date, e.Date)
		}
	})

	t.Run("ower receives negative amount", func(t *testing.T) {
		e := expenseFixture(502, "40.00", []Participant{
			{UserID: 1, Paid: dec("0"), Owed: dec("20.00")},
			{UserID: 2, Paid: dec("40.00"), Owed: dec("20.00")},
		})

		c, status := DeriveTransaction(e, 1)
		if status != Derived {
			t.Fatalf("status = %v, want Derived", status)
		}
		if c.Amount != -20000 {
			t.Fatalf("Amount = %d milliunits, want -20000", c.Amount)
		}
	})

	t.Run("zero net produces no candidate", func(t *testing.T) {
		e := expenseFixture(503, "30.00", []Participant{
			{UserID: 1, Paid: dec("15.00"), Owed: dec("15.00")},
			{UserID: 2, Paid: dec("15.00"), Owed: dec("15.00")},
		})

		if _, status := DeriveTransaction(e, 1); status != ZeroNet {
			t.Fatalf("status = %v, want ZeroNet", status)
		}
	})

	t.Run("absent user produces no candidate", func(t *testing.T) {
		e := expenseFixture(504, "10.00", []Participant{
			{UserID: 2, Paid: dec("10.00"), Owed: dec("10.00")},
		})

		if _, status := DeriveTransaction(e, 1); status != NotParticipant {
			t.Fatalf("status = %v, want NotParticipant", status)
		}
	})
}
