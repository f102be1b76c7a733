package core

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestDateValidate(t *testing.T) {
	if err := NewDate(2025, 12, 31).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Date{}).Validate(); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Cents: 0}).Validate(); err == nil {
		t.Fatalf("expected error for zero")
	}
	if err := (Money{Cents: -5}).Validate(); err == nil {
		t.Fatalf("expected error for negative")
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		Type:     Income,
		Category: "Salary",
		Amount:   Money{Cents: 320000},
		Date:     NewDate(2025, 12, 1),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Transaction)
		want   error
	}{
		{"bad type", func(tx *Transaction) { tx.Type = "transfer" }, ErrInvalidType},
		{"empty category", func(tx *Transaction) { tx.Category = "  " }, ErrEmptyCategory},
		{"category of other type", func(tx *Transaction) { tx.Category = "Groceries" }, ErrUnknownCategory},
		{"zero amount", func(tx *Transaction) { tx.Amount = Money{} }, ErrInvalidAmount},
		{"zero date", func(tx *Transaction) { tx.Date = Date{Time: time.Time{}} }, ErrInvalidDate},
		{"long note", func(tx *Transaction) { tx.Note = strings.Repeat("x", 201) }, ErrNoteTooLong},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tx := good
			tc.mutate(&tx)
			if err := tx.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("Validate() = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestCategoriesFor(t *testing.T) {
	inc := CategoriesFor(Income)
	exp := CategoriesFor(Expense)
	if len(inc) != 10 || len(exp) != 12 {
		t.Fatalf("unexpected sizes: income=%d expense=%d", len(inc), len(exp))
	}
	if inc[0].Name != "Business" || inc[0].Color != "#3B82F6" {
		t.Fatalf("unexpected first income category: %+v", inc[0])
	}
	// The expense palette is one color short; the last bucket wraps around.
	if last := exp[11]; last.Name != "Other" || last.Color != "#B91C1C" {
		t.Fatalf("unexpected last expense category: %+v", last)
	}
	for _, c := range append(inc, exp...) {
		if c.Color == "" {
			t.Fatalf("category %q has no color", c.Name)
		}
	}
	if CategoriesFor("transfer") != nil {
		t.Fatalf("expected nil for unknown type")
	}

	// Returned slices are copies.
	inc[0].Name = "mutated"
	if CategoriesFor(Income)[0].Name != "Business" {
		t.Fatalf("canonical list was mutated through a returned slice")
	}
}

func TestPeriod(t *testing.T) {
	p := Period{Year: 2025, Month: 12}
	if got := p.Label(); got != "DECEMBER 2025" {
		t.Fatalf("Label() = %q", got)
	}
	if got := p.Key(); got != "2025-12" {
		t.Fatalf("Key() = %q", got)
	}
	from, to := p.Range()
	if !from.Equal(time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)) || !to.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("Range() = %v, %v", from, to)
	}
	if !p.Contains(NewDate(2025, 12, 31)) || p.Contains(NewDate(2026, 1, 1)) {
		t.Fatalf("Contains() boundaries wrong")
	}
	if err := (Period{Year: 2025, Month: 13}).Validate(); err == nil {
		t.Fatalf("expected error for month 13")
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]Transaction{
		{Type: Income, Amount: Money{Cents: 800000}},
		{Type: Expense, Amount: Money{Cents: 135000}},
		{Type: Expense, Amount: Money{Cents: 165000}},
	})
	if s.Income.Cents != 800000 || s.Expense.Cents != 300000 || s.Balance.Cents != 500000 {
		t.Fatalf("unexpected summary: %+v", s)
	}
}
