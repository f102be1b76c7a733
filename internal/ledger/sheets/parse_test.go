package sheets

import (
	"testing"

	"github.com/skprof1/expenses-tracker/internal/core"
)

func TestParseRows(t *testing.T) {
	values := [][]interface{}{
		{"2025-12-01", "income", "Salary", "3200.00", "", "a1"},
		{"2025-12-02", "Expense", "Groceries", "$1,350.50"},
		{"2025-12-03", "expense", "Groceries", "13,5", "market"},
		{},
		{"", "", ""},
		{"yesterday", "expense", "Car", "10"},
		{"2025-12-04", "expense", "Salary", "10"},
		{"2025-12-05", "expense"},
		{"2025-12-06", "income", "Bonus", 1500000.0},
	}
	txs, skipped := parseRows(values)
	if skipped != 3 {
		t.Fatalf("skipped = %d, want 3", skipped)
	}
	if len(txs) != 4 {
		t.Fatalf("parsed %d rows: %+v", len(txs), txs)
	}
	if txs[0].ID != "a1" || txs[0].Amount.Cents != 320000 || txs[0].Type != core.Income {
		t.Fatalf("unexpected first row: %+v", txs[0])
	}
	if txs[1].Amount.Cents != 135050 || txs[1].Type != core.Expense {
		t.Fatalf("unexpected second row: %+v", txs[1])
	}
	if txs[2].Amount.Cents != 1350 || txs[2].Note != "market" {
		t.Fatalf("unexpected third row: %+v", txs[2])
	}
	if txs[3].Amount.Cents != 150000000 {
		t.Fatalf("numeric cell: got %d cents", txs[3].Amount.Cents)
	}
}

func TestFormatRowRoundTrip(t *testing.T) {
	tx := core.Transaction{
		ID:       "abc",
		Type:     core.Expense,
		Category: "Pets",
		Amount:   core.Money{Cents: 4599},
		Date:     core.NewDate(2025, 6, 9),
		Note:     "vet",
	}
	row := formatRow(tx)
	if row[0] != "2025-06-09" || row[3] != "45.99" {
		t.Fatalf("unexpected row: %v", row)
	}
	got, skipped := parseRows([][]interface{}{row})
	if skipped != 0 || len(got) != 1 {
		t.Fatalf("round trip failed: %v skipped=%d", got, skipped)
	}
	if got[0].ID != tx.ID || got[0].Amount != tx.Amount || !got[0].Date.Equal(tx.Date.Time) {
		t.Fatalf("round trip mismatch: %+v", got[0])
	}
}
