package sheets

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"github.com/skprof1/expenses-tracker/internal/core"
)

func TestNew_MissingSpreadsheetID(t *testing.T) {
	_, err := New(context.Background(), Config{SpreadsheetID: "  "})
	if err == nil || err.Error() != "missing spreadsheet id" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewSheetsService_MissingCredentials(t *testing.T) {
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_JSON", "")
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_FILE", "")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")

	_, err := New(context.Background(), Config{SpreadsheetID: "sheet-id"})
	if err == nil || !strings.Contains(err.Error(), "missing service account credentials") {
		t.Fatalf("expected missing credentials error, got: %v", err)
	}
}

func TestNewSheetsService_UnreadableFile(t *testing.T) {
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_JSON", "")
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_FILE", filepath.Join(t.TempDir(), "missing.json"))

	_, err := New(context.Background(), Config{SpreadsheetID: "sheet-id"})
	if err == nil || !strings.Contains(err.Error(), "read service account file") {
		t.Fatalf("expected read error, got: %v", err)
	}
}

func TestSheetName(t *testing.T) {
	tests := []struct {
		base string
		year int
		want string
	}{
		{"Transactions", 2025, "2025 Transactions"},
		{"Ledger", 2024, "2024 Ledger"},
	}
	for _, tt := range tests {
		c := &Client{sheetBase: tt.base}
		if got := c.sheetName(tt.year); got != tt.want {
			t.Errorf("sheetName(%d) = %q, want %q", tt.year, got, tt.want)
		}
	}
}

// fakeSheets serves the two Values endpoints the client uses.
type fakeSheets struct {
	mu   sync.Mutex
	rows [][]any
	gets []string
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, ":append"):
		var vr gsheet.ValueRange
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &vr); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.rows = append(f.rows, vr.Values...)
		_ = json.NewEncoder(w).Encode(gsheet.AppendValuesResponse{
			Updates: &gsheet.UpdateValuesResponse{UpdatedRange: "'2025 Transactions'!A2:F2"},
		})
	case r.Method == http.MethodGet:
		f.gets = append(f.gets, r.URL.Path)
		_ = json.NewEncoder(w).Encode(gsheet.ValueRange{Values: f.rows})
	default:
		http.NotFound(w, r)
	}
}

func newFakeClient(t *testing.T, fake *fakeSheets) *Client {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	svc, err := gsheet.NewService(context.Background(),
		goption.WithEndpoint(srv.URL+"/"),
		goption.WithHTTPClient(srv.Client()),
		goption.WithoutAuthentication())
	if err != nil {
		t.Fatalf("sheets service: %v", err)
	}
	return &Client{svc: svc, spreadsheetID: "sheet-id", sheetBase: "Transactions"}
}

func TestAppendAndList(t *testing.T) {
	fake := &fakeSheets{}
	c := newFakeClient(t, fake)
	ctx := context.Background()

	for _, tx := range []core.Transaction{
		{ID: "t1", Type: core.Income, Category: "Salary", Amount: core.Money{Cents: 320000}, Date: core.NewDate(2025, 12, 1)},
		{ID: "t2", Type: core.Expense, Category: "Groceries", Amount: core.Money{Cents: 1250}, Date: core.NewDate(2025, 12, 2)},
		{ID: "t3", Type: core.Expense, Category: "Car", Amount: core.Money{Cents: 5000}, Date: core.NewDate(2025, 11, 30)},
		{ID: "t4", Type: core.Expense, Category: "Pets", Amount: core.Money{Cents: 700}, Date: core.NewDate(2025, 12, 9)},
	} {
		ref, err := c.Append(ctx, tx)
		if err != nil {
			t.Fatalf("append %s: %v", tx.ID, err)
		}
		if ref == "" {
			t.Fatalf("append %s: empty row reference", tx.ID)
		}
	}

	got, err := c.ListTransactions(ctx, core.Period{Year: 2025, Month: 12}, core.Expense)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ID != "t4" || got[1].ID != "t2" {
		t.Fatalf("expected December expenses newest first, got %+v", got)
	}
	if got[1].Amount.Cents != 1250 {
		t.Errorf("amount: got %d, want 1250", got[1].Amount.Cents)
	}
	if len(fake.gets) != 1 || !strings.Contains(fake.gets[0], "2025 Transactions") {
		t.Errorf("expected a read of the 2025 sheet, got %v", fake.gets)
	}
}

func TestAppendRejectsInvalid(t *testing.T) {
	c := newFakeClient(t, &fakeSheets{})
	_, err := c.Append(context.Background(), core.Transaction{
		Type: core.Expense, Category: "Groceries", Amount: core.Money{Cents: 0}, Date: core.NewDate(2025, 12, 2),
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
}
