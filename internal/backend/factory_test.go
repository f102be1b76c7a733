package backend

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/skprof1/expenses-tracker/internal/config"
	"github.com/skprof1/expenses-tracker/internal/core"
)

func TestFromAppConfig(t *testing.T) {
	if _, err := FromAppConfig(nil); err == nil {
		t.Fatal("expected error for nil config")
	}
	if _, err := FromAppConfig(&config.Config{DataBackend: "postgres"}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
	got, err := FromAppConfig(&config.Config{DataBackend: "sqlite", SQLiteDBPath: "x.db"})
	if err != nil || got.Type != SQLiteBackend || got.SQLiteDBPath != "x.db" {
		t.Fatalf("FromAppConfig = %+v, %v", got, err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"memory", Config{Type: MemoryBackend}, false},
		{"sqlite without path", Config{Type: SQLiteBackend}, true},
		{"sheets without id", Config{Type: SheetsBackend}, true},
		{"unknown", Config{Type: "csv"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateMemoryBackendSeeds(t *testing.T) {
	dir := t.TempDir()
	seed := "2025-12-01;income;Salary;3200\n"
	if err := os.WriteFile(filepath.Join(dir, "seed_transactions.txt"), []byte(seed), 0644); err != nil {
		t.Fatal(err)
	}

	res, err := NewFactory(nil).CreateBackend(context.Background(), Config{Type: MemoryBackend, DataDirectory: dir})
	if err != nil {
		t.Fatalf("CreateBackend: %v", err)
	}
	defer res.Close()

	txs, err := res.Store.ListTransactions(context.Background(), core.Period{Year: 2025, Month: 12}, core.Income)
	if err != nil || len(txs) != 1 {
		t.Fatalf("seeded store = %v, %v", txs, err)
	}
	if err := res.Ready(context.Background()); err != nil {
		t.Fatalf("memory store should be ready: %v", err)
	}
}

func TestCreateSQLiteBackend(t *testing.T) {
	res, err := NewFactory(nil).CreateBackend(context.Background(), Config{
		Type:         SQLiteBackend,
		SQLiteDBPath: filepath.Join(t.TempDir(), "expenses.db"),
	})
	if err != nil {
		t.Fatalf("CreateBackend: %v", err)
	}
	if err := res.Ready(context.Background()); err != nil {
		t.Fatalf("Ready: %v", err)
	}
	if err := res.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
