package memory

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/skprof1/expenses-tracker/internal/core"
	"github.com/skprof1/expenses-tracker/internal/ledger"
)

var _ ledger.Store = (*Store)(nil)

type Store struct {
	mu    sync.Mutex
	items []core.Transaction
}

func New(seed ...core.Transaction) *Store {
	return &Store{items: append([]core.Transaction(nil), seed...)}
}

// NewFromFiles seeds the store from base/seed_transactions.txt when present.
// Each non-comment line is "YYYY-MM-DD;type;category;amount[;note]".
// Invalid lines are skipped.
func NewFromFiles(base string) *Store {
	return New(readSeed(filepath.Join(base, "seed_transactions.txt"))...)
}

// Append stores the transaction and returns a synthetic row reference.
func (s *Store) Append(_ context.Context, tx core.Transaction) (string, error) {
	if err := tx.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, tx)
	return fmt.Sprintf("mem:%d", len(s.items)), nil
}

// ListTransactions returns matching transactions, newest first.
func (s *Store) ListTransactions(_ context.Context, period core.Period, t core.TransactionType) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Transaction
	for _, tx := range s.items {
		if tx.Type == t && period.Contains(tx.Date) {
			out = append(out, tx)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func readSeed(path string) []core.Transaction {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	var out []core.Transaction
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		tx, err := parseSeedLine(text)
		if err != nil {
			continue
		}
		tx.ID = fmt.Sprintf("seed:%d", line)
		out = append(out, tx)
	}
	return out
}

func parseSeedLine(s string) (core.Transaction, error) {
	parts := strings.Split(s, ";")
	if len(parts) < 4 {
		return core.Transaction{}, fmt.Errorf("expected at least 4 fields, got %d", len(parts))
	}
	day, err := time.Parse("2006-01-02", strings.TrimSpace(parts[0]))
	if err != nil {
		return core.Transaction{}, err
	}
	cents, err := core.ParseDecimalToCents(parts[3])
	if err != nil {
		return core.Transaction{}, err
	}
	tx := core.Transaction{
		Type:      core.TransactionType(strings.TrimSpace(parts[1])),
		Category:  strings.TrimSpace(parts[2]),
		Amount:    core.Money{Cents: cents},
		Date:      core.Date{Time: day},
		CreatedAt: day,
	}
	if len(parts) > 4 {
		tx.Note = strings.TrimSpace(parts[4])
	}
	return tx, tx.Validate()
}
