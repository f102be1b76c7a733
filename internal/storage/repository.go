package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/skprof1/expenses-tracker/internal/core"
	"github.com/skprof1/expenses-tracker/internal/ledger"

	_ "modernc.org/sqlite"
)

const dateLayout = "2006-01-02"

var _ ledger.Store = (*SQLiteRepository)(nil)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping reports whether the database is reachable.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Append implements ledger.TransactionWriter. A missing ID is generated.
func (r *SQLiteRepository) Append(ctx context.Context, tx core.Transaction) (string, error) {
	if err := tx.Validate(); err != nil {
		return "", fmt.Errorf("validation failed: %w", err)
	}
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (id, type, category, amount_cents, occurred_on, note, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, string(tx.Type), tx.Category, tx.Amount.Cents,
		tx.Date.Format(dateLayout), tx.Note, tx.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return "", fmt.Errorf("insert transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved to SQLite",
		"id", tx.ID,
		"type", tx.Type,
		"category", tx.Category,
		"amount_cents", tx.Amount.Cents,
		"date", tx.Date.Format(dateLayout))

	return tx.ID, nil
}

// ListTransactions implements ledger.TransactionLister, newest first.
func (r *SQLiteRepository) ListTransactions(ctx context.Context, period core.Period, t core.TransactionType) ([]core.Transaction, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}
	from, to := period.Range()

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, type, category, amount_cents, occurred_on, note, created_at
		   FROM transactions
		  WHERE type = ? AND occurred_on >= ? AND occurred_on < ?
		  ORDER BY created_at DESC, id DESC`,
		string(t), from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

// MonthTotals sums the period's transactions by type in the database.
func (r *SQLiteRepository) MonthTotals(ctx context.Context, period core.Period) (core.Summary, error) {
	if err := period.Validate(); err != nil {
		return core.Summary{}, err
	}
	from, to := period.Range()

	var s core.Summary
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(CASE WHEN type = 'income' THEN amount_cents END), 0),
		        COALESCE(SUM(CASE WHEN type = 'expense' THEN amount_cents END), 0)
		   FROM transactions
		  WHERE occurred_on >= ? AND occurred_on < ?`,
		from.Format(dateLayout), to.Format(dateLayout)).
		Scan(&s.Income.Cents, &s.Expense.Cents)
	if err != nil {
		return core.Summary{}, fmt.Errorf("sum transactions: %w", err)
	}
	s.Balance.Cents = s.Income.Cents - s.Expense.Cents
	return s, nil
}

func scanTransaction(rows *sql.Rows) (core.Transaction, error) {
	var (
		tx         core.Transaction
		typ        string
		occurredOn string
		createdAt  string
	)
	if err := rows.Scan(&tx.ID, &typ, &tx.Category, &tx.Amount.Cents, &occurredOn, &tx.Note, &createdAt); err != nil {
		return core.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}
	tx.Type = core.TransactionType(typ)

	day, err := time.Parse(dateLayout, occurredOn)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse occurred_on %q: %w", occurredOn, err)
	}
	tx.Date = core.Date{Time: day}

	created, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	tx.CreatedAt = created
	return tx, nil
}
