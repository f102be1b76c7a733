package core

import (
	"fmt"
	"strings"
	"time"
)

// Period is a calendar month.
type Period struct {
	Year  int
	Month int // 1-12
}

// CurrentPeriod returns the month containing now.
func CurrentPeriod(now time.Time) Period {
	return Period{Year: now.Year(), Month: int(now.Month())}
}

func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return fmt.Errorf("invalid month: %d", p.Month)
	}
	if p.Year < 1 {
		return fmt.Errorf("invalid year: %d", p.Year)
	}
	return nil
}

// Range returns the half-open interval [from, to) covering the month.
func (p Period) Range() (from, to time.Time) {
	from = time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

// Contains reports whether d falls inside the month.
func (p Period) Contains(d Date) bool {
	return d.Year() == p.Year && int(d.Time.Month()) == p.Month
}

// Label renders the dashboard heading, e.g. "DECEMBER 2025".
func (p Period) Label() string {
	return fmt.Sprintf("%s %d", strings.ToUpper(time.Month(p.Month).String()), p.Year)
}

// Key identifies the period in caches and messages.
func (p Period) Key() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// Summary holds the three headline figures of a month.
type Summary struct {
	Income  Money
	Expense Money
	Balance Money
}

// Summarize totals the given transactions by type.
func Summarize(txs []Transaction) Summary {
	var s Summary
	for _, tx := range txs {
		switch tx.Type {
		case Income:
			s.Income.Cents += tx.Amount.Cents
		case Expense:
			s.Expense.Cents += tx.Amount.Cents
		}
	}
	s.Balance.Cents = s.Income.Cents - s.Expense.Cents
	return s
}
