package sheets

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/skprof1/expenses-tracker/internal/core"
)

// Column layout: Date | Type | Category | Amount | Note | ID
const dateLayout = "2006-01-02"

func formatRow(tx core.Transaction) []any {
	return []any{
		tx.Date.Format(dateLayout),
		string(tx.Type),
		tx.Category,
		strconv.FormatFloat(tx.Amount.Units(), 'f', 2, 64),
		tx.Note,
		tx.ID,
	}
}

// parseRows converts a values matrix (as returned by Sheets API) into
// transactions. Rows that cannot be read are counted and skipped.
func parseRows(values [][]interface{}) ([]core.Transaction, int) {
	out := make([]core.Transaction, 0, len(values))
	skipped := 0
	for _, raw := range values {
		row := toStrings(raw)
		if len(row) == 0 || strings.Join(row, "") == "" {
			continue
		}
		tx, err := parseRow(row)
		if err != nil {
			skipped++
			continue
		}
		out = append(out, tx)
	}
	return out, skipped
}

func parseRow(row []string) (core.Transaction, error) {
	if len(row) < 4 {
		return core.Transaction{}, fmt.Errorf("expected at least 4 columns, got %d", len(row))
	}
	day, err := time.Parse(dateLayout, row[0])
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse date %q: %w", row[0], err)
	}
	cents, err := core.ParseDecimalToCents(row[3])
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse amount %q: %w", row[3], err)
	}
	tx := core.Transaction{
		Type:      core.TransactionType(strings.ToLower(row[1])),
		Category:  row[2],
		Amount:    core.Money{Cents: cents},
		Date:      core.Date{Time: day},
		Note:      safeGet(row, 4),
		ID:        safeGet(row, 5),
		CreatedAt: day,
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	return tx, nil
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		// Unformatted numbers arrive as float64; avoid exponent notation.
		if f, ok := v.(float64); ok {
			out[i] = strconv.FormatFloat(f, 'f', -1, 64)
			continue
		}
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func safeGet(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
