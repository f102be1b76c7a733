package chart

import (
	"math"

	"github.com/skprof1/expenses-tracker/internal/core"
)

// Share is one category's slice of a series.
type Share struct {
	Name       string     `json:"name"`
	Color      string     `json:"color"`
	Amount     core.Money `json:"-"`
	Percentage float64    `json:"percentage"`
}

// Aggregate sums the transactions of type t per canonical category.
//
// Percentages are taken against referenceTotal (not the series' own sum) so
// that two series can be drawn on a shared scale; a zero reference is
// replaced by one unit, which yields 0% everywhere. Categories without
// money are dropped and the output follows the canonical order, capped at
// the canonical list length. Transactions of another type or with a
// category outside the list are ignored. Amounts are not validated here.
func Aggregate(txs []core.Transaction, t core.TransactionType, categories []core.Category, referenceTotal core.Money) []Share {
	if len(txs) == 0 || len(categories) == 0 {
		return nil
	}

	sums := make(map[string]int64, len(categories))
	for _, tx := range txs {
		if tx.Type != t {
			continue
		}
		sums[tx.Category] += tx.Amount.Cents
	}

	denominator := math.Max(referenceTotal.Units(), 1)
	limit := min(len(categories), core.MaxCategories)

	out := make([]Share, 0, limit)
	for _, c := range categories {
		if len(out) == limit {
			break
		}
		cents := sums[c.Name]
		if cents == 0 {
			continue
		}
		amount := core.Money{Cents: cents}
		out = append(out, Share{
			Name:       c.Name,
			Color:      c.Color,
			Amount:     amount,
			Percentage: amount.Units() / denominator * 100,
		})
	}
	return out
}
