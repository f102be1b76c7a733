package http

import (
	"fmt"
	"html/template"

	"github.com/skprof1/expenses-tracker/internal/chart"
	"github.com/skprof1/expenses-tracker/internal/core"
	"github.com/skprof1/expenses-tracker/internal/services"
)

var templateFuncs = template.FuncMap{
	"money": chart.FormatAmount,
	"f2":    func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"pct":   func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
}

type donutView struct {
	chart.Donut
	Size    float64
	Tooltip chart.TooltipState
}

// TooltipVisible reports whether this instance draws its tooltip.
func (d donutView) TooltipVisible() bool {
	return d.Tooltip.VisibleFor(d.ID)
}

type transactionView struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Cents    int64  `json:"amount_cents"`
	Date     string `json:"date"`
	Note     string `json:"note,omitempty"`
}

func newTransactionView(tx core.Transaction) transactionView {
	return transactionView{
		ID:       tx.ID,
		Type:     string(tx.Type),
		Category: tx.Category,
		Amount:   chart.FormatAmount(tx.Amount),
		Cents:    tx.Amount.Cents,
		Date:     tx.Date.Format("2006-01-02"),
		Note:     tx.Note,
	}
}

type dashboardPage struct {
	Period            core.Period
	Label             string
	Prev, Next        core.Period
	Income            string
	Expense           string
	Balance           string
	Charts            []donutView
	Recent            []transactionView
	IncomeCategories  []core.Category
	ExpenseCategories []core.Category
	Today             string
}

func newDashboardPage(snap services.Snapshot, board *chart.Board, today core.Date) dashboardPage {
	p := dashboardPage{
		Period:            snap.Period,
		Label:             snap.Period.Label(),
		Prev:              shiftPeriod(snap.Period, -1),
		Next:              shiftPeriod(snap.Period, 1),
		Income:            chart.FormatAmount(snap.Summary.Income),
		Expense:           chart.FormatAmount(snap.Summary.Expense),
		Balance:           chart.FormatAmount(snap.Summary.Balance),
		IncomeCategories:  core.CategoriesFor(core.Income),
		ExpenseCategories: core.CategoriesFor(core.Expense),
		Today:             today.Format("2006-01-02"),
	}
	for _, d := range snap.Donuts() {
		v := donutView{Donut: d, Size: d.Ring.Size()}
		if board != nil {
			v.Tooltip, _ = board.Tooltip(d.ID)
		}
		p.Charts = append(p.Charts, v)
	}
	for _, tx := range snap.Recent {
		p.Recent = append(p.Recent, newTransactionView(tx))
	}
	return p
}

func shiftPeriod(p core.Period, months int) core.Period {
	from, _ := p.Range()
	return core.CurrentPeriod(from.AddDate(0, months, 0))
}

// JSON shapes of the API.

type segmentJSON struct {
	chart.Segment
	Amount      float64 `json:"amount"`
	AmountLabel string  `json:"amount_label"`
}

type donutJSON struct {
	ID          string        `json:"id"`
	Type        string        `json:"type"`
	Title       string        `json:"title"`
	CenterValue float64       `json:"center_value"`
	CenterLabel string        `json:"center_label"`
	Ring        chart.Ring    `json:"ring"`
	Segments    []segmentJSON `json:"segments"`
}

type summaryJSON struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

type dashboardJSON struct {
	Period  string      `json:"period"`
	Label   string      `json:"label"`
	Summary summaryJSON `json:"summary"`
	Charts  []donutJSON `json:"charts"`
}

type hitJSON struct {
	Chart   string       `json:"chart"`
	Point   chart.Point  `json:"point"`
	Angle   float64      `json:"angle"`
	Hit     bool         `json:"hit"`
	Segment *segmentJSON `json:"segment,omitempty"`
}

func newSegmentJSON(s chart.Segment) segmentJSON {
	return segmentJSON{Segment: s, Amount: s.Amount.Units(), AmountLabel: chart.FormatAmount(s.Amount)}
}

func newDonutJSON(d chart.Donut) donutJSON {
	out := donutJSON{
		ID:          d.ID,
		Type:        string(d.Type),
		Title:       d.Title,
		CenterValue: d.CenterValue.Units(),
		CenterLabel: chart.FormatAmount(d.CenterValue),
		Ring:        d.Ring,
		Segments:    make([]segmentJSON, 0, len(d.Segments)),
	}
	for _, s := range d.Segments {
		out.Segments = append(out.Segments, newSegmentJSON(s))
	}
	return out
}

func newDashboardJSON(snap services.Snapshot) dashboardJSON {
	out := dashboardJSON{
		Period: snap.Period.Key(),
		Label:  snap.Period.Label(),
		Summary: summaryJSON{
			Income:  snap.Summary.Income.Units(),
			Expense: snap.Summary.Expense.Units(),
			Balance: snap.Summary.Balance.Units(),
		},
	}
	for _, d := range snap.Donuts() {
		out.Charts = append(out.Charts, newDonutJSON(d))
	}
	return out
}

// TooltipPartial is the data of the instance's tooltip fragment.
func (d donutView) TooltipPartial() tooltipPartial {
	return tooltipPartial{Owner: d.ID, State: d.Tooltip}
}
