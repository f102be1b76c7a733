package chart

import (
	"errors"
	"sync"

	"github.com/skprof1/expenses-tracker/internal/core"
)

// Chart instance identifiers used on the dashboard.
const (
	IncomeChart  = "income"
	ExpenseChart = "expense"
)

var ErrUnknownChart = errors.New("unknown chart")

// Donut is an immutable render snapshot of one chart instance.
type Donut struct {
	ID          string               `json:"id"`
	Type        core.TransactionType `json:"type"`
	Title       string               `json:"title"`
	CenterValue core.Money           `json:"-"`
	Ring        Ring                 `json:"ring"`
	Segments    []Segment            `json:"segments"`
}

// BuildDonut aggregates txs of type t against the canonical categories and
// lays the result out on ring.
func BuildDonut(id string, t core.TransactionType, title string, center core.Money, txs []core.Transaction, referenceTotal core.Money, ring Ring) Donut {
	shares := Aggregate(txs, t, core.CategoriesFor(t), referenceTotal)
	return Donut{
		ID:          id,
		Type:        t,
		Title:       title,
		CenterValue: center,
		Ring:        ring,
		Segments:    BuildSegments(shares, ring, ByPercentage),
	}
}

// HitTest resolves p against the donut's own ring and segments.
func (d Donut) HitTest(p Point) (Segment, bool) {
	i, ok := HitTest(p, d.Ring, d.Segments)
	if !ok {
		return Segment{}, false
	}
	return d.Segments[i], true
}

type instance struct {
	donut   Donut
	tooltip *Tooltip
	// leftAt is the client stamp of the latest leave; moves stamped at or
	// before it arrived late and are dropped.
	leftAt float64
}

// Board hosts several chart instances side by side. Each instance owns its
// tooltip; events addressed to one instance never touch another. Methods
// are safe for concurrent use and apply events one at a time.
type Board struct {
	mu        sync.Mutex
	instances map[string]*instance
}

// NewBoard mounts one empty instance per id, each with a hidden tooltip.
func NewBoard(ring Ring, ids ...string) *Board {
	b := &Board{instances: make(map[string]*instance, len(ids))}
	for _, id := range ids {
		b.instances[id] = &instance{
			donut:   Donut{ID: id, Ring: ring},
			tooltip: NewTooltip(id),
		}
	}
	return b
}

// Update swaps in new snapshots. Donuts whose id is not mounted are ignored.
func (b *Board) Update(donuts ...Donut) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, d := range donuts {
		if inst, ok := b.instances[d.ID]; ok {
			inst.donut = d
		}
	}
}

// Donut returns the current snapshot of instance id.
func (b *Board) Donut(id string) (Donut, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	inst, ok := b.instances[id]
	if !ok {
		return Donut{}, false
	}
	return inst.donut, true
}

// PointerMove feeds a pointer position to instance id.
func (b *Board) PointerMove(id string, p Point) (TooltipState, error) {
	return b.PointerMoveAt(id, p, 0)
}

// PointerMoveAt is PointerMove for events carrying a client stamp. A move
// stamped no later than the last stamped leave is ignored, so a leave wins
// over moves delivered after it. A zero stamp is never ignored.
func (b *Board) PointerMoveAt(id string, p Point, stamp float64) (TooltipState, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	inst, ok := b.instances[id]
	if !ok {
		return TooltipState{}, ErrUnknownChart
	}
	if stamp > 0 && stamp <= inst.leftAt {
		return inst.tooltip.State(), nil
	}
	return inst.tooltip.PointerMove(p, inst.donut.Ring, inst.donut.Segments), nil
}

// PointerLeave hides the tooltip of instance id.
func (b *Board) PointerLeave(id string) (TooltipState, error) {
	return b.PointerLeaveAt(id, 0)
}

// PointerLeaveAt hides the tooltip and records stamp as the latest leave.
func (b *Board) PointerLeaveAt(id string, stamp float64) (TooltipState, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	inst, ok := b.instances[id]
	if !ok {
		return TooltipState{}, ErrUnknownChart
	}
	if stamp > inst.leftAt {
		inst.leftAt = stamp
	}
	return inst.tooltip.PointerLeave(), nil
}

// Tooltip returns the tooltip state of instance id.
func (b *Board) Tooltip(id string) (TooltipState, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	inst, ok := b.instances[id]
	if !ok {
		return TooltipState{}, false
	}
	return inst.tooltip.State(), true
}
