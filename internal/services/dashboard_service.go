package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/skprof1/expenses-tracker/internal/amqp"
	"github.com/skprof1/expenses-tracker/internal/cache"
	"github.com/skprof1/expenses-tracker/internal/chart"
	"github.com/skprof1/expenses-tracker/internal/core"
	"github.com/skprof1/expenses-tracker/internal/ledger"
	"github.com/skprof1/expenses-tracker/internal/log"
)

// Donut titles as shown on the dashboard.
const (
	IncomeTitle  = "Safe to spend"
	ExpenseTitle = "Total Expense"
)

const recentLimit = 8

// Snapshot is everything the dashboard renders for one month.
type Snapshot struct {
	Period  core.Period        `json:"period"`
	Summary core.Summary       `json:"-"`
	Income  chart.Donut        `json:"income"`
	Expense chart.Donut        `json:"expense"`
	Recent  []core.Transaction `json:"-"`
}

// Donuts returns both charts in display order.
func (s Snapshot) Donuts() []chart.Donut {
	return []chart.Donut{s.Income, s.Expense}
}

// Donut looks a chart up by instance id.
func (s Snapshot) Donut(id string) (chart.Donut, bool) {
	switch id {
	case s.Income.ID:
		return s.Income, true
	case s.Expense.ID:
		return s.Expense, true
	}
	return chart.Donut{}, false
}

// EmptySnapshot is rendered when the ledger cannot be read.
func EmptySnapshot(period core.Period, ring chart.Ring) Snapshot {
	return buildSnapshot(period, nil, nil, ring)
}

type DashboardService struct {
	lister ledger.TransactionLister
	ring   chart.Ring
	cache  *cache.LRUCache[Snapshot]
	origin string
	logger *log.Logger

	// generations counts invalidations per period key. A snapshot is only
	// cached if no invalidation happened while it was being built.
	mu          sync.Mutex
	generations map[string]uint64
}

// NewDashboardService builds snapshots on ring. A nil snapshots cache
// disables caching.
func NewDashboardService(lister ledger.TransactionLister, ring chart.Ring, snapshots *cache.LRUCache[Snapshot], origin string, logger *log.Logger) *DashboardService {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &DashboardService{
		lister:      lister,
		ring:        ring,
		cache:       snapshots,
		origin:      origin,
		logger:      logger.WithComponent(log.ComponentDashboard),
		generations: make(map[string]uint64),
	}
}

func (s *DashboardService) Ring() chart.Ring { return s.ring }

// Snapshot returns the month's dashboard, from cache when possible.
func (s *DashboardService) Snapshot(ctx context.Context, period core.Period) (Snapshot, error) {
	if err := period.Validate(); err != nil {
		return Snapshot{}, err
	}
	key := period.Key()
	if s.cache != nil {
		if snap, ok := s.cache.Get(key); ok {
			return snap, nil
		}
	}
	gen := s.generation(key)

	var income, expense []core.Transaction
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		txs, err := s.lister.ListTransactions(gctx, period, core.Income)
		if err != nil {
			return fmt.Errorf("list income: %w", err)
		}
		income = txs
		return nil
	})
	g.Go(func() error {
		txs, err := s.lister.ListTransactions(gctx, period, core.Expense)
		if err != nil {
			return fmt.Errorf("list expenses: %w", err)
		}
		expense = txs
		return nil
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}

	snap := buildSnapshot(period, income, expense, s.ring)
	if s.cache != nil && !s.storeIfCurrent(key, gen, snap) {
		s.logger.DebugContext(ctx, "Snapshot invalidated while building, not cached", log.FieldPeriod, key)
	}
	s.logger.DebugContext(ctx, "Dashboard snapshot built",
		log.FieldPeriod, key,
		"income_segments", len(snap.Income.Segments),
		"expense_segments", len(snap.Expense.Segments))
	return snap, nil
}

func buildSnapshot(period core.Period, income, expense []core.Transaction, ring chart.Ring) Snapshot {
	all := make([]core.Transaction, 0, len(income)+len(expense))
	all = append(all, income...)
	all = append(all, expense...)
	summary := core.Summarize(all)

	// balance + expense is the month's income; both rings share that scale.
	reference := core.Money{Cents: summary.Balance.Cents + summary.Expense.Cents}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	recent := all[:min(len(all), recentLimit)]

	return Snapshot{
		Period:  period,
		Summary: summary,
		Income:  chart.BuildDonut(chart.IncomeChart, core.Income, IncomeTitle, summary.Balance, income, reference, ring),
		Expense: chart.BuildDonut(chart.ExpenseChart, core.Expense, ExpenseTitle, summary.Expense, expense, reference, ring),
		Recent:  recent,
	}
}

func (s *DashboardService) generation(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations[key]
}

// storeIfCurrent caches snap unless key was invalidated after gen was read.
func (s *DashboardService) storeIfCurrent(key string, gen uint64, snap Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generations[key] != gen {
		return false
	}
	s.cache.Set(key, snap)
	return true
}

// Invalidate drops the cached snapshot of period and keeps builds that
// are already in flight from caching their result.
func (s *DashboardService) Invalidate(period core.Period) {
	key := period.Key()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generations[key]++
	if s.cache != nil {
		s.cache.Delete(key)
	}
}

// HandleTransactionRecorded invalidates on events from other replicas.
func (s *DashboardService) HandleTransactionRecorded(msg *amqp.TransactionRecordedMessage) error {
	if msg.Origin != "" && msg.Origin == s.origin {
		return nil
	}
	s.Invalidate(msg.Period())
	s.logger.Debug("Snapshot invalidated by remote event",
		log.FieldPeriod, msg.Period().Key(), log.FieldTransactionID, msg.ID)
	return nil
}
