package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/skprof1/expenses-tracker/internal/amqp"
	"github.com/skprof1/expenses-tracker/internal/core"
	"github.com/skprof1/expenses-tracker/internal/ledger"
	"github.com/skprof1/expenses-tracker/internal/log"
)

// Publisher broadcasts ledger events to other replicas.
type Publisher interface {
	PublishTransactionRecorded(ctx context.Context, msg *amqp.TransactionRecordedMessage) error
}

// Invalidator drops cached views of a period.
type Invalidator interface {
	Invalidate(period core.Period)
}

// TransactionService records transactions and tells everyone who caches
// derived views about it.
type TransactionService struct {
	store       ledger.Store
	invalidator Invalidator
	publisher   Publisher
	origin      string
	now         func() time.Time
	logger      *log.Logger
}

// NewTransactionService wires the service. invalidator and publisher may be
// nil. origin tags published events so a replica can skip its own.
func NewTransactionService(store ledger.Store, invalidator Invalidator, publisher Publisher, origin string, logger *log.Logger) *TransactionService {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &TransactionService{
		store:       store,
		invalidator: invalidator,
		publisher:   publisher,
		origin:      origin,
		now:         time.Now,
		logger:      logger.WithComponent(log.ComponentTransaction),
	}
}

// Record saves tx first, then invalidates and publishes. A publish failure
// is logged only; the transaction is already stored.
func (s *TransactionService) Record(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = s.now().UTC()
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, fmt.Errorf("validate transaction: %w", err)
	}

	ref, err := s.store.Append(ctx, tx)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}

	period := tx.Date.Period()
	if s.invalidator != nil {
		s.invalidator.Invalidate(period)
	}

	fields := log.NewFields().
		WithTransaction(tx.ID, string(tx.Type), tx.Category, tx.Amount.Cents).
		WithOperation(log.OpCreate)
	fields[log.FieldPeriod] = period.Key()
	s.logger.InfoContext(ctx, "Transaction recorded", append(fields.ToSlice(), "ref", ref)...)

	if s.publisher != nil {
		msg := amqp.NewTransactionRecordedMessage(tx, s.origin)
		if err := s.publisher.PublishTransactionRecorded(ctx, msg); err != nil {
			s.logger.ErrorContext(ctx, "Failed to publish transaction event",
				log.NewFields().WithError(err).WithOperation(log.OpPublish).
					WithTransaction(tx.ID, string(tx.Type), tx.Category, tx.Amount.Cents).ToSlice()...)
		}
	}

	return tx, nil
}

// List returns the period's transactions of type t, newest first.
func (s *TransactionService) List(ctx context.Context, period core.Period, t core.TransactionType) ([]core.Transaction, error) {
	if !t.Valid() {
		return nil, core.ErrInvalidType
	}
	if err := period.Validate(); err != nil {
		return nil, err
	}
	txs, err := s.store.ListTransactions(ctx, period, t)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}
