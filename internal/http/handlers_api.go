package http

import (
	"errors"
	"net/http"
	"sort"
	"strings"

	"github.com/skprof1/expenses-tracker/internal/core"
	"github.com/skprof1/expenses-tracker/internal/log"
)

func (s *Server) handleDashboardJSON(w http.ResponseWriter, r *http.Request) {
	period := ParseMonthParams(r.URL.Query(), s.now())
	snap, err := s.dash.Snapshot(r.Context(), period)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Dashboard snapshot failed", log.FieldError, err, log.FieldPeriod, period.Key())
		RespondError(w, http.StatusInternalServerError, "failed to load dashboard", nil)
		return
	}
	RespondJSON(w, http.StatusOK, newDashboardJSON(snap))
}

// handleListTransactions lists the month's transactions, optionally of one
// type, newest first.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	period := ParseMonthParams(r.URL.Query(), s.now())

	types := []core.TransactionType{core.Income, core.Expense}
	if v := strings.TrimSpace(r.URL.Query().Get("type")); v != "" {
		t := core.TransactionType(strings.ToLower(v))
		if !t.Valid() {
			RespondError(w, http.StatusBadRequest, "invalid type", v)
			return
		}
		types = []core.TransactionType{t}
	}

	var all []core.Transaction
	for _, t := range types {
		txs, err := s.txs.List(r.Context(), period, t)
		if err != nil {
			log.FromContext(r.Context()).ErrorContext(r.Context(), "List transactions failed",
				log.NewFields().WithError(err).WithOperation(log.OpList).ToSlice()...)
			RespondError(w, http.StatusInternalServerError, "failed to list transactions", nil)
			return
		}
		all = append(all, txs...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	out := make([]transactionView, 0, len(all))
	for _, tx := range all {
		out = append(out, newTransactionView(tx))
	}
	RespondJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateTransactionJSON(w http.ResponseWriter, r *http.Request) {
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	tx, err := p.ParseTransaction(s.now())
	if err != nil {
		var fe *fieldError
		if errors.As(err, &fe) {
			RespondError(w, http.StatusUnprocessableEntity, fe.Err.Error(), map[string]string{"field": fe.Field})
			return
		}
		RespondError(w, http.StatusUnprocessableEntity, err.Error(), nil)
		return
	}

	saved, err := s.txs.Record(r.Context(), tx)
	if err != nil {
		if isValidationError(err) {
			RespondError(w, http.StatusUnprocessableEntity, err.Error(), nil)
			return
		}
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Transaction save failed",
			log.NewFields().WithError(err).WithOperation(log.OpCreate).ToSlice()...)
		RespondError(w, http.StatusInternalServerError, "failed to save transaction", nil)
		return
	}
	RespondJSON(w, http.StatusCreated, newTransactionView(saved))
}
