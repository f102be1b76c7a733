package http

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/skprof1/expenses-tracker/internal/chart"
	"github.com/skprof1/expenses-tracker/internal/core"
	"github.com/skprof1/expenses-tracker/internal/log"
)

// handleDashboard renders the month page with both donuts.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	logger := log.FromContext(r.Context())
	if s.templates == nil {
		logger.ErrorContext(r.Context(), "Templates not loaded", log.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	board := s.boardFor(w, r)
	snap := s.snapshotOrEmpty(r)
	board.Update(snap.Donuts()...)

	now := s.now()
	page := newDashboardPage(snap, board, core.NewDate(now.Year(), int(now.Month()), now.Day()))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "dashboard.html", page); err != nil {
		logger.ErrorContext(r.Context(), "Dashboard template execution failed", log.FieldError, err, log.FieldOperation, log.OpRender)
	}
}

// handleCreateTransactionForm records a transaction posted by the entry form
// and asks the page to refresh its charts.
func (s *Server) handleCreateTransactionForm(w http.ResponseWriter, r *http.Request) {
	logger := log.FromContext(r.Context())

	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		ErrorResponse(http.StatusBadRequest, "Invalid request format").Write(w)
		return
	}
	tx, err := p.ParseTransaction(s.now())
	if err != nil {
		ErrorResponse(http.StatusUnprocessableEntity, "Invalid input: "+err.Error()).Write(w)
		return
	}

	saved, err := s.txs.Record(r.Context(), tx)
	if err != nil {
		if isValidationError(err) {
			ErrorResponse(http.StatusUnprocessableEntity, "Invalid input: "+err.Error()).Write(w)
			return
		}
		logger.ErrorContext(r.Context(), "Transaction save failed", log.NewFields().WithError(err).WithOperation(log.OpCreate).ToSlice()...)
		ErrorResponse(http.StatusInternalServerError, "Could not save the transaction").Write(w)
		return
	}

	msg := "Added " + saved.Category + " " + chart.FormatAmount(saved.Amount)
	NewHTMXResponse().
		TriggerTransactionRecorded(saved.Date.Period()).
		TriggerFormReset().
		TriggerNotification(NotificationSuccess, msg, 3000).
		BodyHTML(`<div class="success">` + template.HTMLEscapeString(msg) + `</div>`).
		Write(w)
}

var validationErrors = []error{
	core.ErrInvalidType,
	core.ErrInvalidAmount,
	core.ErrInvalidDate,
	core.ErrEmptyCategory,
	core.ErrUnknownCategory,
	core.ErrNoteTooLong,
}

func isValidationError(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
