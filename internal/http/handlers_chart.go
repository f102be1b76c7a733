package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/skprof1/expenses-tracker/internal/chart"
	"github.com/skprof1/expenses-tracker/internal/log"
)

type tooltipPartial struct {
	Owner string
	State chart.TooltipState
}

// Visible reports whether the partial should show the label.
func (t tooltipPartial) Visible() bool { return t.State.VisibleFor(t.Owner) }

// handleTooltip feeds a pointer move to the session's chart instance and
// renders its tooltip.
func (s *Server) handleTooltip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "chart")
	p, err := ParsePoint(r.URL.Query())
	if err != nil {
		ErrorResponse(http.StatusBadRequest, err.Error()).Write(w)
		return
	}

	board := s.boardFor(w, r)
	board.Update(s.snapshotOrEmpty(r).Donuts()...)

	state, err := board.PointerMoveAt(id, p, ParseStamp(r.URL.Query()))
	if errors.Is(err, chart.ErrUnknownChart) {
		ErrorResponse(http.StatusNotFound, "unknown chart").Write(w)
		return
	}
	if state.Visible {
		log.FromContext(r.Context()).DebugContext(r.Context(), "Tooltip shown",
			log.NewFields().WithChart(id, state.Text).WithOperation(log.OpHitTest).ToSlice()...)
	}
	s.renderTooltip(w, r, id, state)
}

// handleLeave hides the tooltip of one chart instance. Moves stamped
// before the leave are ignored afterwards.
func (s *Server) handleLeave(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "chart")
	state, err := s.boardFor(w, r).PointerLeaveAt(id, ParseStamp(r.URL.Query()))
	if errors.Is(err, chart.ErrUnknownChart) {
		ErrorResponse(http.StatusNotFound, "unknown chart").Write(w)
		return
	}
	s.renderTooltip(w, r, id, state)
}

func (s *Server) renderTooltip(w http.ResponseWriter, r *http.Request, id string, state chart.TooltipState) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "tooltip", tooltipPartial{Owner: id, State: state}); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Tooltip template execution failed", log.FieldError, err)
	}
}

// handleHitJSON resolves a point against a chart without touching session
// state.
func (s *Server) handleHitJSON(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "chart")
	p, err := ParsePoint(r.URL.Query())
	if err != nil {
		RespondError(w, http.StatusBadRequest, "invalid point", err.Error())
		return
	}

	period := ParseMonthParams(r.URL.Query(), s.now())
	snap, err := s.dash.Snapshot(r.Context(), period)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Dashboard snapshot failed", log.FieldError, err, log.FieldPeriod, period.Key())
		RespondError(w, http.StatusInternalServerError, "failed to load dashboard", nil)
		return
	}
	d, ok := snap.Donut(id)
	if !ok {
		RespondError(w, http.StatusNotFound, "unknown chart", id)
		return
	}

	out := hitJSON{Chart: id, Point: p, Angle: chart.VisualAngle(p, d.Ring)}
	if seg, ok := d.HitTest(p); ok {
		sj := newSegmentJSON(seg)
		out.Hit = true
		out.Segment = &sj
	}
	RespondJSON(w, http.StatusOK, out)
}
