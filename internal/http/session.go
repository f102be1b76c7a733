package http

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/skprof1/expenses-tracker/internal/chart"
	"github.com/skprof1/expenses-tracker/internal/services"
)

const sessionCookie = "dashboard_session"

// boardFor returns the chart board of the caller's browser session,
// starting a session when the cookie is missing or malformed.
func (s *Server) boardFor(w http.ResponseWriter, r *http.Request) *chart.Board {
	id := ""
	if c, err := r.Cookie(sessionCookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			id = c.Value
		}
	}
	if id == "" {
		id = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	ring := s.dash.Ring()
	return s.sessions.GetOrCreate(id, func() *chart.Board {
		return chart.NewBoard(ring, chart.IncomeChart, chart.ExpenseChart)
	})
}

// snapshotOrEmpty loads the month for rendering. A failing ledger yields
// empty charts rather than an error page.
func (s *Server) snapshotOrEmpty(r *http.Request) services.Snapshot {
	period := ParseMonthParams(r.URL.Query(), s.now())
	snap, err := s.dash.Snapshot(r.Context(), period)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Dashboard snapshot failed", "error", err, "period", period.Key())
		return services.EmptySnapshot(period, s.dash.Ring())
	}
	return snap
}
