package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/skprof1/expenses-tracker/internal/cache"
	"github.com/skprof1/expenses-tracker/internal/chart"
	"github.com/skprof1/expenses-tracker/internal/log"
	"github.com/skprof1/expenses-tracker/internal/services"
	appweb "github.com/skprof1/expenses-tracker/web"
)

// Options wires the server's collaborators.
type Options struct {
	Addr           string
	Transactions   *services.TransactionService
	Dashboard      *services.DashboardService
	Sessions       *cache.LRUCache[*chart.Board]
	Ready          func(context.Context) error
	AllowedOrigins []string
	Logger         *log.Logger
}

type Server struct {
	http.Server
	templates   *template.Template
	txs         *services.TransactionService
	dash        *services.DashboardService
	sessions    *cache.LRUCache[*chart.Board]
	ready       func(context.Context) error
	rateLimiter *rateLimiter
	metrics     *securityMetrics
	logger      *log.Logger
	now         func() time.Time

	shutdownOnce sync.Once
}

// NewServer parses the embedded templates and mounts all routes.
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	sessions := opts.Sessions
	if sessions == nil {
		sessions = cache.NewLRUCache[*chart.Board](1024, 30*time.Minute)
	}

	s := &Server{
		txs:         opts.Transactions,
		dash:        opts.Dashboard,
		sessions:    sessions,
		ready:       opts.Ready,
		rateLimiter: newRateLimiter(60, time.Minute),
		metrics:     &securityMetrics{},
		logger:      logger.WithComponent(log.ComponentHTTP),
		now:         time.Now,
	}
	go s.rateLimiter.startCleanup(5 * time.Minute)

	t, err := template.New("").Funcs(templateFuncs).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		s.logger.Error("Failed parsing templates", log.FieldError, err)
	}
	s.templates = t

	s.Server = http.Server{
		Addr:              opts.Addr,
		Handler:           s.routes(opts.AllowedOrigins),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) routes(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(log.Middleware(s.logger))
	r.Use(middleware.Recoverer)
	if len(allowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", handleHealth)
	r.Get("/readyz", s.handleReady)

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		r.Get("/static/*", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600")
			static.ServeHTTP(w, r)
		})
	} else {
		s.logger.Warn("Failed to mount embedded static FS", log.FieldError, err)
	}

	r.Group(func(r chi.Router) {
		r.Use(s.withSecurity)

		r.Get("/", s.handleDashboard)
		r.Post("/transactions", s.handleCreateTransactionForm)

		r.Route("/ui/charts/{chart}", func(r chi.Router) {
			r.Get("/tooltip", s.handleTooltip)
			r.Get("/leave", s.handleLeave)
		})

		r.Route("/api", func(r chi.Router) {
			r.Get("/dashboard", s.handleDashboardJSON)
			r.Get("/charts/{chart}/hit", s.handleHitJSON)
			r.Get("/transactions", s.handleListTransactions)
			r.Post("/transactions", s.handleCreateTransactionJSON)
		})
	})

	return r
}

// Shutdown stops background routines and the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.ready != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.ready(ctx); err != nil {
			log.FromContext(r.Context()).WarnContext(r.Context(), "Readiness check failed", log.FieldError, err)
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
