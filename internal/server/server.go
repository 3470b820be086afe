package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/bunshodo/leakscope/internal/config"
	"github.com/bunshodo/leakscope/internal/investigation"
	"github.com/bunshodo/leakscope/internal/llm"
	"github.com/bunshodo/leakscope/internal/mailer"
	"github.com/bunshodo/leakscope/internal/nav"
	"github.com/bunshodo/leakscope/internal/report"
	"github.com/bunshodo/leakscope/internal/storage"
	"github.com/bunshodo/leakscope/internal/ws"
)

// Server wires the dashboard API: storage reads, the investigation
// pipeline, report rendering, estimation, email dispatch and the
// progress WebSocket.
type Server struct {
	store     storage.Store
	ai        *llm.Client
	runner    *investigation.Runner
	html      *report.HTMLAdapter
	estimator *report.Estimator
	hub       *ws.Hub
	session   *nav.Session

	// One investigation in flight at a time.
	busy atomic.Bool

	mu       sync.RWMutex
	emailCfg config.EmailConfig
}

func New(store storage.Store, ai *llm.Client, emailCfg config.EmailConfig) *Server {
	return &Server{
		store:     store,
		ai:        ai,
		runner:    investigation.NewWithClient(ai),
		html:      report.NewHTMLAdapter(ai),
		estimator: report.NewEstimator(ai),
		hub:       ws.NewHub(),
		session:   nav.NewSession(),
		emailCfg:  emailCfg,
	}
}

func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)
	r.Get("/ws", s.hub.ServeWS)

	r.Route("/api", func(r chi.Router) {
		r.Get("/cases", s.handleListCases)
		r.Post("/cases", s.handleCreateCase)
		r.Get("/cases/{id}", s.handleGetCase)
		r.Post("/cases/{id}/audit-trail", s.handleAuditTrail)
		r.Post("/cases/{id}/legal-summary", s.handleLegalSummary)

		r.Get("/traces", s.handleListTraces)
		r.Get("/llm-risks", s.handleListLlmRisks)

		r.Get("/reports", s.handleListReports)
		r.Post("/reports", s.handleCreateReport)
		r.Post("/reports/html", s.handleReportHTML)
		r.Post("/reports/send", s.handleSendReport)

		r.Post("/investigations", s.handleInvestigate)
		r.Post("/quicklook", s.handleQuickLook)
		r.Post("/estimates", s.handleEstimate)

		r.Get("/onboarding", s.handleOnboarding)
		r.Get("/session", s.handleGetSession)
		r.Post("/navigate", s.handleNavigate)
		r.Get("/settings", s.handleGetSettings)
		r.Put("/settings", s.handlePutSettings)
	})

	return r
}

// Run starts the hub and serves HTTP until the context is canceled.
func (s *Server) Run(ctx context.Context, addr string) error {
	go s.hub.Run()

	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 10 * time.Minute, // investigations respond synchronously
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) mailer() *mailer.Mailer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return mailer.New(s.emailCfg)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Errorf("could not write response: %v", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
