// Package api provides the HTTP server for sentigauge.
//
// It serves the rendered gauge page, the raw SVG, a JSON view of the
// current chart specification, an endpoint to rebuild the gauge from
// posted counts, and a WebSocket stream of gauge updates.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mvello/sentigauge/internal/config"
	"github.com/mvello/sentigauge/internal/gauge"
	"github.com/mvello/sentigauge/internal/report"
	"github.com/mvello/sentigauge/pkg/models"
)

// Server is the HTTP server. It holds the most recently built chart
// specification and rebuilds it when new counts are posted.
type Server struct {
	router chi.Router
	cfg    *config.Config
	wsHub  *WSHub

	mu   sync.RWMutex
	spec *models.ChartSpec
}

// NewServer creates a configured server with all routes and middleware.
// The initial gauge is built from the configured counts; zero total
// counts fail fast here rather than on first request.
func NewServer(cfg *config.Config) (*Server, error) {
	spec, err := gauge.Build(cfg.Data.Counts(), optionsFromConfig(cfg))
	if err != nil {
		return nil, err
	}

	srv := &Server{
		cfg:   cfg,
		wsHub: NewWSHub(),
		spec:  spec,
	}
	srv.router = srv.buildRouter()
	return srv, nil
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// Spec returns the current chart specification.
func (s *Server) Spec() *models.ChartSpec {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.spec
}

// ListenAndServe starts the HTTP server with graceful shutdown.
func (s *Server) ListenAndServe(addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start WebSocket hub
	go s.wsHub.Run()

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return httpSrv.Shutdown(ctx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// CORS
	origins := []string{"*"}
	if len(s.cfg.API.CORSOrigins) > 0 {
		origins = s.cfg.API.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", s.handleHealth)

	// Rendered views
	r.Get("/", s.handlePage)
	r.Get("/gauge.svg", s.handleSVG)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/spec", s.handleGetSpec)
		r.Post("/gauge", s.handleBuildGauge)
		r.Get("/ws", s.handleWebSocket)
	})

	return r
}

// ============================================================
// Request / Response types
// ============================================================

// APIResponse is the standard JSON envelope.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// GaugeRequest is the body for POST /api/v1/gauge. Target and
// ShowBreakdown are optional; when absent the configured values apply.
type GaugeRequest struct {
	Positive      int                `json:"positive"`
	Negative      int                `json:"negative"`
	Neutral       int                `json:"neutral"`
	Target        *float64           `json:"target,omitempty"`
	Title         string             `json:"title,omitempty"`
	ShowBreakdown *bool              `json:"show_breakdown,omitempty"`
	Colors        models.ColorScheme `json:"colors,omitempty"`
}

// ============================================================
// Handlers
// ============================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status": "ok",
			"tier":   s.Spec().Tier,
			"value":  s.Spec().Value,
		},
	})
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	html, err := report.GenerateHTML(s.Spec(), report.DefaultSVGConfig())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Write([]byte(html)) //nolint:errcheck
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	svg := report.GaugeSVG(s.Spec(), report.DefaultSVGConfig())

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write([]byte(svg)) //nolint:errcheck
}

func (s *Server) handleGetSpec(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    s.Spec(),
	})
}

func (s *Server) handleBuildGauge(w http.ResponseWriter, r *http.Request) {
	var req GaugeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Positive < 0 || req.Negative < 0 || req.Neutral < 0 {
		writeError(w, http.StatusBadRequest, "counts must be non-negative")
		return
	}

	opts := optionsFromConfig(s.cfg)
	if req.Target != nil {
		opts.Target = *req.Target
	}
	if req.Title != "" {
		opts.Title = req.Title
	}
	if req.ShowBreakdown != nil {
		opts.ShowBreakdown = *req.ShowBreakdown
	}
	if !req.Colors.IsZero() {
		opts.Colors = req.Colors
	}

	counts := models.SentimentCounts{
		Positive: req.Positive,
		Negative: req.Negative,
		Neutral:  req.Neutral,
	}

	spec, err := gauge.Build(counts, opts)
	if err != nil {
		if errors.Is(err, gauge.ErrEmptyInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.mu.Lock()
	s.spec = spec
	s.mu.Unlock()

	// Notify WebSocket clients that the gauge changed
	s.wsHub.Broadcast(WSMessage{
		Type: "gauge_updated",
		Data: map[string]interface{}{
			"value": spec.Value,
			"tier":  spec.Tier,
		},
	})

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    spec,
	})
}

// ============================================================
// Helpers
// ============================================================

func optionsFromConfig(cfg *config.Config) gauge.Options {
	return gauge.Options{
		Target:        cfg.Gauge.Target,
		Title:         cfg.Gauge.Title,
		ShowBreakdown: cfg.Gauge.ShowBreakdown,
		Colors:        cfg.Gauge.Colors.Scheme(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   msg,
	})
}
