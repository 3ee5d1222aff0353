package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/terra-clan/maturity-engine/internal/assessment"
	"github.com/terra-clan/maturity-engine/internal/config"
	"github.com/terra-clan/maturity-engine/internal/leads"
	"github.com/terra-clan/maturity-engine/internal/ratelimit"
)

// Dependencies are the services the API exposes. Limiter and Store may be nil.
type Dependencies struct {
	Engine  *assessment.Engine
	Leads   *leads.Service
	Limiter *ratelimit.Limiter
	Store   ratelimit.Store
}

// Server represents the HTTP API server
type Server struct {
	config  config.ServerConfig
	origins []string
	router  *chi.Mux
	engine  *assessment.Engine
	leads   *leads.Service
	limiter *ratelimit.Limiter
	store   ratelimit.Store
}

// NewServer creates a new API server
func NewServer(cfg config.ServerConfig, corsCfg config.CORSConfig, deps Dependencies) *Server {
	leadService := deps.Leads
	if leadService == nil {
		leadService = leads.NewService(nil)
	}

	s := &Server{
		config:  cfg,
		origins: corsCfg.AllowedOrigins,
		engine:  deps.Engine,
		leads:   leadService,
		limiter: deps.Limiter,
		store:   deps.Store,
	}
	if len(s.origins) == 0 {
		s.origins = []string{"*"}
	}
	s.setupRouter()
	return s
}

// Router returns the configured router
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRouter configures all routes and middleware
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	// Forwarded headers are client-controlled unless a proxy rewrites them;
	// the rate limiter keys on RemoteAddr.
	if s.config.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "Retry-After"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api/v1", func(r chi.Router) {
		// Long-lived; kept out of the request timeout
		r.Get("/assessment/ws", s.handleAssessmentWS)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(30 * time.Second))

			r.Route("/catalog", func(r chi.Router) {
				r.Get("/classification", s.handleClassificationQuestions)
				r.Get("/pathways", s.handleListPathways)
				r.Get("/pathways/{id}", s.handleGetPathway)
				r.Get("/levels", s.handleListLevels)
			})

			r.With(s.rateLimit).Post("/assessment/classify", s.handleClassify)
			r.Get("/assessment/pathways/{id}/questions", s.handleQuestions)
			r.With(s.rateLimit).Post("/assessment/score", s.handleScore)

			r.With(s.rateLimit).Post("/contact", s.handleContact)
			r.With(s.rateLimit).Post("/newsletter", s.handleNewsletter)
		})
	})

	s.router = r
}

// loggingMiddleware logs HTTP requests using slog
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			slog.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
				"remote_addr", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
