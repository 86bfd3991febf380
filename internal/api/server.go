// Package api provides the REST and WebSocket API for quote validation.
package api

import (
	"fmt"
	"net/http"

	"github.com/hifzlab/isnad/core/match"
	"github.com/hifzlab/isnad/core/process"
	"github.com/hifzlab/isnad/core/quran"
	"github.com/hifzlab/isnad/internal/logging"
)

// Server serves validation requests over HTTP and WebSocket. All handler
// state is fixed at construction, so one Server is safe for concurrent use.
type Server struct {
	cfg       Config
	corpus    *quran.Corpus
	engine    *match.Engine
	processor *process.Processor
	hub       *Hub
	jobs      *JobStore
}

// New creates a server over the given corpus.
func New(cfg Config, corpus *quran.Corpus, engineOpts match.Options, procOpts process.Options) *Server {
	engine := match.New(corpus, engineOpts)
	return &Server{
		cfg:       cfg,
		corpus:    corpus,
		engine:    engine,
		processor: process.New(engine, procOpts),
		hub:       NewHub(),
		jobs:      NewJobStore(),
	}
}

// Handler builds the full middleware chain and route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/validate", s.handleValidate)
	mux.HandleFunc("/process", s.handleProcess)
	mux.HandleFunc("/verses/", s.handleVerse)
	mux.HandleFunc("/surahs", s.handleSurahs)
	mux.HandleFunc("/search", s.handleSearch)
	mux.HandleFunc("/prompt", s.handlePrompt)
	mux.HandleFunc("/jobs", s.handleJobs)
	mux.HandleFunc("/jobs/", s.handleJobByID)
	mux.HandleFunc("/ws", s.handleWebSocket)

	var handler http.Handler = mux

	if s.cfg.Auth.Enabled {
		handler = AuthMiddleware(s.cfg.Auth, handler)
	}

	if s.cfg.RateLimitRequests > 0 {
		limiter := NewRateLimiter(RateLimiterConfig{
			RequestsPerMinute: s.cfg.RateLimitRequests,
			BurstSize:         s.cfg.RateLimitBurst,
		})
		handler = limiter.Middleware(handler)
	}

	handler = corsMiddleware(s.cfg.AllowedOrigins, handler)
	handler = logging.CombinedMiddleware(handler)

	return handler
}

// Start runs the hub and blocks serving HTTP on the configured port.
func (s *Server) Start() error {
	if err := ValidateAuthConfig(s.cfg.Auth); err != nil {
		return fmt.Errorf("invalid auth config: %w", err)
	}

	go s.hub.Run()

	info := s.corpus.Info()
	logging.CorpusLoaded(info.VerseFile, info.VerseCount, info.SurahCount)
	logging.ServerStartup("rest_api", "http", s.cfg.Port, "websocket_protocol", "ws")

	addr := fmt.Sprintf(":%d", s.cfg.Port)
	return http.ListenAndServe(addr, s.Handler())
}

// corsMiddleware applies CORS headers. An empty allow list permits any
// origin.
func corsMiddleware(allowed []string, next http.Handler) http.Handler {
	allowedSet := make(map[string]bool, len(allowed))
	for _, origin := range allowed {
		allowedSet[origin] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		switch {
		case len(allowedSet) == 0:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case allowedSet[origin]:
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key, X-Request-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
