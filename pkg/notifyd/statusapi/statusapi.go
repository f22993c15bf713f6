// Package statusapi exposes an optional, read-only HTTP view of the
// scheduler's state: /health for liveness probes and /status for the
// per-job next-run and currently-running picture. It never drives
// scheduling decisions; it only reports them.
package statusapi

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// JobStatus is one job's reported state.
type JobStatus struct {
	JobID   string `json:"job_id"`
	NextRun uint64 `json:"next_run_unix"`
	Running int    `json:"running"`
}

// Provider answers a /status request. The scheduler implements this by
// routing the request onto its own goroutine rather than sharing its
// NextRun cache or RunningJobs table across goroutines directly.
type Provider interface {
	Status() []JobStatus
}

// Config controls whether the server runs at all and how it is secured.
type Config struct {
	Enabled   bool
	Address   string
	AuthToken string
}

// Server is the status HTTP server.
type Server struct {
	cfg      Config
	provider Provider
	log      *slog.Logger
}

func New(cfg Config, provider Provider, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{cfg: cfg, provider: provider, log: log}
}

// ListenAndServe blocks serving /health and /status until a fatal listen
// error; the server has no shutdown method and runs until the process
// exits. Returns immediately with nil if the server is disabled.
func (s *Server) ListenAndServe() error {
	if !s.cfg.Enabled {
		return nil
	}
	if s.cfg.AuthToken == "" {
		s.log.Warn("status API running without an auth token; anyone who can reach "+s.cfg.Address+" can read job state")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/status", s.authMiddleware(http.HandlerFunc(s.handleStatus)))

	s.log.Info("status API listening", "address", s.cfg.Address)
	return http.ListenAndServe(s.cfg.Address, mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.provider.Status())
}

// authMiddleware requires Authorization: Bearer <token> whenever an auth
// token is configured. With no token configured, /status is open (the
// operator has opted into that by binding to loopback, typically).
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.AuthToken == "" {
			next.ServeHTTP(w, r)
			return
		}
		auth := r.Header.Get("Authorization")
		if auth == "" {
			writeError(w, "missing Authorization header", http.StatusUnauthorized)
			return
		}
		token, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok {
			writeError(w, "invalid Authorization format", http.StatusUnauthorized)
			return
		}
		if !compareTokens(token, s.cfg.AuthToken) {
			writeError(w, "invalid token", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// compareTokens hashes both sides with SHA-256 before ConstantTimeCompare
// so that the comparison doesn't leak token length through timing.
func compareTokens(a, b string) bool {
	ha := sha256.Sum256([]byte(a))
	hb := sha256.Sum256([]byte(b))
	return subtle.ConstantTimeCompare(ha[:], hb[:]) == 1
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}
