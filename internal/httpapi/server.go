// Package httpapi exposes the authoring API: CRUD over the registry
// resources plus the derived blueprint, paper and export endpoints.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/poliexam/paperforge/internal/platform/cache"
	"github.com/poliexam/paperforge/internal/registry"
	"github.com/poliexam/paperforge/internal/taxonomy"
)

// Server carries the handler dependencies. Cache may be nil, in which case
// question listings always hit the store.
type Server struct {
	reg      *registry.Registry
	cache    *cache.Cache
	catalog  *taxonomy.Catalog
	cacheTTL time.Duration
}

func New(reg *registry.Registry, c *cache.Cache, catalog *taxonomy.Catalog, cacheTTL time.Duration) *Server {
	return &Server{reg: reg, cache: c, catalog: catalog, cacheTTL: cacheTTL}
}

// Routes builds the HTTP router.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /readyz", s.handleReadyz)

	mountResource(mux, "departments", s.reg.Departments, resourceHooks[registry.Department]{})
	mountResource(mux, "sessions", s.reg.Sessions, resourceHooks[registry.Session]{})
	mountResource(mux, "branding", s.reg.Branding, resourceHooks[registry.Branding]{})
	s.mountCourses(mux)
	s.mountQuestions(mux)
	s.mountPapers(mux)
	s.mountExport(mux)

	return mux
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReadyz reports which persistence and cache tiers are serving. A
// fallback registry is still ready, callers just learn their edits are
// ephemeral.
func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	storage := "postgres"
	if s.reg.Fallback {
		storage = "memory"
	}
	cacheState := "disabled"
	if s.cache != nil {
		cacheState = "redis"
		if err := s.cache.HealthCheck(r.Context()); err != nil {
			cacheState = "unreachable"
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ready",
		"storage": storage,
		"cache":   cacheState,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeStoreError maps registry errors onto HTTP statuses.
func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, registry.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	slog.Error("store error", "error", err)
	writeError(w, http.StatusInternalServerError, "storage failure")
}
