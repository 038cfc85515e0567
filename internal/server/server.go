// Package server exposes the calculator and the reference tables over HTTP.
// The calculator endpoints are pure and always available; the table-backed
// endpoints degrade explicitly when their file is missing.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/qmat-labs/corridor-cli/internal/compute"
	"github.com/qmat-labs/corridor-cli/internal/config"
	"github.com/qmat-labs/corridor-cli/internal/crs"
	"github.com/qmat-labs/corridor-cli/internal/refdata"
	"github.com/qmat-labs/corridor-cli/internal/store"
)

const (
	casesCacheKey    = "cases"
	elementsCacheKey = "elements"
)

// Server carries all mutable presentation state: the loaded-table cache and
// the optional run store. The core packages stay stateless.
type Server struct {
	cfg        *config.Config
	classifier *crs.Classifier
	runs       store.Store // nil when run history is not configured
	tables     *cache.Cache
}

// New builds a Server. runs may be nil.
func New(cfg *config.Config, classifier *crs.Classifier, runs store.Store) *Server {
	ttl := time.Duration(cfg.Data.CacheTTLSecs) * time.Second
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Server{
		cfg:        cfg,
		classifier: classifier,
		runs:       runs,
		tables:     cache.New(ttl, 2*ttl),
	}
}

// Router assembles the chi route tree.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/mix", s.handleMix)
		r.Get("/diagnostics", s.handleDiagnostics)
		r.Get("/classify", s.handleClassify)
		r.Get("/report", s.handleReport)

		r.Get("/cases", s.handleCases)
		r.Get("/cases/{dmc}", s.handleCase)
		r.Get("/elements/{symbol}", s.handleElement)

		r.Get("/runs", s.handleRuns)
		r.Get("/runs/{id}", s.handleRun)
	})

	return r
}

// loadCases returns the computed case table, serving from the TTL cache when
// warm. A load failure is surfaced to the caller; the calculator endpoints
// never pass through here.
func (s *Server) loadCases(r *http.Request) ([]compute.Row, error) {
	if v, ok := s.tables.Get(casesCacheKey); ok {
		return v.([]compute.Row), nil
	}

	cases, err := refdata.LoadCasesFile(s.cfg.Data.CasesPath)
	if err != nil {
		return nil, err
	}
	rows, err := compute.Batch(r.Context(), cases, s.classifier, s.cfg.Data.Concurrency)
	if err != nil {
		return nil, err
	}

	s.tables.Set(casesCacheKey, rows, cache.DefaultExpiration)
	return rows, nil
}

// loadElements returns the element table, or nil in the explicit "no data"
// state when the optional file is absent or malformed.
func (s *Server) loadElements() *refdata.ElementTable {
	if v, ok := s.tables.Get(elementsCacheKey); ok {
		t, _ := v.(*refdata.ElementTable)
		return t
	}

	t, err := refdata.LoadElementsFile(s.cfg.Data.ElementsPath)
	if err != nil {
		zap.L().Warn("server: element table unavailable",
			zap.String("path", s.cfg.Data.ElementsPath),
			zap.Error(err),
		)
		t = nil
	}
	// Negative results are cached too, so a missing file is not re-statted
	// on every request.
	s.tables.Set(elementsCacheKey, t, cache.DefaultExpiration)
	return t
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("server: encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
