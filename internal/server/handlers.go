package server

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/qmat-labs/corridor-cli/internal/compute"
	"github.com/qmat-labs/corridor-cli/internal/crs"
	"github.com/qmat-labs/corridor-cli/internal/jsonx"
	"github.com/qmat-labs/corridor-cli/internal/mixing"
	"github.com/qmat-labs/corridor-cli/internal/numparse"
	"github.com/qmat-labs/corridor-cli/internal/refdata"
	"github.com/qmat-labs/corridor-cli/internal/sweep"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// queryFloat parses a query parameter with the tolerant numeric parser;
// absent or malformed values become NaN, which the engine propagates.
func queryFloat(r *http.Request, name string) float64 {
	return numparse.Float(r.URL.Query().Get(name), math.NaN())
}

// queryRatio additionally accepts "inf", the serialized form of an
// uncoupled system's R.
func queryRatio(r *http.Request, name string) float64 {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if strings.EqualFold(raw, "inf") {
		return math.Inf(1)
	}
	return numparse.Float(raw, math.NaN())
}

func (s *Server) handleMix(w http.ResponseWriter, r *http.Request) {
	res := mixing.Mix(queryFloat(r, "delta"), queryFloat(r, "v"))
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleDiagnostics(w http.ResponseWriter, r *http.Request) {
	d := mixing.Diagnostics(queryFloat(r, "delta"), queryFloat(r, "v"), queryFloat(r, "t"))
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	gap := queryFloat(r, "gap")
	ratio := queryRatio(r, "r")
	category := s.classifier.Classify(gap, ratio)
	writeJSON(w, http.StatusOK, map[string]any{
		"gap":      jsonx.Float(gap),
		"r":        jsonx.Float(ratio),
		"category": category,
		"label":    crs.Label(category, false),
	})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	delta := queryFloat(r, "delta")
	v := queryFloat(r, "v")
	if math.IsNaN(delta) || math.IsNaN(v) {
		writeError(w, http.StatusBadRequest, "delta and v must be numbers")
		return
	}
	if err := sweep.RenderReport(w, delta, v); err != nil {
		zap.L().Error("server: render report", zap.Error(err))
	}
}

func (s *Server) handleCases(w http.ResponseWriter, r *http.Request) {
	rows, err := s.loadCases(r)
	if err != nil {
		zap.L().Error("server: case table unavailable", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "case table unavailable")
		return
	}

	q := r.URL.Query()
	if symbol := strings.TrimSpace(q.Get("symbol")); symbol != "" {
		rows = filterRows(rows, func(row compute.Row) bool {
			return strings.EqualFold(row.Symbol, symbol)
		})
	}
	if status := strings.TrimSpace(q.Get("status")); status != "" {
		want := refdata.ParseStatus(status)
		rows = filterRows(rows, func(row compute.Row) bool {
			return row.Status == want
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"count": len(rows),
		"rows":  rows,
	})
}

func (s *Server) handleCase(w http.ResponseWriter, r *http.Request) {
	rows, err := s.loadCases(r)
	if err != nil {
		zap.L().Error("server: case table unavailable", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "case table unavailable")
		return
	}

	dmc := chi.URLParam(r, "dmc")
	for _, row := range rows {
		if strings.EqualFold(row.DMC, dmc) {
			writeJSON(w, http.StatusOK, row)
			return
		}
	}
	writeError(w, http.StatusNotFound, "unknown case "+dmc)
}

func (s *Server) handleElement(w http.ResponseWriter, r *http.Request) {
	table := s.loadElements()
	if table == nil {
		writeError(w, http.StatusNotFound, "no element data")
		return
	}

	symbol := chi.URLParam(r, "symbol")
	e := table.BySymbol(symbol)
	if e == nil {
		writeError(w, http.StatusNotFound, "unknown element "+symbol)
		return
	}

	// Cross-link any cases sharing the symbol so the element view can
	// navigate into the case table.
	var related []compute.Row
	if rows, err := s.loadCases(r); err == nil {
		related = filterRows(rows, func(row compute.Row) bool {
			return strings.EqualFold(row.Symbol, e.Symbol)
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"element": e,
		"cases":   related,
	})
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		writeError(w, http.StatusServiceUnavailable, "run store not configured")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	runs, err := s.runs.ListRuns(r.Context(), limit)
	if err != nil {
		zap.L().Error("server: list runs", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "list runs failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"count": len(runs), "runs": runs})
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		writeError(w, http.StatusServiceUnavailable, "run store not configured")
		return
	}

	id := chi.URLParam(r, "id")
	run, err := s.runs.GetRun(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown run "+id)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func filterRows(rows []compute.Row, keep func(compute.Row) bool) []compute.Row {
	out := rows[:0:0]
	for _, row := range rows {
		if keep(row) {
			out = append(out, row)
		}
	}
	return out
}
