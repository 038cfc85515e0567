package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qmat-labs/corridor-cli/internal/config"
	"github.com/qmat-labs/corridor-cli/internal/crs"
)

const testCasesCSV = `symbol,DMC,delta_eV,V_eV,DeltaOp_eV,T_K,status,note,reason
Fe,FE-N4,0.6,0.1,0.6,300,high,stable under cycling,paper table 2
Co,CO-N4,0.3,0.1,0.3,300,low,,
Ni,TBD,,,,,insufficient,TODO: measure coupling,awaiting synthesis
`

const testElementsCSV = `symbol,name,Z,category
Fe,Iron,26,transition metal
Co,Cobalt,27,transition metal
`

// newTestServer writes reference files into a temp dir and returns a Server
// over them. Pass empty strings to omit a file.
func newTestServer(t *testing.T, casesCSV, elementsCSV string) *Server {
	t.Helper()
	dir := t.TempDir()

	cfg := &config.Config{}
	cfg.Data.CasesPath = filepath.Join(dir, "cases.csv")
	cfg.Data.ElementsPath = filepath.Join(dir, "elements.csv")
	cfg.Data.CacheTTLSecs = 60
	cfg.Data.Concurrency = 2

	if casesCSV != "" {
		require.NoError(t, os.WriteFile(cfg.Data.CasesPath, []byte(casesCSV), 0o644))
	}
	if elementsCSV != "" {
		require.NoError(t, os.WriteFile(cfg.Data.ElementsPath, []byte(elementsCSV), 0o644))
	}

	return New(cfg, crs.Default(), nil)
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestServer(t, "", ""), "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode(t, rec)["status"])
}

func TestMix(t *testing.T) {
	s := newTestServer(t, "", "")

	rec := get(t, s, "/api/mix?delta=0.3&v=0.1")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.InDelta(t, 3.0, body["r"].(float64), 1e-12)

	// Decimal-comma input is accepted.
	rec = get(t, s, "/api/mix?delta="+`0,3`+"&v=0.1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 3.0, decode(t, rec)["r"].(float64), 1e-12)
}

func TestMix_ZeroCoupling(t *testing.T) {
	rec := get(t, newTestServer(t, "", ""), "/api/mix?delta=0.4&v=0")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "inf", body["r"])
	assert.Equal(t, 0.0, body["sin2phi"])
}

func TestMix_MissingInputsAreNull(t *testing.T) {
	// The calculator always has a result available; unknowns render null.
	rec := get(t, newTestServer(t, "", ""), "/api/mix")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Nil(t, body["r"])
	assert.Nil(t, body["sin2phi"])
	assert.Nil(t, body["delta_mix_ev"])
}

func TestDiagnostics(t *testing.T) {
	rec := get(t, newTestServer(t, "", ""), "/api/diagnostics?delta=0.3&v=0.1&t=300")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, 300.0, body["t_used_k"])
	assert.Greater(t, body["tau"].(float64), 0.0)

	// Unparseable temperature falls back to 300 K.
	rec = get(t, newTestServer(t, "", ""), "/api/diagnostics?delta=0.3&v=0.1&t=warm")
	assert.Equal(t, 300.0, decode(t, rec)["t_used_k"])
}

func TestClassify(t *testing.T) {
	s := newTestServer(t, "", "")

	assert.Equal(t, 0.0, decode(t, get(t, s, "/api/classify?gap=0.6&r=6"))["category"])
	assert.Equal(t, 1.0, decode(t, get(t, s, "/api/classify?gap=0.3&r=3"))["category"])
	assert.Equal(t, 3.0, decode(t, get(t, s, "/api/classify?gap=abc&r=3"))["category"])
	// "inf" R from an uncoupled system is accepted.
	assert.Equal(t, 0.0, decode(t, get(t, s, "/api/classify?gap=0.6&r=inf"))["category"])
}

func TestCases(t *testing.T) {
	s := newTestServer(t, testCasesCSV, "")

	rec := get(t, s, "/api/cases")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, 3.0, body["count"])

	rows := body["rows"].([]any)
	fe := rows[0].(map[string]any)
	assert.Equal(t, "FE-N4", fe["dmc"])
	assert.Equal(t, "0", fe["crs_label"])

	// The insufficient row never shows a numeric category.
	ni := rows[2].(map[string]any)
	assert.Equal(t, true, ni["unclassified"])
	assert.Equal(t, crs.UnclassifiedLabel, ni["crs_label"])
}

func TestCases_Filters(t *testing.T) {
	s := newTestServer(t, testCasesCSV, "")

	body := decode(t, get(t, s, "/api/cases?symbol=fe"))
	assert.Equal(t, 1.0, body["count"])

	body = decode(t, get(t, s, "/api/cases?status=insufficient"))
	assert.Equal(t, 1.0, body["count"])
}

func TestCases_MissingFileIsVisibleFailure(t *testing.T) {
	s := newTestServer(t, "", "")

	rec := get(t, s, "/api/cases")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, decode(t, rec)["error"], "unavailable")

	// The calculator path is unaffected.
	rec = get(t, s, "/api/mix?delta=0.3&v=0.1")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCaseByDMC(t *testing.T) {
	s := newTestServer(t, testCasesCSV, "")

	rec := get(t, s, "/api/cases/fe-n4")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "FE-N4", decode(t, rec)["dmc"])

	rec = get(t, s, "/api/cases/XX-99")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestElement(t *testing.T) {
	s := newTestServer(t, testCasesCSV, testElementsCSV)

	rec := get(t, s, "/api/elements/fe")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	element := body["element"].(map[string]any)
	assert.Equal(t, "Iron", element["name"])
	// Element view links back into the case table.
	assert.Len(t, body["cases"].([]any), 1)

	rec = get(t, s, "/api/elements/Xx")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestElement_NoDataState(t *testing.T) {
	s := newTestServer(t, testCasesCSV, "")

	rec := get(t, s, "/api/elements/Fe")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "no element data", decode(t, rec)["error"])
}

func TestReport(t *testing.T) {
	s := newTestServer(t, "", "")

	rec := get(t, s, "/api/report?delta=0.3&v=0.1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "echarts")

	rec = get(t, s, "/api/report?delta=abc&v=0.1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRuns_NotConfigured(t *testing.T) {
	rec := get(t, newTestServer(t, "", ""), "/api/runs")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCases_CacheServesSecondRequest(t *testing.T) {
	s := newTestServer(t, testCasesCSV, "")

	require.Equal(t, http.StatusOK, get(t, s, "/api/cases").Code)

	// Remove the file: the cached table keeps serving.
	require.NoError(t, os.Remove(s.cfg.Data.CasesPath))
	assert.Equal(t, http.StatusOK, get(t, s, "/api/cases").Code)
}
