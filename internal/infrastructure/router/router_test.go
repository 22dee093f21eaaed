package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fuelstation-service/internal/infrastructure/config"
	"fuelstation-service/internal/interface/handler"
	repoimpl "fuelstation-service/internal/interface/repository"
	"fuelstation-service/pkg/logger"
	"fuelstation-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

const testAPIKey = "test_key"

func newTestServer(t *testing.T) (http.Handler, *repoimpl.MemoryFuelStationRepository) {
	t.Helper()

	cfg := &config.Config{
		Environment: "development",
		APIKey:      testAPIKey,
	}
	log := logger.NewNopLogger()
	m := metrics.NewMetricsWith("test", prometheus.NewRegistry())

	repo := repoimpl.NewMemoryFuelStationRepository()
	h := handler.NewFuelStationHandler(repo, log, m, cfg.IsProduction())
	return New(cfg, log, m, h), repo
}

func TestMissingAPIKeyIsForbidden(t *testing.T) {
	r, repo := newTestServer(t)

	body := `{"id": "A", "name": "X", "address": "addr", "city": "c",
		"latitude": 10, "longitude": 20, "pumps": []}`
	req := httptest.NewRequest(http.MethodPost, "/fuel-stations", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}

	var decoded struct {
		Error struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if decoded.Error.Code != 403 || decoded.Error.Message == "" {
		t.Fatalf("unexpected forbidden body: %s", rec.Body.String())
	}

	// A valid payload without the key must leave the store untouched.
	stations, _ := repo.List(req.Context())
	if len(stations) != 0 {
		t.Fatal("request without api key reached the store")
	}
}

func TestMissingAPIKeyBeatsRouting(t *testing.T) {
	r, _ := newTestServer(t)

	// The gate answers before route matching, so paths and methods the
	// router would reject still get 403, not 404 or 405.
	requests := []*http.Request{
		httptest.NewRequest(http.MethodGet, "/fuel-stations/A/unknown", nil),
		httptest.NewRequest(http.MethodPut, "/fuel-stations/A", nil),
		httptest.NewRequest(http.MethodGet, "/nosuchroute", nil),
	}
	for _, req := range requests {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("%s %s: expected 403, got %d", req.Method, req.URL.Path, rec.Code)
		}
	}
}

func TestUnmatchedPathWithKeyIsNotFound(t *testing.T) {
	r, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/fuel-stations/A/unknown", nil)
	req.Header.Set("x-api-key", testAPIKey)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestWrongAPIKeyIsForbidden(t *testing.T) {
	r, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/fuel-stations", nil)
	req.Header.Set("x-api-key", "wrong")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestMatchingAPIKeyPassesThrough(t *testing.T) {
	r, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/fuel-stations", nil)
	req.Header.Set("x-api-key", testAPIKey)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %s", rec.Body.String())
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatal("expected a request id header")
	}
}

func TestHealthBypassesAPIKey(t *testing.T) {
	r, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestMetricsBypassesAPIKey(t *testing.T) {
	r, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
