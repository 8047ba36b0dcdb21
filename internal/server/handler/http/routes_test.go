package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/afterly/afterly/internal/apperrors"
	"github.com/afterly/afterly/internal/obs"
	"go.uber.org/zap"
)

func TestRouter_MetricsNeverExposeLegacyTokens(t *testing.T) {
	obs.Init()

	h := Handlers{
		Legacy: &LegacyHandler{
			LegacyService: &fakeLegacyService{err: apperrors.ErrNotFound},
			Log:           zap.NewNop(),
		},
	}
	router := NewRouter(h, nil, zap.NewNop())

	const token = "9f2c4a6e8b0d1f3a5c7e9b2d4f6a8c0e9f2c4a6e8b0d1f3a5c7e9b2d4f6a8c0e"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/legacy/"+token, nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("legacy status = %d; want 404", rec.Code)
	}

	scrape := httptest.NewRecorder()
	router.ServeHTTP(scrape, httptest.NewRequest("GET", "/metrics", nil))
	if scrape.Code != http.StatusOK {
		t.Fatalf("metrics status = %d; want 200", scrape.Code)
	}

	body := scrape.Body.String()
	if strings.Contains(body, token) {
		t.Error("legacy token appears verbatim in /metrics output")
	}
	if !strings.Contains(body, "/legacy/{token}") {
		t.Error("expected the legacy request to be labelled with its route pattern")
	}
}

func TestRouter_UnmatchedPathsCollapseInMetrics(t *testing.T) {
	h := Handlers{
		Legacy: &LegacyHandler{
			LegacyService: &fakeLegacyService{err: apperrors.ErrNotFound},
			Log:           zap.NewNop(),
		},
	}
	router := NewRouter(h, nil, zap.NewNop())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/no-such-path/with-a-secret-looking-segment", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d; want 404", rec.Code)
	}

	scrape := httptest.NewRecorder()
	router.ServeHTTP(scrape, httptest.NewRequest("GET", "/metrics", nil))
	if strings.Contains(scrape.Body.String(), "with-a-secret-looking-segment") {
		t.Error("unmatched request path appears as a metric label")
	}
}
