package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestHealthHandler_Liveness(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	if err := NewHealthHandler().Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHealthDependenciesHandler_Readiness(t *testing.T) {
	cases := []struct {
		name       string
		checks     map[string]Pinger
		wantCode   int
		wantStatus string
		unhealthy  string
	}{
		{
			name:       "all up",
			checks:     map[string]Pinger{"redis": stubPinger{}, "imagehub_api": stubPinger{}},
			wantCode:   http.StatusOK,
			wantStatus: "ok",
		},
		{
			name:       "api down",
			checks:     map[string]Pinger{"redis": stubPinger{}, "imagehub_api": stubPinger{err: errors.New("connection refused")}},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "degraded",
			unhealthy:  "imagehub_api",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)

			if err := NewHealthDependenciesHandler(tc.checks).Readiness(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}

			var resp readinessResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Status != tc.wantStatus || len(resp.Dependencies) != len(tc.checks) {
				t.Fatalf("unexpected response: %+v", resp)
			}
			if tc.unhealthy != "" {
				dep := resp.Dependencies[tc.unhealthy]
				if dep.Status != "unhealthy" || dep.Error != "connection refused" {
					t.Fatalf("unexpected dependency status: %+v", dep)
				}
			}
		})
	}
}
