package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %q", cfg.Port)
	}
	if cfg.API.BaseURL != "http://localhost:8081" {
		t.Fatalf("unexpected base url %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 0 {
		t.Fatalf("expected no upstream timeout, got %s", cfg.API.Timeout)
	}
	if cfg.Session.Backend != BackendRedis || cfg.Session.TTL != 24*time.Hour {
		t.Fatalf("unexpected session config: %+v", cfg.Session)
	}
	if cfg.UI.PageSize != 10 || cfg.UI.SignupRedirectDelay != 2*time.Second {
		t.Fatalf("unexpected ui config: %+v", cfg.UI)
	}
	if cfg.UI.LoginRateLimit != (RateLimit{Requests: 10, Interval: time.Minute}) {
		t.Fatalf("unexpected rate limit: %+v", cfg.UI.LoginRateLimit)
	}
	if !cfg.Development() {
		t.Fatalf("expected development env by default")
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"API_BASE_URL":     "https://api.imagehub.test",
		"SESSION_BACKEND":  "memory",
		"LOGIN_RATE_LIMIT": "3/s",
		"IMAGES_PAGE_SIZE": "25",
		"ENV":              "production",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.BaseURL != "https://api.imagehub.test" {
		t.Fatalf("unexpected base url %q", cfg.API.BaseURL)
	}
	if cfg.Session.Backend != BackendMemory {
		t.Fatalf("unexpected backend %q", cfg.Session.Backend)
	}
	if cfg.UI.LoginRateLimit != (RateLimit{Requests: 3, Interval: time.Second}) {
		t.Fatalf("unexpected rate limit: %+v", cfg.UI.LoginRateLimit)
	}
	if cfg.UI.PageSize != 25 {
		t.Fatalf("unexpected page size %d", cfg.UI.PageSize)
	}
	if cfg.Development() {
		t.Fatalf("production env reported as development")
	}
}

func TestLoadWith_RejectsUnknownBackend(t *testing.T) {
	_, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"SESSION_BACKEND": "etcd",
	}))
	if err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestLoadWith_RejectsShortCSRFKey(t *testing.T) {
	_, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"CSRF_KEY": "too-short",
	}))
	if err == nil {
		t.Fatalf("expected error for short csrf key")
	}
}

func TestRateLimit_EnvDecode(t *testing.T) {
	var r RateLimit
	if err := r.EnvDecode("5/hour"); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if r.Requests != 5 || r.Interval != time.Hour || !r.Enabled() {
		t.Fatalf("unexpected rate limit: %+v", r)
	}
	if err := r.EnvDecode("0"); err != nil || r.Enabled() {
		t.Fatalf("expected disabled limit, got %+v (%v)", r, err)
	}
	if err := r.EnvDecode("5/fortnight"); err == nil {
		t.Fatalf("expected error for unknown unit")
	}
	if err := r.EnvDecode("five/min"); err == nil {
		t.Fatalf("expected error for bad count")
	}
}
