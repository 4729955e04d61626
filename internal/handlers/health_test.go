package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

// fakeChecker reports fixed existence per collection.
type fakeChecker struct {
	exists map[string]bool
	err    error
}

func (f *fakeChecker) CollectionExists(_ context.Context, collection string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.exists[collection], nil
}

func TestHealthHandler_Healthy(t *testing.T) {
	checker := &fakeChecker{exists: map[string]bool{
		"packs_ar": true,
		"packs_en": true,
		"packs_fr": true,
	}}
	handler := NewHealthHandler(checker, "packs", []string{"ar", "en", "fr"})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("Status = %q, want healthy", resp.Status)
	}
	if resp.Checks["collection_ar"] != "ok" {
		t.Errorf("Checks = %v", resp.Checks)
	}
	if len(resp.Issues) != 0 {
		t.Errorf("Issues = %v, want none", resp.Issues)
	}
}

func TestHealthHandler_MissingCollection(t *testing.T) {
	checker := &fakeChecker{exists: map[string]bool{
		"packs_ar": true,
		"packs_en": false,
	}}
	handler := NewHealthHandler(checker, "packs", []string{"ar", "en"})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "unhealthy" {
		t.Errorf("Status = %q, want unhealthy", resp.Status)
	}
	if resp.Checks["collection_en"] != "error" {
		t.Errorf("Checks = %v", resp.Checks)
	}
	if len(resp.Issues) != 1 {
		t.Errorf("Issues = %v, want one issue", resp.Issues)
	}
}

func TestHealthHandler_CheckerError(t *testing.T) {
	checker := &fakeChecker{err: fmt.Errorf("connection refused")}
	handler := NewHealthHandler(checker, "packs", []string{"ar"})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestHealthHandler_MethodNotAllowed(t *testing.T) {
	handler := NewHealthHandler(&fakeChecker{}, "packs", []string{"ar"})

	req := httptest.NewRequest(http.MethodPost, "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}
