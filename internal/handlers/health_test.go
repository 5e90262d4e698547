package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/taskflow-app/taskflow/internal/store"
)

func TestHealthCheck(t *testing.T) {
	t.Parallel()

	h := NewHealthChecker(store.NewMemoryStore())

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	h.HealthCheck(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("status = %q", resp.Status)
	}
	if resp.Checks != nil {
		t.Error("basic mode should not include checks")
	}
}

func TestHealthCheck_Extended(t *testing.T) {
	t.Parallel()

	h := NewHealthChecker(store.NewMemoryStore())

	req := httptest.NewRequest("GET", "/healthz?mode=extended", nil)
	w := httptest.NewRecorder()
	h.HealthCheck(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Checks["store"] != "healthy" {
		t.Errorf("checks = %v", resp.Checks)
	}
}
