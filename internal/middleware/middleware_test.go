package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}

func TestErrorHandler_NoPanic(t *testing.T) {
	t.Parallel()

	middleware := ErrorHandler(zap.NewNop())(okHandler())

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	middleware.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Result().StatusCode)
	}
}

func TestErrorHandler_PanicRecovery(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("test panic")
	})
	middleware := ErrorHandler(zap.NewNop())(handler)

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()

	// Should not panic
	middleware.ServeHTTP(w, req)

	resp := w.Result()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected Content-Type 'application/json', got '%s'", ct)
	}

	var body ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body.Success {
		t.Error("Expected success to be false")
	}
	if body.Error != "Internal Server Error" {
		t.Errorf("Expected error 'Internal Server Error', got '%s'", body.Error)
	}
	if body.Path != "/test" {
		t.Errorf("Expected path '/test', got '%s'", body.Path)
	}
	if body.Timestamp == "" {
		t.Error("Expected timestamp to be set")
	}
}

func TestContentType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		method      string
		contentType string
		wantStatus  int
	}{
		{"get without content type", "GET", "", http.StatusOK},
		{"post with json", "POST", "application/json", http.StatusOK},
		{"post with json charset", "POST", "application/json; charset=utf-8", http.StatusOK},
		{"post without content type", "POST", "", http.StatusBadRequest},
		{"post with wrong type", "POST", "text/plain", http.StatusUnsupportedMediaType},
		{"put with wrong type", "PUT", "application/xml", http.StatusUnsupportedMediaType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(tt.method, "/", nil)
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			w := httptest.NewRecorder()
			ContentType(okHandler()).ServeHTTP(w, req)

			if w.Result().StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Result().StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestSecurityHeaders(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	SecurityHeaders(false)(okHandler()).ServeHTTP(w, req)

	headers := w.Result().Header
	if headers.Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing nosniff header")
	}
	if headers.Get("X-Frame-Options") != "DENY" {
		t.Error("missing X-Frame-Options header")
	}
	if headers.Get("Strict-Transport-Security") != "" {
		t.Error("HSTS should not be set on plain HTTP")
	}
}

func TestMaxRequestSize(t *testing.T) {
	t.Parallel()

	middleware := MaxRequestSize(10)(okHandler())

	req := httptest.NewRequest("POST", "/", strings.NewReader(strings.Repeat("x", 100)))
	req.ContentLength = 100
	w := httptest.NewRecorder()
	middleware.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", w.Result().StatusCode)
	}

	req = httptest.NewRequest("POST", "/", strings.NewReader("tiny"))
	w = httptest.NewRecorder()
	middleware.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Result().StatusCode)
	}
}

func TestLoggingPassthrough(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	middleware := Logging(zap.NewNop())(handler)

	req := httptest.NewRequest("POST", "/api/v1/tasks", nil)
	w := httptest.NewRecorder()
	middleware.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusCreated {
		t.Errorf("status = %d, want 201", w.Result().StatusCode)
	}
}

func TestRateLimit_MemoryStore(t *testing.T) {
	t.Parallel()

	mw, err := RateLimit(nil, "2-H")
	if err != nil {
		t.Fatalf("RateLimit: %v", err)
	}
	handler := mw(okHandler())

	var lastStatus int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("X-Real-IP", "203.0.113.7")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		lastStatus = w.Result().StatusCode
	}

	if lastStatus != http.StatusTooManyRequests {
		t.Errorf("third request status = %d, want 429", lastStatus)
	}
}

func TestRateLimit_BadFormat(t *testing.T) {
	t.Parallel()

	if _, err := RateLimit(nil, "not-a-rate"); err == nil {
		t.Error("invalid rate format should fail")
	}
}
