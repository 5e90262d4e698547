package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/taskflow-app/taskflow/internal/models"
	"github.com/taskflow-app/taskflow/internal/services/ai"
	"github.com/taskflow-app/taskflow/internal/store"
	"github.com/taskflow-app/taskflow/internal/tasks"
	"go.uber.org/zap"
)

type fakeProvider struct {
	suggestion *ai.Suggestion
	err        error
}

func (p *fakeProvider) SuggestBreakdown(ctx context.Context, title string, typ models.TaskType) (*ai.Suggestion, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.suggestion, nil
}

func newSuggestRouter(t *testing.T, provider ai.SuggestionProvider) *mux.Router {
	t.Helper()
	svc := tasks.NewService(store.NewMemoryStore(), provider, zap.NewNop(), time.UTC)
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/suggest", NewSuggestHandler(svc).Suggest).Methods("POST")
	return r
}

func TestSuggestEndpoint(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{suggestion: &ai.Suggestion{
		Title:    "Plan the trip",
		Duration: models.Duration{Value: 3, Unit: models.UnitDays},
		Priority: models.PriorityHigh,
		Substeps: []string{"book flights", "reserve hotel"},
	}}
	r := newSuggestRouter(t, provider)

	w, env := doJSON(t, r, "POST", "/api/v1/suggest", map[string]any{
		"title": "plan trip", "type": "LONG_TERM",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var s ai.Suggestion
	if err := json.Unmarshal(env.Data, &s); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s.Title != "Plan the trip" || len(s.Substeps) != 2 {
		t.Errorf("suggestion = %+v", s)
	}
}

func TestSuggestEndpoint_Validation(t *testing.T) {
	t.Parallel()
	r := newSuggestRouter(t, &fakeProvider{})

	w, _ := doJSON(t, r, "POST", "/api/v1/suggest", map[string]any{"title": "x"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing type status = %d", w.Code)
	}
	w, _ = doJSON(t, r, "POST", "/api/v1/suggest", map[string]any{"title": "x", "type": "SOMEDAY"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad type status = %d", w.Code)
	}
}

func TestSuggestEndpoint_GenerationError(t *testing.T) {
	t.Parallel()
	r := newSuggestRouter(t, &fakeProvider{err: &ai.GenerationError{Reason: "malformed response"}})

	w, env := doJSON(t, r, "POST", "/api/v1/suggest", map[string]any{
		"title": "x", "type": "DAILY",
	})
	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", w.Code)
	}
	if env.Success {
		t.Error("success should be false")
	}
}

func TestSuggestEndpoint_NoProvider(t *testing.T) {
	t.Parallel()
	r := newSuggestRouter(t, nil)

	w, _ := doJSON(t, r, "POST", "/api/v1/suggest", map[string]any{
		"title": "x", "type": "DAILY",
	})
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}
