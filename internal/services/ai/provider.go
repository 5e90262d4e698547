package ai

import (
	"context"

	"github.com/taskflow-app/taskflow/internal/models"
)

// Suggestion is a structured task breakdown produced by the external
// text-generation service, mapped into domain types.
type Suggestion struct {
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Duration    models.Duration `json:"duration"`
	Priority    models.Priority `json:"priority"`
	Substeps    []string        `json:"substeps"`
}

// SuggestionProvider is the interface for suggestion providers. It is the
// system's only external collaborator and the only source of latency, so
// everything behind it must be mockable.
type SuggestionProvider interface {
	// SuggestBreakdown sends the task title to the service and maps the
	// structured reply back into domain types. One outbound call per
	// invocation; no retries, no caching. Failures are GenerationErrors.
	SuggestBreakdown(ctx context.Context, title string, typ models.TaskType) (*Suggestion, error)
}

// ProviderFactory creates a suggestion provider from a flat config map
type ProviderFactory func(config map[string]string) (SuggestionProvider, error)

// ProviderRegistry stores available suggestion providers
type ProviderRegistry struct {
	providers map[string]ProviderFactory
}

// NewProviderRegistry creates a new provider registry
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		providers: make(map[string]ProviderFactory),
	}
}

// Register registers a provider factory
func (r *ProviderRegistry) Register(name string, factory ProviderFactory) {
	r.providers[name] = factory
}

// GetProvider gets a provider by name
func (r *ProviderRegistry) GetProvider(name string, config map[string]string) (SuggestionProvider, error) {
	factory, ok := r.providers[name]
	if !ok {
		return nil, &ErrProviderNotFound{Name: name}
	}

	return factory(config)
}

// ErrProviderNotFound is returned when a provider is not found
type ErrProviderNotFound struct {
	Name string
}

func (e *ErrProviderNotFound) Error() string {
	return "suggestion provider not found: " + e.Name
}
