package ai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"github.com/taskflow-app/taskflow/internal/models"
	"go.uber.org/zap"
)

const (
	// DefaultOpenAIModel is the default model to use
	DefaultOpenAIModel = "gpt-4o-mini"
	// DefaultOpenAIBaseURL is the default OpenAI API base URL
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	// DefaultTimeout is the transport timeout for API calls. The adapter
	// itself imposes no deadline and never retries; a single call either
	// completes or fails within the transport's own timeout.
	DefaultTimeout = 30 * time.Second
)

// OpenAIProvider implements SuggestionProvider using OpenAI's API
type OpenAIProvider struct {
	client    openai.Client
	model     string
	logger    *zap.Logger
	debugMode bool
}

var _ SuggestionProvider = (*OpenAIProvider)(nil)

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(apiKey string, model string) *OpenAIProvider {
	return NewOpenAIProviderWithLogger(apiKey, DefaultOpenAIBaseURL, model, nil, false)
}

// NewOpenAIProviderWithLogger creates a new OpenAI provider with logger support
func NewOpenAIProviderWithLogger(apiKey string, baseURL string, model string, logger *zap.Logger, debugMode bool) *OpenAIProvider {
	if model == "" {
		model = DefaultOpenAIModel
	}
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}

	httpClient := &http.Client{
		Timeout: DefaultTimeout,
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithHTTPClient(httpClient),
	)

	return &OpenAIProvider{
		client:    client,
		model:     model,
		logger:    logger,
		debugMode: debugMode,
	}
}

// SuggestBreakdown sends one breakdown request and maps the structured
// reply into a Suggestion.
func (p *OpenAIProvider) SuggestBreakdown(ctx context.Context, title string, typ models.TaskType) (*Suggestion, error) {
	prompt := buildBreakdownPrompt(title, typ)
	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage("You are a planning assistant that breaks a task into a structured plan. Respond with a single valid JSON object only."),
		openai.UserMessage(prompt),
	}
	req := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(p.model),
		Messages: messages,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	}

	if p.logger != nil && p.debugMode {
		p.logger.Debug("llm_api_request",
			zap.String("operation", "suggest_breakdown"),
			zap.String("model", p.model),
			zap.String("task_type", string(typ)),
			zap.Int("prompt_length", len(prompt)),
			zap.String("prompt_preview", SanitizePreview(prompt, true)),
		)
	}

	start := time.Now()
	resp, err := p.client.Chat.Completions.New(ctx, req)
	latency := time.Since(start)
	if err != nil {
		if p.logger != nil && p.debugMode {
			p.logger.Debug("llm_api_error",
				zap.String("operation", "suggest_breakdown"),
				zap.String("model", p.model),
				zap.Error(err),
				zap.Int64("latency_ms", latency.Milliseconds()),
			)
		}
		return nil, generationErr("request failed", err)
	}

	if len(resp.Choices) == 0 {
		return nil, generationErr("empty response", ErrNoChoicesInResponse)
	}
	content := resp.Choices[0].Message.Content

	if p.logger != nil && p.debugMode {
		p.logger.Debug("llm_api_response",
			zap.String("operation", "suggest_breakdown"),
			zap.String("model", p.model),
			zap.Int("response_length", len(content)),
			zap.String("response_preview", SanitizePreview(content, true)),
			zap.Int64("latency_ms", latency.Milliseconds()),
		)
	}

	return parseBreakdownResponse(content)
}

// buildBreakdownPrompt embeds the task title and the type-derived
// duration-unit vocabulary. The unit constraint is a prompt instruction,
// not locally enforced; out-of-vocabulary replies are defaulted at parse
// time instead.
func buildBreakdownPrompt(title string, typ models.TaskType) string {
	kind := "short-term daily task"
	if typ == models.TaskTypeLongTerm {
		kind = "long-term project"
	}

	prompt := fmt.Sprintf(`I need to plan a task: %q.
This is a %s.

Please analyze this request and provide a structured plan.
If it's a complex project, break it down into manageable sub-steps.
Suggest a realistic duration and priority.

For Duration Unit:
- Use 'minutes' or 'hours' for DAILY tasks.
- Use 'days' or 'weeks' for LONG_TERM tasks.
`, title, kind)

	prompt += `
Respond with a JSON object in this format:
{
  "title": "refined task title",
  "description": "one short paragraph",
  "estimatedValue": 1.5,
  "estimatedUnit": "minutes" | "hours" | "days" | "weeks",
  "priority": "low" | "medium" | "high",
  "substeps": ["step one", "step two"]
}

The fields title, estimatedValue, estimatedUnit and priority are required.
Return only valid JSON.`

	return prompt
}

// RegisterOpenAI registers the OpenAI provider with the registry
func RegisterOpenAI(registry *ProviderRegistry) {
	registry.Register("openai", func(config map[string]string) (SuggestionProvider, error) {
		apiKey, ok := config["api_key"]
		if !ok || apiKey == "" {
			return nil, fmt.Errorf("openai api_key is required")
		}

		model := config["model"]
		baseURL := config["base_url"]
		if baseURL == "" {
			baseURL = DefaultOpenAIBaseURL
		}

		return NewOpenAIProviderWithLogger(apiKey, baseURL, model, nil, false), nil
	})
}
