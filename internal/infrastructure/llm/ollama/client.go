package ollama

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/datakota/usaha-assistant/internal/core/domain"
	"github.com/datakota/usaha-assistant/internal/infrastructure/resilience"
)

// Client talks to an Ollama server. Generation calls are retried a bounded
// number of times with backoff when an executor is configured; callers fall
// back to deterministic templates once the error surfaces.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
	executor   *resilience.Executor
}

func New(baseURL, model string, executor *resilience.Executor) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		executor:   executor,
	}
}

// Chat sends an ordered role-tagged message list with the numeric option set.
func (c *Client) Chat(ctx context.Context, messages []domain.ChatMessage, options domain.GenerateOptions) (string, error) {
	reqBody := map[string]any{
		"model":    c.model,
		"messages": messages,
		"stream":   false,
		"options": map[string]any{
			"temperature":    options.Temperature,
			"top_p":          options.TopP,
			"repeat_penalty": options.RepeatPenalty,
		},
	}

	var response struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}
	if err := c.call(ctx, "/api/chat", reqBody, &response, "chat"); err != nil {
		return "", err
	}
	return strings.TrimSpace(response.Message.Content), nil
}

// Generate sends a plain single-prompt completion request.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := map[string]any{
		"model":  c.model,
		"prompt": prompt,
		"stream": false,
	}

	var response struct {
		Response string `json:"response"`
	}
	if err := c.call(ctx, "/api/generate", reqBody, &response, "generate"); err != nil {
		return "", err
	}
	return strings.TrimSpace(response.Response), nil
}

func (c *Client) call(ctx context.Context, path string, payload, out any, operation string) error {
	do := func(ctx context.Context) error {
		return c.postJSON(ctx, path, payload, out, operation)
	}

	var err error
	if c.executor != nil {
		err = c.executor.Execute(ctx, "ollama."+operation, do, classifyOllamaError)
	} else {
		err = do(ctx)
	}
	return wrapTemporaryIfNeeded(operation, err)
}
