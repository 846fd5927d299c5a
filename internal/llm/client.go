package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

// Generator produces a parsed JSON object from a system instruction and a
// structured payload. Implementations never return partial objects: callers
// get either a complete map or an error.
type Generator interface {
	Mock() bool
	Provider() string
	Model() string
	GenerateJSON(ctx context.Context, system string, payload map[string]any) (map[string]any, error)
}

// Config holds completion provider settings, all supplied externally.
type Config struct {
	Provider    string
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
}

const (
	defaultBaseURL     = "https://api.groq.com/openai/v1"
	defaultModel       = "llama-3.3-70b-versatile"
	defaultTemperature = 0.15
	requestTimeout     = 60 * time.Second
)

// completer issues a single completion request and returns the raw text
// content. One implementation per vendor; adding a provider means adding a
// variant here, not another branch in the client.
type completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Client is the completion gateway. Mode is fixed at construction: without a
// provider name and API key it serves the deterministic mock analysis and
// never touches the network.
type Client struct {
	provider  string
	model     string
	baseURL   string
	hasKey    bool
	completer completer
}

// NewClient constructs a gateway from configuration. A blank provider or API
// key selects mock mode.
func NewClient(cfg Config) *Client {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	apiKey := strings.TrimSpace(cfg.APIKey)

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	temp := cfg.Temperature
	if temp <= 0 {
		temp = defaultTemperature
	}

	c := &Client{
		provider: provider,
		model:    model,
		baseURL:  baseURL,
		hasKey:   apiKey != "",
	}
	if c.Mock() {
		return c
	}

	if provider == "groq" {
		c.completer = &groqCompleter{
			httpClient:  &http.Client{Timeout: requestTimeout},
			apiKey:      apiKey,
			model:       model,
			baseURL:     baseURL,
			temperature: temp,
		}
	}
	return c
}

// NewMock returns a gateway pinned to mock mode regardless of environment,
// used by the orchestrator's fallback path.
func NewMock() *Client {
	return &Client{model: defaultModel, baseURL: defaultBaseURL}
}

// Mock reports whether the gateway serves synthetic data instead of calling
// a provider.
func (c *Client) Mock() bool {
	return c.provider == "" || !c.hasKey
}

// Provider returns the configured provider identifier, empty in mock mode.
func (c *Client) Provider() string {
	return c.provider
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

// BaseURL returns the configured API base.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HasKey reports whether an API key was supplied.
func (c *Client) HasKey() bool {
	return c.hasKey
}

// GenerateJSON returns the parsed analysis object for the payload. In mock
// mode it never fails and performs no I/O. In live mode it issues exactly one
// provider call; retry policy belongs to the caller.
func (c *Client) GenerateJSON(ctx context.Context, system string, payload map[string]any) (map[string]any, error) {
	if c.Mock() {
		scenario, _ := payload["scenario"].(string)
		return mockAnalysis(scenario), nil
	}

	if c.completer == nil {
		return nil, &ConfigurationError{Provider: c.provider}
	}

	user, err := json.Marshal(payload)
	if err != nil {
		return nil, &ValidationError{Reason: "payload not serializable: " + err.Error()}
	}

	content, err := c.completer.Complete(ctx, system, string(user))
	if err != nil {
		return nil, err
	}
	return decodeObject(content)
}

// decodeObject parses completion text as a JSON object. When direct parsing
// fails it retries on the substring between the first "{" and the last "}".
// That repair is a deliberate best-effort heuristic, not a parser.
func decodeObject(content string) (map[string]any, error) {
	var value any
	if err := json.Unmarshal([]byte(content), &value); err != nil {
		start := strings.Index(content, "{")
		end := strings.LastIndex(content, "}")
		if start == -1 || end == -1 || end < start {
			return nil, &InvalidResponseError{Raw: content}
		}
		if err := json.Unmarshal([]byte(content[start:end+1]), &value); err != nil {
			return nil, &InvalidResponseError{Raw: content}
		}
	}

	obj, ok := value.(map[string]any)
	if !ok {
		return nil, &ValidationError{Reason: "completion is not a JSON object"}
	}
	return obj, nil
}
