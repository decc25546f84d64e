package openai

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/Natnat0905/GeoChat/internal/provider"
)

const name = "openai"

// Provider calls an OpenAI-compatible Chat Completions endpoint.
type Provider struct {
	client *goopenai.Client
}

type Option func(*goopenai.ClientConfig)

// WithBaseURL points the client at another OpenAI-compatible server.
func WithBaseURL(baseURL string) Option {
	return func(c *goopenai.ClientConfig) {
		if u := strings.TrimSpace(baseURL); u != "" {
			c.BaseURL = strings.TrimRight(u, "/")
		}
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *goopenai.ClientConfig) {
		c.HTTPClient = hc
	}
}

// New builds a provider authenticated with apiKey. An empty key is accepted;
// the upstream rejects the call and the caller's fallback handles it.
func New(apiKey string, opts ...Option) *Provider {
	cfg := goopenai.DefaultConfig(apiKey)
	cfg.HTTPClient = &http.Client{Timeout: 60 * time.Second}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Provider{client: goopenai.NewClientWithConfig(cfg)}
}

func (p *Provider) Chat(ctx context.Context, req *provider.ChatRequest) (*provider.Completion, error) {
	msgs := make([]goopenai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		msgs = append(msgs, goopenai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := p.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    msgs,
		MaxTokens:   req.MaxTokens,
		Temperature: float32(req.Temperature),
	})
	if err != nil {
		return nil, &provider.UpstreamError{Provider: name, StatusCode: statusCode(err), Err: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &provider.UpstreamError{Provider: name, StatusCode: http.StatusBadGateway, Err: errors.New("no choices in response")}
	}
	return &provider.Completion{
		Message: provider.Message{
			Role:    provider.RoleAssistant,
			Content: resp.Choices[0].Message.Content,
		},
		TotalTokens: resp.Usage.TotalTokens,
	}, nil
}

func statusCode(err error) int {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
