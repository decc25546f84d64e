package provider

import (
	"context"
	"fmt"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is a single, non-streaming completion request.
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature"`
}

// Completion is the assistant reply and the tokens the upstream billed for it.
type Completion struct {
	Message     Message
	TotalTokens int
}

// Provider handles LLM operations.
type Provider interface {
	Chat(ctx context.Context, req *ChatRequest) (*Completion, error)
}

// UpstreamError is returned when the completion service call fails.
// StatusCode is zero for transport-level failures.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: upstream call failed: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("%s: upstream returned status %d: %v", e.Provider, e.StatusCode, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Retryable reports whether another attempt may succeed.
func (e *UpstreamError) Retryable() bool {
	return e.StatusCode == 0 || e.StatusCode == 429 || e.StatusCode >= 500
}
