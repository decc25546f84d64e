package echo

import (
	"context"
	"errors"
	"strings"

	"github.com/Natnat0905/GeoChat/internal/provider"
)

// Provider answers offline by echoing the last user message. It backs local
// development when no completion service is configured.
type Provider struct{}

func New() *Provider { return &Provider{} }

func (p *Provider) Chat(ctx context.Context, req *provider.ChatRequest) (*provider.Completion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for i := len(req.Messages) - 1; i >= 0; i-- {
		m := req.Messages[i]
		if m.Role != provider.RoleUser {
			continue
		}
		return &provider.Completion{
			Message:     provider.Message{Role: provider.RoleAssistant, Content: "Echo: " + m.Content},
			TotalTokens: len(strings.Fields(m.Content)),
		}, nil
	}
	return nil, errors.New("echo: no user message")
}
