package echo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Natnat0905/GeoChat/internal/provider"
)

func TestChatEchoesLastUserMessage(t *testing.T) {
	p := New()
	out, err := p.Chat(context.Background(), &provider.ChatRequest{
		Messages: []provider.Message{
			{Role: provider.RoleSystem, Content: "be a tutor"},
			{Role: provider.RoleUser, Content: "area of a circle"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "Echo: area of a circle", out.Message.Content)
	require.Equal(t, 4, out.TotalTokens)
}

func TestChatWithoutUserMessage(t *testing.T) {
	_, err := New().Chat(context.Background(), &provider.ChatRequest{
		Messages: []provider.Message{{Role: provider.RoleSystem, Content: "x"}},
	})
	require.Error(t, err)
}

func TestChatCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().Chat(ctx, &provider.ChatRequest{
		Messages: []provider.Message{{Role: provider.RoleUser, Content: "x"}},
	})
	require.ErrorIs(t, err, context.Canceled)
}
