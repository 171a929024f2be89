package pipeline

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/arpriyadarshi/ey-pharma/pkg/anthropic"
)

// mockClient is a testify mock of the Anthropic client.
type mockClient struct {
	mock.Mock
}

func (m *mockClient) CreateMessage(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*anthropic.MessageResponse), args.Error(1)
}

// textResponse wraps canned text in a minimal message response.
func textResponse(text string) *anthropic.MessageResponse {
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: text}},
		Usage:   anthropic.TokenUsage{InputTokens: 100, OutputTokens: 50},
	}
}

// forModel matches requests by their model ID, which the stage configs
// keep distinct in tests.
func forModel(model string) any {
	return mock.MatchedBy(func(req anthropic.MessageRequest) bool {
		return req.Model == model
	})
}
