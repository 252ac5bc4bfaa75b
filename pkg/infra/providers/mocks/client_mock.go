package mocks

import (
	"context"
	"fmt"

	"github.com/NeuralTrust/SafePrompt/pkg/infra/providers"
	"github.com/stretchr/testify/mock"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) Ask(ctx context.Context, config *providers.Config, prompt string) (*providers.CompletionResponse, error) {
	args := m.Called(ctx, config, prompt)
	resp, ok := args.Get(0).(*providers.CompletionResponse)
	if !ok && args.Get(0) != nil {
		return nil, fmt.Errorf("expected *providers.CompletionResponse, got %T", args.Get(0))
	}
	return resp, args.Error(1)
}

// Completion wraps text in a CompletionResponse for Ask expectations.
func Completion(text string) *providers.CompletionResponse {
	return &providers.CompletionResponse{ID: "mock", Model: "mock", Response: text}
}

// WithSystemPrompt matches an Ask call by the system prompt it carries.
func WithSystemPrompt(prompt string) interface{} {
	return mock.MatchedBy(func(cfg *providers.Config) bool {
		return cfg != nil && cfg.SystemPrompt == prompt
	})
}
