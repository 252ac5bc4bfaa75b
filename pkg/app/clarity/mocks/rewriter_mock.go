package mocks

import (
	"context"

	"github.com/NeuralTrust/SafePrompt/pkg/domain/sentiment"
	"github.com/stretchr/testify/mock"
)

type Rewriter struct {
	mock.Mock
}

func (m *Rewriter) Clarify(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}

func (m *Rewriter) Respond(ctx context.Context, clarified string, label sentiment.Label) (string, error) {
	args := m.Called(ctx, clarified, label)
	return args.String(0), args.Error(1)
}
