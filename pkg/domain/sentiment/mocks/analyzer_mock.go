package mocks

import (
	"context"

	"github.com/NeuralTrust/SafePrompt/pkg/domain/sentiment"
	"github.com/stretchr/testify/mock"
)

type Analyzer struct {
	mock.Mock
}

func (m *Analyzer) AnalyzeSentiment(ctx context.Context, text, language string) (sentiment.Label, error) {
	args := m.Called(ctx, text, language)
	return args.Get(0).(sentiment.Label), args.Error(1)
}
