package mocks

import (
	"context"

	"github.com/NeuralTrust/SafePrompt/pkg/domain/sentiment"
	"github.com/stretchr/testify/mock"
)

type Checker struct {
	mock.Mock
}

func (m *Checker) Check(ctx context.Context, text string) sentiment.Label {
	return m.Called(ctx, text).Get(0).(sentiment.Label)
}
