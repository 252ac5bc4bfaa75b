package mocks

import (
	"context"

	"github.com/NeuralTrust/SafePrompt/pkg/app/prompt"
	"github.com/stretchr/testify/mock"
)

type Processor struct {
	mock.Mock
}

func (m *Processor) Process(ctx context.Context, input, requestID string) (*prompt.Response, error) {
	args := m.Called(ctx, input, requestID)
	resp, _ := args.Get(0).(*prompt.Response)
	return resp, args.Error(1)
}
