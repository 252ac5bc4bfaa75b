package mocks

import (
	"context"

	"github.com/NeuralTrust/SafePrompt/pkg/domain/moderation"
	"github.com/stretchr/testify/mock"
)

type Sanitizer struct {
	mock.Mock
}

func (m *Sanitizer) Sanitize(ctx context.Context, text string) (*moderation.Result, error) {
	args := m.Called(ctx, text)
	res, _ := args.Get(0).(*moderation.Result)
	return res, args.Error(1)
}
