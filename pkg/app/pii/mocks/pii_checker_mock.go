package mocks

import (
	"context"

	"github.com/NeuralTrust/SafePrompt/pkg/domain/pii"
	"github.com/stretchr/testify/mock"
)

type Checker struct {
	mock.Mock
}

func (m *Checker) Check(ctx context.Context, text string) pii.Result {
	return m.Called(ctx, text).Get(0).(pii.Result)
}
