package mocks

import (
	"context"

	"github.com/NeuralTrust/SafePrompt/pkg/domain/pii"
	"github.com/stretchr/testify/mock"
)

type Recognizer struct {
	mock.Mock
}

func (m *Recognizer) RecognizePII(ctx context.Context, text, language string) ([]pii.Entity, error) {
	args := m.Called(ctx, text, language)
	entities, _ := args.Get(0).([]pii.Entity)
	return entities, args.Error(1)
}
