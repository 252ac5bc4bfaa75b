package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type Synthesizer struct {
	mock.Mock
}

func (m *Synthesizer) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	args := m.Called(ctx, text, voice)
	audio, _ := args.Get(0).([]byte)
	return audio, args.Error(1)
}
