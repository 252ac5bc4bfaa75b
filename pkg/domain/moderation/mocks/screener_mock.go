package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type Screener struct {
	mock.Mock
}

func (m *Screener) Screen(ctx context.Context, text, language string) ([]string, error) {
	args := m.Called(ctx, text, language)
	terms, _ := args.Get(0).([]string)
	return terms, args.Error(1)
}
