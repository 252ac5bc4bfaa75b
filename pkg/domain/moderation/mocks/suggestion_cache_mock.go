package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type SuggestionCache struct {
	mock.Mock
}

func (m *SuggestionCache) Get(ctx context.Context, term string) (string, bool) {
	args := m.Called(ctx, term)
	return args.String(0), args.Bool(1)
}

func (m *SuggestionCache) Set(ctx context.Context, term, suggestion string) {
	m.Called(ctx, term, suggestion)
}
