package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type AudioStore struct {
	mock.Mock
}

func (m *AudioStore) Save(ctx context.Context, audio []byte) (string, error) {
	args := m.Called(ctx, audio)
	return args.String(0), args.Error(1)
}

func (m *AudioStore) Path(name string) (string, error) {
	args := m.Called(name)
	return args.String(0), args.Error(1)
}
