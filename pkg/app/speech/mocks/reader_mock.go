package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type Reader struct {
	mock.Mock
}

func (m *Reader) Read(ctx context.Context, first, second string) string {
	return m.Called(ctx, first, second).String(0)
}
