package mocks

import (
	"github.com/NeuralTrust/SafePrompt/pkg/domain/telemetry"
	"github.com/stretchr/testify/mock"
)

type Publisher struct {
	mock.Mock
}

func (m *Publisher) Publish(evt *telemetry.Event) {
	m.Called(evt)
}
