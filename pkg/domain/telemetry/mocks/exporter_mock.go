package mocks

import (
	"context"

	"github.com/NeuralTrust/SafePrompt/pkg/domain/telemetry"
	"github.com/stretchr/testify/mock"
)

type Exporter struct {
	mock.Mock
}

func (m *Exporter) Name() string {
	return m.Called().String(0)
}

func (m *Exporter) ValidateConfig(settings map[string]interface{}) error {
	return m.Called(settings).Error(0)
}

func (m *Exporter) Handle(ctx context.Context, evt *telemetry.Event) error {
	return m.Called(ctx, evt).Error(0)
}

func (m *Exporter) WithSettings(settings map[string]interface{}) (telemetry.Exporter, error) {
	args := m.Called(settings)
	exp, _ := args.Get(0).(telemetry.Exporter)
	return exp, args.Error(1)
}

func (m *Exporter) Close() {
	m.Called()
}
