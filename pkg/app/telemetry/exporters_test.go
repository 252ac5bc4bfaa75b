package telemetry

import (
	"testing"

	"github.com/NeuralTrust/SafePrompt/pkg/config"
	"github.com/NeuralTrust/SafePrompt/pkg/domain/telemetry/mocks"
	factory "github.com/NeuralTrust/SafePrompt/pkg/infra/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newLocator() (*factory.ExporterLocator, *mocks.Exporter) {
	base := new(mocks.Exporter)
	base.On("Name").Return("kafka")
	return factory.NewExporterLocator(factory.WithExporter(base)), base
}

func TestValidate(t *testing.T) {
	locator, base := newLocator()
	base.On("ValidateConfig", mock.Anything).Return(nil)
	validator := NewExportersValidator(locator)

	assert.NoError(t, validator.Validate(nil))
	assert.NoError(t, validator.Validate([]config.ExporterConfig{{Name: "kafka"}}))
	assert.EqualError(t,
		validator.Validate([]config.ExporterConfig{{Name: "kafka"}, {Name: "datadog"}}),
		"telemetry.exporters[1]: unknown exporter: datadog")
}

func TestBuild(t *testing.T) {
	locator, base := newLocator()
	configured := new(mocks.Exporter)
	base.On("ValidateConfig", mock.Anything).Return(nil)
	base.On("WithSettings", mock.Anything).Return(configured, nil)

	exporters, err := NewExportersBuilder(locator).Build([]config.ExporterConfig{{Name: "kafka"}})

	require.NoError(t, err)
	require.Len(t, exporters, 1)
	assert.Same(t, configured, exporters[0])
}
