package telemetry

import (
	"github.com/NeuralTrust/SafePrompt/pkg/config"
	domain "github.com/NeuralTrust/SafePrompt/pkg/domain/telemetry"
	factory "github.com/NeuralTrust/SafePrompt/pkg/infra/telemetry"
)

//go:generate mockery --name=ExportersBuilder --dir=. --output=./mocks --filename=exporters_builder_mock.go --case=underscore --with-expecter
type ExportersBuilder interface {
	Build(configs []config.ExporterConfig) ([]domain.Exporter, error)
}

type exportersBuilder struct {
	locator *factory.ExporterLocator
}

func NewExportersBuilder(locator *factory.ExporterLocator) ExportersBuilder {
	return &exportersBuilder{
		locator: locator,
	}
}

func (b *exportersBuilder) Build(configs []config.ExporterConfig) ([]domain.Exporter, error) {
	return b.locator.Build(configs)
}
