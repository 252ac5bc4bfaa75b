package telemetry

import (
	"fmt"

	"github.com/NeuralTrust/SafePrompt/pkg/config"
	factory "github.com/NeuralTrust/SafePrompt/pkg/infra/telemetry"
)

type ExportersValidator interface {
	Validate(configs []config.ExporterConfig) error
}

type exportersValidator struct {
	locator *factory.ExporterLocator
}

func NewExportersValidator(locator *factory.ExporterLocator) ExportersValidator {
	return &exportersValidator{
		locator: locator,
	}
}

func (v *exportersValidator) Validate(configs []config.ExporterConfig) error {
	for i, cfg := range configs {
		if err := v.locator.ValidateExporter(cfg); err != nil {
			return fmt.Errorf("telemetry.exporters[%d]: %w", i, err)
		}
	}
	return nil
}
