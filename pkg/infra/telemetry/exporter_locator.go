package telemetry

import (
	"fmt"

	"github.com/NeuralTrust/SafePrompt/pkg/config"
	"github.com/NeuralTrust/SafePrompt/pkg/domain/telemetry"
)

type ExporterLocator struct {
	exporters map[string]telemetry.Exporter
}

func NewExporterLocator(opts ...ExporterLocatorOption) *ExporterLocator {
	el := &ExporterLocator{
		exporters: make(map[string]telemetry.Exporter),
	}
	for _, opt := range opts {
		opt(el)
	}
	return el
}

// GetExporter returns a configured copy of the registered exporter.
func (p *ExporterLocator) GetExporter(exporter config.ExporterConfig) (telemetry.Exporter, error) {
	base, ok := p.exporters[exporter.Name]
	if !ok {
		return nil, fmt.Errorf("unknown exporter: %s", exporter.Name)
	}
	if err := base.ValidateConfig(exporter.Settings); err != nil {
		return nil, err
	}
	return base.WithSettings(exporter.Settings)
}

func (p *ExporterLocator) ValidateExporter(exporter config.ExporterConfig) error {
	base, ok := p.exporters[exporter.Name]
	if !ok {
		return fmt.Errorf("unknown exporter: %s", exporter.Name)
	}
	return base.ValidateConfig(exporter.Settings)
}

// Build configures every exporter in cfgs. Exporters created before a
// failure are closed.
func (p *ExporterLocator) Build(cfgs []config.ExporterConfig) ([]telemetry.Exporter, error) {
	built := make([]telemetry.Exporter, 0, len(cfgs))
	for _, cfg := range cfgs {
		exp, err := p.GetExporter(cfg)
		if err != nil {
			for _, b := range built {
				b.Close()
			}
			return nil, fmt.Errorf("exporter %s: %w", cfg.Name, err)
		}
		built = append(built, exp)
	}
	return built, nil
}
