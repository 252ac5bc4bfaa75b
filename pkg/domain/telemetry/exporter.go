package telemetry

import (
	"context"
)

//go:generate mockery --name=Exporter --dir=. --output=./mocks --filename=exporter_mock.go --case=underscore --with-expecter
type Exporter interface {
	Name() string
	ValidateConfig(settings map[string]interface{}) error
	Handle(ctx context.Context, evt *Event) error
	WithSettings(settings map[string]interface{}) (Exporter, error)
	Close()
}

// Publisher hands events to the exporters without blocking the caller.
//
//go:generate mockery --name=Publisher --dir=. --output=./mocks --filename=publisher_mock.go --case=underscore --with-expecter
type Publisher interface {
	Publish(evt *Event)
}
