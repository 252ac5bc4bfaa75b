package telemetry

import (
	"io"
	"sync"
	"testing"
	"time"

	"github.com/NeuralTrust/SafePrompt/pkg/domain/telemetry"
	"github.com/NeuralTrust/SafePrompt/pkg/domain/telemetry/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestWorker_PublishesToEveryExporter(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(2)

	first := namedExporter("first")
	first.On("Handle", mock.Anything, mock.AnythingOfType("*telemetry.Event")).
		Run(func(mock.Arguments) { wg.Done() }).Return(nil)
	first.On("Close").Return()
	second := namedExporter("second")
	second.On("Handle", mock.Anything, mock.AnythingOfType("*telemetry.Event")).
		Run(func(mock.Arguments) { wg.Done() }).Return(assert.AnError)
	second.On("Close").Return()

	worker := NewWorker(quietLogger(), []telemetry.Exporter{first, second})
	worker.StartWorkers(2)
	worker.Publish(telemetry.NewEvent("req-1", time.Now()))

	waitTimeout(t, &wg)
	worker.Shutdown()

	first.AssertExpectations(t)
	second.AssertExpectations(t)
}

func TestWorker_PublishWithoutExporters(t *testing.T) {
	worker := NewWorker(quietLogger(), nil)
	worker.Publish(telemetry.NewEvent("", time.Now()))
	worker.Shutdown()
	assert.Equal(t, uint64(0), worker.Dropped())
}

func TestWorker_DropsWhenFull(t *testing.T) {
	exp := new(mocks.Exporter)
	exp.On("Handle", mock.Anything, mock.Anything).Return(nil).Maybe()
	exp.On("Name").Return("slow").Maybe()
	exp.On("Close").Return()

	worker := NewWorker(quietLogger(), []telemetry.Exporter{exp})
	for i := 0; i < queueSize+5; i++ {
		worker.Publish(&telemetry.Event{ID: "e"})
	}
	assert.Equal(t, uint64(5), worker.Dropped())
	worker.Shutdown()
}

func TestWorker_PublishAfterShutdown(t *testing.T) {
	exp := new(mocks.Exporter)
	exp.On("Close").Return()

	worker := NewWorker(quietLogger(), []telemetry.Exporter{exp})
	worker.StartWorkers(1)
	worker.Shutdown()
	worker.Shutdown()

	assert.NotPanics(t, func() { worker.Publish(&telemetry.Event{ID: "late"}) })
	exp.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	exp.AssertNumberOfCalls(t, "Close", 1)
}

func waitTimeout(t *testing.T, wg *sync.WaitGroup) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for exporters")
	}
}
