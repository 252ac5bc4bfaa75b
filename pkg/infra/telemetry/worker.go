package telemetry

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/NeuralTrust/SafePrompt/pkg/domain/telemetry"
	"github.com/sirupsen/logrus"
)

const (
	queueSize     = 1000
	handleTimeout = 10 * time.Second
)

// Worker fans outcome events out to the configured exporters from a fixed
// pool of goroutines.
type Worker struct {
	logger    *logrus.Logger
	exporters []telemetry.Exporter
	events    chan *telemetry.Event
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.RWMutex
	closed    bool
	dropped   atomic.Uint64
}

func NewWorker(logger *logrus.Logger, exporters []telemetry.Exporter) *Worker {
	ctx, cancel := context.WithCancel(context.Background())
	return &Worker{
		logger:    logger,
		exporters: exporters,
		events:    make(chan *telemetry.Event, queueSize),
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (w *Worker) StartWorkers(n int) {
	if n < 1 {
		n = 1
	}
	w.logger.WithField("workers", n).Info("starting telemetry workers")
	for i := 0; i < n; i++ {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			for {
				select {
				case evt, ok := <-w.events:
					if !ok {
						return
					}
					w.export(evt)
				case <-w.ctx.Done():
					return
				}
			}
		}()
	}
}

// Publish never blocks. Events are dropped when no exporter is configured,
// the queue is full or the worker is shut down.
func (w *Worker) Publish(evt *telemetry.Event) {
	if evt == nil || len(w.exporters) == 0 {
		return
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return
	}
	select {
	case w.events <- evt:
	default:
		w.dropped.Add(1)
		w.logger.WithField("event_id", evt.ID).Warn("telemetry queue is full, dropping event")
	}
}

func (w *Worker) Dropped() uint64 {
	return w.dropped.Load()
}

func (w *Worker) export(evt *telemetry.Event) {
	ctx, cancel := context.WithTimeout(w.ctx, handleTimeout)
	defer cancel()
	for _, exporter := range w.exporters {
		if err := exporter.Handle(ctx, evt); err != nil {
			w.logger.WithFields(logrus.Fields{
				"exporter": exporter.Name(),
				"event_id": evt.ID,
			}).WithError(err).Error("exporter failed")
		}
	}
}

// Shutdown drains queued events, stops the workers and closes the exporters.
func (w *Worker) Shutdown() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	close(w.events)
	w.mu.Unlock()

	w.logger.Info("shutting down telemetry workers")
	w.wg.Wait()
	w.cancel()
	for _, exporter := range w.exporters {
		exporter.Close()
	}
	w.logger.Info("telemetry workers stopped")
}
