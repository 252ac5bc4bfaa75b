package telemetry

import (
	"time"

	"github.com/google/uuid"
)

// Event summarizes the outcome of one /process call. It never carries the
// submitted text.
type Event struct {
	ID           string `json:"id"`
	Timestamp    int64  `json:"timestamp"`
	RequestID    string `json:"request_id,omitempty"`
	IsSafe       bool   `json:"is_safe"`
	FlaggedTerms int    `json:"flagged_terms"`
	Sentiment    string `json:"sentiment"`
	ContainsPII  bool   `json:"contains_pii"`
	LatencyMs    int64  `json:"latency_ms"`
	Error        string `json:"error,omitempty"`
}

func NewEvent(requestID string, start time.Time) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Timestamp: start.Unix(),
		RequestID: requestID,
		LatencyMs: time.Since(start).Milliseconds(),
	}
}
