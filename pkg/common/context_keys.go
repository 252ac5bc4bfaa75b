package common

type contextKey string

const (
	RequestIDKey      contextKey = "request_id"
	LatencyContextKey contextKey = "__execution_time"
)
