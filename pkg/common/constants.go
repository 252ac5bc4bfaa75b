package common

const (
	RequestIDHeader = "X-Request-Id"

	AudioContentType = "audio/mpeg"
)
