package domain

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	ErrNoInput          = errors.New("no input provided")
	ErrEmptyText        = errors.New("text for audio generation is required")
	ErrAudioNotFound    = errors.New("audio file not found")
	ErrInvalidAudioName = errors.New("invalid audio file name")
)

const maxPreview = 512

type upstreamError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *upstreamError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Service, e.StatusCode, e.Body)
}

// NewUpstreamError wraps a non-2xx answer from an external service. The body
// is truncated to a short preview.
func NewUpstreamError(service string, statusCode int, body []byte) error {
	preview := string(body)
	if len(preview) > maxPreview {
		cut := maxPreview
		for cut > 0 && !utf8.RuneStart(preview[cut]) {
			cut--
		}
		preview = preview[:cut] + "..."
	}
	return &upstreamError{
		Service:    service,
		StatusCode: statusCode,
		Body:       preview,
	}
}

func IsUpstreamError(err error) bool {
	if err == nil {
		return false
	}
	var upstream *upstreamError
	return errors.As(err, &upstream)
}

// UpstreamStatus returns the status code carried by an upstream error, or 0.
func UpstreamStatus(err error) int {
	var upstream *upstreamError
	if errors.As(err, &upstream) {
		return upstream.StatusCode
	}
	return 0
}
