package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestNewUpstreamError(t *testing.T) {
	err := NewUpstreamError("azure-language", 401, []byte(`{"error":"unauthorized"}`))

	assert.True(t, IsUpstreamError(err))
	assert.True(t, IsUpstreamError(fmt.Errorf("pii check: %w", err)))
	assert.Equal(t, 401, UpstreamStatus(err))
	assert.EqualError(t, err, `azure-language returned status 401: {"error":"unauthorized"}`)

	assert.False(t, IsUpstreamError(nil))
	assert.False(t, IsUpstreamError(errors.New("timeout")))
	assert.Equal(t, 0, UpstreamStatus(errors.New("timeout")))
}

func TestNewUpstreamError_TruncatesPreview(t *testing.T) {
	t.Run("ascii", func(t *testing.T) {
		err := NewUpstreamError("moderator", 500, []byte(strings.Repeat("a", maxPreview+10)))
		body := err.(*upstreamError).Body
		assert.Equal(t, strings.Repeat("a", maxPreview)+"...", body)
	})

	t.Run("multi-byte rune at the limit", func(t *testing.T) {
		// "é" is two bytes; the limit falls in the middle of one.
		raw := strings.Repeat("a", maxPreview-1) + strings.Repeat("é", 10)
		err := NewUpstreamError("moderator", 500, []byte(raw))
		body := err.(*upstreamError).Body

		assert.True(t, utf8.ValidString(body))
		assert.Equal(t, strings.Repeat("a", maxPreview-1)+"...", body)
	})
}
