package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	SuggestionKeyPattern = "suggestion:%s"
	DefaultSuggestionTTL = 24 * time.Hour
	// MaxLocalSuggestions bounds the in-process tier.
	MaxLocalSuggestions = 10000
)

// SuggestionCache keeps term replacements in memory and, when a redis
// client is given, shares them across instances. Terms are keyed without
// case. Cache failures are logged and treated as misses.
type SuggestionCache struct {
	local  *TTLMap
	remote Client
	ttl    time.Duration
	logger *logrus.Logger
}

func NewSuggestionCache(remote Client, ttl time.Duration, logger *logrus.Logger) *SuggestionCache {
	if ttl <= 0 {
		ttl = DefaultSuggestionTTL
	}
	return &SuggestionCache{
		local:  NewTTLMap(ttl, MaxLocalSuggestions),
		remote: remote,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *SuggestionCache) Get(ctx context.Context, term string) (string, bool) {
	key := suggestionKey(term)
	if value, ok := c.local.Get(key); ok {
		return value, true
	}
	if c.remote == nil {
		return "", false
	}
	value, err := c.remote.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			c.logger.WithError(err).WithField("key", key).Warn("failed to read suggestion from cache")
		}
		return "", false
	}
	c.local.Set(key, value)
	return value, true
}

func (c *SuggestionCache) Set(ctx context.Context, term, suggestion string) {
	key := suggestionKey(term)
	c.local.Set(key, suggestion)
	if c.remote == nil {
		return
	}
	if err := c.remote.Set(ctx, key, suggestion, c.ttl); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("failed to store suggestion in cache")
	}
}

func suggestionKey(term string) string {
	return fmt.Sprintf(SuggestionKeyPattern, strings.ToLower(strings.TrimSpace(term)))
}
