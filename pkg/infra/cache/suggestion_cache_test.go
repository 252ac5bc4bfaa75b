package cache

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestSuggestionCache_RedisHitFillsLocal(t *testing.T) {
	redisClient, mock := redismock.NewClientMock()
	mock.ExpectGet("suggestion:dam").SetVal("darn")

	c := NewSuggestionCache(NewClientFromRedis(redisClient), time.Hour, testLogger())

	value, ok := c.Get(context.Background(), " DAM ")
	require.True(t, ok)
	assert.Equal(t, "darn", value)

	// second read is served locally, no further redis expectation
	value, ok = c.Get(context.Background(), "dam")
	require.True(t, ok)
	assert.Equal(t, "darn", value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSuggestionCache_Miss(t *testing.T) {
	redisClient, mock := redismock.NewClientMock()
	mock.ExpectGet("suggestion:crap").RedisNil()

	c := NewSuggestionCache(NewClientFromRedis(redisClient), time.Hour, testLogger())

	_, ok := c.Get(context.Background(), "crap")
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSuggestionCache_RedisErrorIsMiss(t *testing.T) {
	redisClient, mock := redismock.NewClientMock()
	mock.ExpectGet("suggestion:crap").SetErr(errors.New("connection refused"))

	c := NewSuggestionCache(NewClientFromRedis(redisClient), time.Hour, testLogger())

	_, ok := c.Get(context.Background(), "crap")
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSuggestionCache_Set(t *testing.T) {
	redisClient, mock := redismock.NewClientMock()
	mock.ExpectSet("suggestion:crap", "junk", time.Hour).SetVal("OK")

	c := NewSuggestionCache(NewClientFromRedis(redisClient), time.Hour, testLogger())
	c.Set(context.Background(), "Crap", "junk")

	value, ok := c.Get(context.Background(), "crap")
	require.True(t, ok)
	assert.Equal(t, "junk", value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSuggestionCache_MemoryOnly(t *testing.T) {
	c := NewSuggestionCache(nil, 0, testLogger())
	assert.Equal(t, DefaultSuggestionTTL, c.ttl)

	_, ok := c.Get(context.Background(), "dam")
	assert.False(t, ok)

	c.Set(context.Background(), "dam", "darn")
	value, ok := c.Get(context.Background(), "DAM")
	require.True(t, ok)
	assert.Equal(t, "darn", value)
}
