package server

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/NeuralTrust/SafePrompt/pkg/config"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	s := NewBaseServer(&config.Config{}, logger)
	s.setupHealthCheck()

	for _, path := range []string{HealthPath, PingPath} {
		resp, err := s.Router.Test(httptest.NewRequest("GET", path, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, path)
	}
}

func TestMetricsDisabled(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	s := NewBaseServer(&config.Config{}, logger)
	s.setupMetricsEndpoint()
	assert.Nil(t, s.metricsApp)
	assert.NoError(t, s.shutdown())
}
