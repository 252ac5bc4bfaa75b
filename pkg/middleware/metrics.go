package middleware

import (
	"errors"
	"fmt"
	"time"

	"github.com/NeuralTrust/SafePrompt/pkg/common"
	"github.com/NeuralTrust/SafePrompt/pkg/infra/prometheus"
	"github.com/avct/uasurfer"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type metricsMiddleware struct {
	logger *logrus.Logger
}

func NewMetricsMiddleware(logger *logrus.Logger) Middleware {
	return &metricsMiddleware{logger: logger}
}

// Middleware counts requests per route and status class and records their
// latency when enabled.
func (m *metricsMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		startTime, ok := c.Locals(common.LatencyContextKey).(time.Time)
		if !ok {
			startTime = time.Now()
		}

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		device := deviceClass(c.Get(fiber.HeaderUserAgent))
		prometheus.RequestTotal.WithLabelValues(route, c.Method(), statusClass(status), device).Inc()
		if prometheus.Config.EnableLatency {
			prometheus.RequestLatency.WithLabelValues(route).
				Observe(float64(time.Since(startTime).Milliseconds()))
		}
		m.logger.WithFields(logrus.Fields{
			"route":      route,
			"status":     status,
			"device":     device,
			"request_id": c.Locals(common.RequestIDKey),
		}).Debug("request completed")
		return err
	}
}

// deviceClass buckets the caller by device so the request counter keeps a
// small, fixed label set.
func deviceClass(userAgent string) string {
	if userAgent == "" {
		return "unknown"
	}
	switch uasurfer.Parse(userAgent).DeviceType {
	case uasurfer.DeviceComputer:
		return "computer"
	case uasurfer.DeviceTablet:
		return "tablet"
	case uasurfer.DevicePhone:
		return "phone"
	case uasurfer.DeviceConsole, uasurfer.DeviceWearable, uasurfer.DeviceTV:
		return "other"
	default:
		return "unknown"
	}
}

func statusClass(code int) string {
	if code < 100 || code > 599 {
		return "5xx"
	}
	return fmt.Sprintf("%dxx", code/100)
}
