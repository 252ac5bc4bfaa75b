package middleware

import (
	"time"

	"github.com/NeuralTrust/SafePrompt/pkg/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const maxRequestIDLength = 128

type requestIDMiddleware struct{}

func NewRequestIDMiddleware() Middleware {
	return &requestIDMiddleware{}
}

// Middleware keeps a caller supplied X-Request-Id or assigns a new uuid, and
// stamps the request start time used for latency metrics.
func (m *requestIDMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(common.LatencyContextKey, time.Now())

		id := c.Get(common.RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}
		c.Locals(common.RequestIDKey, id)
		c.Set(common.RequestIDHeader, id)
		return c.Next()
	}
}

// RequestID returns the id assigned by the request id middleware.
func RequestID(c *fiber.Ctx) string {
	id, _ := c.Locals(common.RequestIDKey).(string)
	return id
}
