package http

import (
	"github.com/NeuralTrust/SafePrompt/pkg/app/pii"
	"github.com/NeuralTrust/SafePrompt/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type checkPIIHandler struct {
	logger  *logrus.Logger
	checker pii.Checker
}

func NewCheckPIIHandler(logger *logrus.Logger, checker pii.Checker) Handler {
	return &checkPIIHandler{
		logger:  logger,
		checker: checker,
	}
}

// Handle @Summary Detect PII
// @Description Reports whether the input contains personally identifiable information
// @Tags PII
// @Accept json
// @Produce json
// @Param payload body request.InputRequest true "Text to inspect"
// @Success 200 {object} pii.Result "PII findings"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Router /check_pii [post]
func (h *checkPIIHandler) Handle(c *fiber.Ctx) error {
	var req request.InputRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.WithError(err).Error("failed to bind request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}
	result := h.checker.Check(c.Context(), req.Input)
	return c.Status(fiber.StatusOK).JSON(result)
}
