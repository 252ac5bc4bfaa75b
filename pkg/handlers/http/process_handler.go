package http

import (
	"errors"

	"github.com/NeuralTrust/SafePrompt/pkg/app/prompt"
	"github.com/NeuralTrust/SafePrompt/pkg/common"
	"github.com/NeuralTrust/SafePrompt/pkg/domain"
	"github.com/NeuralTrust/SafePrompt/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type processHandler struct {
	logger    *logrus.Logger
	processor prompt.Processor
}

func NewProcessHandler(logger *logrus.Logger, processor prompt.Processor) Handler {
	return &processHandler{
		logger:    logger,
		processor: processor,
	}
}

// Handle @Summary Process a prompt
// @Description Screens the input for harmful language, rewrites it for clarity and generates a response
// @Tags Prompt
// @Accept json
// @Produce json
// @Param payload body request.InputRequest true "Prompt to process"
// @Success 200 {object} prompt.Response "Processed prompt"
// @Failure 400 {object} map[string]interface{} "Missing input or processing error"
// @Router /process [post]
func (h *processHandler) Handle(c *fiber.Ctx) error {
	var req request.InputRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.WithError(err).Error("failed to bind request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	requestID, _ := c.Locals(common.RequestIDKey).(string)
	resp, err := h.processor.Process(c.Context(), req.Input, requestID)
	if err != nil {
		if errors.Is(err, domain.ErrNoInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrNoInputProvided})
		}
		h.logger.WithError(err).WithField("request_id", requestID).Error("failed to process prompt")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}
