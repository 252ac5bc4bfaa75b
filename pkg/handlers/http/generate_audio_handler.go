package http

import (
	"github.com/NeuralTrust/SafePrompt/pkg/app/speech"
	"github.com/NeuralTrust/SafePrompt/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type generateAudioHandler struct {
	logger *logrus.Logger
	reader speech.Reader
}

func NewGenerateAudioHandler(logger *logrus.Logger, reader speech.Reader) Handler {
	return &generateAudioHandler{
		logger: logger,
		reader: reader,
	}
}

// Handle @Summary Generate audio
// @Description Synthesizes speech for first_text, followed by second_text when given
// @Tags Speech
// @Accept json
// @Produce json
// @Param payload body request.GenerateAudioRequest true "Text to synthesize"
// @Success 200 {object} map[string]interface{} "URL of the generated audio"
// @Failure 400 {object} map[string]interface{} "Missing text"
// @Failure 500 {object} map[string]interface{} "Synthesis failed"
// @Router /generate_audio [post]
func (h *generateAudioHandler) Handle(c *fiber.Ctx) error {
	var req request.GenerateAudioRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.WithError(err).Error("failed to bind request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrAudioTextRequired})
	}

	url := h.reader.Read(c.Context(), req.FirstText, req.SecondText)
	if url == "" {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrAudioFailed})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"audio_url": url})
}
