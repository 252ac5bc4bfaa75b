package http

import (
	"errors"

	"github.com/NeuralTrust/SafePrompt/pkg/common"
	"github.com/NeuralTrust/SafePrompt/pkg/domain"
	"github.com/NeuralTrust/SafePrompt/pkg/domain/speech"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type getAudioHandler struct {
	logger *logrus.Logger
	store  speech.AudioStore
}

func NewGetAudioHandler(logger *logrus.Logger, store speech.AudioStore) Handler {
	return &getAudioHandler{
		logger: logger,
		store:  store,
	}
}

// Handle @Summary Download generated audio
// @Description Serves an mp3 file produced by /generate_audio
// @Tags Speech
// @Produce audio/mpeg
// @Param name path string true "Audio file name"
// @Success 200 {file} file "Audio file"
// @Failure 400 {object} map[string]interface{} "Invalid file name"
// @Failure 404 {object} map[string]interface{} "Audio not found"
// @Router /audio/{name} [get]
func (h *getAudioHandler) Handle(c *fiber.Ctx) error {
	path, err := h.store.Path(c.Params("name"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAudioName):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidAudioName})
		case errors.Is(err, domain.ErrAudioNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": ErrAudioNotFound})
		default:
			h.logger.WithError(err).Error("failed to resolve audio file")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
		}
	}
	c.Set(fiber.HeaderContentType, common.AudioContentType)
	return c.SendFile(path)
}
