package http

import (
	"testing"

	speechmocks "github.com/NeuralTrust/SafePrompt/pkg/app/speech/mocks"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newAudioApp(reader *speechmocks.Reader) *fiber.App {
	app := fiber.New()
	app.Post("/generate_audio", NewGenerateAudioHandler(quietLogger(), reader).Handle)
	return app
}

func TestGenerateAudioHandler(t *testing.T) {
	reader := new(speechmocks.Reader)
	reader.On("Read", mock.Anything, "Hello", "world").Return("http://127.0.0.1:5000/audio/a.mp3")

	status, body := postJSON(t, newAudioApp(reader), "/generate_audio", `{"first_text":"Hello","second_text":"world"}`)

	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"audio_url":"http://127.0.0.1:5000/audio/a.mp3"}`, body)
}

func TestGenerateAudioHandler_MissingText(t *testing.T) {
	reader := new(speechmocks.Reader)

	status, body := postJSON(t, newAudioApp(reader), "/generate_audio", `{"second_text":"world"}`)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.JSONEq(t, `{"error":"Text for audio generation is required."}`, body)
	reader.AssertNotCalled(t, "Read", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateAudioHandler_SynthesisFailure(t *testing.T) {
	reader := new(speechmocks.Reader)
	reader.On("Read", mock.Anything, "Hello", "").Return("")

	status, body := postJSON(t, newAudioApp(reader), "/generate_audio", `{"first_text":"Hello"}`)

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.JSONEq(t, `{"error":"Failed to generate audio."}`, body)
}
