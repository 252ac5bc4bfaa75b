package speech

import (
	"context"
	"strings"

	domain "github.com/NeuralTrust/SafePrompt/pkg/domain/speech"
	"github.com/sirupsen/logrus"
)

const (
	DefaultVoice   = "en-US-JessaNeural"
	DefaultBaseURL = "http://127.0.0.1:5000"
	AudioRoute     = "/audio/"
)

//go:generate mockery --name=Reader --dir=. --output=./mocks --filename=reader_mock.go --case=underscore --with-expecter
type Reader interface {
	// Read synthesizes first and second and returns the audio URL, or an
	// empty string when synthesis failed.
	Read(ctx context.Context, first, second string) string
}

type reader struct {
	logger      *logrus.Logger
	synthesizer domain.Synthesizer
	store       domain.AudioStore
	voice       string
	baseURL     string
}

func NewReader(
	logger *logrus.Logger,
	synthesizer domain.Synthesizer,
	store domain.AudioStore,
	voice string,
	baseURL string,
) Reader {
	if voice == "" {
		voice = DefaultVoice
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &reader{
		logger:      logger,
		synthesizer: synthesizer,
		store:       store,
		voice:       voice,
		baseURL:     strings.TrimRight(baseURL, "/"),
	}
}

func (r *reader) Read(ctx context.Context, first, second string) string {
	text := JoinText(first, second)
	audio, err := r.synthesizer.Synthesize(ctx, text, r.voice)
	if err != nil {
		r.logger.WithError(err).WithFields(logrus.Fields{
			"service": "speech",
			"voice":   r.voice,
		}).Error("speech synthesis failed")
		return ""
	}
	name, err := r.store.Save(ctx, audio)
	if err != nil {
		r.logger.WithError(err).Error("failed to store synthesized audio")
		return ""
	}
	return r.baseURL + AudioRoute + name
}

func JoinText(first, second string) string {
	if second == "" {
		return first
	}
	return first + " " + second
}
