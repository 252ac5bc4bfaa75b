package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/NeuralTrust/SafePrompt/pkg/infra/httpx"
	"github.com/NeuralTrust/SafePrompt/pkg/infra/prometheus"
)

const (
	ElevenLabsServiceName = "elevenlabs"

	defaultElevenLabsURL     = "https://api.elevenlabs.io/v1"
	defaultElevenLabsVoiceID = "21m00Tcm4TlvDq8ikWAM"
	defaultElevenLabsModelID = "eleven_multilingual_v2"
	elevenLabsOutputFormat   = "mp3_44100_128"
)

type ElevenLabsConfig struct {
	APIKey  string
	BaseURL string
	// VoiceID is used when the requested voice is not an ElevenLabs id.
	VoiceID string
	ModelID string
}

type elevenLabsVoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

type elevenLabsRequest struct {
	Text          string                  `json:"text"`
	ModelID       string                  `json:"model_id"`
	VoiceSettings elevenLabsVoiceSettings `json:"voice_settings"`
}

// ElevenLabsSynthesizer calls the ElevenLabs text-to-speech API.
type ElevenLabsSynthesizer struct {
	cfg     ElevenLabsConfig
	client  httpx.Client
	breaker httpx.CircuitBreaker
}

func NewElevenLabsSynthesizer(cfg ElevenLabsConfig, client httpx.Client, breaker httpx.CircuitBreaker) (*ElevenLabsSynthesizer, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("elevenlabs api key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultElevenLabsURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.VoiceID == "" {
		cfg.VoiceID = defaultElevenLabsVoiceID
	}
	if cfg.ModelID == "" {
		cfg.ModelID = defaultElevenLabsModelID
	}
	return &ElevenLabsSynthesizer{cfg: cfg, client: client, breaker: breaker}, nil
}

func (s *ElevenLabsSynthesizer) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	body, err := json.Marshal(elevenLabsRequest{
		Text:    text,
		ModelID: s.cfg.ModelID,
		VoiceSettings: elevenLabsVoiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.75,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/text-to-speech/%s?output_format=%s",
		s.cfg.BaseURL, url.PathEscape(s.voiceID(voice)), elevenLabsOutputFormat)

	var audio []byte
	start := time.Now()
	err = s.breaker.Execute(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "audio/mpeg")
		req.Header.Set("xi-api-key", s.cfg.APIKey)

		resp, err := s.client.Do(req)
		if err != nil {
			return fmt.Errorf("%s request failed: %w", ElevenLabsServiceName, err)
		}
		audio, err = httpx.ReadBody(ElevenLabsServiceName, resp)
		return err
	})
	prometheus.ObserveUpstream(ElevenLabsServiceName, start, err)
	if err != nil {
		return nil, err
	}
	if len(audio) == 0 {
		return nil, errors.New("elevenlabs returned no audio")
	}
	return audio, nil
}

// voiceID maps Azure style voice names (en-US-JessaNeural) to the configured
// ElevenLabs voice; anything else is taken as an ElevenLabs id.
func (s *ElevenLabsSynthesizer) voiceID(voice string) string {
	if voice == "" || strings.HasSuffix(voice, "Neural") {
		return s.cfg.VoiceID
	}
	return voice
}
