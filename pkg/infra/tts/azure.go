package tts

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/NeuralTrust/SafePrompt/pkg/infra/azure"
	"github.com/NeuralTrust/SafePrompt/pkg/infra/httpx"
	"github.com/NeuralTrust/SafePrompt/pkg/infra/prometheus"
)

const (
	AzureServiceName = "azure-speech"

	azureOutputFormat = "audio-16khz-128kbitrate-mono-mp3"
	defaultLocale     = "en-US"
)

type AzureConfig struct {
	Key    string
	Region string
	// BaseURL replaces https://{region}.tts.speech.microsoft.com.
	BaseURL string
}

// AzureSynthesizer calls the Azure Speech text-to-speech REST endpoint.
type AzureSynthesizer struct {
	url     string
	client  httpx.Client
	cred    azure.Credential
	breaker httpx.CircuitBreaker
}

func NewAzureSynthesizer(cfg AzureConfig, client httpx.Client, breaker httpx.CircuitBreaker) (*AzureSynthesizer, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		if cfg.Region == "" {
			return nil, errors.New("azure speech region is required")
		}
		base = fmt.Sprintf("https://%s.tts.speech.microsoft.com", cfg.Region)
	}
	return &AzureSynthesizer{
		url:     base + "/cognitiveservices/v1",
		client:  client,
		cred:    azure.NewKeyCredential(azure.SubscriptionKeyHeader, cfg.Key),
		breaker: breaker,
	}, nil
}

func (s *AzureSynthesizer) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	ssml, err := buildSSML(text, voice)
	if err != nil {
		return nil, err
	}

	var audio []byte
	start := time.Now()
	err = s.breaker.Execute(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(ssml))
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/ssml+xml")
		req.Header.Set("X-Microsoft-OutputFormat", azureOutputFormat)
		if err := s.cred.Authorize(ctx, req); err != nil {
			return err
		}

		resp, err := s.client.Do(req)
		if err != nil {
			return fmt.Errorf("%s request failed: %w", AzureServiceName, err)
		}
		audio, err = httpx.ReadBody(AzureServiceName, resp)
		return err
	})
	prometheus.ObserveUpstream(AzureServiceName, start, err)
	if err != nil {
		return nil, err
	}
	if len(audio) == 0 {
		return nil, errors.New("azure speech returned no audio")
	}
	return audio, nil
}

// buildSSML wraps text in a single voice element. The document language is
// taken from the voice name, e.g. en-US-JessaNeural -> en-US.
func buildSSML(text, voice string) ([]byte, error) {
	var escaped bytes.Buffer
	if err := xml.EscapeText(&escaped, []byte(text)); err != nil {
		return nil, fmt.Errorf("failed to escape ssml text: %w", err)
	}
	var voiceAttr bytes.Buffer
	if err := xml.EscapeText(&voiceAttr, []byte(voice)); err != nil {
		return nil, fmt.Errorf("failed to escape voice name: %w", err)
	}

	locale := defaultLocale
	if parts := strings.SplitN(voice, "-", 3); len(parts) == 3 {
		locale = parts[0] + "-" + parts[1]
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, `<speak version="1.0" xmlns="http://www.w3.org/2001/10/synthesis" xml:lang="%s">`, locale)
	fmt.Fprintf(&b, `<voice name="%s">%s</voice></speak>`, voiceAttr.String(), escaped.String())
	return b.Bytes(), nil
}
