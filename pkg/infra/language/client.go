package language

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/NeuralTrust/SafePrompt/pkg/domain/pii"
	"github.com/NeuralTrust/SafePrompt/pkg/domain/sentiment"
	"github.com/NeuralTrust/SafePrompt/pkg/infra/azure"
	"github.com/NeuralTrust/SafePrompt/pkg/infra/httpx"
	"github.com/NeuralTrust/SafePrompt/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
)

const (
	ServiceName = "azure-language"

	KindPII       = "PiiEntityRecognition"
	KindSentiment = "SentimentAnalysis"

	DefaultAPIVersion = "2023-04-01"

	documentID = "1"
)

type Config struct {
	Endpoint   string
	APIVersion string
}

type document struct {
	ID       string `json:"id"`
	Language string `json:"language,omitempty"`
	Text     string `json:"text"`
}

type analyzeRequest struct {
	Kind          string `json:"kind"`
	AnalysisInput struct {
		Documents []document `json:"documents"`
	} `json:"analysisInput"`
	Parameters map[string]interface{} `json:"parameters,omitempty"`
}

type documentError struct {
	ID    string `json:"id"`
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type piiResponse struct {
	Results struct {
		Documents []struct {
			ID       string       `json:"id"`
			Entities []pii.Entity `json:"entities"`
		} `json:"documents"`
		Errors []documentError `json:"errors"`
	} `json:"results"`
}

type sentimentResponse struct {
	Results struct {
		Documents []struct {
			ID        string `json:"id"`
			Sentiment string `json:"sentiment"`
		} `json:"documents"`
		Errors []documentError `json:"errors"`
	} `json:"results"`
}

// Client talks to the Azure AI Language analyze-text API. It serves both PII
// recognition and sentiment analysis.
type Client struct {
	cfg     Config
	client  httpx.Client
	cred    azure.Credential
	breaker httpx.CircuitBreaker
	logger  *logrus.Logger
}

func NewClient(
	cfg Config,
	client httpx.Client,
	cred azure.Credential,
	breaker httpx.CircuitBreaker,
	logger *logrus.Logger,
) *Client {
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	cfg.Endpoint = strings.TrimRight(cfg.Endpoint, "/")
	return &Client{
		cfg:     cfg,
		client:  client,
		cred:    cred,
		breaker: breaker,
		logger:  logger,
	}
}

func (c *Client) RecognizePII(ctx context.Context, text, language string) ([]pii.Entity, error) {
	var resp piiResponse
	if err := c.analyze(ctx, KindPII, text, language, &resp); err != nil {
		return nil, err
	}
	c.logDocumentErrors(KindPII, resp.Results.Errors)

	entities := make([]pii.Entity, 0)
	for _, doc := range resp.Results.Documents {
		entities = append(entities, doc.Entities...)
	}
	return entities, nil
}

func (c *Client) AnalyzeSentiment(ctx context.Context, text, language string) (sentiment.Label, error) {
	var resp sentimentResponse
	if err := c.analyze(ctx, KindSentiment, text, language, &resp); err != nil {
		return sentiment.Unknown, err
	}
	c.logDocumentErrors(KindSentiment, resp.Results.Errors)

	for _, doc := range resp.Results.Documents {
		if doc.ID == documentID {
			return sentiment.Label(doc.Sentiment), nil
		}
	}
	if len(resp.Results.Errors) > 0 {
		return sentiment.Unknown, fmt.Errorf("sentiment analysis failed: %s", resp.Results.Errors[0].Error.Message)
	}
	return sentiment.Unknown, errors.New("sentiment analysis returned no document")
}

func (c *Client) analyze(ctx context.Context, kind, text, language string, out interface{}) error {
	payload := analyzeRequest{Kind: kind}
	payload.AnalysisInput.Documents = []document{{ID: documentID, Language: language, Text: text}}
	if kind == KindPII {
		payload.Parameters = map[string]interface{}{"modelVersion": "latest"}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", kind, err)
	}

	url := fmt.Sprintf("%s/language/:analyze-text?api-version=%s", c.cfg.Endpoint, c.cfg.APIVersion)

	start := time.Now()
	err = c.breaker.Execute(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if err := c.cred.Authorize(ctx, req); err != nil {
			return err
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("%s request failed: %w", ServiceName, err)
		}
		data, err := httpx.ReadBody(ServiceName, resp)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode %s response: %w", kind, err)
		}
		return nil
	})
	prometheus.ObserveUpstream(ServiceName, start, err)
	return err
}

func (c *Client) logDocumentErrors(kind string, errs []documentError) {
	for _, e := range errs {
		c.logger.WithFields(logrus.Fields{
			"service":  ServiceName,
			"kind":     kind,
			"document": e.ID,
			"code":     e.Error.Code,
		}).Error(e.Error.Message)
	}
}
