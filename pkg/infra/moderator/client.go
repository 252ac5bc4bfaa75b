package moderator

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/NeuralTrust/SafePrompt/pkg/infra/azure"
	"github.com/NeuralTrust/SafePrompt/pkg/infra/httpx"
	"github.com/NeuralTrust/SafePrompt/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fastjson"
)

const (
	ServiceName = "azure-content-moderator"

	DefaultLanguage = "eng"

	screenPath = "/contentmoderator/moderate/v1.0/ProcessText/Screen"
)

// Client screens text with the Azure Content Moderator and returns the
// terms it flags.
type Client struct {
	endpoint string
	client   httpx.Client
	cred     azure.Credential
	breaker  httpx.CircuitBreaker
	logger   *logrus.Logger
	parsers  fastjson.ParserPool
}

func NewClient(
	endpoint string,
	client httpx.Client,
	cred azure.Credential,
	breaker httpx.CircuitBreaker,
	logger *logrus.Logger,
) *Client {
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   client,
		cred:     cred,
		breaker:  breaker,
		logger:   logger,
	}
}

func (c *Client) Screen(ctx context.Context, text, language string) ([]string, error) {
	if language == "" {
		language = DefaultLanguage
	}
	query := url.Values{}
	query.Set("language", language)
	endpoint := c.endpoint + screenPath + "?" + query.Encode()

	var terms []string
	start := time.Now()
	err := c.breaker.Execute(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(text))
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "text/plain")
		if err := c.cred.Authorize(ctx, req); err != nil {
			return err
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("%s request failed: %w", ServiceName, err)
		}
		body, err := httpx.ReadBody(ServiceName, resp)
		if err != nil {
			return err
		}
		terms, err = c.parseTerms(body)
		return err
	})
	prometheus.ObserveUpstream(ServiceName, start, err)
	if err != nil {
		return nil, err
	}

	c.logger.WithFields(logrus.Fields{
		"service": ServiceName,
		"terms":   len(terms),
	}).Debug("text screened")
	return terms, nil
}

// parseTerms reads Terms[].Term. The service sends "Terms": null when
// nothing matched.
func (c *Client) parseTerms(body []byte) ([]string, error) {
	p := c.parsers.Get()
	defer c.parsers.Put(p)

	v, err := p.ParseBytes(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode screen response: %w", err)
	}

	terms := make([]string, 0)
	for _, item := range v.GetArray("Terms") {
		term := string(item.GetStringBytes("Term"))
		if term == "" {
			continue
		}
		terms = append(terms, term)
	}
	return terms, nil
}
