package httpx

import (
	"fmt"
	"io"
	"net/http"

	"github.com/NeuralTrust/SafePrompt/pkg/domain"
)

//go:generate mockery --name=Client --dir=. --output=./mocks --filename=http_client_mock.go --case=underscore --with-expecter
type Client interface {
	Do(req *http.Request) (*http.Response, error)
}

// ReadBody drains and closes resp.Body, undoing any Content-Encoding. A
// non-2xx status is returned as an upstream error for service.
func ReadBody(service string, resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", service, err)
	}
	body, _, err := DecodeChain(resp.Header.Get("Content-Encoding"), raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", service, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, domain.NewUpstreamError(service, resp.StatusCode, body)
	}
	return body, nil
}
