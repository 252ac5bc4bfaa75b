package moderator

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/NeuralTrust/SafePrompt/pkg/domain"
	"github.com/NeuralTrust/SafePrompt/pkg/infra/azure"
	"github.com/NeuralTrust/SafePrompt/pkg/infra/httpx"
	"github.com/NeuralTrust/SafePrompt/pkg/infra/httpx/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestClient(httpClient httpx.Client) *Client {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewClient(
		"https://mod.example.com",
		httpClient,
		azure.NewKeyCredential(azure.SubscriptionKeyHeader, "mod-key"),
		httpx.NewCircuitBreaker("test-moderator", time.Minute, 5),
		logger,
	)
}

func TestScreen_ReturnsFlaggedTermsInOrder(t *testing.T) {
	httpClient := new(mocks.MockHTTPClient)
	var sentBody string
	httpClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		body, _ := io.ReadAll(req.Body)
		if len(body) > 0 {
			sentBody = string(body)
		}
		return req.URL.Path == screenPath &&
			req.URL.Query().Get("language") == "eng" &&
			req.Header.Get("Content-Type") == "text/plain" &&
			req.Header.Get(azure.SubscriptionKeyHeader) == "mod-key"
	})).Return(mocks.Response(http.StatusOK, `{
		"OriginalText": "damn this crap, damn",
		"NormalizedText": "damn this crap, damn",
		"Misrepresentation": null,
		"Language": "eng",
		"Terms": [
			{"Index": 0, "OriginalIndex": 0, "ListId": 0, "Term": "damn"},
			{"Index": 10, "OriginalIndex": 10, "ListId": 0, "Term": "crap"},
			{"Index": 16, "OriginalIndex": 16, "ListId": 0, "Term": "damn"}
		],
		"Status": {"Code": 3000, "Description": "OK", "Exception": null},
		"TrackingId": "abc"
	}`), nil)

	terms, err := newTestClient(httpClient).Screen(context.Background(), "damn this crap, damn", "")

	require.NoError(t, err)
	assert.Equal(t, []string{"damn", "crap", "damn"}, terms)
	assert.Equal(t, "damn this crap, damn", sentBody)
	httpClient.AssertExpectations(t)
}

func TestScreen_NullTerms(t *testing.T) {
	httpClient := new(mocks.MockHTTPClient)
	httpClient.On("Do", mock.Anything).Return(mocks.Response(http.StatusOK, `{"OriginalText":"hello","Terms":null,"Status":{"Code":3000}}`), nil)

	terms, err := newTestClient(httpClient).Screen(context.Background(), "hello", "eng")

	require.NoError(t, err)
	assert.NotNil(t, terms)
	assert.Empty(t, terms)
}

func TestScreen_Errors(t *testing.T) {
	tests := []struct {
		name     string
		resp     *http.Response
		doErr    error
		upstream bool
	}{
		{name: "transport", doErr: errors.New("dial tcp: timeout")},
		{name: "non 2xx", resp: mocks.Response(http.StatusForbidden, `{"message":"quota exceeded"}`), upstream: true},
		{name: "invalid json", resp: mocks.Response(http.StatusOK, `not json`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpClient := new(mocks.MockHTTPClient)
			httpClient.On("Do", mock.Anything).Return(tt.resp, tt.doErr)

			terms, err := newTestClient(httpClient).Screen(context.Background(), "text", "eng")

			require.Error(t, err)
			assert.Nil(t, terms)
			assert.Equal(t, tt.upstream, domain.IsUpstreamError(err))
		})
	}
}
