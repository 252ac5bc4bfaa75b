package tts

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/NeuralTrust/SafePrompt/pkg/domain"
	"github.com/NeuralTrust/SafePrompt/pkg/infra/httpx"
	"github.com/NeuralTrust/SafePrompt/pkg/infra/httpx/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func audioResponse(status int, body string) *http.Response {
	resp := mocks.Response(status, body)
	resp.Header.Set("Content-Type", "audio/mpeg")
	return resp
}

func TestAzureSynthesize(t *testing.T) {
	httpClient := new(mocks.MockHTTPClient)
	var ssml string
	httpClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		body, _ := io.ReadAll(req.Body)
		if len(body) > 0 {
			ssml = string(body)
		}
		return req.URL.String() == "https://westeurope.tts.speech.microsoft.com/cognitiveservices/v1" &&
			req.Header.Get("Ocp-Apim-Subscription-Key") == "speech-key" &&
			req.Header.Get("X-Microsoft-OutputFormat") == azureOutputFormat &&
			req.Header.Get("Content-Type") == "application/ssml+xml"
	})).Return(audioResponse(http.StatusOK, "ID3mp3"), nil)

	synth, err := NewAzureSynthesizer(
		AzureConfig{Key: "speech-key", Region: "westeurope"},
		httpClient,
		httpx.NewCircuitBreaker("test-speech", time.Minute, 5),
	)
	require.NoError(t, err)

	audio, err := synth.Synthesize(context.Background(), "Fish & chips <now>", "en-GB-SoniaNeural")
	require.NoError(t, err)
	assert.Equal(t, []byte("ID3mp3"), audio)
	assert.Contains(t, ssml, `xml:lang="en-GB"`)
	assert.Contains(t, ssml, `<voice name="en-GB-SoniaNeural">Fish &amp; chips &lt;now&gt;</voice>`)
	httpClient.AssertExpectations(t)
}

func TestAzureSynthesize_UpstreamError(t *testing.T) {
	httpClient := new(mocks.MockHTTPClient)
	httpClient.On("Do", mock.Anything).Return(mocks.Response(http.StatusUnauthorized, ""), nil)

	synth, err := NewAzureSynthesizer(
		AzureConfig{Key: "bad", BaseURL: "http://speech.local/"},
		httpClient,
		httpx.NewCircuitBreaker("test-speech-err", time.Minute, 5),
	)
	require.NoError(t, err)

	_, err = synth.Synthesize(context.Background(), "hello", "en-US-JessaNeural")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, domain.UpstreamStatus(err))
}

func TestAzureSynthesize_EmptyAudio(t *testing.T) {
	httpClient := new(mocks.MockHTTPClient)
	httpClient.On("Do", mock.Anything).Return(audioResponse(http.StatusOK, ""), nil)

	synth, err := NewAzureSynthesizer(
		AzureConfig{Key: "k", Region: "eastus"},
		httpClient,
		httpx.NewCircuitBreaker("test-speech-empty", time.Minute, 5),
	)
	require.NoError(t, err)

	_, err = synth.Synthesize(context.Background(), "hello", "en-US-JessaNeural")
	assert.ErrorContains(t, err, "no audio")
}

func TestNewAzureSynthesizer_RequiresRegion(t *testing.T) {
	_, err := NewAzureSynthesizer(AzureConfig{Key: "k"}, new(mocks.MockHTTPClient), nil)
	assert.ErrorContains(t, err, "region is required")
}

func TestBuildSSML_DefaultLocale(t *testing.T) {
	ssml, err := buildSSML("hi", "custom")
	require.NoError(t, err)
	assert.Contains(t, string(ssml), `xml:lang="en-US"`)
}
