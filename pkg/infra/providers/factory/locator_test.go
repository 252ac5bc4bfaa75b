package factory

import (
	"testing"

	"github.com/NeuralTrust/SafePrompt/pkg/infra/httpx/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderLocator_Get(t *testing.T) {
	locator := NewProviderLocator(new(mocks.MockHTTPClient))

	for _, name := range []string{ProviderOpenAI, ProviderGemini, ProviderAnthropic, ProviderBedrock, ProviderAzure} {
		t.Run(name, func(t *testing.T) {
			client, err := locator.Get(name)
			require.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

func TestProviderLocator_Unsupported(t *testing.T) {
	client, err := NewProviderLocator(new(mocks.MockHTTPClient)).Get("mistral")

	assert.Nil(t, client)
	assert.EqualError(t, err, "unsupported provider: mistral")
}
