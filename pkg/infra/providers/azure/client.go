package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	azurecred "github.com/NeuralTrust/SafePrompt/pkg/infra/azure"
	"github.com/NeuralTrust/SafePrompt/pkg/infra/httpx"
	"github.com/NeuralTrust/SafePrompt/pkg/infra/providers"
)

const (
	ServiceName       = "azure-openai"
	defaultAPIVersion = "2024-02-15-preview"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// TokenCredentialFactory builds the Entra ID credential used when
// UseIdentity is set.
type TokenCredentialFactory func() (azcore.TokenCredential, error)

type client struct {
	httpClient httpx.Client
	newToken   TokenCredentialFactory

	once      sync.Once
	tokenCred azurecred.Credential
	tokenErr  error
}

func NewAzureClient(httpClient httpx.Client) providers.Client {
	return NewAzureClientWithTokenFactory(httpClient, func() (azcore.TokenCredential, error) {
		return azidentity.NewDefaultAzureCredential(nil)
	})
}

func NewAzureClientWithTokenFactory(httpClient httpx.Client, factory TokenCredentialFactory) providers.Client {
	return &client{
		httpClient: httpClient,
		newToken:   factory,
	}
}

// Ask calls the chat completions endpoint of an Azure OpenAI deployment.
// config.Model is the deployment name. Authentication is either the api-key
// header or an Entra ID bearer token when Azure.UseIdentity is set.
func (c *client) Ask(
	ctx context.Context,
	config *providers.Config,
	prompt string,
) (*providers.CompletionResponse, error) {
	azureCfg := config.Credentials.Azure
	if azureCfg == nil || azureCfg.Endpoint == "" {
		return nil, fmt.Errorf("azure endpoint is required")
	}
	if config.Model == "" {
		return nil, fmt.Errorf("model (deployment ID) is required")
	}

	cred, err := c.credential(azureCfg.UseIdentity, config.Credentials.ApiKey)
	if err != nil {
		return nil, err
	}

	var messages []chatMessage
	if config.SystemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: config.SystemPrompt})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	body, err := json.Marshal(chatRequest{
		Messages:    messages,
		MaxTokens:   config.MaxTokens,
		Temperature: config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	apiVersion := defaultAPIVersion
	if azureCfg.ApiVersion != "" {
		apiVersion = azureCfg.ApiVersion
	}
	url := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		strings.TrimRight(azureCfg.Endpoint, "/"),
		config.Model,
		apiVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if err := cred.Authorize(ctx, req); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed request: %w", err)
	}
	data, err := httpx.ReadBody(ServiceName, resp)
	if err != nil {
		return nil, err
	}

	var out chatResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(out.Choices) == 0 {
		return nil, fmt.Errorf("no completions returned")
	}

	return &providers.CompletionResponse{
		ID:       out.ID,
		Model:    out.Model,
		Response: out.Choices[0].Message.Content,
		Usage: providers.Usage{
			PromptTokens:     out.Usage.PromptTokens,
			CompletionTokens: out.Usage.CompletionTokens,
			TotalTokens:      out.Usage.TotalTokens,
		},
	}, nil
}

func (c *client) credential(useIdentity bool, apiKey string) (azurecred.Credential, error) {
	if !useIdentity {
		if apiKey == "" {
			return nil, fmt.Errorf("API key is required when not using Azure identity")
		}
		return azurecred.NewKeyCredential(azurecred.APIKeyHeader, apiKey), nil
	}
	c.once.Do(func() {
		tc, err := c.newToken()
		if err != nil {
			c.tokenErr = fmt.Errorf("failed to create azure identity credential: %w", err)
			return
		}
		c.tokenCred = azurecred.NewTokenCredential(tc, azurecred.CognitiveServicesScope)
	})
	return c.tokenCred, c.tokenErr
}
