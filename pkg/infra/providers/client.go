package providers

import (
	"context"
)

type Config struct {
	Credentials  Credentials `json:"credentials"`
	Model        string      `json:"model"`
	MaxTokens    int         `json:"max_tokens,omitempty"`
	Temperature  float64     `json:"temperature,omitempty"`
	SystemPrompt string      `json:"system_prompt,omitempty"`
}

type Credentials struct {
	ApiKey     string                 `json:"api_key,omitempty"`
	Azure      *AzureCredentials      `json:"azure,omitempty"`
	AwsBedrock *AwsBedrockCredentials `json:"aws_bedrock,omitempty"`
	// BaseURL overrides the provider endpoint, mostly for proxies and tests.
	BaseURL string `json:"base_url,omitempty"`
}

type AzureCredentials struct {
	Endpoint    string `json:"endpoint"`
	ApiVersion  string `json:"api_version,omitempty"`
	UseIdentity bool   `json:"use_identity"`
}

type AwsBedrockCredentials struct {
	Region       string `json:"region"`
	AccessKey    string `json:"access_key,omitempty"`
	SecretKey    string `json:"secret_key,omitempty"`
	SessionToken string `json:"session_token,omitempty"`
	UseRole      bool   `json:"use_role"`
	RoleARN      string `json:"role_arn,omitempty"`
}

// With returns a copy of c carrying a per-call system prompt and token cap.
func (c Config) With(systemPrompt string, maxTokens int) *Config {
	c.SystemPrompt = systemPrompt
	c.MaxTokens = maxTokens
	return &c
}

//go:generate mockery --name=Client --dir=. --output=./mocks --filename=client_mock.go --case=underscore --with-expecter

type Client interface {
	Ask(ctx context.Context, config *Config, prompt string) (*CompletionResponse, error)
}
