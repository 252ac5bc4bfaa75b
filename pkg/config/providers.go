package config

import (
	"errors"
	"fmt"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAzure     = "azure"
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
	ProviderBedrock   = "bedrock"

	SpeechProviderAzure      = "azure"
	SpeechProviderElevenLabs = "elevenlabs"
)

// LLMConfig selects the language model used for term suggestions, clarity
// rewrites and responses.
type LLMConfig struct {
	Provider          string        `mapstructure:"provider"`
	Model             string        `mapstructure:"model"`
	APIKey            string        `mapstructure:"api_key"`
	ResponseMaxTokens int           `mapstructure:"response_max_tokens"`
	Azure             AzureOpenAI   `mapstructure:"azure"`
	Bedrock           BedrockConfig `mapstructure:"bedrock"`
}

type AzureOpenAI struct {
	Endpoint    string `mapstructure:"endpoint"`
	APIVersion  string `mapstructure:"api_version"`
	UseIdentity bool   `mapstructure:"use_identity"`
}

type BedrockConfig struct {
	Region       string `mapstructure:"region"`
	AccessKey    string `mapstructure:"access_key"`
	SecretKey    string `mapstructure:"secret_key"`
	SessionToken string `mapstructure:"session_token"`
	RoleARN      string `mapstructure:"role_arn"`
}

func (c LLMConfig) Validate() error {
	switch c.Provider {
	case ProviderOpenAI, ProviderGemini, ProviderAnthropic:
		if c.APIKey == "" {
			return fmt.Errorf("llm api key is required for provider %s", c.Provider)
		}
	case ProviderAzure:
		if c.Azure.Endpoint == "" {
			return errors.New("llm azure endpoint is required")
		}
		if c.APIKey == "" && !c.Azure.UseIdentity {
			return errors.New("llm api key is required when not using azure identity")
		}
	case ProviderBedrock:
		if c.Bedrock.Region == "" {
			return errors.New("llm bedrock region is required")
		}
	default:
		return fmt.Errorf("unsupported llm provider: %s", c.Provider)
	}
	if c.Model == "" {
		return errors.New("llm model is required")
	}
	return nil
}
