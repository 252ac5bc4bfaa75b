package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())

	require.NoError(t, Load(t.TempDir()))
	cfg := GetConfig()

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "gpt-4", cfg.LLM.Model)
	assert.Equal(t, 150, cfg.LLM.ResponseMaxTokens)
	assert.Equal(t, "en-US-JessaNeural", cfg.Speech.Voice)
	assert.Equal(t, "http://127.0.0.1:5000", cfg.Audio.PublicBaseURL)
	assert.Equal(t, "en", cfg.Azure.Language)
	assert.Equal(t, "eng", cfg.Moderation.Language)
	assert.Equal(t, 30*time.Second, cfg.Azure.Timeout)
	assert.False(t, cfg.Process.IncludePII)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 6379, cfg.Cache.Port)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
}

func TestLoad_LegacyEnvironmentVariables(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("AZURE_KEY", "azure-key")
	t.Setenv("AZURE_ENDPOINT", "https://example.cognitiveservices.azure.com")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("SPEECH_KEY", "speech-key")
	t.Setenv("SPEECH_REGION", "westeurope")

	require.NoError(t, Load(t.TempDir()))
	cfg := GetConfig()

	assert.Equal(t, "azure-key", cfg.Azure.Key)
	assert.Equal(t, "https://example.cognitiveservices.azure.com", cfg.Azure.Endpoint)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, "speech-key", cfg.Speech.Key)
	assert.Equal(t, "westeurope", cfg.Speech.Region)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_ConfigFileOverridesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	content := []byte(`
server:
  port: 8088
llm:
  provider: anthropic
  model: claude-3-5-haiku-latest
process:
  include_pii: true
audio:
  retention: 1h
telemetry:
  exporters:
    - name: kafka
      settings:
        host: localhost
        port: "9092"
        topic: safeprompt
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o600))

	require.NoError(t, Load(dir))
	cfg := GetConfig()

	assert.Equal(t, 8088, cfg.Server.Port)
	assert.Equal(t, ProviderAnthropic, cfg.LLM.Provider)
	assert.Equal(t, "claude-3-5-haiku-latest", cfg.LLM.Model)
	assert.True(t, cfg.Process.IncludePII)
	assert.Equal(t, time.Hour, cfg.Audio.Retention)
	require.Len(t, cfg.Telemetry.Exporters, 1)
	assert.Equal(t, "kafka", cfg.Telemetry.Exporters[0].Name)
	assert.Equal(t, "safeprompt", cfg.Telemetry.Exporters[0].Settings["topic"])
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Azure:  AzureConfig{Endpoint: "https://x", Key: "k"},
			LLM:    LLMConfig{Provider: ProviderOpenAI, Model: "gpt-4", APIKey: "sk"},
			Speech: SpeechConfig{Provider: SpeechProviderAzure, Key: "s", Region: "eastus"},
		}
	}

	t.Run("valid", func(t *testing.T) {
		cfg := valid()
		assert.NoError(t, cfg.Validate())
	})

	t.Run("missing azure key without identity", func(t *testing.T) {
		cfg := valid()
		cfg.Azure.Key = ""
		assert.ErrorContains(t, cfg.Validate(), "azure key")
	})

	t.Run("identity replaces azure key", func(t *testing.T) {
		cfg := valid()
		cfg.Azure.Key = ""
		cfg.Azure.UseIdentity = true
		assert.NoError(t, cfg.Validate())
	})

	t.Run("unsupported llm provider", func(t *testing.T) {
		cfg := valid()
		cfg.LLM.Provider = "unknown"
		assert.ErrorContains(t, cfg.Validate(), "unsupported llm provider")
	})

	t.Run("bedrock needs no api key", func(t *testing.T) {
		cfg := valid()
		cfg.LLM = LLMConfig{Provider: ProviderBedrock, Model: "anthropic.claude-3-haiku", Bedrock: BedrockConfig{Region: "us-east-1"}}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("elevenlabs requires api key", func(t *testing.T) {
		cfg := valid()
		cfg.Speech = SpeechConfig{Provider: SpeechProviderElevenLabs}
		assert.ErrorContains(t, cfg.Validate(), "elevenlabs")
	})
}
