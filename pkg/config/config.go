package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	CORS       CORSConfig       `mapstructure:"cors"`
	Azure      AzureConfig      `mapstructure:"azure"`
	LLM        LLMConfig        `mapstructure:"llm"`
	Moderation ModerationConfig `mapstructure:"moderation"`
	Speech     SpeechConfig     `mapstructure:"speech"`
	Audio      AudioConfig      `mapstructure:"audio"`
	Process    ProcessConfig    `mapstructure:"process"`
	Telemetry  TelemetryConfig  `mapstructure:"telemetry"`
	Cache      CacheConfig      `mapstructure:"cache"`
}

type ServerConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	MetricsPort int    `mapstructure:"metrics_port"`
	DocsURL     string `mapstructure:"docs_url"`
}

type MetricsConfig struct {
	Enabled        bool `mapstructure:"enabled"`
	EnableLatency  bool `mapstructure:"enable_latency"`
	EnableUpstream bool `mapstructure:"enable_upstream"`
}

type CORSConfig struct {
	AllowOrigins     []string `mapstructure:"allow_origins"`
	AllowMethods     []string `mapstructure:"allow_methods"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	ExposeHeaders    []string `mapstructure:"expose_headers"`
	MaxAge           string   `mapstructure:"max_age"`
}

// AzureConfig covers the Language and Content Moderator resources. Both are
// reached through the same multi-service Cognitive Services endpoint.
type AzureConfig struct {
	Endpoint    string        `mapstructure:"endpoint"`
	Key         string        `mapstructure:"key"`
	UseIdentity bool          `mapstructure:"use_identity"`
	Language    string        `mapstructure:"language"`
	APIVersion  string        `mapstructure:"api_version"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Breaker     BreakerConfig `mapstructure:"breaker"`
}

type BreakerConfig struct {
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxFailures uint32        `mapstructure:"max_failures"`
}

type ModerationConfig struct {
	Language       string `mapstructure:"language"`
	MaxConcurrency int    `mapstructure:"max_concurrency"`
}

type SpeechConfig struct {
	Provider   string        `mapstructure:"provider"`
	Key        string        `mapstructure:"key"`
	Region     string        `mapstructure:"region"`
	Voice      string        `mapstructure:"voice"`
	BaseURL    string        `mapstructure:"base_url"`
	ElevenLabs ElevenLabs    `mapstructure:"elevenlabs"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type ElevenLabs struct {
	APIKey  string `mapstructure:"api_key"`
	VoiceID string `mapstructure:"voice_id"`
	ModelID string `mapstructure:"model_id"`
}

type AudioConfig struct {
	Dir           string        `mapstructure:"dir"`
	PublicBaseURL string        `mapstructure:"public_base_url"`
	Retention     time.Duration `mapstructure:"retention"`
}

type ProcessConfig struct {
	IncludePII bool `mapstructure:"include_pii"`
}

// CacheConfig enables the shared redis tier of the suggestion cache. The
// in-process tier is always on.
type CacheConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TLS      bool          `mapstructure:"tls"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type TelemetryConfig struct {
	Exporters []ExporterConfig `mapstructure:"exporters"`
	Workers   int              `mapstructure:"workers"`
}

type ExporterConfig struct {
	Name     string                 `mapstructure:"name"`
	Settings map[string]interface{} `mapstructure:"settings"`
}

var globalConfig Config

// legacyEnv maps the variable names used by earlier deployments onto config keys.
var legacyEnv = map[string]string{
	"azure.key":      "AZURE_KEY",
	"azure.endpoint": "AZURE_ENDPOINT",
	"llm.api_key":    "OPENAI_API_KEY",
	"speech.key":     "SPEECH_KEY",
	"speech.region":  "SPEECH_REGION",
}

func Load(configPath string) error {
	globalConfig = Config{}
	v := viper.New()
	setDefaultValues(v)

	if err := loadConfigFile(v, configPath, "config", &globalConfig); err != nil {
		return fmt.Errorf("could not load main config file: %w", err)
	}
	return nil
}

func loadConfigFile(v *viper.Viper, configPath, fileName string, out interface{}) error {
	v.SetConfigName(fileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, env := range legacyEnv {
		if err := v.BindEnv(key, strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file %s.yaml: %w", fileName, err)
		}
	}

	if err := v.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to unmarshal %s config: %w", fileName, err)
	}

	return nil
}

func setDefaultValues(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.metrics_port", 9090)
	v.SetDefault("server.docs_url", "http://127.0.0.1:5000/swagger.json")

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.enable_latency", true)
	v.SetDefault("metrics.enable_upstream", true)

	v.SetDefault("cors.allow_origins", []string{"*"})
	v.SetDefault("cors.allow_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("cors.allow_credentials", false)
	v.SetDefault("cors.expose_headers", []string{"X-Request-Id"})
	v.SetDefault("cors.max_age", "600")

	v.SetDefault("azure.endpoint", "")
	v.SetDefault("azure.key", "")
	v.SetDefault("azure.use_identity", false)
	v.SetDefault("azure.language", "en")
	v.SetDefault("azure.api_version", "2023-04-01")
	v.SetDefault("azure.timeout", 30*time.Second)
	v.SetDefault("azure.breaker.timeout", 30*time.Second)
	v.SetDefault("azure.breaker.max_failures", 5)

	v.SetDefault("llm.provider", ProviderOpenAI)
	v.SetDefault("llm.model", "gpt-4")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.response_max_tokens", 150)
	v.SetDefault("llm.azure.endpoint", "")
	v.SetDefault("llm.azure.api_version", "2024-02-15-preview")
	v.SetDefault("llm.azure.use_identity", false)
	v.SetDefault("llm.bedrock.region", "us-east-1")
	v.SetDefault("llm.bedrock.access_key", "")
	v.SetDefault("llm.bedrock.secret_key", "")
	v.SetDefault("llm.bedrock.session_token", "")
	v.SetDefault("llm.bedrock.role_arn", "")

	v.SetDefault("moderation.language", "eng")
	v.SetDefault("moderation.max_concurrency", 4)

	v.SetDefault("speech.provider", SpeechProviderAzure)
	v.SetDefault("speech.key", "")
	v.SetDefault("speech.region", "")
	v.SetDefault("speech.voice", "en-US-JessaNeural")
	v.SetDefault("speech.base_url", "")
	v.SetDefault("speech.timeout", 60*time.Second)
	v.SetDefault("speech.elevenlabs.api_key", "")
	v.SetDefault("speech.elevenlabs.voice_id", "")
	v.SetDefault("speech.elevenlabs.model_id", "")

	v.SetDefault("audio.dir", "")
	v.SetDefault("audio.public_base_url", "http://127.0.0.1:5000")
	v.SetDefault("audio.retention", time.Duration(0))

	v.SetDefault("process.include_pii", false)

	v.SetDefault("telemetry.workers", 2)

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.host", "localhost")
	v.SetDefault("cache.port", 6379)
	v.SetDefault("cache.password", "")
	v.SetDefault("cache.db", 0)
	v.SetDefault("cache.tls", false)
	v.SetDefault("cache.ttl", 24*time.Hour)
}

// Validate reports credentials missing for the services the configuration selects.
func (c *Config) Validate() error {
	var errs []error
	if c.Azure.Endpoint == "" {
		errs = append(errs, errors.New("azure endpoint is required (AZURE_ENDPOINT)"))
	}
	if c.Azure.Key == "" && !c.Azure.UseIdentity {
		errs = append(errs, errors.New("azure key is required when not using identity (AZURE_KEY)"))
	}
	if err := c.LLM.Validate(); err != nil {
		errs = append(errs, err)
	}
	switch c.Speech.Provider {
	case SpeechProviderAzure:
		if c.Speech.Key == "" || c.Speech.Region == "" {
			errs = append(errs, errors.New("speech key and region are required (SPEECH_KEY, SPEECH_REGION)"))
		}
	case SpeechProviderElevenLabs:
		if c.Speech.ElevenLabs.APIKey == "" {
			errs = append(errs, errors.New("elevenlabs api key is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported speech provider: %s", c.Speech.Provider))
	}
	return errors.Join(errs...)
}

func GetConfig() *Config {
	return &globalConfig
}
