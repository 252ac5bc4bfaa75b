package dependency_container

import (
	"fmt"

	"github.com/NeuralTrust/SafePrompt/pkg/app/clarity"
	"github.com/NeuralTrust/SafePrompt/pkg/app/moderation"
	"github.com/NeuralTrust/SafePrompt/pkg/app/pii"
	"github.com/NeuralTrust/SafePrompt/pkg/app/prompt"
	"github.com/NeuralTrust/SafePrompt/pkg/app/sentiment"
	"github.com/NeuralTrust/SafePrompt/pkg/app/speech"
	"github.com/NeuralTrust/SafePrompt/pkg/app/telemetry"
	"github.com/NeuralTrust/SafePrompt/pkg/config"
	domainSpeech "github.com/NeuralTrust/SafePrompt/pkg/domain/speech"
	handlers "github.com/NeuralTrust/SafePrompt/pkg/handlers/http"
	"github.com/NeuralTrust/SafePrompt/pkg/infra/audio"
	"github.com/NeuralTrust/SafePrompt/pkg/infra/azure"
	"github.com/NeuralTrust/SafePrompt/pkg/infra/cache"
	"github.com/NeuralTrust/SafePrompt/pkg/infra/httpx"
	"github.com/NeuralTrust/SafePrompt/pkg/infra/language"
	"github.com/NeuralTrust/SafePrompt/pkg/infra/moderator"
	"github.com/NeuralTrust/SafePrompt/pkg/infra/providers"
	providersFactory "github.com/NeuralTrust/SafePrompt/pkg/infra/providers/factory"
	infraTelemetry "github.com/NeuralTrust/SafePrompt/pkg/infra/telemetry"
	"github.com/NeuralTrust/SafePrompt/pkg/infra/telemetry/kafka"
	"github.com/NeuralTrust/SafePrompt/pkg/infra/tts"
	"github.com/NeuralTrust/SafePrompt/pkg/middleware"
	"github.com/sirupsen/logrus"
)

const userAgent = "SafePrompt"

type Container struct {
	HandlerTransport    handlers.HandlerTransport
	MiddlewareTransport middleware.Transport
	TelemetryWorker     *infraTelemetry.Worker
	AudioStore          *audio.FileStore
	Processor           prompt.Processor
	// CacheClient is nil unless the redis tier is enabled.
	CacheClient cache.Client
}

type ContainerDI struct {
	Cfg    *config.Config
	Logger *logrus.Logger
}

func NewContainer(di ContainerDI) (*Container, error) {
	cfg := di.Cfg

	azureHTTPClient := httpx.NewFastHTTPClient(
		httpx.WithTimeout(cfg.Azure.Timeout),
		httpx.WithUserAgent(userAgent),
	)
	speechHTTPClient := httpx.NewFastHTTPClient(
		httpx.WithTimeout(cfg.Speech.Timeout),
		httpx.WithUserAgent(userAgent),
	)

	breaker := func(name string) httpx.CircuitBreaker {
		return httpx.NewCircuitBreaker(name, cfg.Azure.Breaker.Timeout, cfg.Azure.Breaker.MaxFailures)
	}

	azureCred, err := azure.NewCredential(cfg.Azure.UseIdentity, azure.SubscriptionKeyHeader, cfg.Azure.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize azure credential: %w", err)
	}

	languageClient := language.NewClient(
		language.Config{Endpoint: cfg.Azure.Endpoint, APIVersion: cfg.Azure.APIVersion},
		azureHTTPClient,
		azureCred,
		breaker(language.ServiceName),
		di.Logger,
	)
	moderatorClient := moderator.NewClient(
		cfg.Azure.Endpoint,
		azureHTTPClient,
		azureCred,
		breaker(moderator.ServiceName),
		di.Logger,
	)

	// llm
	providerLocator := providersFactory.NewProviderLocator(azureHTTPClient)
	llm, err := providerLocator.Get(cfg.LLM.Provider)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize llm provider: %w", err)
	}
	llmConfig := newLLMConfig(cfg.LLM)

	// suggestion cache
	var cacheClient cache.Client
	if cfg.Cache.Enabled {
		cacheClient, err = cache.NewClient(cache.Config{
			Host:     cfg.Cache.Host,
			Port:     cfg.Cache.Port,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
			TLS:      cfg.Cache.TLS,
		}, di.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize cache: %w", err)
		}
	}
	suggestionCache := cache.NewSuggestionCache(cacheClient, cfg.Cache.TTL, di.Logger)

	// speech
	synthesizer, err := newSynthesizer(cfg.Speech, speechHTTPClient, breaker)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize speech synthesizer: %w", err)
	}
	audioStore, err := audio.NewFileStore(cfg.Audio.Dir, cfg.Audio.Retention, di.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize audio store: %w", err)
	}

	// telemetry
	exporterLocator := infraTelemetry.NewExporterLocator(
		infraTelemetry.WithExporter(kafka.NewKafkaExporter()),
	)
	if err := telemetry.NewExportersValidator(exporterLocator).Validate(cfg.Telemetry.Exporters); err != nil {
		return nil, err
	}
	exporters, err := telemetry.NewExportersBuilder(exporterLocator).Build(cfg.Telemetry.Exporters)
	if err != nil {
		return nil, fmt.Errorf("failed to build telemetry exporters: %w", err)
	}
	telemetryWorker := infraTelemetry.NewWorker(di.Logger, exporters)
	telemetryWorker.StartWorkers(cfg.Telemetry.Workers)

	// app
	piiChecker := pii.NewChecker(di.Logger, languageClient, cfg.Azure.Language)
	sentimentChecker := sentiment.NewChecker(di.Logger, languageClient, cfg.Azure.Language)
	sanitizer := moderation.NewSanitizer(
		di.Logger,
		moderatorClient,
		llm,
		llmConfig,
		cfg.Moderation.Language,
		cfg.Moderation.MaxConcurrency,
		moderation.WithSuggestionCache(suggestionCache),
	)
	rewriter := clarity.NewRewriter(llm, llmConfig, cfg.LLM.ResponseMaxTokens)
	reader := speech.NewReader(di.Logger, synthesizer, audioStore, cfg.Speech.Voice, cfg.Audio.PublicBaseURL)
	processor := prompt.NewProcessor(
		di.Logger,
		sentimentChecker,
		sanitizer,
		piiChecker,
		rewriter,
		telemetryWorker,
		cfg.Process.IncludePII,
	)

	handlerTransport := handlers.HandlerTransport{
		CheckPIIHandler:      handlers.NewCheckPIIHandler(di.Logger, piiChecker),
		ProcessHandler:       handlers.NewProcessHandler(di.Logger, processor),
		GenerateAudioHandler: handlers.NewGenerateAudioHandler(di.Logger, reader),
		GetAudioHandler:      handlers.NewGetAudioHandler(di.Logger, audioStore),
		GetVersionHandler:    handlers.NewGetVersionHandler(),
	}

	middlewareTransport := middleware.Transport{
		PanicRecoverMiddleware: middleware.NewPanicRecoverMiddleware(di.Logger),
		RequestIDMiddleware:    middleware.NewRequestIDMiddleware(),
		CORSMiddleware:         middleware.NewCORSGlobalMiddleware(cfg.CORS),
		MetricsMiddleware:      middleware.NewMetricsMiddleware(di.Logger),
	}

	return &Container{
		HandlerTransport:    handlerTransport,
		MiddlewareTransport: middlewareTransport,
		TelemetryWorker:     telemetryWorker,
		AudioStore:          audioStore,
		Processor:           processor,
		CacheClient:         cacheClient,
	}, nil
}

func newLLMConfig(cfg config.LLMConfig) providers.Config {
	llmConfig := providers.Config{
		Model: cfg.Model,
		Credentials: providers.Credentials{
			ApiKey: cfg.APIKey,
		},
	}
	switch cfg.Provider {
	case config.ProviderAzure:
		llmConfig.Credentials.Azure = &providers.AzureCredentials{
			Endpoint:    cfg.Azure.Endpoint,
			ApiVersion:  cfg.Azure.APIVersion,
			UseIdentity: cfg.Azure.UseIdentity,
		}
	case config.ProviderBedrock:
		llmConfig.Credentials.AwsBedrock = &providers.AwsBedrockCredentials{
			Region:       cfg.Bedrock.Region,
			AccessKey:    cfg.Bedrock.AccessKey,
			SecretKey:    cfg.Bedrock.SecretKey,
			SessionToken: cfg.Bedrock.SessionToken,
			UseRole:      cfg.Bedrock.RoleARN != "",
			RoleARN:      cfg.Bedrock.RoleARN,
		}
	}
	return llmConfig
}

func newSynthesizer(
	cfg config.SpeechConfig,
	client httpx.Client,
	breaker func(name string) httpx.CircuitBreaker,
) (domainSpeech.Synthesizer, error) {
	switch cfg.Provider {
	case config.SpeechProviderElevenLabs:
		synth, err := tts.NewElevenLabsSynthesizer(tts.ElevenLabsConfig{
			APIKey:  cfg.ElevenLabs.APIKey,
			BaseURL: cfg.BaseURL,
			VoiceID: cfg.ElevenLabs.VoiceID,
			ModelID: cfg.ElevenLabs.ModelID,
		}, client, breaker(tts.ElevenLabsServiceName))
		if err != nil {
			return nil, err
		}
		return synth, nil
	case config.SpeechProviderAzure:
		synth, err := tts.NewAzureSynthesizer(tts.AzureConfig{
			Key:     cfg.Key,
			Region:  cfg.Region,
			BaseURL: cfg.BaseURL,
		}, client, breaker(tts.AzureServiceName))
		if err != nil {
			return nil, err
		}
		return synth, nil
	default:
		return nil, fmt.Errorf("unsupported speech provider: %s", cfg.Provider)
	}
}
