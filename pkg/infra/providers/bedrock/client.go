package bedrock

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/NeuralTrust/SafePrompt/pkg/infra/providers"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	stsTypes "github.com/aws/aws-sdk-go-v2/service/sts/types"
)

const (
	defaultRegion = "us-east-1"
	sessionName   = "SafePromptSession"
)

// ConverseAPI is the slice of the bedrockruntime client used here.
type ConverseAPI interface {
	Converse(
		ctx context.Context,
		params *bedrockruntime.ConverseInput,
		optFns ...func(*bedrockruntime.Options),
	) (*bedrockruntime.ConverseOutput, error)
}

// ClientBuilder creates a runtime client for a set of credentials.
type ClientBuilder func(ctx context.Context, creds providers.AwsBedrockCredentials) (ConverseAPI, error)

type client struct {
	clientPool *sync.Map
	build      ClientBuilder
}

func NewBedrockClient() providers.Client {
	return NewBedrockClientWithBuilder(buildRuntimeClient)
}

func NewBedrockClientWithBuilder(build ClientBuilder) providers.Client {
	return &client{
		clientPool: &sync.Map{},
		build:      build,
	}
}

// Ask uses the model-agnostic Converse API so every Bedrock text model
// shares one request shape.
func (c *client) Ask(
	ctx context.Context,
	config *providers.Config,
	prompt string,
) (*providers.CompletionResponse, error) {
	if config.Model == "" {
		return nil, fmt.Errorf("model is required")
	}
	creds := providers.AwsBedrockCredentials{Region: defaultRegion}
	if config.Credentials.AwsBedrock != nil {
		creds = *config.Credentials.AwsBedrock
	}

	runtime, err := c.getOrCreateClient(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("failed to create Bedrock client: %w", err)
	}

	input := &bedrockruntime.ConverseInput{
		ModelId: aws.String(config.Model),
		Messages: []types.Message{
			{
				Role:    types.ConversationRoleUser,
				Content: []types.ContentBlock{&types.ContentBlockMemberText{Value: prompt}},
			},
		},
	}
	if config.SystemPrompt != "" {
		input.System = []types.SystemContentBlock{
			&types.SystemContentBlockMemberText{Value: config.SystemPrompt},
		}
	}
	if config.MaxTokens > 0 || config.Temperature > 0 {
		input.InferenceConfig = &types.InferenceConfiguration{}
		if config.MaxTokens > 0 {
			input.InferenceConfig.MaxTokens = aws.Int32(int32(config.MaxTokens))
		}
		if config.Temperature > 0 {
			input.InferenceConfig.Temperature = aws.Float32(float32(config.Temperature))
		}
	}

	out, err := runtime.Converse(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("bedrock request failed: %w", err)
	}

	text := extractText(out)
	if text == "" {
		return nil, fmt.Errorf("no text content returned")
	}

	resp := &providers.CompletionResponse{
		ID:       fmt.Sprintf("bedrock-%s", config.Model),
		Model:    config.Model,
		Response: text,
	}
	if out.Usage != nil {
		resp.Usage = providers.Usage{
			PromptTokens:     int(aws.ToInt32(out.Usage.InputTokens)),
			CompletionTokens: int(aws.ToInt32(out.Usage.OutputTokens)),
			TotalTokens:      int(aws.ToInt32(out.Usage.TotalTokens)),
		}
	}
	return resp, nil
}

func extractText(out *bedrockruntime.ConverseOutput) string {
	msg, ok := out.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return ""
	}
	var b strings.Builder
	for _, block := range msg.Value.Content {
		if text, ok := block.(*types.ContentBlockMemberText); ok {
			b.WriteString(text.Value)
		}
	}
	return b.String()
}

func (c *client) getOrCreateClient(ctx context.Context, creds providers.AwsBedrockCredentials) (ConverseAPI, error) {
	key := buildClientKey(creds)
	if v, ok := c.clientPool.Load(key); ok {
		if cli, ok := v.(ConverseAPI); ok {
			return cli, nil
		}
	}
	cli, err := c.build(ctx, creds)
	if err != nil {
		return nil, err
	}
	actual, _ := c.clientPool.LoadOrStore(key, cli)
	if pooled, ok := actual.(ConverseAPI); ok {
		return pooled, nil
	}
	return cli, nil
}

func buildClientKey(creds providers.AwsBedrockCredentials) string {
	return fmt.Sprintf("%s:%s:%v:%s", creds.AccessKey, creds.Region, creds.UseRole, creds.RoleARN)
}

func buildRuntimeClient(ctx context.Context, creds providers.AwsBedrockCredentials) (ConverseAPI, error) {
	cfg, err := buildAwsConfig(ctx, creds)
	if err != nil {
		return nil, err
	}
	return bedrockruntime.NewFromConfig(cfg), nil
}

// buildAwsConfig uses static keys when given and the default AWS chain
// otherwise. A role ARN is assumed on top of either.
func buildAwsConfig(ctx context.Context, creds providers.AwsBedrockCredentials) (aws.Config, error) {
	region := creds.Region
	if region == "" {
		region = defaultRegion
	}

	if creds.UseRole && creds.RoleARN != "" {
		assumed, err := assumeRole(ctx, creds, region)
		if err != nil {
			return aws.Config{}, err
		}
		return loadAWSConfig(ctx, *assumed.AccessKeyId, *assumed.SecretAccessKey, *assumed.SessionToken, region)
	}
	return loadAWSConfig(ctx, creds.AccessKey, creds.SecretKey, creds.SessionToken, region)
}

func loadAWSConfig(ctx context.Context, accessKey, secretKey, sessionToken, region string) (aws.Config, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if accessKey != "" && secretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(aws.CredentialsProviderFunc(
			func(ctx context.Context) (aws.Credentials, error) {
				return aws.Credentials{
					AccessKeyID:     accessKey,
					SecretAccessKey: secretKey,
					SessionToken:    sessionToken,
				}, nil
			},
		)))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return cfg, nil
}

func assumeRole(ctx context.Context, creds providers.AwsBedrockCredentials, region string) (*stsTypes.Credentials, error) {
	baseCfg, err := loadAWSConfig(ctx, creds.AccessKey, creds.SecretKey, creds.SessionToken, region)
	if err != nil {
		return nil, fmt.Errorf("unable to load base AWS config: %w", err)
	}
	output, err := sts.NewFromConfig(baseCfg).AssumeRole(ctx, &sts.AssumeRoleInput{
		RoleArn:         aws.String(creds.RoleARN),
		RoleSessionName: aws.String(sessionName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to assume role: %w", err)
	}
	return output.Credentials, nil
}
