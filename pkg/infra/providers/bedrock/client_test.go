package bedrock

import (
	"context"
	"errors"
	"testing"

	"github.com/NeuralTrust/SafePrompt/pkg/infra/providers"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConverse struct {
	input *bedrockruntime.ConverseInput
	out   *bedrockruntime.ConverseOutput
	err   error
}

func (f *fakeConverse) Converse(
	_ context.Context,
	params *bedrockruntime.ConverseInput,
	_ ...func(*bedrockruntime.Options),
) (*bedrockruntime.ConverseOutput, error) {
	f.input = params
	return f.out, f.err
}

func textOutput(text string) *bedrockruntime.ConverseOutput {
	return &bedrockruntime.ConverseOutput{
		Output: &types.ConverseOutputMemberMessage{
			Value: types.Message{
				Role:    types.ConversationRoleAssistant,
				Content: []types.ContentBlock{&types.ContentBlockMemberText{Value: text}},
			},
		},
		Usage: &types.TokenUsage{
			InputTokens:  aws.Int32(10),
			OutputTokens: aws.Int32(3),
			TotalTokens:  aws.Int32(13),
		},
	}
}

func TestAsk_Converse(t *testing.T) {
	fake := &fakeConverse{out: textOutput("heck")}
	builds := 0
	client := NewBedrockClientWithBuilder(func(_ context.Context, creds providers.AwsBedrockCredentials) (ConverseAPI, error) {
		builds++
		assert.Equal(t, "eu-west-1", creds.Region)
		return fake, nil
	})

	config := &providers.Config{
		Credentials: providers.Credentials{
			AwsBedrock: &providers.AwsBedrockCredentials{Region: "eu-west-1", AccessKey: "AK", SecretKey: "SK"},
		},
		Model:        "anthropic.claude-3-haiku-20240307-v1:0",
		MaxTokens:    150,
		SystemPrompt: "You are an assistant that helps make language safer.",
	}

	resp, err := client.Ask(context.Background(), config, "Please suggest a cleaner word for: hell")
	require.NoError(t, err)
	_, err = client.Ask(context.Background(), config, "again")
	require.NoError(t, err)

	assert.Equal(t, "heck", resp.Response)
	assert.Equal(t, 13, resp.Usage.TotalTokens)
	assert.Equal(t, 1, builds, "runtime client should be pooled")

	require.NotNil(t, fake.input)
	assert.Equal(t, "anthropic.claude-3-haiku-20240307-v1:0", aws.ToString(fake.input.ModelId))
	require.Len(t, fake.input.System, 1)
	system, ok := fake.input.System[0].(*types.SystemContentBlockMemberText)
	require.True(t, ok)
	assert.Equal(t, "You are an assistant that helps make language safer.", system.Value)
	assert.Equal(t, int32(150), aws.ToInt32(fake.input.InferenceConfig.MaxTokens))
}

func TestAsk_Errors(t *testing.T) {
	tests := []struct {
		name    string
		model   string
		fake    *fakeConverse
		buildEr error
		errMsg  string
	}{
		{name: "missing model", fake: &fakeConverse{}, errMsg: "model is required"},
		{name: "builder failure", model: "m", buildEr: errors.New("no credentials"), errMsg: "failed to create Bedrock client"},
		{name: "converse failure", model: "m", fake: &fakeConverse{err: errors.New("AccessDenied")}, errMsg: "AccessDenied"},
		{name: "empty output", model: "m", fake: &fakeConverse{out: &bedrockruntime.ConverseOutput{}}, errMsg: "no text content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewBedrockClientWithBuilder(func(context.Context, providers.AwsBedrockCredentials) (ConverseAPI, error) {
				if tt.buildEr != nil {
					return nil, tt.buildEr
				}
				return tt.fake, nil
			})
			_, err := client.Ask(context.Background(), &providers.Config{Model: tt.model}, "prompt")
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}
