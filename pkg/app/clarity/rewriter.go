package clarity

import (
	"context"
	"fmt"

	"github.com/NeuralTrust/SafePrompt/pkg/app/sentiment"
	domain "github.com/NeuralTrust/SafePrompt/pkg/domain/sentiment"
	"github.com/NeuralTrust/SafePrompt/pkg/infra/providers"
)

const (
	ClaritySystemPrompt  = "You are an assistant that helps improve clarity."
	ResponseSystemPrompt = "You are a helpful assistant."

	clarityPrompt = "Rewrite the following to make it clearer: %s"

	DefaultResponseMaxTokens = 150
)

//go:generate mockery --name=Rewriter --dir=. --output=./mocks --filename=rewriter_mock.go --case=underscore --with-expecter
type Rewriter interface {
	Clarify(ctx context.Context, text string) (string, error)
	Respond(ctx context.Context, clarified string, label domain.Label) (string, error)
}

type rewriter struct {
	llm               providers.Client
	llmConfig         providers.Config
	responseMaxTokens int
}

func NewRewriter(llm providers.Client, llmConfig providers.Config, responseMaxTokens int) Rewriter {
	if responseMaxTokens <= 0 {
		responseMaxTokens = DefaultResponseMaxTokens
	}
	return &rewriter{
		llm:               llm,
		llmConfig:         llmConfig,
		responseMaxTokens: responseMaxTokens,
	}
}

func (r *rewriter) Clarify(ctx context.Context, text string) (string, error) {
	resp, err := r.llm.Ask(ctx, r.llmConfig.With(ClaritySystemPrompt, 0), fmt.Sprintf(clarityPrompt, text))
	if err != nil {
		return "", fmt.Errorf("clarity rewrite failed: %w", err)
	}
	return resp.Text(), nil
}

// Respond answers the clarified text and prefixes the answer with the
// empathy phrase for label.
func (r *rewriter) Respond(ctx context.Context, clarified string, label domain.Label) (string, error) {
	resp, err := r.llm.Ask(ctx, r.llmConfig.With(ResponseSystemPrompt, r.responseMaxTokens), clarified)
	if err != nil {
		return "", fmt.Errorf("response generation failed: %w", err)
	}
	return fmt.Sprintf("%s: %s", sentiment.Prefix(label), resp.Text()), nil
}
