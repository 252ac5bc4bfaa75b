package sentiment

import (
	"context"

	domain "github.com/NeuralTrust/SafePrompt/pkg/domain/sentiment"
	"github.com/sirupsen/logrus"
)

const (
	DefaultLanguage = "en"

	negativePrefix = "I'm sorry to hear that you're upset."
	positivePrefix = "I'm happy to hear you're feeling good!"
	neutralPrefix  = "I see you're feeling ok "
)

//go:generate mockery --name=Checker --dir=. --output=./mocks --filename=sentiment_checker_mock.go --case=underscore --with-expecter
type Checker interface {
	Check(ctx context.Context, text string) domain.Label
}

type checker struct {
	logger   *logrus.Logger
	analyzer domain.Analyzer
	language string
}

func NewChecker(logger *logrus.Logger, analyzer domain.Analyzer, language string) Checker {
	if language == "" {
		language = DefaultLanguage
	}
	return &checker{
		logger:   logger,
		analyzer: analyzer,
		language: language,
	}
}

// Check returns Unknown when the analyzer fails.
func (c *checker) Check(ctx context.Context, text string) domain.Label {
	label, err := c.analyzer.AnalyzeSentiment(ctx, text, c.language)
	if err != nil {
		c.logger.WithError(err).WithField("service", "sentiment").Error("sentiment analysis failed")
		return domain.Unknown
	}
	if label == "" {
		return domain.Unknown
	}
	return label
}

// Prefix picks the empathy phrase put in front of a generated response.
func Prefix(label domain.Label) string {
	switch label {
	case domain.Negative:
		return negativePrefix
	case domain.Positive:
		return positivePrefix
	default:
		return neutralPrefix
	}
}
