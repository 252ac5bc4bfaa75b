package pii

import (
	"context"

	domain "github.com/NeuralTrust/SafePrompt/pkg/domain/pii"
	"github.com/sirupsen/logrus"
)

const DefaultLanguage = "en"

//go:generate mockery --name=Checker --dir=. --output=./mocks --filename=pii_checker_mock.go --case=underscore --with-expecter
type Checker interface {
	Check(ctx context.Context, text string) domain.Result
}

type checker struct {
	logger     *logrus.Logger
	recognizer domain.Recognizer
	language   string
}

func NewChecker(logger *logrus.Logger, recognizer domain.Recognizer, language string) Checker {
	if language == "" {
		language = DefaultLanguage
	}
	return &checker{
		logger:     logger,
		recognizer: recognizer,
		language:   language,
	}
}

// Check fails open: any recognizer error yields the empty result.
func (c *checker) Check(ctx context.Context, text string) domain.Result {
	if text == "" {
		return domain.Empty()
	}
	entities, err := c.recognizer.RecognizePII(ctx, text, c.language)
	if err != nil {
		c.logger.WithError(err).WithField("service", "pii").Error("pii recognition failed")
		return domain.Empty()
	}
	return domain.NewResult(entities)
}
