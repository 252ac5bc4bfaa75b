package prompt

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/NeuralTrust/SafePrompt/pkg/app/clarity"
	"github.com/NeuralTrust/SafePrompt/pkg/app/moderation"
	"github.com/NeuralTrust/SafePrompt/pkg/app/pii"
	"github.com/NeuralTrust/SafePrompt/pkg/app/sentiment"
	"github.com/NeuralTrust/SafePrompt/pkg/domain"
	domainModeration "github.com/NeuralTrust/SafePrompt/pkg/domain/moderation"
	domainPII "github.com/NeuralTrust/SafePrompt/pkg/domain/pii"
	domainSentiment "github.com/NeuralTrust/SafePrompt/pkg/domain/sentiment"
	"github.com/NeuralTrust/SafePrompt/pkg/domain/telemetry"
	"github.com/NeuralTrust/SafePrompt/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const unsafeMessage = "Inappropriate content detected. Please revise your input. Harmful terms: "

// Response is the /process payload. PII fields are present only when the
// pipeline runs the PII check.
type Response struct {
	SafeInput      string  `json:"safe_input"`
	IsSafe         bool    `json:"is_safe"`
	Message        string  `json:"message,omitempty"`
	ClarifiedInput string  `json:"clarified_input"`
	AIResponse     string  `json:"ai_response"`
	Sentiment      string  `json:"sentiment"`
	AudioURL       *string `json:"audio_url"`
	*domainPII.Result
}

//go:generate mockery --name=Processor --dir=. --output=./mocks --filename=processor_mock.go --case=underscore --with-expecter
type Processor interface {
	Process(ctx context.Context, input, requestID string) (*Response, error)
}

type processor struct {
	logger     *logrus.Logger
	sentiment  sentiment.Checker
	sanitizer  moderation.Sanitizer
	pii        pii.Checker
	rewriter   clarity.Rewriter
	publisher  telemetry.Publisher
	includePII bool
}

func NewProcessor(
	logger *logrus.Logger,
	sentimentChecker sentiment.Checker,
	sanitizer moderation.Sanitizer,
	piiChecker pii.Checker,
	rewriter clarity.Rewriter,
	publisher telemetry.Publisher,
	includePII bool,
) Processor {
	return &processor{
		logger:     logger,
		sentiment:  sentimentChecker,
		sanitizer:  sanitizer,
		pii:        piiChecker,
		rewriter:   rewriter,
		publisher:  publisher,
		includePII: includePII,
	}
}

func (p *processor) Process(ctx context.Context, input, requestID string) (result *Response, err error) {
	if input == "" {
		return nil, domain.ErrNoInput
	}
	start := time.Now()

	var (
		label     domainSentiment.Label
		moderated *domainModeration.Result
		piiResult domainPII.Result
		flagged   int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		label = p.sentiment.Check(gctx, input)
		return nil
	})
	g.Go(func() error {
		var err error
		moderated, err = p.sanitizer.Sanitize(gctx, input)
		return err
	})
	if p.includePII {
		g.Go(func() error {
			piiResult = p.pii.Check(gctx, input)
			return nil
		})
	}

	defer func() {
		p.report(requestID, start, result, flagged, err)
	}()

	if err := g.Wait(); err != nil {
		p.logger.WithError(err).WithField("request_id", requestID).Error("prompt screening failed")
		return nil, err
	}

	flagged = len(moderated.Terms)

	clarified, err := p.rewriter.Clarify(ctx, moderated.Text)
	if err != nil {
		return nil, err
	}
	response, err := p.rewriter.Respond(ctx, clarified, label)
	if err != nil {
		return nil, err
	}

	result = &Response{
		SafeInput:      moderated.Text,
		IsSafe:         moderated.IsSafe,
		ClarifiedInput: clarified,
		AIResponse:     response,
		Sentiment:      string(label),
	}
	if !moderated.IsSafe {
		result.Message = unsafeMessage + strings.Join(moderated.Terms, ", ")
	}
	if p.includePII {
		result.Result = &piiResult
	}
	return result, nil
}

func (p *processor) report(requestID string, start time.Time, result *Response, flagged int, err error) {
	evt := telemetry.NewEvent(requestID, start)
	evt.FlaggedTerms = flagged
	if err != nil {
		evt.Error = err.Error()
	}
	if result != nil {
		evt.IsSafe = result.IsSafe
		evt.Sentiment = result.Sentiment
		if result.Result != nil {
			evt.ContainsPII = result.ContainsPII
		}
		prometheus.PromptOutcomes.WithLabelValues(strconv.FormatBool(result.IsSafe), result.Sentiment).Inc()
	}
	if flagged > 0 {
		prometheus.FlaggedTerms.Add(float64(flagged))
	}
	p.publisher.Publish(evt)
}
