package moderation

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	domain "github.com/NeuralTrust/SafePrompt/pkg/domain/moderation"
	"github.com/NeuralTrust/SafePrompt/pkg/infra/providers"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	SuggestionSystemPrompt = "You are an assistant that helps make language safer."
	suggestionPrompt       = "Please suggest a cleaner word for: %s"

	defaultConcurrency = 4
)

//go:generate mockery --name=Sanitizer --dir=. --output=./mocks --filename=sanitizer_mock.go --case=underscore --with-expecter
type Sanitizer interface {
	Sanitize(ctx context.Context, text string) (*domain.Result, error)
}

type sanitizer struct {
	logger         *logrus.Logger
	screener       domain.Screener
	llm            providers.Client
	llmConfig      providers.Config
	language       string
	maxConcurrency int
	cache          domain.SuggestionCache
}

type SanitizerOption func(*sanitizer)

// WithSuggestionCache serves repeated terms without asking the model again.
func WithSuggestionCache(cache domain.SuggestionCache) SanitizerOption {
	return func(s *sanitizer) {
		s.cache = cache
	}
}

func NewSanitizer(
	logger *logrus.Logger,
	screener domain.Screener,
	llm providers.Client,
	llmConfig providers.Config,
	language string,
	maxConcurrency int,
	opts ...SanitizerOption,
) Sanitizer {
	if maxConcurrency < 1 {
		maxConcurrency = defaultConcurrency
	}
	s := &sanitizer{
		logger:         logger,
		screener:       screener,
		llm:            llm,
		llmConfig:      llmConfig,
		language:       language,
		maxConcurrency: maxConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sanitize screens text and replaces every flagged term with a model
// suggested alternative. Replacements are keyed by term, so a term is never
// substituted with another term's suggestion.
func (s *sanitizer) Sanitize(ctx context.Context, text string) (*domain.Result, error) {
	terms, err := s.screener.Screen(ctx, text, s.language)
	if err != nil {
		return nil, fmt.Errorf("harmful language check failed: %w", err)
	}
	if len(terms) == 0 {
		return &domain.Result{IsSafe: true, Text: text, Terms: []string{}}, nil
	}

	distinct := distinctTerms(terms)
	suggestions := make([]string, len(distinct))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrency)
	for i, term := range distinct {
		g.Go(func() error {
			suggestion, err := s.suggest(gctx, term)
			if err != nil {
				return err
			}
			suggestions[i] = suggestion
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sanitized := text
	for i, term := range distinct {
		replacement := suggestions[i]
		if replacement == "" {
			replacement = mask(term)
		}
		sanitized = replaceWord(sanitized, term, replacement)
	}

	s.logger.WithFields(logrus.Fields{
		"flagged":  len(terms),
		"distinct": len(distinct),
	}).Debug("harmful terms replaced")

	return &domain.Result{IsSafe: false, Text: sanitized, Terms: terms}, nil
}

func (s *sanitizer) suggest(ctx context.Context, term string) (string, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, term); ok {
			return cached, nil
		}
	}
	resp, err := s.llm.Ask(
		ctx,
		s.llmConfig.With(SuggestionSystemPrompt, 0),
		fmt.Sprintf(suggestionPrompt, term),
	)
	if err != nil {
		return "", fmt.Errorf("replacement suggestion for %q failed: %w", term, err)
	}
	suggestion := normalizeSuggestion(resp.Text())
	if s.cache != nil && suggestion != "" {
		s.cache.Set(ctx, term, suggestion)
	}
	return suggestion, nil
}

// distinctTerms keeps the first spelling of each term, compared without case,
// in first-flagged order.
func distinctTerms(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		key := strings.ToLower(term)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, term)
	}
	return out
}

// normalizeSuggestion reduces a chatty completion to a single replacement:
// first line, no wrapping quotes, no trailing punctuation.
func normalizeSuggestion(s string) string {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "\"'`“”‘’*")
	s = strings.TrimRightFunc(s, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSpace(r)
	})
	return strings.TrimSpace(s)
}

func mask(term string) string {
	return strings.Repeat("*", utf8.RuneCountInString(term))
}

// replaceWord substitutes whole-word, case-insensitive occurrences of term.
// Word boundaries are Unicode aware. The replacement is inserted literally.
func replaceWord(text, term, replacement string) string {
	if term == "" {
		return text
	}
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(term))

	var b strings.Builder
	last, pos := 0, 0
	for pos <= len(text) {
		loc := re.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if !isWordBoundary(text, start, end) {
			_, size := utf8.DecodeRuneInString(text[start:])
			pos = start + max(size, 1)
			continue
		}
		b.WriteString(text[last:start])
		b.WriteString(replacement)
		last, pos = end, end
	}
	if last == 0 {
		return text
	}
	b.WriteString(text[last:])
	return b.String()
}

func isWordBoundary(text string, start, end int) bool {
	if start > 0 {
		if r, _ := utf8.DecodeLastRuneInString(text[:start]); isWordRune(r) {
			return false
		}
	}
	if end < len(text) {
		if r, _ := utf8.DecodeRuneInString(text[end:]); isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
