package moderation

import "context"

type Result struct {
	IsSafe bool
	Text   string
	// Terms is the raw flagged list, duplicates and order preserved.
	Terms []string
}

//go:generate mockery --name=Screener --dir=. --output=./mocks --filename=screener_mock.go --case=underscore --with-expecter
type Screener interface {
	Screen(ctx context.Context, text, language string) ([]string, error)
}

// SuggestionCache remembers replacement suggestions by flagged term.
//
//go:generate mockery --name=SuggestionCache --dir=. --output=./mocks --filename=suggestion_cache_mock.go --case=underscore --with-expecter
type SuggestionCache interface {
	Get(ctx context.Context, term string) (string, bool)
	Set(ctx context.Context, term, suggestion string)
}
