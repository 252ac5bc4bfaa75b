package sentiment

import "context"

type Label string

const (
	Positive Label = "positive"
	Neutral  Label = "neutral"
	Negative Label = "negative"
	Mixed    Label = "mixed"
	Unknown  Label = "unknown"
)

//go:generate mockery --name=Analyzer --dir=. --output=./mocks --filename=analyzer_mock.go --case=underscore --with-expecter
type Analyzer interface {
	AnalyzeSentiment(ctx context.Context, text, language string) (Label, error)
}
