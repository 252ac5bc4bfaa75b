package pii

import "context"

// Entity is a single PII span reported by the recognizer.
type Entity struct {
	Text            string  `json:"text"`
	Category        string  `json:"category"`
	Offset          int     `json:"offset"`
	Length          int     `json:"length"`
	ConfidenceScore float64 `json:"confidenceScore"`
}

type Result struct {
	ContainsPII bool     `json:"contains_pii"`
	Categories  []string `json:"pii_categories"`
	Entities    []string `json:"pii_entities"`
}

// Empty is the no-PII result. Slices are non-nil so they render as [].
func Empty() Result {
	return Result{Categories: []string{}, Entities: []string{}}
}

// NewResult folds entities into unique categories (first-seen order) and the
// matched text of every entity.
func NewResult(entities []Entity) Result {
	res := Empty()
	seen := make(map[string]struct{}, len(entities))
	for _, e := range entities {
		res.Entities = append(res.Entities, e.Text)
		if _, ok := seen[e.Category]; ok {
			continue
		}
		seen[e.Category] = struct{}{}
		res.Categories = append(res.Categories, e.Category)
	}
	res.ContainsPII = len(res.Entities) > 0
	return res
}

//go:generate mockery --name=Recognizer --dir=. --output=./mocks --filename=recognizer_mock.go --case=underscore --with-expecter
type Recognizer interface {
	RecognizePII(ctx context.Context, text, language string) ([]Entity, error)
}
