// Package explain attaches human-readable reasons to an already ranked
// recommendation list. Generators never reorder or drop items.
package explain

import (
	"context"
	"errors"

	"recommend-backend/internal/recommend"
)

// ErrEmpty is returned by a generator that produced no explanations.
var ErrEmpty = errors.New("no explanations generated")

// Default texts for items a generator did not cover.
const (
	DefaultWhyRecommended = "Meets your constraints."
	DefaultTradeoffs      = "No significant tradeoffs identified."
	DefaultWhyOthersLower = "Ranked below higher-scoring options on the same weighted criteria."
)

// Request is the context a generator explains.
type Request struct {
	Query       string
	Domain      string
	Constraints recommend.Constraints
	// Items is the final ordered list returned to the caller.
	Items []recommend.ScoredItem
}

// Explanation is the text attached to one item, keyed by item ID.
type Explanation struct {
	ID             string `json:"id"`
	WhyRecommended string `json:"why_recommended"`
	Tradeoffs      string `json:"tradeoffs"`
	WhyOthersLower string `json:"why_others_lower"`
}

// Generator produces explanations for a ranked list.
type Generator interface {
	Name() string
	Explain(ctx context.Context, req Request) ([]Explanation, error)
}

// Explained is a scored item with its explanation fields filled in.
type Explained struct {
	recommend.ScoredItem
	WhyRecommended string `json:"why_recommended"`
	Tradeoffs      string `json:"tradeoffs"`
	WhyOthersLower string `json:"why_others_lower"`
}

// Annotate merges explanations into items by ID. Order and length follow
// items; unmatched items and blank fields get the default texts.
func Annotate(items []recommend.ScoredItem, explanations []Explanation) []Explained {
	byID := make(map[string]Explanation, len(explanations))
	for _, e := range explanations {
		if _, dup := byID[e.ID]; !dup {
			byID[e.ID] = e
		}
	}
	out := make([]Explained, 0, len(items))
	for _, it := range items {
		e := byID[it.ID]
		out = append(out, Explained{
			ScoredItem:     it,
			WhyRecommended: orDefault(e.WhyRecommended, DefaultWhyRecommended),
			Tradeoffs:      orDefault(e.Tradeoffs, DefaultTradeoffs),
			WhyOthersLower: orDefault(e.WhyOthersLower, DefaultWhyOthersLower),
		})
	}
	return out
}

func orDefault(v, def string) string {
	for _, r := range v {
		if r != ' ' && r != '\t' && r != '\n' {
			return v
		}
	}
	return def
}
