package explain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"recommend-backend/internal/llm"
	"recommend-backend/internal/recommend"
	"recommend-backend/internal/shared/telemetry"
)

// LLMOptions tunes the remote generator.
type LLMOptions struct {
	// CallTimeout bounds one provider call. Zero means 20s.
	CallTimeout time.Duration
	// FailureThreshold consecutive failures open the breaker. Zero means 3.
	FailureThreshold uint32
	// OpenTimeout is how long the breaker stays open. Zero means 30s.
	OpenTimeout time.Duration
}

// LLMGenerator asks a language model to explain the ranking. Calls go
// through a circuit breaker so a failing provider is skipped quickly.
type LLMGenerator struct {
	client      llm.Client
	callTimeout time.Duration
	breaker     *gobreaker.CircuitBreaker[[]Explanation]
}

// NewLLMGenerator wraps client.
func NewLLMGenerator(client llm.Client, opts LLMOptions) *LLMGenerator {
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = 20 * time.Second
	}
	if opts.FailureThreshold == 0 {
		opts.FailureThreshold = 3
	}
	if opts.OpenTimeout <= 0 {
		opts.OpenTimeout = 30 * time.Second
	}
	threshold := opts.FailureThreshold
	settings := gobreaker.Settings{
		Name:        "llm-explainer",
		MaxRequests: 1,
		Timeout:     opts.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			telemetry.Warn("explain.breaker.state", map[string]any{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			})
		},
		// A cancelled client request says nothing about provider health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	}
	return &LLMGenerator{
		client:      client,
		callTimeout: opts.CallTimeout,
		breaker:     gobreaker.NewCircuitBreaker[[]Explanation](settings),
	}
}

func (g *LLMGenerator) Name() string { return "llm" }

// State reports the breaker state, e.g. "closed" or "open".
func (g *LLMGenerator) State() string {
	return g.breaker.State().String()
}

func (g *LLMGenerator) Explain(ctx context.Context, req Request) ([]Explanation, error) {
	if len(req.Items) == 0 {
		return nil, nil
	}
	return g.breaker.Execute(func() ([]Explanation, error) {
		callCtx, cancel := context.WithTimeout(ctx, g.callTimeout)
		defer cancel()

		raw, err := g.client.Complete(callCtx, buildMessages(req))
		if err != nil {
			return nil, err
		}
		out, err := parseExplanations(raw)
		if err != nil {
			return nil, err
		}
		if len(out) == 0 {
			return nil, ErrEmpty
		}
		return out, nil
	})
}

const systemPrompt = `You explain recommendations that a deterministic constraint scoring engine has ALREADY ranked.
Your job is ONLY to explain them in plain language. You must NOT change the ranking order.

For each item, provide:
1. why_recommended: 1-2 sentences on why this item scored well given the user's constraints.
2. tradeoffs: a brief note on what the user gives up by choosing it (e.g. higher price, more time).
3. why_others_lower: a brief note on why items below this one scored lower.

Be concise and specific, and reference the actual constraint values (budget, time, comfort/exploration preference).
Respond ONLY with a JSON object of the form {"explanations": [{"id", "why_recommended", "tradeoffs", "why_others_lower"}, ...]}.`

type promptItem struct {
	ID                  string                   `json:"id"`
	Name                string                   `json:"name"`
	Price               float64                  `json:"price"`
	TimeCost            float64                  `json:"time_minutes"`
	Score               float64                  `json:"score"`
	ComfortAffinity     float64                  `json:"comfort_score"`
	ExplorationAffinity float64                  `json:"exploration_score"`
	IsDiscovery         bool                     `json:"is_discovery"`
	Breakdown           recommend.ScoreBreakdown `json:"score_breakdown"`
}

func buildMessages(req Request) []llm.Message {
	items := make([]promptItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, promptItem{
			ID:                  it.ID,
			Name:                it.Name,
			Price:               it.Price,
			TimeCost:            it.TimeCost,
			Score:               it.Score,
			ComfortAffinity:     it.ComfortAffinity,
			ExplorationAffinity: it.ExplorationAffinity,
			IsDiscovery:         it.IsDiscovery,
			Breakdown:           it.Breakdown,
		})
	}
	summary, _ := json.MarshalIndent(items, "", "  ")

	c := req.Constraints
	user := fmt.Sprintf(`User query: %q
Domain: %s

Constraints:
- Budget: %s
- Time: %s minutes
- Comfort vs Exploration slider: %s (0=comfort, 1=exploration)
- Preset: %s

Ranked items (already scored by the deterministic engine):
%s

Generate explanations for each item. For discovery items, emphasize that they are shown to broaden horizons while still meeting constraints.`,
		req.Query, req.Domain, num(c.Budget), num(c.TimeLimit), num(c.ExplorationSlider), c.Preset, summary)

	return []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt},
		{Role: llm.RoleUser, Content: user},
	}
}

// parseExplanations accepts {"explanations":[...]} or a bare array,
// optionally wrapped in a markdown code fence.
func parseExplanations(raw string) ([]Explanation, error) {
	content := stripFences(raw)
	if strings.HasPrefix(content, "[") {
		var list []Explanation
		if err := json.Unmarshal([]byte(content), &list); err != nil {
			return nil, fmt.Errorf("decode explanations: %w", err)
		}
		return list, nil
	}
	var wrapped struct {
		Explanations []Explanation `json:"explanations"`
	}
	if err := json.Unmarshal([]byte(content), &wrapped); err != nil {
		return nil, fmt.Errorf("decode explanations: %w", err)
	}
	return wrapped.Explanations, nil
}

func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

var _ Generator = (*LLMGenerator)(nil)
