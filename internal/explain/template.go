package explain

import (
	"context"
	"fmt"
	"math"
	"strconv"
)

// TemplateGenerator builds deterministic explanations from the numbers
// alone. It never fails and is the last link of every fallback chain.
type TemplateGenerator struct{}

func (TemplateGenerator) Name() string { return "template" }

func (TemplateGenerator) Explain(ctx context.Context, req Request) ([]Explanation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	budget := req.Constraints.Budget
	limit := req.Constraints.TimeLimit

	out := make([]Explanation, 0, len(req.Items))
	for i, it := range req.Items {
		budgetPct := percentSaved(it.Price, budget)
		timePct := percentSaved(it.TimeCost, limit)

		var why, tradeoffs string
		if it.IsDiscovery {
			why = fmt.Sprintf("Discovery pick! '%s' meets your constraints but offers something different: it scores high on exploration (%s).",
				it.Name, num(it.ExplorationAffinity))
			tradeoffs = fmt.Sprintf("Exploration-focused pick: may not be your usual preference, but it stays within a budget of %s and %s min.",
				num(budget), num(limit))
		} else {
			why = fmt.Sprintf("Scored %.2f, saves %d%% of your budget and uses only %s/%s min.",
				it.Score, budgetPct, num(it.TimeCost), num(limit))
			tradeoffs = fmt.Sprintf("Costs %s (%d%% saved) and takes %s min (%d%% time saved).",
				num(it.Price), budgetPct, num(it.TimeCost), timePct)
		}

		out = append(out, Explanation{
			ID:             it.ID,
			WhyRecommended: why,
			Tradeoffs:      tradeoffs,
			WhyOthersLower: rankNote(i),
		})
	}
	return out, nil
}

func rankNote(pos int) string {
	switch {
	case pos == 0:
		return "Top pick, best balance of your constraints."
	case pos < 3:
		return "Strong option, slightly less optimal on one dimension."
	default:
		return "Still meets your constraints but scored lower on weighted combination."
	}
}

// percentSaved is round((1 - used/limit) * 100), or 0 without a limit.
func percentSaved(used, limit float64) int {
	if limit <= 0 {
		return 0
	}
	return int(math.RoundToEven((1 - used/limit) * 100))
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var _ Generator = TemplateGenerator{}
