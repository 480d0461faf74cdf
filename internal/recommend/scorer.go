package recommend

import (
	"sort"
	"strconv"
)

// Score computes the weighted composite score of every item and returns
// them sorted by descending score. Ties keep their input order.
//
// Score trusts that items already passed Filter; efficiencies go negative
// for items over a limit.
func Score(items []Item, c Constraints) []ScoredItem {
	weights := c.Preset.Weights()

	scored := make([]ScoredItem, 0, len(items))
	for _, item := range items {
		budgetEff := efficiency(item.Price, c.Budget)
		timeEff := efficiency(item.TimeCost, c.TimeLimit)
		alignment := Alignment(item, c.ExplorationSlider)

		composite := weights.Budget*budgetEff +
			weights.Time*timeEff +
			weights.Alignment*alignment

		scored = append(scored, ScoredItem{
			Item:  item,
			Score: round4(composite),
			Breakdown: ScoreBreakdown{
				BudgetEfficiency: round4(budgetEff),
				TimeEfficiency:   round4(timeEff),
				Alignment:        round4(alignment),
				WeightsUsed:      weights,
			},
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// Alignment interpolates between comfort (slider=0) and exploration (slider=1).
func Alignment(item Item, slider float64) float64 {
	return (1-slider)*item.ComfortAffinity + slider*item.ExplorationAffinity
}

// efficiency is 1 - used/limit; a non-positive limit counts as unconstrained.
func efficiency(used, limit float64) float64 {
	if limit <= 0 {
		return 1.0
	}
	return 1.0 - used/limit
}

// round4 rounds to 4 decimals on the exact binary value, ties to even,
// so 0.90625 becomes 0.9062.
func round4(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 4, 64), 64)
	if err != nil {
		return v
	}
	return r
}
