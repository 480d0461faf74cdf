package recommend

// Item is one recommendable catalog entry (a meal, a product, a trip).
type Item struct {
	ID                  string   `json:"id" validate:"required"`
	Name                string   `json:"name" validate:"required"`
	Category            string   `json:"category"`
	Price               float64  `json:"price" validate:"gte=0"`
	TimeCost            float64  `json:"time_minutes" validate:"gte=0"`
	ComfortAffinity     float64  `json:"comfort_score" validate:"gte=0,lte=1"`
	ExplorationAffinity float64  `json:"exploration_score" validate:"gte=0,lte=1"`
	Tags                []string `json:"tags"`
	Description         string   `json:"description"`
}

// Constraints is the per-request configuration of one pipeline run.
type Constraints struct {
	Budget            float64
	TimeLimit         float64
	ExplorationSlider float64
	Preset            Preset
}

// ScoreBreakdown records the sub-scores and weights behind a composite score.
type ScoreBreakdown struct {
	BudgetEfficiency float64       `json:"budget_efficiency"`
	TimeEfficiency   float64       `json:"time_efficiency"`
	Alignment        float64       `json:"alignment"`
	WeightsUsed      WeightProfile `json:"weights_used"`
}

// ScoredItem is an Item enriched by the scorer and the discovery injector.
type ScoredItem struct {
	Item
	Score           float64        `json:"score"`
	Breakdown       ScoreBreakdown `json:"score_breakdown"`
	IsDiscovery     bool           `json:"is_discovery"`
	DiscoveryReason string         `json:"discovery_reason,omitempty"`
}
