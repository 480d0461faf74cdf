package recommendations

import (
	"recommend-backend/internal/explain"
	"recommend-backend/internal/recommend"
)

const (
	defaultBudget    = 500
	defaultTimeLimit = 60
	defaultSlider    = 0.5
	defaultDomain    = "campus"
)

// ConstraintsDTO is the constraints object of a recommend request. Absent
// fields take the documented defaults.
type ConstraintsDTO struct {
	Budget               *float64 `json:"budget"`
	Time                 *float64 `json:"time"`
	ComfortVsExploration *float64 `json:"comfort_vs_exploration" binding:"omitempty,gte=0,lte=1"`
}

// RecommendRequest is the body of POST /recommend.
type RecommendRequest struct {
	Query       string         `json:"query" binding:"max=2000"`
	Constraints ConstraintsDTO `json:"constraints"`
	Domain      string         `json:"domain"`
	Preset      *string        `json:"preset"`
}

// ConstraintsUsed echoes the resolved constraints back to the caller.
type ConstraintsUsed struct {
	Budget               float64 `json:"budget"`
	Time                 float64 `json:"time"`
	ComfortVsExploration float64 `json:"comfort_vs_exploration"`
}

// RecommendResponse is the body returned by POST /recommend.
type RecommendResponse struct {
	Recommendations []explain.Explained `json:"recommendations"`
	TotalItems      int                 `json:"total_items"`
	FilteredOut     int                 `json:"filtered_out"`
	Domain          string              `json:"domain"`
	ConstraintsUsed ConstraintsUsed     `json:"constraints_used"`
	PresetUsed      *string             `json:"preset_used"`
}

// PresetResponse describes one weight profile.
type PresetResponse struct {
	Name    string                  `json:"name"`
	Weights recommend.WeightProfile `json:"weights"`
}

func (c ConstraintsDTO) resolve() ConstraintsUsed {
	return ConstraintsUsed{
		Budget:               valueOr(c.Budget, defaultBudget),
		Time:                 valueOr(c.Time, defaultTimeLimit),
		ComfortVsExploration: valueOr(c.ComfortVsExploration, defaultSlider),
	}
}

func (r RecommendRequest) toInput() Input {
	used := r.Constraints.resolve()
	preset := ""
	if r.Preset != nil {
		preset = *r.Preset
	}
	domain := r.Domain
	if domain == "" {
		domain = defaultDomain
	}
	return Input{
		Query:  r.Query,
		Domain: domain,
		Constraints: recommend.Constraints{
			Budget:            used.Budget,
			TimeLimit:         used.Time,
			ExplorationSlider: used.ComfortVsExploration,
			Preset:            recommend.ParsePreset(preset),
		},
	}
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func toPresetResponses() []PresetResponse {
	out := make([]PresetResponse, 0, len(recommend.Presets))
	for _, p := range recommend.Presets {
		out = append(out, PresetResponse{Name: p.String(), Weights: p.Weights()})
	}
	return out
}
