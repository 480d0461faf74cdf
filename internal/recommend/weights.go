package recommend

// Preset selects one of the fixed weight profiles.
type Preset int

const (
	PresetDefault Preset = iota
	PresetStudent
	PresetSaver
	PresetExplorer
)

// Presets lists every preset in display order.
var Presets = []Preset{PresetStudent, PresetSaver, PresetExplorer, PresetDefault}

// WeightProfile holds the relative importance of each scoring dimension.
// Weights are not normalized; the composite is a plain weighted sum.
type WeightProfile struct {
	Budget    float64 `json:"budget_weight"`
	Time      float64 `json:"time_weight"`
	Alignment float64 `json:"alignment_weight"`
}

// ParsePreset resolves a preset name. Names match exactly; unknown, empty
// or differently cased names resolve to PresetDefault.
func ParsePreset(name string) Preset {
	switch name {
	case "student":
		return PresetStudent
	case "saver":
		return PresetSaver
	case "explorer":
		return PresetExplorer
	default:
		return PresetDefault
	}
}

// String returns the preset name.
func (p Preset) String() string {
	switch p {
	case PresetStudent:
		return "student"
	case PresetSaver:
		return "saver"
	case PresetExplorer:
		return "explorer"
	default:
		return "default"
	}
}

// Weights returns the profile for the preset.
func (p Preset) Weights() WeightProfile {
	switch p {
	case PresetStudent:
		return WeightProfile{Budget: 0.50, Time: 0.30, Alignment: 0.20}
	case PresetSaver:
		return WeightProfile{Budget: 0.60, Time: 0.15, Alignment: 0.25}
	case PresetExplorer:
		return WeightProfile{Budget: 0.15, Time: 0.15, Alignment: 0.70}
	default:
		return WeightProfile{Budget: 0.35, Time: 0.30, Alignment: 0.35}
	}
}
