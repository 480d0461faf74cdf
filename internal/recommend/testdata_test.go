package recommend

func sampleItems() []Item {
	return []Item{
		{ID: "t1", Name: "Cheap Quick Meal", Category: "meal", Price: 50, TimeCost: 10, ComfortAffinity: 0.8, ExplorationAffinity: 0.2, Tags: []string{"budget"}},
		{ID: "t2", Name: "Expensive Slow Experience", Category: "experience", Price: 500, TimeCost: 120, ComfortAffinity: 0.3, ExplorationAffinity: 0.9, Tags: []string{"premium"}},
		{ID: "t3", Name: "Mid-Range Comfort", Category: "meal", Price: 200, TimeCost: 30, ComfortAffinity: 0.9, ExplorationAffinity: 0.3, Tags: []string{"comfort"}},
		{ID: "t4", Name: "Budget Explorer", Category: "experience", Price: 80, TimeCost: 45, ComfortAffinity: 0.4, ExplorationAffinity: 0.85, Tags: []string{"explore"}},
		{ID: "t5", Name: "Premium Comfort", Category: "meal", Price: 350, TimeCost: 40, ComfortAffinity: 0.95, ExplorationAffinity: 0.1, Tags: []string{"luxury"}},
	}
}

func itemIDs(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func scoredIDs(items []ScoredItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func indexOf(list []string, id string) int {
	for i, v := range list {
		if v == id {
			return i
		}
	}
	return -1
}
