package recommend

// Filter returns the items whose price fits the budget and whose time cost
// fits the time limit. Both limits are hard; input order is preserved.
func Filter(items []Item, budget, timeLimit float64) []Item {
	passed := make([]Item, 0, len(items))
	for _, item := range items {
		if item.Price > budget {
			continue
		}
		if item.TimeCost > timeLimit {
			continue
		}
		passed = append(passed, item)
	}
	return passed
}
