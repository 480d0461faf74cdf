package recommend

import (
	"math"
	"slices"
)

const (
	DefaultTopN           = 5
	DefaultDiscoveryRatio = 0.15

	// DiscoveryReason is attached to every injected discovery item.
	DiscoveryReason = "This is shown to broaden your discovery. It satisfies your constraints but explores a different direction."
)

// Injector surfaces a few items from outside the ranked head so the list
// does not collapse onto the same narrow slice of the catalog.
type Injector struct {
	Rand Rand
}

// NewInjector builds an Injector. A nil Rand uses NewRand.
func NewInjector(r Rand) *Injector {
	if r == nil {
		r = NewRand()
	}
	return &Injector{Rand: r}
}

// Inject keeps the first topN ranked items, samples discovery items from
// the rest and interleaves them after position 2, 4, ... of the head.
// The input slice is not modified.
func (in *Injector) Inject(ranked []ScoredItem, topN int, ratio float64) []ScoredItem {
	if topN < 0 {
		topN = 0
	}
	if topN > len(ranked) {
		topN = len(ranked)
	}

	result := make([]ScoredItem, topN, topN+discoveryCount(topN, ratio, len(ranked)-topN))
	copy(result, ranked[:topN])
	for i := range result {
		result[i].IsDiscovery = false
		result[i].DiscoveryReason = ""
	}

	pool := ranked[topN:]
	if len(pool) == 0 {
		return result
	}

	picks := in.sample(pool, discoveryCount(topN, ratio, len(pool)))
	for k, pick := range picks {
		pick.IsDiscovery = true
		pick.DiscoveryReason = DiscoveryReason
		pos := min(2+2*k, len(result))
		result = slices.Insert(result, pos, pick)
	}
	return result
}

// discoveryCount is round(topN*ratio) clamped to [1, poolSize].
func discoveryCount(topN int, ratio float64, poolSize int) int {
	if poolSize <= 0 {
		return 0
	}
	n := int(math.RoundToEven(float64(topN) * ratio))
	return max(1, min(n, poolSize))
}

// sample draws n distinct items uniformly (partial Fisher-Yates) and
// returns them in selection order.
func (in *Injector) sample(pool []ScoredItem, n int) []ScoredItem {
	r := in.Rand
	if r == nil {
		r = NewRand()
	}
	idx := make([]int, len(pool))
	for i := range idx {
		idx[i] = i
	}
	picks := make([]ScoredItem, 0, n)
	for k := 0; k < n; k++ {
		j := k + r.IntN(len(idx)-k)
		idx[k], idx[j] = idx[j], idx[k]
		picks = append(picks, pool[idx[k]])
	}
	return picks
}
