package recommend

import (
	"fmt"
	"reflect"
	"testing"
)

// fixedRand always returns the same offset, clamped to n.
type fixedRand struct{ v int }

func (f fixedRand) IntN(n int) int {
	if f.v >= n {
		return n - 1
	}
	return f.v
}

func rankedN(n int) []ScoredItem {
	out := make([]ScoredItem, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, ScoredItem{
			Item:  Item{ID: fmt.Sprintf("i%d", i), Name: fmt.Sprintf("item %d", i)},
			Score: float64(n - i),
		})
	}
	return out
}

func TestInjectInterleavesDiscoveryItems(t *testing.T) {
	in := NewInjector(fixedRand{v: 0})
	got := in.Inject(rankedN(10), 5, 0.5)

	want := []string{"i0", "i1", "i5", "i2", "i6", "i3", "i4"}
	if !reflect.DeepEqual(scoredIDs(got), want) {
		t.Fatalf("Inject order = %v, want %v", scoredIDs(got), want)
	}
	for _, it := range got {
		isPick := it.ID == "i5" || it.ID == "i6"
		if it.IsDiscovery != isPick {
			t.Fatalf("%s: is_discovery = %v, want %v", it.ID, it.IsDiscovery, isPick)
		}
	}
}

func TestInjectDefaultRatioAddsOne(t *testing.T) {
	in := NewInjector(NewSeededRand(7))
	got := in.Inject(rankedN(12), DefaultTopN, DefaultDiscoveryRatio)
	if len(got) != DefaultTopN+1 {
		t.Fatalf("expected %d items, got %d", DefaultTopN+1, len(got))
	}
	if !got[2].IsDiscovery {
		t.Fatalf("expected discovery item at position 2, got %+v", got[2])
	}
}

func TestInjectFlagsAndNoDuplicates(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		in := NewInjector(NewSeededRand(seed))
		got := in.Inject(rankedN(9), 3, 0.9)

		seen := make(map[string]bool, len(got))
		for _, it := range got {
			if seen[it.ID] {
				t.Fatalf("seed %d: duplicate id %s", seed, it.ID)
			}
			seen[it.ID] = true
			if it.IsDiscovery && it.DiscoveryReason == "" {
				t.Fatalf("seed %d: discovery item %s missing reason", seed, it.ID)
			}
			if !it.IsDiscovery && it.DiscoveryReason != "" {
				t.Fatalf("seed %d: head item %s carries a discovery reason", seed, it.ID)
			}
		}
		heads := 0
		for _, it := range got {
			if !it.IsDiscovery {
				if it.ID != fmt.Sprintf("i%d", heads) {
					t.Fatalf("seed %d: head order broken at %s", seed, it.ID)
				}
				heads++
			}
		}
		if heads != 3 {
			t.Fatalf("seed %d: expected 3 head items, got %d", seed, heads)
		}
	}
}

func TestInjectClampsToPoolSize(t *testing.T) {
	in := NewInjector(NewSeededRand(1))
	got := in.Inject(rankedN(6), 5, 2)
	if len(got) != 6 {
		t.Fatalf("expected head plus the single pool item, got %d", len(got))
	}
}

func TestInjectEmptyPoolReturnsHead(t *testing.T) {
	ranked := rankedN(4)
	in := NewInjector(NewSeededRand(1))
	got := in.Inject(ranked, 5, 0.15)
	if !reflect.DeepEqual(scoredIDs(got), scoredIDs(ranked)) {
		t.Fatalf("expected head unchanged, got %v", scoredIDs(got))
	}
	for _, it := range got {
		if it.IsDiscovery {
			t.Fatalf("unexpected discovery item %s", it.ID)
		}
	}
}

func TestInjectEmptyInput(t *testing.T) {
	got := NewInjector(nil).Inject(nil, 5, 0.15)
	if len(got) != 0 {
		t.Fatalf("expected empty output, got %d", len(got))
	}
}

func TestInjectDoesNotMutateRanked(t *testing.T) {
	ranked := rankedN(10)
	_ = NewInjector(NewSeededRand(3)).Inject(ranked, 3, 0.5)
	for _, it := range ranked {
		if it.IsDiscovery || it.DiscoveryReason != "" {
			t.Fatalf("input item %s was modified", it.ID)
		}
	}
}

func TestInjectSeededIsReproducible(t *testing.T) {
	first := NewInjector(NewSeededRand(42)).Inject(rankedN(20), 5, 0.6)
	second := NewInjector(NewSeededRand(42)).Inject(rankedN(20), 5, 0.6)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical output for the same seed")
	}
}

func TestDiscoveryCount(t *testing.T) {
	tests := []struct {
		topN  int
		ratio float64
		pool  int
		want  int
	}{
		{topN: 5, ratio: 0.15, pool: 10, want: 1},
		{topN: 5, ratio: 0.5, pool: 10, want: 2},
		{topN: 10, ratio: 0.15, pool: 10, want: 2},
		{topN: 5, ratio: 0, pool: 10, want: 1},
		{topN: 5, ratio: 1, pool: 3, want: 3},
		{topN: 5, ratio: 0.15, pool: 0, want: 0},
	}
	for _, tt := range tests {
		if got := discoveryCount(tt.topN, tt.ratio, tt.pool); got != tt.want {
			t.Fatalf("discoveryCount(%d, %v, %d) = %d, want %d", tt.topN, tt.ratio, tt.pool, got, tt.want)
		}
	}
}
