package recommend

import (
	"math/rand/v2"
	"sync"
)

// Rand is the randomness the discovery injector draws from.
// Implementations must be safe for concurrent use.
type Rand interface {
	// IntN returns a uniform value in [0, n). n is always > 0.
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// NewRand returns a Rand backed by the process-wide math/rand/v2 source.
func NewRand() Rand {
	return globalRand{}
}

type seededRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededRand returns a deterministic Rand for a fixed seed.
func NewSeededRand(seed uint64) Rand {
	return &seededRand{rng: rand.New(rand.NewPCG(seed, seed))}
}

func (s *seededRand) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}
