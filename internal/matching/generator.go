package matching

import (
	"math/rand"
	"sync"
	"time"
)

// Generator produces derangements over participant names. The random source
// is injected so tests can seed it; NewGenerator(nil) falls back to a
// time-seeded source for production use.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewGenerator creates a Generator backed by the given random source.
func NewGenerator(rnd *rand.Rand) *Generator {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rnd: rnd}
}

// Derange returns one match name per input position such that the matches
// form a derangement of the input: a bijection over the names with no name
// mapped to itself.
//
// The input is Fisher-Yates shuffled into a uniformly random cyclic order,
// and each name is matched with its successor in that cycle. A single
// n-cycle has no fixed points, so the result is a derangement by
// construction for any n >= 2 without rejection sampling. Callers enforce
// the n >= 3 floor; names must be pairwise distinct.
func (g *Generator) Derange(names []string) []string {
	cycle := make([]string, len(names))
	copy(cycle, names)

	g.mu.Lock()
	for i := len(cycle) - 1; i > 0; i-- {
		j := g.rnd.Intn(i + 1)
		cycle[i], cycle[j] = cycle[j], cycle[i]
	}
	g.mu.Unlock()

	successor := make(map[string]string, len(cycle))
	for i, name := range cycle {
		successor[name] = cycle[(i+1)%len(cycle)]
	}

	matches := make([]string, len(names))
	for i, name := range names {
		matches[i] = successor[name]
	}
	return matches
}
