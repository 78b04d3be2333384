package digitalrain

import (
	"math/rand"
	"sync"
	"time"
)

// Rand is the source of uniform integers in [0, n).
type Rand interface {
	Intn(n int) int
}

// NewRand returns a Rand safe for concurrent use. A zero seed is replaced
// with the current time.
func NewRand(seed int64) Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedRand{r: rand.New(rand.NewSource(seed))}
}

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

// between returns a uniform integer in [min, max). An empty range yields min.
func between(rnd Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + rnd.Intn(max-min)
}
