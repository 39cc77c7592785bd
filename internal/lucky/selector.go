package lucky

import (
	"crypto/rand"
	"encoding/binary"
	mrand "math/rand"
	"sync"
	"time"
)

const (
	DefaultMaxSpeciesID = 905
	DefaultShinyOdds    = 500
)

// Drawer produces the random half of an assignment.
type Drawer interface {
	DrawSpeciesID() int
	DrawShiny() bool
}

// Selector draws species ids uniformly from [1, maxID] and flags a draw as
// shiny with probability 1/shinyOdds. It is safe for concurrent use.
type Selector struct {
	mu        sync.Mutex
	rng       *mrand.Rand
	maxID     int
	shinyOdds int
}

func NewSelector(maxID, shinyOdds int, rng *mrand.Rand) *Selector {
	if maxID < 1 {
		maxID = DefaultMaxSpeciesID
	}
	if shinyOdds < 1 {
		shinyOdds = DefaultShinyOdds
	}
	if rng == nil {
		var b [8]byte
		if _, err := rand.Read(b[:]); err != nil {
			rng = mrand.New(mrand.NewSource(time.Now().UnixNano()))
		} else {
			rng = mrand.New(mrand.NewSource(int64(binary.LittleEndian.Uint64(b[:]))))
		}
	}

	return &Selector{
		rng:       rng,
		maxID:     maxID,
		shinyOdds: shinyOdds,
	}
}

func (s *Selector) DrawSpeciesID() int {
	return s.intInclusive(s.maxID)
}

func (s *Selector) DrawShiny() bool {
	return s.intInclusive(s.shinyOdds) == 1
}

func (s *Selector) MaxSpeciesID() int { return s.maxID }

// random int from [1,n]
func (s *Selector) intInclusive(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n) + 1
}
