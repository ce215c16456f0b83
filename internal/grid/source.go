package grid

import (
	"math/rand"
	"time"
)

// Source supplies every random choice the generator makes.
// Implementations need not be safe for concurrent use; give each
// Generate call its own Source.
type Source interface {
	// Direction picks one of dirs.
	Direction(dirs []Direction) Direction
	// Cell picks a start cell in a size×size grid.
	Cell(size int) Cell
	// Letter picks a filler letter from alphabet.
	Letter(alphabet []rune) rune
}

// randSource adapts *rand.Rand to Source.
type randSource struct {
	rng *rand.Rand
}

// NewRandSource wraps rng. Column is drawn before row.
func NewRandSource(rng *rand.Rand) Source {
	return &randSource{rng: rng}
}

// NewSeededSource returns a reproducible Source. Seed 0 means "seed from the clock".
func NewSeededSource(seed int64) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return NewRandSource(rand.New(rand.NewSource(seed)))
}

func (s *randSource) Direction(dirs []Direction) Direction {
	return dirs[s.rng.Intn(len(dirs))]
}

func (s *randSource) Cell(size int) Cell {
	col := s.rng.Intn(size)
	row := s.rng.Intn(size)
	return Cell{Row: row, Col: col}
}

func (s *randSource) Letter(alphabet []rune) rune {
	return alphabet[s.rng.Intn(len(alphabet))]
}
