package emotion

import (
	"math/rand"
	"sync"
	"time"
)

// Source yields uniform floats in [0,1). Every random draw in this package
// (decay noise, confidence jitter, centroid seeding) goes through a Source so
// tests can substitute a deterministic one.
type Source interface {
	Float64() float64
}

type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewTimeSource returns a Source seeded from the current time.
func NewTimeSource() Source {
	return &lockedSource{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeededSource returns a Source with a fixed seed.
func NewSeededSource(seed int64) Source {
	return &lockedSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// ZeroSource always yields 0.
type ZeroSource struct{}

func (ZeroSource) Float64() float64 { return 0 }

// SequenceSource replays a fixed list of values, cycling when exhausted.
// An empty sequence behaves like ZeroSource.
type SequenceSource struct {
	values []float64
	next   int
}

func NewSequenceSource(values ...float64) *SequenceSource {
	return &SequenceSource{values: values}
}

func (s *SequenceSource) Float64() float64 {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}
