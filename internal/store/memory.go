package store

import (
	"errors"
	"sync"
	"time"

	"github.com/agroyield/agri-yield-forecast/internal/weather"
)

var (
	// ErrNotFound is returned when no observations exist for a region.
	ErrNotFound = errors.New("no weather observations for region")
)

// observationHistory holds a time-ordered list of observations for a region.
type observationHistory struct {
	Observations []weather.Observation
}

// MemoryStore is a concurrency-safe in-memory history of weather
// observations, used by the background refresher and the history endpoint.
// The forecast pipeline itself never reads from it.
type MemoryStore struct {
	mu sync.RWMutex

	// key: region name, value: history
	data map[string]*observationHistory

	// retention configuration
	maxHistory int           // max number of observations per region
	maxAge     time.Duration // optional max age for observations
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]*observationHistory),
		maxHistory: maxHistory,
		maxAge:     maxAge,
	}
}

// SaveObservation appends an observation for a region and enforces retention.
func (s *MemoryStore) SaveObservation(region string, obs weather.Observation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.data[region]
	if !ok {
		history = &observationHistory{}
		s.data[region] = history
	}

	history.Observations = append(history.Observations, obs)

	// Enforce retention by count.
	if s.maxHistory > 0 && len(history.Observations) > s.maxHistory {
		over := len(history.Observations) - s.maxHistory
		history.Observations = history.Observations[over:]
	}

	// Enforce retention by age.
	if s.maxAge > 0 {
		cutoff := time.Now().Add(-s.maxAge)
		i := 0
		for ; i < len(history.Observations); i++ {
			if !history.Observations[i].Timestamp.Before(cutoff) {
				break
			}
		}
		if i > 0 && i < len(history.Observations) {
			history.Observations = history.Observations[i:]
		}
	}
}

// GetLatest returns the most recent observation for a region.
func (s *MemoryStore) GetLatest(region string) (weather.Observation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[region]
	if !ok || len(history.Observations) == 0 {
		return weather.Observation{}, ErrNotFound
	}
	return history.Observations[len(history.Observations)-1], nil
}

// GetRange returns all observations for a region between from and to (inclusive).
func (s *MemoryStore) GetRange(region string, from, to time.Time) ([]weather.Observation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[region]
	if !ok || len(history.Observations) == 0 {
		return nil, ErrNotFound
	}

	var result []weather.Observation
	for _, obs := range history.Observations {
		if !obs.Timestamp.Before(from) && !obs.Timestamp.After(to) {
			result = append(result, obs)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}

	return result, nil
}
