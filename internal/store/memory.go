// internal/store/memory.go
//
// In-memory implementation of the session Store.
// Sessions are short-lived, so durability is not required.
//
// Characteristics:
//   - Stores *game.Game objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Get hands out clones; mutation goes through Update so two requests
//     on the same session never race.
//   - Sessions idle for longer than the TTL are swept by Prune.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/wordsearch/internal/game"
)

// ErrNotFound is returned for unknown session IDs.
var ErrNotFound = errors.New("session not found")

// Store defines the persistence interface for play sessions.
type Store interface {
	// Save persists or replaces a session.
	Save(ctx context.Context, g *game.Game) error

	// Get returns a snapshot of a session, or ErrNotFound.
	Get(ctx context.Context, id string) (*game.Game, error)

	// Update runs fn on the stored session while holding the write lock.
	// An error from fn is returned unchanged and the session keeps
	// whatever fn did before failing.
	Update(ctx context.Context, id string, fn func(g *game.Game) error) (*game.Game, error)

	// Delete removes a session. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error
}

// Memory is an in-memory map-based Store implementation.
type Memory struct {
	mu    sync.RWMutex          // guards games map
	games map[string]*game.Game // keyed by Game.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() *Memory {
	return &Memory{games: make(map[string]*game.Game)}
}

// Save adds or replaces the session in the map.
func (m *Memory) Save(ctx context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = g.Clone()
	return nil
}

// Get looks up a session by ID.
func (m *Memory) Get(ctx context.Context, id string) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.games[id]; ok {
		return g.Clone(), nil
	}
	return nil, ErrNotFound
}

// Update mutates a stored session in place and returns a snapshot of the result.
func (m *Memory) Update(ctx context.Context, id string, fn func(g *game.Game) error) (*game.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	if err := fn(g); err != nil {
		return g.Clone(), err
	}
	return g.Clone(), nil
}

// Delete drops a session.
func (m *Memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	return nil
}

// Len reports how many sessions are held.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// Prune removes sessions not updated since before now-ttl and returns how many went.
func (m *Memory) Prune(now time.Time, ttl time.Duration) int {
	cutoff := now.Add(-ttl)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, g := range m.games {
		if g.UpdatedAt.Before(cutoff) {
			delete(m.games, id)
			n++
		}
	}
	return n
}
