// internal/store/memory.go
//
// In-memory implementation of the session Store interface.
// Live puzzle sessions are ephemeral: they exist between /game/new and
// the end of the page load, so a map behind an RWMutex is all the
// persistence they need. Finished daily results go to SQLite instead.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/alexlindsay/chron-server/internal/game"
)

// ErrNotFound is returned by Get for an unknown session id.
var ErrNotFound = errors.New("session not found")

// Store defines the persistence interface for puzzle sessions.
// Implementations may be backed by memory (this package), Redis, SQL, etc.
type Store interface {
	// Save persists or updates a session.
	Save(ctx context.Context, g *game.Game) error

	// Get retrieves a session by ID.
	Get(ctx context.Context, id string) (*game.Game, error)

	// Delete drops a session; unknown ids are ignored.
	Delete(ctx context.Context, id string) error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex
	games map[string]*game.Game
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]*game.Game)}
}

func (m *memory) Save(ctx context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = g
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.games[id]; ok {
		return g, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	return nil
}
