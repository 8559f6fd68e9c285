package store

import (
	"log"
	"sync"
	"time"

	"github.com/aaronzipp/midnight-whispers/internal/models"
)

// GameStore manages game storage
type GameStore struct {
	games map[string]*models.Game
	mu    sync.RWMutex
}

// NewGameStore creates a new game store
func NewGameStore() *GameStore {
	return &GameStore{
		games: make(map[string]*models.Game),
	}
}

// Get retrieves a game by code
func (s *GameStore) Get(code string) (*models.Game, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, exists := s.games[code]
	return g, exists
}

// Set stores a game
func (s *GameStore) Set(code string, g *models.Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[code] = g
}

// Delete removes a game
func (s *GameStore) Delete(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, code)
}

// Exists checks if a game code exists
func (s *GameStore) Exists(code string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.games[code]
	return exists
}

// Len returns the number of stored games
func (s *GameStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

// Prune removes games idle since before cutoff that have no open streams and no
// step in flight. It returns the removed codes.
func (s *GameStore) Prune(cutoff time.Time) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []string
	for code, g := range s.games {
		g.RLock()
		idle := g.UpdatedAt.Before(cutoff) && g.SSEClientCount() == 0 && !g.State.Loading
		g.RUnlock()
		if idle {
			delete(s.games, code)
			removed = append(removed, code)
		}
	}
	return removed
}

// RunJanitor prunes games idle longer than ttl every interval until stop is closed.
// onPrune, when set, is called with each removed code.
func (s *GameStore) RunJanitor(ttl, interval time.Duration, stop <-chan struct{}, onPrune func(code string)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			removed := s.Prune(now.Add(-ttl))
			for _, code := range removed {
				if onPrune != nil {
					onPrune(code)
				}
			}
			if len(removed) > 0 {
				log.Printf("janitor: pruned %d idle game(s), %d remaining", len(removed), s.Len())
			}
		}
	}
}
